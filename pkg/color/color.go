// Package color provides terminal color output for the CLI.
// It respects the NO_COLOR environment variable (https://no-color.org/).
package color

import (
	"os"
	"sync"

	"github.com/abhishekk2305/ai-safety-sandbox/pkg/model"
)

var state struct {
	once     sync.Once
	enabled  bool
	disabled bool
}

// Init initializes the color system from the environment and flags.
func Init(noColorFlag bool) {
	state.once.Do(func() {
		if _, exists := os.LookupEnv("NO_COLOR"); exists {
			state.disabled = true
		}
		if term := os.Getenv("TERM"); term == "dumb" {
			state.disabled = true
		}
		if noColorFlag {
			state.disabled = true
		}
		state.enabled = !state.disabled
	})
}

// Enabled reports whether color output is active.
func Enabled() bool {
	Init(false)
	return state.enabled
}

const (
	reset  = "\033[0m"
	red    = "\033[31m"
	green  = "\033[32m"
	yellow = "\033[33m"
	bold   = "\033[1m"
)

func wrap(code, s string) string {
	if !Enabled() {
		return s
	}
	return code + s + reset
}

// Green colors s green.
func Green(s string) string { return wrap(green, s) }

// Yellow colors s yellow.
func Yellow(s string) string { return wrap(yellow, s) }

// Red colors s red.
func Red(s string) string { return wrap(red, s) }

// Bold renders s in bold.
func Bold(s string) string { return wrap(bold, s) }

// Risk renders a risk level in its conventional color: green for Low,
// yellow for Medium, red for High.
func Risk(level model.RiskLevel) string {
	s := level.String()
	switch level {
	case model.RiskHigh:
		return Red(s)
	case model.RiskMedium:
		return Yellow(s)
	default:
		return Green(s)
	}
}
