package main

import "github.com/abhishekk2305/ai-safety-sandbox/internal/cli"

func main() {
	cli.Execute()
}
