package model

// Environment is one of the fixed deployment targets, each with its own
// confined workspace.
type Environment string

const (
	EnvDev     Environment = "dev"
	EnvStaging Environment = "staging"
	EnvProd    Environment = "prod"
)

// Environments returns all known environments in display order.
func Environments() []Environment {
	return []Environment{EnvDev, EnvStaging, EnvProd}
}

// Valid reports whether e names a known environment.
func (e Environment) Valid() bool {
	switch e {
	case EnvDev, EnvStaging, EnvProd:
		return true
	}
	return false
}

// String returns the environment name as a plain string.
func (e Environment) String() string {
	return string(e)
}
