package config

import (
	"fmt"
	"strings"
)

// Environment selects the base URL requests are sent to.
type Environment string

const (
	Local       Environment = "local"
	Development Environment = "development"
	Test        Environment = "test"
	Production  Environment = "production"
)

// Environments lists the known environments.
var Environments = []Environment{Local, Development, Test, Production}

// ParseEnvironment accepts an environment name in any case.
func ParseEnvironment(s string) (Environment, error) {
	env := Environment(strings.ToLower(strings.TrimSpace(s)))
	if env.Valid() {
		return env, nil
	}
	return "", fmt.Errorf("unknown environment %q", s)
}

// Valid reports whether e is one of the known environments.
func (e Environment) Valid() bool {
	for _, known := range Environments {
		if e == known {
			return true
		}
	}
	return false
}

func (e Environment) String() string {
	return string(e)
}
