//go:build tools
// +build tools

// Package tools pins go generate dependencies (mockgen) in go.mod.
package newbie_greeter

import (
	_ "go.uber.org/mock/mockgen"
)
