// File: definition.go
// Title: Command Definitions
// Description: Command definition, handler and prompter types
// Author: msto63
// Version: v0.1.0
// Created: 2025-11-09
// Modified: 2025-11-09
//
// Change History:
// - 2025-11-09 v0.1.0: Initial implementation

package argot

import (
	"context"

	"github.com/msto63/argot/foundation/argot/registry"
	"github.com/msto63/argot/foundation/argot/strategy"
)

// Handler runs a command and returns the text to show the user
type Handler func(ctx context.Context, inv *Invocation) (string, error)

// Definition describes a command
type Definition struct {
	Name    string
	Aliases []string
	Summary string
	Usage   string

	// Strategy classifies flags and options. Nil uses the engine default.
	Strategy strategy.Strategy

	Handler Handler
}

// Registry is the command table used by an Engine
type Registry = registry.Registry[*Definition]

// NewRegistry creates an empty command table
func NewRegistry(opts registry.Options) *Registry {
	return registry.New[*Definition](opts)
}

// Prompter asks the user a question and returns the answer
type Prompter interface {
	Prompt(ctx context.Context, question string) (string, error)
}

// PrompterFunc adapts a function to Prompter
type PrompterFunc func(ctx context.Context, question string) (string, error)

// Prompt calls f
func (f PrompterFunc) Prompt(ctx context.Context, question string) (string, error) {
	return f(ctx, question)
}
