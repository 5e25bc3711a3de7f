package commands

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/msto63/argot/foundation/argot"
	"github.com/msto63/argot/foundation/argot/args"
	argoterrors "github.com/msto63/argot/foundation/core/errors"
)

const module = "commands"

// Register adds every built-in command to e
func Register(e *argot.Engine) error {
	defs := []*argot.Definition{
		Help(e),
		Alias(e),
		Echo(),
		Sum(),
		Pick(),
		Inspect(),
	}
	for _, def := range defs {
		if err := e.Register(def); err != nil {
			return err
		}
	}
	return nil
}

// Help lists the commands of e, or describes one
func Help(e *argot.Engine) *argot.Definition {
	return &argot.Definition{
		Name:    "help",
		Aliases: []string{"?"},
		Summary: "List commands or describe one",
		Usage:   "help [command]",
		Handler: func(_ context.Context, inv *argot.Invocation) (string, error) {
			name, ok := inv.Args.Single().Get()
			if !ok {
				return listCommands(e), nil
			}

			def, found := e.Registry().Lookup(name)
			if !found {
				err := argoterrors.NotFound(module, "help", "command", name)
				if suggestions := e.Registry().Suggest(name, 3); len(suggestions) > 0 {
					err = err.WithDetail("suggestions", suggestions)
				}
				return "", err
			}
			return describe(e, def), nil
		},
	}
}

func listCommands(e *argot.Engine) string {
	defs := e.Registry().Entries()
	width := 0
	for _, def := range defs {
		width = max(width, len(def.Name))
	}

	var b strings.Builder
	b.WriteString("Commands:\n")
	for _, def := range defs {
		fmt.Fprintf(&b, "  %s%-*s  %s\n", e.Prefix(), width, def.Name, def.Summary)
	}
	return strings.TrimRight(b.String(), "\n")
}

func describe(e *argot.Engine, def *argot.Definition) string {
	var b strings.Builder
	b.WriteString(e.Prefix() + def.Name)
	if def.Summary != "" {
		b.WriteString(" - " + def.Summary)
	}
	if def.Usage != "" {
		b.WriteString("\nUsage: " + e.Prefix() + def.Usage)
	}

	// the alias table holds normalized names
	name, ok := e.Registry().Resolve(def.Name)
	if !ok {
		name = strings.ToLower(def.Name)
	}
	var aliases []string
	for alias, target := range e.Registry().Aliases() {
		if target == name {
			aliases = append(aliases, alias)
		}
	}
	if len(aliases) > 0 {
		sort.Strings(aliases)
		b.WriteString("\nAliases: " + strings.Join(aliases, ", "))
	}
	return b.String()
}

// Alias creates an alias, or lists the existing ones when called bare
func Alias(e *argot.Engine) *argot.Definition {
	return &argot.Definition{
		Name:    "alias",
		Summary: "Create or list command aliases",
		Usage:   "alias [name command]",
		Handler: func(_ context.Context, inv *argot.Invocation) (string, error) {
			words := inv.Args.Many(2)
			switch len(words) {
			case 0:
				return listAliases(e), nil
			case 1:
				return "", argoterrors.InvalidInput(module, "alias", "arguments", "alias needs a name and a command")
			}

			name, target := words[0].Value, words[1].Value
			if err := e.Registry().Alias(name, target); err != nil {
				return "", err
			}
			return fmt.Sprintf("Alias '%s' created for '%s'", name, target), nil
		},
	}
}

func listAliases(e *argot.Engine) string {
	aliases := e.Registry().Aliases()
	if len(aliases) == 0 {
		return "No aliases defined"
	}
	names := make([]string, 0, len(aliases))
	for name := range aliases {
		names = append(names, name)
	}
	sort.Strings(names)

	lines := make([]string, len(names))
	for i, name := range names {
		lines[i] = fmt.Sprintf("%s -> %s", name, aliases[name])
	}
	return strings.Join(lines, "\n")
}

func values(inv *argot.Invocation) []string {
	words := inv.Args.Many(args.Unlimited)
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = w.Value
	}
	return out
}
