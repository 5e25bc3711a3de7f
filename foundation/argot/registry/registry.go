// File: registry.go
// Title: Command Registry
// Description: Registration, alias and abbreviation resolution and fuzzy
//              suggestions for command names
// Author: msto63
// Version: v0.1.0
// Created: 2025-11-09
// Modified: 2025-11-09
//
// Change History:
// - 2025-11-09 v0.1.0: Initial implementation

package registry

import (
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"

	argoterrors "github.com/msto63/argot/foundation/core/errors"
	argotlog "github.com/msto63/argot/foundation/core/log"
)

const module = "registry"

// maxTypoDistance is the largest edit distance still offered as a suggestion
const maxTypoDistance = 2

// Options configures a Registry
type Options struct {
	Logger *argotlog.Logger

	// EnableAbbreviations resolves a unique prefix of a command name
	EnableAbbreviations bool
}

// Registry maps command names to entries of type T
type Registry[T any] struct {
	entries map[string]T
	aliases map[string]string
	logger  *argotlog.Logger
	options Options
	mutex   sync.RWMutex
}

// New creates an empty registry
func New[T any](opts Options) *Registry[T] {
	if opts.Logger == nil {
		opts.Logger = argotlog.GetDefault()
	}
	return &Registry[T]{
		entries: make(map[string]T),
		aliases: make(map[string]string),
		logger:  opts.Logger.WithField("component", "argot-registry"),
		options: opts,
	}
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Register adds entry under name and the given aliases
func (r *Registry[T]) Register(name string, entry T, aliases ...string) error {
	key := normalize(name)
	if key == "" || strings.ContainsFunc(key, unicode.IsSpace) {
		return argoterrors.InvalidInput(module, "register", "command name", name)
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.taken(key) {
		return r.exists("register", key)
	}
	for _, alias := range aliases {
		a := normalize(alias)
		if a == "" || a == key {
			continue
		}
		if r.taken(a) {
			return r.exists("register", a)
		}
	}

	r.entries[key] = entry
	for _, alias := range aliases {
		if a := normalize(alias); a != "" && a != key {
			r.aliases[a] = key
		}
	}

	r.logger.Debug("Command registered", argotlog.Fields{
		"command": key,
		"aliases": len(aliases),
	})
	return nil
}

// Alias makes alias resolve to the registered command name
func (r *Registry[T]) Alias(alias, name string) error {
	a, key := normalize(alias), normalize(name)
	if a == "" {
		return argoterrors.InvalidInput(module, "alias", "alias", alias)
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if target, ok := r.aliases[key]; ok {
		key = target
	}
	if _, ok := r.entries[key]; !ok {
		return argoterrors.NotFound(module, "alias", "command", name)
	}
	if r.taken(a) {
		return r.exists("alias", a)
	}
	r.aliases[a] = key

	r.logger.Debug("Alias registered", argotlog.Fields{
		"alias":   a,
		"command": key,
	})
	return nil
}

func (r *Registry[T]) taken(name string) bool {
	_, isEntry := r.entries[name]
	_, isAlias := r.aliases[name]
	return isEntry || isAlias
}

func (r *Registry[T]) exists(operation, name string) error {
	return argoterrors.NewErrorBuilder(module).
		Operation(operation).
		Code(argoterrors.CodeAlreadyExists).
		Messagef("command name already in use: %s", name).
		Detail("name", name).
		Build()
}

// Resolve returns the canonical command name for name, an alias or, when
// abbreviations are enabled, a prefix that matches exactly one command
func (r *Registry[T]) Resolve(name string) (string, bool) {
	key := normalize(name)
	if key == "" {
		return "", false
	}

	r.mutex.RLock()
	defer r.mutex.RUnlock()

	if _, ok := r.entries[key]; ok {
		return key, true
	}
	if target, ok := r.aliases[key]; ok {
		return target, true
	}
	if !r.options.EnableAbbreviations {
		return "", false
	}

	match := ""
	for candidate := range r.entries {
		if !strings.HasPrefix(candidate, key) {
			continue
		}
		if match != "" {
			return "", false
		}
		match = candidate
	}
	return match, match != ""
}

// Lookup returns the entry registered for name, see Resolve
func (r *Registry[T]) Lookup(name string) (T, bool) {
	var zero T
	key, ok := r.Resolve(name)
	if !ok {
		return zero, false
	}

	r.mutex.RLock()
	defer r.mutex.RUnlock()

	entry, ok := r.entries[key]
	return entry, ok
}

// Names returns the registered command names in sorted order
func (r *Registry[T]) Names() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Entries returns the registered entries ordered by name
func (r *Registry[T]) Entries() []T {
	names := r.Names()

	r.mutex.RLock()
	defer r.mutex.RUnlock()

	out := make([]T, 0, len(names))
	for _, name := range names {
		if entry, ok := r.entries[name]; ok {
			out = append(out, entry)
		}
	}
	return out
}

// Aliases returns a copy of the alias table
func (r *Registry[T]) Aliases() map[string]string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	out := make(map[string]string, len(r.aliases))
	for a, name := range r.aliases {
		out[a] = name
	}
	return out
}

// Len returns the number of registered commands
func (r *Registry[T]) Len() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return len(r.entries)
}

// Suggest returns up to limit command names close to name. Names containing
// the typed letters in order rank first, then names within a small edit
// distance. Aliases are suggested as the name they point to.
func (r *Registry[T]) Suggest(name string, limit int) []string {
	key := normalize(name)
	if key == "" || limit == 0 {
		return nil
	}

	r.mutex.RLock()
	candidates := make([]string, 0, len(r.entries)+len(r.aliases))
	target := make(map[string]string, cap(candidates))
	for n := range r.entries {
		candidates = append(candidates, n)
		target[n] = n
	}
	for a, n := range r.aliases {
		candidates = append(candidates, a)
		target[a] = n
	}
	r.mutex.RUnlock()

	type scored struct {
		name     string
		distance int
	}
	best := make(map[string]int)
	consider := func(candidate string, distance int) {
		n := target[candidate]
		if d, ok := best[n]; !ok || distance < d {
			best[n] = distance
		}
	}

	for _, rank := range fuzzy.RankFindFold(key, candidates) {
		consider(rank.Target, rank.Distance)
	}
	for _, candidate := range candidates {
		if d := fuzzy.LevenshteinDistance(key, candidate); d <= maxTypoDistance {
			consider(candidate, d)
		}
	}

	ranked := make([]scored, 0, len(best))
	for n, d := range best {
		ranked = append(ranked, scored{name: n, distance: d})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].distance != ranked[j].distance {
			return ranked[i].distance < ranked[j].distance
		}
		return ranked[i].name < ranked[j].name
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	out := make([]string, len(ranked))
	for i, s := range ranked {
		out[i] = s.name
	}
	return out
}
