// Package lang keeps the languages kipaco knows how to parse, indexed by name
// and by file extension.
package lang

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/dhamidi/kipaco/lang/calc"
	"github.com/dhamidi/kipaco/lang/conf"
	"github.com/dhamidi/kipaco/lang/json"
)

// Language describes a parser together with the documentation of its syntax.
type Language struct {
	Name       string
	Extensions []string
	// Grammar is EBNF text describing the syntax; Start names its start production.
	Grammar string
	Start   string
	// Parse parses a complete source. Syntax errors are *parse.Error values.
	Parse func(name, src string) (any, error)
}

// Registry maps names and file extensions to languages.
// It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]*Language
	byExt  map[string]*Language
}

func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]*Language),
		byExt:  make(map[string]*Language),
	}
}

// Register adds l. Names and extensions must not already be taken.
func (r *Registry) Register(l Language) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if l.Name == "" || l.Parse == nil {
		return fmt.Errorf("register language: name and parse function are required")
	}
	if _, ok := r.byName[l.Name]; ok {
		return fmt.Errorf("register language: %s already registered", l.Name)
	}
	for _, ext := range l.Extensions {
		if other, ok := r.byExt[normalizeExt(ext)]; ok {
			return fmt.Errorf("register language %s: extension %s already used by %s", l.Name, ext, other.Name)
		}
	}

	lang := l
	lang.Extensions = nil
	r.byName[l.Name] = &lang
	for _, ext := range l.Extensions {
		r.addExt(&lang, ext)
	}
	return nil
}

func (r *Registry) addExt(l *Language, ext string) {
	ext = normalizeExt(ext)
	l.Extensions = append(l.Extensions, ext)
	r.byExt[ext] = l
}

// Lookup returns the language called name.
func (r *Registry) Lookup(name string) (Language, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.byName[name]
	if !ok {
		return Language{}, false
	}
	return l.clone(), true
}

// ForFile returns the language registered for the extension of path.
func (r *Registry) ForFile(path string) (Language, bool) {
	ext := filepath.Ext(path)
	if ext == "" {
		return Language{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.byExt[normalizeExt(ext)]
	if !ok {
		return Language{}, false
	}
	return l.clone(), true
}

// SetExtensions replaces the extensions of a registered language.
// An extension used by another language moves to this one.
func (r *Registry) SetExtensions(name string, exts []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.byName[name]
	if !ok {
		return fmt.Errorf("set extensions: unknown language %s", name)
	}

	for _, ext := range l.Extensions {
		delete(r.byExt, ext)
	}
	l.Extensions = nil

	for _, ext := range exts {
		ext = normalizeExt(ext)
		if other, ok := r.byExt[ext]; ok {
			other.Extensions = slices.DeleteFunc(other.Extensions, func(e string) bool { return e == ext })
		}
		r.addExt(l, ext)
	}
	return nil
}

// Languages returns all registered languages sorted by name.
func (r *Registry) Languages() []Language {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Language, 0, len(r.byName))
	for _, l := range r.byName {
		result = append(result, l.clone())
	}
	slices.SortFunc(result, func(a, b Language) int { return strings.Compare(a.Name, b.Name) })
	return result
}

func (l *Language) clone() Language {
	c := *l
	c.Extensions = slices.Clone(l.Extensions)
	return c
}

// normalizeExt lowercases ext and makes sure it starts with a dot.
func normalizeExt(ext string) string {
	ext = strings.ToLower(ext)
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// Default returns a registry with the built-in languages.
func Default() *Registry {
	r := NewRegistry()
	for _, l := range builtin() {
		if err := r.Register(l); err != nil {
			panic(err)
		}
	}
	return r
}

func builtin() []Language {
	return []Language{
		{
			Name:       "calc",
			Extensions: []string{".calc"},
			Grammar:    calc.Grammar,
			Start:      calc.Start,
			Parse: func(name, src string) (any, error) {
				return calc.Parse(name, src)
			},
		},
		{
			Name:       "conf",
			Extensions: []string{".conf", ".toml"},
			Grammar:    conf.Grammar,
			Start:      conf.Start,
			Parse: func(name, src string) (any, error) {
				return conf.Parse(name, src)
			},
		},
		{
			Name:       "json",
			Extensions: []string{".json"},
			Grammar:    json.Grammar,
			Start:      json.Start,
			Parse:      json.Parse,
		},
	}
}
