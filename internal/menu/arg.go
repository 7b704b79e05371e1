// Package menu models the option toggles shown in a menu and the pending
// state of the menu that is currently open.
package menu

import "fmt"

// ArgKind distinguishes boolean flags from args that carry a value
type ArgKind int

const (
	// Flag is rendered as its token alone
	Flag ArgKind = iota
	// Valued is rendered as its token followed by the parsed value
	Valued
)

// ParseFunc validates raw user input for a valued arg and returns the
// normalized value that is appended to the token.
type ParseFunc func(raw string) (string, error)

// Arg is a single command-line modifier offered by a menu.
// Args are declared once per menu definition and never mutated.
type Arg struct {
	Kind          ArgKind
	Token         string // e.g. "--no-ff" or "--strategy="
	Label         string
	Key           string // key pressed after the arg prefix, e.g. "n"
	DefaultActive bool
	Parse         ParseFunc
}

// NewFlag creates a boolean flag arg
func NewFlag(key, token, label string, defaultActive bool) Arg {
	return Arg{
		Kind:          Flag,
		Token:         token,
		Label:         label,
		Key:           key,
		DefaultActive: defaultActive,
	}
}

// NewValued creates an arg that takes a value parsed by parse
func NewValued(key, token, label string, parse ParseFunc) Arg {
	return Arg{
		Kind:  Valued,
		Token: token,
		Label: label,
		Key:   key,
		Parse: parse,
	}
}

// Definition is the static description of a menu
type Definition struct {
	Name string
	Args []Arg
}

// Validate checks that tokens and keys are unique and valued args have a parser
func (d Definition) Validate() error {
	tokens := make(map[string]bool, len(d.Args))
	keys := make(map[string]bool, len(d.Args))
	for _, a := range d.Args {
		if a.Token == "" {
			return fmt.Errorf("menu %s: arg %q has no token", d.Name, a.Label)
		}
		if tokens[a.Token] {
			return fmt.Errorf("menu %s: duplicate token %s", d.Name, a.Token)
		}
		tokens[a.Token] = true
		if a.Key != "" {
			if keys[a.Key] {
				return fmt.Errorf("menu %s: duplicate key %s", d.Name, a.Key)
			}
			keys[a.Key] = true
		}
		if a.Kind == Valued && a.Parse == nil {
			return fmt.Errorf("menu %s: valued arg %s has no parser", d.Name, a.Token)
		}
	}
	return nil
}
