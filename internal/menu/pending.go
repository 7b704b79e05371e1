package menu

import (
	"fmt"
	"slices"
)

type argState struct {
	arg    Arg
	active bool
	value  string
}

// Pending holds the toggle state of the menu that is currently open.
// It lives exactly as long as the menu is displayed.
type Pending struct {
	name string
	args []argState
}

// NewPending opens a menu from its definition. Tokens listed in
// activeOverrides start active in addition to the args' own defaults.
func NewPending(def Definition, activeOverrides ...string) *Pending {
	p := &Pending{
		name: def.Name,
		args: make([]argState, len(def.Args)),
	}
	for i, a := range def.Args {
		p.args[i] = argState{
			arg:    a,
			active: a.DefaultActive || (a.Kind == Flag && slices.Contains(activeOverrides, a.Token)),
		}
	}
	return p
}

// Name returns the name of the menu definition
func (p *Pending) Name() string {
	return p.name
}

// Args renders the active args in declaration order.
// A menu with no active args renders to an empty slice.
func (p *Pending) Args() []string {
	out := []string{}
	for _, s := range p.args {
		if !s.active {
			continue
		}
		if s.arg.Kind == Valued {
			out = append(out, s.arg.Token+s.value)
		} else {
			out = append(out, s.arg.Token)
		}
	}
	return out
}

// Toggle flips a flag. Toggling an active valued arg clears it; activating a
// valued arg requires SetValue.
func (p *Pending) Toggle(token string) error {
	s, err := p.find(token)
	if err != nil {
		return err
	}
	if s.arg.Kind == Valued && !s.active {
		return fmt.Errorf("%s needs a value", token)
	}
	s.active = !s.active
	if !s.active {
		s.value = ""
	}
	return nil
}

// SetValue parses raw and activates the valued arg. On a parse error the
// menu is left unchanged.
func (p *Pending) SetValue(token, raw string) error {
	s, err := p.find(token)
	if err != nil {
		return err
	}
	if s.arg.Kind != Valued {
		return fmt.Errorf("%s does not take a value", token)
	}
	value, err := s.arg.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", token, err)
	}
	s.value = value
	s.active = true
	return nil
}

// IsActive reports whether the arg with the given token is active
func (p *Pending) IsActive(token string) bool {
	s, err := p.find(token)
	return err == nil && s.active
}

// ByKey returns the arg bound to key
func (p *Pending) ByKey(key string) (Arg, bool) {
	for _, s := range p.args {
		if s.arg.Key == key {
			return s.arg, true
		}
	}
	return Arg{}, false
}

// Reset restores every arg to its declared default
func (p *Pending) Reset() {
	for i := range p.args {
		p.args[i].active = p.args[i].arg.DefaultActive
		p.args[i].value = ""
	}
}

// Entry is a read-only view of one arg for rendering
type Entry struct {
	Arg    Arg
	Active bool
	Value  string
}

// Entries returns the args with their current state in declaration order
func (p *Pending) Entries() []Entry {
	out := make([]Entry, len(p.args))
	for i, s := range p.args {
		out[i] = Entry{Arg: s.arg, Active: s.active, Value: s.value}
	}
	return out
}

func (p *Pending) find(token string) (*argState, error) {
	for i := range p.args {
		if p.args[i].arg.Token == token {
			return &p.args[i], nil
		}
	}
	return nil, fmt.Errorf("menu %s has no arg %s", p.name, token)
}
