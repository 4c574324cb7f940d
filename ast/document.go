// Package ast holds the in-memory form of a namelist document: an ordered
// set of groups, each an ordered set of variables with typed values.
package ast

import (
	"fmt"
	"iter"
	"strings"

	nmlerrors "github.com/KimNorgaard/go-namelist/errors"
)

// Document is an ordered mapping from group name to Group.
type Document struct {
	groups []*Group
	index  map[string]int
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{index: make(map[string]int)}
}

// Add appends g to the document. Group names are unique keys; adding a
// second group under an existing name is an error.
func (d *Document) Add(g *Group) error {
	if d.index == nil {
		d.index = make(map[string]int)
	}
	if _, ok := d.index[g.Name]; ok {
		return fmt.Errorf("namelist: group %q already exists", g.Name)
	}
	d.index[g.Name] = len(d.groups)
	d.groups = append(d.groups, g)
	return nil
}

// Has reports whether a group with the given name exists.
func (d *Document) Has(name string) bool {
	_, ok := d.index[name]
	return ok
}

// Group returns the group stored under name. Lookups are exact, with no case
// folding. A miss returns an error wrapping errors.ErrNotFound.
func (d *Document) Group(name string) (*Group, error) {
	i, ok := d.index[name]
	if !ok {
		return nil, &nmlerrors.NotFoundError{What: "group", Name: name}
	}
	return d.groups[i], nil
}

// Groups returns the groups in document order.
func (d *Document) Groups() []*Group {
	out := make([]*Group, len(d.groups))
	copy(out, d.groups)
	return out
}

// Names returns the group names in document order.
func (d *Document) Names() []string {
	names := make([]string, len(d.groups))
	for i, g := range d.groups {
		names[i] = g.Name
	}
	return names
}

// Len returns the number of groups.
func (d *Document) Len() int { return len(d.groups) }

// Lookup resolves a dotted path "group.variable".
func (d *Document) Lookup(path string) (Value, error) {
	groupName, varName, ok := strings.Cut(path, ".")
	if !ok {
		return nil, fmt.Errorf("namelist: lookup path %q is not of the form group.variable", path)
	}
	g, err := d.Group(groupName)
	if err != nil {
		return nil, err
	}
	return g.Get(varName)
}

// VariableNames returns the variable names of every group, in document
// order. A name that occurs in several groups is listed once.
func (d *Document) VariableNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, g := range d.groups {
		for _, name := range g.keys {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}

// Group is an ordered mapping from variable name to Value.
type Group struct {
	Name   string
	keys   []string
	values map[string]Value
}

// NewGroup returns an empty group.
func NewGroup(name string) *Group {
	return &Group{Name: name, values: make(map[string]Value)}
}

// Set assigns v to the variable name. A new name is appended after the
// existing ones; an existing name keeps its position.
func (g *Group) Set(name string, v Value) {
	if g.values == nil {
		g.values = make(map[string]Value)
	}
	if _, ok := g.values[name]; !ok {
		g.keys = append(g.keys, name)
	}
	g.values[name] = v
}

// Get returns the value of the named variable. A miss returns an error
// wrapping errors.ErrNotFound.
func (g *Group) Get(name string) (Value, error) {
	v, ok := g.values[name]
	if !ok {
		return nil, &nmlerrors.NotFoundError{What: "variable", Name: name}
	}
	return v, nil
}

// Has reports whether the named variable exists.
func (g *Group) Has(name string) bool {
	_, ok := g.values[name]
	return ok
}

// Names returns the variable names in assignment order.
func (g *Group) Names() []string {
	out := make([]string, len(g.keys))
	copy(out, g.keys)
	return out
}

// Len returns the number of variables.
func (g *Group) Len() int { return len(g.keys) }

// All iterates over the variables in assignment order.
func (g *Group) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, k := range g.keys {
			if !yield(k, g.values[k]) {
				return
			}
		}
	}
}

// BaseName strips an array index suffix such as "(3)" from a variable name,
// so "x(3)" becomes "x". Other names are returned unchanged.
func BaseName(name string) string {
	open := strings.IndexByte(name, '(')
	if open <= 0 || !strings.HasSuffix(name, ")") {
		return name
	}
	digits := name[open+1 : len(name)-1]
	if digits == "" {
		return name
	}
	for _, c := range digits {
		if c < '0' || c > '9' {
			return name
		}
	}
	return name[:open]
}
