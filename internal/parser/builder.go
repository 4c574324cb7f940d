package parser

import (
	"github.com/KimNorgaard/go-namelist/ast"
	nmlerrors "github.com/KimNorgaard/go-namelist/errors"
)

// entry is a variable while its group is being parsed. It holds either a
// scalar or a sparse slot table, never both.
type entry struct {
	scalar ast.Value
	slots  map[int]ast.Value
	line   int // first indexed assignment
}

// groupBuilder collects the assignments of one group in the order the
// variables were first assigned.
type groupBuilder struct {
	name    string
	order   []string
	entries map[string]*entry
}

func newGroupBuilder(name string) *groupBuilder {
	return &groupBuilder{name: name, entries: make(map[string]*entry)}
}

func (b *groupBuilder) entry(name string) *entry {
	e, ok := b.entries[name]
	if !ok {
		e = &entry{}
		b.entries[name] = e
		b.order = append(b.order, name)
	}
	return e
}

// set handles a plain "x = v". On an array it writes the first element.
func (b *groupBuilder) set(name string, v ast.Value) {
	e := b.entry(name)
	if e.slots != nil {
		e.slots[0] = v
		return
	}
	e.scalar = v
}

// setIndex handles "x(i) = v" and each item of an inline array. A scalar
// already held by the variable becomes its first element.
func (b *groupBuilder) setIndex(name string, index int, v ast.Value, line int) {
	e := b.entry(name)
	if e.slots == nil {
		e.slots = make(map[int]ast.Value)
		e.line = line
		if e.scalar != nil {
			e.slots[0] = e.scalar
			e.scalar = nil
		}
	}
	e.slots[index] = v
}

// build densifies every slot table into a List and returns the group.
// A slot table whose indices are not exactly 0..n-1 is reported as an
// inconsistent array index.
func (b *groupBuilder) build(p *Parser) *ast.Group {
	g := ast.NewGroup(b.name)
	for _, name := range b.order {
		e := b.entries[name]
		if e.slots == nil {
			g.Set(name, e.scalar)
			continue
		}
		list := make(ast.List, len(e.slots))
		missing := -1
		for i := range list {
			v, ok := e.slots[i]
			if !ok {
				missing = i
				break
			}
			list[i] = v
		}
		if missing >= 0 {
			p.errorf(nmlerrors.ErrInconsistentIndex, b.name, e.line, name,
				"no value for index %d of %d assigned elements", missing+1, len(e.slots))
			continue
		}
		g.Set(name, list)
	}
	return g
}
