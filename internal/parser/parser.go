package parser

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/KimNorgaard/go-namelist/ast"
	nmlerrors "github.com/KimNorgaard/go-namelist/errors"
	"github.com/KimNorgaard/go-namelist/internal/lexer"
)

// Parser holds the state of the parser.
type Parser struct {
	l      *lexer.Lexer
	logger *slog.Logger
	errors nmlerrors.ParseErrors

	// dupes counts the renames handed out per repeated group name.
	dupes map[string]int
}

// New creates a new parser. A nil logger discards all output.
func New(l *lexer.Lexer, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Parser{
		l:      l,
		logger: logger,
		dupes:  make(map[string]int),
	}
}

// Errors returns the errors encountered during parsing.
func (p *Parser) Errors() nmlerrors.ParseErrors {
	return p.errors
}

// Parse reads every group from the lexer and returns the document. When
// Errors is non-empty the document is incomplete and must not be used.
func (p *Parser) Parse() *ast.Document {
	doc := ast.NewDocument()
	for {
		block, err := p.l.NextBlock()
		if err != nil {
			var lexErr *lexer.Error
			if errors.As(err, &lexErr) {
				p.errorf(nmlerrors.ErrSyntax, lexErr.Group, lexErr.Line, "", "%s", lexErr.Message)
			} else {
				p.errorf(nmlerrors.ErrSyntax, "", 0, "", "%s", err)
			}
			break
		}
		if block == nil {
			break
		}

		group := p.parseBlock(block)
		name := p.resolveName(doc, block.Name)
		group.Name = name
		if err := doc.Add(group); err != nil {
			p.errorf(nmlerrors.ErrSyntax, name, block.Line, "", "%s", err)
		}
	}

	for _, s := range p.l.Stray {
		switch {
		case lexer.IndexUnquoted(s.Text, '/') >= 0:
			p.errorf(nmlerrors.ErrSyntax, "", s.Num, s.Text, "'/' without a matching '&'")
		case lexer.IndexUnquoted(s.Text, '=') >= 0:
			p.errorf(nmlerrors.ErrSyntax, "", s.Num, s.Text, "assignment outside of any group")
		default:
			p.logger.Debug("ignoring text outside of any group", "line", s.Num, "text", s.Text)
		}
	}
	return doc
}

// resolveName returns name if it is free, otherwise name followed by the
// next unused counter value, starting from 0.
func (p *Parser) resolveName(doc *ast.Document, name string) string {
	if !doc.Has(name) {
		return name
	}
	n := p.dupes[name]
	candidate := name + strconv.Itoa(n)
	for doc.Has(candidate) {
		n++
		candidate = name + strconv.Itoa(n)
	}
	p.dupes[name] = n + 1
	p.logger.Debug("renamed duplicate group", "group", name, "as", candidate)
	return candidate
}

// assignment is one logical "name = value" line.
type assignment struct {
	text string
	line int
}

func (p *Parser) parseBlock(block *lexer.Block) *ast.Group {
	b := newGroupBuilder(block.Name)
	for _, a := range p.assemble(block) {
		p.parseAssignment(b, a)
	}
	return b.build(p)
}

// assemble joins continuation lines onto the assignment they belong to. A
// line without '=' continues the previous line only if that line ends with
// a comma.
func (p *Parser) assemble(block *lexer.Block) []assignment {
	var out []assignment
	for _, line := range block.Lines {
		if lexer.IndexUnquoted(line.Text, '=') >= 0 {
			out = append(out, assignment{text: line.Text, line: line.Num})
			continue
		}
		if len(out) > 0 && strings.HasSuffix(out[len(out)-1].text, ",") {
			out[len(out)-1].text += line.Text
			continue
		}
		p.errorf(nmlerrors.ErrSyntax, block.Name, line.Num, line.Text, "expected an assignment")
	}
	return out
}

func (p *Parser) parseAssignment(b *groupBuilder, a assignment) {
	text := strings.TrimSuffix(a.text, ",")
	eq := lexer.IndexUnquoted(text, '=')
	rawName := strings.TrimSpace(text[:eq])
	rawValue := strings.TrimSpace(text[eq+1:])

	if rawName == "" {
		p.errorf(nmlerrors.ErrSyntax, b.name, a.line, a.text, "assignment without a variable name")
		return
	}

	name, index, indexed, err := splitIndex(rawName)
	if err != nil {
		p.errorf(nmlerrors.ErrInconsistentIndex, b.name, a.line, rawName, "%s", err)
		return
	}

	if rawValue == "" {
		p.logger.Debug("skipping assignment without a value", "group", b.name, "line", a.line, "variable", rawName)
		return
	}

	if v, ok := lexer.ParseScalar(rawValue); ok {
		if indexed {
			b.setIndex(name, index, v, a.line)
		} else {
			b.set(name, v)
		}
		return
	}

	// Not a single literal: read it as an inline array. Its items fill
	// slots from the first one on, whatever index the name carries.
	items, err := lexer.SplitArray(rawValue)
	if err != nil {
		p.errorf(nmlerrors.ErrMalformedLiteral, b.name, a.line, rawValue, "%s", err)
		return
	}
	values := make([]ast.Value, 0, len(items))
	for _, item := range items {
		v, ok := lexer.ParseScalar(item)
		if !ok {
			p.errorf(nmlerrors.ErrMalformedLiteral, b.name, a.line, item, "value of %s", rawName)
			return
		}
		values = append(values, v)
	}
	if indexed {
		p.logger.Debug("inline array ignores the assigned index", "group", b.name, "line", a.line, "variable", rawName)
	}
	for i, v := range values {
		b.setIndex(name, i, v, a.line)
	}
}

// splitIndex splits "x(3)" into "x" and the zero-based index 2. Names
// without an index suffix are returned whole with indexed set to false.
func splitIndex(raw string) (name string, index int, indexed bool, err error) {
	base := ast.BaseName(raw)
	if base == raw {
		return raw, 0, false, nil
	}
	digits := raw[len(base)+1 : len(raw)-1]
	name = strings.TrimSpace(base)
	n, err := strconv.Atoi(digits)
	if err != nil {
		return "", 0, false, fmt.Errorf("index out of range")
	}
	if n < 1 {
		return "", 0, false, fmt.Errorf("index %d of %s is below 1", n, name)
	}
	return name, n - 1, true, nil
}

func (p *Parser) errorf(kind error, group string, line int, text, format string, args ...any) {
	p.errors = append(p.errors, &nmlerrors.ParseError{
		Kind:    kind,
		Group:   group,
		Line:    line,
		Text:    text,
		Message: fmt.Sprintf(format, args...),
	})
}
