package lexer

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"
	"unicode"
)

// Line is one physical source line with comments removed.
type Line struct {
	Text string
	Num  int
}

// Block is the body of one "&name ... /" group.
type Block struct {
	Name  string
	Line  int // line of the opening '&'
	Lines []Line
}

// Lexer splits namelist source into group blocks. Text outside any group is
// collected in Stray for the parser to check.
type Lexer struct {
	s     *bufio.Scanner
	line  int
	rest  string // unconsumed text of the current line
	has   bool   // rest holds text from the current line
	Stray []Line
}

// New creates and returns a new Lexer.
func New(data []byte) *Lexer {
	s := bufio.NewScanner(bytes.NewReader(data))
	s.Buffer(make([]byte, 0, 64*1024), len(data)+1)
	return &Lexer{s: s}
}

// Error is a lexical error tied to a source line.
type Error struct {
	Line    int
	Group   string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// NextBlock scans the next group. It returns nil, nil at the end of input.
func (l *Lexer) NextBlock() (*Block, error) {
	// Find the opening '&'.
	for {
		if !l.has && !l.readLine() {
			return nil, nil
		}
		amp := strings.IndexByte(l.rest, '&')
		if amp < 0 {
			l.stray(l.rest)
			l.has = false
			continue
		}
		l.stray(l.rest[:amp])
		l.rest = l.rest[amp+1:]
		break
	}

	block := &Block{Line: l.line}
	name, rest := splitName(l.rest)
	if name == "" {
		return nil, &Error{Line: l.line, Message: "group name missing after '&'"}
	}
	block.Name = name
	l.rest = rest

	for {
		if !l.has && !l.readLine() {
			return nil, &Error{Line: block.Line, Group: block.Name, Message: "group is not terminated by '/'"}
		}
		end := IndexUnquoted(l.rest, '/')
		body := l.rest
		if end >= 0 {
			body = l.rest[:end]
		}
		if amp := IndexUnquoted(body, '&'); amp >= 0 {
			return nil, &Error{Line: l.line, Group: block.Name, Message: "'&' inside a group; the previous group is not terminated by '/'"}
		}
		if text := strings.TrimSpace(body); text != "" {
			block.Lines = append(block.Lines, Line{Text: text, Num: l.line})
		}
		if end >= 0 {
			l.rest = l.rest[end+1:]
			return block, nil
		}
		l.has = false
	}
}

// readLine loads the next physical line into rest, dropping full-line
// comments and trailing inline comments.
func (l *Lexer) readLine() bool {
	for l.s.Scan() {
		l.line++
		text := strings.TrimSuffix(l.s.Text(), "\r")
		if strings.HasPrefix(strings.TrimSpace(text), "!") {
			continue
		}
		l.rest = StripComment(text)
		l.has = true
		return true
	}
	l.has = false
	return false
}

func (l *Lexer) stray(text string) {
	if text = strings.TrimSpace(text); text != "" {
		l.Stray = append(l.Stray, Line{Text: text, Num: l.line})
	}
}

// splitName takes the group name off the text following '&'. The name ends
// at the first white space or '/'.
func splitName(s string) (name, rest string) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := strings.IndexFunc(s, func(r rune) bool {
		return r == '/' || unicode.IsSpace(r)
	})
	if end < 0 {
		return s, ""
	}
	return s[:end], s[end:]
}

// StripComment truncates s at the first '!' that is not inside a quoted
// string.
func StripComment(s string) string {
	if i := IndexUnquoted(s, '!'); i >= 0 {
		return s[:i]
	}
	return s
}
