package lexer

import (
	"fmt"
	"strconv"
	"strings"
)

// maxItems bounds the number of items one array literal expands to,
// repeat items included.
const maxItems = 1 << 14

// SplitArray breaks an inline array literal into item literals. Items are
// separated by commas or blanks; separators inside quotes or parentheses
// do not split, so 'a b' and (1.0,2.0) stay whole. An item of the form
// r*value expands to r copies of value.
func SplitArray(s string) ([]string, error) {
	var (
		items []string
		buf   strings.Builder
		quote byte
		depth int
	)
	flush := func() error {
		if buf.Len() == 0 {
			return nil
		}
		expanded, err := expandRepeat(buf.String(), maxItems-len(items))
		if err != nil {
			return err
		}
		items = append(items, expanded...)
		buf.Reset()
		return nil
	}

	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case quote != 0:
			if ch == quote {
				quote = 0
			}
		case ch == '\'' || ch == '"':
			quote = ch
		case ch == '(':
			depth++
		case ch == ')':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("unbalanced ')' at offset %d", i)
			}
		case depth == 0 && (ch == ',' || ch == ' ' || ch == '\t'):
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}
		buf.WriteByte(ch)
	}

	if quote != 0 {
		return nil, fmt.Errorf("unterminated %c quote", quote)
	}
	if depth != 0 {
		return nil, fmt.Errorf("unbalanced '('")
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return items, nil
}

// expandRepeat expands "r*value" into at most room items. Items without a
// leading repeat count are returned as they are.
func expandRepeat(item string, room int) ([]string, error) {
	star := strings.IndexByte(item, '*')
	if star <= 0 || consumeDigits(item, 0) != star {
		if room < 1 {
			return nil, fmt.Errorf("array has more than %d items", maxItems)
		}
		return []string{item}, nil
	}
	n, err := strconv.Atoi(item[:star])
	if err != nil || n < 1 {
		return nil, fmt.Errorf("invalid repeat count in %q", item)
	}
	if n > room {
		return nil, fmt.Errorf("array has more than %d items", maxItems)
	}
	value := item[star+1:]
	if value == "" {
		return nil, fmt.Errorf("repeat count without a value in %q", item)
	}
	out := make([]string, n)
	for i := range out {
		out[i] = value
	}
	return out, nil
}

// IndexUnquoted returns the index of the first c in s that is not inside a
// quoted string, or -1.
func IndexUnquoted(s string, c byte) int {
	var quote byte
	for i := 0; i < len(s); i++ {
		switch ch := s[i]; {
		case quote != 0:
			if ch == quote {
				quote = 0
			}
		case ch == '\'' || ch == '"':
			quote = ch
		case ch == c:
			return i
		}
	}
	return -1
}
