package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func blocks(t *testing.T, input string) []*Block {
	t.Helper()
	l := New([]byte(input))
	var out []*Block
	for {
		b, err := l.NextBlock()
		require.NoError(t, err)
		if b == nil {
			return out
		}
		out = append(out, b)
	}
}

func TestNextBlock(t *testing.T) {
	input := `! leading comment
&star_job
   create_pre_main_sequence_model = .true. ! inline comment
   save_model_filename = 'final.mod'
/ ! end of star_job namelist

&controls
   ! full-line comment
   initial_mass = 15
   log_directory = 'LOGS/15M'
/
`
	got := blocks(t, input)
	require.Len(t, got, 2)

	require.Equal(t, "star_job", got[0].Name)
	require.Equal(t, 2, got[0].Line)
	require.Equal(t, []Line{
		{Text: "create_pre_main_sequence_model = .true.", Num: 3},
		{Text: "save_model_filename = 'final.mod'", Num: 4},
	}, got[0].Lines)

	require.Equal(t, "controls", got[1].Name)
	require.Equal(t, 7, got[1].Line)
	require.Equal(t, []Line{
		{Text: "initial_mass = 15", Num: 9},
		{Text: "log_directory = 'LOGS/15M'", Num: 10},
	}, got[1].Lines)
}

func TestNextBlock_SingleLine(t *testing.T) {
	got := blocks(t, "&a x = 1 / &b y = 2, z = 3 /")
	require.Len(t, got, 2)
	require.Equal(t, "a", got[0].Name)
	require.Equal(t, []Line{{Text: "x = 1", Num: 1}}, got[0].Lines)
	require.Equal(t, "b", got[1].Name)
	require.Equal(t, []Line{{Text: "y = 2, z = 3", Num: 1}}, got[1].Lines)
}

func TestNextBlock_NameFollowedBySlash(t *testing.T) {
	got := blocks(t, "&empty/\n&eos\n/\n")
	require.Len(t, got, 2)
	require.Equal(t, "empty", got[0].Name)
	require.Empty(t, got[0].Lines)
	require.Equal(t, "eos", got[1].Name)
	require.Empty(t, got[1].Lines)
}

func TestNextBlock_QuotedDelimiters(t *testing.T) {
	got := blocks(t, "&files\n   dir = 'a/b!c'\n   other = \"x&y\"\n/\n")
	require.Len(t, got, 1)
	require.Equal(t, []Line{
		{Text: "dir = 'a/b!c'", Num: 2},
		{Text: `other = "x&y"`, Num: 3},
	}, got[0].Lines)
}

func TestNextBlock_CRLF(t *testing.T) {
	got := blocks(t, "&g\r\n   x = 1\r\n/\r\n")
	require.Len(t, got, 1)
	require.Equal(t, []Line{{Text: "x = 1", Num: 2}}, got[0].Lines)
}

func TestNextBlock_Stray(t *testing.T) {
	l := New([]byte("header text\n&g\n x = 1\n/ trailing\n"))
	b, err := l.NextBlock()
	require.NoError(t, err)
	require.Equal(t, "g", b.Name)
	b, err = l.NextBlock()
	require.NoError(t, err)
	require.Nil(t, b)
	require.Equal(t, []Line{
		{Text: "header text", Num: 1},
		{Text: "trailing", Num: 4},
	}, l.Stray)
}

func TestNextBlock_Empty(t *testing.T) {
	require.Empty(t, blocks(t, ""))
	require.Empty(t, blocks(t, "! nothing but comments\n\n"))
}

func TestNextBlock_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *Error
	}{
		{
			name:     "Unterminated Group",
			input:    "&controls\n   x = 1\n",
			expected: &Error{Line: 1, Group: "controls", Message: "group is not terminated by '/'"},
		},
		{
			name:     "Missing Name",
			input:    "\n& \n x = 1\n/\n",
			expected: &Error{Line: 2, Message: "group name missing after '&'"},
		},
		{
			name:     "Ampersand Inside Group",
			input:    "&a\n x = 1\n&b\n y = 2\n/\n",
			expected: &Error{Line: 3, Group: "a", Message: "'&' inside a group; the previous group is not terminated by '/'"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New([]byte(tt.input))
			_, err := l.NextBlock()
			require.Error(t, err)
			require.Equal(t, tt.expected, err)
		})
	}
}

func TestError(t *testing.T) {
	err := &Error{Line: 4, Group: "g", Message: "boom"}
	require.EqualError(t, err, "line 4: boom")
}
