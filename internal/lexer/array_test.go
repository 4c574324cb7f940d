package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitArray(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"Blank Separated", "1 2 3", []string{"1", "2", "3"}},
		{"Comma Separated", "1.0,2.0,3.0", []string{"1.0", "2.0", "3.0"}},
		{"Mixed Separators", "1, 2  3,\t4", []string{"1", "2", "3", "4"}},
		{"Quoted With Blanks", "'a', 'b b', 'c'", []string{"'a'", "'b b'", "'c'"}},
		{"Two Strings", "'a b', 'c'", []string{"'a b'", "'c'"}},
		{"Comma In Quotes", "'a,b' 'c'", []string{"'a,b'", "'c'"}},
		{"Double Quotes", `"x y" 'z'`, []string{`"x y"`, "'z'"}},
		{"Quoted And Unquoted", "'a', 5, 'b'", []string{"'a'", "5", "'b'"}},
		{"Complex Blank Separated", "(1.0,2.0) (3.0,4.0)", []string{"(1.0,2.0)", "(3.0,4.0)"}},
		{"Complex Comma Separated", "(1.0,2.0),(3.0,4.0)", []string{"(1.0,2.0)", "(3.0,4.0)"}},
		{"Repeat Count", "3*0.5 1.0", []string{"0.5", "0.5", "0.5", "1.0"}},
		{"Repeated String", "2*'a b'", []string{"'a b'", "'a b'"}},
		{"Star In String", "'a*b'", []string{"'a*b'"}},
		{"Empty Items", "1,,2,", []string{"1", "2"}},
		{"Empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := SplitArray(tt.input)
			require.NoError(t, err)
			require.Equal(t, tt.expected, items)
		})
	}
}

func TestSplitArray_ItemLimit(t *testing.T) {
	items, err := SplitArray("16383*1 2")
	require.NoError(t, err)
	require.Len(t, items, maxItems)

	_, err = SplitArray("16383*1 2 3")
	require.EqualError(t, err, "array has more than 16384 items")

	_, err = SplitArray("8192*1 8193*0")
	require.EqualError(t, err, "array has more than 16384 items")
}

func TestSplitArray_Errors(t *testing.T) {
	tests := []struct {
		input       string
		expectedErr string
	}{
		{"'a b", "unterminated ' quote"},
		{`"a b`, `unterminated " quote`},
		{"(1.0,2.0", "unbalanced '('"},
		{"1.0)", "unbalanced ')' at offset 3"},
		{"0*1", `invalid repeat count in "0*1"`},
		{"3*", `repeat count without a value in "3*"`},
		{"999999999*1", "array has more than 16384 items"},
		{"99999999999999999999*1", `invalid repeat count in "99999999999999999999*1"`},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := SplitArray(tt.input)
			require.EqualError(t, err, tt.expectedErr)
		})
	}
}

func TestIndexUnquoted(t *testing.T) {
	require.Equal(t, 2, IndexUnquoted("x = 'a=b'", '='))
	require.Equal(t, -1, IndexUnquoted("'a=b'", '='))
	require.Equal(t, 7, IndexUnquoted(`"a'!b" ! c`, '!'))
	require.Equal(t, -1, IndexUnquoted("", '/'))
}

func TestStripComment(t *testing.T) {
	require.Equal(t, "x = 1 ", StripComment("x = 1 ! comment"))
	require.Equal(t, "title = 'Hello!'", StripComment("title = 'Hello!'"))
	require.Equal(t, "", StripComment("! only a comment"))
}
