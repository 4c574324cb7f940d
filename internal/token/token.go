// Package token defines the literal classes of namelist values.
package token

// Type is the literal class of a value token.
type Type string

const (
	// Special tokens
	ILLEGAL Type = "ILLEGAL" // matches no literal form

	// Literals
	INT     Type = "INT"     // 12345
	REAL    Type = "REAL"    // 1.5d2
	COMPLEX Type = "COMPLEX" // (1.0,2.0)
	LOGICAL Type = "LOGICAL" // .true.
	STRING  Type = "STRING"  // 'hello world'
)

var logicals = map[string]bool{
	".true.":  true,
	"T":       true,
	".false.": false,
	"F":       false,
}

// LookupLogical checks the logical keyword table. The second result is
// false if lit is not a logical literal.
func LookupLogical(lit string) (value, ok bool) {
	value, ok = logicals[lit]
	return value, ok
}
