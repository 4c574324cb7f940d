// Package testutil gives tests access to the sample namelists shared
// between packages.
package testutil

import (
	"embed"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/require"
)

//go:embed testdata
var testdata embed.FS

// ReadFile returns the content of the named sample file and fails the test
// when it is missing.
func ReadFile(t testing.TB, name string) []byte {
	t.Helper()
	data, err := fs.ReadFile(testdata, "testdata/"+name)
	require.NoError(t, err, "reading sample %s", name)
	return data
}
