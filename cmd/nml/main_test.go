package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	var out, errOut bytes.Buffer
	err := run([]string{"nml", "fmt", "-"}, strings.NewReader("&g\n x = 1\n y = 'a'\n/\n"), &out, &errOut)
	require.NoError(t, err)
	require.Equal(t, "&g\n   x = 1\n   y = 'a'\n/ ! end of g namelist\n", out.String())
}

func TestRun_Error(t *testing.T) {
	var out, errOut bytes.Buffer
	err := run([]string{"nml", "get", "-"}, strings.NewReader(""), &out, &errOut)
	require.Error(t, err)
	require.Empty(t, out.String())
}
