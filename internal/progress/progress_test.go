package progress

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewReturnsPlainWriterForNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, false, 1000)
	_, ok := r.(*plainWriter)
	require.True(t, ok, "New() with a non-*os.File writer = %T, want *plainWriter", r)
}

func TestPlainWriterPrintsProportionalDots(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, false, 1000)
	r.Update(0.5)
	require.Equal(t, 20, strings.Count(buf.String(), "."))
}

func TestPlainWriterNeverPrintsFewerDotsOnRegression(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, false, 1000)
	r.Update(0.5)
	r.Update(0.3)
	require.Equal(t, 20, strings.Count(buf.String(), "."))
}

func TestPlainWriterDoneFillsToForty(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, false, 1000)
	r.Update(0.1)
	r.Done()
	require.Equal(t, 40, strings.Count(buf.String(), "."))
	require.True(t, strings.HasSuffix(buf.String(), "\n"))
}
