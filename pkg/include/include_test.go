package include

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestExpandNoDirectivesReturnsInputUnchanged(t *testing.T) {
	inputs := []string{
		"",
		"hello",
		"multi\nline\ninput",
		"mentions a file.txt but no directive",
		"almost @file but no parens",
	}
	for _, input := range inputs {
		out, notices := Expand(input)
		assert.Equal(t, input, out)
		assert.Empty(t, notices)
	}
}

func TestExpandSingleDirective(t *testing.T) {
	path := writeTempFile(t, "notes.txt", "file body here")

	out, notices := Expand(fmt.Sprintf("please review @file(%s) thanks", path))

	require.Len(t, notices, 1)
	assert.Equal(t, path, notices[0].Path)
	assert.NoError(t, notices[0].Err)

	assert.Contains(t, out, "file body here")
	assert.Contains(t, out, "===== BEGIN FILE "+path+" =====")
	assert.Contains(t, out, "===== END FILE "+path+" =====")
	assert.NotContains(t, out, "@file(")
	assert.Contains(t, out, "please review")
	assert.Contains(t, out, "thanks")
}

func TestExpandMultipleDirectivesInOrder(t *testing.T) {
	first := writeTempFile(t, "a.txt", "alpha contents")
	second := writeTempFile(t, "b.txt", "beta contents")

	input := fmt.Sprintf("compare @file(%s) with @file(%s)", first, second)
	out, notices := Expand(input)

	require.Len(t, notices, 2)
	assert.Equal(t, first, notices[0].Path)
	assert.Equal(t, second, notices[1].Path)

	firstIdx := strings.Index(out, "alpha contents")
	secondIdx := strings.Index(out, "beta contents")
	require.GreaterOrEqual(t, firstIdx, 0)
	require.GreaterOrEqual(t, secondIdx, 0)
	assert.Less(t, firstIdx, secondIdx, "contents must appear in directive order")

	// Each file's content appears exactly once
	assert.Equal(t, 1, strings.Count(out, "alpha contents"))
	assert.Equal(t, 1, strings.Count(out, "beta contents"))
}

func TestExpandMissingFileEmbedsErrorMarker(t *testing.T) {
	input := "look at @file(/no/such/file.txt) please"
	out, notices := Expand(input)

	require.Len(t, notices, 1)
	assert.Error(t, notices[0].Err)

	assert.Contains(t, out, "[could not read file /no/such/file.txt:")
	assert.NotContains(t, out, "@file(")
	// Rest of the input is unaffected
	assert.Contains(t, out, "look at")
	assert.Contains(t, out, "please")
}

func TestExpandMixedValidAndInvalidDirectives(t *testing.T) {
	valid := writeTempFile(t, "ok.txt", "readable")

	out, notices := Expand(fmt.Sprintf("@file(%s) and @file(/missing.txt)", valid))

	require.Len(t, notices, 2)
	assert.NoError(t, notices[0].Err)
	assert.Error(t, notices[1].Err)
	assert.Contains(t, out, "readable")
	assert.Contains(t, out, "[could not read file /missing.txt:")
}

func TestExpandBinaryFileEmbedsErrorMarker(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blob.bin")
	require.NoError(t, os.WriteFile(path, []byte{0xff, 0xfe, 0x00, 0x81}, 0644))

	out, notices := Expand(fmt.Sprintf("@file(%s)", path))

	require.Len(t, notices, 1)
	assert.Error(t, notices[0].Err)
	assert.Contains(t, out, "not valid UTF-8")
}

func TestExpandEmptyPathEmbedsErrorMarker(t *testing.T) {
	out, notices := Expand("see @file()")

	require.Len(t, notices, 1)
	assert.Error(t, notices[0].Err)
	assert.Contains(t, out, "empty path")
}
