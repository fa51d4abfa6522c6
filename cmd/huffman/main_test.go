package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.txt")
	packed := filepath.Join(dir, "in.huff")
	restored := filepath.Join(dir, "out.txt")
	content := []byte(strings.Repeat("to be or not to be\n", 400))
	require.NoError(t, os.WriteFile(src, content, 0o644))

	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"huffman", src, packed}, &stdout, &stderr), stderr.String())
	assert.Contains(t, stdout.String(), "Compressing")
	assert.Contains(t, stdout.String(), "Compression ratio:")

	stdout.Reset()
	require.Equal(t, 0, run([]string{"huffman", "-x", packed, restored}, &stdout, &stderr), stderr.String())
	assert.Contains(t, stdout.String(), "Expanding")

	got, err := os.ReadFile(restored)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestRunExpandByProgramName(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.bin")
	packed := filepath.Join(dir, "in.huff")
	restored := filepath.Join(dir, "in.out")
	require.NoError(t, os.WriteFile(src, []byte{0, 0, 0, 1, 255}, 0o644))

	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"/usr/bin/huffman", src, packed}, &stdout, &stderr))
	require.Equal(t, 0, run([]string{"/usr/bin/huffman-expand", packed, restored}, &stdout, &stderr))

	got, err := os.ReadFile(restored)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 1, 255}, got)
}

func TestRunDumpFlagAfterFiles(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.txt")
	require.NoError(t, os.WriteFile(src, []byte("AAAB"), 0o644))

	var stdout, stderr bytes.Buffer
	code := run([]string{"huffman", src, filepath.Join(dir, "out.huff"), "-d"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stdout.String(), "node='A' count=  3")
	assert.Contains(t, stdout.String(), "Huffman code=1")
}

func TestRunUsage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 0, run([]string{"huffman"}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "Usage: huffman")

	stdout.Reset()
	assert.Equal(t, 0, run([]string{"huffman", "only-one"}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "Usage:")

	assert.Equal(t, 2, run([]string{"huffman", "a", "b", "c"}, &stdout, &stderr))
	assert.Equal(t, 2, run([]string{"huffman", "-z", "a", "b"}, &stdout, &stderr))
}

func TestRunFailures(t *testing.T) {
	dir := t.TempDir()
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 1, run([]string{"huffman", filepath.Join(dir, "missing"), filepath.Join(dir, "out")}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "Error:")

	corrupt := filepath.Join(dir, "corrupt.huff")
	require.NoError(t, os.WriteFile(corrupt, []byte{'A', 'B', 3, 1, 0}, 0o644))
	stderr.Reset()
	assert.Equal(t, 1, run([]string{"huffman", "-x", corrupt, filepath.Join(dir, "out")}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "unexpected end of stream")
}
