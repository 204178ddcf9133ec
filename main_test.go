package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openrelayxyz/partmanager/internal/part"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("PART_LOG_LEVEL", "error")
	t.Setenv("PART_LOG_FORMAT", "")
	t.Setenv("PART_OUTPUT_DIR", "")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "config.yaml")}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestSplitRequiresExactlyOneSelector(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "f")
	require.NoError(t, os.WriteFile(src, []byte("abcdef"), 0644))

	_, err := execute(t, "split", "-n", "2", "-s", "3", src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "none of the others can be")

	_, err = execute(t, "split", src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one of the flags")

	_, statErr := os.Stat(part.MetadataPath(src))
	assert.True(t, os.IsNotExist(statErr))
}

func TestSplitInvalidSize(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "f")
	require.NoError(t, os.WriteFile(src, []byte("abcdef"), 0644))

	_, err := execute(t, "split", "-s", "lots", src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid size")
}

func TestSplitThenCombine(t *testing.T) {
	data := bytes.Repeat([]byte("0123456789abcdef"), 512)
	for _, splitArgs := range [][]string{
		{"split", "-n", "5"},
		{"s", "--number", "3"},
		{"split", "-s", "1KiB"},
		{"split", "--size", "1000"},
	} {
		t.Run(splitArgs[len(splitArgs)-1], func(t *testing.T) {
			dir := t.TempDir()
			src := filepath.Join(dir, "payload.bin")
			require.NoError(t, os.WriteFile(src, data, 0644))

			out, err := execute(t, append(splitArgs, src)...)
			require.NoError(t, err)
			assert.Contains(t, out, "Split")
			require.NoError(t, os.Remove(src))

			out, err = execute(t, "verify", "--dir", dir, part.MetadataPath(src))
			require.NoError(t, err)
			assert.Contains(t, out, "verified")

			out, err = execute(t, "c", "--dir", dir, part.MetadataPath(src))
			require.NoError(t, err)
			assert.Contains(t, out, "File successfully combined")

			got, err := os.ReadFile(src)
			require.NoError(t, err)
			assert.Equal(t, data, got)
		})
	}
}

func TestCombineReportsFailingPart(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "doc.txt")
	require.NoError(t, os.WriteFile(src, []byte("hello partitioned world"), 0644))

	_, err := execute(t, "split", "-n", "3", src)
	require.NoError(t, err)
	require.NoError(t, os.Remove(src))
	require.NoError(t, os.WriteFile(part.PartPath(src, 2), []byte("tampered"), 0644))

	_, err = execute(t, "combine", "-d", dir, part.MetadataPath(src))
	require.ErrorIs(t, err, part.ErrPartChecksumMismatch)
	assert.Contains(t, err.Error(), "part 2")

	_, statErr := os.Stat(src)
	assert.True(t, os.IsNotExist(statErr))
}

func TestCombineUsesConfiguredOutputDir(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "cfg.bin")
	require.NoError(t, os.WriteFile(src, []byte("configured directory"), 0644))

	_, err := execute(t, "split", "-n", "2", src)
	require.NoError(t, err)
	require.NoError(t, os.Remove(src))

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("combine:\n  output_dir: "+dir+"\n"), 0644))

	// --config given twice: the later value wins.
	_, err = execute(t, "--config", cfgPath, "combine", part.MetadataPath(src))
	require.NoError(t, err)

	got, err := os.ReadFile(src)
	require.NoError(t, err)
	assert.Equal(t, "configured directory", string(got))
}

func TestInfo(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "letters.txt")
	require.NoError(t, os.WriteFile(src, []byte("abcdefg"), 0644))

	_, err := execute(t, "split", "-n", "3", src)
	require.NoError(t, err)

	out, err := execute(t, "info", part.MetadataPath(src))
	require.NoError(t, err)
	assert.Contains(t, out, "letters.txt")
	assert.Contains(t, out, "Parts:")
	assert.Contains(t, out, "Part 2:")
}

func TestInfoMissingMetadata(t *testing.T) {
	_, err := execute(t, "info", filepath.Join(t.TempDir(), "nope.partinfo"))
	assert.ErrorIs(t, err, part.ErrMetadataNotFound)
}
