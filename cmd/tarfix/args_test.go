package main

import (
	"testing"

	"github.com/moycat/tarfix"
	"gotest.tools/v3/assert"
)

func Test_parseArgs(t *testing.T) {
	cmd, err := parseArgs(nil)
	assert.NilError(t, err)
	assert.Equal(t, cmd.outputPath, ".")
	assert.Equal(t, cmd.algorithm.value, tarfix.GzipAlgorithm)
	assert.Equal(t, cmd.level.value, tarfix.BestLevel)
	assert.Equal(t, len(cmd.fixtures), 0)
	assert.Equal(t, len(cmd.options()), 2)

	cmd, err = parseArgs([]string{"-d", "out", "-c", "lz4", "-l", "fast", "-m", "fixtures.sum", "valid", "corrupted"})
	assert.NilError(t, err)
	assert.Equal(t, cmd.outputPath, "out")
	assert.Equal(t, cmd.algorithm.value, tarfix.LZ4Algorithm)
	assert.Equal(t, cmd.level.value, tarfix.FastLevel)
	assert.Equal(t, cmd.manifest, "fixtures.sum")
	assert.DeepEqual(t, cmd.fixtures, []string{"valid", "corrupted"})
	assert.Equal(t, len(cmd.options()), 4)

	_, err = parseArgs([]string{"-c", "zstd"})
	assert.ErrorContains(t, err, "unknown algorithm")
}

func Test_generate(t *testing.T) {
	tmpDir := t.TempDir()
	cmd, err := parseArgs([]string{"-d", tmpDir, "device_file"})
	assert.NilError(t, err)
	assert.NilError(t, generate(cmd))
}
