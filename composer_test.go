package tarfix

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/opencontainers/go-digest"
	"github.com/pierrec/lz4/v4"
	"gotest.tools/v3/assert"
)

func composeRaw(t *testing.T, entries []Entry, options ...Option) []byte {
	t.Helper()
	var buf bytes.Buffer
	c, err := NewComposer(&buf, options...)
	assert.NilError(t, err)
	assert.NilError(t, c.Add(entries...))
	assert.NilError(t, c.Close())
	// Size counts uncompressed bytes, which only match the output without compression.
	if c.algorithm == NoAlgorithm {
		assert.Equal(t, c.Size(), int64(buf.Len()))
	}
	return buf.Bytes()
}

func TestComposerPadding(t *testing.T) {
	for _, n := range []int{0, 1, 100, 511, 512, 513, 1500} {
		raw := composeRaw(t, []Entry{File("f", bytes.Repeat([]byte{'x'}, n))})
		padded := (n + 511) / 512 * 512
		assert.Equal(t, len(raw), 512+padded+1024, "content length %d", n)
		assert.Assert(t, isZero(raw[512+n:]), "content length %d", n)
	}
}

func TestComposerLinksHaveNoContent(t *testing.T) {
	raw := composeRaw(t, []Entry{
		SymlinkTo("s", "target"),
		HardLinkTo("h", "target"),
		Dir("d/"),
	})
	assert.Equal(t, len(raw), 3*512+1024)
}

func TestComposerWithoutTerminator(t *testing.T) {
	raw := composeRaw(t, []Entry{File("test.txt", bytes.Repeat([]byte{'A'}, 100))}, WithoutTerminator())
	assert.Equal(t, len(raw), 1024)
	assert.Equal(t, string(raw[512:612]), string(bytes.Repeat([]byte{'A'}, 100)))
}

func TestComposerEmpty(t *testing.T) {
	raw := composeRaw(t, nil)
	assert.Equal(t, len(raw), 1024)
	assert.Assert(t, isZero(raw))
}

func TestComposerDigest(t *testing.T) {
	var buf bytes.Buffer
	c, err := NewComposer(&buf, WithCompression(GzipAlgorithm))
	assert.NilError(t, err)
	assert.NilError(t, c.Add(File("a", []byte("a")), File("b", []byte("b"))))
	assert.NilError(t, c.Close())
	raw := composeRaw(t, []Entry{File("a", []byte("a")), File("b", []byte("b"))})
	assert.Equal(t, c.Digest(), digest.FromBytes(raw))
	assert.Equal(t, c.Size(), int64(len(raw)))
}

func TestComposerClosed(t *testing.T) {
	c, err := NewComposer(io.Discard)
	assert.NilError(t, err)
	assert.NilError(t, c.Close())
	assert.Assert(t, errors.Is(c.Add(File("late", nil)), ErrComposerClosed))
	assert.Assert(t, errors.Is(c.Close(), ErrComposerClosed))
}

func TestComposerGzip(t *testing.T) {
	entries := []Entry{Dir("d/"), File("d/f", []byte("content\n"))}
	raw := composeRaw(t, entries)
	compressed := composeRaw(t, entries, WithCompression(GzipAlgorithm), WithLevel(BestLevel))
	// The modification time and the OS byte are pinned.
	assert.DeepEqual(t, compressed[4:8], []byte{0, 0, 0, 0})
	assert.Equal(t, compressed[9], byte(gzipUnknownOS))
	gr, err := gzip.NewReader(bytes.NewReader(compressed))
	assert.NilError(t, err)
	assert.Equal(t, gr.Name, "")
	data, err := io.ReadAll(gr)
	assert.NilError(t, err)
	assert.DeepEqual(t, data, raw)
	assert.Assert(t, len(compressed) < len(raw))
	assert.DeepEqual(t, composeRaw(t, entries, WithCompression(GzipAlgorithm), WithLevel(BestLevel)), compressed)
}

func TestComposerLZ4(t *testing.T) {
	entries := []Entry{File("f", bytes.Repeat([]byte("lz4 "), 1000))}
	raw := composeRaw(t, entries)
	compressed := composeRaw(t, entries, WithCompression(LZ4Algorithm), WithLevel(GoodLevel))
	data, err := io.ReadAll(lz4.NewReader(bytes.NewReader(compressed)))
	assert.NilError(t, err)
	assert.DeepEqual(t, data, raw)
}

func TestComposerOptions(t *testing.T) {
	_, err := NewComposer(io.Discard, WithCompression(Algorithm(42)))
	assert.Assert(t, errors.Is(err, ErrUnknownValue))
	_, err = NewComposer(io.Discard, WithLevel(Level(42)))
	assert.Assert(t, errors.Is(err, ErrUnknownValue))
	_, err = NewComposer(io.Discard, WithFixtures("valid"))
	assert.Assert(t, errors.Is(err, ErrInapplicableOption))
	_, err = NewComposer(io.Discard, WithManifest("fixtures.sum"))
	assert.Assert(t, errors.Is(err, ErrInapplicableOption))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk on fire")
}

type recordingCloser struct {
	closed bool
	err    error
}

func (r *recordingCloser) Close() error {
	r.closed = true
	return r.err
}

func TestComposerWriteError(t *testing.T) {
	c, err := NewComposer(failingWriter{})
	assert.NilError(t, err)
	assert.ErrorContains(t, c.Add(File("f", []byte("x"))), "failed to write header for f: disk on fire")
	assert.ErrorContains(t, c.Close(), "end-of-archive")
}

func TestComposerCloseAlwaysClosesCompressor(t *testing.T) {
	c, err := NewComposer(failingWriter{})
	assert.NilError(t, err)
	rc := &recordingCloser{err: errors.New("flush failed")}
	c.extraCloser = rc
	// The marker error wins over the close error.
	assert.ErrorContains(t, c.Close(), "failed to write end-of-archive marker: disk on fire")
	assert.Assert(t, rc.closed)

	c, err = NewComposer(io.Discard)
	assert.NilError(t, err)
	rc = &recordingCloser{err: errors.New("flush failed")}
	c.extraCloser = rc
	assert.ErrorContains(t, c.Close(), "failed to close compression writer: flush failed")
	assert.Assert(t, rc.closed)
}

func TestComposerSizeCountsUncompressedBytes(t *testing.T) {
	entries := []Entry{File("f", bytes.Repeat([]byte{'z'}, 3000))}
	for _, algorithm := range []Algorithm{GzipAlgorithm, LZ4Algorithm} {
		var buf bytes.Buffer
		c, err := NewComposer(&buf, WithCompression(algorithm))
		assert.NilError(t, err)
		assert.NilError(t, c.Add(entries...))
		assert.NilError(t, c.Close())
		assert.Equal(t, c.Size(), int64(512+3072+1024), algorithm.String())
		assert.Assert(t, int64(buf.Len()) < c.Size(), algorithm.String())
	}
}
