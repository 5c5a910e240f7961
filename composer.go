package tarfix

import (
	_ "crypto/sha256" // Backs digest.SHA256.
	"fmt"
	"io"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/opencontainers/go-digest"
	"github.com/pierrec/lz4/v4"
)

// gzipUnknownOS is the OS byte of gzip headers written by any platform.
const gzipUnknownOS = 255

var zeroBlock [blockSize]byte

// Composer is a tarball creation context.
// It writes ustar blocks itself instead of going through archive/tar, so that headers
// archive/tar would refuse, like names escaping the root, are written as they are.
type Composer struct {
	w    io.Writer
	size int64
	// Compression fields.
	algorithm   Algorithm
	level       Level
	extraCloser io.Closer
	// Runtime fields.
	terminate bool
	digester  digest.Digester
	closed    bool
}

// NewComposer creates a Composer with options, writing the tarball to w.
func NewComposer(w io.Writer, options ...Option) (*Composer, error) {
	c := &Composer{
		level:     DefaultLevel,
		terminate: true,
		digester:  digest.SHA256.Digester(),
	}
	// Apply options.
	for _, option := range options {
		if err := option(c); err != nil {
			return nil, err
		}
	}
	// Apply the compression.
	switch c.algorithm {
	case GzipAlgorithm:
		gw, err := gzip.NewWriterLevel(w, int(getCompressionLevel(GzipAlgorithm, c.level)))
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip writer: %w", err)
		}
		// Pin the header so that the output only depends on the tarball.
		gw.Name = ""
		gw.Comment = ""
		gw.ModTime = time.Time{}
		gw.OS = gzipUnknownOS
		w = gw
		c.extraCloser = gw
	case LZ4Algorithm:
		lw := lz4.NewWriter(w)
		if err := lw.Apply(
			lz4.ConcurrencyOption(-1),
			lz4.ChecksumOption(false),
			lz4.CompressionLevelOption(lz4.CompressionLevel(getCompressionLevel(LZ4Algorithm, c.level))),
		); err != nil {
			return nil, fmt.Errorf("failed to apply lz4 options: %w", err)
		}
		w = lw
		c.extraCloser = lw
	case NoAlgorithm:
	default:
		return nil, ErrUnsupportedAlgorithm
	}
	c.w = io.MultiWriter(w, c.digester.Hash())
	return c, nil
}

// Add appends entries to the tarball, in order.
// Each entry is a header block, followed by its content padded to a block boundary if it's a non-empty regular file.
func (c *Composer) Add(entries ...Entry) error {
	if c.closed {
		return ErrComposerClosed
	}
	for i := range entries {
		if err := c.writeEntry(&entries[i]); err != nil {
			return err
		}
	}
	return nil
}

func (c *Composer) writeEntry(e *Entry) error {
	header := EncodeHeader(e)
	if err := c.write(header[:]); err != nil {
		return fmt.Errorf("failed to write header for %s: %w", e.Name, err)
	}
	size := e.Size()
	if size == 0 {
		return nil
	}
	if err := c.write(e.Content); err != nil {
		return fmt.Errorf("failed to write body for %s: %w", e.Name, err)
	}
	if err := c.write(zeroBlock[:paddingSize(size)]); err != nil {
		return fmt.Errorf("failed to pad body for %s: %w", e.Name, err)
	}
	return nil
}

func (c *Composer) write(p []byte) error {
	n, err := c.w.Write(p)
	c.size += int64(n)
	return err
}

// Size returns the number of uncompressed bytes written so far.
func (c *Composer) Size() int64 {
	return c.size
}

// Digest returns the digest of the uncompressed bytes written so far.
func (c *Composer) Digest() digest.Digest {
	return c.digester.Digest()
}

// Close completes the tarball creation. It must be called to flush the buffered bytes.
// The end-of-archive marker, two zero blocks, is written unless WithoutTerminator is given.
// The compression writer is closed even if the marker can't be written; the first error is returned.
func (c *Composer) Close() (err error) {
	if c.closed {
		return ErrComposerClosed
	}
	c.closed = true
	if c.extraCloser != nil {
		defer func() {
			if closeErr := c.extraCloser.Close(); closeErr != nil && err == nil {
				err = fmt.Errorf("failed to close compression writer: %w", closeErr)
			}
		}()
	}
	if c.terminate {
		for i := 0; i < 2; i++ {
			if err := c.write(zeroBlock[:]); err != nil {
				return fmt.Errorf("failed to write end-of-archive marker: %w", err)
			}
		}
	}
	return nil
}
