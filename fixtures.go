package tarfix

import (
	"bytes"

	"github.com/opencontainers/go-digest"
	"github.com/pkg/errors"
)

// Policy controls how a fixture deviates from a well-formed compressed tarball.
type Policy struct {
	// OmitTerminator drops the two zero blocks marking the end of the archive.
	OmitTerminator bool
	// Truncate is the number of bytes chopped off the end of the compressed output.
	Truncate int
}

// Fixture is a named tarball exercising one behavior of an extractor.
type Fixture struct {
	Name    string
	Entries []Entry
	Policy  Policy
}

// Filename returns the file name of the fixture compressed with algorithm.
func (f *Fixture) Filename(algorithm Algorithm) string {
	return f.Name + archiveSuffix(algorithm)
}

// Result is a built fixture.
type Result struct {
	Name     string
	Filename string
	Data     []byte        // Compressed, and possibly truncated, tarball.
	Size     int64         // Length of the uncompressed tarball.
	Digest   digest.Digest // Digest of the uncompressed tarball.
	Entries  int
}

// Catalog returns all fixtures in generation order.
// Every call returns fresh values, so callers may modify them freely.
func Catalog() []Fixture {
	return []Fixture{
		{
			// A single complete entry, but the stream ends without a marker and mid-gzip.
			Name:    "corrupted",
			Entries: []Entry{File("test.txt", bytes.Repeat([]byte{'A'}, 100))},
			Policy:  Policy{OmitTerminator: true, Truncate: 20},
		},
		{
			Name: "path_traversal",
			Entries: []Entry{
				File("../../etc/passwd", []byte("root:x:0:0:root:/root:/bin/bash\n")),
				File("normal.txt", []byte("This is a normal file.\n")),
			},
		},
		{
			Name: "symlink_escape",
			Entries: []Entry{
				SymlinkTo("escape", "/etc/passwd"),
				SymlinkTo("escape2", "../../../etc/passwd"),
				File("legit.txt", []byte("Safe content.\n")),
			},
		},
		{
			Name: "hardlink_attack",
			Entries: []Entry{
				File("target.txt", []byte("Target content.\n")),
				HardLinkTo("link.txt", "target.txt"),
			},
		},
		{
			// The device numbers of /dev/null and /dev/zero on Linux.
			Name: "device_file",
			Entries: []Entry{
				CharDeviceNode("null", 1, 3),
				CharDeviceNode("zero", 1, 5),
			},
		},
		{
			Name: "valid",
			Entries: []Entry{
				Dir("dir/"),
				File("dir/file.txt", []byte("Hello, World!\n")),
				File("dir/executable", []byte("#!/bin/sh\necho hi\n")),
				SymlinkTo("dir/link", "file.txt"),
			},
		},
	}
}

// Lookup returns the fixture called name.
func Lookup(name string) (Fixture, error) {
	for _, f := range Catalog() {
		if f.Name == name {
			return f, nil
		}
	}
	return Fixture{}, errors.WithMessagef(ErrUnknownFixture, "no fixture named %q", name)
}

// Build assembles the fixture in memory and applies its policy.
// By default the tarball is compressed with gzip at the best level. Options are passed to the Composer.
func Build(f Fixture, options ...Option) (*Result, error) {
	if err := validateFixtureName(f.Name); err != nil {
		return nil, err
	}
	ops := []Option{WithCompression(GzipAlgorithm), WithLevel(BestLevel)}
	ops = append(ops, options...)
	if f.Policy.OmitTerminator {
		ops = append(ops, WithoutTerminator())
	}
	var buf bytes.Buffer
	c, err := NewComposer(&buf, ops...)
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to create composer for %s", f.Name)
	}
	if err := c.Add(f.Entries...); err != nil {
		return nil, errors.WithMessagef(err, "failed to compose %s", f.Name)
	}
	if err := c.Close(); err != nil {
		return nil, errors.WithMessagef(err, "failed to complete %s", f.Name)
	}
	data := buf.Bytes()
	if f.Policy.Truncate > 0 {
		if f.Policy.Truncate >= len(data) {
			return nil, errors.WithMessagef(ErrTruncateTooLong, "cannot chop %d of %d bytes from %s",
				f.Policy.Truncate, len(data), f.Name)
		}
		data = data[:len(data)-f.Policy.Truncate]
	}
	return &Result{
		Name:     f.Name,
		Filename: f.Filename(c.algorithm),
		Data:     data,
		Size:     c.Size(),
		Digest:   c.Digest(),
		Entries:  len(f.Entries),
	}, nil
}
