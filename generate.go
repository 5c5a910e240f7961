package tarfix

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

const fixtureFileMode = 0o644

// Generator is the context of a fixture generation run.
// It shouldn't be used directly. Use Generate instead.
type Generator struct {
	dir       string
	algorithm Algorithm
	level     Level
	only      []string
	manifest  string
}

// Generate builds the catalog fixtures and writes them into dir, one after another.
// Each file is written under a temporary name and renamed on success, so a failed run never leaves
// a partial tarball under a fixture name. The directory must exist.
// Results of the fixtures written before a failure are returned along with the error.
func Generate(dir string, options ...Option) ([]*Result, error) {
	g := &Generator{
		dir:       dir,
		algorithm: GzipAlgorithm,
		level:     BestLevel,
	}
	for _, option := range options {
		if err := option(g); err != nil {
			return nil, err
		}
	}
	fixtures := g.fixtures()
	if err := g.checkManifest(fixtures); err != nil {
		return nil, err
	}
	results := make([]*Result, 0, len(fixtures))
	for _, f := range fixtures {
		res, err := Build(f, WithCompression(g.algorithm), WithLevel(g.level))
		if err != nil {
			return results, err
		}
		if err := writeFileAtomic(filepath.Join(g.dir, res.Filename), res.Data); err != nil {
			return results, errors.WithMessagef(err, "failed to write fixture %s", f.Name)
		}
		results = append(results, res)
	}
	if g.manifest != "" {
		if err := writeFileAtomic(filepath.Join(g.dir, g.manifest), Manifest(results)); err != nil {
			return results, errors.WithMessage(err, "failed to write manifest")
		}
	}
	return results, nil
}

// fixtures returns the selected fixtures in catalog order.
func (g *Generator) fixtures() []Fixture {
	all := Catalog()
	if len(g.only) == 0 {
		return all
	}
	selected := make(map[string]bool, len(g.only))
	for _, name := range g.only {
		selected[name] = true
	}
	fixtures := all[:0]
	for _, f := range all {
		if selected[f.Name] {
			fixtures = append(fixtures, f)
		}
	}
	return fixtures
}

// checkManifest makes sure the manifest doesn't overwrite one of the fixtures.
func (g *Generator) checkManifest(fixtures []Fixture) error {
	if g.manifest == "" {
		return nil
	}
	for i := range fixtures {
		if fixtures[i].Filename(g.algorithm) == g.manifest {
			return errors.WithMessagef(ErrManifestCollision, "manifest %s is the file of fixture %s",
				g.manifest, fixtures[i].Name)
		}
	}
	return nil
}

// Manifest renders one line per result: the digest and size of the uncompressed tarball, then the file name.
// Both describe the tarball as composed, before the truncation policy applies. For uncompressed fixtures
// with a truncation policy, the file on disk is therefore shorter than the recorded size.
func Manifest(results []*Result) []byte {
	var sb strings.Builder
	for _, res := range results {
		_, _ = fmt.Fprintf(&sb, "%s %d %s\n", res.Digest, res.Size, res.Filename)
	}
	return []byte(sb.String())
}

// writeFileAtomic writes data to a temporary file next to path, syncs it and renames it to path.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file for %s: %w", path, err)
	}
	tmpPath := tmp.Name()
	if err := writeAndSync(tmp, data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename %s to %s: %w", tmpPath, path, err)
	}
	return nil
}

func writeAndSync(f *os.File, data []byte) error {
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("failed to write %s: %w", f.Name(), err)
	}
	// CreateTemp uses 0600.
	if err := f.Chmod(fixtureFileMode); err != nil {
		return fmt.Errorf("failed to chmod %s: %w", f.Name(), err)
	}
	if err := syncFile(f); err != nil {
		return fmt.Errorf("failed to sync %s: %w", f.Name(), err)
	}
	return nil
}
