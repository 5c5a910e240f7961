package tarfix

import (
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/pierrec/lz4/v4"
	"github.com/pkg/errors"
)

// paddingSize returns the number of NUL bytes completing size to a block boundary.
func paddingSize(size int64) int64 {
	return (blockSize - size%blockSize) % blockSize
}

// validateFixtureName makes sure a fixture name is usable as a plain file name.
func validateFixtureName(name string) error {
	if len(name) == 0 {
		return errors.New("empty fixture name")
	}
	if name == "." || name == ".." || strings.ContainsAny(name, "/\\\x00") {
		return errors.Errorf("forbidden fixture name %q", name)
	}
	return nil
}

func getCompressionLevel(algorithm Algorithm, level Level) int64 {
	switch algorithm {
	case LZ4Algorithm:
		switch level {
		case FastestLevel, FastLevel, DefaultLevel:
			return int64(lz4.Fast)
		case GoodLevel:
			return int64(lz4.Level5)
		case BestLevel:
			return int64(lz4.Level9)
		}
	case GzipAlgorithm:
		switch level {
		case FastestLevel:
			return gzip.BestSpeed
		case FastLevel:
			return 3
		case DefaultLevel:
			return gzip.DefaultCompression
		case GoodLevel:
			return 7
		case BestLevel:
			return gzip.BestCompression
		}
	}
	return 0
}

// archiveSuffix returns the file name suffix of a tarball compressed with algorithm.
func archiveSuffix(algorithm Algorithm) string {
	switch algorithm {
	case GzipAlgorithm:
		return tarSuffix + gzipSuffix
	case LZ4Algorithm:
		return tarSuffix + lz4Suffix
	default:
		return tarSuffix
	}
}
