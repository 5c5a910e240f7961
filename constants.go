package tarfix

const unknownValue = "unknown"

const (
	blockSize  = 512
	maxMode    = 0o7777
	rootName   = "root"
	tarSuffix  = ".tar"
	gzipSuffix = ".gz"
	lz4Suffix  = ".lz4"
)

// Algorithm is the compression algorithm.
type Algorithm uint8

const (
	NoAlgorithm Algorithm = iota
	GzipAlgorithm
	LZ4Algorithm
)

func (c Algorithm) String() string {
	switch c {
	case NoAlgorithm:
		return "none"
	case GzipAlgorithm:
		return "gzip"
	case LZ4Algorithm:
		return "lz4"
	default:
		return unknownValue
	}
}

// Level is the compression level.
type Level uint8

const (
	FastestLevel Level = iota
	FastLevel
	DefaultLevel
	GoodLevel
	BestLevel
)

func (l Level) String() string {
	switch l {
	case FastestLevel:
		return "fastest"
	case FastLevel:
		return "fast"
	case DefaultLevel:
		return "default"
	case GoodLevel:
		return "good"
	case BestLevel:
		return "best"
	default:
		return unknownValue
	}
}

// Type is the kind of a tar entry.
type Type uint8

const (
	Regular Type = iota
	HardLink
	Symlink
	CharDevice
	BlockDevice
	Directory
	Fifo
)

// Typeflag returns the ustar typeflag byte of the type.
// It panics on an unknown type.
func (t Type) Typeflag() byte {
	switch t {
	case Regular:
		return '0'
	case HardLink:
		return '1'
	case Symlink:
		return '2'
	case CharDevice:
		return '3'
	case BlockDevice:
		return '4'
	case Directory:
		return '5'
	case Fifo:
		return '6'
	default:
		panic("tarfix: unknown entry type")
	}
}

func (t Type) String() string {
	switch t {
	case Regular:
		return "regular"
	case HardLink:
		return "hardlink"
	case Symlink:
		return "symlink"
	case CharDevice:
		return "chardev"
	case BlockDevice:
		return "blockdev"
	case Directory:
		return "directory"
	case Fifo:
		return "fifo"
	default:
		return unknownValue
	}
}

// isDevice reports whether entries of the type carry device numbers.
func (t Type) isDevice() bool {
	return t == CharDevice || t == BlockDevice
}
