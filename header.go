package tarfix

import (
	"fmt"
	"strconv"
)

type fieldKind uint8

const (
	octalField fieldKind = iota
	stringField
)

// field is a fixed slot of the 512-byte ustar header.
type field struct {
	name   string
	offset int
	width  int
	kind   fieldKind
}

// The ustar v00 header layout. Offsets follow from the widths, and the table ends at 500 bytes,
// the last 12 bytes of a block being padding.
var (
	fieldName     = field{"name", 0, 100, stringField}
	fieldMode     = field{"mode", 100, 8, octalField}
	fieldUID      = field{"uid", 108, 8, octalField}
	fieldGID      = field{"gid", 116, 8, octalField}
	fieldSize     = field{"size", 124, 12, octalField}
	fieldModTime  = field{"mtime", 136, 12, octalField}
	fieldChecksum = field{"chksum", 148, 8, stringField}
	fieldTypeflag = field{"typeflag", 156, 1, stringField}
	fieldLinkname = field{"linkname", 157, 100, stringField}
	fieldMagic    = field{"magic", 257, 6, stringField}
	fieldVersion  = field{"version", 263, 2, stringField}
	fieldUname    = field{"uname", 265, 32, stringField}
	fieldGname    = field{"gname", 297, 32, stringField}
	fieldDevMajor = field{"devmajor", 329, 8, octalField}
	fieldDevMinor = field{"devminor", 337, 8, octalField}
	fieldPrefix   = field{"prefix", 345, 155, stringField}
)

const (
	ustarMagic   = "ustar\x00"
	ustarVersion = "00"
)

// headerBlock is a single encoded header.
type headerBlock [blockSize]byte

// putString writes s left-justified into f, truncated to the field width.
// The rest of the field stays NUL.
func (b *headerBlock) putString(f field, s string) {
	if f.kind != stringField {
		panic(fmt.Sprintf("tarfix: field %s is not a string field", f.name))
	}
	slot := b[f.offset : f.offset+f.width]
	n := copy(slot, s)
	for i := n; i < len(slot); i++ {
		slot[i] = 0
	}
}

// putOctal writes v as zero-padded octal digits filling all but the last byte of f, which is NUL.
// A value that doesn't fit is a programming error.
func (b *headerBlock) putOctal(f field, v int64) {
	if f.kind != octalField {
		panic(fmt.Sprintf("tarfix: field %s is not a numeric field", f.name))
	}
	digits := f.width - 1
	s := strconv.FormatInt(v, 8)
	if v < 0 || len(s) > digits {
		panic(fmt.Sprintf("tarfix: value %d overflows field %s", v, f.name))
	}
	slot := b[f.offset : f.offset+f.width]
	pad := digits - len(s)
	for i := 0; i < pad; i++ {
		slot[i] = '0'
	}
	copy(slot[pad:], s)
	slot[digits] = 0
}

// EncodeHeader encodes the ustar header of e.
// Names and link names longer than 100 bytes are truncated, as plain ustar has no long name support.
// Malformed entries, like a mode wider than 12 bits, are programming errors and cause a panic.
func EncodeHeader(e *Entry) [blockSize]byte {
	if e.Mode > maxMode {
		panic(fmt.Sprintf("tarfix: mode %o of %s exceeds permission bits", e.Mode, e.Name))
	}
	var b headerBlock
	b.putString(fieldName, e.Name)
	b.putOctal(fieldMode, int64(e.Mode))
	b.putOctal(fieldUID, int64(e.UID))
	b.putOctal(fieldGID, int64(e.GID))
	b.putOctal(fieldSize, e.Size())
	b.putOctal(fieldModTime, int64(e.ModTime))
	b.putString(fieldTypeflag, string(e.Type.Typeflag()))
	if e.Type == Symlink || e.Type == HardLink {
		b.putString(fieldLinkname, e.Linkname)
	}
	b.putString(fieldMagic, ustarMagic)
	b.putString(fieldVersion, ustarVersion)
	b.putString(fieldUname, e.Uname)
	b.putString(fieldGname, e.Gname)
	if e.Type.isDevice() {
		b.putOctal(fieldDevMajor, int64(e.DevMajor))
		b.putOctal(fieldDevMinor, int64(e.DevMinor))
	}
	// No prefix support: the field stays empty.
	b.putString(fieldPrefix, "")
	b.putString(fieldChecksum, fmt.Sprintf("%06o\x00 ", Checksum(b[:])))
	return b
}

// Checksum computes the ustar checksum of a header block: the unsigned sum of all bytes,
// with the checksum field itself counted as eight spaces.
// The maximum sum, 512*255, always fits in the six octal digits of the field.
func Checksum(block []byte) uint32 {
	if len(block) != blockSize {
		panic(fmt.Sprintf("tarfix: header block has %d bytes", len(block)))
	}
	var sum uint32
	for i, c := range block {
		if i >= fieldChecksum.offset && i < fieldChecksum.offset+fieldChecksum.width {
			c = ' '
		}
		sum += uint32(c)
	}
	return sum
}
