package tarfix

type private interface{}

type Option func(i private) error

// Entry describes a single tar entry before it's encoded.
// The zero value is a regular, empty, nameless file owned by uid 0 with no permission bits.
type Entry struct {
	Name     string
	Content  []byte // Body of regular files, ignored for other types.
	Linkname string // Target of symlinks and hard links.
	Type     Type
	Mode     uint32
	UID      uint32
	GID      uint32
	Uname    string
	Gname    string
	ModTime  uint32 // Seconds since the epoch.
	DevMajor uint32
	DevMinor uint32
}

// Size returns the number of content bytes stored after the header.
// Only regular files have content; links keep their targets in the header.
func (e *Entry) Size() int64 {
	if e.Type != Regular {
		return 0
	}
	return int64(len(e.Content))
}

// File returns a regular file entry.
func File(name string, content []byte) Entry {
	return newEntry(name, Regular, content, "")
}

// Dir returns a directory entry.
func Dir(name string) Entry {
	return newEntry(name, Directory, nil, "")
}

// SymlinkTo returns a symbolic link entry pointing to target.
func SymlinkTo(name, target string) Entry {
	return newEntry(name, Symlink, nil, target)
}

// HardLinkTo returns a hard link entry pointing to target.
func HardLinkTo(name, target string) Entry {
	return newEntry(name, HardLink, nil, target)
}

// CharDeviceNode returns a character device entry.
func CharDeviceNode(name string, major, minor uint32) Entry {
	e := newEntry(name, CharDevice, nil, "")
	e.DevMajor, e.DevMinor = major, minor
	return e
}

// BlockDeviceNode returns a block device entry.
func BlockDeviceNode(name string, major, minor uint32) Entry {
	e := newEntry(name, BlockDevice, nil, "")
	e.DevMajor, e.DevMinor = major, minor
	return e
}

// FifoNode returns a named pipe entry.
func FifoNode(name string) Entry {
	return newEntry(name, Fifo, nil, "")
}

func newEntry(name string, typ Type, content []byte, linkname string) Entry {
	return Entry{
		Name:     name,
		Content:  content,
		Linkname: linkname,
		Type:     typ,
		Mode:     0o644,
		Uname:    rootName,
		Gname:    rootName,
	}
}
