package walker

import (
	"io"
	"os"
	"strings"
)

// classification of a file-like entry. Directories never reach this code.
type class int

const (
	classRegular class = iota
	classScript
)

// execExtensions is the fixed, case-sensitive set of filename extensions
// treated as script/executable files.
var execExtensions = map[string]bool{
	".bash": true,
	".cgi":  true,
	".csh":  true,
	".exe":  true,
	".o":    true,
	".out":  true,
	".par":  true,
	".pl":   true,
	".py":   true,
	".pyc":  true,
	".pyo":  true,
	".rb":   true,
	".sh":   true,
	".so":   true,
}

// classify determines the class of a file-like entry. Entries with an
// extension are matched against execExtensions; extension-less entries are
// sniffed for a shebang.
func classify(path, name string) class {
	if i := strings.LastIndex(name, "."); i >= 0 {
		if execExtensions[name[i:]] {
			return classScript
		}
		return classRegular
	}
	return sniffShebang(path)
}

// sniffShebang reports classScript when the file starts with "#!". Any
// open or read failure means classRegular: an unreadable candidate must not
// stop the traversal.
func sniffShebang(path string) class {
	file, err := os.Open(path)
	if err != nil {
		return classRegular
	}
	defer func() { _ = file.Close() }()

	var header [2]byte
	if _, err := io.ReadFull(file, header[:]); err != nil {
		return classRegular
	}
	if header[0] == '#' && header[1] == '!' {
		return classScript
	}
	return classRegular
}
