package fsutil

import (
	"fmt"
	"io/fs"
	"strconv"

	"github.com/megaspaz/pychmod/pkg/errors"
)

// Mode is a validated 12-bit permission mode. It is constructed from the
// conventional 4-octal-digit form (e.g. "0755", "4755") via ParseMode, with
// the leading digit carrying the setuid, setgid and sticky bits.
type Mode fs.FileMode

// Special-bit values of the leading octal digit.
const (
	setuidBit = 0o4000
	setgidBit = 0o2000
	stickyBit = 0o1000
)

// ParseMode parses a permission string of exactly four octal digits into a
// Mode. Anything else is rejected with ErrInvalidMode.
func ParseMode(s string) (Mode, error) {
	if len(s) != 4 {
		return 0, errors.Wrapf(errors.ErrInvalidMode, "%q: want exactly 4 octal digits", s)
	}
	v, err := strconv.ParseUint(s, 8, 16)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrInvalidMode, "%q: want exactly 4 octal digits", s)
	}

	m := Mode(v & 0o777)
	if v&setuidBit != 0 {
		m |= Mode(fs.ModeSetuid)
	}
	if v&setgidBit != 0 {
		m |= Mode(fs.ModeSetgid)
	}
	if v&stickyBit != 0 {
		m |= Mode(fs.ModeSticky)
	}
	return m, nil
}

// MustParseMode is ParseMode for known-good literals; it panics on a
// malformed string.
func MustParseMode(s string) Mode {
	m, err := ParseMode(s)
	if err != nil {
		panic(err)
	}
	return m
}

// FileMode returns the mode as an fs.FileMode suitable for os.Chmod.
func (m Mode) FileMode() fs.FileMode {
	return fs.FileMode(m)
}

// String renders the mode back in the 4-octal-digit form.
func (m Mode) String() string {
	v := uint64(fs.FileMode(m).Perm())
	if fs.FileMode(m)&fs.ModeSetuid != 0 {
		v |= setuidBit
	}
	if fs.FileMode(m)&fs.ModeSetgid != 0 {
		v |= setgidBit
	}
	if fs.FileMode(m)&fs.ModeSticky != 0 {
		v |= stickyBit
	}
	return fmt.Sprintf("%04o", v)
}
