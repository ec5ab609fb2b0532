package walker

import (
	"errors"
	"syscall"
)

// ExitCode maps a traversal error to a process exit status: 0 for nil, the
// underlying OS error number when one is present in the chain, otherwise 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return int(errno)
	}
	return 1
}
