// Package fsutil provides the permission-mode value type and constants used
// throughout the application.
package fsutil

// File and directory permission constants.
// These follow standard Unix permission conventions.
const (
	// Default file modes.
	FileModeDefault = 0o644 // -rw-r--r--: Default for regular files
	ExecModeDefault = 0o755 // -rwxr-xr-x: For script/executable files

	// Directory modes.
	DirModeDefault = 0o755 // drwxr-xr-x: Default for directories
)

// Default modes in the 4-octal-digit form accepted by ParseMode.
const (
	DirPermsDefault  = "0755"
	FilePermsDefault = "0644"
	ExecPermsDefault = "0755"
)
