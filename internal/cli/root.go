package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/megaspaz/pychmod/internal/logger"
	pcherrors "github.com/megaspaz/pychmod/pkg/errors"
	"github.com/megaspaz/pychmod/pkg/fsutil"
	"github.com/megaspaz/pychmod/pkg/walker"
)

// rootOptions holds the flag values of the root command.
type rootOptions struct {
	dir            string
	dirPerms       string
	filePerms      string
	execPerms      string
	followSymlinks bool
	verbose        bool
}

// NewRootCmd creates the root command, which performs the recursive chmod.
func NewRootCmd() *cobra.Command {
	var opts rootOptions

	cmd := &cobra.Command{
		Use:   "pychmod --dir <dir>",
		Short: "Recursively apply permission modes to a directory tree",
		Long: `pychmod chmods a directory and all of its subdirectories and files.

Directories get the --dirperms mode (default 0755), regular files the
--fileperms mode (default 0644) and scripts/executables the --execperms mode
(default 0755). Scripts/executables are recognized by a fixed list of file
extensions (.bash .cgi .csh .exe .o .out .par .pl .py .pyc .pyo .rb .sh .so);
files without an extension count as scripts when they start with "#!".
Symbolic links are skipped unless --symlinks is given.`,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRoot(cmd, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.dir, "dir", "d", "", "directory to traverse (required)")
	cmd.Flags().StringVarP(&opts.dirPerms, "dirperms", "p", fsutil.DirPermsDefault, "permissions for directories (4 octal digits)")
	cmd.Flags().StringVarP(&opts.filePerms, "fileperms", "f", fsutil.FilePermsDefault, "permissions for regular files (4 octal digits)")
	cmd.Flags().StringVarP(&opts.execPerms, "execperms", "x", fsutil.ExecPermsDefault, "permissions for scripts/executables (4 octal digits)")
	cmd.Flags().BoolVarP(&opts.followSymlinks, "symlinks", "s", false, "follow and process symlinks")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "print each processed directory/file")

	return cmd
}

func runRoot(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Command-line flags win over config file values.
	settings := cfg.Settings
	flags := cmd.Flags()
	if flags.Changed("dirperms") {
		settings.DirPerms = opts.dirPerms
	}
	if flags.Changed("fileperms") {
		settings.FilePerms = opts.filePerms
	}
	if flags.Changed("execperms") {
		settings.ExecPerms = opts.execPerms
	}
	if flags.Changed("symlinks") {
		settings.FollowSymlinks = opts.followSymlinks
	}
	if flags.Changed("verbose") {
		settings.Verbose = opts.verbose
	}
	if LogLevel != nil && *LogLevel != "" {
		settings.LogLevel = *LogLevel
	}
	logger.InitLogger(settings.LogLevel)

	if opts.dir == "" {
		return pcherrors.ErrDirectoryRequired
	}

	// Malformed modes reject the run rather than silently falling back
	// to the defaults.
	walkCfg := walker.Config{
		FollowSymlinks: settings.FollowSymlinks,
		Verbose:        settings.Verbose,
		Output:         cmd.OutOrStdout(),
	}
	if walkCfg.DirMode, err = fsutil.ParseMode(settings.DirPerms); err != nil {
		return pcherrors.Wrapf(err, "--dirperms")
	}
	if walkCfg.FileMode, err = fsutil.ParseMode(settings.FilePerms); err != nil {
		return pcherrors.Wrapf(err, "--fileperms")
	}
	if walkCfg.ExecMode, err = fsutil.ParseMode(settings.ExecPerms); err != nil {
		return pcherrors.Wrapf(err, "--execperms")
	}

	// Arguments are valid; from here on a failure is a traversal error
	// and usage output would just be noise.
	cmd.SilenceUsage = true

	fmt.Fprintf(cmd.OutOrStdout(), "chmod dirs to %s\nchmod files to %s\nchmod scripts to %s\n\n",
		walkCfg.DirMode, walkCfg.FileMode, walkCfg.ExecMode)

	stats, err := walker.Walk(cmd.Context(), opts.dir, walkCfg)
	if err != nil {
		return err
	}

	logger.Successf("processed %d directories, %d files, %d scripts/executables",
		stats.Dirs, stats.Files, stats.Scripts)
	return nil
}

// ExitCode maps an execution error to the process exit status: 0 for nil, 2
// for argument/configuration errors, the underlying OS error number for
// traversal failures.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	for _, validation := range []error{
		pcherrors.ErrDirectoryRequired,
		pcherrors.ErrNotADirectory,
		pcherrors.ErrInvalidMode,
		pcherrors.ErrEmptyConfigPath,
		pcherrors.ErrInvalidConfigPath,
		pcherrors.ErrConfigParse,
		pcherrors.ErrConfigValidation,
	} {
		if errors.Is(err, validation) {
			return 2
		}
	}
	return walker.ExitCode(err)
}
