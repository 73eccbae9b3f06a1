// Command berry-dump parses a single Berry lockfile and pretty-prints
// its structure, the way the teacher's own CLI commands wrap a single
// operation in a cobra.Command with hclog diagnostics.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	hclog "github.com/hashicorp/go-hclog"
	"github.com/spanishpear/berry/internal/lockfile"
	"github.com/spf13/cobra"
)

// Exit codes, per spec.md §6: 0 success, 1 parse error, 2 usage/I-O error.
const (
	exitOK         = 0
	exitParseError = 1
	exitUsageError = 2
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	logger := hclog.New(&hclog.LoggerOptions{
		Name:  "berry-dump",
		Level: hclog.LevelFromString(os.Getenv("BERRY_LOG_LEVEL")),
	})

	var noColor bool

	cmd := &cobra.Command{
		Use:           "berry-dump <path>",
		Short:         "Parse a Berry lockfile and print its structure",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(1)(cmd, args); err != nil {
				return &usageError{err}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if noColor {
				color.NoColor = true
			}
			return dumpFile(cmd.OutOrStdout(), logger, args[0])
		},
	}
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colorized output")
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return &usageError{err} })
	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		logger.Error("dump failed", "error", err)
		fmt.Fprintln(os.Stderr, color.RedString("error: %v", err))
		if _, ok := err.(*usageError); ok {
			return exitUsageError
		}
		return exitParseError
	}
	return exitOK
}

type usageError struct{ error }

func dumpFile(w io.Writer, logger hclog.Logger, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &usageError{fmt.Errorf("reading %s: %w", path, err)}
	}

	lf, err := lockfile.Parse(data)
	if err != nil {
		if pe, ok := err.(*lockfile.ParseError); ok {
			line, col := pe.Position()
			return fmt.Errorf("%s:%d:%d: %s", path, line, col, pe.Kind)
		}
		return err
	}

	logger.Debug("parsed lockfile", "entries", len(lf.Entries), "path", path)

	header := color.New(color.Bold, color.FgCyan)
	header.Fprintf(w, "metadata\n")
	fmt.Fprintf(w, "  version:  %s\n", lf.Metadata.Version)
	fmt.Fprintf(w, "  cacheKey: %s\n", lf.Metadata.CacheKey)

	for _, pkg := range lf.Entries {
		header.Fprintf(w, "\npackage\n")
		for i, d := range pkg.Descriptors {
			fmt.Fprintf(w, "  descriptor[%d]: %s\n", i, d.String())
		}
		fmt.Fprintf(w, "  version:      %s\n", pkg.Version)
		fmt.Fprintf(w, "  resolution:   %s\n", pkg.Resolution)
		fmt.Fprintf(w, "  languageName: %s\n", pkg.LanguageName)
		fmt.Fprintf(w, "  linkType:     %s\n", pkg.LinkType)
		if pkg.HasChecksum {
			fmt.Fprintf(w, "  checksum:     %s\n", pkg.Checksum)
		}
		if len(pkg.Dependencies) > 0 {
			fmt.Fprintf(w, "  dependencies: %d\n", len(pkg.Dependencies))
		}
		if len(pkg.PeerDependencies) > 0 {
			fmt.Fprintf(w, "  peerDependencies: %d\n", len(pkg.PeerDependencies))
		}
		if len(pkg.Bin) > 0 {
			fmt.Fprintf(w, "  bin: %d\n", len(pkg.Bin))
		}
	}

	if lf.Remaining != "" {
		logger.Warn("trailing unparsed input", "bytes", len(lf.Remaining))
	}

	return nil
}
