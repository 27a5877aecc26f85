package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bgrewell/usage"
	"github.com/theckman/yacspin"
	"golang.org/x/term"

	"github.com/rstms/iso9660ro/pkg/iso9660"
	"github.com/rstms/iso9660ro/pkg/logging"
)

func main() {
	u := usage.NewUsage(
		usage.WithApplicationName("isotree"),
		usage.WithApplicationDescription("isotree prints an indented directory listing from an ISO 9660 image, with optional Joliet support."),
	)

	help := u.AddBooleanOption("h", "help", false, "Show this help message", "", nil)
	noJoliet := u.AddBooleanOption("", "no-joliet", false, "Prefer the Primary descriptor even when a Joliet Supplementary descriptor is present", "", nil)
	imagePath := u.AddArgument(1, "image", "Path to the ISO 9660 image", "")
	subPath := u.AddArgument(2, "path", "Internal directory to start listing from (default: root)", "")

	if !u.Parse() {
		u.PrintError(fmt.Errorf("failed to parse arguments"))
		os.Exit(1)
	}
	if *help {
		u.PrintUsage()
		os.Exit(0)
	}
	if imagePath == nil || *imagePath == "" {
		u.PrintError(fmt.Errorf("path to an ISO image must be provided"))
		os.Exit(1)
	}

	f, err := os.Open(*imagePath)
	if err != nil {
		u.PrintError(err)
		os.Exit(1)
	}
	defer f.Close()

	interactive := term.IsTerminal(int(os.Stdout.Fd()))
	logger := logging.NewLogger(logging.NewSimpleLogger(os.Stderr, logging.LevelInfo, interactive))

	fs, err := iso9660.Open(f, iso9660.WithJolietPreferred(!*noJoliet), iso9660.WithLogger(logger))
	if err != nil {
		u.PrintError(err)
		os.Exit(1)
	}

	start := fs.Root()
	label := "/"
	if subPath != nil && *subPath != "" {
		entry, err := fs.Open(*subPath)
		if err != nil {
			u.PrintError(err)
			os.Exit(1)
		}
		if entry == nil || !entry.IsDirectory() {
			u.PrintError(fmt.Errorf("%s is not a directory in this image", *subPath))
			os.Exit(1)
		}
		start = entry.Directory
		label = *subPath
	}

	spinner := startSpinner(interactive)

	if err := printTree(start, label, 0); err != nil {
		if spinner != nil {
			_ = spinner.StopFail()
		}
		u.PrintError(err)
		os.Exit(1)
	}

	if spinner != nil {
		_ = spinner.Stop()
	}
}

// startSpinner returns a running spinner when stdout is a real terminal,
// so piped or redirected output stays plain text.
func startSpinner(interactive bool) *yacspin.Spinner {
	if !interactive {
		return nil
	}
	cfg := yacspin.Config{
		Frequency:       100 * time.Millisecond,
		CharSet:         yacspin.CharSets[9],
		Suffix:          " walking directory tree",
		SuffixAutoColon: true,
		StopCharacter:   "✓",
		StopColors:      []string{"fgGreen"},
	}
	s, err := yacspin.New(cfg)
	if err != nil {
		return nil
	}
	if err := s.Start(); err != nil {
		return nil
	}
	return s
}

func printTree(dir *iso9660.Directory, name string, depth int) error {
	fmt.Printf("%s%s/\n", strings.Repeat("  ", depth), name)

	it := dir.Entries()
	for it.Next() {
		e := it.Entry()
		if e.Identifier() == "." || e.Identifier() == ".." {
			continue
		}
		if e.IsDirectory() {
			if err := printTree(e.Directory, e.Identifier(), depth+1); err != nil {
				return err
			}
			continue
		}
		fmt.Printf("%s%s (%d bytes)\n", strings.Repeat("  ", depth+1), e.Identifier(), e.File.Size())
	}
	return it.Err()
}
