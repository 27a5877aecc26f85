package main

import (
	"fmt"
	"io"
	"os"

	"github.com/bgrewell/usage"

	"github.com/rstms/iso9660ro/pkg/iso9660"
)

func main() {
	u := usage.NewUsage(
		usage.WithApplicationName("isocat"),
		usage.WithApplicationDescription("isocat writes one internal file's bytes from an ISO 9660 image to standard output."),
	)

	help := u.AddBooleanOption("h", "help", false, "Show this help message", "", nil)
	noJoliet := u.AddBooleanOption("", "no-joliet", false, "Prefer the Primary descriptor even when a Joliet Supplementary descriptor is present", "", nil)
	imagePath := u.AddArgument(1, "image", "Path to the ISO 9660 image", "")
	filePath := u.AddArgument(2, "path", "Internal path of the file to print", "")

	if !u.Parse() {
		u.PrintError(fmt.Errorf("failed to parse arguments"))
		os.Exit(1)
	}
	if *help {
		u.PrintUsage()
		os.Exit(0)
	}
	if imagePath == nil || *imagePath == "" || filePath == nil || *filePath == "" {
		u.PrintError(fmt.Errorf("an image path and an internal file path must both be provided"))
		os.Exit(1)
	}

	f, err := os.Open(*imagePath)
	if err != nil {
		u.PrintError(err)
		os.Exit(1)
	}
	defer f.Close()

	fs, err := iso9660.Open(f, iso9660.WithJolietPreferred(!*noJoliet))
	if err != nil {
		u.PrintError(err)
		os.Exit(1)
	}

	entry, err := fs.Open(*filePath)
	if err != nil {
		u.PrintError(err)
		os.Exit(1)
	}
	if entry == nil {
		u.PrintError(fmt.Errorf("%s: no such file in image", *filePath))
		os.Exit(1)
	}
	if entry.IsDirectory() {
		u.PrintError(fmt.Errorf("%s: is a directory", *filePath))
		os.Exit(1)
	}

	if _, err := io.Copy(os.Stdout, entry.File.Read()); err != nil {
		u.PrintError(err)
		os.Exit(1)
	}
}
