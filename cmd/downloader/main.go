package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"go-sft-pipeline/internal/download"
)

func main() {
	repoType := flag.String("type", "auto", "repository type: model, dataset or auto")
	folder := flag.String("folder", "./hf_downloads", "base folder for downloads")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: downloader [flags] <repo-id>")
		flag.PrintDefaults()
		os.Exit(1)
	}
	repoID := flag.Arg(0)

	if err := os.MkdirAll(*folder, 0755); err != nil {
		fmt.Printf("Error creating directory: %v\n", err)
		os.Exit(1)
	}

	client := download.NewClient()

	resolvedType := *repoType
	if resolvedType == "auto" {
		resolvedType = client.DetectRepoType(repoID)
		fmt.Printf("Auto-detected type: %s\n", resolvedType)
	}

	localDir := download.TargetDir(*folder, repoID)
	count, err := client.DownloadSnapshot(repoID, resolvedType, localDir)
	if err != nil {
		fmt.Printf("✗ Download failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Download completed successfully! %d files saved to %s\n", count, localDir)
}
