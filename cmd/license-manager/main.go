// Command license-manager writes a license.json for manual distribution.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/ytget/video-batch-uploader/internal/license"
	"github.com/ytget/video-batch-uploader/internal/platform"
)

func usage() {
	fmt.Println("Usage:")
	fmt.Println("  license-manager generate <expiration date>")
	fmt.Println("Example:")
	fmt.Println(`  license-manager generate "2024-12-31"`)
}

func main() {
	if len(os.Args) < 3 || os.Args[1] != "generate" {
		usage()
		return
	}

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	path, err := license.WriteLicenseFile(cwd, os.Args[2], time.Now())
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to generate license:", err)
		os.Exit(1)
	}

	fmt.Println("License file generated.")
	fmt.Println("Location:", path)
	fmt.Println("\nSend this file to the user and have them place it at:")
	fmt.Printf("  Windows: %%APPDATA%%/%s/%s\n", platform.AppDirName, platform.LicenseFileName)
	fmt.Printf("  macOS:   ~/Library/Application Support/%s/%s\n", platform.AppDirName, platform.LicenseFileName)
}
