package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"tradewatch/internal/poster"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "build":
		build(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func build(args []string) {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	outDir := fs.String("out", ".", "output directory")
	fs.Parse(args)

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, "failed to create output dir:", err)
		os.Exit(1)
	}

	path := filepath.Join(*outDir, poster.OutputName)
	if err := writePoster(path); err != nil {
		fmt.Fprintln(os.Stderr, "poster build failed:", err)
		os.Exit(1)
	}
	fmt.Printf("poster build complete (out=%s)\n", path)
}

func writePoster(path string) error {
	img := poster.Render(poster.Width, poster.Height, poster.Default())

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(file, img); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: poster build [options]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "options:")
	fmt.Fprintln(os.Stderr, "  -out   output directory (default: current directory)")
}
