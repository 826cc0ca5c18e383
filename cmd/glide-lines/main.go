// Glide-lines lays a file out at the terminal width and prints the visual
// lines the detector finds, one rectangle per line. Useful for inspecting
// what the pacer and dimmer will lock onto.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"glide"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: glide-lines <file>")
		os.Exit(2)
	}
	if err := run(os.Args[1]); err != nil {
		fmt.Fprintln(os.Stderr, "glide-lines:", err)
		os.Exit(1)
	}
}

func run(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var doc *glide.Document
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		doc, err = glide.ParseMarkdown(src)
		if err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		doc = glide.ParseText(src)
	}

	width := 80
	if term.IsTerminal(int(os.Stdout.Fd())) {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
			width = w
		}
	}
	doc.Layout(width)

	viewport := glide.Rect{Width: float64(width), Height: doc.Height}
	lines := glide.ScanVisibleLines(doc, viewport, glide.CellDetectConfig())

	fmt.Printf("%s: %d visual lines at width %d (content height %.0f)\n",
		path, len(lines), width, doc.Height)
	for i, l := range lines {
		fmt.Printf("%4d  row %4.0f  cols %4.0f..%-4.0f  width %4.0f\n",
			i, l.Top, l.Left, l.Right(), l.Width)
	}
	return nil
}
