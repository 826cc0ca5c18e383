// Glide reads a text or Markdown file with reading-assistance overlays:
// a cursor-following pacer line, a dimming spotlight, and a word-by-word
// rapid reader.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"glide"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}
	path := os.Args[1]
	if path == "-h" || path == "--help" {
		printUsage()
		return
	}

	if err := run(path); err != nil {
		fmt.Fprintln(os.Stderr, "glide:", err)
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

	dir, err := glide.DefaultStoreDir()
	if err != nil {
		return err
	}
	store, err := glide.NewFileStore(dir)
	if err != nil {
		return err
	}
	bus := glide.NewBus()
	controller := glide.NewController(store, bus)
	if err := controller.Start(); err != nil {
		return err
	}
	defer controller.Stop()

	app := glide.NewApp(doc, filepath.Base(path), controller.Settings().Get(), glide.DetectTheme(), bus)
	prog := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err = prog.Run()
	return err
}

func printUsage() {
	fmt.Println(`usage: glide <file>

Opens a plain-text or Markdown file in the reader.

Default keys (rebindable in the settings panel):
  p        toggle pacer line
  d        toggle dimmer        D  cycle dim mode
  r        start/stop rapid reader
  space    pause rapid reader   ←/→  step words
  +/-      reading speed
  j/k      next/previous visual line
  s        settings
  q        quit`)
}
