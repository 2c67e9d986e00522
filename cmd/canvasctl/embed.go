package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"

	"coursecanvas/document"
	"coursecanvas/export"
	"coursecanvas/markdown"
)

// preview renders the text preview of the document at path.
func preview(path string, columns int) (string, error) {
	d, err := document.Open(path)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	e := export.NewTextExporter(columns)
	if err := e.Export(&buf, d); err != nil {
		return "", fmt.Errorf("preview %s: %w", path, err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return strings.Join(lines, "\n"), nil
}

// embed refreshes every canvas block in content. Sources resolve relative
// to dir. It returns the new content and the number of blocks that changed.
func embed(content, dir string, columns int) (string, int, error) {
	lesson := markdown.Parse(content)
	changed := 0
	// Replacing a block shifts later ones, so rescan after each change.
	for i := 0; ; i++ {
		blocks := lesson.Blocks()
		if i >= len(blocks) {
			break
		}
		b := blocks[i]
		if b.Source == "" {
			continue
		}
		src := b.Source
		if !filepath.IsAbs(src) {
			src = filepath.Join(dir, src)
		}
		text, err := preview(src, columns)
		if err != nil {
			return "", changed, fmt.Errorf("%s: %w", markdown.Describe(b, i), err)
		}
		if text == b.Content {
			continue
		}
		if err := lesson.Replace(b, text); err != nil {
			return "", changed, err
		}
		changed++
	}
	return lesson.String(), changed, nil
}

func runEmbed(args []string) error {
	fs := flag.NewFlagSet("embed", flag.ContinueOnError)
	columns := fs.Int("cols", 60, "Preview width in cells")
	check := fs.Bool("check", false, "Fail if any preview is stale instead of writing")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: embed [-cols n] [-check] <lesson.md>")
	}
	path := fs.Arg(0)
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	out, changed, err := embed(string(data), filepath.Dir(path), *columns)
	if err != nil {
		return err
	}
	switch {
	case changed == 0:
		pterm.Info.Println("previews up to date")
	case *check:
		return fmt.Errorf("%d stale preview(s) in %s", changed, path)
	default:
		if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
			return err
		}
		pterm.Success.Printf("Updated %d preview(s) in %s\n", changed, path)
	}
	return nil
}
