// Package markdown keeps canvas previews embedded in lesson markdown files
// up to date. A preview lives in a fenced block whose info string names the
// canvas document:
//
//	```canvas diagrams/triangle.yaml
//	┌────┐
//	└────┘
//	```
package markdown

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// Lang is the fence language marking a canvas preview.
const Lang = "canvas"

// ErrModified is returned when a block changed after it was scanned.
var ErrModified = errors.New("block modified since scan")

// Block is one canvas preview block.
type Block struct {
	Source    string // document path from the info string, may be empty
	Content   string
	StartLine int // opening fence, 0-based
	EndLine   int // closing fence
	Indent    string
	Hash      string // sha256 of Content at scan time
}

// Lesson is a markdown file split into lines.
type Lesson struct {
	lines []string
}

// Parse splits content into lines.
func Parse(content string) *Lesson {
	return &Lesson{lines: strings.Split(content, "\n")}
}

// String returns the current content.
func (l *Lesson) String() string { return strings.Join(l.lines, "\n") }

func hash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

func fence(line string) (indent, info string, ok bool) {
	trimmed := strings.TrimLeft(line, " \t")
	if !strings.HasPrefix(trimmed, "```") {
		return "", "", false
	}
	return line[:len(line)-len(trimmed)], strings.TrimSpace(strings.TrimPrefix(trimmed, "```")), true
}

// Blocks returns every canvas block in file order. An unterminated block
// at the end of the file is ignored.
func (l *Lesson) Blocks() []Block {
	var out []Block
	var cur *Block
	var body []string
	for i, line := range l.lines {
		indent, info, isFence := fence(line)
		if cur == nil {
			if !isFence {
				continue
			}
			lang, src, _ := strings.Cut(info, " ")
			if !strings.EqualFold(lang, Lang) {
				continue
			}
			cur = &Block{Source: strings.TrimSpace(src), StartLine: i, Indent: indent}
			body = body[:0]
			continue
		}
		if isFence && info == "" {
			cur.EndLine = i
			cur.Content = strings.Join(body, "\n")
			cur.Hash = hash(cur.Content)
			out = append(out, *cur)
			cur = nil
			continue
		}
		body = append(body, strings.TrimPrefix(line, cur.Indent))
	}
	return out
}

// content returns the block body as it is now.
func (l *Lesson) content(b Block) string {
	body := make([]string, 0, b.EndLine-b.StartLine)
	for _, line := range l.lines[b.StartLine+1 : b.EndLine] {
		body = append(body, strings.TrimPrefix(line, b.Indent))
	}
	return strings.Join(body, "\n")
}

// Replace swaps the body of b for content, keeping the fences and the
// block's indentation. It fails if the fences moved or the body changed
// since b was scanned. Blocks after b shift by the line count difference,
// so rescan before replacing another one.
func (l *Lesson) Replace(b Block, content string) error {
	if b.StartLine < 0 || b.EndLine >= len(l.lines) || b.StartLine >= b.EndLine {
		return fmt.Errorf("invalid block boundaries: start=%d end=%d lines=%d", b.StartLine, b.EndLine, len(l.lines))
	}
	if _, info, ok := fence(l.lines[b.StartLine]); !ok || !strings.HasPrefix(strings.ToLower(info), Lang) {
		return fmt.Errorf("line %d: opening fence moved: %w", b.StartLine+1, ErrModified)
	}
	if _, _, ok := fence(l.lines[b.EndLine]); !ok {
		return fmt.Errorf("line %d: closing fence moved: %w", b.EndLine+1, ErrModified)
	}
	if hash(l.content(b)) != b.Hash {
		return fmt.Errorf("block at line %d: %w", b.StartLine+1, ErrModified)
	}

	var body []string
	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		body = append(body, strings.TrimRight(b.Indent+line, " "))
	}
	lines := make([]string, 0, len(l.lines)+len(body))
	lines = append(lines, l.lines[:b.StartLine+1]...)
	lines = append(lines, body...)
	lines = append(lines, l.lines[b.EndLine:]...)
	l.lines = lines
	return nil
}

// Describe returns a one-line summary of a block for listings.
func Describe(b Block, index int) string {
	src := b.Source
	if src == "" {
		src = "(no source)"
	}
	return fmt.Sprintf("%d. %s (line %d, %d lines)", index+1, src, b.StartLine+1, b.EndLine-b.StartLine-1)
}
