// Command canvasctl inspects and exports saved course canvases.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pterm/pterm"

	"coursecanvas/config"
	"coursecanvas/document"
	"coursecanvas/export"
	"coursecanvas/scene"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: canvasctl <command> [options]\n\n")
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  info <doc>                      Summarize a canvas document\n")
	fmt.Fprintf(os.Stderr, "  nodes <doc>                     List scene nodes in z-order\n")
	fmt.Fprintf(os.Stderr, "  keyframes <doc>                 List keyframes per object\n")
	fmt.Fprintf(os.Stderr, "  motion <doc>                    List motion paths\n")
	fmt.Fprintf(os.Stderr, "  sample [-eased] <doc> <id> <t>  Pose of an object at time t\n")
	fmt.Fprintf(os.Stderr, "  export -f fmt [-o file] <doc>   Export png, thumbnail, text or yaml\n")
	fmt.Fprintf(os.Stderr, "  layout -dir d -course c [-page p -orientation o]\n")
	fmt.Fprintf(os.Stderr, "                                  Show or store a course page layout\n")
	fmt.Fprintf(os.Stderr, "  embed [-cols n] [-check] <lesson.md>\n")
	fmt.Fprintf(os.Stderr, "                                  Refresh canvas previews in a lesson\n")
	fmt.Fprintf(os.Stderr, "  tools                           List the editor tools\n")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	if err := run(os.Args[1], os.Args[2:]); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

func run(cmd string, args []string) error {
	switch cmd {
	case "info":
		return table(args, summaryRows)
	case "nodes":
		return table(args, nodeRows)
	case "keyframes":
		return table(args, keyframeRows)
	case "motion":
		return table(args, motionRows)
	case "sample":
		return runSample(args)
	case "export":
		return runExport(args)
	case "layout":
		return runLayout(args)
	case "embed":
		return runEmbed(args)
	case "tools":
		render(toolRows())
		return nil
	case "help", "-h", "--help":
		usage()
		return nil
	}
	usage()
	return fmt.Errorf("unknown command %q", cmd)
}

func open(args []string) (document.Document, error) {
	if len(args) != 1 {
		return document.Document{}, fmt.Errorf("expected one document path")
	}
	return document.Open(args[0])
}

func table(args []string, rows func(document.Document) [][]string) error {
	d, err := open(args)
	if err != nil {
		return err
	}
	data := rows(d)
	if len(data) == 1 {
		pterm.Info.Println("nothing to show")
		return nil
	}
	render(data)
	return nil
}

func render(rows [][]string) {
	pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}

func runSample(args []string) error {
	fs := flag.NewFlagSet("sample", flag.ContinueOnError)
	eased := fs.Bool("eased", false, "Use ease-in-out timing between keyframes")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 3 {
		return fmt.Errorf("usage: sample [-eased] <doc> <id> <t>")
	}
	d, err := document.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	id, err := strconv.Atoi(fs.Arg(1))
	if err != nil {
		return fmt.Errorf("object id: %w", err)
	}
	t, err := strconv.ParseFloat(fs.Arg(2), 64)
	if err != nil {
		return fmt.Errorf("time: %w", err)
	}

	pose, posed, along, onPath := sample(d, scene.NodeID(id), t, *eased)
	if !posed && !onPath {
		return fmt.Errorf("object %d has no keyframes or motion path", id)
	}
	if posed {
		pterm.Printf("t=%.2fs  position %s  rotation %.3f rad  scale %s\n", t, point(pose.Position), pose.Rotation, point(pose.Scale))
	}
	if onPath {
		pterm.Printf("motion path point %s\n", point(along))
	}
	return nil
}

func runExport(args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	format := fs.String("f", "png", "Format: png, thumbnail, text, yaml")
	output := fs.String("o", "", "Output file (default: stdout)")
	width := fs.Int("w", 0, "Thumbnail width")
	height := fs.Int("h", 0, "Thumbnail height")
	columns := fs.Int("cols", 0, "Text preview width in cells")
	if err := fs.Parse(args); err != nil {
		return err
	}
	d, err := open(fs.Args())
	if err != nil {
		return err
	}
	f, err := export.ParseFormat(*format)
	if err != nil {
		return err
	}
	e, err := export.NewExporter(f, export.Options{
		TextPadding: config.Default().Text.Padding,
		ThumbWidth:  *width,
		ThumbHeight: *height,
		Columns:     *columns,
	})
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if *output != "" {
		file, err := os.Create(*output)
		if err != nil {
			return err
		}
		defer file.Close()
		w = file
	}
	if err := e.Export(w, d); err != nil {
		return err
	}
	if *output != "" {
		pterm.Success.Printf("Exported %s to %s\n", e.FormatName(), *output)
	}
	return nil
}

func runLayout(args []string) error {
	fs := flag.NewFlagSet("layout", flag.ContinueOnError)
	dir := fs.String("dir", ".", "Layout directory")
	course := fs.String("course", "", "Course id")
	page := fs.String("page", "", "Page size to store: a3, a4, a5, letter, legal, 16:9")
	orientation := fs.String("orientation", "", "portrait or landscape")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *course == "" {
		return fmt.Errorf("layout: -course is required")
	}

	l, err := config.LoadLayout(*dir, *course)
	if err != nil {
		return err
	}
	if *page != "" || *orientation != "" {
		if *page != "" {
			l.Page = *page
		}
		if *orientation != "" {
			l.Orientation = config.Orientation(*orientation)
		}
		if err := config.SaveLayout(*dir, *course, l); err != nil {
			return err
		}
		pterm.Success.Printf("Stored layout for %s\n", *course)
	}
	render(layoutRows(*course, l))
	return nil
}

func layoutRows(course string, l config.Layout) [][]string {
	w, h := l.PageSize()
	c := l.ContentRect()
	return [][]string{
		{"Course", "Page", "Orientation", "Pixels", "Content"},
		{course, l.Page, label(string(l.Orientation)), fmt.Sprintf("%d×%d", w, h), fmt.Sprintf("%.0f×%.0f at %s", c.W, c.H, point(c.Min()))},
	}
}
