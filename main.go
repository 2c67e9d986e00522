package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"coursecanvas/config"
	"coursecanvas/demo"
	"coursecanvas/document"
	"coursecanvas/export"
	"coursecanvas/fonts"
	"coursecanvas/logging"
	"coursecanvas/terminal"
)

// fontWait bounds how long a one-shot export waits for fonts.
const fontWait = 10 * time.Second

type options struct {
	configPath string
	docPath    string
	course     string
	layoutDir  string
	logPath    string
	format     string
	output     string
	demoPath   string
}

func main() {
	var o options
	flag.StringVar(&o.configPath, "config", "", "YAML config file (default: built-in settings)")
	flag.StringVar(&o.docPath, "doc", "", "Canvas document to open or create")
	flag.StringVar(&o.course, "course", "", "Course id, used for stored page layouts")
	flag.StringVar(&o.layoutDir, "layout-dir", "", "Directory of per-course page layouts")
	flag.StringVar(&o.logPath, "log", "", "Write debug logs to this file")
	flag.StringVar(&o.format, "export", "", "Export the document and exit: png, thumbnail, text, yaml")
	flag.StringVar(&o.output, "o", "", "Export output file (default: stdout)")
	flag.StringVar(&o.demoPath, "demo", "", "Play a demo input script while editing")
	demoExample := flag.Bool("demo-example", false, "Print an example demo script and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Course canvas editor for the terminal.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -doc lesson1.yaml                    # Edit a canvas\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -doc lesson1.yaml -export png -o l1.png\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -demo-example > square.yaml && %s -demo square.yaml\n", os.Args[0], os.Args[0])
		fmt.Fprintf(os.Stderr, "\nKeys:\n")
		fmt.Fprintf(os.Stderr, "  1-9, 0, Tab   pick a tool       Ctrl+S  save\n")
		fmt.Fprintf(os.Stderr, "  Ctrl+Z/Y      undo/redo         Ctrl+E  export PNG\n")
		fmt.Fprintf(os.Stderr, "  Ctrl+T        export text       Ctrl+Q  quit\n")
		fmt.Fprintf(os.Stderr, "  r/o           rectangle/ellipse ,/. k   keyframe time, capture\n")
	}
	flag.Parse()

	if *demoExample {
		fmt.Print(demo.Example())
		return
	}

	if err := run(o); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(o options) error {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return err
		}
	}

	if o.logPath != "" {
		f, err := os.OpenFile(o.logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer f.Close()
		logging.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lib := fonts.NewLibrary(cfg.Fonts)
	go func() {
		if err := lib.Preload(ctx); err != nil {
			logging.For("main").Debug("font preload stopped", "error", err)
		}
	}()

	var script *demo.Script
	if o.demoPath != "" {
		var err error
		if script, err = demo.Load(o.demoPath); err != nil {
			return err
		}
	}

	ws, err := openWorkspace(o, cfg)
	if err != nil {
		return err
	}

	if o.format != "" {
		return exportOnce(ctx, o, cfg, lib, ws.Capture())
	}
	return edit(ctx, o, cfg, lib, ws, script)
}

// openWorkspace loads the document, or starts an empty one sized from the
// course layout.
func openWorkspace(o options, cfg config.Config) (*document.Workspace, error) {
	if o.docPath != "" {
		d, err := document.Open(o.docPath)
		switch {
		case err == nil:
			ws := document.NewWorkspace(d.Course, d.Layout)
			ws.Apply(d)
			if o.course != "" {
				ws.Course = o.course
			}
			return ws, nil
		case !errors.Is(err, fs.ErrNotExist):
			return nil, err
		}
	}

	layout := cfg.Layout
	if o.layoutDir != "" && o.course != "" {
		l, err := config.LoadLayout(o.layoutDir, o.course)
		if err != nil {
			logging.For("main").Warn("stored layout unusable, using default", "course", o.course, "error", err)
		}
		layout = l
	}
	return document.NewWorkspace(o.course, layout), nil
}

func exportOnce(ctx context.Context, o options, cfg config.Config, lib *fonts.Library, d document.Document) error {
	format, err := export.ParseFormat(o.format)
	if err != nil {
		return err
	}
	e, err := export.NewExporter(format, export.Options{Fonts: lib, TextPadding: cfg.Text.Padding})
	if err != nil {
		return err
	}

	select {
	case <-lib.Ready():
	case <-time.After(fontWait):
		logging.For("main").Warn("fonts not ready, exporting with fallback face")
	case <-ctx.Done():
		return ctx.Err()
	}

	var w io.Writer = os.Stdout
	if o.output != "" {
		f, err := os.Create(o.output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	if err := e.Export(w, d); err != nil {
		return err
	}
	if o.output != "" {
		fmt.Fprintf(os.Stderr, "Successfully exported %s to %s\n", e.FormatName(), o.output)
	}
	return nil
}

func edit(ctx context.Context, o options, cfg config.Config, lib *fonts.Library, ws *document.Workspace, script *demo.Script) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.Clear()

	host, err := terminal.NewHost(screen, ws, terminal.Options{
		Config:    cfg,
		Fonts:     lib,
		Path:      o.docPath,
		LayoutDir: o.layoutDir,
	})
	if err != nil {
		return err
	}
	if script != nil {
		playCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		player := demo.NewPlayer(screen.PostEvent)
		go func() {
			if err := player.Play(playCtx, script); err != nil && !errors.Is(err, context.Canceled) {
				logging.For("main").Warn("demo stopped", "error", err)
			}
		}()
	}
	runErr := host.Run(ctx)
	if err := host.Close(); err != nil {
		return fmt.Errorf("save on exit: %w", err)
	}
	if errors.Is(runErr, context.Canceled) {
		return nil
	}
	return runErr
}
