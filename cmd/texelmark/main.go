// Copyright © 2025 Texelmark contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelmark/main.go
// Summary: texelmark CLI. Formats markdown tables in text for display:
// fmt (default), run, view, and history modes.

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/framegrace/texelmark"
	"github.com/framegrace/texelmark/config"
	_ "github.com/framegrace/texelmark/fencelang"
	"github.com/framegrace/texelmark/history"
	"github.com/framegrace/texelmark/internal/pager"
	"github.com/framegrace/texelmark/internal/ptyrun"
	"github.com/framegrace/texelmark/termfmt"
	"github.com/framegrace/texelmark/transform"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) > 0 {
		switch args[0] {
		case "run":
			return runCommand(args[1:])
		case "view":
			return runView(args[1:])
		case "history":
			return runHistory(args[1:])
		}
	}
	return runFmt(args)
}

// format applies the configured transformer pipeline, falling back to
// plain table formatting when the pipeline is empty.
func format(text string) string {
	pipeline := transform.BuildPipeline(config.Load())
	if pipeline.Len() == 0 {
		return texelmark.Format(text)
	}
	return pipeline.Transform(text)
}

// useColor decides whether to emit ANSI styling for stdout.
func useColor(mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return term.IsTerminal(int(os.Stdout.Fd()))
	}
}

// ─── fmt mode ───────────────────────────────────────────────────────────────

func runFmt(args []string) error {
	fs := flag.NewFlagSet("texelmark", flag.ContinueOnError)
	write := fs.Bool("w", false, "write result back to source files instead of stdout")
	color := fs.String("color", config.Load().GetString("", "color", "auto"),
		"colorize output: auto, always, or never")
	if err := fs.Parse(args); err != nil {
		return err
	}

	files := fs.Args()
	if len(files) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		return emit(format(string(data)), *color)
	}

	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		formatted := format(string(data))
		if *write {
			if err := os.WriteFile(path, []byte(formatted), 0644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			continue
		}
		if err := emit(formatted, *color); err != nil {
			return err
		}
	}
	return nil
}

func emit(doc, color string) error {
	if useColor(color) {
		doc = termfmt.Render(doc, termfmt.OptionsFromConfig(config.Load()))
	}
	_, err := fmt.Println(doc)
	return err
}

// ─── run mode ───────────────────────────────────────────────────────────────

func runCommand(args []string) error {
	fs := flag.NewFlagSet("texelmark run", flag.ContinueOnError)
	noHistory := fs.Bool("no-history", false, "do not record this run in history")
	color := fs.String("color", config.Load().GetString("", "color", "auto"),
		"colorize output: auto, always, or never")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cmdArgs := fs.Args()
	if len(cmdArgs) == 0 {
		return fmt.Errorf("usage: texelmark run [flags] command [args...]")
	}

	opts := ptyrun.Options{}
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		opts.Width, opts.Height = w, h
	}

	started := time.Now()
	raw, runErr := ptyrun.Capture(cmdArgs[0], cmdArgs[1:], opts)
	formatted := format(ptyrun.Clean(raw))

	if err := emit(formatted, *color); err != nil {
		return err
	}

	cfg := config.Load()
	if !*noHistory && cfg.GetBool("history", "enabled", true) {
		if err := recordRun(cfg, started, strings.Join(cmdArgs, " "), raw, formatted); err != nil {
			log.Printf("[HISTORY] failed to record run: %v", err)
		}
	}
	return runErr
}

func recordRun(cfg config.Config, started time.Time, command, raw, formatted string) error {
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	_, err = store.Add(history.Run{
		StartedAt: started,
		Command:   command,
		Raw:       raw,
		Formatted: formatted,
	})
	return err
}

func openStore(cfg config.Config) (*history.Store, error) {
	path := cfg.GetString("history", "db_path", "")
	if path == "" {
		var err error
		path, err = config.HistoryDBPath()
		if err != nil {
			return nil, err
		}
	}
	return history.Open(path)
}

// ─── view mode ──────────────────────────────────────────────────────────────

func runView(args []string) error {
	fs := flag.NewFlagSet("texelmark view", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	var data []byte
	var err error
	title := "stdin"
	if fs.NArg() > 0 {
		title = fs.Arg(0)
		data, err = os.ReadFile(title)
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	formatted := format(string(data))
	return pager.View(title, strings.Split(formatted, "\n"))
}

// ─── history mode ───────────────────────────────────────────────────────────

func runHistory(args []string) error {
	fs := flag.NewFlagSet("texelmark history", flag.ContinueOnError)
	id := fs.Int64("id", 0, "replay the formatted output of a recorded run")
	search := fs.String("search", "", "list runs whose command or output matches")
	limit := fs.Int("n", config.Load().GetInt("history", "list_limit", 20), "maximum runs to list")
	color := fs.String("color", config.Load().GetString("", "color", "auto"),
		"colorize output: auto, always, or never")
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := openStore(config.Load())
	if err != nil {
		return err
	}
	defer store.Close()

	if *id != 0 {
		run, err := store.Get(*id)
		if err != nil {
			return err
		}
		return emit(run.Formatted, *color)
	}

	var runs []history.Run
	if *search != "" {
		runs, err = store.Search(*search, *limit)
	} else {
		runs, err = store.List(*limit)
	}
	if err != nil {
		return err
	}

	for _, r := range runs {
		fmt.Printf("%6d  %s  %s\n", r.ID, r.StartedAt.Format("2006-01-02 15:04:05"), r.Command)
	}
	return nil
}
