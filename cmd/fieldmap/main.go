// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// fieldmap is an interactive terminal view of a field of agents,
// structures and operator-drawn areas.
//
// The field comes from at most one feed: a unix socket or WebSocket
// stream, a snapshot file watched for changes, or a recording
// replayed at a fixed pace. With no feed the field starts empty and
// only areas drawn locally appear.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/bureau-foundation/fieldmap/internal/cli"
	"github.com/bureau-foundation/fieldmap/lib/config"
	"github.com/bureau-foundation/fieldmap/lib/feed"
	"github.com/bureau-foundation/fieldmap/lib/fieldstore"
	"github.com/bureau-foundation/fieldmap/lib/fieldui"
	"github.com/bureau-foundation/fieldmap/lib/scenesync"
	"github.com/bureau-foundation/fieldmap/lib/version"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		var coder interface{ ExitCode() int }
		if errors.As(err, &coder) {
			os.Exit(coder.ExitCode())
		}
		os.Exit(1)
	}
}

func run(args []string) error {
	var flags options
	flagSet := flags.flagSet()
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(flagSet)
			return nil
		}
		return cli.Validation("%w", err)
	}
	if flags.help {
		printHelp(flagSet)
		return nil
	}
	if flags.version {
		fmt.Println(version.Full())
		return nil
	}
	if rest := flagSet.Args(); len(rest) > 0 {
		return cli.Validation("unexpected argument: %s", rest[0])
	}

	cfg, err := flags.loadConfig(flagSet)
	if err != nil {
		return err
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return cli.Environment("stdout is not a terminal").
			WithHint("fieldmap is interactive; run it in a terminal rather than piping its output.")
	}
	output := termenv.NewOutput(os.Stdout)
	lipgloss.SetColorProfile(output.ColorProfile())
	lipgloss.SetHasDarkBackground(output.HasDarkBackground())

	level, _ := config.ParseLevel(cfg.Log.Level)
	tuiHandler := fieldui.NewLogHandler(level)
	logger := slog.New(tuiHandler)
	if cfg.Log.Output != "" {
		fileHandler, closeFile, err := openFileLogHandler(cfg.Log.Output)
		if err != nil {
			return cli.Validation("cannot open log file %s: %w", cfg.Log.Output, err)
		}
		defer closeFile()
		logger = slog.New(fieldui.FanoutHandler{tuiHandler, fileHandler})
	}

	var metrics *scenesync.Metrics
	if cfg.Metrics.Address != "" {
		registry := prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics = scenesync.NewMetrics(registry)
		shutdown, err := serveMetrics(cfg.Metrics.Address, registry, logger)
		if err != nil {
			return cli.Validation("cannot serve metrics on %s: %w", cfg.Metrics.Address, err)
		}
		defer shutdown()
	}

	source, err := openSource(cfg, logger)
	if err != nil {
		return err
	}
	var recorder *feed.Recorder
	if cfg.Feed.Record != "" {
		recorder, err = feed.NewRecorder(cfg.Feed.Record)
		if err != nil {
			if source != nil {
				source.Close()
			}
			return cli.Validation("cannot record to %s: %w", cfg.Feed.Record, err)
		}
	}

	model, err := fieldui.NewModel(fieldui.Options{
		Store:         fieldstore.New(logger),
		Source:        source,
		Recorder:      recorder,
		SavePath:      cfg.Feed.File,
		Theme:         cfg.Theme(),
		Logger:        logger,
		Scale:         cfg.View.Scale,
		Brightness:    cfg.View.Brightness,
		Palette:       cfg.Areas.Palette,
		NamePrefix:    cfg.Areas.NamePrefix,
		FlashDuration: cfg.FlashDuration(),
		Metrics:       metrics,
	})
	if err != nil {
		return cli.Internal("building the field view: %w", err)
	}

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	tuiHandler.SetProgram(program)

	final, runErr := program.Run()
	if finalModel, ok := final.(fieldui.Model); ok {
		model = finalModel
	}
	if err := model.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: closing feed: %v\n", err)
	}
	if runErr != nil {
		return cli.Internal("running the field view: %w", runErr)
	}
	if recorder != nil {
		fmt.Fprintf(os.Stderr, "recorded %d frames to %s\n", recorder.Count(), cfg.Feed.Record)
	}
	return nil
}

// serveMetrics listens on address and serves registry on /metrics.
// The returned function shuts the server down.
func serveMetrics(address string, registry *prometheus.Registry, logger *slog.Logger) (func(), error) {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, err
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	server := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server stopped", "error", err)
		}
	}()
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}, nil
}

// openFileLogHandler creates a JSON handler writing every record to
// path. The file is created or truncated.
func openFileLogHandler(path string) (slog.Handler, func(), error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	handler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug})
	return handler, func() { file.Close() }, nil
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `fieldmap: interactive terminal view of the field.

Draw rectangular and circular areas with the mouse, select structures
and agents, and watch a live feed update the field.

Usage:
  fieldmap [flags]

Examples:
  # Edit a snapshot file; ctrl+s saves back to it
  fieldmap --file field.yaml

  # Follow a live feed and record it
  fieldmap --socket /run/fieldmap/feed.sock --record session.cbor.zst

  # Replay a recording
  fieldmap --replay session.cbor.zst

Keys:
  r/c draw rectangle/circle   esc cancel   x archive   u restore
  del remove   f raise   [/] brightness   arrows pan   +/- zoom
  ctrl+s save   q quit

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}
