// Command midi-livestream parses a Standard MIDI File once and serves its
// decoded events to any connected websocket client, paced in real time by
// each event's delta-time.
//
// Usage:
//
//	midi-livestream [options] <input.mid>
//
// Options:
//
//	-addr              Address to listen on (default ":8765")
//	-ticks-per-second  Override the pacing rate derived from the file's time division
//	-verbose           Log every replayed event
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/midiweave/smf/internal/livestream"
	"github.com/midiweave/smf/pkg/smf"
)

const shutdownTimeout = 5 * time.Second

var (
	addr           = flag.String("addr", ":8765", "Address to listen on")
	ticksPerSecond = flag.Float64("ticks-per-second", 0, "Override the pacing rate derived from the file's time division")
	verbose        = flag.Bool("verbose", false, "Log every replayed event")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <input.mid>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Serves a MIDI file's decoded events over a websocket at /ws.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(inputPath string) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", inputPath, err)
	}

	file, err := smf.Parse(data)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", inputPath, err)
	}

	if issues := smf.Validate(file); len(issues) > 0 {
		for _, issue := range issues {
			slog.Warn("validation issue", "issue", issue)
		}
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	smf.SetLogger(logger)

	service := livestream.NewService(file, *ticksPerSecond, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := service.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown error", "error", err)
		}
	}()

	err = service.ListenAndServe(*addr)
	if err != nil && ctx.Err() != nil {
		return nil // interrupted, not a failure
	}
	return err
}
