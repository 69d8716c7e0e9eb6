// Command midi-tui is a terminal browser over a parsed Standard MIDI
// File: a header pane, a scrollable per-track event list, and a
// validation-issues pane.
//
// Usage:
//
//	midi-tui [options] <input.mid>
//
// Options:
//
//	-dump    Print the three panes as plain text and exit, for use in
//	         scripts and CI without a terminal.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/nsf/termbox-go"

	"github.com/midiweave/smf/pkg/smf"
)

var dump = flag.Bool("dump", false, "Print panes as plain text and exit")

const (
	colDef    = termbox.ColorDefault
	colWhite  = termbox.ColorWhite
	colCyan   = termbox.ColorCyan
	colYellow = termbox.ColorYellow
	colRed    = termbox.ColorRed
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <input.mid>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Browses a MIDI file's header, events, and validator issues.\n\n")
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

	if *dump {
		dumpPlainText(file)
		return nil
	}

	return runTUI(file)
}

func dumpPlainText(file *smf.File) {
	fmt.Println(headerSummary(file))
	fmt.Println()
	for i, track := range file.Tracks {
		fmt.Printf("Track %d (%d events):\n", i, len(track.Events))
		for _, e := range track.Events {
			fmt.Printf("  %s\n", eventSummary(e))
		}
	}
	fmt.Println()
	issues := smf.Validate(file)
	if len(issues) == 0 {
		fmt.Println("Issues: none")
		return
	}
	fmt.Println("Issues:")
	for _, issue := range issues {
		fmt.Printf("  - %s\n", issue)
	}
}

func headerSummary(file *smf.File) string {
	div := "Ppq(unset)"
	switch file.TimeDivision.Kind {
	case smf.DivisionPPQ:
		div = fmt.Sprintf("Ppq(%d)", file.TimeDivision.PPQ)
	case smf.DivisionSMPTE:
		div = fmt.Sprintf("Smpte(fps=%d, tpf=%d)", file.TimeDivision.FramesPerSecond, file.TimeDivision.TicksPerFrame)
	}
	return fmt.Sprintf("Format %d, %d track(s), %s", file.Format, file.TrackCount, div)
}

func eventSummary(e smf.Event) string {
	switch ev := e.(type) {
	case *smf.NoteOnEvent:
		return fmt.Sprintf("@%-6d Note On  ch=%d note=%d vel=%d len=%d", ev.Delta(), ev.Channel, ev.Note, ev.Velocity, ev.Length)
	case *smf.NoteOffEvent:
		return fmt.Sprintf("@%-6d Note Off ch=%d note=%d vel=%d", ev.Delta(), ev.Channel, ev.Note, ev.Velocity)
	case *smf.ControlChangeEvent:
		return fmt.Sprintf("@%-6d %s ch=%d controller=%d (%s) value=%d", ev.Delta(), ev.EventLabel(), ev.Channel, ev.Controller, ev.ControllerLabel(), ev.Value)
	case *smf.SystemExclusiveEvent:
		return fmt.Sprintf("@%-6d %s manufacturer=0x%02X (%s) bytes=%d", ev.Delta(), ev.EventLabel(), ev.ManufacturerID, ev.ManufacturerLabel(), len(ev.Data))
	case *smf.SetTempoEvent:
		return fmt.Sprintf("@%-6d Set Tempo bpm=%d", ev.Delta(), ev.BPM)
	case *smf.TextMetaEvent:
		return fmt.Sprintf("@%-6d %s %q", ev.Delta(), ev.EventLabel(), ev.Text)
	default:
		return fmt.Sprintf("@%-6d %s", e.Delta(), e.EventLabel())
	}
}
