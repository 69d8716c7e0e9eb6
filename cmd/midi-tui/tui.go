package main

import (
	"fmt"
	"time"

	"github.com/nsf/termbox-go"

	"github.com/midiweave/smf/pkg/smf"
)

// tuiState holds everything the redraw loop and key handler need: the
// parsed file, the current track/event selection, the cached validator
// issues, and the exit flag.
type tuiState struct {
	file *smf.File
	exit bool

	selectedTrack int
	selectedEvent int
	scrollOffset  int

	issues []string
}

func runTUI(file *smf.File) error {
	if err := termbox.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	defer termbox.Close()

	termbox.SetInputMode(termbox.InputEsc)

	state := &tuiState{file: file, issues: smf.Validate(file)}

	eventQueue := make(chan termbox.Event)
	go func() {
		for {
			eventQueue <- termbox.PollEvent()
		}
	}()

	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	draw(state)
	for !state.exit {
		select {
		case ev := <-eventQueue:
			switch ev.Type {
			case termbox.EventKey:
				handleKey(ev, state)
			case termbox.EventResize:
				draw(state)
				continue
			}
			draw(state)
		case <-ticker.C:
		}
	}
	return nil
}

func handleKey(ev termbox.Event, s *tuiState) {
	if ev.Key == termbox.KeyEsc || ev.Ch == 'q' {
		s.exit = true
		return
	}

	track := currentTrack(s)

	switch ev.Key {
	case termbox.KeyTab:
		s.selectedTrack = (s.selectedTrack + 1) % max(1, len(s.file.Tracks))
		s.selectedEvent = 0
		s.scrollOffset = 0
	case termbox.KeyArrowUp:
		if s.selectedEvent > 0 {
			s.selectedEvent--
		}
	case termbox.KeyArrowDown:
		if track != nil && s.selectedEvent < len(track.Events)-1 {
			s.selectedEvent++
		}
	}

	if ev.Ch == 'v' {
		s.issues = smf.Validate(s.file)
	}
}

func currentTrack(s *tuiState) *smf.Track {
	if s.selectedTrack < 0 || s.selectedTrack >= len(s.file.Tracks) {
		return nil
	}
	return &s.file.Tracks[s.selectedTrack]
}

func draw(s *tuiState) {
	_ = termbox.Clear(colDef, colDef)
	_, h := termbox.Size()

	printTB(0, 0, colCyan, colDef, "MIDI Inspector")
	printTB(0, 1, colWhite, colDef, headerSummary(s.file))
	printTB(0, 2, colDef, colDef, "Arrows: move  Tab: switch track  v: revalidate  q/Esc: quit")
	printTB(0, 3, colDef, colDef, "----------------------------------------------------")

	track := currentTrack(s)
	printTB(0, 5, colYellow, colDef, fmt.Sprintf("Track %d/%d", s.selectedTrack, max(0, len(s.file.Tracks)-1)))

	listStartY := 6
	issuesHeight := len(s.issues) + 2
	listHeight := h - listStartY - issuesHeight - 1
	if listHeight < 3 {
		listHeight = 3
	}

	if track != nil {
		if s.selectedEvent >= s.scrollOffset+listHeight {
			s.scrollOffset = s.selectedEvent - listHeight + 1
		}
		if s.selectedEvent < s.scrollOffset {
			s.scrollOffset = s.selectedEvent
		}
		for i := 0; i < listHeight && s.scrollOffset+i < len(track.Events); i++ {
			idx := s.scrollOffset + i
			col, bg := colWhite, colDef
			prefix := "  "
			if idx == s.selectedEvent {
				col, bg = colDef, colWhite
				prefix = "> "
			}
			printTB(0, listStartY+i, col, bg, prefix+eventSummary(track.Events[idx]))
		}
	}

	issuesY := h - issuesHeight
	if len(s.issues) == 0 {
		printTB(0, issuesY, colYellow, colDef, "Issues: none")
	} else {
		printTB(0, issuesY, colRed, colDef, fmt.Sprintf("Issues (%d):", len(s.issues)))
		for i, issue := range s.issues {
			if issuesY+1+i >= h {
				break
			}
			printTB(0, issuesY+1+i, colRed, colDef, "  "+issue)
		}
	}

	termbox.Flush()
}

func printTB(x, y int, fg, bg termbox.Attribute, msg string) {
	for _, c := range msg {
		termbox.SetCell(x, y, c, fg, bg)
		x++
	}
}
