package dashboard

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/jonboulle/clockwork"
)

// Recorder writes screen frames as an asciinema v2 cast.
type Recorder struct {
	w     io.WriteCloser
	clock clockwork.Clock
	start time.Time
}

// OpenRecorder creates path and writes the cast header.
func OpenRecorder(path string, width, height int, clock clockwork.Clock) (*Recorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create recording: %w", err)
	}
	r, err := NewRecorder(f, width, height, clock)
	if err != nil {
		f.Close()
		return nil, err
	}
	return r, nil
}

func NewRecorder(w io.WriteCloser, width, height int, clock clockwork.Clock) (*Recorder, error) {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	r := &Recorder{w: w, clock: clock, start: clock.Now()}

	header := map[string]any{
		"version":   2,
		"width":     width,
		"height":    height,
		"timestamp": r.start.Unix(),
		"env": map[string]string{
			"TERM":  "xterm-256color",
			"SHELL": "/bin/bash",
		},
	}
	if err := r.writeLine(header); err != nil {
		return nil, fmt.Errorf("write cast header: %w", err)
	}
	return r, nil
}

// RecordFrame captures the current screen contents as one output event.
func (r *Recorder) RecordFrame(s tcell.Screen) error {
	w, h := s.Size()
	var sb strings.Builder
	// Home the cursor so each frame replaces the previous one on playback.
	sb.WriteString("\x1b[H")
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, _, _, _ := s.GetContent(x, y)
			if r == 0 {
				r = ' '
			}
			sb.WriteRune(r)
		}
		if y < h-1 {
			sb.WriteString("\r\n")
		}
	}
	ts := r.clock.Since(r.start).Seconds()
	return r.writeLine([]any{ts, "o", sb.String()})
}

func (r *Recorder) writeLine(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = r.w.Write(b)
	return err
}

func (r *Recorder) Close() error {
	return r.w.Close()
}
