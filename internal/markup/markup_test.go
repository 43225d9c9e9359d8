package markup

import (
	"strings"
	"testing"

	"guitartab-transcriber/internal/tab"
)

func TestEmit_EmptyInputIsLiteralHeader(t *testing.T) {
	got := Emit(nil, DefaultConfig())
	if got != emptyMarkup {
		t.Errorf("Emit(nil) = %q, want %q", got, emptyMarkup)
	}
}

func TestEmit_SingleNoteFormatting(t *testing.T) {
	notes := []tab.TabNote{
		{NoteEvent: tab.NoteEvent{StartTime: 0, EndTime: 0.5}, String: 6, Fret: 0},
	}
	got := Emit(notes, DefaultConfig())
	if !strings.Contains(got, "0.6.4") {
		t.Errorf("Emit output missing expected beat token: %q", got)
	}
	if !strings.HasPrefix(got, `\title 'Guitar Transcription' \tempo 120`) {
		t.Errorf("Emit output missing header: %q", got)
	}
}

func TestEmit_ChordFormatting(t *testing.T) {
	notes := []tab.TabNote{
		{NoteEvent: tab.NoteEvent{StartTime: 0, EndTime: 1.0}, String: 6, Fret: 0},
		{NoteEvent: tab.NoteEvent{StartTime: 0, EndTime: 1.0}, String: 5, Fret: 2},
	}
	got := Emit(notes, DefaultConfig())
	if !strings.Contains(got, "(2.5 0.6).") {
		t.Errorf("Emit output missing chord token: %q", got)
	}
}

func TestEmit_NeverEmpty(t *testing.T) {
	if Emit(nil, DefaultConfig()) == "" {
		t.Error("Emit(nil) returned empty string")
	}
	notes := []tab.TabNote{{NoteEvent: tab.NoteEvent{StartTime: 0, EndTime: 0.5}, String: 1, Fret: 0}}
	if Emit(notes, DefaultConfig()) == "" {
		t.Error("Emit(notes) returned empty string")
	}
}
