package gp5

import (
	"testing"

	"guitartab-transcriber/internal/smf"
	"guitartab-transcriber/internal/tab"
)

// countNoteOns scans a raw SMF byte stream for 0x9x status bytes with a
// nonzero velocity, used here only to cross-check note counts against
// the GP5 writer's own output — an independent tick-placement oracle
// for the same tabNotes, since no third-party GP5 reader exists to
// validate against.
func countNoteOns(data []byte) int {
	count := 0
	for i := 0; i+2 < len(data); i++ {
		if data[i]&0xF0 == 0x90 && data[i+2] != 0 {
			count++
		}
	}
	return count
}

func TestBuild_AgreesWithSMFOracleOnNoteCount(t *testing.T) {
	tuning := tab.StandardTuning()
	notes := []tab.TabNote{
		{NoteEvent: tab.NoteEvent{StartTime: 0, EndTime: 0.5, MIDIPitch: 40, Velocity: 0.8}, String: 6, Fret: 0},
		{NoteEvent: tab.NoteEvent{StartTime: 0.5, EndTime: 1.0, MIDIPitch: 64, Velocity: 0.8}, String: 1, Fret: 0},
		{NoteEvent: tab.NoteEvent{StartTime: 1.0, EndTime: 1.5, MIDIPitch: 47, Velocity: 0.8}, String: 5, Fret: 2},
	}

	gp5Data := Build(notes, tuning, DefaultConfig())
	gp5Doc, err := Parse(gp5Data)
	if err != nil {
		t.Fatalf("Parse(gp5) failed: %v", err)
	}

	smfData := smf.Build(notes, smf.DefaultConfig())
	smfNoteOns := countNoteOns(smfData)

	if len(gp5Doc.Notes) != smfNoteOns {
		t.Errorf("gp5 note count %d disagrees with smf oracle note-on count %d", len(gp5Doc.Notes), smfNoteOns)
	}
	if len(gp5Doc.Notes) != len(notes) {
		t.Errorf("gp5 note count %d, want %d", len(gp5Doc.Notes), len(notes))
	}
}

func TestBuild_EmptyInputIsValidNonzeroDocument(t *testing.T) {
	data := Build(nil, tab.StandardTuning(), DefaultConfig())
	if len(data) == 0 {
		t.Fatal("Build(nil) returned zero-length document")
	}
	doc, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse(empty doc) failed: %v", err)
	}
	if doc.NumMeasures != 1 {
		t.Errorf("NumMeasures = %d, want 1", doc.NumMeasures)
	}
	if len(doc.Notes) != 0 {
		t.Errorf("expected no notes, got %+v", doc.Notes)
	}
}

func TestBuild_RoundTripsSixNoteChord(t *testing.T) {
	tuning := tab.StandardTuning()
	notes := []tab.TabNote{
		{NoteEvent: tab.NoteEvent{StartTime: 0, EndTime: 1.0, MIDIPitch: 40, Velocity: 0.8}, String: 6, Fret: 0},
		{NoteEvent: tab.NoteEvent{StartTime: 0, EndTime: 1.0, MIDIPitch: 47, Velocity: 0.8}, String: 5, Fret: 2},
		{NoteEvent: tab.NoteEvent{StartTime: 0, EndTime: 1.0, MIDIPitch: 52, Velocity: 0.8}, String: 4, Fret: 2},
		{NoteEvent: tab.NoteEvent{StartTime: 0, EndTime: 1.0, MIDIPitch: 55, Velocity: 0.8}, String: 3, Fret: 0},
		{NoteEvent: tab.NoteEvent{StartTime: 0, EndTime: 1.0, MIDIPitch: 59, Velocity: 0.8}, String: 2, Fret: 0},
		{NoteEvent: tab.NoteEvent{StartTime: 0, EndTime: 1.0, MIDIPitch: 64, Velocity: 0.8}, String: 1, Fret: 0},
	}
	data := Build(notes, tuning, DefaultConfig())
	doc, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(doc.Notes) != 6 {
		t.Fatalf("len(doc.Notes) = %d, want 6", len(doc.Notes))
	}
	strings := map[int]bool{}
	for _, n := range doc.Notes {
		strings[n.String] = true
		if n.Fret < 0 || n.Fret > 24 {
			t.Errorf("fret out of range: %+v", n)
		}
	}
	if len(strings) != 6 {
		t.Errorf("expected six distinct strings, got %v", strings)
	}
}

func TestBuild_VelocityScaledAndClipped(t *testing.T) {
	notes := []tab.TabNote{
		{NoteEvent: tab.NoteEvent{StartTime: 0, EndTime: 0.5, MIDIPitch: 64, Velocity: 1.0}, String: 1, Fret: 0},
	}
	data := Build(notes, tab.StandardTuning(), DefaultConfig())
	doc, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(doc.Notes) != 1 {
		t.Fatalf("len(doc.Notes) = %d, want 1", len(doc.Notes))
	}
	if doc.Notes[0].Velocity != 127 {
		t.Errorf("Velocity = %d, want 127", doc.Notes[0].Velocity)
	}
}

func TestBuild_MeasureCountScalesWithSpan(t *testing.T) {
	notes := []tab.TabNote{
		{NoteEvent: tab.NoteEvent{StartTime: 0, EndTime: 0.5, MIDIPitch: 64, Velocity: 0.8}, String: 1, Fret: 0},
		{NoteEvent: tab.NoteEvent{StartTime: 10, EndTime: 10.5, MIDIPitch: 64, Velocity: 0.8}, String: 1, Fret: 0},
	}
	data := Build(notes, tab.StandardTuning(), DefaultConfig())
	doc, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if doc.NumMeasures < 2 {
		t.Errorf("NumMeasures = %d, want >= 2 for a 10s span", doc.NumMeasures)
	}
}
