package notefilter

import (
	"testing"

	"guitartab-transcriber/internal/tab"
)

// ── range/velocity clip ──────────────────────────────────────────────────────

func TestFilter_DropsOutOfRangeAndQuietNotes(t *testing.T) {
	cfg := DefaultConfig()
	notes := []tab.NoteEvent{
		{StartTime: 0, EndTime: 0.5, MIDIPitch: 30, Velocity: 0.8},  // below guitar range
		{StartTime: 0, EndTime: 0.5, MIDIPitch: 60, Velocity: 0.1},  // too quiet
		{StartTime: 0, EndTime: 0.5, MIDIPitch: 60, Velocity: 0.8},  // kept
	}
	got := Filter(notes, cfg)
	if len(got) != 1 {
		t.Fatalf("len(got) = %d, want 1: %+v", len(got), got)
	}
	if got[0].MIDIPitch != 60 {
		t.Errorf("got[0].MIDIPitch = %d, want 60", got[0].MIDIPitch)
	}
}

// ── dedup ─────────────────────────────────────────────────────────────────────

func TestFilter_DedupKeepsLonger(t *testing.T) {
	cfg := DefaultConfig()
	notes := []tab.NoteEvent{
		{StartTime: 0.0, EndTime: 0.3, MIDIPitch: 60, Velocity: 0.7}, // shorter, overlapping
		{StartTime: 0.0, EndTime: 1.0, MIDIPitch: 60, Velocity: 0.7}, // longer
	}
	got := Filter(notes, cfg)
	if len(got) != 1 {
		t.Fatalf("len(got) = %d, want 1", len(got))
	}
	if got[0].EndTime != 1.0 {
		t.Errorf("EndTime = %v, want 1.0 (longer note should survive)", got[0].EndTime)
	}
}

// ── merge ─────────────────────────────────────────────────────────────────────

func TestFilter_MergesCloseSamePitchNotes(t *testing.T) {
	cfg := DefaultConfig()
	notes := []tab.NoteEvent{
		{StartTime: 0.0, EndTime: 0.5, MIDIPitch: 60, Velocity: 0.7},
		{StartTime: 0.52, EndTime: 1.0, MIDIPitch: 60, Velocity: 0.9},
	}
	got := Filter(notes, cfg)
	if len(got) != 1 {
		t.Fatalf("len(got) = %d, want 1", len(got))
	}
	want := tab.NoteEvent{StartTime: 0.0, EndTime: 1.0, MIDIPitch: 60, Velocity: 0.9}
	if got[0] != want {
		t.Errorf("got[0] = %+v, want %+v", got[0], want)
	}
}

func TestFilter_ChainsMergeAcrossThreeNotes(t *testing.T) {
	cfg := DefaultConfig()
	notes := []tab.NoteEvent{
		{StartTime: 0.0, EndTime: 0.4, MIDIPitch: 60, Velocity: 0.5},
		{StartTime: 0.41, EndTime: 0.8, MIDIPitch: 60, Velocity: 0.6},
		{StartTime: 0.81, EndTime: 1.2, MIDIPitch: 60, Velocity: 0.4},
	}
	got := Filter(notes, cfg)
	if len(got) != 1 {
		t.Fatalf("len(got) = %d, want 1", len(got))
	}
	if got[0].StartTime != 0.0 || got[0].EndTime != 1.2 {
		t.Errorf("merged span = [%v,%v], want [0,1.2]", got[0].StartTime, got[0].EndTime)
	}
}

func TestFilter_FinalSortOrder(t *testing.T) {
	cfg := DefaultConfig()
	notes := []tab.NoteEvent{
		{StartTime: 0.5, EndTime: 1.0, MIDIPitch: 64, Velocity: 0.8},
		{StartTime: 0.0, EndTime: 0.5, MIDIPitch: 60, Velocity: 0.8},
		{StartTime: 0.0, EndTime: 0.5, MIDIPitch: 55, Velocity: 0.8},
	}
	got := Filter(notes, cfg)
	for i := 1; i < len(got); i++ {
		if got[i-1].StartTime > got[i].StartTime {
			t.Fatalf("not sorted by start_time: %+v", got)
		}
	}
	if got[0].MIDIPitch != 55 || got[1].MIDIPitch != 60 {
		t.Errorf("tie at t=0 not sorted by pitch: %+v", got[:2])
	}
}
