// Package notefilter cleans a raw, unordered NoteEvent stream before it
// reaches the chord grouper: range/velocity clipping, dedup of
// overlapping same-pitch notes, and merging of near-abutting ones.
package notefilter

import (
	"sort"

	"guitartab-transcriber/internal/tab"
)

// Config holds the filter's thresholds. Zero value is not usable —
// build one with DefaultConfig or FromTuning.
type Config struct {
	GuitarMinMIDI    int
	GuitarMaxMIDI    int
	MinimumVelocity  float64
	MergeToleranceMs float64
}

// DefaultConfig derives guitar range from standard tuning and applies
// the spec's documented defaults (minimum_velocity=0.4, merge_tolerance_ms=30).
func DefaultConfig() Config {
	return FromTuning(tab.StandardTuning())
}

// FromTuning derives the guitar MIDI range from an arbitrary tuning.
func FromTuning(tuning tab.Tuning) Config {
	min, max := tuning.GuitarRange()
	return Config{
		GuitarMinMIDI:    min,
		GuitarMaxMIDI:    max,
		MinimumVelocity:  0.4,
		MergeToleranceMs: 30,
	}
}

// Filter runs the five-step cleaning pass described by the spec and
// returns a fully sorted, cleaned NoteEvent list. Idempotent on its
// own output.
func Filter(notes []tab.NoteEvent, cfg Config) []tab.NoteEvent {
	out := rangeAndVelocityClip(notes, cfg)
	out = deduplicateOverlapping(out)
	out = mergeClose(out, cfg.MergeToleranceMs)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].StartTime != out[j].StartTime {
			return out[i].StartTime < out[j].StartTime
		}
		return out[i].MIDIPitch < out[j].MIDIPitch
	})
	return out
}

func rangeAndVelocityClip(notes []tab.NoteEvent, cfg Config) []tab.NoteEvent {
	kept := make([]tab.NoteEvent, 0, len(notes))
	for _, n := range notes {
		if n.MIDIPitch < cfg.GuitarMinMIDI || n.MIDIPitch > cfg.GuitarMaxMIDI {
			continue
		}
		if n.Velocity < cfg.MinimumVelocity {
			continue
		}
		kept = append(kept, n)
	}
	return kept
}

// deduplicateOverlapping drops overlapping same-pitch notes, keeping
// whichever of the pair has the greater duration (ties favour the
// previously kept note).
func deduplicateOverlapping(notes []tab.NoteEvent) []tab.NoteEvent {
	if len(notes) <= 1 {
		return notes
	}
	sorted := sortedByPitchThenStart(notes)

	kept := make([]tab.NoteEvent, 0, len(sorted))
	kept = append(kept, sorted[0])
	for _, n := range sorted[1:] {
		prev := kept[len(kept)-1]
		if n.MIDIPitch == prev.MIDIPitch && n.StartTime < prev.EndTime {
			if n.Duration() > prev.Duration() {
				kept[len(kept)-1] = n
			}
			continue
		}
		kept = append(kept, n)
	}
	return kept
}

// mergeClose chains consecutive same-pitch notes whose inter-gap is
// within tolerance into a single note spanning all of them.
func mergeClose(notes []tab.NoteEvent, toleranceMs float64) []tab.NoteEvent {
	if len(notes) <= 1 || toleranceMs <= 0 {
		return notes
	}
	tolerance := toleranceMs / 1000.0
	sorted := sortedByPitchThenStart(notes)

	merged := make([]tab.NoteEvent, 0, len(sorted))
	merged = append(merged, sorted[0])
	for _, n := range sorted[1:] {
		prev := merged[len(merged)-1]
		if n.MIDIPitch == prev.MIDIPitch && n.StartTime-prev.EndTime <= tolerance {
			end := prev.EndTime
			if n.EndTime > end {
				end = n.EndTime
			}
			vel := prev.Velocity
			if n.Velocity > vel {
				vel = n.Velocity
			}
			merged[len(merged)-1] = tab.NoteEvent{
				StartTime: prev.StartTime,
				EndTime:   end,
				MIDIPitch: prev.MIDIPitch,
				Velocity:  vel,
			}
			continue
		}
		merged = append(merged, n)
	}
	return merged
}

func sortedByPitchThenStart(notes []tab.NoteEvent) []tab.NoteEvent {
	out := make([]tab.NoteEvent, len(notes))
	copy(out, notes)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].MIDIPitch != out[j].MIDIPitch {
			return out[i].MIDIPitch < out[j].MIDIPitch
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out
}
