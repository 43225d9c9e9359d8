// Package fretboard maps MIDI pitches to playable (string, fret)
// positions under a given tuning.
package fretboard

import "guitartab-transcriber/internal/tab"

// Candidates returns every (string, fret) pair that produces pitch
// under tuning, in ascending string-number order. Order is stable
// across calls with equal arguments — callers needing a different
// order sort as needed.
func Candidates(tuning tab.Tuning, pitch int) []tab.Candidate {
	var out []tab.Candidate
	for s := 1; s <= tab.NumStrings; s++ {
		open, ok := tuning[s]
		if !ok {
			continue
		}
		fret := pitch - open
		if fret >= tab.MinFret && fret <= tab.MaxFret {
			out = append(out, tab.Candidate{String: s, Fret: fret})
		}
	}
	return out
}
