// Package markup emits the alphaTex-style textual tab markup consumed
// directly by alphaTab.
package markup

import (
	"fmt"
	"sort"
	"strings"

	"guitartab-transcriber/internal/duration"
	"guitartab-transcriber/internal/tab"
)

// Config controls beat regrouping and the header tempo.
type Config struct {
	ChordWindowSeconds float64
	Tempo              int
}

// DefaultConfig uses chord_window_ms=50 and tempo_bpm=120.
func DefaultConfig() Config {
	return Config{ChordWindowSeconds: 0.05, Tempo: 120}
}

// emptyMarkup is returned for empty input. The literal "\tempo 120" here
// regardless of cfg.Tempo matches observed upstream behaviour — flagged
// as a likely bug rather than fixed, since it is part of the reference
// contract.
const emptyMarkup = `\title 'Guitar Transcription' \tempo 120 . 1 r`

// Emit renders tabNotes (already positioned by the solver) as a single
// alphaTex string. Beats are formed by re-grouping tabNotes with the
// same chord window used upstream — the solver may reorder positions
// within a beat but never timing, so grouping on timing alone
// reproduces the original partition.
func Emit(tabNotes []tab.TabNote, cfg Config) string {
	if len(tabNotes) == 0 {
		return emptyMarkup
	}

	sorted := make([]tab.TabNote, len(tabNotes))
	copy(sorted, tabNotes)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].StartTime != sorted[j].StartTime {
			return sorted[i].StartTime < sorted[j].StartTime
		}
		return sorted[i].String < sorted[j].String
	})

	lines := []string{
		`\title 'Guitar Transcription'`,
		fmt.Sprintf(`\tempo %d`, cfg.Tempo),
		`\instrument 25`,
		`\tuning e5 b4 g4 d4 a3 e3`,
		`.`,
	}

	for _, beat := range groupBeats(sorted, cfg.ChordWindowSeconds) {
		events := make([]tab.NoteEvent, len(beat))
		for i, n := range beat {
			events[i] = n.NoteEvent
		}
		dur := duration.QuantizeGroup(events)

		if len(beat) == 1 {
			lines = append(lines, fmt.Sprintf("%d.%d.%d", beat[0].Fret, beat[0].String, dur))
			continue
		}
		parts := make([]string, len(beat))
		for i, n := range beat {
			parts[i] = fmt.Sprintf("%d.%d", n.Fret, n.String)
		}
		lines = append(lines, fmt.Sprintf("(%s).%d", strings.Join(parts, " "), dur))
	}

	return strings.Join(lines, " ")
}

// groupBeats partitions already (start_time, string)-sorted tab notes
// using the same simultaneity window as the chord grouper.
func groupBeats(sorted []tab.TabNote, window float64) [][]tab.TabNote {
	if len(sorted) == 0 {
		return nil
	}
	var groups [][]tab.TabNote
	current := []tab.TabNote{sorted[0]}

	for _, n := range sorted[1:] {
		if n.StartTime-current[0].StartTime <= window {
			current = append(current, n)
			continue
		}
		groups = append(groups, current)
		current = []tab.TabNote{n}
	}
	groups = append(groups, current)
	return groups
}
