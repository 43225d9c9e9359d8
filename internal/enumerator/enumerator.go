// Package enumerator expands a ChordGroup into the set of valid
// (string, fret) assignments the Viterbi solver chooses between.
package enumerator

import (
	"sort"

	"guitartab-transcriber/internal/cost"
	"guitartab-transcriber/internal/fretboard"
	"guitartab-transcriber/internal/tab"
)

// Config bounds enumeration and optionally orders the result by
// distance from a target fret zone.
type Config struct {
	MaxCombos   int
	MaxFretSpan int
	TargetFret  *int
}

// DefaultConfig applies the spec's defaults: max_combos=50, max_fret_span=5.
func DefaultConfig() Config {
	return Config{MaxCombos: 50, MaxFretSpan: 5}
}

// Enumerate returns up to cfg.MaxCombos valid ChordAssignments for the
// chord, in lexicographic product order; when cfg.TargetFret is set,
// that list is then stably re-sorted by zone cost. If no tuple is valid (more
// than six notes, or every combination violates the span constraint),
// it returns a single greedy fallback assignment instead — the
// enumerator never returns an empty list.
func Enumerate(chordGroup tab.ChordGroup, tuning tab.Tuning, cfg Config) []tab.ChordAssignment {
	perNote := make([][]tab.Candidate, len(chordGroup.Notes))
	for i, n := range chordGroup.Notes {
		cands := fretboard.Candidates(tuning, n.MIDIPitch)
		if len(cands) == 0 {
			return []tab.ChordAssignment{fallback(chordGroup, tuning, cfg)}
		}
		perNote[i] = cands
	}

	valid := product(perNote, cfg)
	if len(valid) == 0 {
		valid = []tab.ChordAssignment{fallback(chordGroup, tuning, cfg)}
	}

	if cfg.TargetFret != nil {
		target := *cfg.TargetFret
		sort.SliceStable(valid, func(i, j int) bool {
			return cost.Zone(valid[i], target) < cost.Zone(valid[j], target)
		})
	}
	return valid
}

// product walks the Cartesian product of perNote in lexicographic
// order (an odometer over the index vector), keeping only assignments
// with distinct strings and an acceptable fret span, and stopping once
// MaxCombos have been accepted. Truncation therefore only depends on
// enumeration order, never on the (later, separate) zone sort.
func product(perNote [][]tab.Candidate, cfg Config) []tab.ChordAssignment {
	idx := make([]int, len(perNote))
	var valid []tab.ChordAssignment

	for {
		combo := make(tab.ChordAssignment, len(perNote))
		usedStrings := make(map[int]bool, len(perNote))
		ok := true
		minFret, maxFret, haveFretted := 0, 0, false

		for i, ci := range idx {
			c := perNote[i][ci]
			combo[i] = c
			if usedStrings[c.String] {
				ok = false
			}
			usedStrings[c.String] = true
			if c.Fret > 0 {
				if !haveFretted {
					minFret, maxFret, haveFretted = c.Fret, c.Fret, true
				} else {
					if c.Fret < minFret {
						minFret = c.Fret
					}
					if c.Fret > maxFret {
						maxFret = c.Fret
					}
				}
			}
		}

		if ok && (!haveFretted || maxFret-minFret <= cfg.MaxFretSpan) {
			valid = append(valid, combo)
			if len(valid) >= cfg.MaxCombos {
				break
			}
		}

		if !advance(idx, perNote) {
			break
		}
	}
	return valid
}

// advance increments idx like an odometer over perNote's per-position
// candidate counts, returning false once it has wrapped past the end.
func advance(idx []int, perNote [][]tab.Candidate) bool {
	for pos := len(idx) - 1; pos >= 0; pos-- {
		idx[pos]++
		if idx[pos] < len(perNote[pos]) {
			return true
		}
		idx[pos] = 0
	}
	return false
}

// fallback greedily assigns each note, in chord order, to its lowest
// fret (or nearest the target zone) candidate on an unused string;
// if none is available it forces string 1.
func fallback(chordGroup tab.ChordGroup, tuning tab.Tuning, cfg Config) tab.ChordAssignment {
	used := make(map[int]bool)
	assignment := make(tab.ChordAssignment, len(chordGroup.Notes))

	for i, n := range chordGroup.Notes {
		cands := fretboard.Candidates(tuning, n.MIDIPitch)
		if cfg.TargetFret != nil {
			target := *cfg.TargetFret
			sort.SliceStable(cands, func(a, b int) bool {
				return intAbs(cands[a].Fret-target) < intAbs(cands[b].Fret-target)
			})
		} else {
			sort.SliceStable(cands, func(a, b int) bool {
				return cands[a].Fret < cands[b].Fret
			})
		}

		chosen, found := tab.Candidate{}, false
		for _, c := range cands {
			if !used[c.String] {
				chosen, found = c, true
				used[c.String] = true
				break
			}
		}
		if !found {
			fret := n.MIDIPitch - 64
			if fret < 0 {
				fret = 0
			}
			chosen = tab.Candidate{String: 1, Fret: fret}
		}
		assignment[i] = chosen
	}
	return assignment
}

func intAbs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
