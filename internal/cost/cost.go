// Package cost implements the numeric cost model shared by the
// candidate enumerator (ordering its output by zone cost) and the
// Viterbi solver (full DP cost).
package cost

import "guitartab-transcriber/internal/tab"

// ZoneWeight is the fixed weight applied to per-fret distance from a
// target fret zone. Part of the cost-model contract — do not change
// without also updating the documented reference outputs.
const ZoneWeight = 2.0

// Zone penalises an assignment for straying from targetFret. Fretted
// positions cost ZoneWeight per fret of distance; open strings take a
// flat fraction of the target instead, since an open string can be
// fingered from anywhere.
func Zone(a tab.ChordAssignment, targetFret int) float64 {
	var total float64
	for _, pos := range a {
		if pos.Fret > 0 {
			total += ZoneWeight * absInt(pos.Fret-targetFret)
		} else {
			total += float64(targetFret) * 0.3
		}
	}
	return total
}

// Internal is the within-chord cost: fret stretch across fretted
// positions plus a small penalty for the mean fret (including open
// strings), favouring lower positions.
func Internal(a tab.ChordAssignment, stretchWeight, highFretWeight float64) float64 {
	minFret, maxFret, haveFretted := fretExtent(a)
	if !haveFretted {
		return 0
	}
	stretch := float64(maxFret - minFret)

	sum := 0
	for _, pos := range a {
		sum += pos.Fret
	}
	avg := float64(sum) / float64(len(a))

	return stretchWeight*stretch + highFretWeight*avg
}

// Position is the mean fret of fretted positions only, or 0 if every
// position in the assignment is open — by convention, since an
// all-open chord can be fingered from any position.
func Position(a tab.ChordAssignment) float64 {
	sum, n := 0, 0
	for _, pos := range a {
		if pos.Fret > 0 {
			sum += pos.Fret
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

// Transition is the squared position-jump cost between two consecutive
// chord assignments. The square is deliberate: it enforces strong
// position stickiness, making a 5-fret jump 25x a 1-fret jump.
func Transition(prev, curr tab.ChordAssignment, positionJumpWeight float64) float64 {
	jump := Position(curr) - Position(prev)
	return jump * jump * positionJumpWeight
}

func fretExtent(a tab.ChordAssignment) (min, max int, ok bool) {
	for _, pos := range a {
		if pos.Fret <= 0 {
			continue
		}
		if !ok {
			min, max, ok = pos.Fret, pos.Fret, true
			continue
		}
		if pos.Fret < min {
			min = pos.Fret
		}
		if pos.Fret > max {
			max = pos.Fret
		}
	}
	return min, max, ok
}

func absInt(v int) float64 {
	if v < 0 {
		return float64(-v)
	}
	return float64(v)
}
