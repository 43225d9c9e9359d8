// Package solver implements the Viterbi-style dynamic-programming
// selection over a chord sequence described by spec.md §4.5: it picks,
// for each chord, the candidate assignment that minimises the running
// sum of inter-chord position jump, intra-chord stretch, absolute-fret
// penalty, and (optionally) distance from a target fret zone.
package solver

import (
	"math"
	"sort"

	"guitartab-transcriber/internal/cost"
	"guitartab-transcriber/internal/tab"
)

// Config holds the solver's cost-model weights. The ratios between
// them are part of the contract: reimplementations must preserve them
// to reproduce reference outputs, in particular the squared transition
// cost that gives the solver its position stickiness.
type Config struct {
	PositionJumpWeight float64
	StretchWeight      float64
	HighFretWeight     float64
	TargetFret         *int
}

// DefaultConfig applies the spec's default weights:
// position_jump_weight=1.5, stretch_weight=0.8, high_fret_weight=0.15.
func DefaultConfig() Config {
	return Config{
		PositionJumpWeight: 1.5,
		StretchWeight:      0.8,
		HighFretWeight:     0.15,
	}
}

// Solve runs the DP over chords/assignments and returns the optimal
// TabNote sequence, sorted by (start_time, string ascending).
// assignments[i] must be the non-empty candidate list for chords[i]
// (as produced by enumerator.Enumerate, which never returns empty).
func Solve(chords []tab.ChordGroup, assignments [][]tab.ChordAssignment, cfg Config) []tab.TabNote {
	n := len(chords)
	if n == 0 {
		return nil
	}

	dp := make([][]float64, n)
	back := make([][]int, n)
	for i := range chords {
		dp[i] = make([]float64, len(assignments[i]))
		back[i] = make([]int, len(assignments[i]))
	}

	zoneCost := func(a tab.ChordAssignment) float64 {
		if cfg.TargetFret == nil {
			return 0
		}
		return cost.Zone(a, *cfg.TargetFret)
	}

	for j, a := range assignments[0] {
		dp[0][j] = cost.Internal(a, cfg.StretchWeight, cfg.HighFretWeight) + zoneCost(a)
		back[0][j] = -1
	}

	for i := 1; i < n; i++ {
		for j, curr := range assignments[i] {
			currCost := cost.Internal(curr, cfg.StretchWeight, cfg.HighFretWeight) + zoneCost(curr)

			best, bestK := math.Inf(1), -1
			for k, prev := range assignments[i-1] {
				total := dp[i-1][k] + cost.Transition(prev, curr, cfg.PositionJumpWeight) + currCost
				if total < best {
					best, bestK = total, k
				}
			}
			dp[i][j], back[i][j] = best, bestK
		}
	}

	bestLast, bestVal := 0, dp[n-1][0]
	for j := 1; j < len(dp[n-1]); j++ {
		if dp[n-1][j] < bestVal {
			bestVal, bestLast = dp[n-1][j], j
		}
	}

	path := make([]int, n)
	path[n-1] = bestLast
	for i := n - 2; i >= 0; i-- {
		path[i] = back[i+1][path[i+1]]
	}

	var result []tab.TabNote
	for i, grp := range chords {
		assignment := assignments[i][path[i]]
		for ni, note := range grp.Notes {
			pos := assignment[ni]
			result = append(result, tab.TabNote{NoteEvent: note, String: pos.String, Fret: pos.Fret})
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].StartTime != result[j].StartTime {
			return result[i].StartTime < result[j].StartTime
		}
		return result[i].String < result[j].String
	})
	return result
}
