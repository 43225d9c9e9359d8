// Package gp5 serialises positioned tab notes into a Guitar Pro 5.1.0
// binary document. The wire format itself is externally specified
// (unlike the rest of this module, no third-party Go library for it
// exists anywhere in the dependency pool this project draws from), so
// the writer is hand-rolled the same way the teacher hand-rolls its
// own binary format in handlers/midi.go: encoding/binary plus
// bytes.Buffer, with small helpers for the format's primitive types.
package gp5

import (
	"bytes"
	"math"
	"sort"

	"guitartab-transcriber/internal/tab"
)

// version is the fixed GP5.1.0 version string every document declares.
const version = "FICHIER GUITAR PRO v5.10"

const (
	ticksPerBeat    = 960
	ticksPerMeasure = 4 * ticksPerBeat // 4/4 only
	beatGroupTicks  = 30
	minDurationTick = 60
)

// durationTable maps a tick length to its GP5 duration value (quarter
// note = 0 in the on-wire encoding; we keep the friendlier 1/2/4/8 form
// here and translate when writing).
var durationTable = []struct {
	ticks int
	value int
}{
	{3840, 1},
	{1920, 2},
	{960, 4},
	{480, 8},
	{240, 16},
	{120, 32},
	{60, 64},
}

// Config controls tempo and per-track metadata.
type Config struct {
	TempoBPM int
}

// DefaultConfig uses tempo_bpm=120.
func DefaultConfig() Config {
	return Config{TempoBPM: 120}
}

type positionedNote struct {
	startTick int
	durTicks  int
	note      tab.TabNote
}

type beat struct {
	measure  int
	duration int // GP5 duration value: 1,2,4,8,16,32,64
	notes    []positionedNote
}

// Build renders tabNotes as a complete GP5 5.1.0 byte stream, per the
// beat-grouping and tick-derivation rules: ticks_per_beat=960,
// start_tick=floor(start*tps), duration clamped to a 60-tick minimum,
// consecutive beats merged within a 30-tick window.
func Build(tabNotes []tab.TabNote, tuning tab.Tuning, cfg Config) []byte {
	beats, numMeasures := layout(tabNotes, cfg)

	var buf bytes.Buffer
	w := &writer{buf: &buf}

	w.gpString(version)
	writeHeader(w, cfg.TempoBPM)
	writeTrack(w, tuning)
	writeMeasureHeaders(w, numMeasures)
	writeBeats(w, beats, numMeasures)

	return buf.Bytes()
}

// layout converts tab notes into tick-space beats grouped by
// simultaneity and bucketed into 4/4 measures.
func layout(tabNotes []tab.TabNote, cfg Config) ([]beat, int) {
	tps := float64(ticksPerBeat) * float64(cfg.TempoBPM) / 60.0

	var positioned []positionedNote
	maxEnd := 0
	for _, n := range tabNotes {
		start := int(math.Floor(n.StartTime * tps))
		end := int(math.Floor(n.EndTime * tps))
		dur := end - start
		if dur < minDurationTick {
			dur = minDurationTick
		}
		positioned = append(positioned, positionedNote{startTick: start, durTicks: dur, note: n})
		if start+dur > maxEnd {
			maxEnd = start + dur
		}
	}

	sort.SliceStable(positioned, func(i, j int) bool {
		if positioned[i].startTick != positioned[j].startTick {
			return positioned[i].startTick < positioned[j].startTick
		}
		return positioned[i].durTicks < positioned[j].durTicks
	})

	numMeasures := 1
	if maxEnd > 0 {
		numMeasures = (maxEnd + ticksPerMeasure - 1) / ticksPerMeasure
		if numMeasures < 1 {
			numMeasures = 1
		}
	}

	var beats []beat
	i := 0
	for i < len(positioned) {
		head := positioned[i]
		group := []positionedNote{head}
		j := i + 1
		for j < len(positioned) && positioned[j].startTick-head.startTick <= beatGroupTicks {
			group = append(group, positioned[j])
			j++
		}
		measure := head.startTick / ticksPerMeasure
		if measure > numMeasures-1 {
			measure = numMeasures - 1
		}
		beats = append(beats, beat{
			measure:  measure,
			duration: nearestDuration(head.durTicks),
			notes:    group,
		})
		i = j
	}

	return beats, numMeasures
}

// nearestDuration finds the duration table entry closest to ticks,
// preferring the shorter (higher) value on a tie.
func nearestDuration(ticks int) int {
	best, bestDiff := durationTable[0], math.MaxInt64
	for _, d := range durationTable {
		diff := d.ticks - ticks
		if diff < 0 {
			diff = -diff
		}
		if diff < bestDiff || (diff == bestDiff && d.value > best.value) {
			best, bestDiff = d, diff
		}
	}
	return best.value
}

// durationToGP maps our friendly value (1,2,4,8,16,32,64) to the GP5
// on-wire signed byte (0=quarter, -1=half, -2=whole, 1=eighth, ...).
func durationToGP(value int) int8 {
	switch value {
	case 1:
		return -2
	case 2:
		return -1
	case 4:
		return 0
	case 8:
		return 1
	case 16:
		return 2
	case 32:
		return 3
	case 64:
		return 4
	default:
		return 0
	}
}
