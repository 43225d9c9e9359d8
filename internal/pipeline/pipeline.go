// Package pipeline wires the solver stages together into the entry
// points exposed at the HTTP boundary: notefilter → chord → enumerator
// → solver → duration → {markup, gp5}. Stage boundaries are logged
// with zerolog checkpoints, mirroring the staged [1/4]..[4/4] logging
// the original transcription driver used.
package pipeline

import (
	"context"
	"encoding/base64"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"guitartab-transcriber/internal/chord"
	"guitartab-transcriber/internal/config"
	"guitartab-transcriber/internal/detect"
	"guitartab-transcriber/internal/enumerator"
	"guitartab-transcriber/internal/gp5"
	"guitartab-transcriber/internal/markup"
	"guitartab-transcriber/internal/notefilter"
	"guitartab-transcriber/internal/solver"
	"guitartab-transcriber/internal/tab"
)

// Result is the shape returned to both HTTP endpoints.
type Result struct {
	Tex          string
	GP5          []byte
	NoteCount    int
	NotesSummary string
}

// Options carries the per-request overrides spec.md §6 recognises on
// top of config defaults: a target fret for the solver/enumerator and
// pitch-detection parameter overrides.
type Options struct {
	TargetFret *int
	Detection  detect.Params
}

// Pipeline holds the resolved configuration and detector collaborator
// shared across requests.
type Pipeline struct {
	Config   config.Config
	Detector detect.Detector
	Tuning   tab.Tuning
	Log      zerolog.Logger
}

// New builds a Pipeline with standard tuning and the given config/detector.
func New(cfg config.Config, detector detect.Detector, log zerolog.Logger) *Pipeline {
	return &Pipeline{Config: cfg, Detector: detector, Tuning: tab.StandardTuning(), Log: log}
}

// TranscribeFromNotes runs the solver core and both emitters over an
// already-detected note sequence (the entry point used by
// /api/transcribe-midi, and the tail of TranscribeAudio).
func (p *Pipeline) TranscribeFromNotes(notes []tab.NoteEvent, opts Options) Result {
	log := p.Log.With().Int("input_notes", len(notes)).Logger()

	filterCfg := notefilter.FromTuning(p.Tuning)
	filterCfg.MinimumVelocity = p.Config.MinimumVelocity
	filterCfg.MergeToleranceMs = p.Config.MergeToleranceMs
	filtered := notefilter.Filter(notes, filterCfg)
	log.Info().Int("stage", 1).Int("filtered_notes", len(filtered)).Msg("note filter complete")

	chordCfg := chord.Config{WindowSeconds: p.Config.ChordWindowMs / 1000.0}
	groups := chord.Group(filtered, chordCfg)
	log.Info().Int("stage", 2).Int("chords", len(groups)).Msg("chord grouping complete")

	enumCfg := enumerator.Config{MaxCombos: 50, MaxFretSpan: p.Config.MaxFretSpan, TargetFret: opts.TargetFret}
	assignments := make([][]tab.ChordAssignment, len(groups))
	for i, g := range groups {
		assignments[i] = enumerator.Enumerate(g, p.Tuning, enumCfg)
	}
	log.Info().Int("stage", 3).Msg("candidate enumeration complete")

	solveCfg := solver.Config{
		PositionJumpWeight: p.Config.PositionJumpWeight,
		StretchWeight:      p.Config.StretchWeight,
		HighFretWeight:     p.Config.HighFretPenaltyWeight,
		TargetFret:         opts.TargetFret,
	}
	tabNotes := solver.Solve(groups, assignments, solveCfg)
	log.Info().Int("stage", 4).Int("tab_notes", len(tabNotes)).Msg("solve complete")

	markupCfg := markup.Config{ChordWindowSeconds: chordCfg.WindowSeconds, Tempo: p.Config.TempoBPM}
	tex := markup.Emit(tabNotes, markupCfg)

	gp5Cfg := gp5.Config{TempoBPM: p.Config.TempoBPM}
	doc := gp5.Build(tabNotes, p.Tuning, gp5Cfg)

	return Result{
		Tex:          tex,
		GP5:          doc,
		NoteCount:    len(tabNotes),
		NotesSummary: summarize(tabNotes),
	}
}

// TranscribeAudio runs detection followed by TranscribeFromNotes (the
// entry point used by /api/transcribe).
func (p *Pipeline) TranscribeAudio(ctx context.Context, audioPath string, opts Options) (Result, error) {
	resolved := detect.Resolve(opts.Detection, p.Config)
	notes, err := p.Detector.Detect(ctx, audioPath, resolved)
	if err != nil {
		return Result{}, err
	}
	return p.TranscribeFromNotes(notes, opts), nil
}

// GP5Base64 is a convenience accessor for the HTTP response shape.
func (r Result) GP5Base64() string {
	return base64.StdEncoding.EncodeToString(r.GP5)
}

// maxSummaryNotes caps notesSummary at the first 20 tab notes.
const maxSummaryNotes = 20

// summarize renders each of the first 20 tab notes as "s{string}f{fret}
// ({midi_pitch})", space-joined.
func summarize(tabNotes []tab.TabNote) string {
	n := len(tabNotes)
	if n > maxSummaryNotes {
		n = maxSummaryNotes
	}
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		note := tabNotes[i]
		parts[i] = "s" + strconv.Itoa(note.String) + "f" + strconv.Itoa(note.Fret) + "(" + strconv.Itoa(note.MIDIPitch) + ")"
	}
	return strings.Join(parts, " ")
}
