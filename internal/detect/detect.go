// Package detect defines the pitch-detector boundary described in
// spec.md §6. The detector itself (onset/frame analysis over raw
// audio) is an external collaborator outside this module's scope; this
// package owns only the interface, parameter resolution, and a stub
// implementation.
package detect

import (
	"context"

	"guitartab-transcriber/internal/apierr"
	"guitartab-transcriber/internal/config"
	"guitartab-transcriber/internal/tab"
)

// Params are the detection overrides recognised on the wire. Each
// field is independently optional: a request may set onset_threshold
// without touching minimum_velocity, and Resolve falls each unset
// field back to its own config default rather than rejecting the
// whole set or replacing it wholesale.
type Params struct {
	OnsetThreshold    *float64 `json:"onset_threshold,omitempty"`
	FrameThreshold    *float64 `json:"frame_threshold,omitempty"`
	MinimumNoteLength *float64 `json:"minimum_note_length,omitempty"`
	MinimumVelocity   *float64 `json:"minimum_velocity,omitempty"`
	MergeToleranceMs  *float64 `json:"merge_tolerance_ms,omitempty"`
}

// Resolved holds the fully-defaulted parameter set handed to a Detector.
type Resolved struct {
	OnsetThreshold    float64
	FrameThreshold    float64
	MinimumNoteLength float64
	MinimumVelocity   float64
	MergeToleranceMs  float64
}

// defaultOnsetThreshold and defaultFrameThreshold have no config
// override slot in spec.md §6 (only minimum_velocity and
// merge_tolerance_ms are named there); they take the detector's own
// conventional defaults instead.
const (
	defaultOnsetThreshold    = 0.5
	defaultFrameThreshold    = 0.3
	defaultMinimumNoteLength = 0.05
)

// Resolve merges params over cfg's defaults, key by key.
func Resolve(params Params, cfg config.Config) Resolved {
	r := Resolved{
		OnsetThreshold:    defaultOnsetThreshold,
		FrameThreshold:    defaultFrameThreshold,
		MinimumNoteLength: defaultMinimumNoteLength,
		MinimumVelocity:   cfg.MinimumVelocity,
		MergeToleranceMs:  cfg.MergeToleranceMs,
	}
	if params.OnsetThreshold != nil {
		r.OnsetThreshold = *params.OnsetThreshold
	}
	if params.FrameThreshold != nil {
		r.FrameThreshold = *params.FrameThreshold
	}
	if params.MinimumNoteLength != nil {
		r.MinimumNoteLength = *params.MinimumNoteLength
	}
	if params.MinimumVelocity != nil {
		r.MinimumVelocity = *params.MinimumVelocity
	}
	if params.MergeToleranceMs != nil {
		r.MergeToleranceMs = *params.MergeToleranceMs
	}
	return r
}

// Detector turns decoded audio into NoteEvents. The concrete
// onset/pitch-tracking implementation is out of scope for this module
// (spec.md names it an external collaborator); NullDetector below is
// the only implementation shipped here.
type Detector interface {
	Detect(ctx context.Context, audioPath string, params Resolved) ([]tab.NoteEvent, error)
}

// NullDetector always fails with DetectionFailure, standing in for the
// unimplemented external pitch detector so the HTTP surface and
// pipeline wiring can be built and tested independently of it.
type NullDetector struct{}

func (NullDetector) Detect(ctx context.Context, audioPath string, params Resolved) ([]tab.NoteEvent, error) {
	return nil, apierr.Detection("pitch detector not configured", nil)
}
