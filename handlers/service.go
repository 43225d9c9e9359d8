// Package handlers holds the Gin HTTP handlers for the transcription
// API, following the teacher's thin-handler style: a Service struct
// carries shared collaborators, each route method does request
// parsing/validation and delegates everything else to internal/pipeline.
package handlers

import (
	"github.com/rs/zerolog"

	"guitartab-transcriber/internal/config"
	"guitartab-transcriber/internal/detect"
	"guitartab-transcriber/internal/pipeline"
)

// Service bundles the collaborators every transcription route needs.
type Service struct {
	Config   config.Config
	Pipeline *pipeline.Pipeline
	Log      zerolog.Logger
}

// NewService builds a Service from config, wiring a NullDetector since
// this module does not implement audio pitch detection itself.
func NewService(cfg config.Config, log zerolog.Logger) *Service {
	return &Service{
		Config:   cfg,
		Pipeline: pipeline.New(cfg, detect.NullDetector{}, log),
		Log:      log,
	}
}

// transcribeResponse is the shared response shape for both
// /api/transcribe and /api/transcribe-midi.
type transcribeResponse struct {
	Tex          string `json:"tex"`
	GP5          string `json:"gp5"`
	NoteCount    int    `json:"noteCount"`
	NotesSummary string `json:"notesSummary"`
}

func toResponse(r pipeline.Result) transcribeResponse {
	return transcribeResponse{
		Tex:          r.Tex,
		GP5:          r.GP5Base64(),
		NoteCount:    r.NoteCount,
		NotesSummary: r.NotesSummary,
	}
}
