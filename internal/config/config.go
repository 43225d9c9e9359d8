// Package config loads pipeline tuning from the environment, in the
// teacher's style: plain os.Getenv and strconv, no reflection-based
// decoder. Every variable is GT_-prefixed and optional.
package config

import (
	"os"
	"strconv"
)

// Config holds every tunable named in spec.md §6.
type Config struct {
	ChordWindowMs         float64
	MaxFretSpan           int
	PositionJumpWeight    float64
	StretchWeight         float64
	HighFretPenaltyWeight float64
	TempoBPM              int
	TicksPerBeat          int
	MinimumVelocity       float64
	MergeToleranceMs      float64

	MaxUploadBytes int64
}

// Default returns the spec's documented defaults.
func Default() Config {
	return Config{
		ChordWindowMs:         50,
		MaxFretSpan:           5,
		PositionJumpWeight:    1.5,
		StretchWeight:         0.8,
		HighFretPenaltyWeight: 0.15,
		TempoBPM:              120,
		TicksPerBeat:          960,
		MinimumVelocity:       0.4,
		MergeToleranceMs:      30,
		MaxUploadBytes:        50 * 1024 * 1024,
	}
}

// Load starts from Default and overrides each field independently when
// its GT_-prefixed env var is set and parses cleanly; a malformed
// value is ignored rather than failing startup.
func Load() Config {
	cfg := Default()

	cfg.ChordWindowMs = envFloat("GT_CHORD_WINDOW_MS", cfg.ChordWindowMs)
	cfg.MaxFretSpan = envInt("GT_MAX_FRET_SPAN", cfg.MaxFretSpan)
	cfg.PositionJumpWeight = envFloat("GT_POSITION_JUMP_WEIGHT", cfg.PositionJumpWeight)
	cfg.StretchWeight = envFloat("GT_STRETCH_WEIGHT", cfg.StretchWeight)
	cfg.HighFretPenaltyWeight = envFloat("GT_HIGH_FRET_PENALTY_WEIGHT", cfg.HighFretPenaltyWeight)
	cfg.TempoBPM = envInt("GT_TEMPO_BPM", cfg.TempoBPM)
	cfg.TicksPerBeat = envInt("GT_TICKS_PER_BEAT", cfg.TicksPerBeat)
	cfg.MinimumVelocity = envFloat("GT_MINIMUM_VELOCITY", cfg.MinimumVelocity)
	cfg.MergeToleranceMs = envFloat("GT_MERGE_TOLERANCE_MS", cfg.MergeToleranceMs)

	return cfg
}

func envFloat(key string, fallback float64) float64 {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return v
}

func envInt(key string, fallback int) int {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
