package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"guitartab-transcriber/internal/apierr"
	"guitartab-transcriber/internal/pipeline"
	"guitartab-transcriber/internal/tab"
)

// transcribeMidiRequest is the JSON body for POST /api/transcribe-midi.
type transcribeMidiRequest struct {
	Notes      []tab.NoteEvent `json:"notes" binding:"required"`
	TargetFret *int            `json:"target_fret"`
}

// TranscribeMidi handles POST /api/transcribe-midi: a pre-detected
// note sequence in, the same {tex, gp5, noteCount, notesSummary}
// response shape as /api/transcribe.
func (s *Service) TranscribeMidi(c *gin.Context) {
	var req transcribeMidiRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apierr.Invalid("malformed request body"))
		return
	}
	if len(req.Notes) == 0 {
		writeError(c, apierr.Invalid("notes must not be empty"))
		return
	}
	if req.TargetFret != nil && (*req.TargetFret < tab.MinFret || *req.TargetFret > tab.MaxFret) {
		writeError(c, apierr.Invalid("target_fret out of range"))
		return
	}

	result := s.Pipeline.TranscribeFromNotes(req.Notes, pipeline.Options{TargetFret: req.TargetFret})
	c.JSON(http.StatusOK, toResponse(result))
}
