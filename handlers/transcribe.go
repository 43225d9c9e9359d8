package handlers

import (
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	"guitartab-transcriber/internal/apierr"
	"guitartab-transcriber/internal/detect"
	"guitartab-transcriber/internal/pipeline"
	"guitartab-transcriber/internal/upload"
)

// Transcribe handles POST /api/transcribe: a multipart audio file plus
// optional detection-parameter form fields, reduced to the pipeline's
// {tex, gp5, noteCount, notesSummary} response shape.
//
// Audio decoding and pitch detection are external collaborators this
// module does not implement (see internal/detect.NullDetector); the
// upload boundary itself — filename, extension, size — is fully
// enforced here regardless.
func (s *Service) Transcribe(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		writeError(c, apierr.Invalid("missing file"))
		return
	}
	if verr := upload.Validate(fileHeader.Filename, fileHeader.Size, s.Config); verr != nil {
		writeError(c, verr)
		return
	}

	opts := pipeline.Options{Detection: parseDetectionParams(c)}
	if tf, ok := parseTargetFret(c); ok {
		opts.TargetFret = &tf
	}

	tmpPath, err := spoolUpload(c, fileHeader)
	if err != nil {
		writeError(c, apierr.Detection("failed to spool upload", err))
		return
	}
	defer os.Remove(tmpPath)

	result, err := s.Pipeline.TranscribeAudio(c.Request.Context(), tmpPath, opts)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(result))
}

// spoolUpload copies the multipart file to a scoped temp file. If the
// copy fails the temp file is removed here; otherwise the caller owns
// deletion (Transcribe defers os.Remove right after this returns, so the
// file goes however TranscribeAudio returns).
func spoolUpload(c *gin.Context, fileHeader *multipart.FileHeader) (string, error) {
	tmp, err := os.CreateTemp("", "gt-upload-*"+filepath.Ext(fileHeader.Filename))
	if err != nil {
		return "", err
	}
	defer tmp.Close()

	if err := c.SaveUploadedFile(fileHeader, tmp.Name()); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}

func parseTargetFret(c *gin.Context) (int, bool) {
	raw := c.PostForm("target_fret")
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseDetectionParams(c *gin.Context) detect.Params {
	var p detect.Params
	if v, ok := formFloat(c, "onset_threshold"); ok {
		p.OnsetThreshold = &v
	}
	if v, ok := formFloat(c, "frame_threshold"); ok {
		p.FrameThreshold = &v
	}
	if v, ok := formFloat(c, "minimum_note_length"); ok {
		p.MinimumNoteLength = &v
	}
	if v, ok := formFloat(c, "minimum_velocity"); ok {
		p.MinimumVelocity = &v
	}
	if v, ok := formFloat(c, "merge_tolerance_ms"); ok {
		p.MergeToleranceMs = &v
	}
	return p
}

func formFloat(c *gin.Context, key string) (float64, bool) {
	raw := c.PostForm(key)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
