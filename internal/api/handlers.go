package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/open-climate-tech/firecam/internal/domain/entity"
	"github.com/open-climate-tech/firecam/internal/usecase"
	"go.uber.org/zap"
)

// Client-facing response bodies, kept byte-for-byte compatible with
// the original cloud functions. Detail goes to the logs only.
const (
	respDone            = "done"
	respMissingParams   = "Missing parameters"
	respUnsupportedType = "Unsupported label type"
	respLabelFailure    = "Failure - check logs"
	respDownloadFailure = "Could not download mp4"
	respDecodeFailure   = "Could not decode mp4"
	respUploadFailure   = "Could not upload jpegs"
)

// bboxLabelRequest uses pointers so that absent fields are
// distinguishable from zero values. Coordinates stay json.Number: they
// are passed through to the database without range validation.
type bboxLabelRequest struct {
	Type     *string      `json:"type"`
	FileName *string      `json:"fileName"`
	MinX     *json.Number `json:"minX"`
	MinY     *json.Number `json:"minY"`
	MaxX     *json.Number `json:"maxX"`
	MaxY     *json.Number `json:"maxY"`
	Notes    string       `json:"notes"`
}

func (s *Server) handleRecordLabel(w http.ResponseWriter, r *http.Request) {
	var req bboxLabelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.logger.Warn("unparsable label request", zap.Error(err))
		writePlain(w, http.StatusBadRequest, respMissingParams)
		return
	}

	if req.Type == nil || req.FileName == nil ||
		req.MinX == nil || req.MinY == nil || req.MaxX == nil || req.MaxY == nil {
		writePlain(w, http.StatusBadRequest, respMissingParams)
		return
	}
	if *req.Type != "bbox" {
		writePlain(w, http.StatusBadRequest, respUnsupportedType)
		return
	}

	label := &entity.BBoxLabel{
		ImageName: *req.FileName,
		MinX:      req.MinX.String(),
		MinY:      req.MinY.String(),
		MaxX:      req.MaxX.String(),
		MaxY:      req.MaxY.String(),
		UserID:    identityFromAuthHeader(r.Header.Get("Authorization"), s.logger),
		Notes:     req.Notes,
	}

	if err := s.recorder.Execute(r.Context(), label); err != nil {
		writePlain(w, http.StatusBadRequest, respLabelFailure)
		return
	}

	writePlain(w, http.StatusOK, respDone)
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req entity.ExtractionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.logger.Warn("unparsable extraction request", zap.Error(err))
		writePlain(w, http.StatusBadRequest, respMissingParams)
		return
	}

	_, err := s.extractor.Execute(r.Context(), &req)
	switch {
	case err == nil:
		writePlain(w, http.StatusOK, respDone)
	case errors.Is(err, usecase.ErrMissingParams):
		writePlain(w, http.StatusBadRequest, respMissingParams)
	case errors.Is(err, usecase.ErrDownload):
		writePlain(w, http.StatusBadRequest, respDownloadFailure)
	case errors.Is(err, usecase.ErrDecode):
		writePlain(w, http.StatusBadRequest, respDecodeFailure)
	default:
		writePlain(w, http.StatusBadRequest, respUploadFailure)
	}
}

func writePlain(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(body))
}
