//go:build !js && !wasm

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/himanishpuri/StageCue/pkg/logger"
	"github.com/himanishpuri/StageCue/pkg/stagecue"
	"github.com/himanishpuri/StageCue/pkg/stagecue/guidance"
	"github.com/himanishpuri/StageCue/pkg/stagecue/scoring"
)

// Server encapsulates the HTTP server and its dependencies
type Server struct {
	service stagecue.Service
	config  *ServerConfig
	log     *logger.Logger
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           string
	DBPath         string
	TempDir        string
	SampleRate     int
	AllowedOrigins []string
	MaxUploadBytes int64
	MetricsEnabled bool
}

// NewServer creates a new server instance
func NewServer(service stagecue.Service, config *ServerConfig) *Server {
	if config.MaxUploadBytes <= 0 {
		config.MaxUploadBytes = 32 << 20
	}
	return &Server{
		service: service,
		config:  config,
		log:     logger.GetLogger(),
	}
}

// respondJSON writes a JSON response
func (s *Server) respondJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Errorf("Failed to encode JSON response: %v", err)
	}
}

// respondError writes an error response
func (s *Server) respondError(w http.ResponseWriter, statusCode int, message string) {
	s.respondJSON(w, statusCode, ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
		Code:    statusCode,
	})
}

// respondServiceError maps service errors onto status codes.
func (s *Server) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case stagecue.IsNotFound(err):
		s.respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, stagecue.ErrInvalidBeat), errors.Is(err, stagecue.ErrEmptyScript):
		s.respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		s.respondError(w, http.StatusGatewayTimeout, "Request timed out")
	default:
		s.log.Errorf("Request failed: %v", err)
		s.respondError(w, http.StatusInternalServerError, err.Error())
	}
}

// decodeJSON reads a size-limited JSON body into v.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxUploadBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.log.Debugf("Failed to decode request: %v", err)
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// handleRoot handles GET /
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]any{
		"service": "StageCue API",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"health":       "GET /health",
			"metrics":      "GET /metrics",
			"presets":      "GET /api/presets",
			"guidance":     "POST /api/guidance",
			"scripts":      "GET /api/scripts",
			"createScript": "POST /api/scripts",
			"getScript":    "GET /api/scripts/{id}",
			"deleteScript": "DELETE /api/scripts/{id}",
			"updateBeat":   "PUT /api/scripts/{id}/beats/{beatID}",
			"takes":        "GET /api/scripts/{id}/takes",
			"getTake":      "GET /api/takes/{id}",
			"align":        "POST /api/align",
			"recitation":   "POST /api/recitations",
			"score":        "POST /api/score",
			"performance":  "POST /api/performances",
		},
	})
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// handlePresets handles GET /api/presets
func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, guidance.DefaultPresets())
}

// handleGuidance handles POST /api/guidance
func (s *Server) handleGuidance(w http.ResponseWriter, r *http.Request) {
	var cc guidance.CharacterContext
	if !s.decodeJSON(w, r, &cc) {
		return
	}
	s.respondJSON(w, http.StatusOK, s.service.Guidance(cc))
}

// handleListScripts handles GET /api/scripts
func (s *Server) handleListScripts(w http.ResponseWriter, r *http.Request) {
	scripts, err := s.service.ListScripts()
	if err != nil {
		s.log.Errorf("Failed to list scripts: %v", err)
		s.respondError(w, http.StatusInternalServerError, "Failed to retrieve scripts")
		return
	}
	s.respondJSON(w, http.StatusOK, ListScriptsResponse{Scripts: scripts, Count: len(scripts)})
}

// handleCreateScript handles POST /api/scripts
func (s *Server) handleCreateScript(w http.ResponseWriter, r *http.Request) {
	var req CreateScriptRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	sc, err := s.service.ImportScript(r.Context(), req.Title, req.Text, req.Context)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, sc)
}

// handleGetScript handles GET /api/scripts/{id}
func (s *Server) handleGetScript(w http.ResponseWriter, r *http.Request) {
	sc, err := s.service.GetScript(r.PathValue("id"))
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, sc)
}

// handleDeleteScript handles DELETE /api/scripts/{id}
func (s *Server) handleDeleteScript(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.service.DeleteScript(id); err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, DeleteScriptResponse{
		Message: "Script deleted successfully",
		ID:      id,
	})
}

// handleUpdateBeat handles PUT /api/scripts/{id}/beats/{beatID}
func (s *Server) handleUpdateBeat(w http.ResponseWriter, r *http.Request) {
	var req UpdateBeatRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	beat, err := s.service.GetBeat(r.PathValue("beatID"))
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	if beat.ScriptID != r.PathValue("id") {
		s.respondError(w, http.StatusNotFound, stagecue.ErrBeatNotFound.Error())
		return
	}

	req.apply(beat)
	updated, err := s.service.UpdateBeat(*beat)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, updated)
}

// handleListTakes handles GET /api/scripts/{id}/takes?limit=N
func (s *Server) handleListTakes(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.respondError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	id := r.PathValue("id")
	if _, err := s.service.GetScript(id); err != nil {
		s.respondServiceError(w, err)
		return
	}
	takes, err := s.service.ListTakes(id, limit)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, ListTakesResponse{Takes: takes, Count: len(takes)})
}

// handleGetTake handles GET /api/takes/{id}
func (s *Server) handleGetTake(w http.ResponseWriter, r *http.Request) {
	take, err := s.service.GetTake(r.PathValue("id"))
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, take)
}

// handleAlign handles POST /api/align. Nothing is stored.
func (s *Server) handleAlign(w http.ResponseWriter, r *http.Request) {
	var req AlignRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, stagecue.CheckText(req.Expected, req.Actual))
}

// handleRecitation handles POST /api/recitations
func (s *Server) handleRecitation(w http.ResponseWriter, r *http.Request) {
	var req RecitationRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := s.service.CheckRecitation(r.Context(), req.ScriptID, req.BeatID, req.Transcript)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	recordRecitation(report.Summary.Accuracy)
	s.respondJSON(w, http.StatusCreated, report)
}

// handleScore handles POST /api/score. Nothing is stored.
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	dg := s.service.Guidance(req.Context)
	s.respondJSON(w, http.StatusOK, ScoreResponse{
		Guidance: dg,
		Result:   scoring.Evaluate(req.Context, dg.Characteristics, req.Metrics),
	})
}

// handlePerformance handles POST /api/performances. The body is either a
// ScoreRequest or a multipart form with an "audio" file and the context as
// form fields.
func (s *Server) handlePerformance(w http.ResponseWriter, r *http.Request) {
	var (
		report *stagecue.PerformanceReport
		err    error
	)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		report, err = s.performUpload(w, r)
		if report == nil && err == nil {
			return
		}
	} else {
		var req ScoreRequest
		if !s.decodeJSON(w, r, &req) {
			return
		}
		if verr := req.Validate(); verr != nil {
			s.respondError(w, http.StatusBadRequest, verr.Error())
			return
		}
		report, err = s.service.ScorePerformance(r.Context(), stagecue.PerformanceRequest{
			ScriptID: req.ScriptID,
			BeatID:   req.BeatID,
			Context:  req.Context,
		}, req.Metrics)
	}
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	recordPerformance(report.Result.Score)
	s.respondJSON(w, http.StatusCreated, report)
}

// performUpload saves the uploaded recording to TempDir and scores it. It
// returns (nil, nil) once it has already written an error response.
func (s *Server) performUpload(w http.ResponseWriter, r *http.Request) (*stagecue.PerformanceReport, error) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Minute)
	defer cancel()

	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.config.MaxUploadBytes); err != nil {
		s.log.Errorf("Failed to parse form: %v", err)
		s.respondError(w, http.StatusBadRequest, "Failed to parse form data")
		return nil, nil
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "audio file is required")
		return nil, nil
	}
	defer file.Close()

	tempFile := filepath.Join(s.config.TempDir,
		fmt.Sprintf("upload_%d_%s", time.Now().UnixNano(), filepath.Base(header.Filename)))
	out, err := os.Create(tempFile)
	if err != nil {
		s.log.Errorf("Failed to create temp file: %v", err)
		s.respondError(w, http.StatusInternalServerError, "Failed to process upload")
		return nil, nil
	}
	defer os.Remove(tempFile)

	if _, err := io.Copy(out, file); err != nil {
		out.Close()
		s.log.Errorf("Failed to save file: %v", err)
		s.respondError(w, http.StatusInternalServerError, "Failed to save uploaded file")
		return nil, nil
	}
	out.Close()

	req := stagecue.PerformanceRequest{
		ScriptID: r.FormValue("script_id"),
		BeatID:   r.FormValue("beat_id"),
		Context: guidance.CharacterContext{
			Origin:      r.FormValue("origin"),
			Destination: r.FormValue("destination"),
			Intent:      r.FormValue("intent"),
			Motivation:  r.FormValue("motivation"),
		},
	}
	s.log.Infof("Scoring uploaded take %s (%d bytes)", header.Filename, header.Size)
	return s.service.PerformRecording(ctx, req, tempFile)
}
