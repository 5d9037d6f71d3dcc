package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/newtron-network/mistconv/pkg/eventlog"
	"github.com/newtron-network/mistconv/pkg/pipeline"
	"github.com/newtron-network/mistconv/pkg/util"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeOK(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, Response{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, Response{Success: false, Error: msg})
}

func (s *Server) healthHandler(w http.ResponseWriter, _ *http.Request) {
	writeOK(w, HealthResponse{
		Status: "ok",
		Uptime: time.Since(s.startTime).Truncate(time.Second).String(),
	})
}

func (s *Server) disclaimerHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.disclaimer)
}

func (s *Server) convertHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBytes)
	var req ConvertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := validateRequest(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	name := req.Name
	if name == "" {
		name = s.templateName
	}

	// Each request gets its own logger so its events can be returned.
	runID := uuid.NewString()
	logger := util.NewLogger()
	events := eventlog.NewMemoryLogger()
	logger.AddHook(eventlog.NewHook(runID, eventlog.LevelInfo, events))
	logger.WithField("run", runID).Infof("Converting %d file(s)", len(req.Files))

	files := make([]*pipeline.ConfigFile, 0, len(req.Files))
	for _, f := range req.Files {
		files = append(files, pipeline.NewConfigFile(f.Name, f.Content))
	}

	start := time.Now()
	conv := pipeline.NewConverter(pipeline.WithLogger(logger), pipeline.WithTemplateName(name))
	res, err := conv.Convert(r.Context(), files)
	if err != nil {
		s.metrics.conversions.WithLabelValues("cancelled").Inc()
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	s.metrics.observe(res, time.Since(start))
	if len(res.Failed()) == len(files) {
		s.metrics.conversions.WithLabelValues("failed").Inc()
	} else {
		s.metrics.conversions.WithLabelValues("ok").Inc()
	}

	resp := ConvertResponse{Template: res.Template, Files: res.Files}
	if req.Export {
		if s.store == nil {
			writeError(w, http.StatusBadRequest, "export is not configured")
			return
		}
		if err := s.store.Export(r.Context(), res); err != nil {
			logger.WithError(err).Error("Template export failed")
			writeError(w, http.StatusBadGateway, "export failed: "+err.Error())
			return
		}
		resp.Exported = true
	}
	resp.Events = events.Events()
	writeOK(w, resp)
}

func validateRequest(req *ConvertRequest) error {
	vb := &util.ValidationBuilder{}
	vb.Add(len(req.Files) > 0, "no files to convert")
	seen := make(map[string]bool, len(req.Files))
	for i, f := range req.Files {
		if f.Name == "" {
			vb.AddErrorf("file %d has no name", i)
			continue
		}
		if seen[f.Name] {
			vb.AddErrorf("duplicate file name %q", f.Name)
		}
		seen[f.Name] = true
	}
	if vb.HasErrors() {
		return fmt.Errorf("invalid request: %w", vb.Build())
	}
	return nil
}
