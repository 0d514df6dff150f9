package httpserver

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	appsaves "github.com/bryanwahyu/factory-save-analyzer/internal/application/saves"
	"github.com/bryanwahyu/factory-save-analyzer/internal/domain/saves"
	"github.com/bryanwahyu/factory-save-analyzer/internal/middleware"
)

// multipart framing allowance on top of the file limit
const multipartOverhead = 1 << 20

// archiveParam is the {name} path segment of the per-archive routes.
type archiveParam struct {
	Name string `validate:"required,archivename"`
}

func archiveName(req *http.Request) (saves.GeneratedName, error) {
	p := archiveParam{Name: chi.URLParam(req, "name")}
	if err := middleware.ValidateStruct(p); err != nil {
		return "", err
	}
	return saves.GeneratedName(p.Name), nil
}

// POST /api/v1/saves (multipart, field "file")
func (r *Router) handleUpload(w http.ResponseWriter, req *http.Request) error {
	req.Body = http.MaxBytesReader(w, req.Body, r.maxUpload+multipartOverhead)

	file, header, err := req.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return saves.Validation("file exceeds maximum size of %d bytes", r.maxUpload)
		}
		if errors.Is(err, http.ErrMissingFile) {
			return saves.Validation("missing multipart field %q", "file")
		}
		return saves.Validation("invalid multipart body: %v", err)
	}
	defer file.Close()

	if header.Size > r.maxUpload {
		return saves.Validation("file exceeds maximum size of %d bytes", r.maxUpload)
	}

	data, err := io.ReadAll(io.LimitReader(file, r.maxUpload+1))
	if err != nil {
		return saves.Validation("read upload: %v", err)
	}
	if int64(len(data)) > r.maxUpload {
		return saves.Validation("file exceeds maximum size of %d bytes", r.maxUpload)
	}

	stored, err := r.savesSvc.Upload(req.Context(), appsaves.UploadCommand{
		Data:     data,
		Filename: header.Filename,
		MimeType: header.Header.Get("Content-Type"),
	})
	if err != nil {
		return err
	}
	return respond(w, req, http.StatusCreated, stored)
}

// GET /api/v1/saves/{name}/analysis
// Reports are recomputed per request and must never be cached downstream.
func (r *Router) handleAnalysis(w http.ResponseWriter, req *http.Request) error {
	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Expires", "0")

	name, err := archiveName(req)
	if err != nil {
		return err
	}

	out, err := r.savesSvc.Analyze(req.Context(), name)
	if err != nil {
		return err
	}
	return respond(w, req, http.StatusOK, out.Report())
}

// RetentionRequest is the body of POST /api/v1/saves/retention.
type RetentionRequest struct {
	MaxFiles *int `json:"max_files" validate:"required,min=0"`
}

// POST /api/v1/saves/retention
func (r *Router) handleRetention(w http.ResponseWriter, req *http.Request) error {
	var body RetentionRequest
	if err := json.NewDecoder(io.LimitReader(req.Body, 1<<16)).Decode(&body); err != nil {
		return saves.Validation("invalid JSON body: %v", err)
	}
	if err := middleware.ValidateStruct(body); err != nil {
		return err
	}

	res, err := r.savesSvc.Prune(req.Context(), *body.MaxFiles)
	if err != nil {
		return err
	}
	return respond(w, req, http.StatusOK, res)
}

// GET /api/v1/saves/{name}/events?limit=20
func (r *Router) handleEvents(w http.ResponseWriter, req *http.Request) error {
	name, err := archiveName(req)
	if err != nil {
		return err
	}
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))

	events, err := r.savesSvc.History(req.Context(), name, middleware.ValidateLimit(limit))
	if err != nil {
		return saves.Internal("list events", err)
	}
	return respond(w, req, http.StatusOK, events)
}
