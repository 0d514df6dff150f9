package httpserver

import (
	"net/http"

	"github.com/bryanwahyu/factory-save-analyzer/internal/domain/saves"
)

// POST /api/v1/saves/{name}/advice
func (r *Router) handleAdvice(w http.ResponseWriter, req *http.Request) error {
	if r.aiSvc == nil {
		return &saves.Error{Kind: saves.ErrNotFound, Message: "advisor is not configured"}
	}
	name, err := archiveName(req)
	if err != nil {
		return err
	}

	advice, err := r.aiSvc.Advise(req.Context(), name)
	if err != nil {
		return err
	}
	return respond(w, req, http.StatusOK, advice)
}
