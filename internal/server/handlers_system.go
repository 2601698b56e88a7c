package server

import (
	"net/http"
	"time"

	"github.com/sumeetk/foliox/internal/common"
)

// handleHealth returns service health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "healthy",
		"service":     "foliox",
		"version":     common.GetVersion(),
		"environment": s.app.Config.Environment,
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
	})
}

// handleVersion returns build version information
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}
