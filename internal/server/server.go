// Package server exposes the checker as a small remote service: POST
// source text, get the diagnostic list back as JSON. Handler logic is
// transport independent; HTTP/3 serving lives in http3.go.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pyrite-dev/pyrite/internal/cli"
	"github.com/pyrite-dev/pyrite/internal/diagnostic"
	"github.com/pyrite-dev/pyrite/internal/typechecker"
)

// CheckRequest is the body of POST /check.
type CheckRequest struct {
	Filename string `json:"filename"`
	Source   string `json:"source"`
}

// CheckResponse is the reply to POST /check.
type CheckResponse struct {
	Filename    string                  `json:"filename"`
	Diagnostics []diagnostic.Diagnostic `json:"diagnostics"`
	ErrorCount  int                     `json:"error_count"`
}

// NewHandler builds the service mux. The logger may be nil.
func NewHandler(logger *cli.Logger) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/check", func(w http.ResponseWriter, r *http.Request) {
		handleCheck(w, r, logger)
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})
	return mux
}

func handleCheck(w http.ResponseWriter, r *http.Request, logger *cli.Logger) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req CheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if req.Filename == "" {
		req.Filename = "<input>"
	}

	engine := diagnostic.NewEngine(diagnostic.Config{})
	typechecker.CheckSource(req.Source, req.Filename, engine)
	engine.Sort()

	if logger != nil {
		logger.Infof("checked %s: %d diagnostic(s)", req.Filename, len(engine.Diagnostics()))
	}

	resp := CheckResponse{
		Filename:    req.Filename,
		Diagnostics: engine.Diagnostics(),
		ErrorCount:  len(engine.Errors()),
	}
	if resp.Diagnostics == nil {
		resp.Diagnostics = []diagnostic.Diagnostic{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil && logger != nil {
		logger.Errorf("failed to encode response: %v", err)
	}
}
