package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/koustreak/bootprofile/internal/errs"
	"github.com/koustreak/bootprofile/internal/profile"
)

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	cfg, err := profile.ResolveParams(paramsFrom(r), s.project)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

func (s *Server) handleTaskProfile(w http.ResponseWriter, r *http.Request) {
	task, err := profile.ParseTask(chi.URLParam(r, "task"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	cfg, err := profile.ResolveParams(paramsFrom(r), s.project)
	if err != nil {
		s.writeError(w, err)
		return
	}

	tp, err := profile.ForTask(cfg, task)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tp)
}

// paramsFrom reads the build parameters from the query string. Absent and
// empty parameters are treated alike.
func paramsFrom(r *http.Request) profile.Params {
	q := r.URL.Query()
	return profile.Params{
		DB:   q.Get("db"),
		TLS:  q.Get("tls"),
		Port: q.Get("port"),
		Fork: q.Get("fork"),
		Tag:  q.Get("tag"),
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errs.IsClientError(err) {
		status = http.StatusBadRequest
		s.log.With().Err(err).Str("kind", errs.KindOf(err).String()).Logger().Warn("request rejected")
	} else {
		s.log.ErrorWith("request failed", err, nil)
	}
	writeJSON(w, status, errorResponse{Error: err.Error(), Kind: errs.KindOf(err).String()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
