package server

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kolah/plugforge/internal/intelligence"
	"github.com/kolah/plugforge/internal/loader"
	"github.com/kolah/plugforge/internal/model"
	"github.com/kolah/plugforge/internal/session"
)

// analysisSource names a document either by URL or by an uploaded file.
type analysisSource struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

type featureSelection struct {
	Selected       []string       `json:"selected"`
	Customizations map[string]any `json:"customizations"`
}

type platformsResponse struct {
	Platforms []string `json:"platforms"`
}

type analysesResponse struct {
	Sessions []string `json:"sessions"`
}

type focusResponse struct {
	Purpose  string                       `json:"purpose"`
	Features []intelligence.PluginFeature `json:"features"`
}

var errAmbiguousSource = errors.New("provide either url, or filename and content")

func (s *Server) listPlatforms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, platformsResponse{
		Platforms: s.engines.Get(r.Context()).SupportedPlatforms(),
	})
}

func (s *Server) listAnalyses(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, analysesResponse{Sessions: s.sessions.ActiveSessions()})
}

func (s *Server) startAnalysis(w http.ResponseWriter, r *http.Request) {
	var src analysisSource
	if !decode(w, r, &src) {
		return
	}

	eng := s.engines.Get(r.Context())

	var (
		api *model.ParsedAPI
		err error
	)
	switch {
	case src.URL != "" && src.Filename == "" && src.Content == "":
		api, err = eng.AnalyzeURL(r.Context(), src.URL)
	case src.URL == "" && src.Filename != "":
		if err = loader.ValidateSourceName(src.Filename); err == nil {
			api, err = eng.AnalyzeBytes(src.Filename, []byte(src.Content))
		}
	default:
		writeError(w, http.StatusBadRequest, errAmbiguousSource.Error())
		return
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}

	sess := s.sessions.StartAnalysis(api)
	w.Header().Set("Location", "/v1/analyses/"+sess.ID)
	writeJSON(w, http.StatusCreated, sess)
}

func (s *Server) getAnalysis(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(chi.URLParam(r, "id"))
	s.respond(w, r, sess, err)
}

func (s *Server) cleanupAnalysis(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.CleanupSession(chi.URLParam(r, "id")); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) confirmPurpose(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Purpose string `json:"purpose"`
	}
	if !decode(w, r, &req) {
		return
	}
	sess, err := s.sessions.ConfirmPurpose(chi.URLParam(r, "id"), req.Purpose)
	s.respond(w, r, sess, err)
}

func (s *Server) updateFeatures(w http.ResponseWriter, r *http.Request) {
	var req featureSelection
	if !decode(w, r, &req) {
		return
	}
	sess, err := s.sessions.UpdateFeatureSelection(chi.URLParam(r, "id"), req.Selected, req.Customizations)
	s.respond(w, r, sess, err)
}

func (s *Server) updateUIPreferences(w http.ResponseWriter, r *http.Request) {
	var req session.UIPreferencesUpdate
	if !decode(w, r, &req) {
		return
	}
	sess, err := s.sessions.UpdateUIPreferences(chi.URLParam(r, "id"), req)
	s.respond(w, r, sess, err)
}

func (s *Server) updateAdvancedSettings(w http.ResponseWriter, r *http.Request) {
	var req session.AdvancedSettingsUpdate
	if !decode(w, r, &req) {
		return
	}
	sess, err := s.sessions.UpdateAdvancedSettings(chi.URLParam(r, "id"), req)
	s.respond(w, r, sess, err)
}

func (s *Server) finalize(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.FinalizeAnalysis(chi.URLParam(r, "id"))
	s.respond(w, r, sess, err)
}

func (s *Server) focusAdjustments(w http.ResponseWriter, r *http.Request) {
	purpose := r.URL.Query().Get("purpose")
	features, err := s.sessions.SuggestedFocusAdjustments(chi.URLParam(r, "id"), purpose)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, focusResponse{Purpose: purpose, Features: features})
}

func (s *Server) transform(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Platform string `json:"platform"`
	}
	if !decode(w, r, &req) {
		return
	}

	sess, err := s.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	result, err := s.engines.Get(r.Context()).Transform(sess.OriginalAPI, req.Platform, sess.TransformOptions())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) respond(w http.ResponseWriter, r *http.Request, sess *session.Session, err error) {
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}
