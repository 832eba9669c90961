package web

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/vanagroupofficial-ai/VANACLONE/internal/application"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/encoding"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/model"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/monitor"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/service"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/session"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/suggest"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/wizard"
)

// APIResponse is a generic API response
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// CreateProfileRequest runs the wizard without a user. Suggest defaults to
// true on the catalog path and false on the manual path.
type CreateProfileRequest struct {
	AppName       string               `json:"appName"`
	Name          string               `json:"name"`
	Manual        bool                 `json:"manual"`
	Suggest       *bool                `json:"suggest"`
	PrivacyConfig *model.PrivacyConfig `json:"privacyConfig"`
}

type renameRequest struct {
	Name string `json:"name"`
}

type suggestRequest struct {
	AppName string `json:"appName"`
}

// StatusResponse is returned by /api/status
type StatusResponse struct {
	App          string           `json:"app"`
	Version      string           `json:"version"`
	SystemStatus string           `json:"systemStatus"`
	Root         string           `json:"root"`
	Profiles     int              `json:"profiles"`
	ActiveID     string           `json:"activeId,omitempty"`
	Provider     string           `json:"provider"`
	Metrics      monitor.Snapshot `json:"metrics"`
}

// handleListProfiles returns all profiles
func (s *Server) handleListProfiles(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, s.deps.Profiles.Profiles())
}

// handleGetProfile returns a single profile
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.deps.Profiles.Get(r.PathValue("id"))
	if err != nil {
		s.profileError(w, err)
		return
	}

	s.jsonResponse(w, profile)
}

// handleGetActiveProfile returns the active profile
func (s *Server) handleGetActiveProfile(w http.ResponseWriter, _ *http.Request) {
	profile, ok := s.deps.Profiles.Active()
	if !ok {
		s.jsonError(w, "No active profile", http.StatusNotFound)
		return
	}

	s.jsonResponse(w, profile)
}

func (s *Server) handleSetActiveProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.deps.Profiles.Select(r.PathValue("id"))
	if err != nil {
		s.profileError(w, err)
		return
	}

	s.jsonResponse(w, APIResponse{Success: true, Message: "Profile selected", Data: profile})
}

func (s *Server) handleClearActiveProfile(w http.ResponseWriter, _ *http.Request) {
	s.deps.Profiles.ClearActive()
	s.jsonResponse(w, APIResponse{Success: true, Message: "Selection cleared"})
}

// handleCreateProfile runs the clone wizard and saves the result
func (s *Server) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	var req CreateProfileRequest
	if !decodeBody(s, w, r, &req) {
		return
	}

	if strings.TrimSpace(req.AppName) == "" {
		s.jsonError(w, "appName is required", http.StatusBadRequest)
		return
	}

	in := wizard.Input{
		AppName: req.AppName,
		Name:    req.Name,
		Manual:  req.Manual,
		Suggest: !req.Manual,
	}

	if req.Suggest != nil {
		in.Suggest = *req.Suggest
	}

	if req.PrivacyConfig != nil {
		in.Privacy = make(map[model.PrivacyFlag]bool, len(model.PrivacyFlags()))
		for _, f := range model.PrivacyFlags() {
			in.Privacy[f] = req.PrivacyConfig.Get(f)
		}
	}

	out, err := wizard.Run(r.Context(), s.deps.Provider, in, s.deps.Now(), wizard.WithLogger(s.logger))
	if err != nil {
		s.jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.deps.Profiles.Add(out.Profile); err != nil {
		s.logger.Error("failed to save profile", "id", out.Profile.ID, "error", err)
		s.jsonError(w, "Failed to save profile", http.StatusInternalServerError)

		return
	}

	msg := "Profile created successfully"
	if out.SuggestionErr != nil {
		msg = "Profile created with default settings: " + out.SuggestionErr.Error()
	}

	w.Header().Set("Location", "/api/profiles/"+out.Profile.ID)
	s.jsonStatus(w, http.StatusCreated, APIResponse{Success: true, Message: msg, Data: out.Profile})
}

func (s *Server) handleRenameProfile(w http.ResponseWriter, r *http.Request) {
	var req renameRequest
	if !decodeBody(s, w, r, &req) {
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		s.jsonError(w, "name is required", http.StatusBadRequest)
		return
	}

	profile, err := s.deps.Profiles.Rename(r.PathValue("id"), req.Name)
	if err != nil {
		s.profileError(w, err)
		return
	}

	s.jsonResponse(w, APIResponse{Success: true, Message: "Profile renamed", Data: profile})
}

// handleDeleteProfile deletes a profile
func (s *Server) handleDeleteProfile(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.Profiles.Remove(r.PathValue("id")); err != nil {
		s.profileError(w, err)
		return
	}

	s.jsonResponse(w, APIResponse{Success: true, Message: "Profile deleted"})
}

// handleSession returns the running-clone summary of a profile
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	profile, err := s.deps.Profiles.Get(r.PathValue("id"))
	if err != nil {
		s.profileError(w, err)
		return
	}

	s.deps.Metrics.SessionLaunched()
	s.jsonResponse(w, session.Summarize(profile))
}

func (s *Server) handleGetSettings(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, s.deps.Settings.Settings())
}

// handlePutSettings overlays the given keys onto the current settings.
func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	next := s.deps.Settings.Settings()
	if !decodeBody(s, w, r, &next) {
		return
	}

	if err := s.deps.Settings.Save(next); err != nil {
		s.logger.Error("failed to save settings", "error", err)
		s.jsonError(w, "Failed to save settings", http.StatusInternalServerError)

		return
	}

	s.jsonResponse(w, APIResponse{Success: true, Message: "Settings saved", Data: next})
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	apps := wizard.Search(r.URL.Query().Get("q"))
	if apps == nil {
		apps = []model.CatalogApp{}
	}

	s.jsonResponse(w, apps)
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	var req suggestRequest
	if !decodeBody(s, w, r, &req) {
		return
	}

	suggestion, err := s.deps.Provider.Suggest(r.Context(), req.AppName).Unwrap()
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, suggest.ErrEmptyAppName) {
			status = http.StatusBadRequest
		}

		s.jsonError(w, err.Error(), status)

		return
	}

	s.jsonResponse(w, suggest.Normalize(suggestion))
}

// handleStatus returns system status
func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, StatusResponse{
		App:          application.DisplayName,
		Version:      application.Version,
		SystemStatus: "UNDETECTED",
		Root:         "HIDDEN",
		Profiles:     s.deps.Profiles.Len(),
		ActiveID:     s.deps.Profiles.ActiveID(),
		Provider:     s.deps.Provider.Name(),
		Metrics:      s.deps.Metrics.Snapshot(),
	})
}

// handleHealth returns health check status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	if err := monitor.HealthCheck(s.deps.Store); err != nil {
		s.logger.Warn("health check failed", "error", err)
		s.jsonError(w, "store unavailable", http.StatusServiceUnavailable)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func decodeBody[T any](s *Server, w http.ResponseWriter, r *http.Request, into *T) bool {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.jsonError(w, "Request body too large", http.StatusRequestEntityTooLarge)
		return false
	}

	if err := encoding.ParseJSONInto(data, into); err != nil {
		s.jsonError(w, "Invalid JSON body", http.StatusBadRequest)
		return false
	}

	return true
}

func (s *Server) profileError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrProfileNotFound):
		s.jsonError(w, "Profile not found", http.StatusNotFound)
	case errors.Is(err, service.ErrDuplicateProfile):
		s.jsonError(w, "Profile already exists", http.StatusConflict)
	default:
		s.logger.Error("profile operation failed", "error", err)
		s.jsonError(w, err.Error(), http.StatusInternalServerError)
	}
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, data any) {
	s.jsonStatus(w, http.StatusOK, data)
}

func (s *Server) jsonStatus(w http.ResponseWriter, status int, data any) {
	body, err := encoding.ToJSON(data)
	if err != nil {
		s.logger.Error("JSON encode error", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

// jsonError writes a JSON error response
func (s *Server) jsonError(w http.ResponseWriter, message string, status int) {
	s.jsonStatus(w, status, APIResponse{
		Success: false,
		Error:   message,
	})
}
