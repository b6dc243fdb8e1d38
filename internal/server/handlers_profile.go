package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/mohitmishra786/cv-wiz/internal/db"
	"github.com/mohitmishra786/cv-wiz/internal/parser"
	"github.com/mohitmishra786/cv-wiz/internal/server/middleware"
	"github.com/mohitmishra786/cv-wiz/internal/templates"
	"github.com/mohitmishra786/cv-wiz/internal/types"
)

// ProfileStore is the subset of database operations the profile and
// artifact handlers need. Implemented by *db.DB; faked in tests.
type ProfileStore interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*types.UserProfile, error)
	GetSettings(ctx context.Context, userID uuid.UUID) (*types.UserSettings, error)
	UpdateSettings(ctx context.Context, userID uuid.UUID, settings *types.UserSettings) error

	CreateProfileItem(ctx context.Context, userID uuid.UUID, kind db.ItemKind, content any) (uuid.UUID, error)
	UpdateProfileItem(ctx context.Context, itemID uuid.UUID, content any) error
	GetProfileItem(ctx context.Context, itemID uuid.UUID) (*db.ProfileItem, error)
	ListProfileItems(ctx context.Context, userID uuid.UUID, kind db.ItemKind) ([]db.ProfileItem, error)
	DeleteProfileItem(ctx context.Context, itemID uuid.UUID) error

	SaveResumeArtifact(ctx context.Context, userID uuid.UUID, template, jobTitle string, content any) (uuid.UUID, error)
	GetResumeArtifact(ctx context.Context, artifactID uuid.UUID) (*db.ResumeArtifact, error)
	ListResumeArtifacts(ctx context.Context, userID uuid.UUID, limit int) ([]db.ResumeArtifact, error)
	DeleteResumeArtifact(ctx context.Context, artifactID uuid.UUID) error
}

// kindFromPath maps the {kind} path segment to a profile item category.
var kindFromPath = map[string]db.ItemKind{
	"experiences":  db.KindExperience,
	"projects":     db.KindProject,
	"educations":   db.KindEducation,
	"skills":       db.KindSkill,
	"publications": db.KindPublication,
}

// handleGetMe returns the authenticated user's account.
func (s *Server) handleGetMe(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := s.db.GetUser(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to load user")
		return
	}
	if user == nil {
		s.errorResponse(w, http.StatusNotFound, "User not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, toAPIUser(user))
}

// handleGetProfile returns the user's complete career profile.
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	profile, err := s.db.GetProfile(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to load profile")
		return
	}
	if profile == nil {
		s.errorResponse(w, http.StatusNotFound, "Profile not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, profile)
}

// handleListItems lists the user's profile items in one category.
func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	kind, ok := kindFromPath[r.PathValue("kind")]
	if !ok {
		s.errorResponse(w, http.StatusNotFound, "Unknown profile section: "+r.PathValue("kind"))
		return
	}

	items, err := s.db.ListProfileItems(r.Context(), userID, kind)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to list items")
		return
	}
	if items == nil {
		items = []db.ProfileItem{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"items": items})
}

// handleCreateItem adds one profile item to a category.
func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	kind, ok := kindFromPath[r.PathValue("kind")]
	if !ok {
		s.errorResponse(w, http.StatusNotFound, "Unknown profile section: "+r.PathValue("kind"))
		return
	}

	content, err := decodeItem(kind, r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	id, err := s.db.CreateProfileItem(r.Context(), userID, kind, content)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to create item")
		return
	}
	s.jsonResponse(w, http.StatusCreated, map[string]string{"id": id.String()})
}

// handleUpdateItem replaces one profile item's content.
func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	kind, ok := kindFromPath[r.PathValue("kind")]
	if !ok {
		s.errorResponse(w, http.StatusNotFound, "Unknown profile section: "+r.PathValue("kind"))
		return
	}

	itemID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid item ID")
		return
	}

	item, err := s.db.GetProfileItem(r.Context(), itemID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to load item")
		return
	}
	if item == nil || item.Kind != kind {
		s.errorResponse(w, http.StatusNotFound, "Item not found")
		return
	}
	if item.UserID != userID {
		s.errorResponse(w, http.StatusForbidden, "access denied")
		return
	}

	content, err := decodeItem(kind, r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := s.db.UpdateProfileItem(r.Context(), itemID, content); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to update item")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"id": itemID.String()})
}

// handleDeleteItem removes one profile item.
func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	itemID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid item ID")
		return
	}

	item, err := s.db.GetProfileItem(r.Context(), itemID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to load item")
		return
	}
	if item == nil {
		s.errorResponse(w, http.StatusNotFound, "Item not found")
		return
	}
	if item.UserID != userID {
		s.errorResponse(w, http.StatusForbidden, "access denied")
		return
	}

	if err := s.db.DeleteProfileItem(r.Context(), itemID); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to delete item")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleGetSettings returns the user's preferences.
func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	settings, err := s.db.GetSettings(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to load settings")
		return
	}
	if settings == nil {
		settings = &types.UserSettings{}
	}
	s.jsonResponse(w, http.StatusOK, settings)
}

// handleUpdateSettings stores the user's preferences.
func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var settings types.UserSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if settings.SelectedTemplate != "" && !templates.Known(settings.SelectedTemplate) {
		s.errorResponse(w, http.StatusBadRequest, "Unknown template: "+settings.SelectedTemplate)
		return
	}

	if err := s.db.UpdateSettings(r.Context(), userID, &settings); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to update settings")
		return
	}
	s.jsonResponse(w, http.StatusOK, settings)
}

// handleListArtifacts lists the user's stored compilation results.
func (s *Server) handleListArtifacts(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	artifacts, err := s.db.ListResumeArtifacts(r.Context(), userID, limit)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to list artifacts")
		return
	}
	if artifacts == nil {
		artifacts = []db.ResumeArtifact{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"artifacts": artifacts})
}

// handleGetArtifact returns one stored compilation result.
func (s *Server) handleGetArtifact(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	artifactID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid artifact ID")
		return
	}

	artifact, err := s.db.GetResumeArtifact(r.Context(), artifactID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to load artifact")
		return
	}
	if artifact == nil {
		s.errorResponse(w, http.StatusNotFound, "Artifact not found")
		return
	}
	if artifact.UserID != userID {
		s.errorResponse(w, http.StatusForbidden, "access denied")
		return
	}
	s.jsonResponse(w, http.StatusOK, artifact)
}

// handleDeleteArtifact removes one stored compilation result.
func (s *Server) handleDeleteArtifact(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	artifactID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid artifact ID")
		return
	}

	artifact, err := s.db.GetResumeArtifact(r.Context(), artifactID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to load artifact")
		return
	}
	if artifact == nil {
		s.errorResponse(w, http.StatusNotFound, "Artifact not found")
		return
	}
	if artifact.UserID != userID {
		s.errorResponse(w, http.StatusForbidden, "access denied")
		return
	}

	if err := s.db.DeleteResumeArtifact(r.Context(), artifactID); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to delete artifact")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodeItem decodes the request body into the typed item for a category.
// Decoding into the concrete type rejects structurally invalid payloads.
func decodeItem(kind db.ItemKind, r *http.Request) (any, error) {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	switch kind {
	case db.KindExperience:
		var v types.Experience
		if err := dec.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	case db.KindProject:
		var v types.Project
		if err := dec.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	case db.KindEducation:
		var v types.Education
		if err := dec.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	case db.KindSkill:
		var v types.Skill
		if err := dec.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	default:
		var v types.Publication
		if err := dec.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	}
}

// saveParsedProfile persists LLM-parsed items into the user's profile.
func (s *Server) saveParsedProfile(r *http.Request, userID uuid.UUID, parsed *parser.ParsedProfile) error {
	ctx := r.Context()
	for _, v := range parsed.Experiences {
		if _, err := s.db.CreateProfileItem(ctx, userID, db.KindExperience, v); err != nil {
			return err
		}
	}
	for _, v := range parsed.Projects {
		if _, err := s.db.CreateProfileItem(ctx, userID, db.KindProject, v); err != nil {
			return err
		}
	}
	for _, v := range parsed.Educations {
		if _, err := s.db.CreateProfileItem(ctx, userID, db.KindEducation, v); err != nil {
			return err
		}
	}
	for _, v := range parsed.Skills {
		if _, err := s.db.CreateProfileItem(ctx, userID, db.KindSkill, v); err != nil {
			return err
		}
	}
	for _, v := range parsed.Publications {
		if _, err := s.db.CreateProfileItem(ctx, userID, db.KindPublication, v); err != nil {
			return err
		}
	}
	return nil
}
