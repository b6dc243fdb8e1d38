package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/mohitmishra786/cv-wiz/internal/cache"
	"github.com/mohitmishra786/cv-wiz/internal/ingest"
	"github.com/mohitmishra786/cv-wiz/internal/server/middleware"
	"github.com/mohitmishra786/cv-wiz/internal/templates"
	"github.com/mohitmishra786/cv-wiz/internal/types"
)

// TemplateInfo describes one resume template for the /templates listing.
type TemplateInfo struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	SectionOrder []string `json:"section_order"`
	Default      bool     `json:"default"`
}

// handleListTemplates returns the available resume templates.
func (s *Server) handleListTemplates(w http.ResponseWriter, _ *http.Request) {
	all := templates.All()
	infos := make([]TemplateInfo, 0, len(all))
	for _, t := range all {
		infos = append(infos, TemplateInfo{
			Name:         t.Name,
			Description:  t.Description,
			SectionOrder: t.SectionOrder,
			Default:      t.Name == templates.DefaultName,
		})
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"templates": infos})
}

// handleCompile tailors the authenticated user's profile to a job
// description and optionally renders a PDF.
func (s *Server) handleCompile(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req types.ResumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	cacheKey := cache.Key(userID.String(), "compile", req.JobDescription, req.Template,
		strconv.FormatBool(req.RenderPDF))
	if cached, ok := s.responses.Get(cacheKey); ok {
		s.jsonResponse(w, http.StatusOK, cached)
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

	resp := s.compiler.Compile(r.Context(), profile, req)
	if !resp.Success {
		s.jsonResponse(w, http.StatusUnprocessableEntity, resp)
		return
	}

	s.responses.Set(cacheKey, resp)

	// Persist the compiled resume for later retrieval. Failure to store is
	// not fatal to the request.
	if resp.ResumeJSON != nil {
		if _, err := s.db.SaveResumeArtifact(r.Context(), userID,
			resp.ResumeJSON.Template, resp.ResumeJSON.JobTitle, resp.ResumeJSON); err != nil {
			log.Printf("Failed to save resume artifact: %v", err)
		}
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

// handleCoverLetter generates a tailored cover letter for the authenticated
// user.
func (s *Server) handleCoverLetter(w http.ResponseWriter, r *http.Request) {
	if s.letters == nil {
		err := &ErrLLMUnavailable{}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req types.CoverLetterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	cacheKey := cache.Key(userID.String(), "cover-letter", req.JobDescription, req.Tone,
		strconv.Itoa(req.MaxWords))
	if cached, ok := s.responses.Get(cacheKey); ok {
		s.jsonResponse(w, http.StatusOK, cached)
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

	resp := s.letters.Generate(r.Context(), profile, req)
	if !resp.Success {
		s.jsonResponse(w, http.StatusUnprocessableEntity, resp)
		return
	}

	s.responses.Set(cacheKey, resp)
	s.jsonResponse(w, http.StatusOK, resp)
}

// ParseResumeRequest is the request body for /parse-resume.
type ParseResumeRequest struct {
	ResumeText string `json:"resume_text" validate:"required,min=50"`

	// Save persists the parsed items into the user's profile.
	Save bool `json:"save,omitempty"`
}

// handleParseResume structures raw resume text into profile items.
func (s *Server) handleParseResume(w http.ResponseWriter, r *http.Request) {
	if s.parser == nil {
		err := &ErrLLMUnavailable{}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req ParseResumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	parsed, err := s.parser.Parse(r.Context(), req.ResumeText)
	if err != nil {
		s.errorResponse(w, http.StatusUnprocessableEntity, "Failed to parse resume: "+err.Error())
		return
	}

	if req.Save {
		if err := s.saveParsedProfile(r, userID, parsed); err != nil {
			s.errorResponse(w, http.StatusInternalServerError, "Failed to save parsed profile")
			return
		}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"profile": parsed,
		"saved":   req.Save,
	})
}

// IngestJobRequest is the request body for /ingest-job.
type IngestJobRequest struct {
	URL string `json:"url" validate:"required,url"`
}

// handleIngestJob fetches a job posting URL and extracts its text, ready to
// be passed to /compile or /cover-letter.
func (s *Server) handleIngestJob(w http.ResponseWriter, r *http.Request) {
	var req IngestJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	text, err := ingest.JobDescription(r.Context(), req.URL)
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, "Failed to fetch job posting: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"job_description": text,
		"length":          len(text),
	})
}
