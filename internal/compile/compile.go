// Package compile orchestrates resume compilation: resolve the template,
// score and select profile items against the job description, assemble the
// compiled resume and optionally render it to PDF.
package compile

import (
	"context"
	"fmt"

	"github.com/mohitmishra786/cv-wiz/internal/scoring"
	"github.com/mohitmishra786/cv-wiz/internal/templates"
	"github.com/mohitmishra786/cv-wiz/internal/types"
)

// Renderer turns a compiled resume into a base64-encoded PDF. Rendering may
// fail when the resume exceeds the page limit; that error is surfaced in the
// response, not as a panic.
type Renderer interface {
	RenderPDFBase64(ctx context.Context, resume *types.CompiledResume, sectionOrder []string, maxPages int) (string, error)
}

// Compiler compiles tailored resumes. It is safe for concurrent use; the
// shared context cache is the only mutable state.
type Compiler struct {
	contexts *scoring.ContextCache
	renderer Renderer
	maxPages int
}

// New creates a Compiler. renderer may be nil, in which case PDF rendering
// is skipped and only the structured resume is returned.
func New(contexts *scoring.ContextCache, renderer Renderer, maxPages int) *Compiler {
	if contexts == nil {
		contexts = scoring.NewContextCache(scoring.DefaultCacheSize)
	}
	if maxPages < 1 {
		maxPages = 1
	}
	return &Compiler{contexts: contexts, renderer: renderer, maxPages: maxPages}
}

// Compile produces a tailored resume for the profile and job description.
// Template resolution order: explicit request value, the profile's saved
// preference, then the default. Unknown names fall back to the default.
func (c *Compiler) Compile(ctx context.Context, profile *types.UserProfile, req types.ResumeRequest) types.ResumeResponse {
	cfg := templates.Lookup(c.effectiveTemplate(profile, req.Template))

	jdCtx := c.contexts.Analyze(req.JobDescription)
	selection := scoring.SelectTop(jdCtx, profile, cfg.Limits)

	name := profile.Name
	if name == "" {
		name = "Candidate"
	}

	compiled := &types.CompiledResume{
		Name:         name,
		Email:        profile.Email,
		JobTitle:     jdCtx.JobTitle,
		Template:     cfg.Name,
		Experiences:  selection.Experiences,
		Projects:     selection.Projects,
		Educations:   selection.Educations,
		Skills:       selection.Skills,
		Publications: selection.Publications,
	}

	resp := types.ResumeResponse{Success: true, ResumeJSON: compiled}

	if req.RenderPDF && c.renderer != nil {
		pdf, err := c.renderer.RenderPDFBase64(ctx, compiled, cfg.SectionOrder, c.maxPages)
		if err != nil {
			return types.ResumeResponse{
				Success: false,
				Error:   fmt.Sprintf("resume compilation failed: %v", err),
			}
		}
		resp.PDFBase64 = pdf
	}

	return resp
}

func (c *Compiler) effectiveTemplate(profile *types.UserProfile, requested string) string {
	if requested != "" {
		return requested
	}
	if profile.Settings != nil && profile.Settings.SelectedTemplate != "" {
		return profile.Settings.SelectedTemplate
	}
	return templates.DefaultName
}
