// Package parser structures raw resume text into profile data with LLM
// assistance, validating the model's output against a JSON schema before it
// is trusted.
package parser

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/xeipuuv/gojsonschema"

	"github.com/mohitmishra786/cv-wiz/internal/llm"
	"github.com/mohitmishra786/cv-wiz/internal/prompts"
	"github.com/mohitmishra786/cv-wiz/internal/types"
)

//go:embed schema.json
var profileSchema string

// MaxResumeTextLength bounds the text accepted for one parse.
const MaxResumeTextLength = 100_000

// ParsedProfile is the structured career data extracted from resume text.
type ParsedProfile struct {
	Experiences  []types.Experience  `json:"experiences"`
	Projects     []types.Project     `json:"projects"`
	Educations   []types.Education   `json:"educations"`
	Skills       []types.Skill       `json:"skills"`
	Publications []types.Publication `json:"publications"`
}

// ValidationError reports schema violations in the model's output.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("parsed profile failed schema validation: %s",
		strings.Join(e.Violations, "; "))
}

// Parser extracts structured profiles from resume text.
type Parser struct {
	llm    llm.Client
	schema *gojsonschema.Schema
}

// New creates a Parser. The embedded schema is compiled once here.
func New(client llm.Client) (*Parser, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(profileSchema))
	if err != nil {
		return nil, fmt.Errorf("failed to compile profile schema: %w", err)
	}
	return &Parser{llm: client, schema: schema}, nil
}

// Parse structures resume text into profile data. The LLM output is schema
// validated; anything malformed is rejected rather than half-loaded.
func (p *Parser) Parse(ctx context.Context, resumeText string) (*ParsedProfile, error) {
	resumeText = strings.TrimSpace(resumeText)
	if resumeText == "" {
		return nil, fmt.Errorf("resume text is empty")
	}
	if len(resumeText) > MaxResumeTextLength {
		return nil, fmt.Errorf("resume text exceeds %d characters", MaxResumeTextLength)
	}

	promptTmpl, err := prompts.Get("parsing.json", "structure_resume")
	if err != nil {
		return nil, err
	}
	prompt := prompts.Format(promptTmpl, map[string]string{"ResumeText": resumeText})

	raw, err := p.llm.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, fmt.Errorf("failed to structure resume: %w", err)
	}

	return p.Decode(raw)
}

// Decode validates raw JSON against the profile schema and unmarshals it.
func (p *Parser) Decode(raw string) (*ParsedProfile, error) {
	result, err := p.schema.Validate(gojsonschema.NewStringLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to validate parsed profile: %w", err)
	}
	if !result.Valid() {
		verr := &ValidationError{}
		for _, desc := range result.Errors() {
			verr.Violations = append(verr.Violations, desc.String())
		}
		return nil, verr
	}

	var parsed ParsedProfile
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode parsed profile: %w", err)
	}
	parsed.assignIDs()
	return &parsed, nil
}

// assignIDs gives every parsed item a fresh identifier. The model is never
// asked to invent IDs; they are minted here so the items can be persisted.
func (p *ParsedProfile) assignIDs() {
	for i := range p.Experiences {
		p.Experiences[i].ID = uuid.NewString()
	}
	for i := range p.Projects {
		p.Projects[i].ID = uuid.NewString()
	}
	for i := range p.Educations {
		p.Educations[i].ID = uuid.NewString()
	}
	for i := range p.Skills {
		p.Skills[i].ID = uuid.NewString()
	}
	for i := range p.Publications {
		p.Publications[i].ID = uuid.NewString()
	}
}
