// Package coverletter generates tailored cover letters from the most
// relevant profile items, with anti-hallucination prompt constraints.
package coverletter

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/mohitmishra786/cv-wiz/internal/cache"
	"github.com/mohitmishra786/cv-wiz/internal/llm"
	"github.com/mohitmishra786/cv-wiz/internal/prompts"
	"github.com/mohitmishra786/cv-wiz/internal/scoring"
	"github.com/mohitmishra786/cv-wiz/internal/types"
)

// Defaults applied when the request leaves tone or word budget unset.
const (
	DefaultTone     = "professional"
	DefaultMaxWords = 400
)

// promptLimits are the selection caps for cover letter prompts: fewer items
// than a resume, so the letter stays focused on the strongest material.
var promptLimits = scoring.Limits{
	MaxExperiences:  3,
	MaxProjects:     2,
	MaxSkills:       10,
	MaxEducation:    1,
	MaxPublications: 1,
}

var toneDescriptions = map[string]string{
	"professional": "professional, confident, and polished",
	"enthusiastic": "enthusiastic, energetic, and passionate",
	"formal":       "formal, respectful, and traditional",
}

// Generator produces cover letters via the LLM. Identical in-flight
// generations are deduplicated so concurrent duplicate requests cost one
// API call.
type Generator struct {
	llm      llm.Client
	contexts *scoring.ContextCache
	flight   singleflight.Group
}

// New creates a Generator sharing the given analyzer cache.
func New(client llm.Client, contexts *scoring.ContextCache) *Generator {
	if contexts == nil {
		contexts = scoring.NewContextCache(scoring.DefaultCacheSize)
	}
	return &Generator{llm: client, contexts: contexts}
}

// Generate writes a cover letter for the profile and job description.
func (g *Generator) Generate(ctx context.Context, profile *types.UserProfile, req types.CoverLetterRequest) types.CoverLetterResponse {
	tone := req.Tone
	if tone == "" {
		tone = DefaultTone
	}
	maxWords := req.MaxWords
	if maxWords == 0 {
		maxWords = DefaultMaxWords
	}

	key := cache.Key(profile.ID, req.JobDescription, tone, strconv.Itoa(maxWords))
	result, err, _ := g.flight.Do(key, func() (any, error) {
		return g.generate(ctx, profile, req.JobDescription, tone, maxWords)
	})
	if err != nil {
		return types.CoverLetterResponse{
			Success: false,
			Error:   fmt.Sprintf("cover letter generation failed: %v", err),
		}
	}
	return result.(types.CoverLetterResponse)
}

func (g *Generator) generate(ctx context.Context, profile *types.UserProfile, jobDescription, tone string, maxWords int) (types.CoverLetterResponse, error) {
	jdCtx := g.contexts.Analyze(jobDescription)
	selection := scoring.SelectTop(jdCtx, profile, promptLimits)

	name := profile.Name
	if name == "" {
		name = "Candidate"
	}
	candidateInfo := FormatCandidateInfo(name, profile.Email, selection)

	toneDesc, ok := toneDescriptions[tone]
	if !ok {
		toneDesc = toneDescriptions[DefaultTone]
	}

	system, err := prompts.Get("coverletter.json", "system")
	if err != nil {
		return types.CoverLetterResponse{}, err
	}
	user, err := prompts.Get("coverletter.json", "user")
	if err != nil {
		return types.CoverLetterResponse{}, err
	}

	prompt := prompts.Format(system, map[string]string{
		"ToneDescription": toneDesc,
		"MaxWords":        strconv.Itoa(maxWords),
	}) + "\n\n" + prompts.Format(user, map[string]string{
		"CandidateInfo":  candidateInfo,
		"JobDescription": jobDescription,
	})

	letter, err := g.llm.GenerateText(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		return types.CoverLetterResponse{}, err
	}

	return types.CoverLetterResponse{
		Success:           true,
		CoverLetter:       letter,
		WordCount:         len(strings.Fields(letter)),
		ModelUsed:         g.llm.Model(llm.TierAdvanced),
		ProfileFieldsUsed: fieldsUsed(selection),
	}, nil
}

// fieldsUsed lists the profile sections that contributed to the prompt.
func fieldsUsed(sel scoring.Selection) []string {
	var used []string
	if len(sel.Experiences) > 0 {
		used = append(used, "experiences")
	}
	if len(sel.Projects) > 0 {
		used = append(used, "projects")
	}
	if len(sel.Skills) > 0 {
		used = append(used, "skills")
	}
	if len(sel.Educations) > 0 {
		used = append(used, "educations")
	}
	if len(sel.Publications) > 0 {
		used = append(used, "publications")
	}
	return used
}

// FormatCandidateInfo renders the selected items as a structured block the
// prompt marks as the only permitted source of facts.
func FormatCandidateInfo(name, email string, sel scoring.Selection) string {
	var lines []string
	lines = append(lines,
		fmt.Sprintf("Name: %s", name),
		fmt.Sprintf("Email: %s", email),
		"",
		"### WORK EXPERIENCE:",
	)

	for _, exp := range sel.Experiences {
		lines = append(lines, fmt.Sprintf("- %s at %s", exp.Title, exp.Company))
		if exp.Location != "" {
			lines = append(lines, fmt.Sprintf("  Location: %s", exp.Location))
		}
		lines = append(lines, fmt.Sprintf("  Duration: %s", formatDuration(exp)))
		for i, h := range exp.Highlights {
			if i == 3 {
				break
			}
			lines = append(lines, fmt.Sprintf("  * %s", h))
		}
		lines = append(lines, "")
	}

	if len(sel.Projects) > 0 {
		lines = append(lines, "### PROJECTS:")
		for _, proj := range sel.Projects {
			lines = append(lines, fmt.Sprintf("- %s", proj.Name))
			if len(proj.Technologies) > 0 {
				lines = append(lines, fmt.Sprintf("  Technologies: %s", strings.Join(proj.Technologies, ", ")))
			}
			for i, h := range proj.Highlights {
				if i == 2 {
					break
				}
				lines = append(lines, fmt.Sprintf("  * %s", h))
			}
			lines = append(lines, "")
		}
	}

	if len(sel.Skills) > 0 {
		lines = append(lines, "### SKILLS:")
		var categories []string
		byCategory := make(map[string][]string)
		for _, skill := range sel.Skills {
			category := skill.Category
			if category == "" {
				category = "Other"
			}
			if _, seen := byCategory[category]; !seen {
				categories = append(categories, category)
			}
			byCategory[category] = append(byCategory[category], skill.Name)
		}
		for _, category := range categories {
			lines = append(lines, fmt.Sprintf("- %s: %s", category, strings.Join(byCategory[category], ", ")))
		}
		lines = append(lines, "")
	}

	if len(sel.Educations) > 0 {
		lines = append(lines, "### EDUCATION:")
		for _, edu := range sel.Educations {
			lines = append(lines, fmt.Sprintf("- %s in %s", edu.Degree, edu.Field))
			lines = append(lines, fmt.Sprintf("  %s", edu.Institution))
			if edu.GPA != nil {
				lines = append(lines, fmt.Sprintf("  GPA: %.2f", *edu.GPA))
			}
			if len(edu.Honors) > 0 {
				lines = append(lines, fmt.Sprintf("  Honors: %s", strings.Join(edu.Honors, ", ")))
			}
			lines = append(lines, "")
		}
	}

	return strings.Join(lines, "\n")
}

func formatDuration(exp types.Experience) string {
	start := "N/A"
	if exp.StartDate != nil {
		start = exp.StartDate.Format("Jan 2006")
	}
	end := "N/A"
	switch {
	case exp.Current:
		end = "Present"
	case exp.EndDate != nil:
		end = exp.EndDate.Format("Jan 2006")
	}
	return start + " - " + end
}
