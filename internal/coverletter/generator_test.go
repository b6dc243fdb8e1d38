package coverletter

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mohitmishra786/cv-wiz/internal/llm"
	"github.com/mohitmishra786/cv-wiz/internal/scoring"
	"github.com/mohitmishra786/cv-wiz/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const letterJD = "Senior Go Developer\n\n" +
	"We need a backend engineer with strong Go skills.\n" +
	"Required: Go, PostgreSQL, Kubernetes."

// fakeLLM records prompts and returns a canned letter.
type fakeLLM struct {
	mu      sync.Mutex
	calls   atomic.Int32
	prompts []string
	text    string
	err     error
	delay   time.Duration
}

func (f *fakeLLM) GenerateText(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	return f.text, f.err
}

func (f *fakeLLM) GenerateJSON(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
	return "", errors.New("not implemented")
}

func (f *fakeLLM) Model(llm.ModelTier) string { return "gemini-2.5-pro" }
func (f *fakeLLM) Close() error               { return nil }

func letterProfile() *types.UserProfile {
	return &types.UserProfile{
		ID:    "user-9",
		Email: "go@example.com",
		Name:  "Go Dev",
		Experiences: []types.Experience{
			{ID: "e1", Title: "Go Developer", Company: "Acme",
				Highlights: []string{"Shipped APIs", "Cut latency", "Led team", "Fourth highlight"}},
		},
		Skills: []types.Skill{
			{ID: "s1", Name: "Go", Category: "Programming"},
			{ID: "s2", Name: "PostgreSQL", Category: "Databases"},
		},
	}
}

func TestGenerate_Success(t *testing.T) {
	fake := &fakeLLM{text: "Dear Hiring Manager, I write to apply. Sincerely, Go Dev"}
	gen := New(fake, nil)

	resp := gen.Generate(context.Background(), letterProfile(), types.CoverLetterRequest{
		JobDescription: letterJD,
	})

	require.True(t, resp.Success)
	assert.Equal(t, fake.text, resp.CoverLetter)
	assert.Equal(t, len(strings.Fields(fake.text)), resp.WordCount)
	assert.Equal(t, "gemini-2.5-pro", resp.ModelUsed)
	assert.Contains(t, resp.ProfileFieldsUsed, "experiences")
	assert.Contains(t, resp.ProfileFieldsUsed, "skills")
	assert.NotContains(t, resp.ProfileFieldsUsed, "projects")
}

func TestGenerate_PromptContainsOnlyProfileFacts(t *testing.T) {
	fake := &fakeLLM{text: "letter"}
	gen := New(fake, nil)

	gen.Generate(context.Background(), letterProfile(), types.CoverLetterRequest{
		JobDescription: letterJD,
		Tone:           "enthusiastic",
		MaxWords:       250,
	})

	require.Len(t, fake.prompts, 1)
	prompt := fake.prompts[0]
	assert.Contains(t, prompt, "Go Developer at Acme")
	assert.Contains(t, prompt, "enthusiastic, energetic, and passionate")
	assert.Contains(t, prompt, "under 250 words")
	assert.Contains(t, prompt, letterJD)
	// Highlights are capped at three per experience.
	assert.NotContains(t, prompt, "Fourth highlight")
	// No unresolved placeholders remain.
	assert.NotContains(t, prompt, "{{.")
}

func TestGenerate_LLMErrorReported(t *testing.T) {
	gen := New(&fakeLLM{err: errors.New("quota exhausted")}, nil)

	resp := gen.Generate(context.Background(), letterProfile(), types.CoverLetterRequest{
		JobDescription: letterJD,
	})

	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "quota exhausted")
}

func TestGenerate_DeduplicatesConcurrentIdenticalRequests(t *testing.T) {
	fake := &fakeLLM{text: "letter", delay: 50 * time.Millisecond}
	gen := New(fake, scoring.NewContextCache(4))
	profile := letterProfile()
	req := types.CoverLetterRequest{JobDescription: letterJD}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp := gen.Generate(context.Background(), profile, req)
			assert.True(t, resp.Success)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), fake.calls.Load())
}

func TestFormatCandidateInfo_Sections(t *testing.T) {
	gpa := 3.91
	sel := scoring.Selection{
		Experiences: []types.Experience{{Title: "Engineer", Company: "Acme", Location: "Remote"}},
		Projects:    []types.Project{{Name: "cv-wiz", Technologies: []string{"Go", "Postgres"}}},
		Skills: []types.Skill{
			{Name: "Go", Category: "Programming"},
			{Name: "Rust", Category: "Programming"},
			{Name: "PostgreSQL", Category: "Databases"},
		},
		Educations: []types.Education{{
			Degree: "BSc", Field: "CS", Institution: "State U",
			GPA: &gpa, Honors: []string{"cum laude"},
		}},
	}

	info := FormatCandidateInfo("Dev", "dev@example.com", sel)

	assert.Contains(t, info, "Name: Dev")
	assert.Contains(t, info, "- Engineer at Acme")
	assert.Contains(t, info, "Location: Remote")
	assert.Contains(t, info, "Technologies: Go, Postgres")
	assert.Contains(t, info, "- Programming: Go, Rust")
	assert.Contains(t, info, "- Databases: PostgreSQL")
	assert.Contains(t, info, "- BSc in CS")
	assert.Contains(t, info, "GPA: 3.91")
	assert.Contains(t, info, "Honors: cum laude")
}

func TestFormatCandidateInfo_UncategorizedSkills(t *testing.T) {
	sel := scoring.Selection{
		Skills: []types.Skill{
			{Name: "Python"},
			{Name: "Go", Category: "Programming"},
			{Name: "Docker"},
		},
	}

	info := FormatCandidateInfo("Dev", "dev@example.com", sel)

	assert.Contains(t, info, "- Other: Python, Docker")
	assert.Contains(t, info, "- Programming: Go")
	assert.NotContains(t, info, "- :")
}

func TestFormatDuration(t *testing.T) {
	start := time.Date(2022, time.March, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "Mar 2022 - Present", formatDuration(types.Experience{StartDate: &start, Current: true}))
	assert.Equal(t, "Mar 2022 - Jul 2024", formatDuration(types.Experience{StartDate: &start, EndDate: &end}))
	assert.Equal(t, "N/A - N/A", formatDuration(types.Experience{}))
}
