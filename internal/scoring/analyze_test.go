package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze_FrequencyTable(t *testing.T) {
	ctx := Analyze("Python developer. Python and Django experience required: Python")

	assert.Equal(t, 3, ctx.Freq["python"])
	assert.Equal(t, 1, ctx.Freq["django"])
	assert.NotContains(t, ctx.Freq, "and")
}

func TestAnalyze_JobTitleFirstLine(t *testing.T) {
	ctx := Analyze("Senior Python Developer\n\nWe are looking for an engineer.")

	assert.Equal(t, "senior python developer", ctx.JobTitle)
}

func TestAnalyze_JobTitleTooLong(t *testing.T) {
	longLine := "We are a fast growing startup looking for talented engineers who want to change the world with us today"
	require.GreaterOrEqual(t, len(longLine), 100)

	ctx := Analyze(longLine + "\nMore text")
	assert.Empty(t, ctx.JobTitle)
}

func TestAnalyze_RequiredSkillsPatterns(t *testing.T) {
	jd := "Backend Engineer\n" +
		"Required: Django, FastAPI, PostgreSQL.\n" +
		"Experience with AWS is a plus.\n" +
		"Must have: Kubernetes."

	ctx := Analyze(jd)

	assert.Contains(t, ctx.RequiredSkills, "django")
	assert.Contains(t, ctx.RequiredSkills, "fastapi")
	assert.Contains(t, ctx.RequiredSkills, "postgresql")
	assert.Contains(t, ctx.RequiredSkills, "aws")
	assert.Contains(t, ctx.RequiredSkills, "kubernetes")
}

func TestAnalyze_RequiredSkillsStopAtSentence(t *testing.T) {
	ctx := Analyze("Required: Go. We ship fast here at ExampleCorp.")

	assert.Contains(t, ctx.RequiredSkills, "go")
	assert.NotContains(t, ctx.RequiredSkills, "examplecorp")
}

func TestAnalyze_EmptyInput(t *testing.T) {
	ctx := Analyze("")

	assert.Empty(t, ctx.Tokens)
	assert.Empty(t, ctx.Freq)
	assert.Empty(t, ctx.JobTitle)
	assert.Empty(t, ctx.RequiredSkills)
}

func TestContextCache_ReturnsSharedContext(t *testing.T) {
	cache := NewContextCache(10)

	first := cache.Analyze("Senior Go Developer\nRequired: Go, Kubernetes.")
	second := cache.Analyze("Senior Go Developer\nRequired: Go, Kubernetes.")

	assert.Same(t, first, second)
	assert.Equal(t, 1, cache.Len())
}

func TestContextCache_CaseInsensitiveKey(t *testing.T) {
	cache := NewContextCache(10)

	first := cache.Analyze("senior go developer")
	second := cache.Analyze("SENIOR GO DEVELOPER")

	assert.Same(t, first, second)
}

func TestContextCache_EvictsLeastRecentlyUsed(t *testing.T) {
	cache := NewContextCache(2)

	a := cache.Analyze("job description alpha role")
	cache.Analyze("job description beta role")

	// Touch alpha so beta becomes the eviction candidate.
	assert.Same(t, a, cache.Analyze("job description alpha role"))

	cache.Analyze("job description gamma role")
	assert.Equal(t, 2, cache.Len())

	// Alpha survived the eviction.
	assert.Same(t, a, cache.Analyze("job description alpha role"))
	assert.Equal(t, 2, cache.Len())
}

func TestContextCache_Clear(t *testing.T) {
	cache := NewContextCache(10)
	cache.Analyze("one")
	cache.Analyze("two")

	assert.Equal(t, 2, cache.Clear())
	assert.Equal(t, 0, cache.Len())
}
