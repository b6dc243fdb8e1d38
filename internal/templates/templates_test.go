package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup_KnownTemplate(t *testing.T) {
	cfg := Lookup("education-research-skills")

	assert.Equal(t, "education-research-skills", cfg.Name)
	assert.Equal(t, 3, cfg.Limits.MaxPublications)
	assert.Equal(t, []string{"educations", "publications", "experiences", "skills"}, cfg.SectionOrder)
}

func TestLookup_UnknownFallsBackToDefault(t *testing.T) {
	cfg := Lookup("legacy-template-v1")

	assert.Equal(t, DefaultName, cfg.Name)
	assert.Equal(t, 3, cfg.Limits.MaxExperiences)
}

func TestLookup_EmptyNameFallsBackToDefault(t *testing.T) {
	assert.Equal(t, DefaultName, Lookup("").Name)
}

func TestAll_ReturnsFourTemplatesWithDescriptions(t *testing.T) {
	all := All()

	require.Len(t, all, 4)
	for _, cfg := range all {
		assert.NotEmpty(t, cfg.Name)
		assert.NotEmpty(t, cfg.Description)
		assert.NotEmpty(t, cfg.SectionOrder)
	}
}

func TestKnown(t *testing.T) {
	assert.True(t, Known("compact-technical"))
	assert.False(t, Known("does-not-exist"))
}
