package scoring

import (
	"testing"

	"github.com/mohitmishra786/cv-wiz/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seniorPythonJD = "Senior Python Developer\n\n" +
	"We are looking for a software engineer with strong Python skills.\n" +
	"Required: Django, FastAPI, PostgreSQL.\n" +
	"Experience with AWS is a plus."

func pythonProfile() *types.UserProfile {
	return &types.UserProfile{
		ID:    "user-1",
		Email: "dev@example.com",
		Name:  "Dev Example",
		Experiences: []types.Experience{
			{
				ID:          "exp-1",
				Title:       "Senior Python Developer",
				Company:     "Tech Corp",
				Current:     true,
				Description: "Led backend development",
				Keywords:    []string{"Python", "FastAPI", "Django"},
			},
			{
				ID:          "exp-2",
				Title:       "Chef",
				Company:     "Food Inc",
				Description: "Prepared meals",
			},
		},
		Skills: []types.Skill{
			{ID: "sk-1", Name: "Python", Proficiency: "Expert"},
			{ID: "sk-2", Name: "Cooking"},
		},
	}
}

func TestSelectTop_EndToEnd(t *testing.T) {
	ctx := Analyze(seniorPythonJD)
	profile := pythonProfile()

	selection := SelectTop(ctx, profile, Limits{
		MaxExperiences: 1,
		MaxProjects:    2,
		MaxSkills:      10,
		MaxEducation:   1,
	})

	require.Len(t, selection.Experiences, 1)
	assert.Equal(t, "exp-1", selection.Experiences[0].ID)

	matched := ctx.ScoreExperience(profile.Experiences[0]).MatchedKeywords
	assert.Contains(t, matched, "python")
	assert.Contains(t, matched, "django")

	devScore := ctx.ScoreExperience(profile.Experiences[0]).Score
	chefScore := ctx.ScoreExperience(profile.Experiences[1]).Score
	assert.Greater(t, devScore, chefScore)
}

func TestSelectTop_CapsRespected(t *testing.T) {
	ctx := Analyze(seniorPythonJD)
	profile := pythonProfile()

	selection := SelectTop(ctx, profile, Limits{
		MaxExperiences:  1,
		MaxSkills:       1,
		MaxProjects:     5,
		MaxEducation:    5,
		MaxPublications: 5,
	})

	assert.Len(t, selection.Experiences, 1)
	assert.Len(t, selection.Skills, 1)
	// Caps above availability return everything available, never more.
	assert.Empty(t, selection.Projects)
	assert.Empty(t, selection.Educations)
	assert.Empty(t, selection.Publications)
}

func TestSelectTop_ZeroCapExcludesCategory(t *testing.T) {
	ctx := Analyze(seniorPythonJD)

	selection := SelectTop(ctx, pythonProfile(), Limits{MaxSkills: 10})

	assert.Empty(t, selection.Experiences)
	assert.NotEmpty(t, selection.Skills)
}

func TestSelectTop_NegativeCapsClampedToZero(t *testing.T) {
	ctx := Analyze(seniorPythonJD)

	selection := SelectTop(ctx, pythonProfile(), Limits{
		MaxExperiences: -3,
		MaxSkills:      -1,
	})

	assert.Empty(t, selection.Experiences)
	assert.Empty(t, selection.Skills)
}

func TestSelectTop_OrderedByDescendingScore(t *testing.T) {
	ctx := Analyze(seniorPythonJD)

	selection := SelectTop(ctx, pythonProfile(), Limits{
		MaxExperiences: 10,
		MaxSkills:      10,
	})

	for i := 1; i < len(selection.Experiences); i++ {
		assert.GreaterOrEqual(t,
			selection.Experiences[i-1].RelevanceScore,
			selection.Experiences[i].RelevanceScore)
	}
	for i := 1; i < len(selection.Skills); i++ {
		assert.GreaterOrEqual(t,
			selection.Skills[i-1].RelevanceScore,
			selection.Skills[i].RelevanceScore)
	}
}

func TestSelectTop_TiesKeepProfileOrder(t *testing.T) {
	ctx := Analyze("Kitchen manager role with no technology overlap at all")
	profile := &types.UserProfile{
		Skills: []types.Skill{
			{ID: "sk-a", Name: "Fortran"},
			{ID: "sk-b", Name: "COBOL"},
			{ID: "sk-c", Name: "Pascal"},
		},
	}

	selection := SelectTop(ctx, profile, Limits{MaxSkills: 3})

	require.Len(t, selection.Skills, 3)
	assert.Equal(t, "sk-a", selection.Skills[0].ID)
	assert.Equal(t, "sk-b", selection.Skills[1].ID)
	assert.Equal(t, "sk-c", selection.Skills[2].ID)
}

func TestSelectTop_Deterministic(t *testing.T) {
	ctx := Analyze(seniorPythonJD)
	profile := pythonProfile()
	limits := Limits{MaxExperiences: 2, MaxSkills: 10}

	first := SelectTop(ctx, profile, limits)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, SelectTop(ctx, profile, limits))
	}
}

func TestSelectTop_EmptyProfile(t *testing.T) {
	ctx := Analyze(seniorPythonJD)

	selection := SelectTop(ctx, &types.UserProfile{}, Limits{
		MaxExperiences:  3,
		MaxProjects:     2,
		MaxSkills:       10,
		MaxEducation:    2,
		MaxPublications: 2,
	})

	assert.Empty(t, selection.Experiences)
	assert.Empty(t, selection.Projects)
	assert.Empty(t, selection.Skills)
	assert.Empty(t, selection.Educations)
	assert.Empty(t, selection.Publications)
}
