package scoring

import (
	"testing"

	"github.com/mohitmishra786/cv-wiz/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreExperience_TitleAndRecencyBoosts(t *testing.T) {
	ctx := Analyze("Senior Python Developer\nStrong Python required.")

	base := types.Experience{
		Title:       "Python Developer",
		Company:     "Tech Corp",
		Description: "Built services in Python",
	}
	current := base
	current.Current = true

	baseScored := ctx.ScoreExperience(base)
	currentScored := ctx.ScoreExperience(current)

	assert.Greater(t, baseScored.Score, 0.0)
	assert.InDelta(t, baseScored.Score*recencyBoost, currentScored.Score, 1e-9)
	assert.Contains(t, baseScored.MatchedKeywords, "python")
}

func TestScoreExperience_DoesNotMutateInput(t *testing.T) {
	ctx := Analyze("Go Engineer\nGo and Kubernetes.")
	exp := types.Experience{Title: "Go Engineer", Description: "Kubernetes work"}

	scored := ctx.ScoreExperience(exp)

	assert.Zero(t, exp.RelevanceScore)
	assert.Equal(t, scored.Score, scored.Item.RelevanceScore)
	assert.Greater(t, scored.Score, 0.0)
}

func TestScoreProject_TechnologyBonus(t *testing.T) {
	ctx := Analyze("Backend role using PostgreSQL and Redis daily.")

	plain := types.Project{
		Name:        "Inventory system",
		Description: "Warehouse tracking",
	}
	matching := plain
	matching.Technologies = []string{"PostgreSQL"}

	plainScored := ctx.ScoreProject(plain)
	matchingScored := ctx.ScoreProject(matching)

	assert.Greater(t, matchingScored.Score, plainScored.Score)
	assert.Contains(t, matchingScored.MatchedKeywords, "postgresql")
}

func TestScoreProject_DuplicateTechnologiesCountOnce(t *testing.T) {
	ctx := Analyze("Backend role using PostgreSQL and Redis daily.")

	once := types.Project{
		Name:         "Inventory system",
		Description:  "Warehouse tracking",
		Technologies: []string{"PostgreSQL"},
	}
	repeated := once
	repeated.Technologies = []string{"PostgreSQL", "postgresql", "PostgreSQL"}

	assert.Equal(t, ctx.ScoreProject(once).Score, ctx.ScoreProject(repeated).Score)
}

func TestScoreSkill_ExactMatchWithBoosts(t *testing.T) {
	// "python" appears three times.
	ctx := Analyze("Python developer role. Python services. Python tooling.")
	require.Equal(t, 3, ctx.Freq["python"])

	plain := ctx.ScoreSkill(types.Skill{Name: "Python"})
	expert := ctx.ScoreSkill(types.Skill{Name: "Python", Proficiency: "Expert"})

	assert.InDelta(t, 3*skillExactMatchBoost, plain.Score, 1e-9)
	assert.InDelta(t, 3*skillExactMatchBoost*expertSkillBoost, expert.Score, 1e-9)
	assert.Greater(t, expert.Score, plain.Score)
	assert.Contains(t, plain.MatchedKeywords, "python")
}

func TestScoreSkill_RequiredSkillBoost(t *testing.T) {
	ctx := Analyze("Engineer role\nRequired: Terraform.")

	scored := ctx.ScoreSkill(types.Skill{Name: "Terraform"})

	assert.InDelta(t, 1*skillExactMatchBoost*requiredSkillBoost, scored.Score, 1e-9)
}

func TestScoreSkill_SubstringFallback(t *testing.T) {
	// "amazon web services" never survives tokenization as one token, so
	// only the substring path can match it.
	ctx := Analyze("Deploy to amazon web services infrastructure.")

	scored := ctx.ScoreSkill(types.Skill{Name: "Amazon Web Services"})

	assert.InDelta(t, substringMatchScore, scored.Score, 1e-9)
	assert.Contains(t, scored.MatchedKeywords, "amazon web services")
}

func TestScoreSkill_NoMatch(t *testing.T) {
	ctx := Analyze("Frontend position working with React.")

	scored := ctx.ScoreSkill(types.Skill{Name: "Fortran", Proficiency: "Expert"})

	assert.Zero(t, scored.Score)
	assert.Empty(t, scored.MatchedKeywords)
}

func TestScoreEducation_PlainAccumulation(t *testing.T) {
	ctx := Analyze("Research role in machine learning and statistics.")

	scored := ctx.ScoreEducation(types.Education{
		Institution: "State University",
		Degree:      "PhD",
		Field:       "Machine Learning",
	})

	assert.Greater(t, scored.Score, 0.0)
	assert.Contains(t, scored.MatchedKeywords, "machine")
	assert.Contains(t, scored.MatchedKeywords, "learning")
}

func TestScorePublication_HandlesEmptyAbstract(t *testing.T) {
	ctx := Analyze("Distributed systems research position.")

	scored := ctx.ScorePublication(types.Publication{
		Title: "Consensus in distributed systems",
		Venue: "SOSP",
	})

	assert.Greater(t, scored.Score, 0.0)
}

func TestScorers_EmptyJobDescription(t *testing.T) {
	ctx := Analyze("")

	exp := ctx.ScoreExperience(types.Experience{Title: "Engineer", Description: "Work"})
	proj := ctx.ScoreProject(types.Project{Name: "Thing", Technologies: []string{"Go"}})
	skill := ctx.ScoreSkill(types.Skill{Name: "Go"})
	edu := ctx.ScoreEducation(types.Education{Institution: "School"})
	pub := ctx.ScorePublication(types.Publication{Title: "Paper"})

	assert.Zero(t, exp.Score)
	assert.Zero(t, proj.Score)
	assert.Zero(t, skill.Score)
	assert.Zero(t, edu.Score)
	assert.Zero(t, pub.Score)
	assert.Empty(t, exp.MatchedKeywords)
	assert.Empty(t, skill.MatchedKeywords)
}

func TestScorers_EmptyItemsScoreZero(t *testing.T) {
	ctx := Analyze("Senior Go Developer\nGo and Kubernetes required.")

	assert.Zero(t, ctx.ScoreExperience(types.Experience{}).Score)
	assert.Zero(t, ctx.ScoreProject(types.Project{}).Score)
	assert.Zero(t, ctx.ScoreSkill(types.Skill{}).Score)
	assert.Zero(t, ctx.ScoreEducation(types.Education{}).Score)
	assert.Zero(t, ctx.ScorePublication(types.Publication{}).Score)
}

func TestScorers_NeverNegative(t *testing.T) {
	ctx := Analyze("Required: everything. Must have: more.")

	items := []float64{
		ctx.ScoreExperience(types.Experience{Title: "everything", Current: true}).Score,
		ctx.ScoreProject(types.Project{Name: "more", Technologies: []string{"everything"}}).Score,
		ctx.ScoreSkill(types.Skill{Name: "everything", Proficiency: "expert"}).Score,
	}
	for _, score := range items {
		assert.GreaterOrEqual(t, score, 0.0)
	}
}
