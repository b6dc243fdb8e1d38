package scoring

import (
	"sort"

	"github.com/mohitmishra786/cv-wiz/internal/types"
)

// Limits are the per-category caps for one selection run. Negative caps are
// clamped to zero: "select at most a negative number" means "select none".
type Limits struct {
	MaxExperiences  int
	MaxProjects     int
	MaxSkills       int
	MaxEducation    int
	MaxPublications int
}

// Selection holds the selected items per category, each ordered by
// descending relevance score and truncated to its cap. Items carry their
// computed RelevanceScore.
type Selection struct {
	Experiences  []types.Experience
	Projects     []types.Project
	Skills       []types.Skill
	Educations   []types.Education
	Publications []types.Publication
}

// SelectTop scores every item in the profile against the job context and
// returns the top items per category. Categories are independent; a zero
// cap excludes a category entirely. Ties keep original profile order.
func SelectTop(ctx *JobContext, profile *types.UserProfile, limits Limits) Selection {
	return Selection{
		Experiences:  topN(profile.Experiences, ctx.ScoreExperience, limits.MaxExperiences),
		Projects:     topN(profile.Projects, ctx.ScoreProject, limits.MaxProjects),
		Skills:       topN(profile.Skills, ctx.ScoreSkill, limits.MaxSkills),
		Educations:   topN(profile.Educations, ctx.ScoreEducation, limits.MaxEducation),
		Publications: topN(profile.Publications, ctx.ScorePublication, limits.MaxPublications),
	}
}

// topN scores all items, sorts by score descending with a stable sort so
// equal scores keep profile order, and unwraps the first n items.
func topN[T any](items []T, score func(T) ScoredItem[T], n int) []T {
	scored := make([]ScoredItem[T], 0, len(items))
	for _, item := range items {
		scored = append(scored, score(item))
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if n < 0 {
		n = 0
	}
	if n > len(scored) {
		n = len(scored)
	}
	selected := make([]T, 0, n)
	for _, s := range scored[:n] {
		selected = append(selected, s.Item)
	}
	return selected
}
