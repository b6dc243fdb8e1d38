package scoring

import (
	"math"
	"sort"
	"strings"

	"github.com/mohitmishra786/cv-wiz/internal/types"
)

// Boost factors applied on top of base keyword accumulation.
const (
	titleMatchBoost      = 2.0 // experience title overlaps the job title
	recencyBoost         = 1.2 // experience is marked current
	skillExactMatchBoost = 1.5 // skill name is a JD keyword
	requiredSkillBoost   = 1.5 // skill appears in a requirement phrase
	expertSkillBoost     = 1.2 // self-reported expert proficiency
	techMatchWeight      = 2.0 // per project technology found in the JD
	substringMatchScore  = 2.0 // skill name appears only as a substring
)

// ScoredItem pairs an item with its relevance score and the JD keywords it
// matched. The embedded item carries the same score in RelevanceScore.
// Scorers operate on copies; caller-owned profile data is never mutated.
type ScoredItem[T any] struct {
	Item            T
	Score           float64
	MatchedKeywords []string
}

// accumulate sums JD frequencies for every token of the item's token set and
// collects the matched tokens, sorted for deterministic output.
func (c *JobContext) accumulate(tokens map[string]struct{}) (float64, []string) {
	score := 0.0
	var matched []string
	for t := range tokens {
		if freq, ok := c.Freq[t]; ok {
			score += float64(freq)
			matched = append(matched, t)
		}
	}
	sort.Strings(matched)
	return score, matched
}

// ScoreExperience scores a work experience entry. Title overlap with the job
// title and currently-held positions are boosted; the total is normalized by
// the square root of the entry's token-set size so long descriptions do not
// win on volume alone.
func (c *JobContext) ScoreExperience(exp types.Experience) ScoredItem[types.Experience] {
	blob := strings.Join([]string{
		exp.Title,
		exp.Company,
		exp.Description,
		strings.Join(exp.Highlights, " "),
		strings.Join(exp.Keywords, " "),
	}, " ")
	tokens := tokenSet(blob)

	score, matched := c.accumulate(tokens)

	if c.JobTitle != "" {
		if overlaps(tokenSet(exp.Title), c.titleTokens) {
			score *= titleMatchBoost
		}
	}
	if exp.Current {
		score *= recencyBoost
	}
	if len(tokens) > 0 {
		score /= math.Sqrt(float64(len(tokens)))
	}

	exp.RelevanceScore = score
	return ScoredItem[types.Experience]{Item: exp, Score: score, MatchedKeywords: matched}
}

// ScoreProject scores a project entry. Explicit technology-stack matches are
// weighted more heavily than incidental description overlap.
func (c *JobContext) ScoreProject(proj types.Project) ScoredItem[types.Project] {
	blob := strings.Join([]string{
		proj.Name,
		proj.Description,
		strings.Join(proj.Technologies, " "),
		strings.Join(proj.Highlights, " "),
	}, " ")
	tokens := tokenSet(blob)

	score, matched := c.accumulate(tokens)

	// Each distinct technology counts once, regardless of duplicate
	// or case-variant entries.
	techs := make(map[string]struct{}, len(proj.Technologies))
	for _, tech := range proj.Technologies {
		techs[strings.ToLower(tech)] = struct{}{}
	}
	for tech := range techs {
		if _, ok := c.Freq[tech]; ok {
			score += techMatchWeight
		}
	}
	if len(tokens) > 0 {
		score /= math.Sqrt(float64(len(tokens)))
	}

	proj.RelevanceScore = score
	return ScoredItem[types.Project]{Item: proj, Score: score, MatchedKeywords: matched}
}

// ScoreSkill scores a skill entry by exact keyword match, falling back to a
// flat substring match against the full job description. No length
// normalization applies; a skill has no blob to normalize against.
func (c *JobContext) ScoreSkill(skill types.Skill) ScoredItem[types.Skill] {
	score := 0.0
	var matched []string

	name := strings.ToLower(skill.Name)
	if freq, ok := c.Freq[name]; ok {
		score = float64(freq) * skillExactMatchBoost
		matched = append(matched, name)
	} else if name != "" && strings.Contains(c.lowered, name) {
		score = substringMatchScore
		matched = append(matched, name)
	}

	if _, ok := c.RequiredSkills[name]; ok {
		score *= requiredSkillBoost
	}
	if strings.EqualFold(skill.Proficiency, "expert") {
		score *= expertSkillBoost
	}

	skill.RelevanceScore = score
	return ScoredItem[types.Skill]{Item: skill, Score: score, MatchedKeywords: matched}
}

// ScoreEducation scores an education entry by plain keyword accumulation.
func (c *JobContext) ScoreEducation(edu types.Education) ScoredItem[types.Education] {
	blob := strings.Join([]string{
		edu.Institution,
		edu.Degree,
		edu.Field,
		strings.Join(edu.Honors, " "),
	}, " ")

	score, matched := c.accumulate(tokenSet(blob))

	edu.RelevanceScore = score
	return ScoredItem[types.Education]{Item: edu, Score: score, MatchedKeywords: matched}
}

// ScorePublication scores a publication entry by plain keyword accumulation.
func (c *JobContext) ScorePublication(pub types.Publication) ScoredItem[types.Publication] {
	blob := strings.Join([]string{pub.Title, pub.Venue, pub.Abstract}, " ")

	score, matched := c.accumulate(tokenSet(blob))

	pub.RelevanceScore = score
	return ScoredItem[types.Publication]{Item: pub, Score: score, MatchedKeywords: matched}
}

func overlaps(a, b map[string]struct{}) bool {
	if len(a) > len(b) {
		a, b = b, a
	}
	for t := range a {
		if _, ok := b[t]; ok {
			return true
		}
	}
	return false
}
