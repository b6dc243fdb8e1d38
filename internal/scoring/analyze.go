package scoring

import (
	"regexp"
	"strings"
)

// maxTitleLength is the longest first line still treated as a job title.
// Titles are short; a longer first line is more likely prose.
const maxTitleLength = 100

// requiredSkillPatterns match phrases that explicitly introduce requirements
// ("Required: ...", "Skills: ...", "experience with ..."). The capture runs
// to the next sentence terminator and is tokenized into required skills.
var requiredSkillPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:required|must have|essential|mandatory)[:\s]+([^.]+)`),
	regexp.MustCompile(`(?:skills?|requirements?|qualifications?)[:\s]+([^.]+)`),
	regexp.MustCompile(`(?:experience with|proficiency in|knowledge of)[:\s]+([^.]+)`),
}

// JobContext is the derived, read-only state for one job description.
// Construct it once via Analyze and reuse it across scoring calls; it is
// never mutated after construction.
type JobContext struct {
	// Tokens is the filtered token sequence in original order.
	Tokens []string
	// Freq maps each distinct token to its occurrence count.
	Freq map[string]int
	// JobTitle is the heuristic title (lowercased first line), possibly empty.
	JobTitle string
	// RequiredSkills holds tokens extracted from requirement phrases.
	RequiredSkills map[string]struct{}

	// lowered is the full lowercased text, kept for substring skill matches.
	lowered string
	// titleTokens caches the tokenized job title for the experience scorer.
	titleTokens map[string]struct{}
}

// Analyze derives a JobContext from raw job description text. It never
// fails: degenerate input yields a context with empty derived fields.
func Analyze(jobDescription string) *JobContext {
	ctx := &JobContext{
		Tokens:         Tokenize(jobDescription),
		Freq:           make(map[string]int),
		RequiredSkills: make(map[string]struct{}),
		lowered:        strings.ToLower(jobDescription),
	}
	for _, t := range ctx.Tokens {
		ctx.Freq[t]++
	}
	ctx.JobTitle = extractJobTitle(jobDescription)
	ctx.titleTokens = tokenSet(ctx.JobTitle)

	for _, pattern := range requiredSkillPatterns {
		for _, m := range pattern.FindAllStringSubmatch(ctx.lowered, -1) {
			for _, t := range Tokenize(m[1]) {
				ctx.RequiredSkills[t] = struct{}{}
			}
		}
	}
	return ctx
}

// extractJobTitle applies the first-line heuristic: job postings
// conventionally lead with the title, and titles are short.
func extractJobTitle(jd string) string {
	trimmed := strings.TrimSpace(jd)
	if trimmed == "" {
		return ""
	}
	firstLine := trimmed
	if idx := strings.IndexByte(trimmed, '\n'); idx >= 0 {
		firstLine = trimmed[:idx]
	}
	firstLine = strings.TrimSpace(firstLine)
	if len(firstLine) >= maxTitleLength {
		return ""
	}
	return strings.ToLower(firstLine)
}
