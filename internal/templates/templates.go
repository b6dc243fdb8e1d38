// Package templates defines the static resume template policy table: which
// category combinations, caps and section ordering define each output shape.
package templates

import "github.com/mohitmishra786/cv-wiz/internal/scoring"

// DefaultName is the template used when no preference is given or the
// requested identifier is unknown.
const DefaultName = "experience-skills-projects"

// Config is one template's compilation policy. Configs are defined at
// process start and never mutated.
type Config struct {
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	Limits       scoring.Limits `json:"limits"`
	SectionOrder []string       `json:"section_order"`
}

var configs = map[string]Config{
	"experience-skills-projects": {
		Name: "experience-skills-projects",
		Description: "Best for experienced professionals. Emphasizes work " +
			"history and technical skills with selected projects.",
		Limits: scoring.Limits{
			MaxExperiences:  3,
			MaxProjects:     2,
			MaxSkills:       12,
			MaxEducation:    1,
			MaxPublications: 0,
		},
		SectionOrder: []string{"experiences", "skills", "projects", "educations"},
	},
	"education-research-skills": {
		Name: "education-research-skills",
		Description: "Ideal for academics, researchers, and recent graduates. " +
			"Highlights education, publications, and research experience.",
		Limits: scoring.Limits{
			MaxExperiences:  2,
			MaxProjects:     1,
			MaxSkills:       10,
			MaxEducation:    2,
			MaxPublications: 3,
		},
		SectionOrder: []string{"educations", "publications", "experiences", "skills"},
	},
	"projects-skills-experience": {
		Name: "projects-skills-experience",
		Description: "Great for developers and makers. Leads with project " +
			"portfolio and technical skills.",
		Limits: scoring.Limits{
			MaxExperiences:  2,
			MaxProjects:     4,
			MaxSkills:       10,
			MaxEducation:    1,
			MaxPublications: 0,
		},
		SectionOrder: []string{"projects", "skills", "experiences", "educations"},
	},
	"compact-technical": {
		Name: "compact-technical",
		Description: "Maximizes technical skill visibility. Compact layout " +
			"for roles requiring specific technical expertise.",
		Limits: scoring.Limits{
			MaxExperiences:  2,
			MaxProjects:     2,
			MaxSkills:       15,
			MaxEducation:    1,
			MaxPublications: 0,
		},
		SectionOrder: []string{"skills", "experiences", "projects", "educations"},
	},
}

// Lookup returns the configuration for the named template, falling back to
// the default for unknown or legacy identifiers.
func Lookup(name string) Config {
	if cfg, ok := configs[name]; ok {
		return cfg
	}
	return configs[DefaultName]
}

// Known reports whether name is a recognized template identifier.
func Known(name string) bool {
	_, ok := configs[name]
	return ok
}

// All returns every template configuration, for the list endpoint.
func All() []Config {
	names := []string{
		"experience-skills-projects",
		"education-research-skills",
		"projects-skills-experience",
		"compact-technical",
	}
	out := make([]Config, 0, len(names))
	for _, n := range names {
		out = append(out, configs[n])
	}
	return out
}
