// Package types defines the data structures shared across the CV-Wiz service.
package types

import "time"

// Experience represents a work experience entry.
type Experience struct {
	ID          string     `json:"id"`
	Company     string     `json:"company"`
	Title       string     `json:"title"`
	Location    string     `json:"location,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Current     bool       `json:"current"`
	Description string     `json:"description"`
	Highlights  []string   `json:"highlights,omitempty"`
	Keywords    []string   `json:"keywords,omitempty"`

	// RelevanceScore is computed during compilation; zero until scored.
	RelevanceScore float64 `json:"relevance_score"`
}

// Project represents a project entry.
type Project struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	URL          string     `json:"url,omitempty"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	Technologies []string   `json:"technologies,omitempty"`
	Highlights   []string   `json:"highlights,omitempty"`

	RelevanceScore float64 `json:"relevance_score"`
}

// Education represents an education entry.
type Education struct {
	ID          string     `json:"id"`
	Institution string     `json:"institution"`
	Degree      string     `json:"degree"`
	Field       string     `json:"field"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	GPA         *float64   `json:"gpa,omitempty"`
	Honors      []string   `json:"honors,omitempty"`

	RelevanceScore float64 `json:"relevance_score"`
}

// Skill represents a single skill entry.
type Skill struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"` // e.g. "Programming", "Tools"
	Proficiency string `json:"proficiency,omitempty"`
	YearsExp    int    `json:"years_exp,omitempty"`

	RelevanceScore float64 `json:"relevance_score"`
}

// Publication represents a publication entry for academic profiles.
type Publication struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	Venue    string     `json:"venue"`
	Authors  []string   `json:"authors,omitempty"`
	Date     *time.Time `json:"date,omitempty"`
	URL      string     `json:"url,omitempty"`
	DOI      string     `json:"doi,omitempty"`
	Abstract string     `json:"abstract,omitempty"`

	RelevanceScore float64 `json:"relevance_score"`
}

// UserSettings holds per-user preferences.
type UserSettings struct {
	SelectedTemplate string `json:"selected_template,omitempty"`
}

// UserProfile is the complete career profile for one user. This is the
// canonical representation assembled from the database.
type UserProfile struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`

	Experiences  []Experience  `json:"experiences"`
	Projects     []Project     `json:"projects"`
	Educations   []Education   `json:"educations"`
	Skills       []Skill       `json:"skills"`
	Publications []Publication `json:"publications"`

	Settings *UserSettings `json:"settings,omitempty"`
}

// IsEmpty reports whether the profile has no matchable career data at all.
func (p *UserProfile) IsEmpty() bool {
	return len(p.Experiences) == 0 &&
		len(p.Projects) == 0 &&
		len(p.Skills) == 0 &&
		len(p.Educations) == 0 &&
		len(p.Publications) == 0
}
