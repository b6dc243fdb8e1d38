// Package render lays out a compiled resume as ATS-friendly HTML and prints
// it to a one-page-constrained PDF via headless Chrome.
package render

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/mohitmishra786/cv-wiz/internal/types"
)

// resumeCSS keeps the layout plain so applicant tracking systems can parse
// the text: single column, standard fonts, no tables or images.
const resumeCSS = `
@page { size: letter; margin: 0.5in 0.6in; }
* { box-sizing: border-box; margin: 0; padding: 0; }
body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif;
       font-size: 10pt; line-height: 1.4; color: #1a1a1a; }
.header { text-align: center; margin-bottom: 12pt;
          border-bottom: 1pt solid #333; padding-bottom: 8pt; }
.header h1 { font-size: 18pt; font-weight: 700; margin-bottom: 4pt; color: #000; }
.header .contact { font-size: 9pt; color: #444; }
.section { margin-bottom: 10pt; }
.section-title { font-size: 11pt; font-weight: 700; text-transform: uppercase;
                 border-bottom: 0.5pt solid #999; margin-bottom: 5pt; }
.item { margin-bottom: 6pt; }
.item-heading { font-weight: 700; }
.item-sub { font-style: italic; color: #333; }
ul { margin-left: 14pt; }
.skills-line { margin-bottom: 2pt; }
`

const resumeHTML = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><style>{{.CSS}}</style></head>
<body>
<div class="header">
  <h1>{{.Resume.Name}}</h1>
  <div class="contact">{{.Resume.Email}}{{if .Resume.JobTitle}} &middot; {{.Resume.JobTitle}}{{end}}</div>
</div>
{{range .Sections}}{{.}}{{end}}
</body>
</html>`

var tmplFuncs = template.FuncMap{"join": strings.Join}

var (
	pageTmpl = template.Must(template.New("resume").Parse(resumeHTML))

	experiencesTmpl = template.Must(template.New("experiences").Funcs(tmplFuncs).Parse(`
<div class="section"><div class="section-title">Experience</div>
{{range .}}<div class="item">
  <div class="item-heading">{{.Title}}</div>
  <div class="item-sub">{{.Company}}{{if .Location}} &middot; {{.Location}}{{end}}</div>
  {{if .Description}}<div>{{.Description}}</div>{{end}}
  {{if .Highlights}}<ul>{{range .Highlights}}<li>{{.}}</li>{{end}}</ul>{{end}}
</div>{{end}}</div>`))

	projectsTmpl = template.Must(template.New("projects").Funcs(tmplFuncs).Parse(`
<div class="section"><div class="section-title">Projects</div>
{{range .}}<div class="item">
  <div class="item-heading">{{.Name}}</div>
  {{if .Technologies}}<div class="item-sub">{{join .Technologies ", "}}</div>{{end}}
  {{if .Description}}<div>{{.Description}}</div>{{end}}
  {{if .Highlights}}<ul>{{range .Highlights}}<li>{{.}}</li>{{end}}</ul>{{end}}
</div>{{end}}</div>`))

	educationsTmpl = template.Must(template.New("educations").Funcs(tmplFuncs).Parse(`
<div class="section"><div class="section-title">Education</div>
{{range .}}<div class="item">
  <div class="item-heading">{{.Degree}}{{if .Field}} in {{.Field}}{{end}}</div>
  <div class="item-sub">{{.Institution}}</div>
  {{if .Honors}}<div>{{join .Honors ", "}}</div>{{end}}
</div>{{end}}</div>`))

	skillsTmpl = template.Must(template.New("skills").Funcs(tmplFuncs).Parse(`
<div class="section"><div class="section-title">Skills</div>
{{range $category, $names := .}}<div class="skills-line"><strong>{{$category}}:</strong> {{join $names ", "}}</div>
{{end}}</div>`))

	publicationsTmpl = template.Must(template.New("publications").Parse(`
<div class="section"><div class="section-title">Publications</div>
{{range .}}<div class="item">
  <div class="item-heading">{{.Title}}</div>
  <div class="item-sub">{{.Venue}}</div>
</div>{{end}}</div>`))
)

// BuildHTML renders the compiled resume to a standalone HTML document,
// laying out sections in the template's configured order. Sections with no
// items are skipped.
func BuildHTML(resume *types.CompiledResume, sectionOrder []string) (string, error) {
	var sections []template.HTML
	for _, name := range sectionOrder {
		html, err := renderSection(resume, name)
		if err != nil {
			return "", err
		}
		if html != "" {
			sections = append(sections, html)
		}
	}

	var sb strings.Builder
	err := pageTmpl.Execute(&sb, struct {
		CSS      template.CSS
		Resume   *types.CompiledResume
		Sections []template.HTML
	}{
		CSS:      template.CSS(resumeCSS),
		Resume:   resume,
		Sections: sections,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render resume HTML: %w", err)
	}
	return sb.String(), nil
}

func renderSection(resume *types.CompiledResume, name string) (template.HTML, error) {
	var sb strings.Builder
	var err error

	switch name {
	case "experiences":
		if len(resume.Experiences) == 0 {
			return "", nil
		}
		err = experiencesTmpl.Execute(&sb, resume.Experiences)
	case "projects":
		if len(resume.Projects) == 0 {
			return "", nil
		}
		err = projectsTmpl.Execute(&sb, resume.Projects)
	case "educations":
		if len(resume.Educations) == 0 {
			return "", nil
		}
		err = educationsTmpl.Execute(&sb, resume.Educations)
	case "skills":
		if len(resume.Skills) == 0 {
			return "", nil
		}
		err = skillsTmpl.Execute(&sb, groupSkills(resume.Skills))
	case "publications":
		if len(resume.Publications) == 0 {
			return "", nil
		}
		err = publicationsTmpl.Execute(&sb, resume.Publications)
	default:
		return "", fmt.Errorf("unknown resume section %q", name)
	}

	if err != nil {
		return "", fmt.Errorf("failed to render %s section: %w", name, err)
	}
	return template.HTML(sb.String()), nil
}

func groupSkills(skills []types.Skill) map[string][]string {
	grouped := make(map[string][]string)
	for _, s := range skills {
		category := s.Category
		if category == "" {
			category = "Other"
		}
		grouped[category] = append(grouped[category], s.Name)
	}
	return grouped
}
