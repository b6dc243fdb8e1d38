package types

// ResumeRequest is the request body for the /compile endpoint.
// Validation tags are enforced by the server before compilation runs.
type ResumeRequest struct {
	JobDescription string `json:"job_description" validate:"required,min=50,max=50000"`
	Template       string `json:"template,omitempty" validate:"omitempty,max=64"`
	RenderPDF      bool   `json:"render_pdf,omitempty"`
}

// CompiledResume is the assembled output of one compilation run: header
// fields plus the five selected, relevance-ordered item lists.
type CompiledResume struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	JobTitle string `json:"job_title,omitempty"`
	Template string `json:"template"`

	Experiences  []Experience  `json:"experiences"`
	Projects     []Project     `json:"projects"`
	Educations   []Education   `json:"educations"`
	Skills       []Skill       `json:"skills"`
	Publications []Publication `json:"publications"`
}

// ResumeResponse is the response body for the /compile endpoint.
type ResumeResponse struct {
	Success    bool            `json:"success"`
	PDFBase64  string          `json:"pdf_base64,omitempty"`
	ResumeJSON *CompiledResume `json:"resume_json,omitempty"`
	Error      string          `json:"error,omitempty"`
}

// CoverLetterRequest is the request body for the /cover-letter endpoint.
type CoverLetterRequest struct {
	JobDescription string `json:"job_description" validate:"required,min=50,max=50000"`
	Tone           string `json:"tone,omitempty" validate:"omitempty,oneof=professional enthusiastic formal"`
	MaxWords       int    `json:"max_words,omitempty" validate:"omitempty,min=100,max=1000"`
}

// CoverLetterResponse is the response body for the /cover-letter endpoint.
type CoverLetterResponse struct {
	Success           bool     `json:"success"`
	CoverLetter       string   `json:"cover_letter,omitempty"`
	WordCount         int      `json:"word_count,omitempty"`
	ModelUsed         string   `json:"model_used,omitempty"`
	ProfileFieldsUsed []string `json:"profile_fields_used,omitempty"`
	Error             string   `json:"error,omitempty"`
}
