package types

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// ErrContentInput is returned when a request does not carry exactly one of
// the text, html, and url inputs.
var ErrContentInput = errors.New("exactly one of 'text', 'html', or 'url' must be provided")

// ExtractRequest asks for a requirements scan of job posting content.
// Exactly one of text, html, or url must be provided; the validator enforces
// presence and Validate adds the exclusivity check.
type ExtractRequest struct {
	Text      string `json:"text,omitempty"`
	HTML      string `json:"html,omitempty"`
	URL       string `json:"url,omitempty" validate:"omitempty,url"`
	Selection string `json:"selection,omitempty"`
	Save      bool   `json:"save,omitempty"` // Persist the scan for the authenticated user
}

// MatchRequest asks for a resume score against job posting content.
// When Resume is empty the caller's saved resume is used.
type MatchRequest struct {
	ExtractRequest
	Resume string `json:"resume,omitempty"`
	Source string `json:"source,omitempty" validate:"omitempty,oneof=structured mined"`
}

// SaveResumeRequest replaces the caller's saved resume text.
type SaveResumeRequest struct {
	Body string `json:"body" validate:"required,min=1"`
}

// Validate checks that exactly one content input is set.
func (r *ExtractRequest) Validate() error {
	if err := validator.New().Struct(r); err != nil {
		return err
	}
	return r.validateContent()
}

// Validate checks content inputs and the source selector.
func (r *MatchRequest) Validate() error {
	if err := validator.New().Struct(r); err != nil {
		return err
	}
	return r.validateContent()
}

// Validate validates the SaveResumeRequest using the validator.
func (r *SaveResumeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

func (r *ExtractRequest) validateContent() error {
	set := 0
	for _, v := range []string{r.Text, r.HTML, r.URL} {
		if v != "" {
			set++
		}
	}
	if set != 1 {
		return ErrContentInput
	}
	return nil
}
