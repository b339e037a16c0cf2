package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		request ExtractRequest
		wantErr error
	}{
		{
			name:    "text only",
			request: ExtractRequest{Text: "5+ years of experience"},
		},
		{
			name:    "html only",
			request: ExtractRequest{HTML: "<article>posting</article>"},
		},
		{
			name:    "url only",
			request: ExtractRequest{URL: "https://example.com/job/123"},
		},
		{
			name:    "no input",
			request: ExtractRequest{},
			wantErr: ErrContentInput,
		},
		{
			name:    "text and url",
			request: ExtractRequest{Text: "posting", URL: "https://example.com/job"},
			wantErr: ErrContentInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestExtractRequest_Validate_BadURL(t *testing.T) {
	req := ExtractRequest{URL: "not a url"}
	err := req.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "url")
}

func TestMatchRequest_Validate(t *testing.T) {
	req := MatchRequest{
		ExtractRequest: ExtractRequest{Text: "posting"},
		Resume:         "resume text",
		Source:         "mined",
	}
	require.NoError(t, req.Validate())

	req.Source = "llm"
	require.Error(t, req.Validate())
}

func TestSaveResumeRequest_Validate(t *testing.T) {
	req := SaveResumeRequest{Body: "Five years of AWS."}
	require.NoError(t, req.Validate())

	req.Body = ""
	require.Error(t, req.Validate())
}
