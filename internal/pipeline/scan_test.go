package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobscan/internal/requirements"
)

const samplePosting = `Platform Engineer

Requirements:
- Must have 5+ years of experience in cloud operations
- Experience with AWS, Azure, and Terraform
- CISSP certification required

Nice to have:
- Experience with Splunk
`

func TestScanText_EndToEnd(t *testing.T) {
	s := New()
	result := s.ScanText(samplePosting)

	r := result.Requirements
	require.Len(t, r.YearsExperience, 1)
	assert.Equal(t, 5, r.YearsExperience[0].MinYears)
	assert.Equal(t, requirements.ImportanceMust, r.YearsExperience[0].Importance)

	names := make([]string, 0, len(r.ToolsOrSystems))
	importances := make(map[string]requirements.Importance)
	for _, it := range r.ToolsOrSystems {
		names = append(names, it.Name)
		importances[it.Name] = it.Importance
	}
	assert.Contains(t, names, "aws")
	assert.Contains(t, names, "terraform")
	assert.Contains(t, names, "splunk")
	assert.Equal(t, requirements.ImportanceMust, importances["aws"])
	assert.Equal(t, requirements.ImportancePreferred, importances["splunk"])

	assert.Contains(t, result.Formatted, "Tools / Systems:")
	assert.Contains(t, result.Formatted, "- aws [must]")
}

func TestScanHTML_UsesDetectedRegion(t *testing.T) {
	s := New()
	filler := strings.Repeat("We run a busy managed services practice for mid-size customers. ", 12)
	html := `<html><body>
<nav><a href="/a">a</a><a href="/b">b</a><a href="/c">c</a><a href="/d">d</a></nav>
<article>
<h2>Requirements</h2>
<p>` + filler + `</p>
<ul>
<li>Experience with AWS and Terraform</li>
<li>Experience with Splunk dashboards</li>
<li>On call participation</li>
<li>Change management discipline</li>
<li>Runbook upkeep</li>
<li>Patching windows</li>
</ul>
</article>
</body></html>`

	result, err := s.ScanHTML(html)
	require.NoError(t, err)
	assert.Equal(t, "article", result.SourceTag)
	assert.Greater(t, result.Confidence, 0)

	names := make([]string, 0)
	for _, it := range result.Requirements.ToolsOrSystems {
		names = append(names, it.Name)
	}
	assert.Contains(t, names, "aws")
}

func TestScanHTML_FallsBackToBody(t *testing.T) {
	s := New()
	result, err := s.ScanHTML(`<html><body><p>Tiny page.</p></body></html>`)
	require.NoError(t, err)
	assert.Equal(t, "body", result.SourceTag)
	assert.Equal(t, 0, result.Confidence)
}

func TestScanAll_PreservesOrder(t *testing.T) {
	s := New()
	texts := []string{
		"- Experience with AWS",
		"- Experience with Splunk",
		"- Experience with Terraform",
	}
	results, err := s.ScanAll(context.Background(), texts, 2)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "aws", results[0].Requirements.ToolsOrSystems[0].Name)
	assert.Equal(t, "splunk", results[1].Requirements.ToolsOrSystems[0].Name)
	assert.Equal(t, "terraform", results[2].Requirements.ToolsOrSystems[0].Name)
}

func TestResolveText_SelectionOverride(t *testing.T) {
	doc := "full document text"
	selection := "a manually selected region of at least thirty characters"
	assert.Equal(t, selection, ResolveText(doc, selection))
	assert.Equal(t, doc, ResolveText(doc, "too short"))
	assert.Equal(t, doc, ResolveText(doc, ""))
}

func TestMatchResume_WithBothSources(t *testing.T) {
	s := New()
	resume := "Five years running AWS and Terraform with Splunk dashboards and CISSP."

	structured := s.MatchResume(resume, samplePosting, s.RequirementsSource())
	assert.Greater(t, structured.Score, 0)
	assert.Contains(t, structured.Found, "aws")

	mined := s.MatchResume(resume, samplePosting, s.MiningSource())
	assert.Greater(t, mined.Score, 0)
}
