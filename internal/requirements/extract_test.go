package requirements

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobscan/internal/segment"
)

func bullet(text string) segment.Block  { return segment.Block{Kind: segment.KindBullet, Text: text} }
func heading(text string) segment.Block { return segment.Block{Kind: segment.KindHeading, Text: text} }
func plain(text string) segment.Block   { return segment.Block{Kind: segment.KindText, Text: text} }

func TestExtract_EmptyInput(t *testing.T) {
	e := New()
	r := e.Extract(nil)
	assert.True(t, r.IsEmpty())
	assert.Empty(t, r.Terms())
}

func TestExtract_YearsWithDomainAndMustCue(t *testing.T) {
	e := New()
	r := e.Extract([]segment.Block{
		bullet("Must have 5+ years of experience in cybersecurity"),
	})

	require.Len(t, r.YearsExperience, 1)
	y := r.YearsExperience[0]
	assert.Equal(t, 5, y.MinYears)
	assert.Equal(t, "cybersecurity", y.Domain)
	assert.Equal(t, "5+ years (cybersecurity)", y.Name)
	assert.Equal(t, ImportanceMust, y.Importance)
}

func TestExtract_YearsWithoutCueDefaultsToMust(t *testing.T) {
	e := New()
	r := e.Extract([]segment.Block{
		bullet("3 years in IT support"),
	})

	require.Len(t, r.YearsExperience, 1)
	y := r.YearsExperience[0]
	assert.Equal(t, 3, y.MinYears)
	assert.Equal(t, "it support", y.Domain)
	assert.Equal(t, ImportanceMust, y.Importance, "a years floor is a hard requirement even without a cue word")
}

func TestExtract_DegreeInheritsPreferredSection(t *testing.T) {
	e := New()
	r := e.Extract([]segment.Block{
		heading("Preferred Qualifications"),
		plain("Bachelor's degree in Computer Science"),
	})

	require.Len(t, r.Degrees, 1)
	d := r.Degrees[0]
	assert.Equal(t, "bachelor", d.Level)
	assert.Equal(t, "computer science", d.Field)
	assert.Equal(t, "bachelor (computer science)", d.Name)
	assert.Equal(t, ImportancePreferred, d.Importance)
}

func TestExtract_DegreeMastersNormalized(t *testing.T) {
	e := New()
	r := e.Extract([]segment.Block{
		plain("Masters degree in data analytics or equivalent"),
	})

	require.Len(t, r.Degrees, 1)
	assert.Equal(t, "master", r.Degrees[0].Level)
}

func TestExtract_SectionContextPersistsAcrossUnmappedHeading(t *testing.T) {
	e := New()
	r := e.Extract([]segment.Block{
		heading("Requirements"),
		heading("About the company"),
		plain("Bachelor degree in engineering"),
	})

	require.Len(t, r.Degrees, 1)
	assert.Equal(t, ImportanceMust, r.Degrees[0].Importance,
		"an unmapped heading leaves the running context in place")
}

func TestExtract_ToolsFromCueList(t *testing.T) {
	e := New()
	r := e.Extract([]segment.Block{
		heading("Requirements"),
		bullet("Experience with AWS, Azure, and Terraform"),
	})

	require.Len(t, r.ToolsOrSystems, 3)
	names := []string{r.ToolsOrSystems[0].Name, r.ToolsOrSystems[1].Name, r.ToolsOrSystems[2].Name}
	assert.Equal(t, []string{"aws", "azure", "terraform"}, names)
	for _, it := range r.ToolsOrSystems {
		assert.Equal(t, ImportanceMust, it.Importance)
	}
	assert.Empty(t, r.HardSkills)
}

func TestExtract_HardSkillVsTool(t *testing.T) {
	e := New()
	r := e.Extract([]segment.Block{
		bullet("Proficient in incident response and ServiceNow"),
	})

	require.Len(t, r.HardSkills, 1)
	assert.Equal(t, "incident response", r.HardSkills[0].Name)
	require.Len(t, r.ToolsOrSystems, 1)
	assert.Equal(t, "servicenow", r.ToolsOrSystems[0].Name)
}

func TestExtract_SuchAsRewrite(t *testing.T) {
	e := New()
	r := e.Extract([]segment.Block{
		bullet("Experience with monitoring tools such as Splunk"),
	})

	require.Len(t, r.ToolsOrSystems, 1)
	assert.Equal(t, "splunk", r.ToolsOrSystems[0].Name)
}

func TestExtract_SkillCueIgnoredInProseWhenBulletsExist(t *testing.T) {
	e := New()
	longProse := "Our team has broad experience with Kubernetes and we ship weekly. " +
		"We run a large fleet and collaborate closely with product teams across several regions."
	r := e.Extract([]segment.Block{
		plain(longProse),
		bullet("Monitor dashboards daily"),
	})

	assert.Empty(t, r.ToolsOrSystems)
	assert.Empty(t, r.HardSkills)
}

func TestExtract_ShortTextEligibleWhenNoBullets(t *testing.T) {
	e := New()
	r := e.Extract([]segment.Block{
		plain("Experience with Docker required"),
	})

	require.Len(t, r.ToolsOrSystems, 1)
	assert.Equal(t, "docker", r.ToolsOrSystems[0].Name)
	assert.Equal(t, ImportanceMust, r.ToolsOrSystems[0].Importance)
}

func TestExtract_JunkCandidatesDropped(t *testing.T) {
	e := New()
	r := e.Extract([]segment.Block{
		bullet("Experience with the business and its processes"),
		bullet("Knowledge of solutions"),
	})

	assert.Empty(t, r.HardSkills)
	assert.Empty(t, r.ToolsOrSystems)
}

func TestExtract_CertAcronymsAndPhrase(t *testing.T) {
	e := New()
	r := e.Extract([]segment.Block{
		bullet("CISSP or CISM certification required"),
	})

	names := make([]string, 0, len(r.Certifications))
	for _, c := range r.Certifications {
		names = append(names, c.Name)
	}
	assert.Contains(t, names, "cissp")
	assert.Contains(t, names, "cism")
	assert.NotContains(t, names, "required", "cue-word leftovers are filtered")
	for _, c := range r.Certifications {
		assert.Equal(t, ImportanceMust, c.Importance)
	}
}

func TestExtract_LicencePhrase(t *testing.T) {
	e := New()
	r := e.Extract([]segment.Block{
		bullet("Current driver's licence: class C"),
	})

	names := make([]string, 0, len(r.Certifications))
	for _, c := range r.Certifications {
		names = append(names, c.Name)
	}
	assert.Contains(t, names, "class c")
}

func TestExtract_SoftSkills(t *testing.T) {
	e := New()
	r := e.Extract([]segment.Block{
		bullet("Excellent communication and stakeholder management skills"),
	})

	require.Len(t, r.SoftSkills, 2)
	assert.Equal(t, "communication", r.SoftSkills[0].Name)
	assert.Equal(t, "stakeholder management", r.SoftSkills[1].Name)
}

func TestExtract_DedupeKeepsStrongestImportance(t *testing.T) {
	e := New()
	r := e.Extract([]segment.Block{
		heading("Nice to have"),
		bullet("Experience with Terraform"),
		heading("Requirements"),
		bullet("Experience with Terraform"),
	})

	require.Len(t, r.ToolsOrSystems, 1)
	assert.Equal(t, "terraform", r.ToolsOrSystems[0].Name)
	assert.Equal(t, ImportanceMust, r.ToolsOrSystems[0].Importance)
}

func TestExtract_DedupePreservesFirstSeenOrder(t *testing.T) {
	e := New()
	r := e.Extract([]segment.Block{
		bullet("Experience with Azure and AWS"),
		bullet("Experience with AWS and Azure"),
	})

	require.Len(t, r.ToolsOrSystems, 2)
	assert.Equal(t, "azure", r.ToolsOrSystems[0].Name)
	assert.Equal(t, "aws", r.ToolsOrSystems[1].Name)
}

func TestImportance_Rank(t *testing.T) {
	assert.Greater(t, ImportanceMust.Rank(), ImportancePreferred.Rank())
	assert.Greater(t, ImportancePreferred.Rank(), ImportanceUnknown.Rank())
}

func TestResult_Terms(t *testing.T) {
	r := Result{
		ToolsOrSystems: []Item{{Name: "aws"}},
		HardSkills:     []Item{{Name: "incident response"}},
		SoftSkills:     []Item{{Name: "communication"}},
	}
	assert.Equal(t, []string{"aws", "incident response", "communication"}, r.Terms())
}
