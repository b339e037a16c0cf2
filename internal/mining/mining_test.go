package mining

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMine_EmptyInput(t *testing.T) {
	m := New()
	assert.Empty(t, m.Mine(""))
	assert.Empty(t, m.Mine("   \n\t  "))
}

func TestMine_CertPatterns(t *testing.T) {
	m := New()
	terms := m.Mine("We require CISSP certification. Security+ highly regarded.")

	assert.Contains(t, terms, "cissp")
	assert.Contains(t, terms, "sec+", "security+ normalizes to the sec+ canonical name")
}

func TestMine_MustHaveTech(t *testing.T) {
	m := New()
	terms := m.Mine("Provision with Terraform for IaC. We use k8s daily.")

	assert.Contains(t, terms, "terraform")
	assert.Contains(t, terms, "kubernetes", "k8s alias maps to the canonical name")
}

func TestMine_StopwordAcronymsSkipped(t *testing.T) {
	m := New()
	terms := m.Mine("THE ROLE AND THE TEAM. Supporting IT with Splunk.")

	assert.NotContains(t, terms, "the")
	assert.NotContains(t, terms, "and")
	assert.NotContains(t, terms, "it")
	assert.Contains(t, terms, "splunk")
}

func TestMine_SingleWordNeedsFrequencyOrHint(t *testing.T) {
	m := New()

	// "cloudformation" fuzzily matches the "cloud" hint but is not itself a
	// hint term, so one mention is not enough.
	once := m.Mine("We deploy with CloudFormation for all staging.")
	assert.NotContains(t, once, "cloudformation")

	twice := m.Mine("We deploy with CloudFormation for all staging. Understanding of CloudFormation is required.")
	assert.Contains(t, twice, "cloudformation")
}

func TestMine_PhrasePrunesItsOwnWords(t *testing.T) {
	m := New()
	terms := m.Mine("Own the network monitoring stack end to end.")

	assert.Contains(t, terms, "network monitoring")
	assert.NotContains(t, terms, "network", "pruned as a substring of the surviving phrase")
	assert.NotContains(t, terms, "monitoring", "pruned as a substring of the surviving phrase")
}

func TestMine_ConnectorPhrasesDropped(t *testing.T) {
	m := New()
	terms := m.Mine("Workloads run in multiple cloud environments.")

	assert.NotContains(t, terms, "multiple cloud")
	assert.Contains(t, terms, "cloud")
}

func TestMine_FrequencyOrdersFirst(t *testing.T) {
	m := New()
	terms := m.Mine("Grafana is available. We use Splunk for alerting. Use of Splunk is common. Teams use Splunk in the SOC.")

	require.NotEmpty(t, terms)
	assert.Equal(t, "splunk", terms[0])
	assert.Contains(t, terms, "grafana")
}

func TestMine_CapsAtForty(t *testing.T) {
	m := New()
	var sb strings.Builder
	for i := 0; i < 60; i++ {
		// Distinct 4-letter acronyms, none a substring of another.
		fmt.Fprintf(&sb, "Q%c%cX ", 'A'+i/26, 'A'+i%26)
	}
	terms := m.Mine(sb.String())
	assert.Len(t, terms, 40)
}

func TestMine_AcronymPrunedBySuperstring(t *testing.T) {
	m := New()
	terms := m.Mine("SEC+ required for this role. SEC clearance level detail follows.")

	assert.Contains(t, terms, "sec+")
	assert.NotContains(t, terms, "sec")
}
