package requirements

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat_SectionsAndOrder(t *testing.T) {
	r := Result{
		ToolsOrSystems: []Item{{Name: "aws", Importance: ImportanceMust}},
		Degrees: []Degree{{
			Item:  Item{Name: "bachelor (computer science)", Importance: ImportancePreferred},
			Level: "bachelor",
			Field: "computer science",
		}},
	}

	out := Format(r)

	degreesAt := strings.Index(out, "Degrees:")
	toolsAt := strings.Index(out, "Tools / Systems:")
	softAt := strings.Index(out, "Soft Skills:")
	assert.GreaterOrEqual(t, degreesAt, 0)
	assert.Greater(t, toolsAt, degreesAt)
	assert.Greater(t, softAt, toolsAt)

	assert.Contains(t, out, "- bachelor (computer science) [preferred]")
	assert.Contains(t, out, "- aws [must]")
	assert.Contains(t, out, "Soft Skills:\n(none)")
}

func TestFormat_CapsItemsPerSection(t *testing.T) {
	var r Result
	for i := 0; i < 20; i++ {
		r.HardSkills = append(r.HardSkills, Item{Name: "skill " + strconv.Itoa(i), Importance: ImportanceUnknown})
	}

	out := Format(r)
	assert.Equal(t, maxItemsPerSection, strings.Count(out, "- skill "))
	assert.NotContains(t, out, "skill 12")
}
