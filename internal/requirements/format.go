package requirements

import "strings"

// maxItemsPerSection caps each rendered section so a noisy posting does not
// produce an unreadable wall of text.
const maxItemsPerSection = 12

// Format renders a Result as a plain-text summary, one section per
// collection, in a fixed reading order.
func Format(r Result) string {
	var sb strings.Builder

	writeSection(&sb, "Degrees", itemsOf(r.Degrees))
	writeSection(&sb, "Certifications / Licenses", r.Certifications)
	writeSection(&sb, "Years of Experience", itemsOf(r.YearsExperience))
	writeSection(&sb, "Tools / Systems", r.ToolsOrSystems)
	writeSection(&sb, "Hard Skills", r.HardSkills)
	writeSection(&sb, "Soft Skills", r.SoftSkills)

	return strings.TrimRight(sb.String(), "\n")
}

func itemsOf[T keyed](in []T) []Item {
	out := make([]Item, 0, len(in))
	for _, v := range in {
		out = append(out, v.base())
	}
	return out
}

func writeSection(sb *strings.Builder, title string, items []Item) {
	sb.WriteString(title)
	sb.WriteString(":\n")
	if len(items) == 0 {
		sb.WriteString("(none)\n\n")
		return
	}
	if len(items) > maxItemsPerSection {
		items = items[:maxItemsPerSection]
	}
	for _, it := range items {
		sb.WriteString("- ")
		sb.WriteString(it.Name)
		sb.WriteString(" [")
		sb.WriteString(string(it.Importance))
		sb.WriteString("]\n")
	}
	sb.WriteString("\n")
}
