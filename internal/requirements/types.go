// Package requirements extracts typed, importance-classified requirement
// facts from segmented job-description blocks.
package requirements

// Importance classifies how strongly a job posting demands a requirement.
type Importance string

// Importance levels, ordered must > preferred > unknown.
const (
	ImportanceMust      Importance = "must"
	ImportancePreferred Importance = "preferred"
	ImportanceUnknown   Importance = "unknown"
)

// Rank returns the numeric ordering of an importance level, used by
// deduplication to keep the strongest duplicate.
func (i Importance) Rank() int {
	switch i {
	case ImportanceMust:
		return 3
	case ImportancePreferred:
		return 2
	default:
		return 1
	}
}

// Item is the base of every extracted requirement fact: a normalized name,
// the source line it came from, and its importance.
type Item struct {
	Name       string     `json:"name"`
	Evidence   string     `json:"evidence"`
	Importance Importance `json:"importance"`
}

// base lets the generic dedupe reach the embedded Item of any variant.
func (it Item) base() Item { return it }

// YearsExperience is a years-of-experience requirement, optionally scoped to
// a domain ("5+ years in cybersecurity").
type YearsExperience struct {
	Item
	MinYears int    `json:"min_years"`
	Domain   string `json:"domain,omitempty"`
}

// Degree is an educational requirement with a level and optional field of study.
type Degree struct {
	Item
	Level string `json:"level"`
	Field string `json:"field,omitempty"`
}

// Result holds the six deduplicated requirement collections. It is the
// terminal output of extraction and is not mutated afterwards.
type Result struct {
	HardSkills      []Item            `json:"hard_skills"`
	ToolsOrSystems  []Item            `json:"tools_or_systems"`
	Certifications  []Item            `json:"certifications"`
	Degrees         []Degree          `json:"degrees"`
	YearsExperience []YearsExperience `json:"years_experience"`
	SoftSkills      []Item            `json:"soft_skills"`
}

// IsEmpty reports whether no facts were extracted at all.
func (r Result) IsEmpty() bool {
	return len(r.HardSkills) == 0 && len(r.ToolsOrSystems) == 0 &&
		len(r.Certifications) == 0 && len(r.Degrees) == 0 &&
		len(r.YearsExperience) == 0 && len(r.SoftSkills) == 0
}

// Terms flattens all collections into a single term list for matching, in
// the fixed collection order used throughout.
func (r Result) Terms() []string {
	var terms []string
	for _, it := range r.ToolsOrSystems {
		terms = append(terms, it.Name)
	}
	for _, it := range r.HardSkills {
		terms = append(terms, it.Name)
	}
	for _, it := range r.Certifications {
		terms = append(terms, it.Name)
	}
	for _, d := range r.Degrees {
		terms = append(terms, d.Name)
	}
	for _, y := range r.YearsExperience {
		terms = append(terms, y.Name)
	}
	for _, it := range r.SoftSkills {
		terms = append(terms, it.Name)
	}
	return terms
}
