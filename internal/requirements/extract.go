package requirements

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/jobscan/internal/segment"
	"github.com/jonathan/jobscan/internal/vocab"
)

// maxSkillTextLength bounds the plain-text blocks considered for skill cues
// when a posting has no bullet lists at all.
const maxSkillTextLength = 160

var (
	yearsRe       = regexp.MustCompile(`(?i)\b(minimum\s+)?(\d{1,2})\s*\+?\s*(years?|yrs?)\b`)
	yearsDomainRe = regexp.MustCompile(`(?i)\b(?:years?|yrs?)\s+(?:of\s+)?(?:experience\s+)?(?:in|with)\s+(.+)$`)

	degreeRe      = regexp.MustCompile(`(?i)(bachelor|masters|master|phd|doctorate|diploma|certificate|cert iv|cert iii|associate degree)`)
	degreeFieldRe = regexp.MustCompile(`(?i)\b(?:in|of)\s+([a-z][a-z0-9 \-&]{2,60})`)

	certCueRe     = regexp.MustCompile(`(?i)\b(certif|certified|certification|license|licence|registration|accreditation|check|clearance)\b`)
	certPhraseRe  = regexp.MustCompile(`(?i)\b(?:license|licence|certification|registration|accreditation|clearance|check)\b[:\-]?\s*(.+)$`)
	certAcronymRe = regexp.MustCompile(`\b[A-Z]{2,6}\b`)

	skillCueRe  = regexp.MustCompile(`(?i)\b(experience with|proficient in|knowledge of|familiar with|hands[- ]on with|using)\s+(.+)$`)
	verbStartRe = regexp.MustCompile(`(?i)^\s*(understand|liaise|communicate|collaborate|work|support|manage|lead|deliver|drive|ensure|provide)\b`)

	acronymToolRe = regexp.MustCompile(`^[A-Z0-9]{2,12}$`)
	suchAsRe      = regexp.MustCompile(`(?i)\bsuch as\s+(.+)$`)
	toolWordRe    = regexp.MustCompile(`(?i)\btools?\b`)
	trailingCueRe = regexp.MustCompile(`(?i)\s*\b(?:is\s+)?(required|preferred|essential|desirable|mandatory|advantageous|a plus|a bonus)\s*$`)

	listSplitRe     = regexp.MustCompile(`(?i),|;|/|\band\b|\bor\b`)
	trailingPunctRe = regexp.MustCompile(`[.,;:]+$`)
	spaceRe         = regexp.MustCompile(`\s+`)

	junkPhraseRe   = regexp.MustCompile(`\b(the business|its processes|the system|the systems)\b`)
	engineerLedRe  = regexp.MustCompile(`\bengineer[- ]led\b`)
	toInfinitiveRe = regexp.MustCompile(`\bto\s+(deliver|drive|enable|support|ensure|provide)\b`)
	bareSolutionRe = regexp.MustCompile(`\bsolutions?\b`)
	vagueEnvRe     = regexp.MustCompile(`\b(enterprise environment|workloads|secure cloud)\b`)
)

// Extractor turns segmented blocks into typed requirement facts. It carries
// the vocabulary tables and importance patterns resolved once at construction.
type Extractor struct {
	sectionMap     []vocab.Pattern
	lineImportance []vocab.Pattern
	softSkills     []string
	verbishStart   []string
	bannedSingles  map[string]bool
	stopwords      map[string]bool
	toolyWords     []string
	vendorWords    []string
	productWords   []string
}

// New builds an Extractor from the embedded vocabulary. It panics if the
// vocabulary file is missing a required table, which only happens when the
// embedded data is out of step with the code.
func New() *Extractor {
	return &Extractor{
		sectionMap:     vocab.MustPatterns("section_map"),
		lineImportance: vocab.MustPatterns("line_importance"),
		softSkills:     vocab.MustTable("soft_skills"),
		verbishStart:   vocab.MustTable("verbish_start"),
		bannedSingles:  vocab.MustTableSet("banned_singles"),
		stopwords:      vocab.MustTableSet("stopwords"),
		toolyWords:     vocab.MustTable("tooly_words"),
		vendorWords:    vocab.MustTable("vendor_words"),
		productWords:   vocab.MustTable("product_words"),
	}
}

// Extract folds over the blocks in order, tracking the importance implied by
// the most recent heading, and collects deduplicated requirement facts.
func (e *Extractor) Extract(blocks []segment.Block) Result {
	hasBullets := false
	for _, b := range blocks {
		if b.Kind == segment.KindBullet {
			hasBullets = true
			break
		}
	}

	var (
		hardSkills = newDedupe[Item]()
		tools      = newDedupe[Item]()
		certs      = newDedupe[Item]()
		degrees    = newDedupe[Degree]()
		years      = newDedupe[YearsExperience]()
		soft       = newDedupe[Item]()
	)

	section := ImportanceUnknown
	for _, b := range blocks {
		norm := segment.Normalize(b.Text)

		if b.Kind == segment.KindHeading {
			if imp, ok := e.sectionImportance(norm); ok {
				section = imp
			}
			continue
		}

		imp := e.lineImportanceOf(norm, section)

		if y, ok := extractYears(b.Text, imp); ok {
			years.add(y)
		}
		for _, d := range extractDegrees(b.Text, imp) {
			degrees.add(d)
		}
		for _, c := range e.extractCerts(b.Text, imp) {
			certs.add(c)
		}
		for _, s := range e.softSkills {
			if strings.Contains(norm, s) {
				soft.add(Item{Name: s, Evidence: b.Text, Importance: imp})
			}
		}

		if b.Kind == segment.KindBullet || (!hasBullets && len(b.Text) <= maxSkillTextLength) {
			skills, toolItems := e.extractSkills(b.Text, imp)
			for _, it := range skills {
				hardSkills.add(it)
			}
			for _, it := range toolItems {
				tools.add(it)
			}
		}
	}

	return Result{
		HardSkills:      hardSkills.items,
		ToolsOrSystems:  tools.items,
		Certifications:  certs.items,
		Degrees:         degrees.items,
		YearsExperience: years.items,
		SoftSkills:      soft.items,
	}
}

// sectionImportance maps a heading to the importance of the lines under it.
// A heading that matches nothing leaves the running context unchanged.
func (e *Extractor) sectionImportance(normHeading string) (Importance, bool) {
	for _, p := range e.sectionMap {
		if p.Re.MatchString(normHeading) {
			return Importance(p.Name), true
		}
	}
	return ImportanceUnknown, false
}

// lineImportanceOf resolves a line's own importance cue, falling back to the
// surrounding section context. A line stating a years floor while the context
// is still unknown counts as must, since an experience floor is presumptively
// mandatory.
func (e *Extractor) lineImportanceOf(normLine string, section Importance) Importance {
	for _, p := range e.lineImportance {
		if p.Re.MatchString(normLine) {
			return Importance(p.Name)
		}
	}
	if section == ImportanceUnknown && yearsRe.MatchString(normLine) {
		return ImportanceMust
	}
	return section
}

func extractYears(line string, imp Importance) (YearsExperience, bool) {
	m := yearsRe.FindStringSubmatch(line)
	if m == nil {
		return YearsExperience{}, false
	}
	n, err := strconv.Atoi(m[2])
	if err != nil || n == 0 {
		return YearsExperience{}, false
	}

	domain := ""
	if dm := yearsDomainRe.FindStringSubmatch(line); dm != nil {
		domain = strings.ToLower(cleanName(truncateTail(dm[1])))
	}

	name := strconv.Itoa(n) + "+ years"
	if domain != "" {
		name += " (" + domain + ")"
	}

	return YearsExperience{
		Item:     Item{Name: name, Evidence: line, Importance: imp},
		MinYears: n,
		Domain:   domain,
	}, true
}

func extractDegrees(line string, imp Importance) []Degree {
	loc := degreeRe.FindStringSubmatchIndex(line)
	if loc == nil {
		return nil
	}
	level := strings.ToLower(line[loc[2]:loc[3]])
	if level == "masters" {
		level = "master"
	}

	field := ""
	if fm := degreeFieldRe.FindStringSubmatch(line[loc[1]:]); fm != nil {
		field = strings.ToLower(cleanName(fm[1]))
	}

	name := level
	if field != "" {
		name = level + " (" + field + ")"
	}
	return []Degree{{
		Item:  Item{Name: name, Evidence: line, Importance: imp},
		Level: level,
		Field: field,
	}}
}

// extractCerts fires only on lines carrying a certification cue. It harvests
// both the phrase following the cue word and any uppercase acronyms on the
// original-case line.
func (e *Extractor) extractCerts(line string, imp Importance) []Item {
	if !certCueRe.MatchString(line) {
		return nil
	}

	var items []Item
	if m := certPhraseRe.FindStringSubmatch(line); m != nil {
		for _, part := range splitList(m[1]) {
			name := strings.ToLower(part)
			if e.looksLikeJunk(name) {
				continue
			}
			items = append(items, Item{Name: name, Evidence: line, Importance: imp})
		}
	}

	for _, acr := range certAcronymRe.FindAllString(line, -1) {
		name := strings.ToLower(acr)
		if name == "it" || e.stopwords[name] {
			continue
		}
		items = append(items, Item{Name: name, Evidence: line, Importance: imp})
	}
	return items
}

// extractSkills pulls list tails from skill cue phrases and classifies each
// cleaned candidate as a tool/system or a hard skill.
func (e *Extractor) extractSkills(line string, imp Importance) (skills, tools []Item) {
	m := skillCueRe.FindStringSubmatch(line)
	if m == nil {
		return nil, nil
	}

	for _, part := range splitList(m[2]) {
		if sm := suchAsRe.FindStringSubmatch(part); sm != nil {
			part = cleanName(sm[1])
		}
		part = trailingCueRe.ReplaceAllString(part, "")
		part = cleanName(toolWordRe.ReplaceAllString(part, " "))
		if len(part) < 2 {
			continue
		}
		if verbStartRe.MatchString(part) {
			continue
		}
		name := strings.ToLower(part)
		if e.looksLikeJunk(name) {
			continue
		}

		it := Item{Name: name, Evidence: line, Importance: imp}
		if e.isToolOrSystem(part) {
			tools = append(tools, it)
		} else {
			skills = append(skills, it)
		}
	}
	return skills, tools
}

// isToolOrSystem classifies a candidate by shape (a bare acronym like AWS or
// S3) or by vocabulary (platform nouns, vendor and product names).
func (e *Extractor) isToolOrSystem(candidate string) bool {
	if acronymToolRe.MatchString(candidate) {
		return true
	}
	lower := strings.ToLower(candidate)
	for _, w := range e.toolyWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	for _, w := range e.vendorWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	for _, w := range e.productWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// looksLikeJunk rejects candidates that name a duty or a vague business
// concept rather than a skill. Operates on a lowercased candidate.
func (e *Extractor) looksLikeJunk(name string) bool {
	name = normalizeDashes(name)
	if len(name) < 3 {
		return true
	}
	for _, prefix := range e.verbishStart {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	words := strings.Fields(name)
	if len(words) == 1 && (e.bannedSingles[name] || e.stopwords[name]) {
		return true
	}
	if junkPhraseRe.MatchString(name) || engineerLedRe.MatchString(name) || toInfinitiveRe.MatchString(name) {
		return true
	}
	if bareSolutionRe.MatchString(name) && len(words) <= 3 {
		return true
	}
	if vagueEnvRe.MatchString(name) && len(words) <= 2 {
		return true
	}
	if name == "cloud platform" || name == "cloud platforms" {
		return true
	}
	return false
}

// splitList breaks a cue tail into candidate names. The tail is first
// truncated at sentence or parenthetical boundaries, then split on list
// separators, with each piece cleaned.
func splitList(tail string) []string {
	tail = truncateTail(tail)
	var out []string
	for _, part := range listSplitRe.Split(tail, -1) {
		part = cleanName(part)
		if len(part) >= 2 {
			out = append(out, part)
		}
	}
	return out
}

// truncateTail cuts a captured tail at the first boundary that ends the list:
// sentence punctuation, a new bullet glyph, or an opening parenthetical.
func truncateTail(tail string) string {
	cut := len(tail)
	for _, b := range []string{".", "\n", "•", "·", "|", "("} {
		if i := strings.Index(tail, b); i >= 0 && i < cut {
			cut = i
		}
	}
	return tail[:cut]
}

// cleanName strips bullet glyphs, collapses whitespace, and trims trailing
// punctuation, preserving the original case.
func cleanName(s string) string {
	s = strings.ReplaceAll(s, "•", " ")
	s = spaceRe.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	s = trailingPunctRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// normalizeDashes folds unicode hyphen variants and non-breaking spaces so
// junk patterns match regardless of the source page's typography.
func normalizeDashes(s string) string {
	r := strings.NewReplacer("‐", "-", "–", "-", "—", "-", " ", " ")
	return r.Replace(s)
}
