// Package tailor reorders parsed CV sections into a canonical, ATS-friendly
// layout and reorders skill items by relevance to the target keywords.
package tailor

import (
	"context"
	"sort"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/davidlpuk/cv-tailor/internal/keywords"
	"github.com/davidlpuk/cv-tailor/internal/sections"
	"github.com/davidlpuk/cv-tailor/internal/similarity"
)

// category maps a canonical output slot to the source section names it
// accepts. Matching is exact or alias-substring-of-name, case-insensitive.
type category struct {
	name    string
	aliases []string
}

// categoryOrder is the canonical output order. Tools, skills and
// capabilities sections get their items reordered by relevance; everything
// else is copied verbatim.
var categoryOrder = []category{
	{"header", []string{"header"}},
	{"summary", []string{"summary", "profile", "about"}},
	{"capabilities", []string{"core capabilities", "capabilities", "key skills", "competencies"}},
	{"experience", []string{"professional experience", "experience", "work history", "employment"}},
	{"earlier_career", []string{"earlier career", "previous experience", "career history"}},
	{"tools", []string{"tools & methods", "tools and methods", "tools", "technologies", "tech stack"}},
	{"skills", []string{"skills", "technical skills", "expertise"}},
	{"education", []string{"education", "education & development", "qualifications", "certifications"}},
	{"personal", []string{"personal", "interests", "hobbies", "about me"}},
}

// skillCategories are the slots whose bodies hold discrete skill items.
var skillCategories = map[string]bool{
	"tools":        true,
	"skills":       true,
	"capabilities": true,
}

// Reorganizer reassembles sections into canonical order. Skill reordering
// consults the injected similarity provider.
type Reorganizer struct {
	sim    similarity.Provider
	logger *zap.Logger
}

// New creates a Reorganizer.
func New(sim similarity.Provider, logger *zap.Logger) *Reorganizer {
	return &Reorganizer{sim: sim, logger: logger}
}

// Reorganize emits the sections in canonical order, one section per
// category, then appends all remaining non-empty sections in their original
// document order under Title-cased headers. Every non-empty input section
// appears exactly once in the output.
func (r *Reorganizer) Reorganize(ctx context.Context, secs *sections.Map, target keywords.Set) string {
	var parts []string
	consumed := map[string]bool{}

	for _, cat := range categoryOrder {
		for _, name := range secs.Names() {
			if consumed[name] || !matchesCategory(name, cat.aliases) {
				continue
			}
			consumed[name] = true

			body, _ := secs.Body(name)
			if strings.TrimSpace(body) == "" {
				continue
			}
			switch {
			case cat.name == "header":
				// The header keeps its own title line, no ## prefix.
				parts = append(parts, body)
			case skillCategories[cat.name]:
				parts = append(parts, "## "+titleCase(name), r.ReorderSkills(ctx, body, target))
			default:
				parts = append(parts, "## "+titleCase(name), body)
			}
			parts = append(parts, "")
			break
		}
	}

	for _, name := range secs.Names() {
		body, _ := secs.Body(name)
		if consumed[name] || strings.TrimSpace(body) == "" {
			continue
		}
		parts = append(parts, "## "+titleCase(name), body, "")
	}

	if r.logger != nil {
		r.logger.Debug("reassembled sections", zap.Int("consumed", len(consumed)), zap.Int("total", secs.Len()))
	}

	return strings.TrimRight(strings.Join(parts, "\n"), "\n")
}

// ReorderSkills sorts the recognized skill items of a section body by
// similarity to the combined target keywords, most relevant first. The sort
// is stable: equally similar items keep their source order. Lines that are
// not skill items (neither bold-prefixed nor bulleted) do not participate
// and are dropped from the result; a body with no recognized items comes
// back unchanged.
func (r *Reorganizer) ReorderSkills(ctx context.Context, body string, target keywords.Set) string {
	var items []string
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "**") || strings.HasPrefix(trimmed, "-") {
			items = append(items, trimmed)
		}
	}
	if len(items) == 0 {
		return body
	}

	targetText := strings.Join(append(target.HardSkills.Sorted(), target.SoftSkills.Sorted()...), " ")

	scores := make([]float64, len(items))
	for i, item := range items {
		value, err := r.sim.Similarity(ctx, item, targetText)
		if err != nil {
			if r.logger != nil {
				r.logger.Warn("skill item similarity failed, keeping source position",
					zap.String("item", item),
					zap.Error(err),
				)
			}
			value = 0
		}
		scores[i] = value
	}

	order := make([]int, len(items))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	reordered := make([]string, len(items))
	for i, idx := range order {
		reordered[i] = items[idx]
	}
	return strings.Join(reordered, "\n")
}

// matchesCategory reports whether a section name belongs to the alias set:
// an exact match, or any alias appearing inside the name.
func matchesCategory(name string, aliases []string) bool {
	for _, alias := range aliases {
		if name == alias || strings.Contains(name, alias) {
			return true
		}
	}
	return false
}

// titleCase capitalizes the first letter of each word.
func titleCase(s string) string {
	var b strings.Builder
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) && !prevLetter {
			b.WriteRune(unicode.ToUpper(r))
		} else {
			b.WriteRune(unicode.ToLower(r))
		}
		prevLetter = unicode.IsLetter(r)
	}
	return b.String()
}
