package letter

import (
	"regexp"
	"strings"
)

// maxAchievements bounds the achievement list pulled into the letter.
const maxAchievements = 3

// Highlights is the narrative material extracted from a CV: the most recent
// role, quantified achievements, and the professional summary.
type Highlights struct {
	CurrentRole     string   `json:"current_role"`
	CurrentCompany  string   `json:"current_company"`
	KeyAchievements []string `json:"key_achievements"`
	YearsExperience string   `json:"years_experience"`
	Summary         string   `json:"summary"`
}

// achievementPatterns recognize quantified-impact lines: currency amounts,
// percentages, N→M growth notation, and award mentions.
var achievementPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\$\d+[MBK]?`),
	regexp.MustCompile(`\d+%`),
	regexp.MustCompile(`\d+→\d+`),
	regexp.MustCompile(`(?i)won|winner|award`),
}

var yearsRe = regexp.MustCompile(`(\d+\+?)\s+years`)

// contactMarkers disqualify a header line from being the summary sentence.
var contactMarkers = []string{"linkedin", "@", "http"}

// ExtractHighlights derives Highlights from the CV body. All extraction is
// best-effort: a CV without the expected markers yields zero values.
func ExtractHighlights(cvText string) Highlights {
	var h Highlights
	lines := strings.Split(cvText, "\n")

	// The most recent role is the first job-entry line: "### Title | Company | Dates".
	for _, line := range lines {
		if !strings.HasPrefix(line, "### ") {
			continue
		}
		entry := strings.TrimSpace(strings.TrimPrefix(line, "### "))
		parts := strings.Split(entry, "|")
		if len(parts) >= 2 {
			h.CurrentRole = strings.TrimSpace(parts[0])
			h.CurrentCompany = strings.TrimSpace(parts[1])
		}
		break
	}

	// The summary is the first substantial header-block line that is not a
	// title, emphasis, or contact line.
	for _, line := range lines {
		if strings.HasPrefix(line, "## ") {
			break
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "**") {
			continue
		}
		if containsAny(strings.ToLower(trimmed), contactMarkers) {
			continue
		}
		if len(trimmed) > 50 {
			h.Summary = trimmed
			break
		}
	}

	if m := yearsRe.FindStringSubmatch(cvText); m != nil {
		h.YearsExperience = m[1]
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "-") && !strings.HasPrefix(trimmed, "**Impact") {
			continue
		}
		if !matchesAny(trimmed, achievementPatterns) {
			continue
		}
		achievement := strings.TrimSpace(strings.TrimLeft(trimmed, "-* "))
		if len(achievement) > 20 {
			h.KeyAchievements = append(h.KeyAchievements, achievement)
			if len(h.KeyAchievements) >= maxAchievements {
				break
			}
		}
	}

	return h
}

func containsAny(s string, markers []string) bool {
	for _, marker := range markers {
		if strings.Contains(s, marker) {
			return true
		}
	}
	return false
}

func matchesAny(s string, patterns []*regexp.Regexp) bool {
	for _, pattern := range patterns {
		if pattern.MatchString(s) {
			return true
		}
	}
	return false
}
