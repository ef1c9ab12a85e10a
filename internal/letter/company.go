// Package letter extracts narrative material from a CV and a job posting and
// fills the cover-letter template. Every fact in the letter comes from the
// source documents; nothing is fabricated.
package letter

import (
	"regexp"
	"strings"
)

// TitlePlaceholder is used when no job title can be found in the posting.
const TitlePlaceholder = "the advertised position"

// CompanyInfo is what could be recovered from a job posting. Fields are
// empty strings when extraction fails, never absent.
type CompanyInfo struct {
	CompanyName  string `json:"company_name"`
	ContactEmail string `json:"contact_email"`
	Location     string `json:"location"`
	JobTitle     string `json:"job_title"`
}

var (
	titleTrailerRe = regexp.MustCompile(`\s*[-–—].*$`)
	titleHashRe    = regexp.MustCompile(`^#*\s*`)

	titlePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?im)^([A-Za-z][^\n]{5,60})(?:\s*[-–—]|\n)`),
		regexp.MustCompile(`(?i)(?:position|role|job title|title)[:\s]+([A-Za-z][^\n]{5,60})`),
		regexp.MustCompile(`(?i)(?:hiring|looking for|seeking)[\s:]+(?:a\s+)?([A-Za-z][^\n]{5,50})`),
	}

	companyPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)about\s+(?:us\s+at\s+)?([A-Za-z][a-zA-Z0-9\s&]+?)(?:\.|,|\n)`),
		regexp.MustCompile(`(?i)join\s+(?:us\s+at\s+)?([A-Za-z][a-zA-Z0-9\s&]+?)(?:\.|,|\n)`),
		regexp.MustCompile(`(?i)([A-Za-z][a-zA-Z0-9]+)\s+is\s+(?:a\s+)?(?:looking|hiring|seeking)`),
		regexp.MustCompile(`(?i)at\s+([A-Za-z][a-zA-Z0-9\s&]+?)\s+we`),
	}

	emailRe = regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`)

	locationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:location|based in|office in)[:|\s]+([A-Za-z ,]+)`),
		regexp.MustCompile(`(?i)(London|New York|San Francisco|Berlin|Remote|Hybrid)`),
	}
)

// ExtractJobTitle pulls the job title from a posting, preferring the first
// plausible leading line and falling back to labelled-title patterns. Always
// returns something printable.
func ExtractJobTitle(jobDesc string) string {
	lines := strings.Split(strings.TrimSpace(jobDesc), "\n")
	if len(lines) > 5 {
		lines = lines[:5]
	}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)
		if strings.HasPrefix(lower, "about") || strings.HasPrefix(lower, "we ") || strings.HasPrefix(lower, "our ") {
			continue
		}
		title := titleTrailerRe.ReplaceAllString(line, "")
		title = titleHashRe.ReplaceAllString(title, "")
		if len(title) > 10 && len(title) < 80 {
			return title
		}
	}

	for _, pattern := range titlePatterns {
		if m := pattern.FindStringSubmatch(jobDesc); m != nil {
			title := strings.TrimSpace(m[1])
			if len(title) > 10 {
				return title
			}
		}
	}

	return TitlePlaceholder
}

// ExtractCompanyInfo recovers company name, contact email and location from
// a job posting. All extraction is best-effort; missing pieces stay empty.
func ExtractCompanyInfo(jobDesc string) CompanyInfo {
	info := CompanyInfo{JobTitle: ExtractJobTitle(jobDesc)}

	for _, pattern := range companyPatterns {
		if m := pattern.FindStringSubmatch(jobDesc); m != nil {
			info.CompanyName = strings.TrimSpace(m[1])
			break
		}
	}

	if m := emailRe.FindString(jobDesc); m != "" {
		info.ContactEmail = m
	}

	for _, pattern := range locationPatterns {
		if m := pattern.FindStringSubmatch(jobDesc); m != nil {
			info.Location = strings.TrimSpace(m[1])
			break
		}
	}

	return info
}
