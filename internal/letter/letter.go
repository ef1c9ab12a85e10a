package letter

import (
	"fmt"
	"strings"
	"time"

	"github.com/davidlpuk/cv-tailor/internal/keywords"
)

// UserInfo identifies the applicant signing the letter.
type UserInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// leadershipWords drives the tone classifier over the job title: a
// leadership title switches both letter clauses from their design-flavored
// defaults.
var leadershipWords = []string{"head", "director", "lead", "senior", "manager", "principal"}

const defaultSummary = "With extensive experience in design leadership across financial services and technology, " +
	"I am confident in my ability to contribute significantly to your team."

// Generate fills the cover-letter template from CV highlights, company info
// and the target keyword set. Output is deterministic for a given date; only
// facts present in the source CV appear in the letter.
func Generate(h Highlights, company CompanyInfo, target keywords.Set, user UserInfo, date time.Time) string {
	companyName := strings.TrimSpace(company.CompanyName)
	jobTitle := company.JobTitle
	if jobTitle == "" {
		jobTitle = TitlePlaceholder
	}

	currentRole := h.CurrentRole
	if currentRole == "" {
		currentRole = "my current role"
	}
	currentCompany := h.CurrentCompany
	if currentCompany == "" {
		currentCompany = "my current company"
	}

	summary := h.Summary
	if summary == "" {
		summary = defaultSummary
	}

	isLeadership := titleContains(jobTitle, leadershipWords)

	skillsText := joinSkills(target.HardSkills.Sorted(), 3)
	if skillsText == "" {
		skillsText = "product design"
	}

	achievementText := ""
	if len(h.KeyAchievements) > 0 {
		top := h.KeyAchievements
		if len(top) > 2 {
			top = top[:2]
		}
		achievementText = " Key highlights include: " + strings.Join(top, "; ") + "."
	}

	greeting := "Dear Hiring Manager,"
	atCompany := ""
	benefits := "your organization"
	if companyName != "" {
		greeting = fmt.Sprintf("Dear Hiring Manager at %s,", companyName)
		atCompany = " at " + companyName
		benefits = companyName
	}

	// Leadership takes precedence, so a title like "Head of Design" reads
	// with the leadership sentence structure. Every other title, design or
	// not, gets the design-flavored clauses.
	capabilityClause := "contribute immediately while also thinking strategically about design systems and user experience"
	drawClause := "the focus on creating exceptional user experiences"
	if isLeadership {
		capabilityClause = "scale teams and establish design practices while maintaining craft quality"
		drawClause = "the chance to shape design direction at a senior level"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s\n%s\n\n", user.Name, user.Email, date.Format("January 02, 2006"))
	fmt.Fprintf(&b, "%s\n\n", greeting)
	fmt.Fprintf(&b, "I am writing to express my strong interest in the **%s** position%s. %s\n\n", jobTitle, atCompany, summary)
	fmt.Fprintf(&b, "In my most recent role as **%s** at **%s**, I have developed deep expertise in %s.%s\n\n",
		currentRole, currentCompany, skillsText, achievementText)
	fmt.Fprintf(&b, "My background spans both strategic leadership and hands-on delivery, which allows me to %s. "+
		"I am particularly drawn to this opportunity because of %s.\n\n", capabilityClause, drawClause)
	fmt.Fprintf(&b, "Thank you for considering my application. I would welcome the opportunity to discuss "+
		"how my experience and approach could benefit %s.\n\n", benefits)
	fmt.Fprintf(&b, "Best regards,\n%s", user.Name)

	return b.String()
}

func titleContains(title string, words []string) bool {
	lower := strings.ToLower(title)
	for _, word := range words {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}

func joinSkills(skills []string, limit int) string {
	if len(skills) > limit {
		skills = skills[:limit]
	}
	return strings.Join(skills, ", ")
}
