package letter

import "testing"

func TestExtractJobTitleFromLeadingLine(t *testing.T) {
	t.Parallel()

	job := "# Senior Product Designer - Fintech\n\nAbout the role...\n"
	if got := ExtractJobTitle(job); got != "Senior Product Designer" {
		t.Fatalf("unexpected title: %q", got)
	}
}

func TestExtractJobTitleSkipsBoilerplateLines(t *testing.T) {
	t.Parallel()

	job := "About Borealis\nWe are a growing fintech.\nOur mission is bold.\nLead Product Designer (Payments)\n"
	if got := ExtractJobTitle(job); got != "Lead Product Designer (Payments)" {
		t.Fatalf("unexpected title: %q", got)
	}
}

func TestExtractJobTitlePlaceholder(t *testing.T) {
	t.Parallel()

	if got := ExtractJobTitle("short\ntext"); got != TitlePlaceholder {
		t.Fatalf("expected placeholder, got %q", got)
	}
}

func TestExtractCompanyInfo(t *testing.T) {
	t.Parallel()

	job := "Senior Product Designer Wanted\n\nAbout Borealis.\nWe build payment tools.\nLocation: London\nApply to careers@borealis.example.com\n"
	info := ExtractCompanyInfo(job)

	if info.CompanyName != "Borealis" {
		t.Fatalf("unexpected company: %q", info.CompanyName)
	}
	if info.ContactEmail != "careers@borealis.example.com" {
		t.Fatalf("unexpected email: %q", info.ContactEmail)
	}
	if info.Location != "London" {
		t.Fatalf("unexpected location: %q", info.Location)
	}
	if info.JobTitle != "Senior Product Designer Wanted" {
		t.Fatalf("unexpected job title: %q", info.JobTitle)
	}
}

func TestExtractCompanyInfoEmptyWhenAbsent(t *testing.T) {
	t.Parallel()

	info := ExtractCompanyInfo("An entirely generic posting with no markers whatsoever.")

	if info.CompanyName != "" || info.ContactEmail != "" {
		t.Fatalf("expected empty fields, got %+v", info)
	}
}
