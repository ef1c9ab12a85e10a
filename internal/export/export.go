// Package export renders generated artifacts in the supported output
// formats: the markdown dialect verbatim, a stripped plain-text variant, and
// a single-column PDF laid out for applicant-tracking parsers.
package export

import (
	"errors"
	"regexp"
	"strings"
)

// Format identifies an export format.
type Format string

const (
	FormatMarkdown Format = "md"
	FormatText     Format = "txt"
	FormatPDF      Format = "pdf"
)

// ErrUnavailable signals that a format cannot be produced in this build or
// environment. Other formats remain usable.
var ErrUnavailable = errors.New("export format unavailable")

var (
	boldRe    = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicRe  = regexp.MustCompile(`\*(.*?)\*`)
	headingRe = regexp.MustCompile(`(?m)^#{1,3}\s*`)
)

// Markdown returns the artifact in its native dialect, unchanged.
func Markdown(content string) []byte {
	return []byte(content)
}

// PlainText strips the markup characters, leaving bullets intact.
func PlainText(content string) string {
	out := headingRe.ReplaceAllString(content, "")
	out = boldRe.ReplaceAllString(out, "$1")
	out = italicRe.ReplaceAllString(out, "$1")
	return out
}

// Render produces the artifact bytes for the requested format.
func Render(content string, format Format) ([]byte, error) {
	switch format {
	case FormatMarkdown:
		return Markdown(content), nil
	case FormatText:
		return []byte(PlainText(content)), nil
	case FormatPDF:
		return PDF(content)
	default:
		return nil, errors.New("unknown export format: " + string(format))
	}
}

// Extension returns the file extension for a format.
func Extension(format Format) string {
	return "." + string(format)
}

// stripInline removes inline emphasis markers for renderers without rich
// text support.
func stripInline(line string) string {
	line = boldRe.ReplaceAllString(line, "$1")
	return italicRe.ReplaceAllString(line, "$1")
}

// ParseFormats validates a list of format names.
func ParseFormats(names []string) ([]Format, error) {
	formats := make([]Format, 0, len(names))
	for _, name := range names {
		switch Format(strings.ToLower(strings.TrimSpace(name))) {
		case FormatMarkdown:
			formats = append(formats, FormatMarkdown)
		case FormatText:
			formats = append(formats, FormatText)
		case FormatPDF:
			formats = append(formats, FormatPDF)
		default:
			return nil, errors.New("unknown export format: " + name)
		}
	}
	return formats, nil
}
