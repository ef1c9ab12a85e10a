package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
)

// PDF layout constants. Single column, standard fonts, no images, tables or
// color: the formatting applicant-tracking parsers handle best.
const (
	pdfMargin       = 19.0 // mm, ~0.75in
	titleFontSize   = 16.0
	headingFontSize = 12.0
	bodyFontSize    = 10.0
	bodyLineHeight  = 5.0
)

// PDF renders the markdown-dialect content as a paginated A4 document.
// Title, heading, sub-entry, bold, bullet and italic lines map to the
// corresponding styles; anything else renders as body text with inline
// markers stripped.
func PDF(content string) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	doc.SetAutoPageBreak(true, pdfMargin)
	doc.AddPage()

	tr := doc.UnicodeTranslatorFromDescriptor("")

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)

		switch {
		case line == "":
			doc.Ln(3)
		case strings.HasPrefix(line, "# "):
			doc.SetFont("Helvetica", "B", titleFontSize)
			doc.MultiCell(0, 7, tr(strings.TrimPrefix(line, "# ")), "", "L", false)
			doc.Ln(1)
		case strings.HasPrefix(line, "## "):
			doc.Ln(3)
			doc.SetFont("Helvetica", "B", headingFontSize)
			doc.MultiCell(0, 6, tr(strings.TrimPrefix(line, "## ")), "", "L", false)
			doc.Ln(1)
		case strings.HasPrefix(line, "### "):
			doc.SetFont("Helvetica", "B", bodyFontSize)
			doc.MultiCell(0, bodyLineHeight, tr(strings.TrimPrefix(line, "### ")), "", "L", false)
		case strings.HasPrefix(line, "**") && strings.HasSuffix(line, "**"):
			doc.SetFont("Helvetica", "B", bodyFontSize)
			doc.MultiCell(0, bodyLineHeight, tr(stripInline(line)), "", "L", false)
		case strings.HasPrefix(line, "- "):
			doc.SetFont("Helvetica", "", bodyFontSize)
			doc.MultiCell(0, bodyLineHeight, tr("• "+stripInline(strings.TrimPrefix(line, "- "))), "", "L", false)
		case strings.HasPrefix(line, "*") && strings.HasSuffix(line, "*"):
			doc.SetFont("Helvetica", "I", bodyFontSize)
			doc.MultiCell(0, bodyLineHeight, tr(stripInline(line)), "", "L", false)
		default:
			doc.SetFont("Helvetica", "", bodyFontSize)
			doc.MultiCell(0, bodyLineHeight, tr(stripInline(line)), "", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return buf.Bytes(), nil
}
