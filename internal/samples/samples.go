// Package samples embeds a demo CV and job description for trying the tool
// without any input files.
package samples

import _ "embed"

//go:embed sample_cv.md
var CV string

//go:embed sample_job.md
var Job string
