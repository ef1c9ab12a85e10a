// Package pipeline wires the extraction, parsing, tailoring, narrative and
// scoring components into one stateless request/response run. The pipeline
// holds only shared read-only resources; all per-run state lives in the
// Request and Result, so callers own any caching between invocations.
package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/davidlpuk/cv-tailor/internal/keywords"
	"github.com/davidlpuk/cv-tailor/internal/letter"
	"github.com/davidlpuk/cv-tailor/internal/scoring"
	"github.com/davidlpuk/cv-tailor/internal/sections"
	"github.com/davidlpuk/cv-tailor/internal/similarity"
	"github.com/davidlpuk/cv-tailor/internal/tailor"
)

// Request carries one CV/job-description pair through the pipeline. Date
// stamps the cover letter; a zero Date means "today".
type Request struct {
	CVText  string
	JobText string
	User    letter.UserInfo
	Date    time.Time
}

// Result holds every artifact of one run.
type Result struct {
	ID          uuid.UUID          `json:"id"`
	Resume      string             `json:"resume"`
	CoverLetter string             `json:"cover_letter"`
	Score       scoring.Breakdown  `json:"score"`
	CVKeywords  keywords.Set       `json:"cv_keywords"`
	JobKeywords keywords.Set       `json:"job_keywords"`
	Company     letter.CompanyInfo `json:"company"`
}

// Pipeline is the assembled tool. Construct once with New and reuse; it is
// safe for concurrent runs.
type Pipeline struct {
	extractor   *keywords.Extractor
	scorer      *scoring.Scorer
	reorganizer *tailor.Reorganizer
	logger      *zap.Logger
}

// New assembles a pipeline around the shared extractor and similarity
// provider.
func New(extractor *keywords.Extractor, sim similarity.Provider, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		extractor:   extractor,
		scorer:      scoring.New(sim, logger),
		reorganizer: tailor.New(sim, logger),
		logger:      logger,
	}
}

// step is one named pipeline stage; the runner logs each stage with its
// duration so slow runs are diagnosable.
type step struct {
	name string
	run  func() error
}

// Run executes the full pipeline for one request.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Result, error) {
	if req.CVText == "" {
		return nil, errors.New("cv text is required")
	}
	if req.JobText == "" {
		return nil, errors.New("job description text is required")
	}

	date := req.Date
	if date.IsZero() {
		date = time.Now()
	}

	result := &Result{ID: uuid.New()}
	var parsed *sections.Map

	steps := []step{
		{"extract_cv_keywords", func() error {
			result.CVKeywords = p.extractor.Extract(req.CVText)
			return nil
		}},
		{"extract_job_keywords", func() error {
			result.JobKeywords = p.extractor.Extract(req.JobText)
			return nil
		}},
		{"extract_company_info", func() error {
			result.Company = letter.ExtractCompanyInfo(req.JobText)
			return nil
		}},
		{"parse_sections", func() error {
			parsed = sections.Parse(req.CVText)
			return nil
		}},
		{"tailor_resume", func() error {
			result.Resume = p.reorganizer.Reorganize(ctx, parsed, result.JobKeywords)
			return nil
		}},
		{"cover_letter", func() error {
			highlights := letter.ExtractHighlights(req.CVText)
			result.CoverLetter = letter.Generate(highlights, result.Company, result.JobKeywords, req.User, date)
			return nil
		}},
		{"score", func() error {
			result.Score = p.scorer.Score(ctx, req.CVText, req.JobText, result.CVKeywords, result.JobKeywords)
			return nil
		}},
	}

	for _, s := range steps {
		started := time.Now()
		if err := s.run(); err != nil {
			return nil, err
		}
		p.logger.Debug("pipeline step",
			zap.String("name", s.name),
			zap.Duration("took", time.Since(started)),
		)
	}

	p.logger.Info("pipeline run complete",
		zap.String("run_id", result.ID.String()),
		zap.Float64("score", result.Score.Total),
		zap.Int("sections", parsed.Len()),
	)

	return result, nil
}

// ScoreOnly recomputes the score for caller-held texts, the stateless
// equivalent of re-scoring after a manual edit.
func (p *Pipeline) ScoreOnly(ctx context.Context, cvText, jobText string) (scoring.Breakdown, error) {
	if cvText == "" {
		return scoring.Breakdown{}, errors.New("cv text is required")
	}
	if jobText == "" {
		return scoring.Breakdown{}, errors.New("job description text is required")
	}

	cvKW := p.extractor.Extract(cvText)
	jobKW := p.extractor.Extract(jobText)
	return p.scorer.Score(ctx, cvText, jobText, cvKW, jobKW), nil
}
