package pipeline

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/davidlpuk/cv-tailor/internal/keywords"
	"github.com/davidlpuk/cv-tailor/internal/letter"
	"github.com/davidlpuk/cv-tailor/internal/nlp"
	"github.com/davidlpuk/cv-tailor/internal/samples"
	"github.com/davidlpuk/cv-tailor/internal/similarity"
)

// ruleOnlyAnnotator keeps pipeline tests free of the language model.
type ruleOnlyAnnotator struct{}

func (ruleOnlyAnnotator) Annotate(string) ([]nlp.Token, []nlp.Entity, error) {
	return nil, nil, nil
}

func newTestPipeline(t *testing.T) *Pipeline {
	t.Helper()

	rules, err := keywords.DefaultRules()
	if err != nil {
		t.Fatalf("compiling rules: %v", err)
	}

	extractor := keywords.NewExtractor(ruleOnlyAnnotator{}, rules, zap.NewNop())
	return New(extractor, similarity.NewLexical(), zap.NewNop())
}

func TestRunSampleDocuments(t *testing.T) {
	t.Parallel()

	p := newTestPipeline(t)

	result, err := p.Run(context.Background(), Request{
		CVText:  samples.CV,
		JobText: samples.Job,
		User:    letter.UserInfo{Name: "Alex Morgan", Email: "alex@example.com"},
		Date:    time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("running pipeline: %v", err)
	}

	if result.ID == uuid.Nil {
		t.Fatalf("expected a run id")
	}
	if result.Resume == "" {
		t.Fatalf("expected a tailored resume")
	}
	if !strings.Contains(result.CoverLetter, "Alex Morgan") {
		t.Fatalf("expected the applicant name in the letter:\n%s", result.CoverLetter)
	}
	if !strings.Contains(result.CoverLetter, "June 01, 2025") {
		t.Fatalf("expected the request date in the letter:\n%s", result.CoverLetter)
	}
	if result.Score.Total <= 0 || result.Score.Total > 100 {
		t.Fatalf("score out of range: %v", result.Score.Total)
	}
	if len(result.JobKeywords.HardSkills) == 0 {
		t.Fatalf("expected hard skills extracted from the sample job")
	}
}

func TestRunDeterministicForFixedDate(t *testing.T) {
	t.Parallel()

	p := newTestPipeline(t)
	req := Request{
		CVText:  samples.CV,
		JobText: samples.Job,
		Date:    time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
	}

	first, err := p.Run(context.Background(), req)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := p.Run(context.Background(), req)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if first.Resume != second.Resume {
		t.Fatalf("resume not deterministic")
	}
	if first.CoverLetter != second.CoverLetter {
		t.Fatalf("cover letter not deterministic")
	}
	if first.Score.Total != second.Score.Total {
		t.Fatalf("score not deterministic: %v vs %v", first.Score.Total, second.Score.Total)
	}
}

func TestRunRejectsEmptyInputs(t *testing.T) {
	t.Parallel()

	p := newTestPipeline(t)

	if _, err := p.Run(context.Background(), Request{JobText: "job"}); err == nil {
		t.Fatalf("expected error for missing cv text")
	}
	if _, err := p.Run(context.Background(), Request{CVText: "cv"}); err == nil {
		t.Fatalf("expected error for missing job text")
	}
}

func TestScoreOnly(t *testing.T) {
	t.Parallel()

	p := newTestPipeline(t)

	breakdown, err := p.ScoreOnly(context.Background(), samples.CV, samples.Job)
	if err != nil {
		t.Fatalf("scoring: %v", err)
	}
	if breakdown.Total <= 0 || breakdown.Total > 100 {
		t.Fatalf("score out of range: %v", breakdown.Total)
	}

	if _, err := p.ScoreOnly(context.Background(), "", samples.Job); err == nil {
		t.Fatalf("expected error for empty cv text")
	}
	if _, err := p.ScoreOnly(context.Background(), samples.CV, ""); err == nil {
		t.Fatalf("expected error for empty job text")
	}
}
