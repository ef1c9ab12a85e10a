// Package scoring combines keyword overlap, structural compliance and
// semantic relevance into a single 0-100 match score with evidence.
package scoring

import (
	"context"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/davidlpuk/cv-tailor/internal/keywords"
	"github.com/davidlpuk/cv-tailor/internal/sections"
	"github.com/davidlpuk/cv-tailor/internal/similarity"
)

// Component weights. Keyword evidence dominates because it is what
// applicant-tracking parsers key on.
const (
	weightKeywords   = 0.40
	weightSoftSkills = 0.20
	weightStructure  = 0.20
	weightRelevance  = 0.20
)

// structurePoints is awarded per standard section found, capped at 100.
const structurePoints = 20

// standardSections are the section names applicant-tracking systems expect.
// Matching is by substring against the candidate's parsed section names.
var standardSections = []string{"contact", "summary", "experience", "skills", "education"}

// Breakdown is the full score report. Component scores and the weighted
// total all lie in [0, 100]; the total is rounded to one decimal.
type Breakdown struct {
	Keywords   float64 `json:"keywords"`
	SoftSkills float64 `json:"soft_skills"`
	Structure  float64 `json:"structure"`
	Relevance  float64 `json:"relevance"`
	Total      float64 `json:"total"`

	MatchedKeywords []string `json:"matched_keywords"`
	MissingKeywords []string `json:"missing_keywords"`
}

// Scorer computes match scores. It has no failure path: a provider error
// degrades the relevance component to zero instead of aborting the score.
type Scorer struct {
	sim    similarity.Provider
	logger *zap.Logger
}

// New creates a Scorer around the injected similarity provider.
func New(sim similarity.Provider, logger *zap.Logger) *Scorer {
	return &Scorer{sim: sim, logger: logger}
}

// Score rates the candidate text against the target text using the two
// pre-extracted keyword sets.
//
// An empty target category scores 100 by convention: candidates are not
// penalized against a requirement that does not exist.
func (s *Scorer) Score(ctx context.Context, candidateText, targetText string, candidate, target keywords.Set) Breakdown {
	breakdown := Breakdown{
		Keywords:   overlapScore(candidate.HardSkills, target.HardSkills),
		SoftSkills: overlapScore(candidate.SoftSkills, target.SoftSkills),
		Structure:  s.structureScore(candidateText),
		Relevance:  s.relevanceScore(ctx, candidateText, targetText),
	}

	total := breakdown.Keywords*weightKeywords +
		breakdown.SoftSkills*weightSoftSkills +
		breakdown.Structure*weightStructure +
		breakdown.Relevance*weightRelevance
	breakdown.Total = math.Round(total*10) / 10

	breakdown.MatchedKeywords = candidate.HardSkills.Intersect(target.HardSkills).Sorted()
	breakdown.MissingKeywords = target.HardSkills.Diff(candidate.HardSkills).Sorted()

	if s.logger != nil {
		s.logger.Info("score calculated",
			zap.Float64("total", breakdown.Total),
			zap.Float64("keywords", breakdown.Keywords),
			zap.Float64("soft_skills", breakdown.SoftSkills),
			zap.Float64("structure", breakdown.Structure),
			zap.Float64("relevance", breakdown.Relevance),
			zap.Int("matched", len(breakdown.MatchedKeywords)),
			zap.Int("missing", len(breakdown.MissingKeywords)),
		)
	}

	return breakdown
}

// overlapScore is min(1, |candidate ∩ target| / |target|) × 100, with an
// empty target scoring a full 100.
func overlapScore(candidate, target keywords.StringSet) float64 {
	if len(target) == 0 {
		return 100
	}
	ratio := float64(len(candidate.Intersect(target))) / float64(len(target))
	if ratio > 1 {
		ratio = 1
	}
	return ratio * 100
}

// structureScore awards points for each standard section present in the
// candidate document, capped at 100.
func (s *Scorer) structureScore(candidateText string) float64 {
	parsed := sections.Parse(candidateText)
	names := parsed.Names()

	score := 0.0
	for _, want := range standardSections {
		for _, name := range names {
			if strings.Contains(name, want) {
				score += structurePoints
				break
			}
		}
	}
	if score > 100 {
		score = 100
	}
	return score
}

func (s *Scorer) relevanceScore(ctx context.Context, candidateText, targetText string) float64 {
	value, err := s.sim.Similarity(ctx, candidateText, targetText)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("similarity provider failed, relevance scored as zero",
				zap.String("provider", s.sim.Name()),
				zap.Error(err),
			)
		}
		return 0
	}
	return similarity.Clamp(value) * 100
}
