package keywords

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/davidlpuk/cv-tailor/internal/nlp"
)

type stubAnnotator struct {
	tokens   []nlp.Token
	entities []nlp.Entity
	err      error
	lastText string
}

func (s *stubAnnotator) Annotate(text string) ([]nlp.Token, []nlp.Entity, error) {
	s.lastText = text
	if s.err != nil {
		return nil, nil, s.err
	}
	return s.tokens, s.entities, nil
}

func mustRules(t *testing.T) *Rules {
	t.Helper()
	rules, err := DefaultRules()
	if err != nil {
		t.Fatalf("compiling default rules: %v", err)
	}
	return rules
}

func TestExtractHardSkillPatterns(t *testing.T) {
	t.Parallel()

	e := NewExtractor(nil, mustRules(t), zap.NewNop())
	set := e.Extract("We use Figma and Sketch for wireframes, plus A/B testing.")

	for _, want := range []string{"figma", "sketch", "wireframes", "a/b testing"} {
		if !set.HardSkills.Contains(want) {
			t.Fatalf("expected hard skill %q, got %v", want, set.HardSkills.Sorted())
		}
	}
}

func TestExtractLowercasesInput(t *testing.T) {
	t.Parallel()

	e := NewExtractor(nil, mustRules(t), zap.NewNop())
	set := e.Extract("FIGMA and DESIGN SYSTEM experience required")

	if !set.HardSkills.Contains("figma") {
		t.Fatalf("expected lowercased match, got %v", set.HardSkills.Sorted())
	}
	if !set.HardSkills.Contains("design system") {
		t.Fatalf("expected phrase match, got %v", set.HardSkills.Sorted())
	}
}

func TestExtractSoftSkillTriggers(t *testing.T) {
	t.Parallel()

	e := NewExtractor(nil, mustRules(t), zap.NewNop())
	set := e.Extract("You will lead a team of designers.")

	for _, want := range []string{"leadership", "management"} {
		if !set.SoftSkills.Contains(want) {
			t.Fatalf("expected soft skill %q, got %v", want, set.SoftSkills.Sorted())
		}
	}
}

func TestExtractTokensAndEntities(t *testing.T) {
	t.Parallel()

	stub := &stubAnnotator{
		tokens: []nlp.Token{
			{Text: "designed", Tag: "VBD", Lemma: "design"},
			{Text: "dashboards", Tag: "NNS", Lemma: "dashboard"},
			{Text: "the", Tag: "DT", Lemma: "the"},
			{Text: "ab", Tag: "NN", Lemma: "ab"},
			{Text: "12", Tag: "CD", Lemma: "12"},
		},
		entities: []nlp.Entity{
			{Text: "Acme Corp", Label: "ORG"},
			{Text: "yesterday", Label: "DATE"},
		},
	}

	e := NewExtractor(stub, mustRules(t), zap.NewNop())
	set := e.Extract("Designed dashboards at Acme Corp")

	if !set.Verbs.Contains("design") {
		t.Fatalf("expected verb lemma, got %v", set.Verbs.Sorted())
	}
	if !set.Nouns.Contains("dashboard") {
		t.Fatalf("expected noun lemma, got %v", set.Nouns.Sorted())
	}
	if set.Nouns.Contains("ab") {
		t.Fatalf("two-character tokens should be dropped")
	}
	if set.Verbs.Contains("the") || set.Nouns.Contains("the") {
		t.Fatalf("stopwords should be dropped")
	}
	if !set.Entities.Contains("acme corp") {
		t.Fatalf("expected lowercased entity, got %v", set.Entities.Sorted())
	}
	if set.Entities.Contains("yesterday") {
		t.Fatalf("DATE entities should be filtered out")
	}
}

func TestExtractDegradesWhenAnnotationFails(t *testing.T) {
	t.Parallel()

	stub := &stubAnnotator{err: errors.New("model unavailable")}
	e := NewExtractor(stub, mustRules(t), zap.NewNop())

	set := e.Extract("Figma expert who can lead workshops")

	if !set.HardSkills.Contains("figma") {
		t.Fatalf("rule tables should still run, got %v", set.HardSkills.Sorted())
	}
	if len(set.Nouns) != 0 || len(set.Verbs) != 0 || len(set.Entities) != 0 {
		t.Fatalf("linguistic categories should be empty on failure")
	}
}

func TestDefaultRulesCompile(t *testing.T) {
	t.Parallel()

	rules := mustRules(t)
	if rules.PatternCount() == 0 {
		t.Fatalf("expected compiled patterns")
	}
	if len(rules.phrases) == 0 {
		t.Fatalf("expected skill phrases")
	}
	if len(rules.triggers) == 0 {
		t.Fatalf("expected soft skill triggers")
	}
}

func TestLoadRulesOverride(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	content := "hard_skill_patterns:\n  - name: custom\n    pattern: '\\b(terraform)\\b'\nskill_phrases:\n  - infrastructure as code\nsoft_skill_triggers:\n  mentor:\n    - mentorship\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing rules file: %v", err)
	}

	rules, err := LoadRules(path)
	if err != nil {
		t.Fatalf("loading rules: %v", err)
	}

	e := NewExtractor(nil, rules, zap.NewNop())
	set := e.Extract("Terraform and infrastructure as code, happy to mentor juniors")

	if !set.HardSkills.Contains("terraform") {
		t.Fatalf("expected custom pattern match, got %v", set.HardSkills.Sorted())
	}
	if !set.HardSkills.Contains("infrastructure as code") {
		t.Fatalf("expected custom phrase match, got %v", set.HardSkills.Sorted())
	}
	if !set.SoftSkills.Contains("mentorship") {
		t.Fatalf("expected custom trigger match, got %v", set.SoftSkills.Sorted())
	}
}

func TestLoadRulesBadPattern(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	content := "hard_skill_patterns:\n  - name: broken\n    pattern: '(['\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing rules file: %v", err)
	}

	if _, err := LoadRules(path); err == nil {
		t.Fatalf("expected compile error for invalid pattern")
	}
}
