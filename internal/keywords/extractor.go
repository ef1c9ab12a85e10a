package keywords

import (
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/davidlpuk/cv-tailor/internal/logger"
	"github.com/davidlpuk/cv-tailor/internal/nlp"
)

const annotatePreviewLimit = 120

// entityLabels are the named-entity categories kept as keywords.
var entityLabels = map[string]bool{
	"ORG":     true,
	"PRODUCT": true,
	"GPE":     true,
	"MONEY":   true,
	"PERCENT": true,
}

// Extractor turns raw text into a keyword Set. It never fails: missing
// linguistic annotations degrade to empty noun/verb/entity categories while
// the rule tables still run.
type Extractor struct {
	annotator nlp.Annotator
	rules     *Rules
	logger    *zap.Logger
}

// NewExtractor builds an extractor around the shared language engine and the
// compiled rule tables.
func NewExtractor(annotator nlp.Annotator, rules *Rules, logger *zap.Logger) *Extractor {
	return &Extractor{annotator: annotator, rules: rules, logger: logger}
}

// Extract classifies the text into keyword categories. Every category comes
// back deduplicated, lowercase, with single-character strings dropped.
func (e *Extractor) Extract(text string) Set {
	set := NewSet()
	lower := strings.ToLower(text)

	if e.annotator != nil {
		tokens, entities, err := e.annotator.Annotate(lower)
		if err != nil {
			if e.logger != nil {
				e.logger.Warn("annotation failed, falling back to rule tables only",
					zap.Error(err),
					zap.String("text_preview", logger.TruncateForLog(text, annotatePreviewLimit)),
				)
			}
		} else {
			for _, ent := range entities {
				if entityLabels[ent.Label] {
					set.Entities.Add(strings.ToLower(ent.Text))
				}
			}
			for _, tok := range tokens {
				if !isAlphabetic(tok.Text) || nlp.IsStopword(tok.Text) || len([]rune(tok.Text)) <= 2 {
					continue
				}
				switch {
				case nlp.IsNoun(tok.Tag):
					set.Nouns.Add(tok.Lemma)
				case nlp.IsVerb(tok.Tag):
					set.Verbs.Add(tok.Lemma)
				}
			}
		}
	}

	for _, p := range e.rules.patterns {
		for _, match := range p.re.FindAllStringSubmatch(lower, -1) {
			keyword := match[0]
			if len(match) > 1 && match[1] != "" {
				keyword = match[1]
			}
			set.HardSkills.Add(keyword)
		}
	}

	for _, phrase := range e.rules.phrases {
		if strings.Contains(lower, phrase) {
			set.HardSkills.Add(phrase)
		}
	}

	for trigger, concepts := range e.rules.triggers {
		if strings.Contains(lower, trigger) {
			for _, concept := range concepts {
				set.SoftSkills.Add(concept)
			}
		}
	}

	if e.logger != nil {
		e.logger.Debug("extracted keywords",
			zap.Int("hard_skills", len(set.HardSkills)),
			zap.Int("soft_skills", len(set.SoftSkills)),
			zap.Int("entities", len(set.Entities)),
			zap.Int("nouns", len(set.Nouns)),
			zap.Int("verbs", len(set.Verbs)),
		)
	}

	return set
}

func isAlphabetic(word string) bool {
	if word == "" {
		return false
	}
	for _, r := range word {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
