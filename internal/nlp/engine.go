// Package nlp wraps the language tooling (part-of-speech tagging, named
// entity recognition, lemmatization) behind a single Engine handle. The
// handle is built once at process start and shared read-only by every
// component that needs linguistic annotations.
package nlp

import (
	"fmt"
	"strings"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
	"github.com/jdkato/prose/v2"
)

// Token is a single annotated token: the surface form, its Penn Treebank
// part-of-speech tag, and its lemma.
type Token struct {
	Text  string
	Tag   string
	Lemma string
}

// Entity is a named entity recognized in the text.
type Entity struct {
	Text  string
	Label string
}

// Annotator provides linguistic annotations for a piece of text.
// Implemented by Engine; consumers should accept the interface so tests can
// substitute a stub.
type Annotator interface {
	Annotate(text string) ([]Token, []Entity, error)
}

// Engine is the shared language capability. Construct it once with NewEngine
// and pass the handle by reference; it is safe for concurrent readers.
type Engine struct {
	lemmatizer *golem.Lemmatizer
}

// NewEngine loads the lemmatizer dictionary and prepares the tagger. A
// failure here is fatal for the caller: no further processing is possible
// without the language resources.
func NewEngine() (*Engine, error) {
	lemmatizer, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("loading english lemmatizer dictionary: %w", err)
	}

	return &Engine{lemmatizer: lemmatizer}, nil
}

// Annotate tags and lemmatizes the text and collects named entities.
func (e *Engine) Annotate(text string) ([]Token, []Entity, error) {
	doc, err := prose.NewDocument(text)
	if err != nil {
		return nil, nil, fmt.Errorf("annotating text: %w", err)
	}

	docTokens := doc.Tokens()
	tokens := make([]Token, 0, len(docTokens))
	for _, tok := range docTokens {
		tokens = append(tokens, Token{
			Text:  tok.Text,
			Tag:   tok.Tag,
			Lemma: e.Lemma(tok.Text),
		})
	}

	docEntities := doc.Entities()
	entities := make([]Entity, 0, len(docEntities))
	for _, ent := range docEntities {
		entities = append(entities, Entity{Text: ent.Text, Label: ent.Label})
	}

	return tokens, entities, nil
}

// Lemma returns the base form of a word, lowercased. Unknown words come back
// as their lowercased surface form.
func (e *Engine) Lemma(word string) string {
	return strings.ToLower(e.lemmatizer.Lemma(strings.ToLower(word)))
}

// IsNoun reports whether a Penn Treebank tag marks a noun or proper noun.
func IsNoun(tag string) bool {
	return strings.HasPrefix(tag, "NN")
}

// IsVerb reports whether a Penn Treebank tag marks a verb form.
func IsVerb(tag string) bool {
	return strings.HasPrefix(tag, "VB")
}
