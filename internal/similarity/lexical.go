package similarity

import (
	"context"
	"math"
	"regexp"
	"strings"
)

// nonAlphanumericRegex matches sequences of non-alphanumeric characters.
var nonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9]+`)

// Lexical is the default, fully local provider: cosine similarity over
// TF-IDF vectors built from the two texts themselves. Deterministic and
// dependency-free, which keeps the whole pipeline reproducible offline.
type Lexical struct{}

// NewLexical returns the lexical provider.
func NewLexical() Lexical { return Lexical{} }

// Name implements Provider.
func (Lexical) Name() string { return "lexical" }

// Similarity implements Provider. Either text tokenizing to nothing yields 0.
func (Lexical) Similarity(_ context.Context, a, b string) (float64, error) {
	ta := tokenize(a)
	tb := tokenize(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0, nil
	}

	tfA := termFrequencies(ta)
	tfB := termFrequencies(tb)

	// Smoothed IDF over the two-document corpus, so terms shared by both
	// texts still contribute instead of zeroing out.
	idf := func(term string) float64 {
		df := 0
		if _, ok := tfA[term]; ok {
			df++
		}
		if _, ok := tfB[term]; ok {
			df++
		}
		return math.Log(3.0/float64(1+df)) + 1
	}

	var dot, normA, normB float64
	for term, fa := range tfA {
		wa := fa * idf(term)
		normA += wa * wa
		if fb, ok := tfB[term]; ok {
			dot += wa * fb * idf(term)
		}
	}
	for term, fb := range tfB {
		wb := fb * idf(term)
		normB += wb * wb
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}

	return Clamp(dot / (math.Sqrt(normA) * math.Sqrt(normB))), nil
}

// tokenize lowercases and splits on non-alphanumeric runs, dropping
// single-character fragments.
func tokenize(text string) []string {
	var tokens []string
	for _, tok := range nonAlphanumericRegex.Split(strings.ToLower(text), -1) {
		if len(tok) > 1 {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// termFrequencies returns sublinear-scaled term frequencies.
func termFrequencies(tokens []string) map[string]float64 {
	counts := make(map[string]float64, len(tokens))
	for _, tok := range tokens {
		counts[tok]++
	}
	for term, count := range counts {
		counts[term] = 1 + math.Log(count)
	}
	return counts
}
