package saturation

import (
	"strings"
	"unicode"

	"github.com/hupe1980/elicitmesh/core"
)

// LexicalOverlap returns a core.Similarity computing the Jaccard overlap of
// lowercased word tokens. It is cheap, deterministic and dependency-free,
// making it the default strategy; deployments wanting embedding cosine can
// inject their own function without touching the detector or builder.
func LexicalOverlap() core.Similarity {
	return func(a, b string) (float64, error) {
		ta := tokenize(a)
		tb := tokenize(b)
		if len(ta) == 0 && len(tb) == 0 {
			return 1, nil
		}
		if len(ta) == 0 || len(tb) == 0 {
			return 0, nil
		}
		inter := 0
		for tok := range ta {
			if _, ok := tb[tok]; ok {
				inter++
			}
		}
		union := len(ta) + len(tb) - inter
		return float64(inter) / float64(union), nil
	}
}

// ExactMatch returns a core.Similarity scoring 1 for identical trimmed texts
// and 0 otherwise. Intended as a deterministic stub for tests.
func ExactMatch() core.Similarity {
	return func(a, b string) (float64, error) {
		if strings.TrimSpace(a) == strings.TrimSpace(b) {
			return 1, nil
		}
		return 0, nil
	}
}

// stopwords excluded from lexical tokens; high-frequency fillers would
// otherwise inflate overlap between unrelated turns.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"but": {}, "by": {}, "for": {}, "i": {}, "in": {}, "is": {}, "it": {},
	"my": {}, "of": {}, "on": {}, "or": {}, "our": {}, "so": {}, "that": {},
	"the": {}, "to": {}, "we": {}, "with": {}, "would": {}, "you": {},
}

func tokenize(text string) map[string]struct{} {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	tokens := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if _, skip := stopwords[f]; skip {
			continue
		}
		tokens[f] = struct{}{}
	}
	return tokens
}
