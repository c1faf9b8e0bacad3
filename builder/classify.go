package builder

import (
	"strings"

	"github.com/hupe1980/elicitmesh/core"
)

// minCandidateWords filters out fragments too short to carry a requirement.
const minCandidateWords = 3

// extractCandidates splits an Enduser utterance into requirement candidate
// statements: sentence boundaries first, then coordinated clauses, keeping
// parts long enough to stand alone. Deterministic by construction.
func extractCandidates(text string) []string {
	var out []string
	for _, sentence := range splitSentences(text) {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}
		clauses := splitClauses(sentence)
		if len(clauses) == 0 {
			clauses = []string{sentence}
		}
		for _, c := range clauses {
			if wordCount(c) >= minCandidateWords {
				out = append(out, c)
			}
		}
	}
	return out
}

func splitSentences(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?' || r == ';' || r == '\n'
	})
}

// splitClauses breaks "I need X and must have Y" style coordination into
// separate candidates. Parts below the word minimum are dropped; when
// nothing qualifies the caller falls back to the whole sentence.
func splitClauses(sentence string) []string {
	parts := strings.Split(sentence, " and ")
	var out []string
	for _, p := range parts {
		p = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(p), ", "))
		if wordCount(p) >= minCandidateWords {
			out = append(out, p)
		}
	}
	return out
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}

// nonFunctionalCues flag quality-attribute statements: performance,
// security, usability and reliability vocabulary.
var nonFunctionalCues = []string{
	"performance", "fast", "slow", "speed", "latency", "response time",
	"secure", "security", "privacy", "encrypt", "authentication",
	"usability", "usable", "easy to use", "intuitive", "accessib",
	"reliab", "uptime", "availab", "stable", "scalab", "load",
}

func classify(text string) core.Category {
	lower := strings.ToLower(text)
	for _, cue := range nonFunctionalCues {
		if strings.Contains(lower, cue) {
			return core.CategoryNonFunctional
		}
	}
	return core.CategoryFunctional
}

var (
	highCues = []string{"must", "critical", "essential", "have to"}
	lowCues  = []string{"could", "nice to have", "optional", "would be nice", "someday"}
	medCues  = []string{"should", "important", "want"}
)

// prioritize maps explicit emphasis cues to a priority, defaulting to
// Medium. High cues win over low cues when both appear.
func prioritize(text string) core.Priority {
	lower := strings.ToLower(text)
	for _, cue := range highCues {
		if strings.Contains(lower, cue) {
			return core.PriorityHigh
		}
	}
	for _, cue := range lowCues {
		if strings.Contains(lower, cue) {
			return core.PriorityLow
		}
	}
	for _, cue := range medCues {
		if strings.Contains(lower, cue) {
			return core.PriorityMedium
		}
	}
	return core.PriorityMedium
}
