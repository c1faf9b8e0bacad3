package builder

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/hupe1980/elicitmesh/core"
)

// Options configures a Builder instance.
type Options struct {
	// DedupThreshold is the similarity above which two requirement
	// candidates are merged into one item.
	DedupThreshold float64
}

// Builder derives session artifacts from a transcript. It holds only the
// injected similarity function and merge threshold; all methods are pure
// over their inputs.
type Builder struct {
	sim       core.Similarity
	threshold float64
}

// New constructs a Builder around the given similarity function.
func New(sim core.Similarity, optFns ...func(o *Options)) *Builder {
	opts := Options{DedupThreshold: core.DefaultDedupThreshold}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.DedupThreshold <= 0 || opts.DedupThreshold > 1 {
		opts.DedupThreshold = core.DefaultDedupThreshold
	}
	return &Builder{sim: sim, threshold: opts.DedupThreshold}
}

// InterviewRecord renders the transcript as one line per turn in sequence
// order: "[<ISO-8601 timestamp>] <Speaker>: <text>".
func (b *Builder) InterviewRecord(transcript []core.Turn) []byte {
	var sb strings.Builder
	for _, t := range transcript {
		sb.WriteString("[")
		sb.WriteString(t.Timestamp.UTC().Format(time.RFC3339))
		sb.WriteString("] ")
		sb.WriteString(string(t.Speaker))
		sb.WriteString(": ")
		sb.WriteString(t.Text)
		sb.WriteString("\n")
	}
	return []byte(sb.String())
}

// Requirements extracts requirement candidates from the Enduser turns,
// merges near-identical items above the dedup threshold (unioning their
// source turns) and classifies each item. An empty transcript yields an
// empty list, not an error.
func (b *Builder) Requirements(transcript []core.Turn) ([]core.RequirementItem, error) {
	var items []core.RequirementItem
	for _, t := range transcript {
		if t.Speaker != core.SpeakerEnduser {
			continue
		}
		for _, cand := range extractCandidates(t.Text) {
			merged := false
			for i := range items {
				score, err := b.sim(cand, items[i].Description)
				if err != nil {
					return nil, fmt.Errorf("requirement dedup: %w", err)
				}
				if score >= b.threshold {
					items[i].SourceTurns = unionTurn(items[i].SourceTurns, t.Sequence)
					merged = true
					break
				}
			}
			if merged {
				continue
			}
			items = append(items, core.RequirementItem{
				ID:          fmt.Sprintf("UR-%03d", len(items)+1),
				Description: cand,
				Category:    classify(cand),
				Priority:    prioritize(cand),
				SourceTurns: []int{t.Sequence},
			})
		}
	}
	return items, nil
}

// RenderRequirements serializes the requirements list in the artifact
// format: a header with the generation timestamp, then one entry per item.
func (b *Builder) RenderRequirements(items []core.RequirementItem, generatedAt time.Time) []byte {
	var sb strings.Builder
	sb.WriteString("USER REQUIREMENTS LIST\n")
	sb.WriteString("Generated: ")
	sb.WriteString(generatedAt.UTC().Format(time.RFC3339))
	sb.WriteString("\n\n")
	for _, item := range items {
		sb.WriteString(item.ID)
		sb.WriteString(": ")
		sb.WriteString(item.Description)
		sb.WriteString("\n")
		sb.WriteString("  Category: ")
		sb.WriteString(string(item.Category))
		sb.WriteString("\n")
		sb.WriteString("  Priority: ")
		sb.WriteString(string(item.Priority))
		sb.WriteString("\n")
		sb.WriteString("  Source Turns: ")
		sb.WriteString(joinTurns(item.SourceTurns))
		sb.WriteString("\n\n")
	}
	return []byte(sb.String())
}

func unionTurn(turns []int, seq int) []int {
	for _, t := range turns {
		if t == seq {
			return turns
		}
	}
	turns = append(turns, seq)
	sort.Ints(turns)
	return turns
}

func joinTurns(turns []int) string {
	parts := make([]string, len(turns))
	for i, t := range turns {
		parts[i] = fmt.Sprintf("%d", t)
	}
	return strings.Join(parts, ", ")
}
