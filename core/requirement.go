package core

// Category classifies a requirement item.
type Category string

const (
	// CategoryFunctional marks a requirement describing system behavior.
	CategoryFunctional Category = "Functional"
	// CategoryNonFunctional marks a quality attribute (performance,
	// security, usability, reliability and similar).
	CategoryNonFunctional Category = "NonFunctional"
)

// Priority ranks a requirement item by the urgency cues in its source text.
type Priority string

const (
	// PriorityHigh is assigned on "must"/"critical" cues.
	PriorityHigh Priority = "High"
	// PriorityMedium is assigned on "should" cues and as the default.
	PriorityMedium Priority = "Medium"
	// PriorityLow is assigned on "could"/"nice to have" cues.
	PriorityLow Priority = "Low"
)

// RequirementItem is one deduplicated requirement extracted from the Enduser
// side of a terminated session. Items are created once by the artifact
// builder and immutable thereafter.
type RequirementItem struct {
	ID          string   `json:"id"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	Priority    Priority `json:"priority"`
	// SourceTurns holds the sequence numbers of the turns the item was
	// extracted or merged from, ascending and without duplicates.
	SourceTurns []int `json:"source_turns"`
}
