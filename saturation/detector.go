package saturation

import (
	"fmt"
	"strings"

	"github.com/hupe1980/elicitmesh/core"
)

// Options configures a Detector instance.
type Options struct {
	// Window is the moving-average span over per-turn novelty values.
	Window int
}

// Detector implements core.Detector using moving-average novelty smoothing.
//
// For each Enduser turn the novelty is 1 - max similarity against all prior
// Enduser turns (the first answer scores full novelty). The saturation score
// is the complement of the novelty moving average over the last Window
// turns; the window is padded with full novelty while fewer values exist, so
// sustained repetition is required before the score climbs.
type Detector struct {
	sim    core.Similarity
	window int
}

// New constructs a Detector around the given similarity function.
func New(sim core.Similarity, optFns ...func(o *Options)) *Detector {
	opts := Options{Window: core.DefaultNoveltyWindow}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Window <= 0 {
		opts.Window = core.DefaultNoveltyWindow
	}
	return &Detector{sim: sim, window: opts.Window}
}

// Score implements core.Detector. The result is only meaningful once at
// least two turns from each speaker exist; before that it returns 0. A
// similarity failure is reported as core.ErrDetectorDegraded so the caller
// can freeze the previous score.
func (d *Detector) Score(transcript []core.Turn) (float64, error) {
	var enduser, interviewer []core.Turn
	for _, t := range transcript {
		switch t.Speaker {
		case core.SpeakerEnduser:
			enduser = append(enduser, t)
		case core.SpeakerInterviewer:
			interviewer = append(interviewer, t)
		}
	}
	if len(enduser) < 2 || len(interviewer) < 2 {
		return 0, nil
	}

	novelties := make([]float64, len(enduser))
	for i, turn := range enduser {
		if isClosing(turn.Text) {
			novelties[i] = 0
			continue
		}
		if i == 0 {
			novelties[i] = 1
			continue
		}
		maxSim := 0.0
		for j := 0; j < i; j++ {
			s, err := d.sim(turn.Text, enduser[j].Text)
			if err != nil {
				return 0, fmt.Errorf("%w: %v", core.ErrDetectorDegraded, err)
			}
			if s > maxSim {
				maxSim = s
			}
		}
		novelties[i] = 1 - maxSim
	}

	sum := 0.0
	for k := 0; k < d.window; k++ {
		idx := len(novelties) - 1 - k
		if idx < 0 {
			// Pad with full novelty until the window is filled.
			sum += 1
			continue
		}
		sum += novelties[idx]
	}
	score := 1 - sum/float64(d.window)
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return score, nil
}

// closing terminators borrowed from the interview protocol: an Enduser
// answer consisting solely of one of these counts as zero novelty.
var closingTerms = map[string]struct{}{"done": {}, "no": {}}

func isClosing(text string) bool {
	norm := strings.ToLower(strings.TrimSpace(strings.TrimRight(strings.TrimSpace(text), ".!")))
	_, ok := closingTerms[norm]
	return ok
}
