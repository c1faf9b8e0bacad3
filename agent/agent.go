package agent

import (
	"context"
	"strings"

	"github.com/hupe1980/elicitmesh/core"
	"github.com/hupe1980/elicitmesh/oracle"
)

// Options configures an oracle-backed agent.
type Options struct {
	// SystemPrompt overrides the built-in role prompt entirely.
	SystemPrompt string
}

// roleAgent is the shared oracle-backed implementation behind Interviewer
// and Enduser. Role configuration is fixed at construction; the transcript
// passed to Produce is the only conversational state.
type roleAgent struct {
	speaker core.Speaker
	system  string
	oracle  oracle.Oracle
}

// Speaker implements core.Agent.
func (a *roleAgent) Speaker() core.Speaker { return a.speaker }

func (a *roleAgent) generate(ctx context.Context, prompt string) (string, error) {
	text, err := a.oracle.Generate(ctx, oracle.Request{System: a.system, Prompt: prompt})
	if err != nil {
		return "", oracle.ClassifyErr(err)
	}
	return strings.TrimSpace(text), nil
}

// renderTranscript flattens the conversation into speaker-labelled lines,
// the form both role prompts expect.
func renderTranscript(transcript []core.Turn) string {
	var sb strings.Builder
	for i, t := range transcript {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(t.Speaker))
		sb.WriteString(": ")
		sb.WriteString(t.Text)
	}
	return sb.String()
}

// Interviewer asks one structured elicitation question per turn, following
// the phased strategy in its role prompt. The problem statement seeds the
// opening question.
type Interviewer struct {
	roleAgent
	problem string
}

// NewInterviewer creates the Interviewer role around the given oracle.
func NewInterviewer(o oracle.Oracle, problem string, optFns ...func(o *Options)) *Interviewer {
	opts := Options{SystemPrompt: interviewerSystem}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Interviewer{
		roleAgent: roleAgent{
			speaker: core.SpeakerInterviewer,
			system:  opts.SystemPrompt,
			oracle:  o,
		},
		problem: problem,
	}
}

// Produce implements core.Agent.
func (a *Interviewer) Produce(ctx context.Context, transcript []core.Turn) (string, error) {
	var sb strings.Builder
	sb.WriteString("Problem statement: ")
	sb.WriteString(a.problem)
	sb.WriteString("\n\n")
	if len(transcript) == 0 {
		sb.WriteString("Open the interview with your first question.")
	} else {
		sb.WriteString("Conversation so far:\n")
		sb.WriteString(renderTranscript(transcript))
		sb.WriteString("\n\nAsk your next question.")
	}
	return a.generate(ctx, sb.String())
}

// Enduser answers interview questions in persona. The persona describes the
// stakeholder's role and daily work, the scenario grounds their answers in
// a concrete business context.
type Enduser struct {
	roleAgent
	persona  string
	scenario string
}

// NewEnduser creates the Enduser role around the given oracle.
func NewEnduser(o oracle.Oracle, persona, scenario string, optFns ...func(o *Options)) *Enduser {
	opts := Options{SystemPrompt: enduserSystem}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Enduser{
		roleAgent: roleAgent{
			speaker: core.SpeakerEnduser,
			system:  opts.SystemPrompt,
			oracle:  o,
		},
		persona:  persona,
		scenario: scenario,
	}
}

// Produce implements core.Agent.
func (a *Enduser) Produce(ctx context.Context, transcript []core.Turn) (string, error) {
	var sb strings.Builder
	sb.WriteString("Your persona: ")
	sb.WriteString(a.persona)
	if a.scenario != "" {
		sb.WriteString("\nScenario: ")
		sb.WriteString(a.scenario)
	}
	sb.WriteString("\n\nConversation so far:\n")
	sb.WriteString(renderTranscript(transcript))
	sb.WriteString("\n\nAnswer the interviewer's last question in persona.")
	return a.generate(ctx, sb.String())
}
