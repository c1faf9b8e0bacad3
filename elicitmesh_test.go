package elicitmesh

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/elicitmesh/agent"
	"github.com/hupe1980/elicitmesh/artifact"
	"github.com/hupe1980/elicitmesh/bus"
	"github.com/hupe1980/elicitmesh/core"
)

func TestStartInterview_RunsToTermination(t *testing.T) {
	store := artifact.NewInMemoryStore()
	mbus := bus.NewInMemoryBus()

	mesh := New(func(o *Options) {
		o.Store = store
		o.Bus = mbus
	})

	interviewer := agent.NewScripted(core.SpeakerInterviewer,
		"What is your role?",
		"What are your main goals?",
		"Anything else?",
	)
	enduser := agent.NewScripted(core.SpeakerEnduser,
		"I need fast keyword search across all projects")

	iv := mesh.StartInterview("demo", interviewer, enduser)
	sess, err := iv.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, core.StatusTerminated, sess.Status())
	assert.Equal(t, "demo", sess.ID)

	_, err = store.Get(context.Background(), artifact.RecordKey("demo"))
	assert.NoError(t, err)
	_, err = store.Get(context.Background(), artifact.RequirementsKey("demo"))
	assert.NoError(t, err)
	assert.NotEmpty(t, mbus.Topic(core.TurnTopic("demo")))
}

func TestStartInterview_GeneratedSessionID(t *testing.T) {
	mesh := New()
	iv := mesh.StartInterview("",
		agent.NewScripted(core.SpeakerInterviewer, "q"),
		agent.NewScripted(core.SpeakerEnduser, "a b c"))
	assert.NotEmpty(t, iv.Session().ID)
	assert.Equal(t, core.StatusActive, iv.Session().Status())
}

func TestInterview_CancelBetweenTurns(t *testing.T) {
	mesh := New()
	iv := mesh.StartInterview("c1",
		agent.NewScripted(core.SpeakerInterviewer, "What is your role?"),
		agent.NewScripted(core.SpeakerEnduser, "I coordinate a sales team"))

	ctx := context.Background()
	require.NoError(t, iv.Advance(ctx))
	require.NoError(t, iv.Advance(ctx))
	iv.Cancel()

	sess, err := iv.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, core.StatusTerminated, sess.Status())
	assert.Equal(t, 2, sess.TurnCount())
}
