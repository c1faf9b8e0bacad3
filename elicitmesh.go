// Package elicitmesh provides a high-level façade over the coordinator and
// service abstractions (agents, saturation detection, artifact building,
// turn broadcasting & logging) for running automated requirements
// elicitation interviews. Most applications interact with this package by:
//  1. Creating an ElicitMesh via New() (optionally overriding default in-memory services)
//  2. Starting an interview between an Interviewer and an Enduser agent (StartInterview)
//  3. Driving it to completion (Run) or turn by turn (Advance)
//
// The façade delegates orchestration to coordinator.Coordinator while
// keeping setup and usage ergonomics concise. All defaults are safe for
// local development and testing; production deployments typically supply a
// durable artifact store, a NATS publisher and a structured logger.
package elicitmesh

import (
	"context"

	"github.com/hupe1980/elicitmesh/artifact"
	"github.com/hupe1980/elicitmesh/bus"
	"github.com/hupe1980/elicitmesh/coordinator"
	"github.com/hupe1980/elicitmesh/core"
	"github.com/hupe1980/elicitmesh/logging"
)

// Options configures the ElicitMesh instance.
type Options struct {
	// Config carries the engine tunables (saturation threshold, turn
	// ceiling, retry budgets). The zero value is normalized to defaults.
	Config core.Config

	// Similarity overrides the lexical similarity used by the saturation
	// detector and the requirements deduplication.
	Similarity core.Similarity

	// Services (default to in-memory implementations if not provided)
	Bus   core.Publisher
	Store core.ArtifactStore

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// ElicitMesh is the high-level façade aggregating the shared services used
// by every interview it starts.
type ElicitMesh struct {
	opts Options
}

// New creates a new ElicitMesh instance with optional overrides. Any unset
// service is initialized with an in-memory implementation.
func New(optFns ...func(o *Options)) *ElicitMesh {
	opts := Options{
		Config: core.DefaultConfig(),
		Bus:    bus.NewInMemoryBus(),
		Store:  artifact.NewInMemoryStore(),
		Logger: logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &ElicitMesh{opts: opts}
}

// Interview is one running elicitation session between two agents.
type Interview struct {
	coord *coordinator.Coordinator
}

// StartInterview creates an interview between the given Interviewer and
// Enduser agents. An empty sessionID is replaced by a generated one.
func (m *ElicitMesh) StartInterview(sessionID string, interviewer, enduser core.Agent) *Interview {
	coord := coordinator.New(interviewer, enduser, func(o *coordinator.Options) {
		o.SessionID = sessionID
		o.Config = m.opts.Config
		o.Similarity = m.opts.Similarity
		o.Bus = m.opts.Bus
		o.Store = m.opts.Store
		o.Logger = m.opts.Logger
	})
	return &Interview{coord: coord}
}

// Session returns the underlying session for inspection.
func (i *Interview) Session() *core.Session { return i.coord.Session() }

// Run drives the interview to a terminal state and returns the session.
func (i *Interview) Run(ctx context.Context) (*core.Session, error) {
	return i.coord.Run(ctx)
}

// Advance performs exactly one turn while the session is Active.
func (i *Interview) Advance(ctx context.Context) error {
	return i.coord.Advance(ctx)
}

// Cancel requests cancellation; it is honored between turns.
func (i *Interview) Cancel() { i.coord.Cancel() }
