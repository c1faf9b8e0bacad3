package coordinator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hupe1980/elicitmesh/artifact"
	"github.com/hupe1980/elicitmesh/builder"
	"github.com/hupe1980/elicitmesh/bus"
	"github.com/hupe1980/elicitmesh/core"
	"github.com/hupe1980/elicitmesh/logging"
	"github.com/hupe1980/elicitmesh/saturation"
)

// errEmptyTurn marks a production attempt that yielded only whitespace. The
// turn is discarded and retried once before counting against the budget.
var errEmptyTurn = errors.New("empty turn text")

// Options configures a Coordinator instance. Unset services default to
// in-memory implementations safe for local development and testing.
type Options struct {
	SessionID  string
	Config     core.Config
	Similarity core.Similarity
	Detector   core.Detector
	Builder    *builder.Builder
	Bus        core.Publisher
	Store      core.ArtifactStore
	Logger     logging.Logger
	// BackoffBase is the first retry delay; it doubles per attempt.
	BackoffBase time.Duration
}

// Coordinator drives one elicitation session: strict Interviewer/Enduser
// alternation, saturation scoring after every completed exchange, turn
// broadcasting and final artifact persistence. It owns the session and is
// the only component mutating it.
type Coordinator struct {
	session     *core.Session
	interviewer core.Agent
	enduser     core.Agent
	detector    core.Detector
	builder     *builder.Builder
	bus         core.Publisher
	store       core.ArtifactStore
	cfg         core.Config
	logger      logging.Logger
	backoffBase time.Duration

	cancelled atomic.Bool
	wg        sync.WaitGroup
	// pubDone chains publish goroutines so per-session turn order is
	// preserved on the bus. Only touched from the run loop.
	pubDone chan struct{}
}

// New creates a Coordinator for the two given agents. The interviewer opens
// the conversation; both agents must report matching Speaker values.
func New(interviewer, enduser core.Agent, optFns ...func(o *Options)) *Coordinator {
	opts := Options{
		Config:      core.DefaultConfig(),
		BackoffBase: 500 * time.Millisecond,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	opts.Config = opts.Config.Normalize()
	if opts.Similarity == nil {
		opts.Similarity = saturation.LexicalOverlap()
	}
	if opts.Detector == nil {
		opts.Detector = saturation.New(opts.Similarity, func(o *saturation.Options) {
			o.Window = opts.Config.NoveltyWindow
		})
	}
	if opts.Builder == nil {
		opts.Builder = builder.New(opts.Similarity, func(o *builder.Options) {
			o.DedupThreshold = opts.Config.DedupThreshold
		})
	}
	if opts.Bus == nil {
		opts.Bus = bus.NewInMemoryBus()
	}
	if opts.Store == nil {
		opts.Store = artifact.NewInMemoryStore()
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	if opts.BackoffBase <= 0 {
		opts.BackoffBase = 500 * time.Millisecond
	}

	return &Coordinator{
		session:     core.NewSession(opts.SessionID),
		interviewer: interviewer,
		enduser:     enduser,
		detector:    opts.Detector,
		builder:     opts.Builder,
		bus:         opts.Bus,
		store:       opts.Store,
		cfg:         opts.Config,
		logger:      opts.Logger,
		backoffBase: opts.BackoffBase,
	}
}

// Session returns the session owned by this coordinator. Callers may read
// it concurrently; only the coordinator mutates it.
func (c *Coordinator) Session() *core.Session { return c.session }

// Cancel requests cancellation. It is honored between turns: the session
// moves directly to Terminated and the artifact builder runs on whatever
// turns exist. Idempotent.
func (c *Coordinator) Cancel() { c.cancelled.Store(true) }

// Run drives the session to a terminal state and returns it. A Failed
// session is returned together with its typed cause; the transcript
// accumulated so far is retained either way.
func (c *Coordinator) Run(ctx context.Context) (*core.Session, error) {
	for {
		if ctx.Err() != nil {
			c.Cancel()
		}
		switch c.session.Status() {
		case core.StatusActive:
			if c.cancelled.Load() {
				if err := c.terminate(ctx, SignalCancelRequested); err != nil {
					return c.session, err
				}
				continue
			}
			if err := c.Advance(ctx); err != nil {
				return c.session, err
			}
		case core.StatusSaturated:
			if c.cancelled.Load() {
				if err := c.terminate(ctx, SignalCancelRequested); err != nil {
					return c.session, err
				}
				continue
			}
			if err := c.confirmationExchange(ctx); err != nil {
				return c.session, err
			}
			if c.session.Status() != core.StatusSaturated {
				continue
			}
			if err := c.terminate(ctx, SignalConfirmationDone); err != nil {
				return c.session, err
			}
		case core.StatusTerminated:
			return c.session, nil
		case core.StatusFailed:
			return c.session, c.session.FailureCause()
		}
	}
}

// Advance performs exactly one turn. It is callable only while the session
// is Active; every other state yields core.ErrInvalidState.
func (c *Coordinator) Advance(ctx context.Context) error {
	if status := c.session.Status(); status != core.StatusActive {
		return fmt.Errorf("%w: advance requires Active, session is %s", core.ErrInvalidState, status)
	}
	if c.cancelled.Load() {
		return c.terminate(ctx, SignalCancelRequested)
	}

	turn, err := c.step(ctx)
	if err != nil {
		return err
	}
	if c.session.Status() != core.StatusActive {
		// Cancellation inside step already closed the session.
		return nil
	}

	// Saturation is evaluated after every completed exchange, i.e. once the
	// Enduser answered the Interviewer's question.
	if turn.Speaker == core.SpeakerEnduser {
		score, derr := c.detector.Score(c.session.Turns())
		if derr != nil {
			c.logger.Warn("saturation detector degraded, score frozen",
				"session_id", c.session.ID, "error", derr)
		} else {
			c.session.SetScore(score)
		}
		if c.session.Score() > c.cfg.SaturationThreshold {
			c.logger.Info("saturation threshold crossed",
				"session_id", c.session.ID, "score", c.session.Score())
			return c.saturate(SignalThresholdCrossed)
		}
	}
	if c.session.TurnCount() >= c.cfg.MaxTurns {
		c.logger.Info("max turn bound reached",
			"session_id", c.session.ID, "turns", c.session.TurnCount())
		return c.saturate(SignalMaxTurnsReached)
	}
	return nil
}

// step produces, appends and broadcasts one turn for the next speaker.
func (c *Coordinator) step(ctx context.Context) (core.Turn, error) {
	speaker := c.session.NextSpeaker()
	ag := c.interviewer
	if speaker == core.SpeakerEnduser {
		ag = c.enduser
	}

	start := time.Now()
	text, err := c.produce(ctx, ag)
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			// Run-context cancellation counts as a cancel request, not an
			// agent failure.
			c.Cancel()
			return core.Turn{}, c.terminate(ctx, SignalCancelRequested)
		}
		return core.Turn{}, c.fail(SignalAgentExhausted, err)
	}

	turn, err := c.session.AppendTurn(speaker, text)
	if err != nil {
		return core.Turn{}, err
	}
	c.logger.Debug("turn appended",
		"session_id", c.session.ID,
		"sequence", turn.Sequence,
		"speaker", string(speaker),
		"duration", time.Since(start))

	c.publishTurn(turn)
	return turn, nil
}

// produce invokes the agent with the per-call timeout, retrying transient
// oracle failures with exponential backoff up to the configured budget. An
// empty production is discarded and retried once before it counts.
func (c *Coordinator) produce(ctx context.Context, ag core.Agent) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= c.cfg.AgentRetryLimit; attempt++ {
		if attempt > 1 {
			delay := c.backoffBase << (attempt - 2)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return "", ctx.Err()
			}
			c.logger.Debug("retrying agent invocation",
				"session_id", c.session.ID, "speaker", string(ag.Speaker()), "attempt", attempt)
		}

		text, err := c.produceOnce(ctx, ag)
		if err == nil && strings.TrimSpace(text) == "" {
			text, err = c.produceOnce(ctx, ag)
			if err == nil && strings.TrimSpace(text) == "" {
				err = errEmptyTurn
			}
		}
		if err == nil {
			return text, nil
		}
		lastErr = err
		if !core.IsRetryableOracleErr(err) && !errors.Is(err, errEmptyTurn) {
			break
		}
	}
	return "", fmt.Errorf("%w: %v", core.ErrAgentUnavailable, lastErr)
}

func (c *Coordinator) produceOnce(ctx context.Context, ag core.Agent) (string, error) {
	callCtx := ctx
	if c.cfg.AgentTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, c.cfg.AgentTimeout)
		defer cancel()
	}
	return ag.Produce(callCtx, c.session.Turns())
}

// confirmationExchange runs the one closing exchange permitted while
// Saturated, giving both sides a closing statement.
func (c *Coordinator) confirmationExchange(ctx context.Context) error {
	for i := 0; i < 2; i++ {
		if _, err := c.step(ctx); err != nil {
			return err
		}
		if c.session.Status() != core.StatusSaturated {
			return nil
		}
	}
	return nil
}

// publishTurn broadcasts the turn on the session topic. The publish is
// fire-and-forget with a bounded flush: a failure is logged and retried
// once asynchronously but never fails the session.
func (c *Coordinator) publishTurn(t core.Turn) {
	if c.bus == nil {
		return
	}
	msg := core.NewTurnMessage(t)
	topic := core.TurnTopic(c.session.ID)
	prev := c.pubDone
	done := make(chan struct{})
	c.pubDone = done
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer close(done)
		if prev != nil {
			<-prev
		}
		if err := c.publishOnce(topic, msg); err == nil {
			return
		}
		c.logger.Warn("turn publish failed, retrying",
			"session_id", c.session.ID, "sequence", msg.Sequence, "topic", topic)
		if err := c.publishOnce(topic, msg); err != nil {
			c.logger.Error("turn publish abandoned",
				"session_id", c.session.ID, "sequence", msg.Sequence,
				"error", fmt.Errorf("%w: %v", core.ErrBusPublish, err))
		}
	}()
}

func (c *Coordinator) publishOnce(topic string, msg core.TurnMessage) error {
	ctx, cancel := context.WithTimeout(context.Background(), c.cfg.BusFlushTimeout)
	defer cancel()
	return c.bus.Publish(ctx, topic, msg)
}

// saturate applies the Active -> Saturated transition.
func (c *Coordinator) saturate(sig Signal) error {
	if _, _, err := Transition(c.session.Status(), sig); err != nil {
		return err
	}
	return c.session.MarkSaturated()
}

// terminate applies the transition to Terminated, then builds and persists
// the artifacts. Persistence exhaustion degrades the session to Failed.
func (c *Coordinator) terminate(ctx context.Context, sig Signal) error {
	if _, _, err := Transition(c.session.Status(), sig); err != nil {
		return err
	}
	if err := c.session.MarkTerminated(); err != nil {
		return err
	}
	return c.buildAndPersist(ctx)
}

// fail records the typed cause and moves the session to Failed.
func (c *Coordinator) fail(sig Signal, cause error) error {
	if _, _, terr := Transition(c.session.Status(), sig); terr != nil {
		return terr
	}
	if err := c.session.MarkFailed(cause); err != nil {
		return err
	}
	c.logger.Error("session failed",
		"session_id", c.session.ID,
		"turns", c.session.TurnCount(),
		"error", cause)
	return cause
}

// buildAndPersist renders both artifacts and writes them synchronously with
// a bounded retry. An already-existing key counts as durably written
// (at-most-once semantics).
func (c *Coordinator) buildAndPersist(ctx context.Context) error {
	turns := c.session.Turns()

	record := c.builder.InterviewRecord(turns)
	items, err := c.builder.Requirements(turns)
	if err != nil {
		return c.failStorage(fmt.Errorf("%w: %v", core.ErrStorageWrite, err))
	}
	requirements := c.builder.RenderRequirements(items, time.Now().UTC())

	writes := []struct {
		key  string
		data []byte
	}{
		{artifact.RecordKey(c.session.ID), record},
		{artifact.RequirementsKey(c.session.ID), requirements},
	}
	for _, w := range writes {
		if err := c.putWithRetry(ctx, w.key, w.data); err != nil {
			return c.failStorage(fmt.Errorf("%w: %s: %v", core.ErrStorageWrite, w.key, err))
		}
		c.session.RecordArtifact(w.key)
	}

	// Drain outstanding bus retries before reporting the session closed.
	c.wg.Wait()
	c.logger.Info("session terminated",
		"session_id", c.session.ID,
		"turns", len(turns),
		"requirements", len(items),
		"score", c.session.Score())
	return nil
}

func (c *Coordinator) putWithRetry(ctx context.Context, key string, data []byte) error {
	var lastErr error
	for attempt := 1; attempt <= c.cfg.StorageRetryLimit; attempt++ {
		if attempt > 1 {
			select {
			case <-time.After(c.backoffBase << (attempt - 2)):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		err := c.store.Put(ctx, key, data)
		if err == nil || errors.Is(err, artifact.ErrAlreadyExists) {
			return nil
		}
		lastErr = err
		c.logger.Warn("artifact write failed",
			"session_id", c.session.ID, "key", key, "attempt", attempt, "error", err)
	}
	return lastErr
}

// failStorage degrades Terminated -> Failed after persistence exhaustion.
// The in-memory transcript and any keys already written remain available on
// the session for recovery.
func (c *Coordinator) failStorage(cause error) error {
	if _, _, err := Transition(c.session.Status(), SignalStorageExhausted); err != nil {
		return err
	}
	if err := c.session.MarkFailed(cause); err != nil {
		return err
	}
	c.logger.Error("artifact persistence exhausted",
		"session_id", c.session.ID,
		"written", c.session.Artifacts(),
		"error", cause)
	return cause
}
