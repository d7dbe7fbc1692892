package orchestrator

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/y3s-labs/povo/core"
	"github.com/y3s-labs/povo/flow"
	"github.com/y3s-labs/povo/logging"
	"github.com/y3s-labs/povo/router"
	"github.com/y3s-labs/povo/session"
	"github.com/y3s-labs/povo/telemetry"
)

// ApologyReply is returned to the user whenever the generation boundary
// fails; the raw error is never shown.
const ApologyReply = "Sorry, I'm having trouble responding right now. Could you say that again?"

// Options holds dependency and configuration overrides passed to New().
type Options struct {
	// ClassifyTimeout bounds the external classification call.
	ClassifyTimeout time.Duration
	// GenerateTimeout bounds the external generation call.
	GenerateTimeout time.Duration
	// MaxExternalCalls limits external service calls per turn; 0 = unlimited.
	MaxExternalCalls int
	// SessionStore persists message histories between turns.
	SessionStore core.SessionStore
	// Logger receives structured turn logs.
	Logger logging.Logger
	// Metrics receives turn counters; nil disables telemetry.
	Metrics *telemetry.Metrics
}

// Orchestrator is the turn driver. Construct once at startup with an
// explicit router and flow registry; RunTurn is safe for concurrent use
// across sessions.
type Orchestrator struct {
	classifier core.Classifier
	generator  core.Generator
	router     *router.Router
	flows      *flow.Registry
	store      core.SessionStore
	logger     logging.Logger
	metrics    *telemetry.Metrics

	classifyTimeout  time.Duration
	generateTimeout  time.Duration
	maxExternalCalls int

	// sessionLocks serializes turns per session id without blocking turns
	// for other sessions.
	sessionLocks sync.Map
}

// New constructs an Orchestrator and validates the startup wiring: the
// router's default flow must resolve to a registered flow so every turn has
// somewhere to land.
func New(classifier core.Classifier, generator core.Generator, r *router.Router, flows *flow.Registry, optFns ...func(o *Options)) (*Orchestrator, error) {
	if classifier == nil {
		return nil, fmt.Errorf("orchestrator: classifier is required")
	}
	if generator == nil {
		return nil, fmt.Errorf("orchestrator: generator is required")
	}
	if r == nil {
		return nil, fmt.Errorf("orchestrator: router is required")
	}
	if flows == nil {
		return nil, fmt.Errorf("orchestrator: flow registry is required")
	}

	opts := Options{
		ClassifyTimeout:  10 * time.Second,
		GenerateTimeout:  30 * time.Second,
		MaxExternalCalls: 4,
		SessionStore:     session.NewInMemoryStore(),
		Logger:           logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	if _, ok := flows.Get(r.DefaultFlow()); !ok {
		return nil, fmt.Errorf("orchestrator: default flow %q is not registered", r.DefaultFlow())
	}

	return &Orchestrator{
		classifier:       classifier,
		generator:        generator,
		router:           r,
		flows:            flows,
		store:            opts.SessionStore,
		logger:           opts.Logger,
		metrics:          opts.Metrics,
		classifyTimeout:  opts.ClassifyTimeout,
		generateTimeout:  opts.GenerateTimeout,
		maxExternalCalls: opts.MaxExternalCalls,
	}, nil
}

// RunTurn executes one classify-route-handle-generate cycle for the incoming
// user text. The caller-supplied session and user are never mutated; the
// returned TurnResult carries a new Session that is a single atomic artifact
// the caller either fully persists or discards.
//
// Only caller contract violations produce an error. Failures at the
// classification or generation boundary degrade to the fallback intent or
// the apology reply respectively.
func (o *Orchestrator) RunTurn(ctx context.Context, text string, sess core.Session, user core.User) (core.TurnResult, error) {
	if sess.ID == "" {
		return core.TurnResult{}, core.ErrMissingSessionID
	}
	if user.ID == "" {
		return core.TurnResult{}, core.ErrMissingUserID
	}
	if strings.TrimSpace(text) == "" {
		return core.TurnResult{}, core.ErrEmptyMessage
	}

	mu := o.sessionLock(sess.ID)
	mu.Lock()
	defer mu.Unlock()

	start := time.Now()
	limiter := core.NewCallLimiter(o.maxExternalCalls)

	// Step 1: working history ends with the triggering user message.
	var history []core.Message
	if !sess.New {
		stored, err := o.store.History(sess.ID)
		if err != nil {
			return core.TurnResult{}, fmt.Errorf("load history: %w", err)
		}
		history = stored
	}
	userMsg := core.NewUserMessage(text)
	history = append(history, userMsg)

	// Step 2: classify, degrading to the fallback intent on any failure.
	classification := o.classify(ctx, limiter, sess.ID, text)

	// Steps 3-5: route, look up stored slots, advance the flow. All pure.
	flowName := o.router.Route(classification.Intent)
	fl, ok := o.flows.Get(flowName)
	if !ok {
		// a route target that was never registered degrades like an
		// unregistered intent
		flowName = o.router.DefaultFlow()
		fl, _ = o.flows.Get(flowName)
	}
	result := fl.Handle(sess.FlowState(flowName), classification.Intent, classification.Entities, sess)

	// Step 6: build the new session value; terminal transitions clear the
	// flow's state for a fresh cycle, all other flow keys are preserved.
	var newSession core.Session
	if result.Terminal {
		newSession = sess.WithoutFlowState(flowName)
	} else {
		newSession = sess.WithFlowState(flowName, result.UpdatedSlots)
	}
	newSession.New = false

	// Step 7: generate, degrading to the apology reply on any failure.
	replyText := o.generate(ctx, limiter, sess.ID, result.Instruction, history)

	// Step 8: append both turn messages to the history boundary and return.
	replyMsg := core.NewAssistantMessage(replyText)
	if err := o.store.AppendHistory(sess.ID, userMsg, replyMsg); err != nil {
		return core.TurnResult{}, fmt.Errorf("append history: %w", err)
	}

	logging.LogTurn(o.logger, sess.ID, flowName, classification.Intent, result.Terminal, time.Since(start))
	o.metrics.ObserveTurn(flowName, result.Terminal, time.Since(start))

	return core.TurnResult{
		Reply:   replyMsg,
		Intent:  classification.Intent,
		Session: newSession,
		User:    user.Clone(),
	}, nil
}

func (o *Orchestrator) sessionLock(id string) *sync.Mutex {
	lock, _ := o.sessionLocks.LoadOrStore(id, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

func (o *Orchestrator) classify(ctx context.Context, limiter *core.CallLimiter, sessionID, text string) core.ClassificationResult {
	if err := limiter.Increment(); err != nil {
		o.metrics.ClassificationFailure()
		logging.LogClassification(o.logger, sessionID, "", 0, err)
		return core.FallbackClassification()
	}

	cctx, cancel := context.WithTimeout(ctx, o.classifyTimeout)
	defer cancel()

	start := time.Now()
	result, err := o.classifier.Classify(cctx, text)
	logging.LogClassification(o.logger, sessionID, result.Intent, time.Since(start), err)
	if err != nil {
		o.metrics.ClassificationFailure()
		return core.FallbackClassification()
	}
	if result.Intent == "" {
		o.metrics.ClassificationFailure()
		return core.FallbackClassification()
	}
	return result
}

func (o *Orchestrator) generate(ctx context.Context, limiter *core.CallLimiter, sessionID, instruction string, history []core.Message) string {
	if err := limiter.Increment(); err != nil {
		o.metrics.GenerationFailure()
		logging.LogGeneration(o.logger, sessionID, 0, err)
		return ApologyReply
	}

	gctx, cancel := context.WithTimeout(ctx, o.generateTimeout)
	defer cancel()

	start := time.Now()
	reply, err := o.generator.Generate(gctx, instruction, history)
	logging.LogGeneration(o.logger, sessionID, time.Since(start), err)
	if err != nil || strings.TrimSpace(reply) == "" {
		o.metrics.GenerationFailure()
		return ApologyReply
	}
	return reply
}
