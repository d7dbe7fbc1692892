// Package povo provides a high-level façade over the conversation
// orchestrator and its services (routing, flows, session storage & logging),
// enabling rapid construction of slot-filling dialogue backends. Most
// applications interact with this package by:
//  1. Creating an Engine via New() with a classifier and a generator
//     (optionally overriding the default in-memory session store)
//  2. Registering one or more flows and the intents that route to them
//  3. Running turns with Chat()
//
// The façade delegates turn execution to orchestrator.Orchestrator while
// keeping setup and usage ergonomics concise. All defaults are safe for local
// development and testing; production deployments typically supply a durable
// session store and a structured logger.
package povo

import (
	"context"
	"sync"

	"github.com/y3s-labs/povo/core"
	"github.com/y3s-labs/povo/flow"
	"github.com/y3s-labs/povo/logging"
	"github.com/y3s-labs/povo/orchestrator"
	"github.com/y3s-labs/povo/router"
	"github.com/y3s-labs/povo/session"
)

// Options configures the Engine instance.
type Options struct {
	// Orchestrator configuration (timeouts, external call budget).
	OrchestratorConfig func(o *orchestrator.Options)

	// SessionStore holds sessions and conversation history. Defaults to an
	// in-memory implementation if not provided.
	SessionStore core.SessionStore

	// Logger (defaults to NoOp logger if nil).
	Logger logging.Logger
}

// Engine is the high-level façade aggregating the router, flow registry and
// orchestrator behind a single Chat entry point.
type Engine struct {
	opts     Options
	router   *router.Router
	flows    *flow.Registry
	sessions core.SessionStore

	classifier core.Classifier
	generator  core.Generator

	buildOnce sync.Once
	orch      *orchestrator.Orchestrator
	buildErr  error
}

// New creates an Engine with optional overrides. Flows and intents must be
// registered before the first Chat call.
func New(classifier core.Classifier, generator core.Generator, optFns ...func(o *Options)) *Engine {
	opts := Options{
		SessionStore: session.NewInMemoryStore(),
		Logger:       logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	e := &Engine{
		opts:       opts,
		router:     router.New(),
		flows:      flow.NewRegistry(),
		sessions:   opts.SessionStore,
		classifier: classifier,
		generator:  generator,
	}
	e.flows.MustRegister(flow.NewGeneral())
	return e
}

// RegisterFlow adds a flow to the registry.
func (e *Engine) RegisterFlow(f flow.Flow) error { return e.flows.Register(f) }

// RegisterIntent maps an intent name to a registered flow.
func (e *Engine) RegisterIntent(intent, flowName string) { e.router.Register(intent, flowName) }

// Chat runs one conversational turn for the given session and user. The
// session is loaded from and saved back to the engine's store, so callers
// only need to keep the session ID between turns. The underlying
// orchestrator is built on the first call; flows and intents registered
// after that point are still honored because the router and registry are
// shared by reference.
func (e *Engine) Chat(ctx context.Context, sessionID, userID, text string) (core.TurnResult, error) {
	e.buildOnce.Do(func() {
		e.orch, e.buildErr = orchestrator.New(e.classifier, e.generator, e.router, e.flows, func(o *orchestrator.Options) {
			o.SessionStore = e.sessions
			o.Logger = e.opts.Logger
			if e.opts.OrchestratorConfig != nil {
				e.opts.OrchestratorConfig(o)
			}
		})
	})
	if e.buildErr != nil {
		return core.TurnResult{}, e.buildErr
	}

	sess, err := e.sessions.Load(sessionID)
	if err != nil {
		return core.TurnResult{}, err
	}

	result, err := e.orch.RunTurn(ctx, text, sess, core.NewUser(userID))
	if err != nil {
		return core.TurnResult{}, err
	}

	if err := e.sessions.Save(result.Session); err != nil {
		return core.TurnResult{}, err
	}
	return result, nil
}
