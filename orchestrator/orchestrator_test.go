package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/y3s-labs/povo/core"
	"github.com/y3s-labs/povo/flow"
	"github.com/y3s-labs/povo/genai"
	"github.com/y3s-labs/povo/nlu"
	"github.com/y3s-labs/povo/router"
)

func newTestRouter() *router.Router {
	r := router.New()
	r.RegisterMany(map[string]string{
		"love":            flow.PizzaName,
		"hate":            flow.PizzaName,
		"confirm_order":   flow.PizzaName,
		"booking":         flow.BookingName,
		"confirm_booking": flow.BookingName,
		"cancel_booking":  flow.BookingName,
		"greeting":        flow.GeneralName,
	})
	return r
}

func newTestRegistry() *flow.Registry {
	flows := flow.NewRegistry()
	flows.MustRegister(flow.NewGeneral(), flow.NewPizza(), flow.NewBooking())
	return flows
}

func newTestOrchestrator(t *testing.T, classifier core.Classifier, generator core.Generator) *Orchestrator {
	t.Helper()
	o, err := New(classifier, generator, newTestRouter(), newTestRegistry())
	require.NoError(t, err)
	return o
}

func TestNew_RequiresDefaultFlowRegistered(t *testing.T) {
	r := router.New()
	r.SetDefaultFlow("missing")

	_, err := New(nlu.NewMockClassifier(), genai.NewMockGenerator(), r, newTestRegistry())
	assert.Error(t, err)
}

func TestRunTurn_CallerContractViolations(t *testing.T) {
	o := newTestOrchestrator(t, nlu.NewMockClassifier(), genai.NewMockGenerator())
	ctx := context.Background()

	_, err := o.RunTurn(ctx, "hi", core.Session{}, core.NewUser("u1"))
	assert.ErrorIs(t, err, core.ErrMissingSessionID)

	_, err = o.RunTurn(ctx, "hi", core.NewSession("s1"), core.User{})
	assert.ErrorIs(t, err, core.ErrMissingUserID)

	_, err = o.RunTurn(ctx, "   ", core.NewSession("s1"), core.NewUser("u1"))
	assert.ErrorIs(t, err, core.ErrEmptyMessage)
}

// New session, "I love pizza" classified as "love" with no entities: routes
// to pizza, slots stay empty, instruction enumerates the four slots.
func TestRunTurn_PizzaFirstTurn(t *testing.T) {
	classifier := nlu.NewMockClassifier()
	classifier.AddResult("I love pizza", core.ClassificationResult{Intent: "love"})
	generator := genai.NewMockGenerator()
	o := newTestOrchestrator(t, classifier, generator)

	res, err := o.RunTurn(context.Background(), "I love pizza", core.NewSession("s1"), core.NewUser("u1"))
	require.NoError(t, err)

	assert.Equal(t, "love", res.Intent)
	assert.Equal(t, core.RoleAssistant, res.Reply.Role)
	assert.Empty(t, res.Session.Data[flow.PizzaName])
	assert.False(t, res.Session.New)

	instructions := generator.Instructions()
	require.Len(t, instructions, 1)
	for _, label := range []string{"Base", "Toppings", "Size", "Sauce"} {
		assert.Contains(t, instructions[0], label+": (not provided)")
	}
}

// Second turn merges extracted entities into stored slots; still incomplete.
func TestRunTurn_PizzaSlotAccumulation(t *testing.T) {
	classifier := nlu.NewMockClassifier()
	classifier.AddResult("thin crust with mushrooms", core.ClassificationResult{
		Intent: "love",
		Entities: []core.Entity{
			{Type: "BASE_TYPE", Value: "thin"},
			{Type: "TOPPING_TYPE", Value: "mushrooms"},
		},
	})
	o := newTestOrchestrator(t, classifier, genai.NewMockGenerator())

	sess := core.NewSession("s1")
	sess.New = false

	res, err := o.RunTurn(context.Background(), "thin crust with mushrooms", sess, core.NewUser("u1"))
	require.NoError(t, err)

	assert.Equal(t, core.SlotState{"base": "thin", "toppings": "mushrooms"}, res.Session.Data[flow.PizzaName])
	// caller-supplied session untouched
	assert.Empty(t, sess.Data[flow.PizzaName])
}

// Confirming a complete order terminates and resets the flow state.
func TestRunTurn_PizzaConfirmPlacesOrder(t *testing.T) {
	classifier := nlu.NewMockClassifier()
	classifier.AddResult("yes place it", core.ClassificationResult{Intent: "confirm_order"})
	generator := genai.NewMockGenerator()
	o := newTestOrchestrator(t, classifier, generator)

	sess := core.NewSession("s1")
	sess.New = false
	sess.Data[flow.PizzaName] = core.SlotState{
		"base": "thin", "toppings": "mushrooms", "size": "large", "sauce": "tomato",
	}
	sess.Data[flow.BookingName] = core.SlotState{"date": "friday"}

	res, err := o.RunTurn(context.Background(), "yes place it", sess, core.NewUser("u1"))
	require.NoError(t, err)

	assert.Empty(t, res.Session.Data[flow.PizzaName], "pizza state resets for the next cycle")
	assert.Equal(t, core.SlotState{"date": "friday"}, res.Session.Data[flow.BookingName], "other flow keys preserved")

	instructions := generator.Instructions()
	require.Len(t, instructions, 1)
	assert.Contains(t, instructions[0], "complete pizza order")
	assert.Contains(t, instructions[0], "Base: thin")
}

// An explicit rejection terminates regardless of slot completeness.
func TestRunTurn_RejectionAlwaysTerminal(t *testing.T) {
	classifier := nlu.NewMockClassifier()
	classifier.AddResult("I hate pizza", core.ClassificationResult{Intent: "hate"})
	o := newTestOrchestrator(t, classifier, genai.NewMockGenerator())

	sess := core.NewSession("s1")
	sess.New = false
	sess.Data[flow.PizzaName] = core.SlotState{"base": "thin"}

	res, err := o.RunTurn(context.Background(), "I hate pizza", sess, core.NewUser("u1"))
	require.NoError(t, err)
	assert.Empty(t, res.Session.Data[flow.PizzaName])
}

func TestRunTurn_ClassifierFailureFallsBack(t *testing.T) {
	classifier := nlu.NewMockClassifier()
	classifier.FailWith(errors.New("nlu is down"))
	generator := genai.NewMockGenerator()
	o := newTestOrchestrator(t, classifier, generator)

	sess := core.NewSession("s1")
	sess.New = false
	sess.Data[flow.PizzaName] = core.SlotState{"base": "thin"}

	res, err := o.RunTurn(context.Background(), "anything at all", sess, core.NewUser("u1"))
	require.NoError(t, err, "classification failures are never surfaced")

	assert.Equal(t, core.FallbackIntent, res.Intent)
	// fallback routes to the general flow, leaving pizza state untouched
	assert.Equal(t, core.SlotState{"base": "thin"}, res.Session.Data[flow.PizzaName])
}

func TestRunTurn_ClassifierTimeoutFallsBack(t *testing.T) {
	slow := classifierFunc(func(ctx context.Context, _ string) (core.ClassificationResult, error) {
		select {
		case <-ctx.Done():
			return core.ClassificationResult{}, ctx.Err()
		case <-time.After(5 * time.Second):
			return core.ClassificationResult{Intent: "love"}, nil
		}
	})
	o, err := New(slow, genai.NewMockGenerator(), newTestRouter(), newTestRegistry(), func(o *Options) {
		o.ClassifyTimeout = 10 * time.Millisecond
	})
	require.NoError(t, err)

	res, err := o.RunTurn(context.Background(), "hello", core.NewSession("s1"), core.NewUser("u1"))
	require.NoError(t, err)
	assert.Equal(t, core.FallbackIntent, res.Intent)
}

func TestRunTurn_GeneratorFailureApologizes(t *testing.T) {
	classifier := nlu.NewMockClassifier()
	classifier.AddResult("hi", core.ClassificationResult{Intent: "greeting"})
	generator := genai.NewMockGenerator()
	generator.FailWith(errors.New("generation is down"))
	o := newTestOrchestrator(t, classifier, generator)

	res, err := o.RunTurn(context.Background(), "hi", core.NewSession("s1"), core.NewUser("u1"))
	require.NoError(t, err, "generation failures are never surfaced")
	assert.Equal(t, ApologyReply, res.Reply.Text)
}

// Two sequential turns on one session accumulate slots regardless of
// interleaved turns on an unrelated session.
func TestRunTurn_SessionIsolation(t *testing.T) {
	classifier := nlu.NewMockClassifier()
	classifier.AddResult("thin base", core.ClassificationResult{
		Intent:   "love",
		Entities: []core.Entity{{Type: "BASE_TYPE", Value: "thin"}},
	})
	classifier.AddResult("with olives", core.ClassificationResult{
		Intent:   "love",
		Entities: []core.Entity{{Type: "TOPPING_TYPE", Value: "olives"}},
	})
	o := newTestOrchestrator(t, classifier, genai.NewMockGenerator())
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		sessB := core.NewSession("session-b")
		userB := core.NewUser("u2")
		for i := 0; i < 20; i++ {
			res, err := o.RunTurn(ctx, fmt.Sprintf("unrelated turn %d", i), sessB, userB)
			assert.NoError(t, err)
			sessB = res.Session
		}
	}()

	sessA := core.NewSession("session-a")
	userA := core.NewUser("u1")

	res, err := o.RunTurn(ctx, "thin base", sessA, userA)
	require.NoError(t, err)
	res, err = o.RunTurn(ctx, "with olives", res.Session, userA)
	require.NoError(t, err)

	assert.Equal(t, core.SlotState{"base": "thin", "toppings": "olives"}, res.Session.Data[flow.PizzaName])
	wg.Wait()
}

// Concurrent turns on the same session id must serialize; both histories end
// up appended without loss.
func TestRunTurn_SameSessionSerializes(t *testing.T) {
	classifier := nlu.NewMockClassifier()
	o := newTestOrchestrator(t, classifier, genai.NewMockGenerator())
	ctx := context.Background()

	sess := core.NewSession("shared")
	user := core.NewUser("u1")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := o.RunTurn(ctx, fmt.Sprintf("turn %d", i), sess, user)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()
}

func TestRunTurn_HistoryGrowsAcrossTurns(t *testing.T) {
	classifier := nlu.NewMockClassifier()
	generator := genai.NewMockGenerator()
	o := newTestOrchestrator(t, classifier, generator)
	ctx := context.Background()

	sess := core.NewSession("s1")
	user := core.NewUser("u1")

	res, err := o.RunTurn(ctx, "first", sess, user)
	require.NoError(t, err)
	_, err = o.RunTurn(ctx, "second", res.Session, user)
	require.NoError(t, err)

	history, err := o.store.History("s1")
	require.NoError(t, err)
	require.Len(t, history, 4)
	assert.Equal(t, "first", history[0].Text)
	assert.Equal(t, core.RoleAssistant, history[1].Role)
	assert.Equal(t, "second", history[2].Text)
}

// classifierFunc adapts a function to core.Classifier for test doubles.
type classifierFunc func(ctx context.Context, text string) (core.ClassificationResult, error)

func (f classifierFunc) Classify(ctx context.Context, text string) (core.ClassificationResult, error) {
	return f(ctx, text)
}
