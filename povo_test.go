package povo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/y3s-labs/povo/core"
	"github.com/y3s-labs/povo/flow"
	"github.com/y3s-labs/povo/genai"
	"github.com/y3s-labs/povo/nlu"
)

func TestEngine_ChatRoundTrip(t *testing.T) {
	classifier := nlu.NewMockClassifier()
	classifier.AddResult("thin crust please", core.ClassificationResult{
		Intent:   "love",
		Entities: []core.Entity{{Type: "BASE_TYPE", Value: "thin"}},
	})

	engine := New(classifier, genai.NewMockGenerator())
	require.NoError(t, engine.RegisterFlow(flow.NewPizza()))
	engine.RegisterIntent("love", flow.PizzaName)

	result, err := engine.Chat(context.Background(), "s1", "u1", "thin crust please")
	require.NoError(t, err)
	assert.Equal(t, "love", result.Intent)
	assert.NotEmpty(t, result.Reply.Text)

	// slot value survives into the next turn through the engine's store
	result2, err := engine.Chat(context.Background(), "s1", "u1", "anything else")
	require.NoError(t, err)
	assert.Equal(t, "thin", result2.Session.Data[flow.PizzaName]["base"])
}

func TestEngine_ChatUnknownIntentFallsBackToGeneral(t *testing.T) {
	engine := New(nlu.NewMockClassifier(), genai.NewMockGenerator())

	result, err := engine.Chat(context.Background(), "s1", "u1", "hello")
	require.NoError(t, err)
	assert.Equal(t, core.FallbackIntent, result.Intent)
}

func TestEngine_ChatRejectsNilProviders(t *testing.T) {
	engine := New(nil, nil)
	_, err := engine.Chat(context.Background(), "s1", "u1", "hello")
	assert.Error(t, err)
}
