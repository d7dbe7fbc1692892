package router

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRouter_DefaultBehavior(t *testing.T) {
	r := New()

	assert.Equal(t, DefaultFlow, r.Route(""))
	assert.Equal(t, DefaultFlow, r.Route("never-registered"))

	r.SetDefaultFlow("support")
	assert.Equal(t, "support", r.Route(""))
	assert.Equal(t, "support", r.Route("never-registered"))
}

func TestRouter_RegisteredIntent(t *testing.T) {
	r := New()
	r.Register("love", "pizza")

	assert.Equal(t, "pizza", r.Route("love"))
	assert.Equal(t, DefaultFlow, r.Route("like"))
}

func TestRouter_LastWriteWins(t *testing.T) {
	r := New()
	r.Register("x", "a")
	r.Register("x", "b")

	assert.Equal(t, "b", r.Route("x"))
}

func TestRouter_RegisterMany(t *testing.T) {
	r := New()
	r.RegisterMany(map[string]string{
		"love":          "pizza",
		"hate":          "pizza",
		"confirm_order": "pizza",
		"booking":       "booking",
	})

	assert.Equal(t, "pizza", r.Route("confirm_order"))
	assert.Equal(t, "booking", r.Route("booking"))
	assert.Equal(t, []string{"booking", "confirm_order", "hate", "love"}, r.ListIntents())
}

func TestRouter_ConcurrentReads(t *testing.T) {
	r := New()
	for i := 0; i < 10; i++ {
		r.Register(fmt.Sprintf("intent-%d", i), "pizza")
	}

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = r.Route(fmt.Sprintf("intent-%d", j%10))
			}
			if i%4 == 0 {
				r.Register(fmt.Sprintf("intent-%d", i), "booking")
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, "booking", r.Route("intent-0"))
}
