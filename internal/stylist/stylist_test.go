package stylist

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
)

type fakeGen struct {
	calls atomic.Int32
	text  string
	err   error
	delay time.Duration
}

func (f *fakeGen) Generate(ctx context.Context, prompt string) (string, error) {
	f.calls.Add(1)
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.text, f.err
}

func TestStylingAdvice_NoModel(t *testing.T) {
	s := New(nil, Options{})
	assert.False(t, s.Enabled())
	assert.Equal(t, UnavailableAdvice, s.StylingAdvice(context.Background(), "1", "Oxford", "shiny"))
	assert.Equal(t, FallbackDescription, s.ProductDescription(context.Background(), "Oxford", ""))
}

func TestStylingAdvice_RemembersPerProduct(t *testing.T) {
	gen := &fakeGen{text: "  Wear it with black chinos.  "}
	s := New(gen, Options{Timeout: time.Second})

	got := s.StylingAdvice(context.Background(), "1", "Oxford", "shiny")
	assert.Equal(t, "Wear it with black chinos.", got)
	s.StylingAdvice(context.Background(), "1", "Oxford", "shiny")
	assert.Equal(t, int32(1), gen.calls.Load())

	s.Forget("1")
	s.StylingAdvice(context.Background(), "1", "Oxford", "shiny")
	assert.Equal(t, int32(2), gen.calls.Load())
}

func TestStylingAdvice_Fallbacks(t *testing.T) {
	s := New(&fakeGen{err: errors.New("quota")}, Options{})
	assert.Equal(t, FallbackAdvice, s.StylingAdvice(context.Background(), "1", "Oxford", "shiny"))

	s = New(&fakeGen{text: "   "}, Options{})
	assert.Equal(t, FallbackAdvice, s.StylingAdvice(context.Background(), "1", "Oxford", "shiny"))
	assert.Equal(t, FallbackDescription, s.ProductDescription(context.Background(), "Glide", "suede"))
}

func TestStylingAdvice_Timeout(t *testing.T) {
	s := New(&fakeGen{text: "late", delay: time.Second}, Options{Timeout: 10 * time.Millisecond})
	assert.Equal(t, FallbackAdvice, s.StylingAdvice(context.Background(), "1", "Oxford", "shiny"))
}

func TestBreakerOpensAfterRepeatedFailures(t *testing.T) {
	gen := &fakeGen{err: errors.New("down")}
	s := New(gen, Options{})
	for i := 0; i < 8; i++ {
		s.ProductDescription(context.Background(), "Glide", "k")
	}
	assert.Equal(t, int32(5), gen.calls.Load())
}

func TestCancelledCallersDoNotTripBreaker(t *testing.T) {
	gen := &fakeGen{text: "Cuffed jeans and a white tee."}
	s := New(gen, Options{Timeout: time.Second})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for i := 0; i < 5; i++ {
		assert.Equal(t, FallbackAdvice, s.StylingAdvice(ctx, "1", "Oxford", "shiny"))
	}
	assert.Equal(t, "Cuffed jeans and a white tee.", s.StylingAdvice(context.Background(), "1", "Oxford", "shiny"))
	assert.Equal(t, gobreaker.StateClosed, s.breaker.State())
}

func TestCanceledModelErrorsAreNotFailures(t *testing.T) {
	gen := &fakeGen{err: context.Canceled}
	s := New(gen, Options{})
	for i := 0; i < 8; i++ {
		s.ProductDescription(context.Background(), "Glide", "k")
	}
	assert.Equal(t, int32(8), gen.calls.Load())
	assert.Equal(t, gobreaker.StateClosed, s.breaker.State())
}

func TestLimiterBackpressureIsNotAFailure(t *testing.T) {
	gen := &fakeGen{text: "copy"}
	s := New(gen, Options{Timeout: 10 * time.Millisecond, RPS: 0.01})

	// the first call spends the only token; the rest cannot wait long enough
	assert.Equal(t, "copy", s.ProductDescription(context.Background(), "Glide", "a"))
	for i := 0; i < 7; i++ {
		assert.Equal(t, FallbackDescription, s.ProductDescription(context.Background(), "Glide", "b"))
	}
	assert.Equal(t, int32(1), gen.calls.Load())
	assert.Equal(t, gobreaker.StateClosed, s.breaker.State())
}

func TestSharedCallSurvivesFirstCallerLeaving(t *testing.T) {
	gen := &fakeGen{text: "copy", delay: 100 * time.Millisecond}
	s := New(gen, Options{Timeout: time.Second})

	first, cancel := context.WithCancel(context.Background())
	firstDone := make(chan string, 1)
	go func() { firstDone <- s.ProductDescription(first, "Glide", "suede") }()
	assert.Eventually(t, func() bool { return gen.calls.Load() == 1 }, time.Second, time.Millisecond)

	secondDone := make(chan string, 1)
	go func() { secondDone <- s.ProductDescription(context.Background(), "Glide", "suede") }()
	time.Sleep(10 * time.Millisecond)
	cancel()

	assert.Equal(t, FallbackDescription, <-firstDone)
	assert.Equal(t, "copy", <-secondDone)
	assert.Equal(t, int32(1), gen.calls.Load())
}

func TestIdenticalPromptsCollapse(t *testing.T) {
	gen := &fakeGen{text: "copy", delay: 50 * time.Millisecond}
	s := New(gen, Options{})

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, "copy", s.ProductDescription(context.Background(), "Glide", "suede"))
		}()
	}
	wg.Wait()
	assert.Less(t, gen.calls.Load(), int32(5))
}

func TestPrompts(t *testing.T) {
	assert.Contains(t, advicePrompt("The Urban Boot", "rugged"), `"The Urban Boot"`)
	p := descriptionPrompt("Glide", "sneaker")
	assert.True(t, strings.HasPrefix(p, "Write a compelling"))
	assert.Contains(t, p, "Keywords: sneaker.")
}
