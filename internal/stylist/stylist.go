// Package stylist produces marketing copy with a text generation model.
// Every call returns usable text: failures degrade to fixed fallback strings.
package stylist

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sony/gobreaker/v2"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	applog "shinyshoes/internal/log"
)

const (
	UnavailableAdvice   = "AI styling advice is currently unavailable. Please check back later!"
	FallbackAdvice      = "Pair these with some dark denim and a vintage tee for a classic look."
	FallbackDescription = "Premium quality sneakers designed for comfort and style."

	defaultKeywords = "sneaker"
)

var (
	errEmptyText   = errors.New("model returned no text")
	errRateLimited = errors.New("local rate limit")
)

// Generator turns a prompt into text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Options struct {
	Timeout time.Duration
	// RPS caps outbound calls; zero disables the limiter.
	RPS float64
}

type Stylist struct {
	gen     Generator
	timeout time.Duration
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker[string]
	group   singleflight.Group

	mu     sync.RWMutex
	advice map[string]string
}

// New returns a Stylist. A nil gen means no model is configured.
func New(gen Generator, opts Options) *Stylist {
	s := &Stylist{gen: gen, timeout: opts.Timeout, advice: map[string]string{}}
	if opts.RPS > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(opts.RPS), 1)
	}
	s.breaker = gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:    "genai",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= 5
		},
		// Only the model's own failures count against it.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled) || errors.Is(err, errRateLimited)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			applog.Info(nil, "stylist.breaker.state", map[string]any{"from": from.String(), "to": to.String()})
		},
	})
	return s
}

func (s *Stylist) Enabled() bool { return s != nil && s.gen != nil }

// StylingAdvice suggests an outfit for a shoe. Successful advice is remembered per product.
func (s *Stylist) StylingAdvice(ctx context.Context, productID, name, description string) string {
	if !s.Enabled() {
		return UnavailableAdvice
	}
	s.mu.RLock()
	cached, ok := s.advice[productID]
	s.mu.RUnlock()
	if ok {
		return cached
	}

	text, err := s.generate(ctx, advicePrompt(name, description))
	if err != nil {
		applog.Warn(nil, "stylist.advice.fail", err, map[string]any{"product": productID})
		return FallbackAdvice
	}
	s.mu.Lock()
	s.advice[productID] = text
	s.mu.Unlock()
	return text
}

// Forget drops remembered advice, used when a product leaves the catalog.
func (s *Stylist) Forget(productID string) {
	if s == nil {
		return
	}
	s.mu.Lock()
	delete(s.advice, productID)
	s.mu.Unlock()
}

// ProductDescription drafts copy for the admin product form.
func (s *Stylist) ProductDescription(ctx context.Context, name, keywords string) string {
	if !s.Enabled() {
		return FallbackDescription
	}
	if strings.TrimSpace(keywords) == "" {
		keywords = defaultKeywords
	}
	text, err := s.generate(ctx, descriptionPrompt(name, keywords))
	if err != nil {
		applog.Warn(nil, "stylist.describe.fail", err, map[string]any{"name": name})
		return FallbackDescription
	}
	return text
}

// generate collapses identical in-flight prompts and runs the call through the
// breaker, the timeout and the limiter. The shared call is detached from the
// caller that started it, so one caller leaving does not fail the others.
func (s *Stylist) generate(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	ch := s.group.DoChan(prompt, func() (any, error) {
		return s.breaker.Execute(func() (string, error) {
			return s.call(context.WithoutCancel(ctx), prompt)
		})
	})
	select {
	case r := <-ch:
		if r.Err != nil {
			return "", r.Err
		}
		return r.Val.(string), nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (s *Stylist) call(ctx context.Context, prompt string) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("%w: %v", errRateLimited, err)
		}
	}
	text, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", errEmptyText
	}
	return text, nil
}

func advicePrompt(name, description string) string {
	return fmt.Sprintf(`You are a high-end streetwear fashion stylist for "ShinyShoes".
Give me a short, punchy, and trendy outfit recommendation (max 50 words)
for a customer who just bought the %q.

Shoe Description: %q.

Focus on complementary colors and current streetwear trends.
Do not use hashtags. Keep it cool and professional.`, name, description)
}

func descriptionPrompt(name, keywords string) string {
	return fmt.Sprintf(`Write a compelling, premium e-commerce product description (max 2 sentences) for a sneaker named %q. Keywords: %s. Tone: Hypebeast, Luxury.`, name, keywords)
}
