// Package rewrite turns a dense sentence into plain language by
// delegating to an external text-generation service. Failures are
// reported as values, not errors: callers inspect the Outcome and never
// need recovery logic to use the adapter safely.
package rewrite

import (
	"context"
	"os"
	"strconv"
	"strings"
	"time"
)

const systemInstruction = "Rewrite the sentence into clear plain language without changing its meaning. Do not add obligations or omit details. Keep it concise."

// Outcome is the result of one rewrite attempt: either OK with the
// rewritten text, or a human-readable reason for the failure. The
// original sentence is never echoed back as a success.
type Outcome struct {
	OK     bool   `json:"ok"`
	Text   string `json:"text,omitempty"`
	Reason string `json:"reason,omitempty"`
}

func failure(reason string) Outcome {
	return Outcome{Reason: reason}
}

// Generator is the injected text-generation collaborator. Tests supply a
// fake; production uses the Gemini client.
type Generator interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

type Config struct {
	Model   string
	APIKey  string
	Timeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		Model:   getenvString("READRIGHT_REWRITE_MODEL", "gemini-1.5-flash"),
		APIKey:  strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		Timeout: time.Duration(getenvInt("READRIGHT_REWRITE_TIMEOUT_MS", 30000)) * time.Millisecond,
	}
}

// Rewriter wraps a Generator with the fixed instruction, a bounded
// timeout, and outcome-shaped error recovery. A nil Generator models the
// missing-credential state.
type Rewriter struct {
	gen     Generator
	timeout time.Duration
}

func New(gen Generator, timeout time.Duration) *Rewriter {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Rewriter{gen: gen, timeout: timeout}
}

// NewFromEnv builds a Gemini-backed rewriter, or an unconfigured one when
// no credential is present.
func NewFromEnv() *Rewriter {
	cfg := DefaultConfig()
	if cfg.APIKey == "" {
		return New(nil, cfg.Timeout)
	}
	return New(NewGemini(cfg.Model, cfg.APIKey), cfg.Timeout)
}

// Rewrite makes a single attempt, no retries. Every failure mode comes
// back as an Outcome with a reason.
func (r *Rewriter) Rewrite(ctx context.Context, sentence string) Outcome {
	if r == nil || r.gen == nil {
		return failure("rewrite service is not configured: set GEMINI_API_KEY")
	}
	sentence = strings.TrimSpace(sentence)
	if sentence == "" {
		return failure("nothing to rewrite: sentence is empty")
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	out, err := r.gen.Generate(ctx, systemInstruction, sentence)
	if err != nil {
		return failure("rewrite service error: " + err.Error())
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return failure("rewrite service returned no text")
	}
	return Outcome{OK: true, Text: out}
}

func getenvString(name, fallback string) string {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	return raw
}

func getenvInt(name string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
