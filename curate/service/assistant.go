package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/wecurate/wecurate/curate"
)

// Fixed user-facing phrases for the chat surface. Raw oracle failures are
// never shown to the end user.
const (
	ChatFallbackReply = "Sorry, I can't answer that right now."
	ChatErrorReply    = "The request timed out or an error occurred. Please try again later."
)

// MaxSummaryLength is the longest summary the oracle may return, in runes.
const MaxSummaryLength = 100

// Oracle is the external generative-text service. Implementations wrap a real
// model API; tests substitute a deterministic stub.
type Oracle interface {
	// Classify asks the oracle to categorize and summarize an article. The
	// category in the response is constrained to the given labels.
	Classify(ctx context.Context, title, snippet string, categories []string) (*curate.Classification, error)

	// NewChat opens a conversational session seeded with a serialized
	// snapshot of the article corpus.
	NewChat(ctx context.Context, contextDoc string) (ChatSession, error)
}

// ChatSession is one open conversation with the oracle.
type ChatSession interface {
	Send(ctx context.Context, message string) (string, error)
}

// AssistantService defines the interface for the oracle-backed features.
type AssistantService interface {
	// Classify returns a validated classification for the given article
	// text, or ErrOracle. It never fabricates a fallback result.
	Classify(ctx context.Context, title, snippet string) (*curate.Classification, error)

	// SendMessage sends one chat message and returns the reply text. Oracle
	// failures degrade to a fixed phrase rather than an error.
	SendMessage(ctx context.Context, message string) string
}

// assistantService is the default implementation of AssistantService. It
// keeps at most one open chat session; the session is dropped whenever the
// library's revision moves, so the next message reopens with fresh context.
type assistantService struct {
	store  *Store
	oracle Oracle

	mu      sync.Mutex
	chat    ChatSession
	chatRev uint64
}

// NewAssistantService creates a new AssistantService. A nil oracle is
// allowed: classify then fails with ErrOracle and chat degrades to the fixed
// error phrase.
func NewAssistantService(store *Store, oracle Oracle) AssistantService {
	return &assistantService{store: store, oracle: oracle}
}

// Classify delegates to the oracle with the current registry labels and
// validates the response shape. Anything malformed is an oracle error.
func (s *assistantService) Classify(ctx context.Context, title, snippet string) (*curate.Classification, error) {
	if s.oracle == nil {
		return nil, curate.ErrOracle
	}

	var labels []string
	s.store.View(func(lib *curate.Library) {
		labels = append([]string(nil), lib.Categories...)
	})

	result, err := s.oracle.Classify(ctx, title, snippet, labels)
	if err != nil {
		slog.Warn("classification failed", "error", err)
		return nil, curate.ErrOracle
	}
	if err := validateClassification(result, labels); err != nil {
		slog.Warn("classification rejected", "reason", err)
		return nil, curate.ErrOracle
	}
	return result, nil
}

// validateClassification normalizes the response in place, then checks it.
// Tags are cleaned before the count check so blank tokens can't sneak a
// too-short list past it.
func validateClassification(c *curate.Classification, labels []string) error {
	if c == nil {
		return fmt.Errorf("empty response")
	}
	c.Tags = curate.CleanTags(c.Tags)
	valid := false
	for _, label := range labels {
		if c.Category == label {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("category %q is not a registry label", c.Category)
	}
	if len(c.Tags) < 3 || len(c.Tags) > 5 {
		return fmt.Errorf("expected 3-5 tags, got %d", len(c.Tags))
	}
	summary := strings.TrimSpace(c.Summary)
	if summary == "" {
		return fmt.Errorf("empty summary")
	}
	if utf8.RuneCountInString(summary) > MaxSummaryLength {
		return fmt.Errorf("summary longer than %d characters", MaxSummaryLength)
	}
	c.Summary = summary
	return nil
}

// SendMessage sends one message on the current chat session, reopening the
// session first if the corpus changed since it was seeded. An empty reply
// becomes the fixed fallback phrase; any failure becomes the fixed error
// phrase.
func (s *assistantService) SendMessage(ctx context.Context, message string) string {
	if s.oracle == nil {
		return ChatErrorReply
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rev := s.store.Revision()
	if s.chat == nil || s.chatRev != rev {
		chat, err := s.oracle.NewChat(ctx, s.contextDocument())
		if err != nil {
			slog.Warn("failed to open chat session", "error", err)
			return ChatErrorReply
		}
		s.chat = chat
		s.chatRev = rev
	}

	reply, err := s.chat.Send(ctx, message)
	if err != nil {
		slog.Warn("chat message failed", "error", err)
		// Drop the session so the next message starts clean.
		s.chat = nil
		return ChatErrorReply
	}
	if strings.TrimSpace(reply) == "" {
		return ChatFallbackReply
	}
	return reply
}

// contextDocument serializes the corpus for the chat system instruction, one
// article per line.
func (s *assistantService) contextDocument() string {
	var b strings.Builder
	s.store.View(func(lib *curate.Library) {
		for _, a := range lib.Articles {
			fmt.Fprintf(&b, "[%s] %s (author: %s): %s\n", a.Category, a.Title, a.Author, a.Summary)
		}
	})
	return b.String()
}
