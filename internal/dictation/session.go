package dictation

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Transcript is one recogniser event. Text is cumulative: it holds everything
// heard since listening started, not just the newest words.
type Transcript struct {
	Text  string
	Final bool
}

// Session turns a transcript stream into full-text updates. The text captured
// when listening starts stays fixed and every event replaces what follows it,
// so repeated partial results never duplicate words.
type Session struct {
	logger *zap.Logger

	mu      sync.Mutex
	latest  string
	running bool
}

// NewSession constructs a session.
func NewSession(logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{logger: logger}
}

// Start consumes transcripts until ctx is cancelled or the input closes. The
// returned channel receives compose(base, transcript) for each event and is
// closed when the subscription ends.
func (s *Session) Start(ctx context.Context, base string, transcripts <-chan Transcript) <-chan string {
	out := make(chan string)

	s.mu.Lock()
	s.latest = base
	s.running = true
	s.mu.Unlock()

	go func() {
		defer close(out)
		defer s.stop()
		for {
			select {
			case <-ctx.Done():
				s.logger.Debug("dictation cancelled")
				return
			case event, ok := <-transcripts:
				if !ok {
					return
				}
				text := Compose(base, event.Text)
				s.mu.Lock()
				s.latest = text
				s.mu.Unlock()
				select {
				case <-ctx.Done():
					return
				case out <- text:
				}
			}
		}
	}()
	return out
}

// Latest returns the most recently composed text.
func (s *Session) Latest() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest
}

// Running reports whether a subscription is active.
func (s *Session) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Session) stop() {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}

// Compose joins the base text and a cumulative transcript with a single space
// when neither side already provides whitespace.
func Compose(base, transcript string) string {
	transcript = strings.TrimLeft(transcript, " \t")
	switch {
	case transcript == "":
		return base
	case base == "":
		return transcript
	}
	last := base[len(base)-1]
	if last == ' ' || last == '\n' || last == '\t' {
		return base + transcript
	}
	return base + " " + transcript
}
