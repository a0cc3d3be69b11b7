package dictation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompose(t *testing.T) {
	cases := []struct {
		name, base, transcript, want string
	}{
		{"empty base", "", "Anna", "Anna"},
		{"empty transcript", "Petr", "", "Petr"},
		{"space inserted", "Petr", "Anna", "Petr Anna"},
		{"newline kept", "Petr\n", "Anna", "Petr\nAnna"},
		{"leading space trimmed", "Petr ", "  Anna", "Petr Anna"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Compose(tc.base, tc.transcript))
		})
	}
}

func TestSessionRebuildsFromBase(t *testing.T) {
	session := NewSession(nil)
	in := make(chan Transcript)
	out := session.Start(context.Background(), "Petr\n", in)

	go func() {
		in <- Transcript{Text: "Anna"}
		in <- Transcript{Text: "Anna Nová"}
		in <- Transcript{Text: "Anna Nová", Final: true}
		close(in)
	}()

	var got []string
	for text := range out {
		got = append(got, text)
	}

	assert.Equal(t, []string{"Petr\nAnna", "Petr\nAnna Nová", "Petr\nAnna Nová"}, got)
	assert.Equal(t, "Petr\nAnna Nová", session.Latest())
	assert.False(t, session.Running())
}

func TestSessionCancellationClosesOutput(t *testing.T) {
	session := NewSession(nil)
	in := make(chan Transcript)
	ctx, cancel := context.WithCancel(context.Background())
	out := session.Start(ctx, "", in)

	in <- Transcript{Text: "Jana"}
	require.Equal(t, "Jana", <-out)
	cancel()

	select {
	case _, ok := <-out:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("output channel was not closed after cancellation")
	}
	assert.Equal(t, "Jana", session.Latest())
}
