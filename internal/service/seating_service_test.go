package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/classroom-seating-api/internal/models"
	"github.com/noah-isme/classroom-seating-api/pkg/ai"
	appErrors "github.com/noah-isme/classroom-seating-api/pkg/errors"
)

type mockAIClient struct {
	mu       sync.Mutex
	text     string
	err      error
	requests []ai.Request
	release  chan struct{}
	started  chan struct{}
}

func (m *mockAIClient) Generate(ctx context.Context, req ai.Request) (*ai.Response, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()
	if m.started != nil {
		close(m.started)
	}
	if m.release != nil {
		<-m.release
	}
	if m.err != nil {
		return nil, m.err
	}
	return &ai.Response{Text: m.text, Model: "mock"}, nil
}

func (m *mockAIClient) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

type mockSeatingMetrics struct {
	outcomes []string
}

func (m *mockSeatingMetrics) RecordSeatingOutcome(mode, outcome string) {
	m.outcomes = append(m.outcomes, mode+":"+outcome)
}

func pairDesk() models.Desk {
	return models.Desk{ID: "d1", TypeCode: "11", X: 0, Y: 0, Width: 4, Height: 2, UserBlockedSeats: []int{}, Students: []string{}}
}

func TestSeatingServiceGenerateAppliesSeating(t *testing.T) {
	client := &mockAIClient{text: `{"seating": [[["Alice", "Bob"]]], "error": null}`}
	metrics := &mockSeatingMetrics{}
	svc := NewSeatingService(client, nil, metrics, nil)

	result, err := svc.Generate(context.Background(), SeatingRequest{
		Desks:  []models.Desk{pairDesk()},
		Roster: []string{"Alice", "Bob"},
	})

	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, []string{"Alice", "Bob"}, result[0].Students)
	require.Equal(t, 1, client.calls())
	assert.Equal(t, "generate", client.requests[0].Label)
	assert.Contains(t, client.requests[0].Prompt, "- Alice\n- Bob")
	assert.Equal(t, []string{"generate:success"}, metrics.outcomes)
	assert.False(t, svc.Busy())
}

func TestSeatingServiceInsufficientSeatsSkipsAI(t *testing.T) {
	client := &mockAIClient{}
	svc := NewSeatingService(client, nil, nil, nil)

	single := models.Desk{ID: "d1", TypeCode: "1", Width: 2, Height: 2}
	_, err := svc.Generate(context.Background(), SeatingRequest{
		Desks:  []models.Desk{single},
		Roster: []string{"Alice", "Bob"},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrInsufficientSeats)
	assert.Equal(t, 0, client.calls())
}

func TestSeatingServiceLocalValidation(t *testing.T) {
	cases := []struct {
		name string
		mode models.SeatingMode
		req  SeatingRequest
		want *appErrors.Error
	}{
		{"empty layout", models.SeatingModeGenerate, SeatingRequest{Roster: []string{"A"}}, appErrors.ErrEmptyLayout},
		{"empty roster", models.SeatingModeGenerate, SeatingRequest{Desks: []models.Desk{pairDesk()}}, appErrors.ErrEmptyRoster},
		{"blocked seats count", models.SeatingModeGenerate, SeatingRequest{
			Desks:  []models.Desk{{ID: "d1", TypeCode: "11", Width: 4, Height: 2, UserBlockedSeats: []int{0}}},
			Roster: []string{"A", "B"},
		}, appErrors.ErrInsufficientSeats},
		{"modify without arrangement", models.SeatingModeModify, SeatingRequest{
			Desks:  []models.Desk{pairDesk()},
			Roster: []string{"A"},
		}, appErrors.ErrNoArrangement},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := &mockAIClient{}
			svc := NewSeatingService(client, nil, nil, nil)
			var err error
			if tc.mode == models.SeatingModeModify {
				_, err = svc.Modify(context.Background(), tc.req)
			} else {
				_, err = svc.Generate(context.Background(), tc.req)
			}
			assert.ErrorIs(t, err, tc.want)
			assert.Equal(t, 0, client.calls())
		})
	}
}

func TestSeatingServiceModifyKeepsNeighbourPosition(t *testing.T) {
	client := &mockAIClient{text: `{"seating": [[[null, "Anna"]]], "error": null}`}
	svc := NewSeatingService(client, nil, nil, nil)

	current := pairDesk()
	current.Students = []string{"Petr", "Anna"}
	result, err := svc.Modify(context.Background(), SeatingRequest{
		Desks:       []models.Desk{pairDesk()},
		Roster:      []string{"Petr", "Anna"},
		Instruction: "Přesaď Petra jinam.",
		Current:     []models.Desk{current},
	})

	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, []string{"", "Anna"}, result[0].Students)
	assert.Equal(t, "modify", client.requests[0].Label)
	assert.Contains(t, client.requests[0].Prompt, "[Petr, Anna]")
	assert.Contains(t, client.requests[0].Prompt, "Přesaď Petra jinam.")
}

func TestSeatingServiceMapsAIFailures(t *testing.T) {
	cases := []struct {
		name    string
		client  *mockAIClient
		want    *appErrors.Error
		message string
	}{
		{
			name:    "declined",
			client:  &mockAIClient{text: `{"seating": null, "error": "Požadavky si odporují."}`},
			want:    appErrors.ErrAIDeclined,
			message: "Požadavky si odporují.",
		},
		{
			name:    "invalid shape",
			client:  &mockAIClient{text: `{"seating": [[["A"], ["B"]]]}`},
			want:    appErrors.ErrAIInvalidResponse,
			message: appErrors.ErrAIInvalidResponse.Message,
		},
		{
			name:    "unparseable",
			client:  &mockAIClient{text: "Omlouvám se."},
			want:    appErrors.ErrAICommunication,
			message: appErrors.ErrAICommunication.Message,
		},
		{
			name:    "transport",
			client:  &mockAIClient{err: errors.Join(ai.ErrCommunication, errors.New("dial tcp"))},
			want:    appErrors.ErrAICommunication,
			message: appErrors.ErrAICommunication.Message,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewSeatingService(tc.client, nil, nil, nil)
			_, err := svc.Generate(context.Background(), SeatingRequest{
				Desks:  []models.Desk{pairDesk()},
				Roster: []string{"A"},
			})
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.want)
			assert.Equal(t, tc.message, appErrors.FromError(err).Message)
			assert.Equal(t, 1, tc.client.calls())
			assert.False(t, svc.Busy())
		})
	}
}

func TestSeatingServiceRejectsConcurrentCalls(t *testing.T) {
	client := &mockAIClient{
		text:    `{"seating": [[["A", null]]]}`,
		release: make(chan struct{}),
		started: make(chan struct{}),
	}
	svc := NewSeatingService(client, nil, nil, nil)
	req := SeatingRequest{Desks: []models.Desk{pairDesk()}, Roster: []string{"A"}}

	done := make(chan error, 1)
	go func() {
		_, err := svc.Generate(context.Background(), req)
		done <- err
	}()

	select {
	case <-client.started:
	case <-time.After(2 * time.Second):
		t.Fatal("first call never reached the AI client")
	}
	assert.True(t, svc.Busy())

	_, err := svc.Generate(context.Background(), req)
	assert.ErrorIs(t, err, appErrors.ErrGenerationInProgress)

	close(client.release)
	require.NoError(t, <-done)
	assert.False(t, svc.Busy())
	assert.Equal(t, 1, client.calls())
}

func TestSeatingServiceWithoutClientIsDisabled(t *testing.T) {
	svc := NewSeatingService(nil, nil, nil, nil)

	_, err := svc.Generate(context.Background(), SeatingRequest{
		Desks:  []models.Desk{pairDesk()},
		Roster: []string{"A"},
	})

	assert.ErrorIs(t, err, appErrors.ErrAIDisabled)
}
