package ai

import (
	"time"

	"go.uber.org/zap"
)

// Call outcomes reported to observers.
const (
	OutcomeSuccess       = "success"
	OutcomeCommunication = "communication_error"
	OutcomeTimeout       = "timeout"
)

// CallEvent records metadata about a single generation call.
type CallEvent struct {
	Label   string
	Model   string
	Latency time.Duration
	Outcome string
}

// Observer receives events about generation calls for logging and metrics.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// NoopObserver discards all events.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}

// LogObserver writes call events to a zap logger.
type LogObserver struct {
	logger *zap.Logger
}

// NewLogObserver creates an Observer that logs events.
func NewLogObserver(logger *zap.Logger) *LogObserver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogObserver{logger: logger}
}

func (o *LogObserver) OnCallComplete(event CallEvent) {
	fields := []zap.Field{
		zap.String("label", event.Label),
		zap.String("model", event.Model),
		zap.Duration("latency", event.Latency),
		zap.String("outcome", event.Outcome),
	}
	if event.Outcome != OutcomeSuccess {
		o.logger.Warn("ai_call", fields...)
		return
	}
	o.logger.Info("ai_call", fields...)
}

// Observers fans an event out to several observers.
type Observers []Observer

func (o Observers) OnCallComplete(event CallEvent) {
	for _, obs := range o {
		if obs != nil {
			obs.OnCallComplete(event)
		}
	}
}
