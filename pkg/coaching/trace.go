package coaching

import (
	"time"

	"github.com/charmbracelet/log"
)

// Checkpoint names recorded by the engine. Finish derives its fixed
// duration keys from these.
const (
	CheckpointComposed      = "prompt_composed"
	CheckpointReplyReceived = "reply_received"
	CheckpointExtracted     = "suggestions_extracted"
)

// Trace timestamps pipeline phases for one request. It is request-scoped
// and not safe for concurrent use, which the pipeline never needs.
// Instrumentation supports the pipeline, it never steers it: every
// method degrades instead of panicking.
type Trace struct {
	logger      *log.Logger
	start       time.Time
	checkpoints map[string]time.Time
	now         func() time.Time
}

func NewTrace(logger *log.Logger) *Trace {
	return newTraceAt(logger, time.Now)
}

func newTraceAt(logger *log.Logger, now func() time.Time) *Trace {
	return &Trace{
		logger:      logger,
		start:       now(),
		checkpoints: make(map[string]time.Time),
		now:         now,
	}
}

// Record stores the current time under name. Re-recording a name
// overwrites it, so retried phases report their latest attempt.
func (t *Trace) Record(name string) {
	t.checkpoints[name] = t.now()
}

// Duration returns the elapsed time between two checkpoints. A missing
// checkpoint falls back to the pipeline start.
func (t *Trace) Duration(from, to string) time.Duration {
	return t.at(to).Sub(t.at(from))
}

// DurationSince returns the elapsed time from a checkpoint to now.
func (t *Trace) DurationSince(from string) time.Duration {
	return t.now().Sub(t.at(from))
}

func (t *Trace) at(name string) time.Time {
	if ts, ok := t.checkpoints[name]; ok {
		return ts
	}
	return t.start
}

// Finish builds the structured report: fixed per-phase duration keys in
// milliseconds, merged with caller extras, logged once. The report is
// returned so the caller can hand it to an analytics collaborator.
func (t *Trace) Finish(extra map[string]any) map[string]any {
	report := map[string]any{
		"compose_ms":    t.Duration("", CheckpointComposed).Milliseconds(),
		"completion_ms": t.Duration(CheckpointComposed, CheckpointReplyReceived).Milliseconds(),
		"extract_ms":    t.Duration(CheckpointReplyReceived, CheckpointExtracted).Milliseconds(),
		"total_ms":      t.DurationSince("").Milliseconds(),
	}
	for key, value := range extra {
		report[key] = value
	}

	fields := make([]any, 0, len(report)*2)
	for key, value := range report {
		fields = append(fields, key, value)
	}
	t.logger.Info("pipeline trace", fields...)

	return report
}
