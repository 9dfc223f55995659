package publish

import (
	"context"
	"log/slog"
)

// Applier performs a single change against the API.
type Applier interface {
	Apply(ctx context.Context, change Change) error
}

// Failure records a change that could not be published.
type Failure struct {
	Change Change
	Err    error
}

// Result summarizes one publish run.
type Result struct {
	Succeeded int
	Failures  []Failure
}

// Failed returns the number of changes that errored.
func (r Result) Failed() int {
	return len(r.Failures)
}

// OK reports whether every change was published.
func (r Result) OK() bool {
	return len(r.Failures) == 0
}

// Publisher replays a queue sequentially.
type Publisher struct {
	api Applier
	log *slog.Logger
}

func NewPublisher(api Applier, log *slog.Logger) *Publisher {
	if log == nil {
		log = slog.Default()
	}
	return &Publisher{api: api, log: log}
}

// Publish applies every queued change in order. A failure is recorded and the
// loop moves on; there is no retry and nothing already applied is rolled back.
// The queue is cleared only when all changes succeeded.
func (p *Publisher) Publish(ctx context.Context, q *Queue) Result {
	var result Result

	for _, change := range q.Changes() {
		if err := p.api.Apply(ctx, change); err != nil {
			p.log.Error("publish change failed",
				slog.String("type", string(change.Type)),
				slog.String("action", string(change.Action)),
				slog.String("id", change.ID),
				slog.Any("error", err),
			)
			result.Failures = append(result.Failures, Failure{Change: change, Err: err})
			continue
		}
		result.Succeeded++
		p.log.Info("change published",
			slog.String("type", string(change.Type)),
			slog.String("action", string(change.Action)),
			slog.String("id", change.ID),
		)
	}

	if result.OK() {
		q.Discard()
	}
	return result
}
