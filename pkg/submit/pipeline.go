// Package submit turns a validated draft into a single multipart POST and
// interprets what the server answers.
package submit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"

	"github.com/finalwork/recipe-terminal/pkg/draft"
	"github.com/finalwork/recipe-terminal/pkg/journal"
	"github.com/finalwork/recipe-terminal/pkg/models"
	"github.com/finalwork/recipe-terminal/pkg/telemetry"
)

// Messages shown for submission outcomes
const (
	MsgFailed          = "Failed to create the recipe!"
	MsgSomethingWrong  = "Something went wrong!"
	msgSuccessTemplate = `Recipe "%s" created successfully!`
)

// ErrBusy is returned by Begin while another submission is in progress
var ErrBusy = errors.New("submission already in progress")

// State is the pipeline phase
type State int

const (
	StateIdle State = iota
	StateValidating
	StateSubmitting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateSubmitting:
		return "submitting"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Status classifies a finished submission
type Status int

const (
	Succeeded Status = iota
	// Rejected means validation failed and nothing was sent
	Rejected
	Failed
)

func (s Status) String() string {
	switch s {
	case Succeeded:
		return "succeeded"
	case Rejected:
		return "rejected"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Outcome is the user-facing result of a submission cycle
type Outcome struct {
	Status     Status
	Title      string
	Message    string
	StatusCode int
}

// OK reports whether the recipe was created
func (o Outcome) OK() bool {
	return o.Status == Succeeded
}

// Recorder persists finished network attempts
type Recorder interface {
	Record(ctx context.Context, e journal.Entry) error
}

// Attempt is one in-flight submission. The payload is fixed when the
// attempt is created; later draft edits are not seen.
type Attempt struct {
	Payload *Payload
	creator Creator
	log     *slog.Logger
}

// Result is what Send observed
type Result struct {
	Response *Response
	Err      error
}

// Send performs exactly one request. It is safe to call from a tea.Cmd.
func (a *Attempt) Send(ctx context.Context) Result {
	ctx, span := telemetry.Tracer("submit").Start(ctx, "recipe.create")
	defer span.End()
	span.SetAttributes(
		attribute.String("recipe.title", a.Payload.Title),
		attribute.Int("recipe.ingredients", a.Payload.IngredientCount),
		attribute.Bool("recipe.has_image", a.Payload.Image != nil),
		attribute.Int("request.bytes", len(a.Payload.Body)),
	)

	resp, err := a.creator.Create(ctx, a.Payload)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		a.log.Warn("recipe submission failed", "title", a.Payload.Title, "error", err)
		return Result{Err: err}
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if !resp.OK() {
		span.SetStatus(codes.Error, fmt.Sprintf("status %d", resp.StatusCode))
	}
	return Result{Response: resp}
}

// Pipeline coordinates validation, encoding and sending. Only one
// submission may be outstanding at a time.
type Pipeline struct {
	creator  Creator
	recorder Recorder
	log      *slog.Logger
	attempts metric.Int64Counter

	mu    sync.Mutex
	state State
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithRecorder records every finished network attempt
func WithRecorder(r Recorder) Option {
	return func(p *Pipeline) {
		p.recorder = r
	}
}

// NewPipeline creates an idle pipeline sending through creator
func NewPipeline(creator Creator, log *slog.Logger, opts ...Option) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	p := &Pipeline{
		creator: creator,
		log:     log,
	}
	for _, opt := range opts {
		opt(p)
	}

	counter, err := telemetry.Meter("submit").Int64Counter("recipes.submissions",
		metric.WithDescription("Recipe submissions that reached the network"))
	if err != nil {
		log.Warn("failed to create submission counter", "error", err)
	}
	p.attempts = counter
	return p
}

// State returns the current phase
func (p *Pipeline) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Busy reports whether a submission is in progress
func (p *Pipeline) Busy() bool {
	return p.State() != StateIdle
}

// Begin validates and encodes d. It returns ErrBusy when a submission is
// already outstanding and a *draft.ValidationError when d is incomplete;
// in both cases nothing is sent.
func (p *Pipeline) Begin(d models.Draft) (*Attempt, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != StateIdle {
		return nil, ErrBusy
	}
	p.state = StateValidating

	if err := draft.Validate(d); err != nil {
		p.state = StateIdle
		p.log.Debug("draft rejected", "reason", err)
		return nil, err
	}

	payload, err := Encode(d)
	if err != nil {
		p.state = StateIdle
		return nil, fmt.Errorf("failed to encode recipe: %w", err)
	}

	p.state = StateSubmitting
	return &Attempt{Payload: payload, creator: p.creator, log: p.log}, nil
}

// Finish interprets the result of a, records it and returns the pipeline
// to idle.
func (p *Pipeline) Finish(ctx context.Context, a *Attempt, r Result) Outcome {
	out := Interpret(a.Payload.Title, r)

	p.mu.Lock()
	p.state = StateIdle
	p.mu.Unlock()

	status := journal.StatusSucceeded
	if !out.OK() {
		status = journal.StatusFailed
	}
	if p.attempts != nil {
		p.attempts.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
	}

	if p.recorder != nil {
		err := p.recorder.Record(ctx, journal.Entry{
			Title:           a.Payload.Title,
			IngredientCount: a.Payload.IngredientCount,
			HasImage:        a.Payload.Image != nil,
			Status:          status,
			StatusCode:      out.StatusCode,
			Message:         out.Message,
		})
		if err != nil {
			p.log.Warn("failed to journal submission", "error", err)
		}
	}

	p.log.Info("recipe submission finished", "title", out.Title, "status", status, "code", out.StatusCode)
	return out
}

// Submit runs a whole cycle synchronously. Only ErrBusy is returned as an
// error; everything else is folded into the outcome.
func (p *Pipeline) Submit(ctx context.Context, d models.Draft) (Outcome, error) {
	a, err := p.Begin(d)
	if err != nil {
		if errors.Is(err, ErrBusy) {
			return Outcome{}, err
		}
		return OutcomeForError(d.Title, err), nil
	}
	return p.Finish(ctx, a, a.Send(ctx)), nil
}

// OutcomeForError converts a Begin failure into an outcome
func OutcomeForError(title string, err error) Outcome {
	var verr *draft.ValidationError
	if errors.As(err, &verr) {
		return Outcome{Status: Rejected, Title: title, Message: verr.Error()}
	}
	return Outcome{Status: Failed, Title: title, Message: MsgFailed}
}

// Interpret maps a send result to the message shown to the user
func Interpret(title string, r Result) Outcome {
	if r.Err != nil || r.Response == nil {
		return Outcome{Status: Failed, Title: title, Message: MsgFailed}
	}

	resp := r.Response
	if resp.OK() {
		return Outcome{
			Status:     Succeeded,
			Title:      title,
			Message:    fmt.Sprintf(msgSuccessTemplate, title),
			StatusCode: resp.StatusCode,
		}
	}

	out := Outcome{Status: Failed, Title: title, StatusCode: resp.StatusCode}

	var body any
	if err := json.Unmarshal(resp.Body, &body); err != nil || body == nil {
		out.Message = MsgFailed
		return out
	}

	out.Message = MsgSomethingWrong
	if obj, ok := body.(map[string]any); ok && truthy(obj["error"]) {
		out.Message = fmt.Sprintf("Error: %v", obj["error"])
	}
	return out
}

// truthy reports whether a decoded JSON value counts as a present error.
// Empty strings, zero, false and null do not.
func truthy(v any) bool {
	switch v := v.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case float64:
		return v != 0
	default:
		return true
	}
}
