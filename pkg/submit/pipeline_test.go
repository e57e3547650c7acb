package submit

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finalwork/recipe-terminal/pkg/draft"
	"github.com/finalwork/recipe-terminal/pkg/journal"
	"github.com/finalwork/recipe-terminal/pkg/models"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func soup() models.Draft {
	return models.Draft{
		Title:       "Soup",
		Ingredients: []string{"water", "salt"},
		Description: "Hot",
		Directions:  "Boil",
	}
}

type fakeCreator struct {
	mu    sync.Mutex
	calls int
	resp  *Response
	err   error
}

func (f *fakeCreator) Create(ctx context.Context, p *Payload) (*Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.resp, f.err
}

type memRecorder struct {
	entries []journal.Entry
	err     error
}

func (m *memRecorder) Record(ctx context.Context, e journal.Entry) error {
	m.entries = append(m.entries, e)
	return m.err
}

func TestInterpret(t *testing.T) {
	tests := []struct {
		name       string
		result     Result
		wantStatus Status
		wantMsg    string
	}{
		{
			name:       "created",
			result:     Result{Response: &Response{StatusCode: 201, Body: []byte(`{"id":1}`)}},
			wantStatus: Succeeded,
			wantMsg:    `Recipe "Soup" created successfully!`,
		},
		{
			name:       "ok with empty body",
			result:     Result{Response: &Response{StatusCode: 200}},
			wantStatus: Succeeded,
			wantMsg:    `Recipe "Soup" created successfully!`,
		},
		{
			name:       "server error message",
			result:     Result{Response: &Response{StatusCode: 400, Body: []byte(`{"error":"Title too long"}`)}},
			wantStatus: Failed,
			wantMsg:    "Error: Title too long",
		},
		{
			name:       "json without error",
			result:     Result{Response: &Response{StatusCode: 500, Body: []byte(`{}`)}},
			wantStatus: Failed,
			wantMsg:    "Something went wrong!",
		},
		{
			name:       "empty error string",
			result:     Result{Response: &Response{StatusCode: 422, Body: []byte(`{"error":""}`)}},
			wantStatus: Failed,
			wantMsg:    "Something went wrong!",
		},
		{
			name:       "non string error",
			result:     Result{Response: &Response{StatusCode: 409, Body: []byte(`{"error":42}`)}},
			wantStatus: Failed,
			wantMsg:    "Error: 42",
		},
		{
			name:       "false error",
			result:     Result{Response: &Response{StatusCode: 400, Body: []byte(`{"error":false}`)}},
			wantStatus: Failed,
			wantMsg:    "Something went wrong!",
		},
		{
			name:       "zero error",
			result:     Result{Response: &Response{StatusCode: 400, Body: []byte(`{"error":0}`)}},
			wantStatus: Failed,
			wantMsg:    "Something went wrong!",
		},
		{
			name:       "array body",
			result:     Result{Response: &Response{StatusCode: 400, Body: []byte(`[]`)}},
			wantStatus: Failed,
			wantMsg:    "Something went wrong!",
		},
		{
			name:       "string body",
			result:     Result{Response: &Response{StatusCode: 400, Body: []byte(`"oops"`)}},
			wantStatus: Failed,
			wantMsg:    "Something went wrong!",
		},
		{
			name:       "null body",
			result:     Result{Response: &Response{StatusCode: 400, Body: []byte(`null`)}},
			wantStatus: Failed,
			wantMsg:    "Failed to create the recipe!",
		},
		{
			name:       "empty error body",
			result:     Result{Response: &Response{StatusCode: 500}},
			wantStatus: Failed,
			wantMsg:    "Failed to create the recipe!",
		},
		{
			name:       "html body",
			result:     Result{Response: &Response{StatusCode: 502, Body: []byte(`<html>Bad Gateway</html>`)}},
			wantStatus: Failed,
			wantMsg:    "Failed to create the recipe!",
		},
		{
			name:       "transport failure",
			result:     Result{Err: errors.New("connection refused")},
			wantStatus: Failed,
			wantMsg:    "Failed to create the recipe!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Interpret("Soup", tt.result)
			assert.Equal(t, tt.wantStatus, out.Status)
			assert.Equal(t, tt.wantMsg, out.Message)
		})
	}
}

func TestBeginRejectsInvalidDraft(t *testing.T) {
	creator := &fakeCreator{resp: &Response{StatusCode: 201}}
	p := NewPipeline(creator, discardLogger())

	d := soup()
	d.Title = ""
	a, err := p.Begin(d)
	require.Error(t, err)
	assert.Nil(t, a)

	var verr *draft.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, draft.ReasonMissingName, verr.Reason)
	assert.Equal(t, StateIdle, p.State())
	assert.Zero(t, creator.calls)
}

func TestBeginWhileSubmittingIsBusy(t *testing.T) {
	creator := &fakeCreator{resp: &Response{StatusCode: 201}}
	p := NewPipeline(creator, discardLogger())

	a, err := p.Begin(soup())
	require.NoError(t, err)
	assert.Equal(t, StateSubmitting, p.State())
	assert.True(t, p.Busy())

	_, err = p.Begin(soup())
	assert.ErrorIs(t, err, ErrBusy)

	out := p.Finish(context.Background(), a, a.Send(context.Background()))
	assert.True(t, out.OK())
	assert.Equal(t, StateIdle, p.State())
	assert.Equal(t, 1, creator.calls)
}

func TestAttemptPayloadIsCapturedAtBegin(t *testing.T) {
	p := NewPipeline(&fakeCreator{resp: &Response{StatusCode: 201}}, discardLogger())

	d := soup()
	a, err := p.Begin(d)
	require.NoError(t, err)

	d.Title = "Changed"
	d.Ingredients[0] = "milk"

	assert.Equal(t, "Soup", a.Payload.Title)
	assert.Equal(t, "water", a.Payload.Fields[3].Value)
}

func TestFinishRecordsJournal(t *testing.T) {
	rec := &memRecorder{}
	creator := &fakeCreator{resp: &Response{StatusCode: 400, Body: []byte(`{"error":"duplicate"}`)}}
	p := NewPipeline(creator, discardLogger(), WithRecorder(rec))

	out, err := p.Submit(context.Background(), soup())
	require.NoError(t, err)
	assert.Equal(t, "Error: duplicate", out.Message)

	require.Len(t, rec.entries, 1)
	e := rec.entries[0]
	assert.Equal(t, "Soup", e.Title)
	assert.Equal(t, 2, e.IngredientCount)
	assert.False(t, e.HasImage)
	assert.Equal(t, journal.StatusFailed, e.Status)
	assert.Equal(t, 400, e.StatusCode)
}

func TestRecorderErrorDoesNotChangeOutcome(t *testing.T) {
	rec := &memRecorder{err: errors.New("disk full")}
	p := NewPipeline(&fakeCreator{resp: &Response{StatusCode: 201}}, discardLogger(), WithRecorder(rec))

	out, err := p.Submit(context.Background(), soup())
	require.NoError(t, err)
	assert.True(t, out.OK())
}

func TestSubmitValidationFailureIsNotJournaled(t *testing.T) {
	rec := &memRecorder{}
	creator := &fakeCreator{resp: &Response{StatusCode: 201}}
	p := NewPipeline(creator, discardLogger(), WithRecorder(rec))

	d := soup()
	d.Ingredients = []string{"water", ""}
	out, err := p.Submit(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, Rejected, out.Status)
	assert.Equal(t, "Please add at least one ingredient!", out.Message)
	assert.Empty(t, rec.entries)
	assert.Zero(t, creator.calls)
}

func TestSubmitAgainstServer(t *testing.T) {
	var gotTitle, gotImage string
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("ParseMultipartForm: %v", err)
		}
		gotTitle = r.FormValue("title")
		if f, h, err := r.FormFile("image"); err == nil {
			f.Close()
			gotImage = h.Filename
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	p := NewPipeline(NewClient(srv.URL, 0, discardLogger()), discardLogger())

	d := soup()
	d.Asset = &models.Asset{Name: "soup.png", ContentType: "image/png", Data: []byte("png")}
	out, err := p.Submit(context.Background(), d)
	require.NoError(t, err)

	assert.True(t, out.OK())
	assert.Equal(t, `Recipe "Soup" created successfully!`, out.Message)
	assert.Equal(t, 1, requests)
	assert.Equal(t, "Soup", gotTitle)
	assert.Equal(t, "soup.png", gotImage)
}

func TestSubmitServerRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"Image too large"}`))
	}))
	defer srv.Close()

	p := NewPipeline(NewClient(srv.URL, 0, discardLogger()), discardLogger())
	out, err := p.Submit(context.Background(), soup())
	require.NoError(t, err)
	assert.Equal(t, Failed, out.Status)
	assert.Equal(t, "Error: Image too large", out.Message)
	assert.Equal(t, http.StatusBadRequest, out.StatusCode)
}

func TestSubmitUnreachableServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	p := NewPipeline(NewClient(url, 0, discardLogger()), discardLogger())
	out, err := p.Submit(context.Background(), soup())
	require.NoError(t, err)
	assert.Equal(t, "Failed to create the recipe!", out.Message)
	assert.Equal(t, StateIdle, p.State())
}
