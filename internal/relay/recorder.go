package relay

import (
	"context"
	"sync"
)

// Call is a single Send captured by Recorder.
type Call struct {
	Credentials Credentials
	Params      TemplateParams
}

// Recorder is an in-memory Relay that records every call. A non-nil Err is returned from
// each Send after the call is recorded.
type Recorder struct {
	mu    sync.Mutex
	calls []Call
	Err   error
}

// Send records the call.
func (r *Recorder) Send(ctx context.Context, creds Credentials, params TemplateParams) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	copied := make(TemplateParams, len(params))
	for k, v := range params {
		copied[k] = v
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, Call{Credentials: creds, Params: copied})
	return r.Err
}

// Calls returns a snapshot of recorded calls.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}
