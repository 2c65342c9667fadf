package reqstate

import "sync"

// Tracker records the request status of container operations: a loading flag
// and the last error, kept per operation key (e.g. "fetch:p1" or
// "products_page_2"). Each key also carries a sequence number so that when
// two requests for the same key overlap, only the latest-issued one is
// allowed to publish its result. Completions that lost the race report
// stale and the caller drops the response.
type Tracker struct {
	mu  sync.Mutex
	ops map[string]*opState
}

type opState struct {
	loading  bool
	lastErr  string
	seq      uint64
	inflight int
}

func NewTracker() *Tracker {
	return &Tracker{ops: make(map[string]*opState)}
}

// Begin marks the operation as loading, clears its previous error and
// returns the token the caller must hand back to Done.
func (t *Tracker) Begin(key string) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	st := t.state(key)
	st.seq++
	st.inflight++
	st.loading = true
	st.lastErr = ""
	return st.seq
}

// Done finishes the operation started with token. It returns false when a
// newer Begin for the same key happened in the meantime; the caller must
// discard its response in that case. The error slot only reflects the
// newest attempt.
func (t *Tracker) Done(key string, token uint64, err error) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	st := t.state(key)
	if st.inflight > 0 {
		st.inflight--
	}
	if st.inflight == 0 {
		st.loading = false
	}
	if token != st.seq {
		return false
	}
	if err != nil {
		st.lastErr = err.Error()
	} else {
		st.lastErr = ""
	}
	return true
}

// Loading reports whether the operation has a request in flight. The UI
// uses this to gate spinners and disable controls.
func (t *Tracker) Loading(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state(key).loading
}

// Err returns the error of the last finished attempt, empty when it
// succeeded. A failure on one key never touches another key's slot.
func (t *Tracker) Err(key string) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state(key).lastErr
}

func (t *Tracker) state(key string) *opState {
	st, ok := t.ops[key]
	if !ok {
		st = &opState{}
		t.ops[key] = st
	}
	return st
}
