package testsupport

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// Remote is an in-memory stand-in for the schema endpoint. GET returns the
// stored body, POST replaces it. Failures and slow pushes can be scripted.
type Remote struct {
	URL string

	mu       sync.Mutex
	body     []byte
	pushes   [][]byte
	status   int
	gate     chan struct{}
	received chan struct{}
	server   *httptest.Server
}

// NewRemote starts a Remote serving body. The server is closed on test
// cleanup.
func NewRemote(t *testing.T, body []byte) *Remote {
	t.Helper()

	r := &Remote{body: body, received: make(chan struct{}, 16)}
	r.server = httptest.NewServer(http.HandlerFunc(r.serve))
	r.URL = r.server.URL
	t.Cleanup(func() {
		r.Release()
		r.server.Close()
	})
	return r
}

// Fail makes every following request answer with status. Zero restores
// normal behaviour.
func (r *Remote) Fail(status int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status = status
}

// Block holds POST requests until Release is called. Received signals each
// blocked request as it arrives.
func (r *Remote) Block() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.gate == nil {
		r.gate = make(chan struct{})
	}
}

// Release lets blocked POST requests complete.
func (r *Remote) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.gate != nil {
		close(r.gate)
		r.gate = nil
	}
}

// Received delivers one value per POST request that reached the server.
func (r *Remote) Received() <-chan struct{} {
	return r.received
}

// Body returns the currently stored payload.
func (r *Remote) Body() []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]byte(nil), r.body...)
}

// Pushes returns every POST body accepted so far.
func (r *Remote) Pushes() [][]byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([][]byte, len(r.pushes))
	copy(out, r.pushes)
	return out
}

func (r *Remote) serve(w http.ResponseWriter, req *http.Request) {
	switch req.Method {
	case http.MethodGet:
		r.mu.Lock()
		status, body := r.status, r.body
		r.mu.Unlock()
		if status != 0 {
			http.Error(w, http.StatusText(status), status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	case http.MethodPost:
		data, _ := io.ReadAll(req.Body)
		select {
		case r.received <- struct{}{}:
		default:
		}

		r.mu.Lock()
		gate := r.gate
		r.mu.Unlock()
		if gate != nil {
			select {
			case <-gate:
			case <-req.Context().Done():
				return
			}
		}

		r.mu.Lock()
		defer r.mu.Unlock()
		if r.status != 0 {
			http.Error(w, http.StatusText(r.status), r.status)
			return
		}
		r.body = data
		r.pushes = append(r.pushes, data)
		w.WriteHeader(http.StatusOK)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
