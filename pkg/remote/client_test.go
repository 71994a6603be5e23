package remote

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/wire"
)

const storedSchema = `[{"fieldsetName":"Demo","fieldsetTextId":"11111111aa","fields":[{"labelName":"Pick","labelTextId":"22222222bb","inputType":"select","options":["Option 1","Option 2"]}]}]`

func demoWire() []wire.Group {
	return []wire.Group{{
		FieldsetName:   "Demo",
		FieldsetTextID: "11111111aa",
		Fields: []wire.Field{{
			LabelName:   "Pick",
			LabelTextID: "22222222bb",
			InputType:   "select",
			Options:     wire.Choices("Option 1", "Option 2"),
		}},
	}}
}

func TestNewRequiresEndpoint(t *testing.T) {
	if _, err := New("  "); !errors.Is(err, ErrEndpointRequired) {
		t.Fatalf("expected ErrEndpointRequired, got %v", err)
	}
}

func TestFetchBareAndWrapped(t *testing.T) {
	bodies := map[string]string{
		"bare":    storedSchema,
		"wrapped": `{"data":` + storedSchema + `}`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodGet {
					t.Errorf("unexpected method %s", r.Method)
				}
				if got := r.Header.Get("User-Agent"); got != "formbuilder-test" {
					t.Errorf("unexpected user agent %q", got)
				}
				_, _ = io.WriteString(w, body)
			}))
			defer srv.Close()

			client, err := New(srv.URL, WithUserAgent("formbuilder-test"))
			if err != nil {
				t.Fatalf("new client: %v", err)
			}
			got, err := client.Fetch(context.Background())
			if err != nil {
				t.Fatalf("fetch: %v", err)
			}
			if diff := cmp.Diff(demoWire(), got); diff != "" {
				t.Fatalf("fetch mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFetchStatusIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client, err := New(srv.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	_, err = client.Fetch(context.Background())
	if !IsNetworkError(err) {
		t.Fatalf("expected network error, got %v", err)
	}
	var netErr *NetworkError
	if !errors.As(err, &netErr) || netErr.StatusCode != http.StatusInternalServerError || netErr.Op != "get" {
		t.Fatalf("unexpected network error %#v", netErr)
	}
}

func TestFetchTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	client, err := New(url)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if _, err := client.Fetch(context.Background()); !IsNetworkError(err) {
		t.Fatalf("expected network error, got %v", err)
	}
}

func TestFetchDecodeFailureIsNotNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `42`)
	}))
	defer srv.Close()

	client, err := New(srv.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	_, err = client.Fetch(context.Background())
	if err == nil || IsNetworkError(err) {
		t.Fatalf("expected plain decode error, got %v", err)
	}
	if !errors.Is(err, wire.ErrUnexpectedPayload) {
		t.Fatalf("expected wrapped ErrUnexpectedPayload, got %v", err)
	}
}

func TestPushSendsBareArray(t *testing.T) {
	var gotBody, gotType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		gotType = r.Header.Get("Content-Type")
		data, _ := io.ReadAll(r.Body)
		gotBody = string(data)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client, err := New(srv.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if err := client.Push(context.Background(), demoWire()); err != nil {
		t.Fatalf("push: %v", err)
	}
	if gotType != "application/json" {
		t.Fatalf("unexpected content type %q", gotType)
	}
	if diff := cmp.Diff(storedSchema, gotBody); diff != "" {
		t.Fatalf("body mismatch (-want +got):\n%s", diff)
	}
}

func TestPushTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	client, err := New(srv.URL, WithTimeout(20*time.Millisecond))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	err = client.Push(context.Background(), nil)
	if !IsNetworkError(err) {
		t.Fatalf("expected network error, got %v", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}
