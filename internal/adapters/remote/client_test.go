package remote_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/husham35/AirBnB-clone/internal/adapters/remote"
	"github.com/husham35/AirBnB-clone/internal/domain"
)

func TestClient_ListObjects_RetriesThenSuccess(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/objects/Place" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("X-API-Key") != "k" {
			t.Errorf("missing api key header")
		}
		switch atomic.AddInt32(&hits, 1) {
		case 1:
			w.WriteHeader(503)
		case 2:
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(429)
		default:
			_ = json.NewEncoder(w).Encode([]map[string]any{{"__class__": "Place", "id": "p1", "max_guest": 4}})
		}
	}))
	defer ts.Close()

	cl, err := remote.New(ts.URL+"/", "k", 100)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	got, err := cl.ListObjects(ctx, "Place")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 1 || got[0]["id"] != "p1" {
		t.Fatalf("unexpected payload: %+v", got)
	}
	if n, ok := got[0]["max_guest"].(json.Number); !ok || n.String() != "4" {
		t.Fatalf("numbers must decode as json.Number, got %T", got[0]["max_guest"])
	}
	if atomic.LoadInt32(&hits) != 3 {
		t.Fatalf("expected 3 calls due to retries, got %d", hits)
	}
}

func TestClient_ListObjects_StatusErrors(t *testing.T) {
	cases := map[int]error{
		http.StatusNotFound:     domain.ErrNotFound,
		http.StatusUnauthorized: domain.ErrAccessDenied,
		http.StatusForbidden:    domain.ErrAccessDenied,
	}
	for status, want := range cases {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))
		cl, err := remote.New(ts.URL, "", 100)
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		_, err = cl.ListObjects(context.Background(), "User")
		ts.Close()
		if !errors.Is(err, want) {
			t.Fatalf("status %d: expected %v, got %v", status, want, err)
		}
		if remote.IsRetryable(err) {
			t.Fatalf("status %d should not be retryable", status)
		}
	}
}

func TestClient_ListObjects_BadStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusTeapot)
	}))
	defer ts.Close()

	cl, _ := remote.New(ts.URL, "", 100)
	if _, err := cl.ListObjects(context.Background(), "User"); err == nil {
		t.Fatalf("expected error for 418")
	}
}

func TestNew_RejectsBadBase(t *testing.T) {
	if _, err := remote.New("", "", 1); err == nil {
		t.Fatalf("expected error for empty base")
	}
}
