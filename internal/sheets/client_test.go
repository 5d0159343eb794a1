package sheets

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewClient_RejectsMalformedURL(t *testing.T) {
	for _, raw := range []string{"ftp://example.com/x", "http://", "://nope"} {
		if _, err := NewClient(raw, 0); err == nil {
			t.Fatalf("NewClient(%q) returned nil error, want error", raw)
		}
	}
}

func TestNewClient_AcceptsPlaceholderAndEmpty(t *testing.T) {
	for _, raw := range []string{"", "  ", "https://script.google.com/macros/s/REPLACE_WITH_YOUR_ID/exec"} {
		c, err := NewClient(raw, 0)
		if err != nil {
			t.Fatalf("NewClient(%q) returned error: %v", raw, err)
		}
		if c.http.Timeout != defaultTimeout {
			t.Fatalf("timeout = %v, want %v", c.http.Timeout, defaultTimeout)
		}
	}
}

func TestClient_FetchDataset(t *testing.T) {
	t.Parallel()

	var gotAccept, gotUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAccept = r.Header.Get("Accept")
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[["Name","Age","Active"],["Alice",30,true],["Bob",25.50,null]]`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, time.Second)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ds, err := c.FetchDataset(context.Background())
	if err != nil {
		t.Fatalf("FetchDataset returned error: %v", err)
	}
	want := Dataset{
		{"Name", "Age", "Active"},
		{"Alice", "30", "true"},
		{"Bob", "25.50", ""},
	}
	if !reflect.DeepEqual(ds, want) {
		t.Fatalf("FetchDataset = %#v, want %#v", ds, want)
	}
	if gotAccept != "application/json" {
		t.Fatalf("Accept = %q, want application/json", gotAccept)
	}
	if !strings.HasPrefix(gotUserAgent, "sheetdash/") {
		t.Fatalf("User-Agent = %q, want sheetdash/*", gotUserAgent)
	}
}

func TestClient_FetchDatasetFollowsRedirect(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/exec", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/echo", http.StatusFound)
	})
	mux.HandleFunc("/echo", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[["h"],["v"]]`))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL+"/exec", time.Second)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ds, err := c.FetchDataset(context.Background())
	if err != nil {
		t.Fatalf("FetchDataset returned error: %v", err)
	}
	if len(ds) != 2 || ds[1][0] != "v" {
		t.Fatalf("FetchDataset = %#v, want two rows", ds)
	}
}

func TestClient_NonArrayPayloadIsEmpty(t *testing.T) {
	t.Parallel()

	for _, body := range []string{`[]`, `{"error":"nope"}`, `"text"`, `42`, `null`} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(body))
		}))
		c, err := NewClient(server.URL, time.Second)
		if err != nil {
			server.Close()
			t.Fatalf("NewClient returned error: %v", err)
		}
		ds, err := c.FetchDataset(context.Background())
		server.Close()
		if err != nil {
			t.Fatalf("FetchDataset(%s) returned error: %v", body, err)
		}
		if len(ds) != 0 {
			t.Fatalf("FetchDataset(%s) = %#v, want empty", body, ds)
		}
	}
}

func TestClient_HTTPErrorAndDecodeError(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/broken", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{not-json"))
	})
	mux.HandleFunc("/trailing", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[["Name"],["Alice"]] <html>oops</html>`))
	})
	mux.HandleFunc("/fail", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	broken, err := NewClient(server.URL+"/broken", time.Second)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = broken.FetchDataset(context.Background())
	if err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("FetchDataset error = %v, want decode response error", err)
	}
	if KindOf(err) != KindParse {
		t.Fatalf("KindOf = %v, want parse", KindOf(err))
	}

	trailing, err := NewClient(server.URL+"/trailing", time.Second)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ds, err := trailing.FetchDataset(context.Background())
	if err == nil || KindOf(err) != KindParse {
		t.Fatalf("FetchDataset = %v, %v; want parse error for trailing bytes", ds, err)
	}

	failing, err := NewClient(server.URL+"/fail", time.Second)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = failing.FetchDataset(context.Background())
	var fe *FetchError
	if !errors.As(err, &fe) || fe.StatusCode != http.StatusInternalServerError {
		t.Fatalf("FetchDataset error = %v, want status 500 FetchError", err)
	}
	if KindOf(err) != KindTransport {
		t.Fatalf("KindOf = %v, want transport", KindOf(err))
	}
}

func TestClient_PlaceholderNeverTouchesNetwork(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL+"/"+PlaceholderSentinel, time.Second)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.FetchDataset(context.Background())
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("FetchDataset error = %v, want ErrNotConfigured", err)
	}
	if KindOf(err) != KindConfiguration {
		t.Fatalf("KindOf = %v, want configuration", KindOf(err))
	}
	if hits.Load() != 0 {
		t.Fatalf("server received %d requests, want 0", hits.Load())
	}
}

func TestClient_ContextCancelled(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, 5*time.Second)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.FetchDataset(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("FetchDataset error = %v, want context.Canceled", err)
	}
}
