package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func testEvent() model.Event {
	return model.Event{
		ID:         "2f0c5d0e-4a5b-4c1e-9a0e-1b2c3d4e5f60",
		Type:       model.EventOrderCreated,
		OccurredAt: time.Unix(1700000000, 0).UTC(),
		ActorID:    3,
		Subject:    11,
		Payload:    map[string]any{"total": "500"},
	}
}

func TestNewHTTPClientValidatesURL(t *testing.T) {
	if _, err := NewHTTPClient("://bad-url", testLogger()); err == nil {
		t.Fatal("expected error for invalid url")
	}
	if _, err := NewHTTPClient("/relative", testLogger()); err == nil {
		t.Fatal("expected error for relative url")
	}
}

func TestSendPostsEvent(t *testing.T) {
	received := make(chan model.Event, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("unexpected content type %q", got)
		}
		if got := r.Header.Get("X-Event-Type"); got != string(model.EventOrderCreated) {
			t.Errorf("unexpected event type header %q", got)
		}
		var ev model.Event
		if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
			t.Errorf("decode body: %v", err)
		}
		received <- ev
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	client, err := NewHTTPClient(srv.URL+"/hooks", testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	if err := client.Send(context.Background(), testEvent()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	select {
	case ev := <-received:
		if ev.ID != testEvent().ID || ev.Subject != 11 || ev.Payload["total"] != "500" {
			t.Fatalf("unexpected event delivered: %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("expected event to be delivered")
	}
}

func TestSendHandlesTooManyRequests(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "5")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client, err := NewHTTPClient(srv.URL, testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	err = client.Send(context.Background(), testEvent())
	var tm TooManyRequestsError
	if !errors.As(err, &tm) {
		t.Fatalf("expected TooManyRequestsError, got %v", err)
	}
	if tm.RetryAfter != 5*time.Second {
		t.Fatalf("expected retry after 5s, got %v", tm.RetryAfter)
	}
}

func TestSendLogsErrorResponses(t *testing.T) {
	called := make(chan struct{}, 1)
	handler := slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
		if a.Key == slog.LevelKey && a.Value.Any() == slog.LevelError {
			select {
			case called <- struct{}{}:
			default:
			}
		}
		return a
	}})
	logger := slog.New(handler)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client, err := NewHTTPClient(srv.URL, logger)
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	if err := client.Send(context.Background(), testEvent()); err == nil {
		t.Fatal("expected error from server")
	}

	select {
	case <-called:
	case <-time.After(time.Second):
		t.Fatal("expected error log to be written")
	}
}

func TestParseRetryAfter(t *testing.T) {
	now := time.Now()
	httpTime := now.Add(2 * time.Second).UTC().Format(http.TimeFormat)

	cases := []struct {
		name   string
		header string
		want   time.Duration
	}{
		{name: "empty", header: "", want: defaultRetryAfter},
		{name: "seconds", header: "7", want: 7 * time.Second},
		{name: "http date", header: httpTime, want: 2 * time.Second},
		{name: "fallback", header: "bad", want: defaultRetryAfter},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := parseRetryAfter(tc.header)
			if tc.header == httpTime {
				if got <= 0 || got > 3*time.Second {
					t.Fatalf("unexpected retry duration %v", got)
				}
			} else if got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestLogSenderWritesEvent(t *testing.T) {
	var buf bytes.Buffer
	sender := NewLogSender(slog.New(slog.NewJSONHandler(&buf, nil)))
	if err := sender.Send(context.Background(), testEvent()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte(`"type":"order.created"`)) {
		t.Fatalf("expected event type in log, got %q", buf.String())
	}
}
