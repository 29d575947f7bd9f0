package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type failing struct{}

func (failing) Alert(context.Context, string) error { return errors.New("down") }

func TestMulti_FansOutAndJoinsErrors(t *testing.T) {
	a, b := &Recorder{}, &Recorder{}
	m := Multi{a, failing{}, b}
	err := m.Alert(context.Background(), "hello")
	if err == nil || !strings.Contains(err.Error(), "down") {
		t.Errorf("expected joined error, got %v", err)
	}
	if len(a.Alerts()) != 1 || len(b.Alerts()) != 1 {
		t.Error("every notifier should receive the alert")
	}
	if err := (Multi{LogNotifier{}}).Alert(context.Background(), "ok"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestTelegramNotifier_Alert(t *testing.T) {
	var gotPath string
	var payload map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&payload)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	tn := NewTelegramNotifier(srv.URL, "123:abc", "42", "")
	if err := tn.Alert(context.Background(), "Failed <to> fetch"); err != nil {
		t.Fatalf("Alert: %v", err)
	}
	if gotPath != "/bot123:abc/sendMessage" {
		t.Errorf("path = %q", gotPath)
	}
	if payload["chat_id"] != "42" || payload["parse_mode"] != "HTML" {
		t.Errorf("payload = %v", payload)
	}
	if !strings.Contains(payload["text"], "Failed &lt;to&gt; fetch") {
		t.Errorf("text not escaped: %q", payload["text"])
	}
}

func TestTelegramNotifier_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"ok":false}`))
	}))
	defer srv.Close()

	tn := NewTelegramNotifier(srv.URL, "bad", "42", "")
	if err := tn.Alert(context.Background(), "x"); err == nil {
		t.Error("expected error for 401")
	}
}

func TestFormatAlert(t *testing.T) {
	at := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	got := FormatAlert("a & b", at)
	if !strings.Contains(got, "2024-03-01 09:30") || !strings.Contains(got, "a &amp; b") {
		t.Errorf("FormatAlert = %q", got)
	}
}
