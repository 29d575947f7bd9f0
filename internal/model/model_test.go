package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
)

func TestNewTickerQuery(t *testing.T) {
	tests := []struct {
		raw   string
		want  string
		empty bool
	}{
		{"aapl", "AAPL", false},
		{"  msft \t", "MSFT", false},
		{"Brk-B", "BRK-B", false},
		{"", "", true},
		{"   ", "", true},
	}
	for _, tt := range tests {
		q := NewTickerQuery(tt.raw)
		if q.Symbol != tt.want {
			t.Errorf("NewTickerQuery(%q) = %q, want %q", tt.raw, q.Symbol, tt.want)
		}
		if q.IsEmpty() != tt.empty {
			t.Errorf("NewTickerQuery(%q).IsEmpty() = %v, want %v", tt.raw, q.IsEmpty(), tt.empty)
		}
	}
}

func TestNewTimeSeries_LengthMismatch(t *testing.T) {
	if _, err := NewTimeSeries("AAA", []string{"a", "b"}, []float64{1}); err == nil {
		t.Fatal("expected error for mismatched lengths")
	}
}

func TestTimeSeries_CopiesInput(t *testing.T) {
	labels := []string{"1/1/2024", "1/2/2024"}
	values := []float64{10, 11}
	ts, err := NewTimeSeries("AAA", labels, values)
	if err != nil {
		t.Fatalf("NewTimeSeries: %v", err)
	}
	labels[0] = "changed"
	values[0] = 99
	if ts.Labels()[0] != "1/1/2024" || ts.Values()[0] != 10 {
		t.Error("series must not alias caller slices")
	}

	got := ts.Values()
	got[1] = 0
	if ts.Values()[1] != 11 {
		t.Error("Values() must return a copy")
	}

	label, value, ok := ts.Last()
	if !ok || label != "1/2/2024" || value != 11 {
		t.Errorf("Last() = %q %v %v", label, value, ok)
	}
}

func TestTimeSeries_MarshalJSON(t *testing.T) {
	ts, _ := NewTimeSeries("AAA", []string{"1/1/2024"}, []float64{1.5})
	data, err := json.Marshal(ts)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded struct {
		Symbol string    `json:"symbol"`
		Labels []string  `json:"labels"`
		Values []float64 `json:"values"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Symbol != "AAA" || len(decoded.Labels) != 1 || decoded.Values[0] != 1.5 {
		t.Errorf("unexpected JSON: %s", data)
	}
}

func TestErrorKinds(t *testing.T) {
	cause := errors.New("connection refused")
	fe := &FetchError{Ticker: "AAA", Reason: "request", Err: cause}
	wrapped := fmt.Errorf("search: %w", fe)

	if !errors.Is(wrapped, ErrFetchFailed) {
		t.Error("FetchError should match ErrFetchFailed")
	}
	if !errors.Is(wrapped, cause) {
		t.Error("FetchError should unwrap to its cause")
	}
	if errors.Is(wrapped, ErrValidation) {
		t.Error("FetchError must not match ErrValidation")
	}

	ve := &ValidationError{Field: "stock-ticker", Message: "Please enter a stock ticker."}
	if !errors.Is(ve, ErrValidation) {
		t.Error("ValidationError should match ErrValidation")
	}
	var target *ValidationError
	if !errors.As(fmt.Errorf("x: %w", ve), &target) || target.Field != "stock-ticker" {
		t.Error("errors.As should find the ValidationError")
	}
}
