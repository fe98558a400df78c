package content

import (
	"testing"
	"time"
)

func TestValue_Get(t *testing.T) {
	root := Wrap(map[string]any{
		"client": map[string]any{
			"name": "ACME",
			"address": map[string]any{
				"city": "Berlin",
			},
		},
		"tags": []any{"a", "b"},
	})

	tests := []struct {
		name   string
		path   string
		wantOK bool
	}{
		{"top level", "client", true},
		{"nested scalar", "client.name", true},
		{"deeply nested", "client.address.city", true},
		{"missing key", "client.phone", false},
		{"through scalar", "client.name.first", false},
		{"through array", "tags.0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := root.Get(tt.path)
			if ok != tt.wantOK {
				t.Errorf("Get(%q) ok = %v, want %v", tt.path, ok, tt.wantOK)
			}
		})
	}

	v, _ := root.Get("client.address.city")
	if s, _ := v.AsString(); s != "Berlin" {
		t.Errorf("city = %q, want Berlin", s)
	}
}

func TestValue_Display(t *testing.T) {
	ts := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		raw  any
		want string
	}{
		{"string", "hello", "hello"},
		{"int64", int64(42), "42"},
		{"float", 12500.5, "12500.5"},
		{"float integral", 100.0, "100"},
		{"bool", true, "true"},
		{"datetime", ts, "2026-03-01T10:00:00Z"},
		{"content table", map[string]any{"content": "body", "title": "T"}, "body"},
		{"plain table", map[string]any{"a": int64(1)}, `{"a":1}`},
		{"array", []any{int64(1), int64(2)}, "[1,2]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Wrap(tt.raw).Display(); got != tt.want {
				t.Errorf("Display() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValue_AsArray(t *testing.T) {
	items, ok := Wrap([]any{"a", "b"}).AsArray()
	if !ok || len(items) != 2 {
		t.Fatalf("AsArray failed: ok=%v items=%v", ok, items)
	}

	tables, ok := Wrap([]map[string]any{{"k": "v"}}).AsArray()
	if !ok || len(tables) != 1 || !tables[0].IsTable() {
		t.Fatalf("AsArray on table slice failed: ok=%v", ok)
	}

	if _, ok := Wrap("scalar").AsArray(); ok {
		t.Error("AsArray on scalar should fail")
	}
}
