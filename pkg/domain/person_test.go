package domain

import (
	"testing"

	"github.com/goccy/go-json"
)

func TestPersonIDKeepsNumberLiteral(t *testing.T) {
	var p Person
	if err := json.Unmarshal([]byte(`{"id": 1234567890123456789, "name": "Jón"}`), &p); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if got := p.ID(); got != "1234567890123456789" {
		t.Errorf("ID() = %q, want %q", got, "1234567890123456789")
	}
	if got := p.Name(); got != "Jón" {
		t.Errorf("Name() = %q, want %q", got, "Jón")
	}
}

func TestPersonString(t *testing.T) {
	p := Person{
		"id":    "456",
		"dob":   "15.07.1973",
		"float": 2.5,
		"flag":  true,
	}
	tests := []struct {
		key  string
		want string
	}{
		{"id", "456"},
		{"dob", "15.07.1973"},
		{"float", "2.5"},
		{"flag", "true"},
		{"missing", ""},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := p.String(tt.key); got != tt.want {
				t.Errorf("String(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestPeopleUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantIDs []string
		wantErr bool
	}{
		{"array", `[{"id": 1}, {"id": "2"}]`, []string{"1", "2"}, false},
		{"single object", ` {"id": 7, "name": "X"}`, []string{"7"}, false},
		{"empty array", `[]`, []string{}, false},
		{"null", `null`, []string{}, false},
		{"wrong shape", `"text"`, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ps People
			err := json.Unmarshal([]byte(tt.body), &ps)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unmarshal() error: %v", err)
			}
			ids := ps.IDs()
			if len(ids) != len(tt.wantIDs) {
				t.Fatalf("got %d records, want %d", len(ids), len(tt.wantIDs))
			}
			for i := range ids {
				if ids[i] != tt.wantIDs[i] {
					t.Errorf("ids[%d] = %q, want %q", i, ids[i], tt.wantIDs[i])
				}
			}
		})
	}
}

func TestSessionValid(t *testing.T) {
	if (Session{}).Valid() {
		t.Error("zero Session should not be valid")
	}
	if (Session{ID: "abc123"}).Valid() {
		t.Error("Session without person id should not be valid")
	}
	if !(Session{ID: "abc123", PersonID: "456"}).Valid() {
		t.Error("complete Session should be valid")
	}
}
