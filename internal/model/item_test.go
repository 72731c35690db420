package model

import (
	"encoding/json"
	"math"
	"testing"
)

// TestItemIDUnmarshalJSON verifies identifiers decode from numbers and strings.
func TestItemIDUnmarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  ItemID
	}{
		{name: "integer", input: `{"id": 1}`, want: "1"},
		{name: "string", input: `{"id": "A-7"}`, want: "A-7"},
		{name: "decimal", input: `{"id": 2.5}`, want: "2.5"},
		{name: "large integer keeps digits", input: `{"id": 12345678901234567890}`, want: "12345678901234567890"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var item Item
			if err := json.Unmarshal([]byte(tt.input), &item); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if item.ID != tt.want {
				t.Errorf("expected ID %q, got %q", tt.want, item.ID)
			}
		})
	}

	t.Run("rejects objects", func(t *testing.T) {
		t.Parallel()

		var item Item
		if err := json.Unmarshal([]byte(`{"id": {"x": 1}}`), &item); err == nil {
			t.Error("expected error for object identifier")
		}
	})
}

// TestItemWithPriority verifies the copy-with-annotation semantics.
func TestItemWithPriority(t *testing.T) {
	t.Parallel()

	t.Run("does not modify the original", func(t *testing.T) {
		t.Parallel()

		original := Item{ID: "1", Name: "A", Value: 1500}
		annotated := original.WithPriority(true)

		if original.HasPriority() {
			t.Error("expected original to remain without priority")
		}
		if !annotated.IsPriority() {
			t.Error("expected annotated copy to be priority")
		}
		if annotated.ID != original.ID || annotated.Name != original.Name || annotated.Value != original.Value {
			t.Errorf("expected copied fields to match, got %+v", annotated)
		}
	})

	t.Run("false annotation is present but not priority", func(t *testing.T) {
		t.Parallel()

		item := Item{ID: "2"}.WithPriority(false)
		if !item.HasPriority() {
			t.Error("expected annotation to be present")
		}
		if item.IsPriority() {
			t.Error("expected item not to be priority")
		}
	})

	t.Run("copies do not share the annotation", func(t *testing.T) {
		t.Parallel()

		a := Item{ID: "1"}.WithPriority(true)
		b := a.WithPriority(false)
		if !a.IsPriority() {
			t.Error("expected first copy to keep its annotation")
		}
		if b.IsPriority() {
			t.Error("expected second copy to be non-priority")
		}
	})

	t.Run("priority is omitted from JSON when absent", func(t *testing.T) {
		t.Parallel()

		data, err := json.Marshal(Item{ID: "1", Name: "A", Value: 3})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(data) != `{"id":"1","name":"A","value":3}` {
			t.Errorf("unexpected JSON: %s", data)
		}
	})
}

// TestFormatNumber verifies shortest decimal rendering.
func TestFormatNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float64
		want string
	}{
		{1500, "1500"},
		{2100, "2100"},
		{0, "0"},
		{12.5, "12.5"},
		{-3.25, "-3.25"},
		{0.000001, "0.000001"},
		{1e-7, "1e-7"},
		{-1.5e-7, "-1.5e-7"},
		{1e21, "1e+21"},
		{1.25e22, "1.25e+22"},
		{999999999999999900000, "999999999999999900000"},
		{1e100, "1e+100"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
	}

	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// TestRoleIsAdmin verifies that only the exact ADMIN role is privileged.
func TestRoleIsAdmin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		role Role
		want bool
	}{
		{RoleAdmin, true},
		{"USER", false},
		{"admin", false},
		{"", false},
		{"GUEST", false},
	}

	for _, tt := range tests {
		u := User{Name: "x", Role: tt.role}
		if got := u.IsAdmin(); got != tt.want {
			t.Errorf("role %q: IsAdmin() = %v, want %v", tt.role, got, tt.want)
		}
	}
}
