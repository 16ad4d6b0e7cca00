package todo

import (
	"errors"
	"strings"
	"testing"
)

func TestDecodeCreateInput(t *testing.T) {
	in, err := DecodeCreateInput(strings.NewReader(`{
		"title": "Pay rent",
		"dueDate": "2024-04-01",
		"priority": "high",
		"tags": ["home"],
		"subtasks": ["transfer"],
		"recurrence": "monthly"
	}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if in.Title != "Pay rent" || in.Priority != PriorityHigh || in.Recurrence != RecurrenceMonthly {
		t.Errorf("unexpected input %+v", in)
	}
	if in.DueDate.String() != "2024-04-01" {
		t.Errorf("expected due date, got %q", in.DueDate)
	}
}

func TestDecodeCreateInput_RejectsUnknownFields(t *testing.T) {
	_, err := DecodeCreateInput(strings.NewReader(`{"title": "x", "color": "red"}`))
	if !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected unknown field error, got %v", err)
	}
	if !strings.Contains(err.Error(), "color") {
		t.Errorf("expected field name in error, got %v", err)
	}
}

func TestDecodeCreateInput_Invalid(t *testing.T) {
	tests := []struct {
		body string
		want error
	}{
		{`{"title": ""}`, ErrEmptyTitle},
		{`{"title": "x", "priority": "urgent"}`, ErrInvalidPriority},
		{`{"title": "x", "dueDate": "next week"}`, ErrInvalidDate},
		{`{"title": 7}`, ErrValidation},
		{`not json`, ErrValidation},
	}
	for _, tt := range tests {
		if _, err := DecodeCreateInput(strings.NewReader(tt.body)); !errors.Is(err, tt.want) {
			t.Errorf("DecodeCreateInput(%s): expected %v, got %v", tt.body, tt.want, err)
		}
	}
}

func TestDecodeUpdateInput(t *testing.T) {
	in, err := DecodeUpdateInput(strings.NewReader(`{"notes": "", "completed": true, "dueDate": ""}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if in.Notes == nil || *in.Notes != "" {
		t.Errorf("expected explicit empty notes, got %v", in.Notes)
	}
	if in.Completed == nil || !*in.Completed {
		t.Errorf("expected completed=true")
	}
	if in.DueDate == nil || !in.DueDate.IsZero() {
		t.Errorf("expected due date cleared, got %v", in.DueDate)
	}
	if in.Title != nil || in.IsEmpty() {
		t.Errorf("expected only given fields set")
	}

	if _, err := DecodeUpdateInput(strings.NewReader(`{"status": "done"}`)); !errors.Is(err, ErrUnknownField) {
		t.Errorf("expected unknown field error, got %v", err)
	}
}
