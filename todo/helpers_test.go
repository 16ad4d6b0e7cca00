package todo

import (
	"testing"
	"time"
)

var testNow = time.Date(2024, time.March, 15, 14, 30, 0, 0, time.UTC)

func mustNew(t *testing.T, input CreateInput) *Todo {
	t.Helper()
	created, err := New(input, testNow)
	if err != nil {
		t.Fatalf("failed to create todo: %v", err)
	}
	return created
}

func mustDate(t *testing.T, value string) Date {
	t.Helper()
	d, err := ParseDate(value)
	if err != nil {
		t.Fatalf("parse date %q: %v", value, err)
	}
	return d
}
