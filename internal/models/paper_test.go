package models

import (
	"testing"
	"time"
)

func TestPaperValidate(t *testing.T) {
	p := Paper{Title: "On Soft Deletes", Description: "A survey."}
	if err := p.Validate(); err != nil {
		t.Fatalf("expected valid paper, got %v", err)
	}

	p = Paper{Description: "A survey."}
	if err := p.Validate(); err == nil {
		t.Fatalf("expected missing title to be rejected")
	}

	p = Paper{Title: "On Soft Deletes"}
	if err := p.Validate(); err == nil {
		t.Fatalf("expected missing description to be rejected")
	}
}

func TestPaperTouch_StrictlyIncreases(t *testing.T) {
	p := Paper{UpdatedAt: time.Now()}
	before := p.UpdatedAt
	p.Touch()
	if !p.UpdatedAt.After(before) {
		t.Fatalf("expected updated_at to advance: before=%v after=%v", before, p.UpdatedAt)
	}

	// Even with a clock that has not moved, successive touches advance.
	p.UpdatedAt = time.Now().Add(time.Hour)
	before = p.UpdatedAt
	p.Touch()
	if !p.UpdatedAt.After(before) {
		t.Fatalf("expected updated_at to advance past a future timestamp")
	}
}
