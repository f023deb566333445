package handlers

import (
	"testing"

	"github.com/adt-04/university-backend/internal/models"
)

func TestMergePaperUpdate_PartialFields(t *testing.T) {
	paper := models.Paper{Title: "Old Title", Description: "Old description"}

	mergePaperUpdate(&paper, "New Title", "")
	if paper.Title != "New Title" {
		t.Fatalf("title not replaced: %q", paper.Title)
	}
	if paper.Description != "Old description" {
		t.Fatalf("absent description should keep prior value, got %q", paper.Description)
	}

	mergePaperUpdate(&paper, "", "New description")
	if paper.Title != "New Title" {
		t.Fatalf("absent title should keep prior value, got %q", paper.Title)
	}
	if paper.Description != "New description" {
		t.Fatalf("description not replaced: %q", paper.Description)
	}
}

func TestMergePaperUpdate_EmptyFormIsNoop(t *testing.T) {
	paper := models.Paper{Title: "Title", Description: "Description", File: "uploads/a.pdf"}
	mergePaperUpdate(&paper, "", "")
	if paper.Title != "Title" || paper.Description != "Description" || paper.File != "uploads/a.pdf" {
		t.Fatalf("empty update mutated the paper: %+v", paper)
	}
}
