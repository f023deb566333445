package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/adt-04/university-backend/internal/models"
	"github.com/adt-04/university-backend/internal/storage"
)

const maxUploadSize = 32 << 20 // 32 MB

type PaperHandler struct {
	collection *mongo.Collection
	files      *storage.Store
}

func NewPaperHandler(client *mongo.Client, dbName string, files *storage.Store) *PaperHandler {
	return &PaperHandler{
		collection: client.Database(dbName).Collection("papers"),
		files:      files,
	}
}

// GetPapers retrieves all papers that are not soft-deleted
func (h *PaperHandler) GetPapers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cursor, err := h.collection.Find(ctx, bson.M{"is_deleted": false})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch papers")
		return
	}
	defer cursor.Close(ctx)

	papers := []models.Paper{}
	if err = cursor.All(ctx, &papers); err != nil {
		respondError(w, http.StatusInternalServerError, "Error decoding papers")
		return
	}

	respondJSON(w, http.StatusOK, papers)
}

// GetPaperByID retrieves a single paper; soft-deleted papers read as missing
func (h *PaperHandler) GetPaperByID(w http.ResponseWriter, r *http.Request) {
	objID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid paper ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var paper models.Paper
	err = h.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&paper)
	if err != nil || paper.IsDeleted {
		if err != nil && err != mongo.ErrNoDocuments {
			respondError(w, http.StatusInternalServerError, "Failed to fetch paper")
			return
		}
		respondError(w, http.StatusNotFound, "Paper not found")
		return
	}

	respondJSON(w, http.StatusOK, paper)
}

// CreatePaper creates a paper from a multipart form with an optional file
func (h *PaperHandler) CreatePaper(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid multipart payload")
		return
	}

	paper := models.Paper{
		ID:          primitive.NewObjectID(),
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		CreatedAt:   time.Now(),
	}
	paper.UpdatedAt = paper.CreatedAt

	if err := paper.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if file, header, err := r.FormFile("file"); err == nil {
		defer file.Close()
		path, err := h.files.Save(file, header.Filename)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to store file")
			return
		}
		paper.File = path
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := h.collection.InsertOne(ctx, paper); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create paper")
		return
	}

	respondJSON(w, http.StatusCreated, paper)
}

// mergePaperUpdate applies the supplied fields onto the stored paper.
// Empty form values leave the prior values in place.
func mergePaperUpdate(paper *models.Paper, title, description string) {
	if title != "" {
		paper.Title = title
	}
	if description != "" {
		paper.Description = description
	}
}

// UpdatePaper replaces title, description and file. A newly uploaded file
// evicts the old one from storage before the reference is overwritten;
// eviction is best-effort and does not fail the request.
func (h *PaperHandler) UpdatePaper(w http.ResponseWriter, r *http.Request) {
	objID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid paper ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var paper models.Paper
	err = h.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&paper)
	if err != nil || paper.IsDeleted {
		if err != nil && err != mongo.ErrNoDocuments {
			respondError(w, http.StatusInternalServerError, "Failed to fetch paper")
			return
		}
		respondError(w, http.StatusNotFound, "Paper not found")
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid multipart payload")
		return
	}

	mergePaperUpdate(&paper, r.FormValue("title"), r.FormValue("description"))

	if file, header, err := r.FormFile("file"); err == nil {
		defer file.Close()
		if paper.File != "" {
			if err := h.files.Remove(paper.File); err != nil {
				log.Printf("Failed to remove old paper file %s: %v", paper.File, err)
			}
		}
		path, err := h.files.Save(file, header.Filename)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to store file")
			return
		}
		paper.File = path
	}

	paper.Touch()

	_, err = h.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": bson.M{
		"title":       paper.Title,
		"description": paper.Description,
		"file":        paper.File,
		"updated_at":  paper.UpdatedAt,
	}})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update paper")
		return
	}

	respondJSON(w, http.StatusOK, paper)
}

// DeletePaper soft-deletes a paper. The record and any stored file remain.
func (h *PaperHandler) DeletePaper(w http.ResponseWriter, r *http.Request) {
	objID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid paper ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var paper models.Paper
	err = h.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&paper)
	if err != nil || paper.IsDeleted {
		if err != nil && err != mongo.ErrNoDocuments {
			respondError(w, http.StatusInternalServerError, "Failed to fetch paper")
			return
		}
		respondError(w, http.StatusNotFound, "Paper not found")
		return
	}

	paper.Touch()
	_, err = h.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": bson.M{
		"is_deleted": true,
		"updated_at": paper.UpdatedAt,
	}})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete paper")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
