package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/adt-04/university-backend/internal/auth"
	"github.com/adt-04/university-backend/internal/models"
	"github.com/adt-04/university-backend/internal/utils"
)

type UserHandler struct {
	collection *mongo.Collection
	mailer     *utils.Mailer
}

func NewUserHandler(client *mongo.Client, dbName string, mailer *utils.Mailer) *UserHandler {
	return &UserHandler{
		collection: client.Database(dbName).Collection("users"),
		mailer:     mailer,
	}
}

// Signup handles user registration
func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var newUser models.User
	if err := json.NewDecoder(r.Body).Decode(&newUser); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if newUser.Email == "" || newUser.Name == "" || newUser.Password == "" {
		respondError(w, http.StatusBadRequest, "Name, email, and password are required")
		return
	}
	if newUser.Role == "" {
		newUser.Role = models.RoleStudent
	}
	if !models.ValidRole(newUser.Role) {
		respondError(w, http.StatusBadRequest, "Invalid role")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var existingUser models.User
	err := h.collection.FindOne(ctx, bson.M{"email": newUser.Email}).Decode(&existingUser)
	if err == nil {
		respondError(w, http.StatusConflict, "Email already exists")
		return
	} else if err != mongo.ErrNoDocuments {
		respondError(w, http.StatusInternalServerError, "Failed to check email availability")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newUser.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}
	newUser.Password = string(hashedPassword)

	newUser.ID = primitive.NewObjectID()
	newUser.CreatedAt = time.Now()
	newUser.UpdatedAt = newUser.CreatedAt

	if _, err := h.collection.InsertOne(ctx, newUser); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			respondError(w, http.StatusConflict, "Email already exists")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	if h.mailer != nil {
		to, name := newUser.Email, newUser.Name
		go func() {
			body := "<p>Hi " + name + ",</p><p>Your account has been created. Welcome aboard.</p>"
			if err := h.mailer.Send(to, "Welcome", body); err != nil {
				log.Printf("Failed to send welcome email to %s: %v", to, err)
			}
		}()
	}

	newUser.Password = ""
	respondJSON(w, http.StatusCreated, newUser)
}

// Signin handles user login
func (h *UserHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var credentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var user models.User
	err := h.collection.FindOne(ctx, bson.M{"email": credentials.Email}).Decode(&user)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(credentials.Password)); err != nil {
		respondError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := auth.GenerateJWT(user.ID.Hex(), string(user.Role))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}
	auth.SetAuthCookie(w, token)

	user.Password = ""
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// Logout clears the auth cookie
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearAuthCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// GetUsers retrieves all users without password hashes
func (h *UserHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cursor, err := h.collection.Find(ctx, bson.M{})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch users")
		return
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err = cursor.All(ctx, &users); err != nil {
		respondError(w, http.StatusInternalServerError, "Error decoding users")
		return
	}
	for i := range users {
		users[i].Password = ""
	}

	respondJSON(w, http.StatusOK, users)
}
