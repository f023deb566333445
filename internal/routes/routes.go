package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/adt-04/university-backend/internal/handlers"
	"github.com/adt-04/university-backend/internal/middleware"
	"github.com/adt-04/university-backend/internal/storage"
	"github.com/adt-04/university-backend/internal/utils"
)

func SetupRouter(client *mongo.Client, dbName string, files *storage.Store, mailer *utils.Mailer) *mux.Router {
	router := mux.NewRouter()
	router.Use(middleware.LogRequests)

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Server is healthy"))
	}).Methods("GET")

	userHandler := handlers.NewUserHandler(client, dbName, mailer)
	courseHandler := handlers.NewCourseHandler(client, dbName)
	paperHandler := handlers.NewPaperHandler(client, dbName, files)

	protect := middleware.Protect
	staffOnly := middleware.RestrictTo("admin", "staff")
	studentOnly := middleware.RestrictTo("student")
	adminOnly := middleware.RestrictTo("admin")

	// Users
	router.HandleFunc("/api/users/signup", userHandler.Signup).Methods("POST")
	router.HandleFunc("/api/users/signin", userHandler.Signin).Methods("POST")
	router.HandleFunc("/api/users/logout", userHandler.Logout).Methods("POST")
	router.Handle("/api/users", protect(adminOnly(http.HandlerFunc(userHandler.GetUsers)))).Methods("GET")

	// Courses
	router.HandleFunc("/api/courses", courseHandler.GetCourses).Methods("GET")
	router.HandleFunc("/api/courses/{id}", courseHandler.GetCourseByID).Methods("GET")
	router.Handle("/api/courses", protect(http.HandlerFunc(courseHandler.CreateCourse))).Methods("POST")
	router.Handle("/api/courses/{id}/enroll", protect(studentOnly(http.HandlerFunc(courseHandler.EnrollCourse)))).Methods("POST")
	router.Handle("/api/courses/{id}", protect(http.HandlerFunc(courseHandler.UpdateCourse))).Methods("PATCH")
	router.Handle("/api/courses/{id}", protect(http.HandlerFunc(courseHandler.DeleteCourse))).Methods("DELETE")

	// Papers. Listing is open while single fetch is authenticated,
	// mirroring the API this service replaced.
	router.HandleFunc("/api/papers", paperHandler.GetPapers).Methods("GET")
	router.Handle("/api/papers/{id}", protect(http.HandlerFunc(paperHandler.GetPaperByID))).Methods("GET")
	router.Handle("/api/papers", protect(staffOnly(http.HandlerFunc(paperHandler.CreatePaper)))).Methods("POST")
	router.Handle("/api/papers/{id}", protect(staffOnly(http.HandlerFunc(paperHandler.UpdatePaper)))).Methods("PUT")
	router.Handle("/api/papers/{id}", protect(staffOnly(http.HandlerFunc(paperHandler.DeletePaper)))).Methods("DELETE")

	return router
}
