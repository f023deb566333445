package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/adt-04/university-backend/internal/middleware"
	"github.com/adt-04/university-backend/internal/models"
)

type CourseHandler struct {
	collection *mongo.Collection
}

func NewCourseHandler(client *mongo.Client, dbName string) *CourseHandler {
	return &CourseHandler{
		collection: client.Database(dbName).Collection("courses"),
	}
}

// populateStages resolves the instructor (name, email) and prerequisite
// titles on course documents, plus enrolled students when asked for.
func populateStages(includeStudents bool) []bson.D {
	stages := []bson.D{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "users"},
			{Key: "localField", Value: "instructor"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "instructor_info"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$instructor_info"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "courses"},
			{Key: "localField", Value: "prerequisites"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "prerequisite_courses"},
		}}},
		{{Key: "$addFields", Value: bson.D{
			{Key: "prerequisite_titles", Value: "$prerequisite_courses.title"},
		}}},
	}

	project := bson.D{
		{Key: "instructor_info.password", Value: 0},
		{Key: "instructor_info.role", Value: 0},
		{Key: "instructor_info.created_at", Value: 0},
		{Key: "instructor_info.updated_at", Value: 0},
		{Key: "prerequisite_courses", Value: 0},
	}
	if includeStudents {
		stages = append(stages, bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "users"},
			{Key: "localField", Value: "enrolled_students"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "enrolled_student_info"},
		}}})
		project = append(project,
			bson.E{Key: "enrolled_student_info.password", Value: 0},
			bson.E{Key: "enrolled_student_info.role", Value: 0},
			bson.E{Key: "enrolled_student_info.created_at", Value: 0},
			bson.E{Key: "enrolled_student_info.updated_at", Value: 0},
		)
	}
	return append(stages, bson.D{{Key: "$project", Value: project}})
}

// GetCourses retrieves all active courses with instructor and
// prerequisite titles resolved
func (h *CourseHandler) GetCourses(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "is_active", Value: true}}}},
	}
	pipeline = append(pipeline, populateStages(false)...)

	cursor, err := h.collection.Aggregate(ctx, pipeline)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch courses")
		return
	}
	defer cursor.Close(ctx)

	courses := []bson.M{}
	if err = cursor.All(ctx, &courses); err != nil {
		respondError(w, http.StatusInternalServerError, "Error decoding courses")
		return
	}

	respondJSON(w, http.StatusOK, courseListEnvelope(courses, len(courses)))
}

// GetCourseByID retrieves a single course by id, active or not, with
// instructor, prerequisites and enrolled students resolved
func (h *CourseHandler) GetCourseByID(w http.ResponseWriter, r *http.Request) {
	objID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid course ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "_id", Value: objID}}}},
	}
	pipeline = append(pipeline, populateStages(true)...)

	cursor, err := h.collection.Aggregate(ctx, pipeline)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch course")
		return
	}
	defer cursor.Close(ctx)

	var courses []bson.M
	if err = cursor.All(ctx, &courses); err != nil {
		respondError(w, http.StatusInternalServerError, "Error decoding course")
		return
	}
	if len(courses) == 0 {
		respondError(w, http.StatusNotFound, "No course found with that ID")
		return
	}

	respondJSON(w, http.StatusOK, courseEnvelope("course", courses[0]))
}

// CreateCourse creates a new course owned by the authenticated caller.
// Any instructor supplied in the body is discarded.
func (h *CourseHandler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	var newCourse models.Course
	if err := json.NewDecoder(r.Body).Decode(&newCourse); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	callerID, ok := middleware.UserID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	instructorID, err := primitive.ObjectIDFromHex(callerID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	newCourse.ID = primitive.NewObjectID()
	newCourse.Instructor = instructorID
	newCourse.ApplyDefaults()
	newCourse.ComputeSlug()
	newCourse.CreatedAt = time.Now()
	newCourse.UpdatedAt = newCourse.CreatedAt

	if err := newCourse.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := h.collection.InsertOne(ctx, newCourse); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			respondError(w, http.StatusConflict, "A course with that title already exists")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to create course")
		return
	}

	respondJSON(w, http.StatusCreated, courseEnvelope("course", newCourse))
}

// buildCourseUpdate turns a partial update into a $set document. The slug
// is recomputed whenever the title changes, and updated_at always moves.
func buildCourseUpdate(u *models.CourseUpdate, now time.Time) (bson.M, error) {
	set := bson.M{"updated_at": now}
	if u.Title != nil {
		set["title"] = *u.Title
		set["slug"] = models.ComputeSlug(*u.Title)
	}
	if u.Description != nil {
		set["description"] = *u.Description
	}
	if u.Department != nil {
		set["department"] = *u.Department
	}
	if u.Credits != nil {
		set["credits"] = *u.Credits
	}
	if u.Difficulty != nil {
		set["difficulty"] = *u.Difficulty
	}
	if u.Schedule != nil {
		set["schedule"] = *u.Schedule
	}
	if u.Capacity != nil {
		set["capacity"] = *u.Capacity
	}
	if u.Prerequisites != nil {
		ids := make([]primitive.ObjectID, 0, len(u.Prerequisites))
		for _, hex := range u.Prerequisites {
			id, err := primitive.ObjectIDFromHex(hex)
			if err != nil {
				return nil, err
			}
			ids = append(ids, id)
		}
		set["prerequisites"] = ids
	}
	return set, nil
}

// UpdateCourse applies a partial update to a course the caller owns. The
// filter matches id and instructor together, so a miss does not reveal
// whether the course exists or belongs to someone else.
func (h *CourseHandler) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	objID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid course ID")
		return
	}

	callerID, ok := middleware.UserID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	instructorID, err := primitive.ObjectIDFromHex(callerID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var update models.CourseUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := update.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	set, err := buildCourseUpdate(&update, time.Now())
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid prerequisite ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	result, err := h.collection.UpdateOne(ctx,
		bson.M{"_id": objID, "instructor": instructorID},
		bson.M{"$set": set},
	)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			respondError(w, http.StatusConflict, "A course with that title already exists")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to update course")
		return
	}
	if result.MatchedCount == 0 {
		respondError(w, http.StatusNotFound, "No course found or you are not authorized")
		return
	}

	var course models.Course
	if err := h.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&course); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch updated course")
		return
	}

	respondJSON(w, http.StatusOK, courseEnvelope("course", course))
}

// DeleteCourse deactivates a course. The record stays in storage and
// remains fetchable by id.
func (h *CourseHandler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	objID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid course ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	result, err := h.collection.UpdateOne(ctx,
		bson.M{"_id": objID},
		bson.M{"$set": bson.M{"is_active": false, "updated_at": time.Now()}},
	)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete course")
		return
	}
	if result.MatchedCount == 0 {
		respondError(w, http.StatusNotFound, "No course found with that ID")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// EnrollCourse adds the authenticated student to the course roster.
// $addToSet makes repeat enrollment a no-op.
func (h *CourseHandler) EnrollCourse(w http.ResponseWriter, r *http.Request) {
	objID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid course ID")
		return
	}

	callerID, ok := middleware.UserID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	studentID, err := primitive.ObjectIDFromHex(callerID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	result, err := h.collection.UpdateOne(ctx,
		bson.M{"_id": objID},
		bson.M{
			"$addToSet": bson.M{"enrolled_students": studentID},
			"$set":      bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to enroll in course")
		return
	}
	if result.MatchedCount == 0 {
		respondError(w, http.StatusNotFound, "No course found with that ID")
		return
	}

	var course models.Course
	if err := h.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&course); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch course")
		return
	}

	respondJSON(w, http.StatusOK, courseEnvelope("course", course))
}
