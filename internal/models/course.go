package models

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gosimple/slug"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Department string

const (
	DeptComputerScience Department = "computer_science"
	DeptMathematics     Department = "mathematics"
	DeptPhysics         Department = "physics"
	DeptBiology         Department = "biology"
	DeptChemistry       Department = "chemistry"
	DeptEngineering     Department = "engineering"
)

type Difficulty string

const (
	DifficultyIntroductory Difficulty = "introductory"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

const DefaultCapacity = 30

type Schedule struct {
	Days      []string `json:"days" bson:"days" validate:"dive,oneof=monday tuesday wednesday thursday friday"`
	Time      string   `json:"time" bson:"time"`
	Classroom string   `json:"classroom" bson:"classroom"`
}

type Course struct {
	ID               primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Title            string               `json:"title" bson:"title" validate:"required"`
	Slug             string               `json:"slug" bson:"slug"`
	Description      string               `json:"description" bson:"description" validate:"required"`
	Instructor       primitive.ObjectID   `json:"instructor" bson:"instructor" validate:"required"`
	Department       Department           `json:"department" bson:"department" validate:"required,oneof=computer_science mathematics physics biology chemistry engineering"`
	Credits          int                  `json:"credits" bson:"credits" validate:"required,min=1,max=5"`
	Difficulty       Difficulty           `json:"difficulty" bson:"difficulty" validate:"omitempty,oneof=introductory intermediate advanced"`
	Schedule         Schedule             `json:"schedule" bson:"schedule"`
	Prerequisites    []primitive.ObjectID `json:"prerequisites" bson:"prerequisites"`
	Capacity         int                  `json:"capacity" bson:"capacity"`
	EnrolledStudents []primitive.ObjectID `json:"enrolled_students" bson:"enrolled_students"`
	IsActive         bool                 `json:"is_active" bson:"is_active"`
	CreatedAt        time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time            `json:"updated_at" bson:"updated_at"`
}

var validate = validator.New()

// ApplyDefaults fills the fields the schema would default in storage.
func (c *Course) ApplyDefaults() {
	if c.Difficulty == "" {
		c.Difficulty = DifficultyIntermediate
	}
	if c.Capacity == 0 {
		c.Capacity = DefaultCapacity
	}
	if c.Prerequisites == nil {
		c.Prerequisites = []primitive.ObjectID{}
	}
	if c.EnrolledStudents == nil {
		c.EnrolledStudents = []primitive.ObjectID{}
	}
	if c.Schedule.Days == nil {
		c.Schedule.Days = []string{}
	}
	c.IsActive = true
}

// ComputeSlug derives the slug from the title. Invoked before every
// persist so the slug always tracks the current title.
func (c *Course) ComputeSlug() {
	c.Slug = ComputeSlug(c.Title)
}

func ComputeSlug(title string) string {
	return slug.Make(title)
}

func (c *Course) Validate() error {
	return validationMessage(validate.Struct(c))
}

// validationMessage turns validator errors into client-facing messages.
func validationMessage(err error) error {
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return err
	}
	fe := errs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", fieldName(fe.Field()))
	case "oneof":
		return fmt.Errorf("%s must be one of: %s", fieldName(fe.Field()), fe.Param())
	case "min", "max":
		switch fe.Field() {
		case "Credits":
			return fmt.Errorf("credits must be between 1 and 5")
		case "Capacity":
			return fmt.Errorf("capacity must be at least 1")
		}
		return fmt.Errorf("%s must not be empty", fieldName(fe.Field()))
	}
	return fmt.Errorf("%s is invalid", fieldName(fe.Field()))
}

func fieldName(structField string) string {
	switch structField {
	case "Title":
		return "title"
	case "Description":
		return "description"
	case "Instructor":
		return "instructor"
	case "Department":
		return "department"
	case "Credits":
		return "credits"
	case "Difficulty":
		return "difficulty"
	case "Capacity":
		return "capacity"
	case "Days":
		return "schedule.days"
	}
	return structField
}
