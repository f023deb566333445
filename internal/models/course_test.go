package models

import (
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func validCourse() Course {
	return Course{
		Title:       "Intro to Algorithms",
		Description: "Sorting, searching, graphs.",
		Instructor:  primitive.NewObjectID(),
		Department:  DeptComputerScience,
		Credits:     3,
	}
}

func TestComputeSlug_LowercaseHyphenated(t *testing.T) {
	c := validCourse()
	c.ComputeSlug()
	if c.Slug != "intro-to-algorithms" {
		t.Fatalf("expected slug intro-to-algorithms, got %q", c.Slug)
	}
}

func TestComputeSlug_TracksTitle(t *testing.T) {
	c := validCourse()
	c.ComputeSlug()
	c.Title = "Advanced Operating Systems"
	c.ComputeSlug()
	if c.Slug != "advanced-operating-systems" {
		t.Fatalf("slug did not follow title change, got %q", c.Slug)
	}
}

func TestApplyDefaults(t *testing.T) {
	c := validCourse()
	c.ApplyDefaults()
	if c.Difficulty != DifficultyIntermediate {
		t.Fatalf("expected default difficulty intermediate, got %q", c.Difficulty)
	}
	if c.Capacity != DefaultCapacity {
		t.Fatalf("expected default capacity %d, got %d", DefaultCapacity, c.Capacity)
	}
	if !c.IsActive {
		t.Fatalf("expected new course to be active")
	}
	if c.Prerequisites == nil || c.EnrolledStudents == nil {
		t.Fatalf("expected reference slices to be initialized")
	}
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	c := validCourse()
	c.Difficulty = DifficultyAdvanced
	c.Capacity = 12
	c.ApplyDefaults()
	if c.Difficulty != DifficultyAdvanced {
		t.Fatalf("explicit difficulty was overwritten: %q", c.Difficulty)
	}
	if c.Capacity != 12 {
		t.Fatalf("explicit capacity was overwritten: %d", c.Capacity)
	}
}

func TestValidate_AcceptsValidCourse(t *testing.T) {
	c := validCourse()
	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		t.Fatalf("expected valid course, got %v", err)
	}
}

func TestValidate_RequiredFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Course)
		want   string
	}{
		{"missing title", func(c *Course) { c.Title = "" }, "title"},
		{"missing description", func(c *Course) { c.Description = "" }, "description"},
		{"missing instructor", func(c *Course) { c.Instructor = primitive.NilObjectID }, "instructor"},
		{"missing department", func(c *Course) { c.Department = "" }, "department"},
		{"missing credits", func(c *Course) { c.Credits = 0 }, "credits"},
	}
	for _, tc := range cases {
		c := validCourse()
		c.ApplyDefaults()
		tc.mutate(&c)
		err := c.Validate()
		if err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
		if !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%s: error %q does not mention %q", tc.name, err.Error(), tc.want)
		}
	}
}

func TestValidate_EnumAndRangeConstraints(t *testing.T) {
	c := validCourse()
	c.ApplyDefaults()
	c.Department = "astrology"
	if err := c.Validate(); err == nil {
		t.Fatalf("expected unknown department to be rejected")
	}

	c = validCourse()
	c.ApplyDefaults()
	c.Credits = 6
	if err := c.Validate(); err == nil {
		t.Fatalf("expected credits above 5 to be rejected")
	}

	c = validCourse()
	c.ApplyDefaults()
	c.Difficulty = "impossible"
	if err := c.Validate(); err == nil {
		t.Fatalf("expected unknown difficulty to be rejected")
	}

	c = validCourse()
	c.ApplyDefaults()
	c.Schedule.Days = []string{"monday", "sunday"}
	if err := c.Validate(); err == nil {
		t.Fatalf("expected weekend day to be rejected")
	}
}

func TestCourseUpdateValidate(t *testing.T) {
	if err := (&CourseUpdate{}).Validate(); err != nil {
		t.Fatalf("empty update should be valid, got %v", err)
	}

	empty := ""
	if err := (&CourseUpdate{Title: &empty}).Validate(); err == nil {
		t.Fatalf("expected empty title to be rejected")
	}

	bad := Difficulty("impossible")
	if err := (&CourseUpdate{Difficulty: &bad}).Validate(); err == nil {
		t.Fatalf("expected unknown difficulty to be rejected")
	}

	credits := 7
	if err := (&CourseUpdate{Credits: &credits}).Validate(); err == nil {
		t.Fatalf("expected credits above 5 to be rejected")
	}

	good := "Compilers"
	dept := DeptEngineering
	ok := CourseUpdate{Title: &good, Department: &dept}
	if err := ok.Validate(); err != nil {
		t.Fatalf("expected valid update, got %v", err)
	}
}
