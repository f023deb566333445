package models

// CourseUpdate carries a partial course mutation. Nil fields are left
// untouched on the stored document.
type CourseUpdate struct {
	Title         *string     `json:"title" validate:"omitnil,min=1"`
	Description   *string     `json:"description" validate:"omitnil,min=1"`
	Department    *Department `json:"department" validate:"omitnil,oneof=computer_science mathematics physics biology chemistry engineering"`
	Credits       *int        `json:"credits" validate:"omitnil,min=1,max=5"`
	Difficulty    *Difficulty `json:"difficulty" validate:"omitnil,oneof=introductory intermediate advanced"`
	Schedule      *Schedule   `json:"schedule"`
	Prerequisites []string    `json:"prerequisites"`
	Capacity      *int        `json:"capacity" validate:"omitnil,min=1"`
}

func (u *CourseUpdate) Validate() error {
	return validationMessage(validate.Struct(u))
}
