package model

import (
	"time"

	"github.com/google/uuid"
)

// Skill levels a course may require
const (
	SkillBeginner     = "beginner"
	SkillIntermediate = "intermediate"
	SkillAdvanced     = "advanced"
)

// Course represents one course offered by a bootcamp
type Course struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title                string    `gorm:"not null" json:"title" validate:"required"`
	Description          string    `gorm:"type:text;not null" json:"description" validate:"required"`
	Weeks                string    `gorm:"not null" json:"weeks" validate:"required"`
	Tuition              *float64  `gorm:"not null" json:"tuition" validate:"required"`
	MinimumSkill         string    `gorm:"not null" json:"minimumSkill" validate:"required,oneof=beginner intermediate advanced"`
	ScholarshipAvailable bool      `gorm:"not null" json:"scholarshipAvailable"`
	CreatedAt            time.Time `gorm:"not null;index" json:"createdAt"`
	BootcampID           uuid.UUID `gorm:"type:uuid;not null;index" json:"bootcamp" validate:"required"`

	// Relationships
	Bootcamp *Bootcamp `gorm:"foreignKey:BootcampID;constraint:OnDelete:CASCADE" json:"-" validate:"-"`
}

// ValidationMessages implements validation.MessageProvider
func (Course) ValidationMessages() map[string]string {
	return map[string]string{
		"title.required":        "Please add a course title",
		"description.required":  "Please add a course description",
		"weeks.required":        "Please add number of weeks",
		"tuition.required":      "Please add a tuition cost",
		"minimumSkill.required": "Please add a minimum skill",
		"minimumSkill.oneof":    "Minimum skill must be beginner, intermediate or advanced",
		"bootcamp.required":     "Course must belong to a bootcamp",
	}
}
