package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ClassStatus represents the approval lifecycle of a class offering.
type ClassStatus string

const (
	ClassStatusPending  ClassStatus = "pending"
	ClassStatusApproved ClassStatus = "approved"
	ClassStatusDenied   ClassStatus = "denied"
)

// Class represents a published class offering in the catalog.
// InstructorEmail references User.Email by value; there is no foreign key.
type Class struct {
	ID              uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	Title           string          `json:"title" gorm:"size:255;not null"`
	InstructorName  string          `json:"instructor_name" gorm:"size:255"`
	InstructorEmail string          `json:"instructor_email" gorm:"size:255;not null;index"`
	Image           string          `json:"image,omitempty" gorm:"size:512"`
	Price           decimal.Decimal `json:"price" gorm:"type:decimal(20,2);not null"`
	AvailableSeats  int             `json:"available_seats" gorm:"not null"`
	EnrolledStudent int             `json:"enrolled_student" gorm:"not null;default:0;index"`
	Status          ClassStatus     `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	Feedback        string          `json:"feedback,omitempty" gorm:"type:text"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (c *Class) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// InstructorSummary is the popular-instructors aggregation result: one row
// per instructor with the distinct titles taught and the total enrollment
// across those classes. It is computed, never stored.
type InstructorSummary struct {
	InstructorName  string   `json:"instructor_name"`
	InstructorEmail string   `json:"instructor_email"`
	InstructorImage string   `json:"instructor_image,omitempty"`
	ClassTitles     []string `json:"class_titles"`
	TotalEnrolled   int      `json:"total_enrolled"`
}
