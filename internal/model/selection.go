package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Selection is a basket entry: a class a student has chosen but not yet paid
// for. Name, image, and price are snapshots of the catalog row at selection
// time so the basket renders without a catalog join.
type Selection struct {
	ID             uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	ClassItemID    uuid.UUID       `json:"class_item_id" gorm:"type:char(36);not null;index:idx_selection_class_email"`
	Email          string          `json:"email" gorm:"size:255;not null;index:idx_selection_class_email"`
	ClassName      string          `json:"class_name" gorm:"size:255"`
	Image          string          `json:"image,omitempty" gorm:"size:512"`
	Price          decimal.Decimal `json:"price" gorm:"type:decimal(20,2)"`
	InstructorName string          `json:"instructor_name" gorm:"size:255"`
	CreatedAt      time.Time       `json:"created_at"`
}

// BeforeCreate sets UUID before creating the record.
func (s *Selection) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
