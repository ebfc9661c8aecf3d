package models

import (
	"time"

	"gorm.io/gorm"
)

// Photo is an image owned by a user. Comments are embedded in the document
// store and live in their own table in SQL stores.
type Photo struct {
	ID       string    `gorm:"primaryKey;size:24" json:"_id"`
	FileName string    `gorm:"not null" json:"file_name"`
	DateTime time.Time `json:"date_time"`
	UserID   string    `gorm:"size:24;not null;index" json:"user_id"`
	Comments []Comment `gorm:"foreignKey:PhotoID;constraint:OnDelete:CASCADE" json:"comments"`
}

// BeforeCreate assigns an object identifier when the caller did not.
func (p *Photo) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = NewID()
	}
	return nil
}

// Comment is a remark left on a photo. UserID is the author, which may differ
// from the photo owner.
type Comment struct {
	ID       string    `gorm:"primaryKey;size:24" json:"_id"`
	PhotoID  string    `gorm:"size:24;not null;index" json:"-"`
	Comment  string    `gorm:"type:text;not null" json:"comment"`
	DateTime time.Time `gorm:"index" json:"date_time"`
	UserID   string    `gorm:"size:24;not null;index" json:"user_id"`
}

// BeforeCreate assigns an object identifier when the caller did not.
func (c *Comment) BeforeCreate(_ *gorm.DB) error {
	if c.ID == "" {
		c.ID = NewID()
	}
	return nil
}
