package models

import (
	"time"

	"gorm.io/gorm"
)

// SchemaInfo records which dataset version the store was loaded with.
type SchemaInfo struct {
	ID           string    `gorm:"primaryKey;size:24" json:"_id"`
	Version      string    `json:"version"`
	LoadDateTime time.Time `json:"load_date_time"`
}

// BeforeCreate assigns an object identifier when the caller did not.
func (s *SchemaInfo) BeforeCreate(_ *gorm.DB) error {
	if s.ID == "" {
		s.ID = NewID()
	}
	return nil
}
