package models

import "gorm.io/gorm"

// User represents a registered PhotoShare account.
type User struct {
	ID          string `gorm:"primaryKey;size:24" json:"_id"`
	FirstName   string `gorm:"not null" json:"first_name"`
	LastName    string `gorm:"not null" json:"last_name"`
	Location    string `json:"location"`
	Description string `gorm:"type:text" json:"description"`
	Occupation  string `json:"occupation"`
	LoginName   string `gorm:"uniqueIndex;not null" json:"login_name"`
	Password    string `gorm:"not null" json:"-"`
}

// BeforeCreate assigns an object identifier when the caller did not.
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == "" {
		u.ID = NewID()
	}
	return nil
}

// Summary returns the identity embedded into comment views.
func (u *User) Summary() *UserSummary {
	return &UserSummary{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}
