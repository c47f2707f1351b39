package model

import "time"

// DefaultProfilePic is used when a user signs up without a picture URL.
const DefaultProfilePic = "/static/images/junior-ferreira-profile.jpg"

// User represents a registered member who can post projects.
type User struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Email          string    `json:"email" gorm:"uniqueIndex;size:260;not null"`
	PasswordHash   string    `json:"-" gorm:"size:100;not null"` // Never expose in JSON
	DisplayName    string    `json:"display_name" gorm:"uniqueIndex;size:20;not null"`
	FirstName      string    `json:"first_name" gorm:"size:20;not null"`
	ProfilePic     string    `json:"profile_pic" gorm:"size:2000"`
	Privacy        bool      `json:"privacy" gorm:"not null"`
	Latitude       float64   `json:"lat" gorm:"not null"`
	Longitude      float64   `json:"long" gorm:"not null"`
	SeekingProject bool      `json:"seeking_project" gorm:"not null"`
	SeekingHelp    bool      `json:"seeking_help" gorm:"not null"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Relations
	Projects []Project `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// Location returns the user's stored geolocation.
func (u *User) Location() GeoPoint {
	return GeoPoint{Lat: u.Latitude, Long: u.Longitude}
}
