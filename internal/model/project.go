package model

import "time"

// Project is a posted collaboration request.
type Project struct {
	ID              uint       `json:"id" gorm:"primaryKey"`
	Name            string     `json:"name" gorm:"size:30;not null"`
	Description     string     `json:"description" gorm:"type:text;not null"`
	UserID          uint       `json:"user_id" gorm:"not null;index"`
	ContactInfoType string     `json:"contact_info_type" gorm:"size:20;not null"`
	ContactInfo     string     `json:"contact_info" gorm:"size:260;not null"`
	Latitude        float64    `json:"lat" gorm:"not null;index:idx_projects_geo,priority:1"`
	Longitude       float64    `json:"long" gorm:"not null;index:idx_projects_geo,priority:2"`
	TimePosted      time.Time  `json:"time_posted" gorm:"autoCreateTime;not null"`
	InquiryDeadline *time.Time `json:"inquiry_deadline,omitempty"`
	WorkStart       *time.Time `json:"work_start,omitempty"`
	WorkEnd         *time.Time `json:"work_end,omitempty"`
	PicURL1         string     `json:"pic_url1,omitempty" gorm:"size:2000"`
	PicURL2         string     `json:"pic_url2,omitempty" gorm:"size:2000"`

	// Relations
	User *User `json:"-" gorm:"foreignKey:UserID"`
	Tags []Tag `json:"tags" gorm:"many2many:project_tags;constraint:OnDelete:CASCADE"`
}

// Location returns the project's geolocation.
func (p *Project) Location() GeoPoint {
	return GeoPoint{Lat: p.Latitude, Long: p.Longitude}
}

// TagNames returns the names of the attached tags in association order.
func (p *Project) TagNames() []string {
	names := make([]string, 0, len(p.Tags))
	for _, t := range p.Tags {
		names = append(names, t.Name)
	}
	return names
}

// OwnedBy reports whether userID owns the project.
func (p *Project) OwnedBy(userID uint) bool {
	return p.UserID == userID
}
