package model

// MaxTagLength is the longest tag name in characters; it matches the column size.
const MaxTagLength = 64

// Tag is a free-form category label. The name is the identity: no surrogate id.
type Tag struct {
	Name string `json:"name" gorm:"primaryKey;size:64"`
}

// ProjectTag is the join row between a project and a tag.
type ProjectTag struct {
	ProjectID uint   `gorm:"primaryKey;autoIncrement:false"`
	TagName   string `gorm:"primaryKey;size:64"`
}

// TableName keeps the join table name stable for SetupJoinTable.
func (ProjectTag) TableName() string {
	return "project_tags"
}
