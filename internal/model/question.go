package model

// Question is a challenge authored by an admin. Name is unique; deletion is
// physical, so a removed question releases its name for reuse.
type Question struct {
	BaseModel
	Name        string `gorm:"size:255;uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Constraints string `gorm:"type:text" json:"constraints"`
	MaxScore    int    `gorm:"not null" json:"max_score"`
	Enabled     bool   `gorm:"default:false" json:"enabled"`
	Attachment  string `gorm:"size:512" json:"attachment,omitempty"`

	// CreatorLock restricts mutation and deletion to the creator.
	CreatorID   uint  `gorm:"index" json:"creator,omitempty"`
	Creator     *User `gorm:"foreignKey:CreatorID" json:"-"`
	CreatorLock bool  `json:"creator_lock,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}
