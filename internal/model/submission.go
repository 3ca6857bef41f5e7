package model

type Submission struct {
	BaseModel
	QuestionID uint      `gorm:"index;not null" json:"question"`
	Question   *Question `gorm:"foreignKey:QuestionID" json:"-"`
	UserID     uint      `gorm:"index;not null" json:"user"`
	User       *User     `gorm:"foreignKey:UserID" json:"-"`
	Link       string    `gorm:"size:512;not null" json:"link"`
	Score      int       `gorm:"default:0" json:"score"`
	Graded     bool      `gorm:"default:false" json:"graded"`
}

func (Submission) TableName() string {
	return "submissions"
}
