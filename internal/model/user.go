package model

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type User struct {
	BaseModel
	Name     string   `gorm:"size:100;not null" json:"name"`
	Email    string   `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password string   `gorm:"size:100;not null" json:"-"`
	Role     UserRole `gorm:"type:enum('user','admin');default:'user'" json:"role"`
	Score    int      `gorm:"default:0" json:"score"`
}

func (User) TableName() string {
	return "users"
}
