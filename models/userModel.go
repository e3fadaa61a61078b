package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID        string                      `json:"id" gorm:"primaryKey;size:36" bson:"_id"`
	Username  string                      `json:"username" gorm:"size:64;uniqueIndex;not null" bson:"username"`
	Password  string                      `json:"-" gorm:"not null" bson:"password"`
	Email     string                      `json:"email" gorm:"size:191" bson:"email"`
	Role      string                      `json:"role" gorm:"size:16;default:user" bson:"role"`
	OrderIDs  datatypes.JSONSlice[string] `json:"orderIds" bson:"orderIds"`
	CreatedAt time.Time                   `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time                   `json:"updatedAt" bson:"updatedAt"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

type RegisterData struct {
	Username        string `form:"username"`
	Password        string `form:"password"`
	ConfirmPassword string `form:"confirmPassword"`
	Email           string `form:"email"`
}

type LoginData struct {
	Username string `form:"username"`
	Password string `form:"password"`
}
