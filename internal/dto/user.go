package dto

import "time"

// LoginForm is the body for POST /login.
type LoginForm struct {
	AccessCode string `form:"accessCode"`
}

// AddUserForm is the body for POST /admin/add-user.
type AddUserForm struct {
	Name       string `form:"name" binding:"required"`
	AccessCode string `form:"accessCode" binding:"required"`
}

// UserResponse is the shape dumped by GET /debug/users.
type UserResponse struct {
	ID         int64     `json:"id"`
	AccessCode string    `json:"accessCode"`
	Name       string    `json:"name"`
	IsAdmin    bool      `json:"isAdmin"`
	CreatedAt  time.Time `json:"createdAt"`
}
