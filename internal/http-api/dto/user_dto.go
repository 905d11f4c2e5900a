package dto

import (
	"recipehub/internal/http-api/models"
	"recipehub/internal/http-api/service"
)

// UserResponse: public profile annotated for the current viewer
type UserResponse struct {
	ID           string  `json:"id"`
	Email        string  `json:"email"`
	Username     string  `json:"username"`
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	IsSubscribed bool    `json:"is_subscribed"`
	Avatar       *string `json:"avatar,omitempty"`
}

func UserFromModel(u models.User, isSubscribed bool) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: isSubscribed,
		Avatar:       u.Avatar,
	}
}

func UserFromProfile(p service.UserProfile) UserResponse {
	return UserFromModel(p.User, p.IsSubscribed)
}

// UserListResponse: paginated user listing
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Total int64          `json:"total"`
}

// AvatarRequest: payload carrying a base64 data-URI image
type AvatarRequest struct {
	Avatar string `json:"avatar" binding:"required"`
}

// AvatarResponse: stored avatar path
type AvatarResponse struct {
	Avatar string `json:"avatar"`
}
