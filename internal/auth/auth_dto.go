package auth

import "time"

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Remember bool   `json:"remember"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type AuthResponse struct {
	UserID      int     `json:"user_id"`
	Username    string  `json:"username"`
	FullName    string  `json:"full_name"`
	Email       string  `json:"email"`
	Avatar      *string `json:"avatar"`
	IsStaff     bool    `json:"is_staff"`
	IsSuperuser bool    `json:"is_superuser"`
}

type Session struct {
	User         AuthResponse `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresAt    time.Time    `json:"expires_at"`
}

func mapToResponse(a Account) AuthResponse {
	return AuthResponse{
		UserID:      a.UserID,
		Username:    a.Username,
		FullName:    a.Name + " " + a.LastName,
		Email:       a.Email,
		Avatar:      a.Avatar,
		IsStaff:     a.IsStaff,
		IsSuperuser: a.IsSuperuser,
	}
}
