package model

import "github.com/golang-jwt/jwt/v5"

// AdminClaims are JWT claims for admin authentication
type AdminClaims struct {
	AdminID string `json:"adminId"`
	jwt.RegisteredClaims
}

// TeamClaims are JWT claims for a team token issued on a PIN-validated join
type TeamClaims struct {
	TeamID string `json:"teamId"`
	jwt.RegisteredClaims
}

// LoginRequest is the request body for admin login
type LoginRequest struct {
	Password string `json:"password"`
}

// LoginResponse is returned after successful admin login
type LoginResponse struct {
	Token   string `json:"token"`
	AdminID string `json:"adminId"`
}
