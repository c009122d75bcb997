package models

// RegisterRequest is the body of POST /api/v1/users/signup.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// LoginRequest carries credentials for POST /api/v1/login/access-token.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest is the body of the refresh and logout endpoints.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// ResetPasswordRequest is the body of POST /api/v1/reset-password/.
type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// UpdateMeRequest is the body of PATCH /api/v1/users/me.
// Nil fields are left untouched.
type UpdateMeRequest struct {
	Email    *string `json:"email,omitempty"`
	FullName *string `json:"full_name,omitempty"`
}

// UpdatePasswordRequest is the body of PATCH /api/v1/users/me/password.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// AdminCreateUserRequest is the body of POST /api/v1/users/.
type AdminCreateUserRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FullName    string `json:"full_name"`
	IsActive    *bool  `json:"is_active,omitempty"`
	IsSuperuser bool   `json:"is_superuser"`
}

// AdminUpdateUserRequest is the body of PATCH /api/v1/users/{id}.
// Nil fields are left untouched.
type AdminUpdateUserRequest struct {
	Email       *string `json:"email,omitempty"`
	Password    *string `json:"password,omitempty"`
	FullName    *string `json:"full_name,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
	IsSuperuser *bool   `json:"is_superuser,omitempty"`
}

// TokenResponse is returned by the login and refresh endpoints.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

// UsersPublic is a page of users with the total count.
type UsersPublic struct {
	Data  []User `json:"data"`
	Count int64  `json:"count"`
}

// Message is a generic informational response body.
type Message struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every 4xx/5xx JSON response.
// Error is a stable machine-readable kind, Message is for humans.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
