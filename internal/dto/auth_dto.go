package dto

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginUser struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

type LoginResponse struct {
	User LoginUser `json:"user"`
}

type SendVerificationLinkRequest struct {
	Email       string `json:"email" validate:"required"`
	DisplayName string `json:"displayName,omitempty" validate:"omitempty"`
}

type OkResponse struct {
	Ok bool `json:"ok"`
}
