package dto

type SendTestMailRequest struct {
	Email       string `json:"email" validate:"required"`
	DisplayName string `json:"displayName,omitempty" validate:"omitempty"`
}
