package dto

// LoginRequest carries credentials for sign-in or sign-up. Both fields
// empty means guest/demo login.
type LoginRequest struct {
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"omitempty,min=6"`
	SignUp   bool   `json:"sign_up"`
}

// PostCreateRequest carries a finished post draft.
type PostCreateRequest struct {
	Type    string   `json:"type" validate:"omitempty,oneof=image video text micro"`
	Content string   `json:"content" validate:"required"`
	Caption string   `json:"caption"`
	Tags    []string `json:"tags" validate:"omitempty,dive,max=64"`
}

// SendMessageRequest carries a locally authored chat message.
type SendMessageRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
	Type    string `json:"type" validate:"omitempty,oneof=text voice image"`
}

// CaptionRequest asks the generation service for a caption.
type CaptionRequest struct {
	Mood    string `json:"mood" validate:"required,max=64"`
	Context string `json:"context" validate:"required,max=256"`
}
