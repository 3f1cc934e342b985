package routing

type CreateSessionRequest struct {
	Language    string   `json:"language" validate:"required"`
	Content     string   `json:"content"`
	Title       string   `json:"title" validate:"max=255"`
	Description string   `json:"description"`
	Tags        []string `json:"tags" validate:"max=20"`
}

// UpdateSessionRequest only changes the fields that are given.
type UpdateSessionRequest struct {
	Language    string   `json:"language"`
	Content     string   `json:"content"`
	Title       string   `json:"title" validate:"max=255"`
	Description string   `json:"description"`
	Tags        []string `json:"tags" validate:"max=20"`
}

type RunCodeRequest struct {
	SessionID string `json:"session_id" validate:"omitempty,uuid"`
	Language  string `json:"language" validate:"required"`
	Code      string `json:"code"`
}
