package dto

// CreateRequest is the JSON body of a notification submission.
type CreateRequest struct {
	Channel      string            `json:"channel" validate:"required,oneof=email push"`
	UserID       string            `json:"user_id" validate:"required"`
	TemplateCode string            `json:"template_code" validate:"required"`
	Variables    map[string]string `json:"variables"`
	RequestID    string            `json:"request_id"`
	Priority     int               `json:"priority"`
}

// CreateResponse is returned for an accepted submission.
type CreateResponse struct {
	NotificationID string `json:"notification_id"`
	RequestID      string `json:"request_id"`
	Status         string `json:"status"`
}
