package models

type SubscribeRequest struct {
	Email         string   `json:"email"`
	Subscriptions []string `json:"subscriptions"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
