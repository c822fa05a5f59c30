package types

type AskRequest struct {
	SessionID string `json:"session_id"`
	Question  string `json:"question"`
}
