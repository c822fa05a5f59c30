package types

type DataResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type UploadResponse struct {
	SessionID string `json:"session_id,omitempty"`
	Message   string `json:"message"`
}

type AskResponse struct {
	Answer string `json:"answer"`
}

type HistoryResponse struct {
	Records []ChatRecord `json:"records"`
}
