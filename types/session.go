package types

import "time"

// Session binds an opaque token to one previously classified uploaded
// document. Sessions are written once and never mutated.
type Session struct {
	ID             string
	Content        string
	Classification Classification
	CreatedAt      time.Time
}

// ChatRecord is one question/answer exchange persisted for a session.
type ChatRecord struct {
	ID        string `bson:"_id,omitempty" json:"id"`
	SessionID string `bson:"session_id" json:"session_id"`
	Question  string `bson:"question" json:"question"`
	Answer    string `bson:"answer" json:"answer"`
	CreatedAt int64  `bson:"created_at" json:"created_at"`
}
