package models

import "time"

type ChatMessage struct {
	ID        int       `json:"id" db:"id"`
	Text      string    `json:"text" db:"text"`
	Sender    string    `json:"sender" db:"sender"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type SendMessageRequest struct {
	Text string `json:"text" validate:"required,min=1"`
}

type Background struct {
	ID        int       `json:"id" db:"id"`
	URL       string    `json:"url" db:"url"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type Song struct {
	ID        int       `json:"id" db:"id"`
	VideoID   string    `json:"video_id" db:"video_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type SetSongRequest struct {
	VideoID string `json:"video_id" validate:"required,min=1,max=64"`
}
