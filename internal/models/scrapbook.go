package models

import (
	"strings"
	"time"
)

type Memory struct {
	ID        int        `json:"id" db:"id"`
	Image     string     `json:"image" db:"image"`
	Caption   string     `json:"caption" db:"caption"`
	Date      *time.Time `json:"date" db:"date"`
	MediaType string     `json:"media_type"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}

type BucketItem struct {
	ID        int       `json:"id" db:"id"`
	Text      string    `json:"text" db:"text"`
	Completed bool      `json:"completed" db:"completed"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type CountdownEvent struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Date      time.Time `json:"date" db:"date"`
	TimeLeft  TimeLeft  `json:"time_left"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type Letter struct {
	ID        int       `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type Place struct {
	ID        int        `json:"id" db:"id"`
	Name      string     `json:"name" db:"name"`
	Date      *time.Time `json:"date" db:"date"`
	Notes     string     `json:"notes" db:"notes"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}

type WishlistItem struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	URL       string    `json:"url" db:"url"`
	Price     string    `json:"price" db:"price"`
	Note      string    `json:"note" db:"note"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type DateIdea struct {
	ID        int       `json:"id" db:"id"`
	Text      string    `json:"text" db:"text"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type CreateMemoryRequest struct {
	Image   string  `json:"image" validate:"required"`
	Caption string  `json:"caption" validate:"max=255"`
	Date    *string `json:"date"`
}

type CreateBucketItemRequest struct {
	Text string `json:"text" validate:"required,min=1,max=255"`
}

type ToggleBucketItemRequest struct {
	Completed bool `json:"completed"`
}

type CreateCountdownRequest struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
}

type CreateLetterRequest struct {
	Title   string `json:"title" validate:"required,min=1,max=255"`
	Content string `json:"content" validate:"required"`
}

type CreatePlaceRequest struct {
	Name  string  `json:"name" validate:"required,min=1,max=255"`
	Date  *string `json:"date"`
	Notes string  `json:"notes"`
}

type CreateWishlistItemRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=255"`
	URL   string `json:"url"`
	Price string `json:"price" validate:"max=100"`
	Note  string `json:"note"`
}

type CreateDateIdeaRequest struct {
	Text string `json:"text" validate:"required,min=1,max=255"`
}

// TimeLeft is the countdown decomposition shown on event cards.
type TimeLeft struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// TimeLeftUntil decomposes the interval between now and the event date.
// Past dates collapse to all zeros rather than counting up.
func TimeLeftUntil(date, now time.Time) TimeLeft {
	diff := date.Sub(now)
	if diff <= 0 {
		return TimeLeft{}
	}

	total := int(diff.Seconds())
	return TimeLeft{
		Days:    total / 86400,
		Hours:   (total / 3600) % 24,
		Minutes: (total / 60) % 60,
		Seconds: total % 60,
	}
}

var videoExtensions = []string{".mp4", ".webm", ".ogg", ".mov"}

// ClassifyMedia decides between image and video for a stored media URL.
// There is no stored media-type column; classification is by URL suffix
// or by a video data scheme prefix.
func ClassifyMedia(url string) string {
	lower := strings.ToLower(url)
	if strings.HasPrefix(lower, "data:video/") {
		return "video"
	}
	for _, ext := range videoExtensions {
		if strings.HasSuffix(lower, ext) {
			return "video"
		}
	}
	return "image"
}
