package dto

import "time"

type BranchRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

type EventRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Location    string    `json:"location"`
	Status      string    `json:"status,omitempty"`
}

type SermonRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	SeriesTitle string    `json:"series_title,omitempty"`
	AudioURL    string    `json:"audio_url,omitempty"`
	VideoURL    string    `json:"video_url,omitempty"`
	Transcript  string    `json:"transcript,omitempty"`
}

// Page mirrors the paginated list envelope of the admin clients.
type Page[T any] struct {
	Count   int64 `json:"count"`
	Results []T   `json:"results"`
}
