package domain

import "time"

type Sermon struct {
	ID          SermonID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"not null;index:ix_sermons_title" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Date        time.Time `gorm:"not null;index:ix_sermons_date" json:"date"`
	SpeakerID   UserID    `gorm:"type:uuid;index" json:"speakerId"`
	SeriesTitle string    `json:"seriesTitle,omitempty"`
	AudioURL    string    `json:"audioUrl,omitempty"`
	VideoURL    string    `json:"videoUrl,omitempty"`
	Transcript  string    `gorm:"type:text" json:"transcript,omitempty"`
	CreatedAt   time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"not null" json:"updatedAt"`
}

func (Sermon) TableName() string { return "sermons" }
