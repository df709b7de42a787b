package domain

import "time"

// Tag labels posts and media assets. Names are unique.
type Tag struct {
	ID        TagID     `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
}

func (Tag) TableName() string { return "tags" }

// Post kinds. Articles and blog posts share a schema and differ only
// in where the clients surface them.
const (
	PostArticle = "article"
	PostBlog    = "blog"
)

func ValidPostKind(k string) bool {
	return k == PostArticle || k == PostBlog
}

type Post struct {
	ID        PostID    `gorm:"type:uuid;primaryKey" json:"id"`
	Kind      string    `gorm:"not null;index:ix_posts_kind" json:"kind"`
	Title     string    `gorm:"not null;index:ix_posts_title" json:"title"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	AuthorID  UserID    `gorm:"type:uuid;index" json:"authorId"`
	Tags      []Tag     `gorm:"many2many:post_tags" json:"tags"`
	CreatedAt time.Time `gorm:"not null;index:ix_posts_created" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

func (Post) TableName() string { return "posts" }

// Media kinds. Assets are URL metadata; the binaries live on external
// storage.
const (
	MediaImage    = "image"
	MediaVideo    = "video"
	MediaDocument = "document"
)

func ValidMediaKind(k string) bool {
	switch k {
	case MediaImage, MediaVideo, MediaDocument:
		return true
	}
	return false
}

// MediaAsset titles are unique per uploader within a kind.
type MediaAsset struct {
	ID           MediaID   `gorm:"type:uuid;primaryKey" json:"id"`
	Kind         string    `gorm:"not null;uniqueIndex:ux_media_kind_title_owner" json:"kind"`
	Title        string    `gorm:"not null;uniqueIndex:ux_media_kind_title_owner" json:"title"`
	Description  string    `gorm:"type:text" json:"description"`
	URL          string    `gorm:"not null" json:"url"`
	UploadedByID UserID    `gorm:"type:uuid;index;uniqueIndex:ux_media_kind_title_owner" json:"uploadedById"`
	Tags         []Tag     `gorm:"many2many:media_tags" json:"tags"`
	UploadedAt   time.Time `gorm:"not null;index:ix_media_uploaded" json:"uploadedAt"`
}

func (MediaAsset) TableName() string { return "media_assets" }
