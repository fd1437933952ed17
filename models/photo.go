package models

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"cooklog/db"
	"cooklog/storage"

	"gorm.io/gorm"
)

const (
	presignViewURLFor      = time.Hour * 24 * 7
	presignValidAtLeastFor = time.Minute * 30
)

// Photo is one image attached to a Post's gallery
type Photo struct {
	ID        uint64 `gorm:"primaryKey"`
	PostID    uint64 `gorm:"index:uniq_remote_id,unique,priority:1;not null;index:post_photo_order,priority:1"`
	RemoteID  string `gorm:"type:varchar(300);index:uniq_remote_id,unique,priority:2;not null"`
	CreatedAt int64
	UpdatedAt int64
	Post      Post `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Size      int64
	ThumbSize int64
	BucketID  uint64
	Bucket    storage.Bucket `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	Name      string         `gorm:"type:varchar(300)"`
	MimeType  string         `gorm:"type:varchar(50)"`
	Caption   string         `gorm:"type:varchar(500)"`
	// Ord is the author-chosen position within the gallery
	Ord uint16 `gorm:"index:post_photo_order,priority:2"`
	// Highlight marks the photo shown first in the gallery.
	// At most one photo per post carries it, see SetHighlight.
	Highlight           bool
	Deleted             bool `gorm:"not null;default 0"`
	Width               uint16
	Height              uint16
	ThumbWidth          uint16
	ThumbHeight         uint16
	Processed           bool `gorm:"not null;default 0"`
	PresignedUntil      int64
	PresignedURL        string `gorm:"type:varchar(2000)"`
	PresignedThumbUntil int64
	PresignedThumbURL   string `gorm:"type:varchar(2000)"`
}

// GetPath returns the path of the photo. For example:
//   - post/56/1234.jpg
func (p *Photo) GetPath() string {
	return p.GetPathOrThumb(false)
}

func (p *Photo) GetThumbPath() string {
	return p.GetPathOrThumb(true)
}

func (p *Photo) GetPathOrThumb(thumb bool) string {
	path := "post/" + strconv.FormatUint(p.PostID, 10) + "/" + strconv.FormatUint(p.ID, 10)
	if thumb {
		// Thumbs are always JPEG
		path += "_thumb.jpg"
	} else {
		path += strings.ToLower(filepath.Ext(p.Name))
	}
	return path
}

func (p *Photo) BeforeSave(tx *gorm.DB) (err error) {
	// Restrict the characters in Name
	var name strings.Builder
	for i, c := range p.Name {
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') ||
			(c == '.' && i > 0) || (c == '-') || (c == '_') {

			name.WriteRune(c)
		} else {
			// Replace all other characters with '_' (underscore)
			name.WriteString("_")
		}
	}
	p.Name = name.String()
	return
}

// SetHighlight marks this photo as the gallery highlight and clears the flag
// from all other photos of the same post in the same write. Keeps the
// at-most-one-highlight-per-post invariant.
func (p *Photo) SetHighlight() error {
	err := db.Instance.Model(&Photo{}).
		Where("post_id = ? AND id != ?", p.PostID, p.ID).
		Update("highlight", false).Error
	if err != nil {
		return err
	}
	p.Highlight = true
	return db.Instance.Model(p).Update("highlight", true).Error
}

// ReassignHighlight moves the highlight to the first remaining photo of the
// post, in gallery order. Call it after deleting a highlighted photo.
func ReassignHighlight(postID uint64) error {
	next := Photo{}
	result := db.Instance.
		Where("post_id = ? AND deleted = 0", postID).
		Order("ord ASC, id ASC").
		Limit(1).
		Find(&next)
	if result.Error != nil || next.ID == 0 {
		return result.Error
	}
	return db.Instance.Model(&next).Update("highlight", true).Error
}

// CreateUploadURI creates a URI that is then to be called by the App
// The URI could be either:
//  1. local (i.e. starting with /..)
//  2. Pre-signed remote S3 upload URI
func (p *Photo) CreateUploadURI(thumb bool) string {
	if p.Bucket.ID != p.BucketID {
		db.Instance.Preload("Bucket").First(p)
	}
	if p.Bucket.IsS3() {
		return p.Bucket.CreateS3UploadURI(p.GetPathOrThumb(thumb))
	}
	return "/photo/upload?id=" + strconv.FormatUint(p.ID, 10) + "&thumb=" + strconv.FormatBool(thumb)
}

// NOTE: p.Bucket must be preloaded
func (p *Photo) GetS3DownloadURL(thumb bool) (string, int64) {
	// Separate fields for thumb...
	if thumb {
		if p.PresignedThumbURL == "" || p.PresignedThumbUntil < time.Now().Add(presignValidAtLeastFor).Unix() {
			// Need to sign again..
			p.PresignedThumbURL = p.Bucket.CreateS3DownloadURI(p.GetPathOrThumb(thumb), presignViewURLFor)
			p.PresignedThumbUntil = time.Now().Add(presignViewURLFor).Unix()
			db.Instance.Updates(p)
		}
		return p.PresignedThumbURL, p.PresignedThumbUntil
	}

	// Valid at least for another 30 minutes?
	if p.PresignedURL == "" || p.PresignedUntil < time.Now().Add(presignValidAtLeastFor).Unix() {
		// Need to sign again..
		p.PresignedURL = p.Bucket.CreateS3DownloadURI(p.GetPathOrThumb(thumb), presignViewURLFor)
		p.PresignedUntil = time.Now().Add(presignViewURLFor).Unix()
		db.Instance.Updates(p)
	}
	return p.PresignedURL, p.PresignedUntil
}
