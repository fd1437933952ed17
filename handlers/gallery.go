package handlers

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"net/http"
	"strconv"
	"strings"

	"cooklog/db"
	"cooklog/gallery"
	"cooklog/models"
	"cooklog/storage"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

var (
	galleryResolver *gallery.Resolver
	galleryTracker  = gallery.NewTracker()
)

// InitGallery wires the dimension resolver, optionally backed by a shared
// cache so multiple instances don't repeat lookups
func InitGallery(shared gallery.SharedCache) {
	galleryResolver = gallery.NewResolver(probeDimensions, shared)
}

const localPhotoPrefix = "/photo?id="

// probeDimensions reads local photos straight from their bucket, the same way
// the processing loop does; everything else (presigned S3 URLs) goes over HTTP
func probeDimensions(ctx context.Context, url string) (gallery.Dimensions, error) {
	if !strings.HasPrefix(url, localPhotoPrefix) {
		return gallery.HTTPProbe(ctx, url)
	}
	id, err := strconv.ParseUint(strings.TrimPrefix(url, localPhotoPrefix), 10, 64)
	if err != nil {
		return gallery.Dimensions{}, err
	}
	photo := models.Photo{}
	if err := db.Instance.Joins("Bucket").First(&photo, id).Error; err != nil {
		return gallery.Dimensions{}, err
	}
	storage := storage.StorageFrom(&photo.Bucket)
	if storage == nil {
		return gallery.Dimensions{}, fmt.Errorf("no storage for bucket %d", photo.BucketID)
	}
	buf := bytes.Buffer{}
	if _, err := storage.Load(photo.GetPath(), &buf); err != nil {
		return gallery.Dimensions{}, err
	}
	conf, _, err := image.DecodeConfig(&buf)
	if err != nil {
		return gallery.Dimensions{}, err
	}
	return gallery.Dimensions{Width: conf.Width, Height: conf.Height}, nil
}

type GalleryActiveRequest struct {
	PostID     uint64  `json:"post" binding:"required"`
	Offset     float64 `json:"offset"`
	SlideWidth float64 `json:"slide_width" binding:"required"`
	Count      int     `json:"count" binding:"required"`
}

type GalleryResponse struct {
	Error  string          `json:"error"`
	Active int             `json:"active"`
	Slides []gallery.Slide `json:"slides"`
}

func galleryKey(userID, postID uint64) string {
	return strconv.FormatUint(userID, 10) + ":" + strconv.FormatUint(postID, 10)
}

// galleryPhotos converts the stored records of one post for layout. Photos
// on S3 get their presigned URL, local ones a photo reference the probe
// understands, so dimensions missing from the DB can still be resolved.
func galleryPhotos(photos []models.Photo) []gallery.Photo {
	result := make([]gallery.Photo, 0, len(photos))
	for i := range photos {
		photo := &photos[i]
		url := ""
		if photo.Bucket.IsS3() {
			url, _ = photo.GetS3DownloadURL(false)
		} else {
			url = localPhotoPrefix + strconv.FormatUint(photo.ID, 10)
		}
		result = append(result, gallery.Photo{
			URL:       url,
			Caption:   photo.Caption,
			Ord:       int(photo.Ord),
			Highlight: photo.Highlight,
			Width:     int(photo.Width),
			Height:    int(photo.Height),
		})
	}
	return result
}

// PostGallery returns the ordered slides of one post's gallery, with display
// heights for the requested view (feed or detail)
func PostGallery(c *gin.Context, user *models.User) {
	postID, _ := strconv.ParseUint(c.Query("post"), 10, 64)
	if postID == 0 {
		c.JSON(http.StatusBadRequest, Response{"post is required"})
		return
	}
	post := models.Post{}
	if db.Instance.First(&post, postID).Error != nil || post.Deleted {
		c.JSON(http.StatusNotFound, NopeResponse)
		return
	}
	view := gallery.FeedView
	if c.Query("view") == "detail" {
		view = gallery.DetailView
	}
	photos := []models.Photo{}
	if db.Instance.Joins("Bucket").
		Where("post_id = ? AND deleted = 0 AND size > 0", postID).
		Order("photos.id ASC").Find(&photos).Error != nil {

		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	slides := gallery.Slides(c.Request.Context(), galleryPhotos(photos), view, galleryResolver)
	c.JSON(http.StatusOK, GalleryResponse{
		Active: galleryTracker.Active(galleryKey(user.ID, postID)),
		Slides: slides,
	})
}

// PostGalleryActive records the slide the user swiped to, per post, so the
// position survives scrolling away and back
func PostGalleryActive(c *gin.Context, user *models.User) {
	r := GalleryActiveRequest{}
	if err := c.ShouldBindWith(&r, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	active := galleryTracker.Update(galleryKey(user.ID, r.PostID), r.Offset, r.SlideWidth, r.Count)
	c.JSON(http.StatusOK, gin.H{"error": "", "active": active})
}
