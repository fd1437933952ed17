package handlers

import (
	"bytes"
	"image"
	"io"
	"log"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"cooklog/db"
	"cooklog/models"
	"cooklog/storage"
	"cooklog/utils"

	_ "image/jpeg"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
)

type PhotoMetaDataRequest struct {
	PostID   uint64 `json:"post" binding:"required"`
	RemoteID string `json:"id"`
	Name     string `json:"name" binding:"required"`
	MimeType string `json:"mimetype"`
	Caption  string `json:"caption"`
	Ord      uint16 `json:"ord"`
	Width    uint16 `json:"width"`
	Height   uint16 `json:"height"`
}

type PhotoConfirmation struct {
	ID        uint64 `form:"id" binding:"required"` // Local DB ID
	Size      int64  `form:"size" binding:"required"`
	ThumbSize int64  `form:"thumb_size" binding:""`
}

type PhotoUploadRequest struct {
	ID    uint64 `form:"id" binding:"required"` // Local DB ID
	Thumb bool   `form:"thumb"`
}

type PhotoFetchRequest struct {
	ID       uint64 `form:"id" binding:"required"`
	Thumb    uint   `form:"thumb"`
	Download uint   `form:"download"`
	Size     uint   `form:"size"`
}

type PhotoSaveRequest struct {
	ID        uint64 `json:"id" binding:"required"`
	Caption   string `json:"caption"`
	Ord       uint16 `json:"ord"`
	Highlight bool   `json:"highlight"`
}

type PhotoDeleteRequest struct {
	IDs []uint64 `json:"ids" binding:"required"`
}

type NewMetadataResponse struct {
	ID       uint64 `json:"id"`
	URI      string `json:"uri"`
	Thumb    string `json:"thumb"`
	MimeType string `json:"mime_type"`
}

type PhotoInfo struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name"`
	Caption   string `json:"caption"`
	Ord       uint16 `json:"ord"`
	Highlight bool   `json:"highlight"`
	Width     uint16 `json:"width"`
	Height    uint16 `json:"height"`
	Size      int64  `json:"size"`
	MimeType  string `json:"mime_type"`
}

// loadOwnPost ensures the post exists and belongs to the user
func loadOwnPost(c *gin.Context, user *models.User, postID uint64) *models.Post {
	post := models.Post{}
	if db.Instance.First(&post, postID).Error != nil || post.UserID != user.ID {
		c.JSON(http.StatusUnauthorized, NopeResponse)
		return nil
	}
	return &post
}

// PhotoMetaData creates the DB record for a new gallery photo and returns
// the upload URIs (local or pre-signed S3)
func PhotoMetaData(c *gin.Context, user *models.User) {
	var r PhotoMetaDataRequest
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	if loadOwnPost(c, user, r.PostID) == nil {
		return
	}
	if user.BucketID == nil {
		panic("Bucket is nil")
	}
	if user.Quota > 0 {
		used, _ := user.GetUsage()
		if used > user.Quota {
			c.JSON(http.StatusForbidden, Response{"Quota exceeded"})
			return
		}
	}
	photo := models.Photo{
		PostID:   r.PostID,
		RemoteID: r.RemoteID,
		Name:     r.Name,
		Caption:  r.Caption,
		Ord:      r.Ord,
		BucketID: *user.BucketID,
		Width:    r.Width,
		Height:   r.Height,
	}
	if photo.RemoteID == "" {
		photo.RemoteID = uuid.NewString()
	}
	if r.MimeType != "" {
		photo.MimeType = r.MimeType
	} else {
		// Guess the mime type from the extension
		photo.MimeType = mime.TypeByExtension(filepath.Ext(photo.Name))
	}
	if photo.MimeType != "image/jpeg" &&
		photo.MimeType != "image/png" &&
		photo.MimeType != "image/gif" {

		c.JSON(http.StatusForbidden, Response{"this file type is not allowed"})
		return
	}

	result := db.Instance.Create(&photo)
	if result.Error != nil {
		// Maybe it exists with the same RemoteID and we should overwrite it
		result = db.Instance.First(&photo, "post_id = ? AND remote_id = ?", r.PostID, r.RemoteID)
		if result.Error != nil {
			// Now give up...
			c.JSON(http.StatusInternalServerError, DBError1Response)
			return
		}
	}
	if db.Instance.Preload("Bucket").First(&photo).Error != nil {
		c.JSON(http.StatusInternalServerError, DBError2Response)
		return
	}
	c.JSON(http.StatusOK, NewMetadataResponse{
		ID:       photo.ID,
		URI:      photo.CreateUploadURI(false),
		Thumb:    photo.CreateUploadURI(true),
		MimeType: photo.MimeType,
	})
}

// PhotoConfirm records the sizes after a direct-to-S3 upload
func PhotoConfirm(c *gin.Context, user *models.User) {
	var r PhotoConfirmation
	if err := c.ShouldBindQuery(&r); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	photo := models.Photo{}
	if db.Instance.First(&photo, r.ID).Error != nil {
		c.JSON(http.StatusUnauthorized, NopeResponse)
		return
	}
	if loadOwnPost(c, user, photo.PostID) == nil {
		return
	}
	photo.Size = r.Size
	photo.ThumbSize = r.ThumbSize
	if db.Instance.Updates(&photo).Error != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	c.JSON(http.StatusOK, OKResponse)
}

// PhotoUpload receives the photo (or thumb) body for local disk buckets
func PhotoUpload(c *gin.Context, user *models.User) {
	var r PhotoUploadRequest
	if err := c.ShouldBindQuery(&r); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	photo := models.Photo{}
	if db.Instance.Joins("Bucket").First(&photo, r.ID).Error != nil {
		c.JSON(http.StatusUnauthorized, NopeResponse)
		return
	}
	if loadOwnPost(c, user, photo.PostID) == nil {
		return
	}
	storage := storage.StorageFrom(&photo.Bucket)
	if storage == nil {
		panic("Storage is nil")
	}
	content := bytes.Buffer{}
	reader := io.TeeReader(c.Request.Body, &content)
	size, err := storage.Save(photo.GetPathOrThumb(r.Thumb), reader)
	if err != nil {
		c.JSON(http.StatusInternalServerError, Response{err.Error()})
		return
	}
	if r.Thumb {
		photo.ThumbSize = size
		thumb, _, err := image.Decode(&content)
		if err != nil {
			c.JSON(http.StatusInternalServerError, Response{err.Error()})
			return
		}
		photo.ThumbWidth = uint16(thumb.Bounds().Dx())
		photo.ThumbHeight = uint16(thumb.Bounds().Dy())
	} else {
		photo.Size = size
		if photo.Width == 0 || photo.Height == 0 {
			if conf, _, err := image.DecodeConfig(&content); err == nil {
				photo.Width = uint16(conf.Width)
				photo.Height = uint16(conf.Height)
			}
		}
	}
	// Re-save as we have new sizes and dimensions
	db.Instance.Updates(&photo)
	c.JSON(http.StatusOK, gin.H{"error": "", "id": photo.ID})
}

// PhotoList returns the gallery records of one post in stored order
func PhotoList(c *gin.Context, user *models.User) {
	postID, _ := strconv.ParseUint(c.Query("post"), 10, 64)
	if postID == 0 {
		c.JSON(http.StatusBadRequest, Response{"post is required"})
		return
	}
	photos := []models.Photo{}
	if db.Instance.Where("post_id = ? AND deleted = 0", postID).
		Order("highlight DESC, ord ASC, id ASC").Find(&photos).Error != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	result := []PhotoInfo{}
	for _, photo := range photos {
		result = append(result, PhotoInfo{
			ID:        photo.ID,
			Name:      photo.Name,
			Caption:   photo.Caption,
			Ord:       photo.Ord,
			Highlight: photo.Highlight,
			Width:     photo.Width,
			Height:    photo.Height,
			Size:      photo.Size,
			MimeType:  photo.MimeType,
		})
	}
	c.JSON(http.StatusOK, result)
}

// PhotoSave updates caption, order and the highlight flag
func PhotoSave(c *gin.Context, user *models.User) {
	r := PhotoSaveRequest{}
	if err := c.ShouldBindWith(&r, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	photo := models.Photo{}
	if db.Instance.First(&photo, r.ID).Error != nil {
		c.JSON(http.StatusUnauthorized, NopeResponse)
		return
	}
	if loadOwnPost(c, user, photo.PostID) == nil {
		return
	}
	photo.Caption = r.Caption
	photo.Ord = r.Ord
	if db.Instance.Save(&photo).Error != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	if r.Highlight && !photo.Highlight {
		if photo.SetHighlight() != nil {
			c.JSON(http.StatusInternalServerError, DBError2Response)
			return
		}
	}
	c.JSON(http.StatusOK, OKResponse)
}

func PhotoDelete(c *gin.Context, user *models.User) {
	r := PhotoDeleteRequest{}
	if err := c.ShouldBindWith(&r, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	failed := []uint64{}
	for _, id := range r.IDs {
		photo := models.Photo{}
		if db.Instance.Joins("Bucket").First(&photo, id).Error != nil {
			failed = append(failed, id)
			continue
		}
		post := models.Post{}
		if db.Instance.First(&post, photo.PostID).Error != nil || post.UserID != user.ID {
			failed = append(failed, id)
			log.Printf("Photo: %d, auth error", id)
			continue
		}
		wasHighlight := photo.Highlight
		photo.Deleted = true
		photo.Highlight = false
		if err := db.Instance.Save(&photo).Error; err != nil {
			failed = append(failed, id)
			log.Printf("Photo: %d, save error %s", id, err)
			continue
		}
		if wasHighlight {
			// The gallery opener moves to the next photo in display order
			if err := models.ReassignHighlight(photo.PostID); err != nil {
				log.Printf("Photo: %d, highlight reassign error: %s", id, err)
			}
		}
		storage := storage.StorageFrom(&photo.Bucket)
		if storage == nil {
			log.Printf("Photo: %d, error: storage is nil", id)
			failed = append(failed, id)
			continue
		}
		// Finally delete the content
		if err := storage.Delete(photo.GetThumbPath()); err != nil {
			log.Printf("Photo: %d, thumb delete error: %s", id, err.Error())
		}
		if err := storage.Delete(photo.GetPath()); err != nil {
			log.Printf("Photo: %d, delete error: %s", id, err.Error())
		}
	}
	if len(failed) > 0 {
		c.JSON(http.StatusInternalServerError, MultiResponse{"Some photos cannot be deleted", failed})
		return
	}
	c.JSON(http.StatusOK, OKMultiResponse)
}

func PhotoFetch(c *gin.Context, user *models.User) {
	RealPhotoFetch(c)
}

// RealPhotoFetch serves the photo content. Also used by the tokenized public
// share pages, which validate the token before calling.
func RealPhotoFetch(c *gin.Context) {
	r := PhotoFetchRequest{}
	if err := c.ShouldBindQuery(&r); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	photo := models.Photo{}
	if db.Instance.Joins("Bucket").First(&photo, r.ID).Error != nil || photo.Deleted {
		c.JSON(http.StatusNotFound, NopeResponse)
		return
	}
	storage := storage.StorageFrom(&photo.Bucket)
	if storage == nil {
		panic("Storage is nil")
	}
	if photo.Bucket.IsS3() {
		isThumb := r.Thumb == 1 && photo.ThumbSize > 0
		// Redirect to the S3 location
		url, expires := photo.GetS3DownloadURL(isThumb)
		maxAge := expires - time.Now().Unix()
		c.Header("cache-control", "private, max-age="+strconv.FormatInt(maxAge, 10))
		c.Redirect(302, url)
		return
	}
	c.Header("cache-control", "private, max-age=604800")
	var err error
	if r.Thumb == 1 && photo.ThumbSize > 0 {
		c.Header("content-type", "image/jpeg")
		if r.Size == 0 {
			// Default big (1280) thumb size
			_, err = storage.Load(photo.GetThumbPath(), c.Writer)
		} else {
			// Custom size
			var buf bytes.Buffer
			if _, err = storage.Load(photo.GetThumbPath(), &buf); err == nil {
				var imageThumbInfo utils.ImageThumbConverted
				imageThumbInfo, err = utils.CreateThumb(r.Size, &buf, c.Writer)
				c.Header("content-length", strconv.FormatInt(imageThumbInfo.ThumbSize, 10))
			}
		}
	} else {
		// Original
		c.Header("content-type", photo.MimeType)
		if r.Download == 1 {
			c.Header("content-disposition", "attachment; filename=\""+photo.Name+"\"")
		}
		// Handles Byte-ranges too
		storage.Serve(photo.GetPath(), c.Request, c.Writer)
		return
	}
	// Handle errors
	if err != nil {
		c.JSON(http.StatusInternalServerError, Response{err.Error()})
	}
}
