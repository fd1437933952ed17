package processing

import (
	"bytes"
	"image"
	"log"
	"time"

	"cooklog/config"
	"cooklog/db"
	"cooklog/models"
	"cooklog/storage"
	"cooklog/utils"
)

const thumbSize = 1280

func getNextForProcessing(lastProcessedID uint64) (result models.Photo) {
	db.Instance.Where("deleted=0 AND size>0 AND created_at<? AND photos.id>? AND "+
		"(width=0 OR height=0 OR thumb_size=0)",

		time.Now().Unix()-30, lastProcessedID).Order("id ASC").Limit(1).Joins("Bucket").Find(&result)
	return
}

// processOne returns the photo.ID on success and 0 on error
func processOne(photo *models.Photo) uint64 {
	storage := storage.StorageFrom(&photo.Bucket)
	if storage == nil {
		log.Printf("Photo %d: no storage for bucket %d", photo.ID, photo.BucketID)
		return 0
	}
	buf := bytes.Buffer{}
	if _, err := storage.Load(photo.GetPath(), &buf); err != nil {
		log.Printf("Photo %d: cannot load %s: %v", photo.ID, photo.GetPath(), err)
		return 0
	}
	original := buf.Bytes()

	// We need the natural dimensions?
	if photo.Width == 0 || photo.Height == 0 {
		conf, _, err := image.DecodeConfig(bytes.NewReader(original))
		if err != nil {
			log.Printf("Photo %d: cannot decode %s: %v", photo.ID, photo.GetPath(), err)
			return 0
		}
		photo.Width = uint16(conf.Width)
		photo.Height = uint16(conf.Height)
		db.Instance.Save(photo)
	}
	// Create thumbnail if missing
	if photo.ThumbSize == 0 {
		thumbBuf := bytes.Buffer{}
		thumb, err := utils.CreateThumb(thumbSize, bytes.NewReader(original), &thumbBuf)
		if err != nil {
			log.Printf("Photo %d: cannot create thumbnail: %v", photo.ID, err)
			return 0
		}
		if _, err = storage.Save(photo.GetThumbPath(), &thumbBuf); err != nil {
			log.Printf("Photo %d: cannot save thumbnail: %v", photo.ID, err)
			return 0
		}
		photo.ThumbSize = thumb.ThumbSize
		photo.ThumbWidth = thumb.NewX
		photo.ThumbHeight = thumb.NewY
		photo.PresignedThumbUntil = 0 // Clear S3 URL cache
		if err = db.Instance.Save(photo).Error; err != nil {
			log.Printf("Photo %d: DB error: %v", photo.ID, err)
			return 0
		}
	}
	if !photo.Processed {
		db.Instance.Model(photo).Update("processed", true)
	}
	return photo.ID
}

func StartProcessing() {
	idleWait := time.Duration(config.PROCESSING_IDLE_WAIT) * time.Second
	lastProcessedID := uint64(0)
	for {
		photo := getNextForProcessing(lastProcessedID)
		if photo.ID == 0 {
			// Nothing to process...
			time.Sleep(idleWait)
			lastProcessedID = 0
			continue
		}
		lastProcessedID = processOne(&photo)
		if lastProcessedID == 0 {
			// An error occurred, wait a bit
			time.Sleep(idleWait)
		}
	}
}
