package models

import (
	"errors"

	"cooklog/db"
	"cooklog/storage"
	"cooklog/utils"
)

const saltSize = 60

type User struct {
	ID          uint64 `gorm:"primaryKey"`
	CreatedAt   int64
	UpdatedAt   int64
	CreatedByID *uint64
	CreatedBy   *User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	Name        string  `gorm:"type:varchar(100)"`
	Email       string  `gorm:"type:varchar(150);index:uniq_email,unique"`
	Password    string  `gorm:"type:varchar(128)"`
	PassSalt    string  `gorm:"type:varchar(200)"`
	Grants      []Grant `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	BucketID    *uint64
	Bucket      storage.Bucket `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	PushToken   string         `gorm:"type:varchar(128)"`

	// Quota for photo storage, in MB. 0 means unlimited
	Quota int64 `gorm:"not null"`
}

func UserCreate(name, email, plainTextPassword string) (u User, err error) {
	defaultStorage := storage.GetDefaultStorage()

	u.Email = email
	u.Name = name
	u.SetPassword(plainTextPassword)
	if defaultStorage != nil {
		u.BucketID = &defaultStorage.GetBucket().ID
	}
	return u, db.Instance.Create(&u).Error
}

func (u *User) SetPassword(plainTextPassword string) {
	u.PassSalt = utils.RandSalt(saltSize)
	u.Password = utils.Sha512String(plainTextPassword + u.PassSalt)
}

func (u *User) SetNewPushToken() {
	u.PushToken = utils.Sha512String(u.Email + utils.RandSalt(saltSize))
	db.Instance.Model(u).Update("push_token", u.PushToken)
}

func UserLogin(email, plainTextPassword string) (u User, err error) {
	result := db.Instance.Preload("Grants").First(&u, "email = ?", email)
	if result.Error != nil {
		return User{}, errors.New("invalid credentials")
	}
	if u.Password != utils.Sha512String(plainTextPassword+u.PassSalt) {
		return User{}, errors.New("invalid credentials")
	}
	return u, nil
}

func (u *User) GetPermissions() []int {
	permissions := []int{}
	for _, grant := range u.Grants {
		permissions = append(permissions, int(grant.Permission))
	}
	return permissions
}

func (u *User) HasPermission(required Permission) bool {
	for _, grant := range u.Grants {
		if grant.Permission == required {
			return true
		}
	}
	return false
}

func (u *User) HasPermissions(required []Permission) bool {
	for _, permission := range required {
		if !u.HasPermission(permission) {
			return false
		}
	}
	return true
}

// GetUsage returns photo storage used (MB) in the user's current bucket
func (u *User) GetUsage() (used, quota int64) {
	result := int64(-1)
	if err := db.Instance.Raw("select ifnull(sum(photos.size+photos.thumb_size), 0) from photos join posts on posts.id=photos.post_id where posts.user_id=? and photos.bucket_id=? and photos.deleted=0", u.ID, u.BucketID).Scan(&result).Error; err != nil {
		return -1, 0
	}
	return result / 1024 / 1024, u.Quota
}
