package storage

import (
	"os"
	"strings"
	"time"

	"cooklog/db"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

type StorageType uint8

const (
	StorageTypeFile StorageType = 0
	StorageTypeS3   StorageType = 1
)

// Bucket is a place photo bytes live in - either a local directory or an
// S3(-compatible) bucket. Photo records reference their bucket; the gallery
// engine never touches the bytes, only this layer does.
type Bucket struct {
	ID          uint64 `gorm:"primaryKey"`
	CreatedAt   int64
	UpdatedAt   int64
	Name        string `gorm:"type:varchar(200)"` // directory label, or the S3 bucket name
	StorageType StorageType
	Path        string `gorm:"type:varchar(300)"` // base dir on disk, or key prefix in the S3 bucket
	Endpoint    string `gorm:"type:varchar(300)"` // custom S3 endpoint (MinIO etc), empty for AWS
	Region      string `gorm:"type:varchar(50)"`
	AccessKey   string `gorm:"type:varchar(200)"`
	Secret      string `gorm:"type:varchar(200)"`
	SSE         string `gorm:"type:varchar(20)"` // server-side encryption, e.g. "AES256"
}

func (b *Bucket) IsS3() bool {
	return b.StorageType == StorageTypeS3
}

func (b *Bucket) Create() error {
	err := db.Instance.Create(b).Error
	if err != nil {
		return err
	}
	if b.StorageType == StorageTypeFile {
		if err = os.MkdirAll(b.Path+"/post", 0777); err != nil {
			return err
		}
	}
	return nil
}

func (b *Bucket) CreateSVC() *s3.S3 {
	awsConfig := aws.Config{
		Credentials: credentials.NewStaticCredentials(b.AccessKey, b.Secret, ""),
		Region:      aws.String(b.Region),
	}
	if b.Endpoint != "" {
		awsConfig.Endpoint = aws.String(b.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}
	sess, err := session.NewSession(&awsConfig)
	if err != nil {
		panic(err)
	}
	return s3.New(sess)
}

// GetRemotePath prefixes the object key with the bucket's configured prefix
func (b *Bucket) GetRemotePath(path string) string {
	if b.Path == "" {
		return path
	}
	return strings.Trim(b.Path, "/") + "/" + path
}

// CreateS3UploadURI returns a presigned PUT URL the app uploads directly to
func (b *Bucket) CreateS3UploadURI(path string) string {
	input := s3.PutObjectInput{
		Bucket: &b.Name,
		Key:    aws.String(b.GetRemotePath(path)),
	}
	if b.SSE != "" {
		input.ServerSideEncryption = &b.SSE
	}
	req, _ := b.CreateSVC().PutObjectRequest(&input)
	url, err := req.Presign(15 * time.Minute)
	if err != nil {
		return ""
	}
	return url
}

// CreateS3DownloadURI returns a presigned GET URL valid for the given duration
func (b *Bucket) CreateS3DownloadURI(path string, validFor time.Duration) string {
	req, _ := b.CreateSVC().GetObjectRequest(&s3.GetObjectInput{
		Bucket: &b.Name,
		Key:    aws.String(b.GetRemotePath(path)),
	})
	url, err := req.Presign(validFor)
	if err != nil {
		return ""
	}
	return url
}
