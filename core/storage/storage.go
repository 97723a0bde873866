package storage

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Config holds provider selection and credentials for ActiveStorage.
type Config struct {
	Provider  string // "local", "s3" or "r2"
	Path      string
	BaseURL   string
	APIKey    string
	APISecret string
	Endpoint  string
	Bucket    string
	Region    string
}

// Attachment is a stored file tied to a model field (user avatar,
// meeting cover, ...).
type Attachment struct {
	Id        uint           `json:"id" gorm:"primarykey"`
	ModelType string         `json:"model_type" gorm:"index:idx_attachments_owner"`
	ModelId   uint           `json:"model_id" gorm:"index:idx_attachments_owner"`
	Field     string         `json:"field"`
	Filename  string         `json:"filename"`
	Path      string         `json:"path"`
	URL       string         `json:"url"`
	Size      int64          `json:"size"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// Attachable is implemented by models that own attachments.
type Attachable interface {
	GetId() uint
	GetModelName() string
}

// AttachmentConfig restricts what can be attached to a model field.
type AttachmentConfig struct {
	Field             string
	Path              string
	AllowedExtensions []string
	MaxFileSize       int64
}

// UploadConfig is passed to providers per upload.
type UploadConfig struct {
	AllowedExtensions []string
	MaxFileSize       int64
	UploadPath        string
}

// UploadResult reports where a provider stored a file.
type UploadResult struct {
	Filename string
	Path     string
	Size     int64
}

// Provider stores and serves raw files.
type Provider interface {
	Upload(file *multipart.FileHeader, config UploadConfig) (*UploadResult, error)
	Delete(path string) error
	GetURL(path string) string
}

func generateUniqueFilename(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	return fmt.Sprintf("%s%s", uuid.NewString(), ext)
}
