package storage

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/gorm"
)

// ActiveStorage manages model attachments on top of a file provider and
// the attachments table.
type ActiveStorage struct {
	db          *gorm.DB
	provider    Provider
	defaultPath string
	configs     map[string]map[string]AttachmentConfig
}

// NewActiveStorage builds an ActiveStorage for the configured provider and
// migrates the attachments table.
func NewActiveStorage(db *gorm.DB, config Config) (*ActiveStorage, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	storagePath := config.Path
	if !filepath.IsAbs(storagePath) {
		storagePath = filepath.Join(cwd, storagePath)
	}

	var provider Provider
	switch strings.ToLower(config.Provider) {
	case "local", "":
		provider, err = NewLocalProvider(LocalConfig{
			BasePath: storagePath,
			BaseURL:  config.BaseURL,
		})
	case "s3":
		provider, err = NewS3Provider(S3Config{
			AccessKeyID:     config.APIKey,
			AccessKeySecret: config.APISecret,
			Endpoint:        config.Endpoint,
			Bucket:          config.Bucket,
			Region:          config.Region,
		})
	case "r2":
		provider, err = NewR2Provider(R2Config{
			AccessKeyID:     config.APIKey,
			AccessKeySecret: config.APISecret,
			AccountID:       config.Endpoint,
			Bucket:          config.Bucket,
			BaseURL:         config.BaseURL,
		})
	default:
		return nil, fmt.Errorf("unsupported storage provider: %s", config.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage provider: %w", err)
	}

	as := &ActiveStorage{
		db:          db,
		provider:    provider,
		defaultPath: storagePath,
		configs:     make(map[string]map[string]AttachmentConfig),
	}

	if err := db.AutoMigrate(&Attachment{}); err != nil {
		return nil, fmt.Errorf("failed to migrate attachments table: %w", err)
	}

	return as, nil
}

// RegisterAttachment declares an allowed attachment field for a model.
func (as *ActiveStorage) RegisterAttachment(modelName string, config AttachmentConfig) {
	if as.configs[modelName] == nil {
		as.configs[modelName] = make(map[string]AttachmentConfig)
	}
	as.configs[modelName][config.Field] = config
}

// Attach validates, uploads and records a file for the model field,
// replacing nothing (callers delete the previous attachment first).
func (as *ActiveStorage) Attach(model Attachable, field string, file *multipart.FileHeader) (*Attachment, error) {
	config, err := as.getConfig(model.GetModelName(), field)
	if err != nil {
		return nil, err
	}

	if err := as.validateFile(file, config); err != nil {
		return nil, err
	}

	result, err := as.provider.Upload(file, UploadConfig{
		AllowedExtensions: config.AllowedExtensions,
		MaxFileSize:       config.MaxFileSize,
		UploadPath:        filepath.Join(config.Path, model.GetModelName(), field),
	})
	if err != nil {
		return nil, err
	}

	attachment := &Attachment{
		ModelType: model.GetModelName(),
		ModelId:   model.GetId(),
		Field:     field,
		Filename:  result.Filename,
		Path:      result.Path,
		URL:       as.provider.GetURL(result.Path),
		Size:      result.Size,
	}

	if err := as.db.Create(attachment).Error; err != nil {
		// Roll back the uploaded file when the record cannot be written.
		_ = as.provider.Delete(result.Path)
		return nil, err
	}

	return attachment, nil
}

// Delete removes the stored file and its record.
func (as *ActiveStorage) Delete(attachment *Attachment) error {
	if err := as.provider.Delete(attachment.Path); err != nil {
		return err
	}
	return as.db.Delete(attachment).Error
}

// LoadAttachment fetches the attachment record for a model field.
func (as *ActiveStorage) LoadAttachment(model Attachable, field string) (*Attachment, error) {
	var attachment Attachment
	err := as.db.Where("model_type = ? AND model_id = ? AND field = ?",
		model.GetModelName(), model.GetId(), field).First(&attachment).Error
	if err != nil {
		return nil, err
	}

	attachment.URL = as.provider.GetURL(attachment.Path)
	return &attachment, nil
}

// GetProvider returns the underlying file provider.
func (as *ActiveStorage) GetProvider() Provider {
	return as.provider
}

func (as *ActiveStorage) getConfig(modelName, field string) (AttachmentConfig, error) {
	modelConfigs, ok := as.configs[modelName]
	if !ok {
		return AttachmentConfig{}, fmt.Errorf("no attachment config found for model %s", modelName)
	}

	config, ok := modelConfigs[field]
	if !ok {
		return AttachmentConfig{}, fmt.Errorf("no attachment config found for field %s in model %s", field, modelName)
	}

	return config, nil
}

func (as *ActiveStorage) validateFile(file *multipart.FileHeader, config AttachmentConfig) error {
	if config.MaxFileSize > 0 && file.Size > config.MaxFileSize {
		return fmt.Errorf("file size exceeds maximum allowed size of %d bytes", config.MaxFileSize)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if len(config.AllowedExtensions) > 0 {
		allowed := false
		for _, e := range config.AllowedExtensions {
			if e == ext {
				allowed = true
				break
			}
		}
		if !allowed {
			return fmt.Errorf("file extension %s is not allowed", ext)
		}
	}

	return nil
}
