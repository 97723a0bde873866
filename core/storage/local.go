package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
)

// LocalConfig configures the local-disk provider.
type LocalConfig struct {
	BasePath string
	BaseURL  string
}

type localProvider struct {
	basePath string
	baseURL  string
}

// NewLocalProvider stores files under BasePath and serves them at BaseURL.
func NewLocalProvider(config LocalConfig) (Provider, error) {
	if err := os.MkdirAll(config.BasePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &localProvider{
		basePath: config.BasePath,
		baseURL:  strings.TrimSuffix(config.BaseURL, "/"),
	}, nil
}

func (p *localProvider) Upload(file *multipart.FileHeader, config UploadConfig) (*UploadResult, error) {
	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open source file: %w", err)
	}
	defer src.Close()

	filename := generateUniqueFilename(file.Filename)
	relPath := filepath.Join(config.UploadPath, filename)
	absPath := filepath.Join(p.basePath, relPath)

	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	dst, err := os.Create(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	written, err := io.Copy(dst, src)
	if err != nil {
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	return &UploadResult{
		Filename: filename,
		Path:     filepath.ToSlash(relPath),
		Size:     written,
	}, nil
}

func (p *localProvider) Delete(path string) error {
	absPath := filepath.Join(p.basePath, filepath.FromSlash(path))
	if err := os.Remove(absPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (p *localProvider) GetURL(path string) string {
	return p.baseURL + "/" + strings.TrimPrefix(path, "/")
}
