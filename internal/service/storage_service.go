package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"bashaway_backend/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// StorageProvider abstracts where uploaded files land.
type StorageProvider interface {
	Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, filename string) error
	GetURL(filename string) string
}

// LocalStorageProvider writes uploads under a configured directory.
type LocalStorageProvider struct {
	Config *config.StorageConfig
}

func (p *LocalStorageProvider) Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	dst := filepath.Join(p.Config.LocalPath, filename)
	dir := filepath.Dir(dst)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", err
		}
	}

	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, reader); err != nil {
		return "", err
	}

	return p.GetURL(filename), nil
}

func (p *LocalStorageProvider) Delete(ctx context.Context, filename string) error {
	return os.Remove(filepath.Join(p.Config.LocalPath, filename))
}

func (p *LocalStorageProvider) GetURL(filename string) string {
	return "/uploads/" + filename
}

// MinioStorageProvider stores uploads in a MinIO (or any S3-compatible)
// bucket.
type MinioStorageProvider struct {
	Client *minio.Client
	Config *config.StorageConfig
}

func (p *MinioStorageProvider) Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := p.Client.PutObject(ctx, p.Config.MinioBucket, filename, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return p.GetURL(filename), nil
}

func (p *MinioStorageProvider) Delete(ctx context.Context, filename string) error {
	return p.Client.RemoveObject(ctx, p.Config.MinioBucket, filename, minio.RemoveObjectOptions{})
}

func (p *MinioStorageProvider) GetURL(filename string) string {
	scheme := "http"
	if p.Config.MinioUseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, p.Config.MinioEndpoint, p.Config.MinioBucket, filename)
}

type StorageService struct {
	Provider StorageProvider
}

func NewStorageService(cfg *config.Config) (*StorageService, error) {
	switch cfg.Storage.Type {
	case "minio":
		client, err := minio.New(cfg.Storage.MinioEndpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.Storage.MinioAccessID, cfg.Storage.MinioSecret, ""),
			Secure: cfg.Storage.MinioUseSSL,
		})
		if err != nil {
			return nil, err
		}
		return &StorageService{Provider: &MinioStorageProvider{Client: client, Config: &cfg.Storage}}, nil
	default:
		return &StorageService{Provider: &LocalStorageProvider{Config: &cfg.Storage}}, nil
	}
}

func (s *StorageService) Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	return s.Provider.Upload(ctx, filename, reader, size, contentType)
}

func (s *StorageService) Delete(ctx context.Context, filename string) error {
	return s.Provider.Delete(ctx, filename)
}
