package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bashaway_backend/internal/config"
)

func TestLocalStorageProvider(t *testing.T) {
	dir := t.TempDir()
	provider := &LocalStorageProvider{Config: &config.StorageConfig{LocalPath: dir}}

	url, err := provider.Upload(context.Background(), "questions/abc.zip", strings.NewReader("payload"), 7, "application/zip")
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if url != "/uploads/questions/abc.zip" {
		t.Fatalf("unexpected url %q", url)
	}

	data, err := os.ReadFile(filepath.Join(dir, "questions", "abc.zip"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "payload" {
		t.Fatalf("wrong contents %q", data)
	}

	if err := provider.Delete(context.Background(), "questions/abc.zip"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "questions", "abc.zip")); !os.IsNotExist(err) {
		t.Fatal("file should be gone after delete")
	}
}

func TestNewStorageServiceDefaultsToLocal(t *testing.T) {
	cfg := &config.Config{}
	cfg.Storage.Type = "local"
	cfg.Storage.LocalPath = t.TempDir()

	svc, err := NewStorageService(cfg)
	if err != nil {
		t.Fatalf("new storage service: %v", err)
	}
	if _, ok := svc.Provider.(*LocalStorageProvider); !ok {
		t.Fatalf("expected local provider, got %T", svc.Provider)
	}
}

func TestMinioProviderURL(t *testing.T) {
	provider := &MinioStorageProvider{Config: &config.StorageConfig{
		MinioEndpoint: "minio.internal:9000",
		MinioBucket:   "bashaway",
		MinioUseSSL:   true,
	}}

	got := provider.GetURL("questions/abc.zip")
	if got != "https://minio.internal:9000/bashaway/questions/abc.zip" {
		t.Fatalf("unexpected url %q", got)
	}
}
