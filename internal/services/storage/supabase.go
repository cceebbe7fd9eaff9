package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	storage_go "github.com/supabase-community/storage-go"

	apperrors "github.com/edenhq/meeting-api/pkg/errors"
)

// SupabaseStore stores objects in a Supabase storage bucket.
type SupabaseStore struct {
	client *storage_go.Client
	bucket string
}

// NewSupabaseStore builds a store for the given project URL and service key.
func NewSupabaseStore(projectURL, serviceKey, bucket string) (*SupabaseStore, error) {
	if projectURL == "" || serviceKey == "" {
		return nil, fmt.Errorf("supabase storage requires url and key")
	}
	if bucket == "" {
		return nil, fmt.Errorf("supabase storage requires a bucket")
	}
	client := storage_go.NewClient(strings.TrimSuffix(projectURL, "/")+"/storage/v1", serviceKey, nil)
	return &SupabaseStore{client: client, bucket: bucket}, nil
}

func (s *SupabaseStore) Upload(ctx context.Context, key string, r io.Reader, contentType string) error {
	upsert := true
	opts := storage_go.FileOptions{Upsert: &upsert}
	if contentType != "" {
		opts.ContentType = &contentType
	}
	if _, err := s.client.UploadFile(s.bucket, key, r, opts); err != nil {
		return apperrors.StorageError("upload", err).WithDetail("bucket", s.bucket).WithDetail("key", key)
	}
	return nil
}

func (s *SupabaseStore) Download(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.DownloadFile(s.bucket, key)
	if err != nil {
		if strings.Contains(err.Error(), "not found") || strings.Contains(err.Error(), "404") {
			return nil, ErrObjectNotFound
		}
		return nil, apperrors.StorageError("download", err).WithDetail("bucket", s.bucket).WithDetail("key", key)
	}
	return data, nil
}

func (s *SupabaseStore) Delete(ctx context.Context, key string) error {
	if _, err := s.client.RemoveFile(s.bucket, []string{key}); err != nil {
		if strings.Contains(err.Error(), "not found") || strings.Contains(err.Error(), "404") {
			return nil
		}
		return apperrors.StorageError("delete", err).WithDetail("bucket", s.bucket).WithDetail("key", key)
	}
	return nil
}

// Exists pages through the key's directory listing; the storage API has no
// head-object call, so presence is a name match against the listing.
func (s *SupabaseStore) Exists(ctx context.Context, key string) (bool, error) {
	dir := ""
	name := key
	if idx := strings.LastIndex(key, "/"); idx >= 0 {
		dir = key[:idx]
		name = key[idx+1:]
	}

	const pageSize = 100
	for offset := 0; ; offset += pageSize {
		files, err := s.client.ListFiles(s.bucket, dir, storage_go.FileSearchOptions{
			Limit:  pageSize,
			Offset: offset,
		})
		if err != nil {
			return false, apperrors.StorageError("list", err).WithDetail("bucket", s.bucket).WithDetail("key", key)
		}
		for _, f := range files {
			if f.Name == name {
				return true, nil
			}
		}
		if len(files) < pageSize {
			return false, nil
		}
	}
}
