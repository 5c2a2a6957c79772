// Package storage talks to the external object store that accepts a file and
// returns a public URL. Only the interface matters to the rest of the system.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
)

// ObjectStorage accepts a file's bytes and returns a public URL for them.
type ObjectStorage interface {
	Upload(ctx context.Context, key string, content io.Reader, contentType string) (string, error)
}

// BucketStorage uploads to a Supabase-style storage REST endpoint.
type BucketStorage struct {
	projectID  string
	apiKey     string
	bucketName string
	httpClient *http.Client
}

// NewBucketStorage creates a storage client for one bucket.
func NewBucketStorage(projectID, apiKey, bucketName string) *BucketStorage {
	return &BucketStorage{
		projectID:  projectID,
		apiKey:     apiKey,
		bucketName: bucketName,
		httpClient: &http.Client{},
	}
}

// Upload stores the object under key and returns its public URL.
func (s *BucketStorage) Upload(ctx context.Context, key string, content io.Reader, contentType string) (string, error) {
	url := fmt.Sprintf("https://%s.supabase.co/storage/v1/object/%s/%s",
		s.projectID, s.bucketName, key)

	raw, err := io.ReadAll(content)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", contentType)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("upload failed with status %d: %s", resp.StatusCode, string(body))
	}

	return s.publicURL(key), nil
}

func (s *BucketStorage) publicURL(key string) string {
	return fmt.Sprintf("https://%s.supabase.co/storage/v1/object/public/%s/%s",
		s.projectID, s.bucketName, key)
}
