// Package upload implements the per-field file transfer state machine:
// selection, byte progress, server-side processing, cancellation, and local
// preview lifecycle.
package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// File is the locally selected file handed to a session.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Content     io.Reader
}

// Transport moves one file's bytes to the upload endpoint and returns the
// stored object's public URL. Implementations report byte progress as 0..100
// through onProgress and must return ctx's error when cancelled so the
// session can tell cancellation apart from transport failure.
type Transport interface {
	Send(ctx context.Context, file File, onProgress func(pct int)) (string, error)
}

// HTTPTransport posts the file as a multipart body to an upload endpoint that
// replies {"url": "..."}.
type HTTPTransport struct {
	Endpoint string
	Client   *http.Client
}

func NewHTTPTransport(endpoint string) *HTTPTransport {
	return &HTTPTransport{Endpoint: endpoint, Client: &http.Client{}}
}

// progressReader reports the percentage of body bytes consumed by the HTTP
// client. Bytes at 100 means the request body is fully sent — the server has
// not necessarily replied yet.
type progressReader struct {
	r          io.Reader
	total      int64
	sent       int64
	onProgress func(pct int)
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.sent += int64(n)
		pct := 100
		if p.total > 0 && p.sent < p.total {
			pct = int(p.sent * 100 / p.total)
		}
		p.onProgress(pct)
	}
	return n, err
}

func (t *HTTPTransport) Send(ctx context.Context, file File, onProgress func(pct int)) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", file.Name)
	if err != nil {
		return "", fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := io.Copy(part, file.Content); err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	reader := &progressReader{r: &body, total: int64(body.Len()), onProgress: onProgress}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.Endpoint, reader)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	client := t.Client
	if client == nil {
		client = &http.Client{}
	}

	resp, err := client.Do(req)
	if err != nil {
		// Surface the context error itself on cancellation so callers can
		// match it with errors.Is.
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("upload failed with status %d: %s", resp.StatusCode, string(raw))
	}

	var payload struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to decode upload response: %w", err)
	}
	return payload.URL, nil
}
