package upload

import (
	"strings"
	"sync"
)

// PreviewKind selects how the local preview is rendered while the transfer is
// still in flight: images and videos inline, everything else as an icon.
type PreviewKind string

const (
	PreviewImage PreviewKind = "image"
	PreviewVideo PreviewKind = "video"
	PreviewIcon  PreviewKind = "icon"
)

// Preview is the locally-generated preview handle for a selected file. The
// underlying resource must be released once the bytes are no longer needed —
// on completion, cancellation, error, or field teardown.
type Preview struct {
	Kind PreviewKind
	Name string

	mu       sync.Mutex
	released bool
	release  func()
}

// NewPreview builds a preview for the file, choosing the render kind from the
// content type. release may be nil when there is no resource to free.
func NewPreview(file File, release func()) *Preview {
	kind := PreviewIcon
	switch {
	case strings.HasPrefix(file.ContentType, "image/"):
		kind = PreviewImage
	case strings.HasPrefix(file.ContentType, "video/"):
		kind = PreviewVideo
	}
	return &Preview{Kind: kind, Name: file.Name, release: release}
}

// Release frees the preview's underlying resource. Safe to call more than
// once; only the first call runs the release hook.
func (p *Preview) Release() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.released {
		return
	}
	p.released = true
	if p.release != nil {
		p.release()
	}
}

// Released reports whether the handle has been freed.
func (p *Preview) Released() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.released
}
