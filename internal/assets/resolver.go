package assets

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mystore/storefront/internal/domain"
)

const (
	MaxUploadSize = 5 << 20 // 5 MiB, matches the form limit

	// PublicPrefix is the path under which accepted uploads are served.
	PublicPrefix = "/images"
)

var allowedExt = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
}

// Upload is a transport-independent view of an uploaded file.
type Upload struct {
	Filename string
	Size     int64
	Reader   io.Reader
}

type Resolver struct {
	Dir     string
	MaxSize int64
}

func NewResolver(dir string) *Resolver {
	return &Resolver{Dir: dir, MaxSize: MaxUploadSize}
}

// Resolve decides the image reference for a product mutation. An uploaded
// file wins over a caller-supplied URL; with neither, create fails and edit
// keeps the stored image (signalled by returning "").
func (r *Resolver) Resolve(upload *Upload, imageURL string, editing bool) (string, error) {
	if upload != nil {
		return r.store(upload)
	}
	if imageURL != "" {
		return imageURL, nil
	}
	if editing {
		return "", nil
	}
	return "", domain.ErrMissingAsset
}

func (r *Resolver) store(upload *Upload) (string, error) {
	ext := strings.ToLower(filepath.Ext(upload.Filename))
	if _, ok := allowedExt[ext]; !ok {
		return "", fmt.Errorf("%w: extension %q", domain.ErrInvalidAsset, ext)
	}
	if upload.Size > r.MaxSize {
		return "", domain.ErrAssetTooLarge
	}

	if err := os.MkdirAll(r.Dir, 0o755); err != nil {
		return "", fmt.Errorf("cannot create upload dir: %w", err)
	}

	name := fmt.Sprintf("product-%d-%s%s", time.Now().UnixMilli(), uuid.NewString()[:8], ext)
	path := filepath.Join(r.Dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("cannot create file: %w", err)
	}

	// The declared size was already checked; the limited copy guards against
	// a stream that keeps going past it.
	written, err := io.Copy(f, io.LimitReader(upload.Reader, r.MaxSize+1))
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("cannot write file: %w", err)
	}
	if written > r.MaxSize {
		os.Remove(path)
		return "", domain.ErrAssetTooLarge
	}

	return PublicPrefix + "/" + name, nil
}

// Remove deletes a previously stored upload, best effort. References outside
// the public namespace (caller-supplied URLs) are left alone.
func (r *Resolver) Remove(ref string) {
	if !strings.HasPrefix(ref, PublicPrefix+"/") {
		return
	}
	os.Remove(filepath.Join(r.Dir, filepath.Base(ref)))
}
