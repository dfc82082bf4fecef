package yaml

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/fwojciec/herbarium"
)

// Ensure Images implements herbarium.ImageStore at compile time.
var _ herbarium.ImageStore = (*Images)(nil)

// Images downloads product images into entity directories. Each entity
// keeps one raster image named after its slug under images/.
type Images struct {
	baseDir string
	client  *http.Client
}

// NewImages creates an image store rooted at the same directory as the
// record store. A nil client falls back to http.DefaultClient.
func NewImages(baseDir string, client *http.Client) *Images {
	if client == nil {
		client = http.DefaultClient
	}
	return &Images{baseDir: baseDir, client: client}
}

// SaveImage downloads the image at rawURL into <base>/<slug>/images/ and
// returns the stored path relative to the entity directory.
func (im *Images) SaveImage(ctx context.Context, slug string, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", herbarium.Errorf(herbarium.EINVALID, "invalid image URL: %v", err)
	}

	ext := path.Ext(u.Path)
	if ext == "" {
		ext = ".jpg"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := im.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", herbarium.Errorf(herbarium.EUNPROCESSABLE, "HTTP %d for image %s", resp.StatusCode, rawURL)
	}

	relPath := filepath.Join("images", slug+ext)
	fullPath := filepath.Join(im.baseDir, slug, relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", err
	}

	f, err := os.Create(fullPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return "", err
	}

	return relPath, nil
}
