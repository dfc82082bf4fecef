package yaml_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/herbarium"
	"github.com/fwojciec/herbarium/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImages_SaveImage(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("fake-jpeg-bytes"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	im := yaml.NewImages(dir, srv.Client())

	relPath, err := im.SaveImage(context.Background(), "milk-thistle", srv.URL+"/uploads/milk-thistle-600.jpg")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("images", "milk-thistle.jpg"), relPath)

	data, err := os.ReadFile(filepath.Join(dir, "milk-thistle", relPath))
	require.NoError(t, err)
	assert.Equal(t, "fake-jpeg-bytes", string(data))
}

func TestImages_SaveImage_DefaultExtension(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("img"))
	}))
	defer srv.Close()

	im := yaml.NewImages(t.TempDir(), srv.Client())

	relPath, err := im.SaveImage(context.Background(), "calcium", srv.URL+"/image-endpoint")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("images", "calcium.jpg"), relPath)
}

func TestImages_SaveImage_HTTPError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	im := yaml.NewImages(t.TempDir(), srv.Client())

	_, err := im.SaveImage(context.Background(), "calcium", srv.URL+"/missing.jpg")

	assert.Equal(t, herbarium.EUNPROCESSABLE, herbarium.ErrorCode(err))
}
