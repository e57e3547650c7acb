package files

import (
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/finalwork/recipe-terminal/pkg/models"
)

// MaxAssetSize caps the size of an image read from disk
const MaxAssetSize = 20 << 20

// UnsupportedImageError is returned for files whose extension is not allowed
type UnsupportedImageError struct {
	Path    string
	Allowed []string
}

func (e *UnsupportedImageError) Error() string {
	return fmt.Sprintf("unsupported image %s (allowed: %s)", filepath.Base(e.Path), strings.Join(e.Allowed, ", "))
}

// LoadAsset reads an image file into an Asset. An empty allowed list
// accepts any extension.
func LoadAsset(path string, allowed []string) (*models.Asset, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if len(allowed) > 0 && !slices.Contains(allowed, ext) {
		return nil, &UnsupportedImageError{Path: path, Allowed: allowed}
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat image %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	if info.Size() > MaxAssetSize {
		return nil, fmt.Errorf("image %s is too large (%d bytes)", path, info.Size())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image %s: %w", path, err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	return &models.Asset{
		Name:        filepath.Base(path),
		ContentType: DetectContentType(ext, data),
		SourcePath:  abs,
		Data:        data,
	}, nil
}

// DetectContentType prefers the extension and falls back to sniffing
func DetectContentType(ext string, data []byte) string {
	ct := mime.TypeByExtension(ext)
	if ct == "" {
		ct = http.DetectContentType(data)
	}
	if mediaType, _, err := mime.ParseMediaType(ct); err == nil {
		return mediaType
	}
	return ct
}
