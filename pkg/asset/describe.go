package asset

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/finalwork/recipe-terminal/pkg/models"
)

// Info is what the form shows about an attached image
type Info struct {
	Name        string
	ContentType string
	Size        int64
	Width       int
	Height      int
	PreviewPath string
}

// HasDimensions reports whether the image header could be decoded
func (i Info) HasDimensions() bool {
	return i.Width > 0 && i.Height > 0
}

// Describe summarizes a and its preview handle. Dimensions are left zero
// for formats the image package cannot decode.
func Describe(a *models.Asset, h Handle) Info {
	if a == nil {
		return Info{}
	}
	info := Info{
		Name:        a.Name,
		ContentType: a.ContentType,
		Size:        a.Size(),
		PreviewPath: h.Path,
	}
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(a.Data)); err == nil {
		info.Width = cfg.Width
		info.Height = cfg.Height
	}
	return info
}
