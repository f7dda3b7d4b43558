package headkit

import (
	"time"

	"github.com/eringen/headkit/seo"
)

// Page is a stored page record: the SEO configuration served for one path.
type Page struct {
	Path      string     `json:"path" validate:"required,startswith=/,max=2048"`
	Config    seo.Config `json:"config"`
	Body      string     `json:"body,omitempty" validate:"max=1048576"`
	Published bool       `json:"published"`
	Revision  string     `json:"revision,omitempty"`
	UpdatedAt time.Time  `json:"updatedAt,omitempty"`
}

// Image is an uploaded Open Graph image.
type Image struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	Size         int    `json:"size"`
	UploadedAt   string `json:"uploadedAt"`
}

// OGImage returns the og:image entry for img served from base.
func (img Image) OGImage(base, alt string) seo.OGImage {
	return seo.OGImage{
		URL:    BuildURL(base, "public", uploadsSubdir, img.Filename),
		Alt:    alt,
		Width:  img.Width,
		Height: img.Height,
		Type:   "image/jpeg",
	}
}
