package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// AssetHost turns stored image references into URLs. Stored absolute URLs
// are used as-is; bare public ids are built through Cloudinary when it is
// configured.
type AssetHost struct {
	cld *cloudinary.Cloudinary
}

// NewAssetHost configures Cloudinary from a CLOUDINARY_URL. An empty url
// gives a host that only passes stored URLs through.
func NewAssetHost(cloudURL string) (*AssetHost, error) {
	if cloudURL == "" {
		return &AssetHost{}, nil
	}
	cld, err := cloudinary.NewFromURL(cloudURL)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	cld.Config.URL.Secure = true
	return &AssetHost{cld: cld}, nil
}

// URL returns stored when set, otherwise the delivery URL of publicID.
// It returns "" when neither resolves.
func (h *AssetHost) URL(stored, publicID string) string {
	if stored != "" {
		return stored
	}
	if publicID == "" || h == nil || h.cld == nil {
		return ""
	}
	img, err := h.cld.Image(publicID)
	if err != nil {
		return ""
	}
	u, err := img.String()
	if err != nil {
		return ""
	}
	return u
}

// ErrNoAssetHost is returned by uploads when Cloudinary is not configured.
var ErrNoAssetHost = errors.New("asset uploads need CLOUDINARY_URL")

// Enabled reports whether uploads are possible.
func (h *AssetHost) Enabled() bool { return h != nil && h.cld != nil }

// Upload stores file under folder and returns its secure URL and public id.
func (h *AssetHost) Upload(ctx context.Context, file io.Reader, folder string) (string, string, error) {
	if !h.Enabled() {
		return "", "", ErrNoAssetHost
	}
	res, err := h.cld.Upload.Upload(ctx, file, uploader.UploadParams{Folder: folder})
	if err != nil {
		return "", "", fmt.Errorf("upload: %w", err)
	}
	if res.Error.Message != "" {
		return "", "", fmt.Errorf("upload: %s", res.Error.Message)
	}
	return res.SecureURL, res.PublicID, nil
}

// Destroy removes an uploaded asset. Empty ids and an unconfigured host are no-ops.
func (h *AssetHost) Destroy(ctx context.Context, publicID string) error {
	if publicID == "" || !h.Enabled() {
		return nil
	}
	if _, err := h.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return fmt.Errorf("destroy %s: %w", publicID, err)
	}
	return nil
}
