package bootstrap

import (
	"context"
	"fmt"

	"github.com/liminal-studio/liminal-backend/config"
	"github.com/liminal-studio/liminal-backend/internal/media"
)

// NewMediaStore builds the object store selected by MEDIA_PROVIDER.
func NewMediaStore(ctx context.Context, cfg config.MediaConfig) (media.Store, error) {
	switch cfg.Provider {
	case config.MediaProviderCloudinary:
		c := cfg.Cloudinary
		return media.NewCloudinaryStore(c.CloudName, c.APIKey, c.APISecret)
	case config.MediaProviderS3:
		s := cfg.S3
		return media.NewS3Store(ctx, s.Bucket, s.Region, s.PublicBaseURL)
	default:
		return nil, fmt.Errorf("unknown media provider %q", cfg.Provider)
	}
}
