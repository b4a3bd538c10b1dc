package media

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const (
	BannerFolder     = "projects/banner"
	AdditionalFolder = "projects/additional"

	// MaxAdditional caps a single additional-images batch.
	MaxAdditional = 10
)

var (
	ErrNoFiles      = errors.New("no files")
	ErrTooManyFiles = fmt.Errorf("more than %d files", MaxAdditional)
	ErrEmptyFile    = errors.New("empty file")
)

// File is an uploaded image read into memory.
type File struct {
	Name        string
	ContentType string
	Body        []byte
}

type Relay struct {
	store Store
}

func NewRelay(store Store) *Relay {
	return &Relay{store: store}
}

// UploadBanner stores a single banner image.
func (r *Relay) UploadBanner(ctx context.Context, f File) (string, error) {
	return r.put(ctx, BannerFolder, f)
}

// UploadAdditional stores up to MaxAdditional images concurrently. URLs are
// returned in input order. If any upload fails the whole batch fails;
// objects already stored are left in place.
func (r *Relay) UploadAdditional(ctx context.Context, files []File) ([]string, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	if len(files) > MaxAdditional {
		return nil, ErrTooManyFiles
	}

	urls := make([]string, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i, f := range files {
		g.Go(func() error {
			url, err := r.put(gctx, AdditionalFolder, f)
			if err != nil {
				return fmt.Errorf("file %d (%s): %w", i, f.Name, err)
			}
			urls[i] = url
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return urls, nil
}

func (r *Relay) put(ctx context.Context, folder string, f File) (string, error) {
	if len(f.Body) == 0 {
		return "", ErrEmptyFile
	}

	obj := Object{
		Folder:      folder,
		Name:        PublicID(f.Body),
		Body:        f.Body,
		ContentType: f.ContentType,
	}
	url, err := r.store.Put(ctx, obj)
	if err != nil {
		return "", err
	}

	zerolog.Ctx(ctx).Debug().
		Str("folder", folder).
		Str("public_id", obj.Name).
		Int("bytes", len(f.Body)).
		Msg("image stored")
	return url, nil
}
