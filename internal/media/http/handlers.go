package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/liminal-studio/liminal-backend/internal/api/http/respond"
	"github.com/liminal-studio/liminal-backend/internal/apperr"
	"github.com/liminal-studio/liminal-backend/internal/media"
)

const (
	bannerField     = "bannerImage"
	additionalField = "additionalImages"

	// formOverhead covers multipart boundaries and part headers.
	formOverhead = 1 << 20
)

type Uploader interface {
	UploadBanner(ctx context.Context, f media.File) (string, error)
	UploadAdditional(ctx context.Context, files []media.File) ([]string, error)
}

type Handler struct {
	relay    Uploader
	maxBytes int64
}

// New builds the upload handlers. maxBytes caps each file; zero disables
// the cap.
func New(relay Uploader, maxBytes int64) *Handler {
	return &Handler{relay: relay, maxBytes: maxBytes}
}

// Register mounts the upload routes behind guards.
func (h *Handler) Register(rg *gin.RouterGroup, guards ...gin.HandlerFunc) {
	g := rg.Group("", guards...)
	g.POST("/uploadBannerImage", h.UploadBanner)
	g.POST("/uploadAdditionalImages", h.UploadAdditional)
}

func (h *Handler) UploadBanner(c *gin.Context) {
	h.limitBody(c, 1)
	fh, err := c.FormFile(bannerField)
	if err != nil {
		respond.AbortError(c, formError("Banner Image required", err))
		return
	}

	f, err := h.read(fh)
	if err != nil {
		respond.AbortError(c, err)
		return
	}

	url, err := h.relay.UploadBanner(c.Request.Context(), f)
	if err != nil {
		respond.AbortError(c, apperr.Internal("Banner upload failed", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"bannerURL": url})
}

func (h *Handler) UploadAdditional(c *gin.Context) {
	h.limitBody(c, media.MaxAdditional)
	form, err := c.MultipartForm()
	if err != nil || len(form.File[additionalField]) == 0 {
		respond.AbortError(c, formError("Additional Images required", err))
		return
	}

	headers := form.File[additionalField]
	if len(headers) > media.MaxAdditional {
		respond.AbortError(c, apperr.BadRequest(fmt.Sprintf("At most %d Additional Images allowed", media.MaxAdditional), nil))
		return
	}

	files := make([]media.File, 0, len(headers))
	for _, fh := range headers {
		f, err := h.read(fh)
		if err != nil {
			respond.AbortError(c, err)
			return
		}
		files = append(files, f)
	}

	urls, err := h.relay.UploadAdditional(c.Request.Context(), files)
	if err != nil {
		respond.AbortError(c, apperr.Internal("Additional image upload failed", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"additionalURLs": urls})
}

// limitBody stops reading the request once it is larger than files
// maximum-size images could be.
func (h *Handler) limitBody(c *gin.Context, files int64) {
	if h.maxBytes <= 0 {
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, files*h.maxBytes+formOverhead)
}

func formError(missing string, err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return apperr.BadRequest("Upload too large", err)
	}
	return apperr.BadRequest(missing, err)
}

func (h *Handler) read(fh *multipart.FileHeader) (media.File, error) {
	if h.maxBytes > 0 && fh.Size > h.maxBytes {
		return media.File{}, apperr.BadRequest(fmt.Sprintf("%s exceeds %d bytes", fh.Filename, h.maxBytes), nil)
	}
	if fh.Size == 0 {
		return media.File{}, apperr.BadRequest(fmt.Sprintf("%s is empty", fh.Filename), media.ErrEmptyFile)
	}

	src, err := fh.Open()
	if err != nil {
		return media.File{}, apperr.Internal("Image read failed", err)
	}
	defer src.Close()

	body, err := io.ReadAll(src)
	if err != nil {
		return media.File{}, apperr.Internal("Image read failed", err)
	}

	return media.File{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}
