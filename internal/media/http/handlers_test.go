package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liminal-studio/liminal-backend/internal/media"
)

type cdnStore struct {
	mu   sync.Mutex
	puts int
	fail bool
}

func (s *cdnStore) Put(_ context.Context, obj media.Object) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.puts++
	if s.fail {
		return "", errors.New("cdn unavailable")
	}
	return "https://cdn.example.com/" + obj.Folder + "/" + obj.Name, nil
}

type part struct {
	field, name string
	body        []byte
}

func multipartBody(t *testing.T, parts ...part) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for _, p := range parts {
		fw, err := w.CreateFormFile(p.field, p.name)
		require.NoError(t, err)
		_, err = fw.Write(p.body)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf, w.FormDataContentType()
}

func setup(store media.Store, maxBytes int64, guards ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	New(media.NewRelay(store), maxBytes).Register(r.Group(""), guards...)
	return r
}

func post(r *gin.Engine, path string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestUploadBanner(t *testing.T) {
	img := []byte("banner-image-bytes")

	t.Run("returns url", func(t *testing.T) {
		r := setup(&cdnStore{}, 0)
		body, ct := multipartBody(t, part{bannerField, "banner.jpg", img})

		rr := post(r, "/uploadBannerImage", body, ct)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"bannerURL":"https://cdn.example.com/projects/banner/`+media.PublicID(img)+`"}`, rr.Body.String())
	})

	t.Run("same bytes give same url", func(t *testing.T) {
		r := setup(&cdnStore{}, 0)

		b1, ct1 := multipartBody(t, part{bannerField, "first.jpg", img})
		b2, ct2 := multipartBody(t, part{bannerField, "renamed.jpg", img})
		first := post(r, "/uploadBannerImage", b1, ct1)
		second := post(r, "/uploadBannerImage", b2, ct2)
		require.Equal(t, http.StatusOK, first.Code)
		assert.Equal(t, first.Body.String(), second.Body.String())
	})

	t.Run("missing file", func(t *testing.T) {
		body, ct := multipartBody(t, part{"other", "x.jpg", img})
		rr := post(setup(&cdnStore{}, 0), "/uploadBannerImage", body, ct)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.JSONEq(t, `{"error":"Banner Image required"}`, rr.Body.String())
	})

	t.Run("too large", func(t *testing.T) {
		body, ct := multipartBody(t, part{bannerField, "big.jpg", bytes.Repeat([]byte("x"), 64)})
		rr := post(setup(&cdnStore{}, 32), "/uploadBannerImage", body, ct)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("oversized body is cut off before parsing", func(t *testing.T) {
		store := &cdnStore{}
		body, ct := multipartBody(t, part{bannerField, "huge.jpg", bytes.Repeat([]byte("x"), 2<<20)})
		rr := post(setup(store, 32), "/uploadBannerImage", body, ct)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.JSONEq(t, `{"error":"Upload too large"}`, rr.Body.String())
		assert.Zero(t, store.puts)
	})

	t.Run("store failure", func(t *testing.T) {
		body, ct := multipartBody(t, part{bannerField, "banner.jpg", img})
		rr := post(setup(&cdnStore{fail: true}, 0), "/uploadBannerImage", body, ct)
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.JSONEq(t, `{"error":"Banner upload failed"}`, rr.Body.String())
	})
}

func TestUploadAdditional(t *testing.T) {
	imgs := func(n int) []part {
		out := make([]part, n)
		for i := range out {
			out[i] = part{additionalField, fmt.Sprintf("%d.jpg", i), []byte(fmt.Sprintf("additional-%d", i))}
		}
		return out
	}

	t.Run("five images in order", func(t *testing.T) {
		parts := imgs(5)
		body, ct := multipartBody(t, parts...)

		rr := post(setup(&cdnStore{}, 0), "/uploadAdditionalImages", body, ct)
		require.Equal(t, http.StatusOK, rr.Code)

		var resp struct {
			AdditionalURLs []string `json:"additionalURLs"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		require.Len(t, resp.AdditionalURLs, 5)
		for i, p := range parts {
			assert.Equal(t, "https://cdn.example.com/projects/additional/"+media.PublicID(p.body), resp.AdditionalURLs[i])
		}
	})

	t.Run("none", func(t *testing.T) {
		body, ct := multipartBody(t)
		rr := post(setup(&cdnStore{}, 0), "/uploadAdditionalImages", body, ct)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.JSONEq(t, `{"error":"Additional Images required"}`, rr.Body.String())
	})

	t.Run("more than the cap", func(t *testing.T) {
		store := &cdnStore{}
		body, ct := multipartBody(t, imgs(media.MaxAdditional+1)...)
		rr := post(setup(store, 0), "/uploadAdditionalImages", body, ct)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Zero(t, store.puts)
	})

	t.Run("oversized batch is cut off before parsing", func(t *testing.T) {
		store := &cdnStore{}
		parts := []part{
			{additionalField, "a.jpg", bytes.Repeat([]byte("a"), 1<<20)},
			{additionalField, "b.jpg", bytes.Repeat([]byte("b"), 1<<20)},
		}
		body, ct := multipartBody(t, parts...)
		rr := post(setup(store, 32), "/uploadAdditionalImages", body, ct)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.JSONEq(t, `{"error":"Upload too large"}`, rr.Body.String())
		assert.Zero(t, store.puts)
	})

	t.Run("any failure fails the batch", func(t *testing.T) {
		body, ct := multipartBody(t, imgs(3)...)
		rr := post(setup(&cdnStore{fail: true}, 0), "/uploadAdditionalImages", body, ct)
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.JSONEq(t, `{"error":"Additional image upload failed"}`, rr.Body.String())
	})
}

func TestUploadRoutesAreGuarded(t *testing.T) {
	deny := func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden Access"})
	}
	store := &cdnStore{}
	r := setup(store, 0, deny)

	body, ct := multipartBody(t, part{bannerField, "banner.jpg", []byte("x")})
	assert.Equal(t, http.StatusForbidden, post(r, "/uploadBannerImage", body, ct).Code)
	assert.Zero(t, store.puts)
}
