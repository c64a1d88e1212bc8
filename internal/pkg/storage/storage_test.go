package storage

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, "room-types/ab/photo.jpg", strings.NewReader("jpeg bytes")))

	rc, err := s.Get(ctx, "room-types/ab/photo.jpg")
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "jpeg bytes", string(got))

	require.NoError(t, s.Delete(ctx, "room-types/ab/photo.jpg"))
	require.NoError(t, s.Delete(ctx, "room-types/ab/photo.jpg"))

	_, err = s.Get(ctx, "room-types/ab/photo.jpg")
	assert.ErrorIs(t, err, ErrNotExist)
}

func TestLocalStorageRejectsEscapingPaths(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	for _, p := range []string{"", "/etc/passwd", "../outside.jpg", "a/../../outside.jpg"} {
		assert.ErrorIs(t, s.Save(ctx, p, strings.NewReader("x")), ErrInvalidPath, p)
	}
}

func TestImageProcessorProducesBoundedJPEGs(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2000, 1000))
	for x := 0; x < 2000; x++ {
		src.Set(x, x%1000, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))

	photo, thumb, err := NewImageProcessor().Process(&buf)
	require.NoError(t, err)

	photoImg, format, err := image.Decode(photo)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, PhotoMaxSize, photoImg.Bounds().Dx())
	assert.Equal(t, PhotoMaxSize/2, photoImg.Bounds().Dy())

	thumbImg, _, err := image.Decode(thumb)
	require.NoError(t, err)
	assert.Equal(t, ThumbnailMaxSize, thumbImg.Bounds().Dx())
	assert.Equal(t, ThumbnailMaxSize, thumbImg.Bounds().Dy())
}

func TestImageProcessorRejectsNonImages(t *testing.T) {
	_, _, err := NewImageProcessor().Process(strings.NewReader("not an image"))
	assert.Error(t, err)
}
