package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLightbox(t *testing.T) {
	images := []string{"a.jpg", "b.jpg", "c.jpg"}

	t.Run("open at index", func(t *testing.T) {
		store := NewStore()
		store.OpenLightbox(images, 1)
		assert.True(t, store.LightboxOpen())
		assert.Equal(t, "b.jpg", store.CurrentImage())
	})

	t.Run("out-of-range start clamps to first", func(t *testing.T) {
		store := NewStore()
		store.OpenLightbox(images, 7)
		assert.Equal(t, "a.jpg", store.CurrentImage())
	})

	t.Run("next wraps around", func(t *testing.T) {
		store := NewStore()
		store.OpenLightbox(images, 2)
		store.NextImage()
		assert.Equal(t, "a.jpg", store.CurrentImage())
	})

	t.Run("prev wraps around", func(t *testing.T) {
		store := NewStore()
		store.OpenLightbox(images, 0)
		store.PrevImage()
		assert.Equal(t, "c.jpg", store.CurrentImage())
	})

	t.Run("navigation on empty list is harmless", func(t *testing.T) {
		store := NewStore()
		store.NextImage()
		store.PrevImage()
		assert.Empty(t, store.CurrentImage())
	})

	t.Run("close keeps the image list", func(t *testing.T) {
		store := NewStore()
		store.OpenLightbox(images, 1)
		store.CloseLightbox()
		assert.False(t, store.LightboxOpen())
		assert.Equal(t, "b.jpg", store.CurrentImage())
	})
}

func TestVideoModal(t *testing.T) {
	store := NewStore()
	store.OpenVideoModal("https://cdn.example.com/trailer.mp4")
	assert.True(t, store.VideoModalOpen())
	assert.Equal(t, "https://cdn.example.com/trailer.mp4", store.VideoModalURL())

	store.CloseVideoModal()
	assert.False(t, store.VideoModalOpen())
	assert.Empty(t, store.VideoModalURL())
}
