// Package ui holds ephemeral view state with no persistence and no network
// calls: the image lightbox and the video modal.
package ui

import "sync"

// Store is the ephemeral UI state.
type Store struct {
	mu sync.Mutex

	lightboxOpen  bool
	images        []string
	imageIndex    int
	videoOpen     bool
	videoModalURL string
}

// NewStore creates an empty UI store.
func NewStore() *Store {
	return &Store{}
}

// OpenLightbox shows the lightbox over the given images, starting at
// startIndex. An out-of-range start clamps to the first image.
func (s *Store) OpenLightbox(images []string, startIndex int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if startIndex < 0 || startIndex >= len(images) {
		startIndex = 0
	}
	s.images = append([]string{}, images...)
	s.imageIndex = startIndex
	s.lightboxOpen = true
}

// CloseLightbox hides the lightbox. The image list is kept so a close
// animation can still render the current image.
func (s *Store) CloseLightbox() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lightboxOpen = false
}

// NextImage advances the lightbox, wrapping to the first image at the end.
func (s *Store) NextImage() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.images) > 0 {
		s.imageIndex = (s.imageIndex + 1) % len(s.images)
	}
}

// PrevImage steps back, wrapping to the last image at the front.
func (s *Store) PrevImage() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.images) > 0 {
		s.imageIndex = (s.imageIndex - 1 + len(s.images)) % len(s.images)
	}
}

// LightboxOpen reports whether the lightbox is showing.
func (s *Store) LightboxOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lightboxOpen
}

// CurrentImage returns the image under the cursor, or "" when empty.
func (s *Store) CurrentImage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.images) == 0 {
		return ""
	}
	return s.images[s.imageIndex]
}

// ImageIndex returns the lightbox cursor position.
func (s *Store) ImageIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.imageIndex
}

// OpenVideoModal shows the video modal for the given URL.
func (s *Store) OpenVideoModal(url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.videoModalURL = url
	s.videoOpen = true
}

// CloseVideoModal hides the video modal and drops the URL.
func (s *Store) CloseVideoModal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.videoOpen = false
	s.videoModalURL = ""
}

// VideoModalOpen reports whether the video modal is showing.
func (s *Store) VideoModalOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.videoOpen
}

// VideoModalURL returns the modal's target URL.
func (s *Store) VideoModalURL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.videoModalURL
}
