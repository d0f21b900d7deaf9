package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDriveFileID(t *testing.T) {
	tests := []struct {
		url      string
		expected string
	}{
		{"https://drive.google.com/file/d/1AbC_d-9/view?usp=sharing", "1AbC_d-9"},
		{"https://drive.google.com/open?id=XyZ123", "XyZ123"},
		{"https://drive.google.com/uc?export=view&id=QwE456", "QwE456"},
		{"https://drive.google.com/thumbnail?id=ThU789&sz=w400", "ThU789"},
		{"https://example.com/photo.jpg", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, DriveFileID(tt.url), "url %q", tt.url)
	}
}

func TestDisplayableDriveURL(t *testing.T) {
	viewLink := "https://drive.google.com/file/d/abc123/view"

	assert.Equal(t,
		"https://drive.google.com/thumbnail?id=abc123&sz=w1200",
		DisplayableDriveURL(viewLink, MediaTypeImage))
	assert.Equal(t,
		"https://drive.google.com/file/d/abc123/view",
		DisplayableDriveURL(viewLink, MediaTypeVideo))

	// Non-Drive URLs pass through untouched.
	assert.Equal(t, "https://example.com/a.jpg", DisplayableDriveURL("https://example.com/a.jpg", MediaTypeImage))
}

func TestVideoEmbedURL(t *testing.T) {
	assert.Equal(t,
		"https://www.youtube.com/embed/dQw4w9WgXcQ?autoplay=0",
		VideoEmbedURL("https://www.youtube.com/watch?v=dQw4w9WgXcQ"))
	assert.Equal(t,
		"https://www.youtube.com/embed/dQw4w9WgXcQ?autoplay=0",
		VideoEmbedURL("https://youtu.be/dQw4w9WgXcQ"))
	assert.Equal(t,
		"https://player.vimeo.com/video/123456",
		VideoEmbedURL("https://vimeo.com/123456"))
	assert.Equal(t,
		"https://drive.google.com/file/d/abc123/preview",
		VideoEmbedURL("https://drive.google.com/file/d/abc123/view"))
	assert.Equal(t, "", VideoEmbedURL("https://example.com/clip.mp4"))
}

func TestIsDirectVideoURL(t *testing.T) {
	assert.True(t, IsDirectVideoURL("https://cdn.example.com/clip.mp4"))
	assert.True(t, IsDirectVideoURL("https://cdn.example.com/clip.MP4?token=1"))
	assert.True(t, IsDirectVideoURL("data:video/mp4;base64,AAAA"))
	assert.False(t, IsDirectVideoURL("https://www.youtube.com/watch?v=x"))
	assert.False(t, IsDirectVideoURL(""))
}

func TestNormalizeMediaFiltersMalformedEntries(t *testing.T) {
	media := NormalizeMedia([]MediaItem{
		{Type: MediaTypeImage, URL: "https://example.com/a.jpg"},
		{Type: MediaTypeVideo, URL: ""},
		{Type: "gif", URL: "https://example.com/b.gif"},
		{Type: MediaTypeVideo, URL: "https://example.com/c.mp4"},
	}, nil, "")

	assert.Equal(t, []MediaItem{
		{Type: MediaTypeImage, URL: "https://example.com/a.jpg"},
		{Type: MediaTypeVideo, URL: "https://example.com/c.mp4"},
	}, media)
}

func TestNormalizeMediaSynthesizesFromLegacyFields(t *testing.T) {
	media := NormalizeMedia(nil, []string{"https://example.com/a.jpg", "https://example.com/b.jpg"}, "")
	assert.Equal(t, []MediaItem{
		{Type: MediaTypeImage, URL: "https://example.com/a.jpg"},
		{Type: MediaTypeImage, URL: "https://example.com/b.jpg"},
	}, media)

	// Single legacy image used only when the images list is empty.
	media = NormalizeMedia(nil, nil, "https://example.com/solo.jpg")
	assert.Equal(t, []MediaItem{{Type: MediaTypeImage, URL: "https://example.com/solo.jpg"}}, media)

	assert.Empty(t, NormalizeMedia(nil, nil, ""))
}

func TestDerivedImageFields(t *testing.T) {
	image, images := DerivedImageFields([]MediaItem{
		{Type: MediaTypeVideo, URL: "https://example.com/v.mp4"},
		{Type: MediaTypeImage, URL: "https://example.com/a.jpg"},
		{Type: MediaTypeImage, URL: "https://example.com/b.jpg"},
	})
	assert.Equal(t, "https://example.com/a.jpg", image)
	assert.Equal(t, []string{"https://example.com/a.jpg", "https://example.com/b.jpg"}, images)

	// Video-only media falls back to the first entry.
	image, images = DerivedImageFields([]MediaItem{{Type: MediaTypeVideo, URL: "https://example.com/v.mp4"}})
	assert.Equal(t, "https://example.com/v.mp4", image)
	assert.Equal(t, []string{"https://example.com/v.mp4"}, images)

	image, images = DerivedImageFields(nil)
	assert.Equal(t, "", image)
	assert.Empty(t, images)
}

func TestNormalizedMediaRewritesDriveLinks(t *testing.T) {
	p := Product{
		Media: []MediaItem{
			{Type: MediaTypeImage, URL: "https://drive.google.com/file/d/img1/view"},
			{Type: MediaTypeVideo, URL: "https://drive.google.com/file/d/vid1/view"},
			{URL: "https://example.com/plain.jpg"}, // untyped defaults to image
		},
	}

	media := p.NormalizedMedia()
	assert.Equal(t, []MediaItem{
		{Type: MediaTypeImage, URL: "https://drive.google.com/thumbnail?id=img1&sz=w1200"},
		{Type: MediaTypeVideo, URL: "https://drive.google.com/file/d/vid1/view"},
		{Type: MediaTypeImage, URL: "https://example.com/plain.jpg"},
	}, media)
}

func TestNormalizedMediaFromLegacyRecord(t *testing.T) {
	p := Product{Images: []string{"https://example.com/a.jpg"}}
	assert.Equal(t, []MediaItem{{Type: MediaTypeImage, URL: "https://example.com/a.jpg"}}, p.NormalizedMedia())
}

func TestFirstImageURL(t *testing.T) {
	p := Product{Media: []MediaItem{
		{Type: MediaTypeVideo, URL: "https://example.com/v.mp4"},
		{Type: MediaTypeImage, URL: "https://example.com/a.jpg"},
	}}
	assert.Equal(t, "https://example.com/a.jpg", p.FirstImageURL())

	videoOnly := Product{Media: []MediaItem{{Type: MediaTypeVideo, URL: "https://example.com/v.mp4"}}}
	assert.Equal(t, "https://example.com/v.mp4", videoOnly.FirstImageURL())

	assert.Equal(t, "", (&Product{}).FirstImageURL())
}
