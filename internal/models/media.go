package models

import "regexp"

// Google Drive share links come in several shapes; all carry the file id.
var (
	driveFilePattern  = regexp.MustCompile(`drive\.google\.com/file/d/([a-zA-Z0-9_-]+)`)
	driveOpenPattern  = regexp.MustCompile(`drive\.google\.com/open\?id=([a-zA-Z0-9_-]+)`)
	driveUCPattern    = regexp.MustCompile(`drive\.google\.com/uc\?[^&]*id=([a-zA-Z0-9_-]+)`)
	driveThumbPattern = regexp.MustCompile(`drive\.google\.com/thumbnail\?id=([a-zA-Z0-9_-]+)`)

	youtubePattern     = regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/)([^&\s?]+)`)
	vimeoPattern       = regexp.MustCompile(`vimeo\.com/(?:video/)?(\d+)`)
	directVideoPattern = regexp.MustCompile(`(?i)\.(mp4|webm|ogg)(\?|$)`)
)

// DriveFileID extracts the Google Drive file id from view/share/download
// links, or "" when the URL is not a Drive link.
func DriveFileID(url string) string {
	for _, pattern := range []*regexp.Regexp{driveFilePattern, driveOpenPattern, driveUCPattern, driveThumbPattern} {
		if m := pattern.FindStringSubmatch(url); m != nil {
			return m[1]
		}
	}
	return ""
}

// IsDriveURL reports whether the URL is a Google Drive link in any known
// shape.
func IsDriveURL(url string) bool {
	return DriveFileID(url) != ""
}

// DisplayableDriveURL converts Drive view links to URLs browsers can render
// directly: thumbnails for images, the file viewer for videos. Non-Drive URLs
// pass through untouched.
func DisplayableDriveURL(url, mediaType string) string {
	fileID := DriveFileID(url)
	if fileID == "" {
		return url
	}
	if mediaType == MediaTypeVideo {
		return "https://drive.google.com/file/d/" + fileID + "/view"
	}
	return "https://drive.google.com/thumbnail?id=" + fileID + "&sz=w1200"
}

// VideoEmbedURL returns an iframe-embeddable URL for YouTube, Vimeo and
// Google Drive videos, or "" when the URL matches none of them.
func VideoEmbedURL(url string) string {
	if m := youtubePattern.FindStringSubmatch(url); m != nil {
		return "https://www.youtube.com/embed/" + m[1] + "?autoplay=0"
	}
	if m := vimeoPattern.FindStringSubmatch(url); m != nil {
		return "https://player.vimeo.com/video/" + m[1]
	}
	if fileID := DriveFileID(url); fileID != "" {
		return "https://drive.google.com/file/d/" + fileID + "/preview"
	}
	return ""
}

// IsDirectVideoURL reports whether the URL points at a natively playable
// video file rather than an embed page.
func IsDirectVideoURL(url string) bool {
	if url == "" {
		return false
	}
	if len(url) >= 11 && url[:11] == "data:video/" {
		return true
	}
	return directVideoPattern.MatchString(url)
}

// NormalizeMedia builds the canonical media list for a product write. An
// explicit media list wins, filtered down to well-formed entries; otherwise
// one is synthesized from the legacy images/image fields, tagged as images.
func NormalizeMedia(media []MediaItem, images []string, image string) []MediaItem {
	if len(media) > 0 {
		out := make([]MediaItem, 0, len(media))
		for _, m := range media {
			if m.URL == "" {
				continue
			}
			if m.Type != MediaTypeImage && m.Type != MediaTypeVideo {
				continue
			}
			out = append(out, m)
		}
		return out
	}

	urls := images
	if len(urls) == 0 && image != "" {
		urls = []string{image}
	}
	out := make([]MediaItem, 0, len(urls))
	for _, url := range urls {
		if url == "" {
			continue
		}
		out = append(out, MediaItem{Type: MediaTypeImage, URL: url})
	}
	return out
}

// DerivedImageFields computes the legacy image/images convenience fields from
// a media list: first image URL (falling back to the first entry of any type)
// and all image URLs in media order.
func DerivedImageFields(media []MediaItem) (image string, images []string) {
	images = []string{}
	for _, m := range media {
		if m.Type == MediaTypeImage {
			images = append(images, m.URL)
		}
	}
	if len(images) > 0 {
		image = images[0]
	} else if len(media) > 0 {
		image = media[0].URL
	}
	if len(images) == 0 && image != "" {
		images = []string{image}
	}
	return image, images
}

// NormalizedMedia returns the product's media in display order with Drive
// links rewritten to displayable URLs. Works for both media-bearing and
// legacy images/image records.
func (p *Product) NormalizedMedia() []MediaItem {
	if p == nil {
		return []MediaItem{}
	}
	var raw []MediaItem
	if len(p.Media) > 0 {
		raw = make([]MediaItem, 0, len(p.Media))
		for _, m := range p.Media {
			mediaType := MediaTypeImage
			if m.Type == MediaTypeVideo {
				mediaType = MediaTypeVideo
			}
			raw = append(raw, MediaItem{Type: mediaType, URL: m.URL})
		}
	} else {
		raw = NormalizeMedia(nil, p.Images, p.Image)
	}

	out := make([]MediaItem, 0, len(raw))
	for _, m := range raw {
		if m.URL == "" {
			continue
		}
		m.URL = DisplayableDriveURL(m.URL, m.Type)
		out = append(out, m)
	}
	return out
}

// FirstImageURL returns the URL to use for cards and thumbnails: the first
// image, or the first media entry of any type.
func (p *Product) FirstImageURL() string {
	media := p.NormalizedMedia()
	for _, m := range media {
		if m.Type == MediaTypeImage {
			return m.URL
		}
	}
	if len(media) > 0 {
		return media[0].URL
	}
	return ""
}
