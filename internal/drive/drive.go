// Package drive rewrites Google Drive share links into the forms the service
// stores, serves and hands to the moderation API.
package drive

import (
	"net/url"
	"regexp"
	"strings"
)

const (
	DefaultImageID = "1qerpdjkg-yedBZTOLYT4jxmT4zZbiVLG"

	viewPrefix     = "https://drive.google.com/uc?export=view&id="
	downloadPrefix = "https://drive.usercontent.google.com/download?id="
	legacyPrefix   = "https://drive.google.com/open?id="
	mediaBaseURL   = "https://www.googleapis.com/drive/v3/files/"
)

// DefaultImage is the stored fallback for submissions without a usable image.
var DefaultImage = viewPrefix + DefaultImageID

// DefaultDownloadImage is what the feed shows for rows with no stored image.
var DefaultDownloadImage = downloadPrefix + DefaultImageID

var (
	strictIDPattern = regexp.MustCompile(`(?:id=|/d/)([a-zA-Z0-9_-]+)`)
	looseIDPattern  = regexp.MustCompile(`(?:id=|/d/)([^/?]+)`)
)

// ViewURL turns a share link into a uc?export=view link. Links without a
// recognisable file id are returned unchanged.
func ViewURL(link string) string {
	m := strictIDPattern.FindStringSubmatch(link)
	if m == nil {
		return link
	}
	return viewPrefix + m[1]
}

// DirectDownloadURL returns a drive.usercontent link that serves the file bytes
// without an interstitial page. ok is false when no file id is present.
func DirectDownloadURL(link string) (string, bool) {
	m := looseIDPattern.FindStringSubmatch(link)
	if m == nil || m[1] == "" {
		return "", false
	}
	return downloadPrefix + m[1], true
}

// FeedPhoto picks the photo URL shown for a stored image link.
func FeedPhoto(stored *string) string {
	if stored == nil || *stored == "" {
		return DefaultDownloadImage
	}
	if strings.HasPrefix(*stored, legacyPrefix) {
		return viewPrefix + strings.TrimPrefix(*stored, legacyPrefix)
	}
	return *stored
}

// MediaURL builds the Drive API media download URL for a file id.
func MediaURL(fileID, apiKey string) string {
	q := url.Values{}
	q.Set("alt", "media")
	q.Set("key", apiKey)
	return mediaBaseURL + url.PathEscape(fileID) + "?" + q.Encode()
}
