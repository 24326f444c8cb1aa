package domain

import (
	"fmt"
	"time"
)

// SignedPlayback is a ready-to-use playback URL for a video's HLS master playlist.
type SignedPlayback struct {
	VideoID   string
	URL       string
	ExpiresAt time.Time
}

// MasterPlaylistPath returns the public path of a video's HLS master playlist.
func MasterPlaylistPath(videoID string) string {
	return fmt.Sprintf("/hls/%s/master.m3u8", videoID)
}
