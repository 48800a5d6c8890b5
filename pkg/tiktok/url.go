package tiktok

import (
	"net/url"
	"regexp"
)

// Recognized TikTok URL shapes:
//
//	https://www.tiktok.com/@username/video/1234567890
//	https://www.tiktok.com/v/1234567890
//	https://vm.tiktok.com/shortcode/
//	https://www.tiktok.com/t/shortcode/
var patterns = []*regexp.Regexp{
	regexp.MustCompile(`tiktok\.com/@[\w.-]+/video/(\d+)`),
	regexp.MustCompile(`tiktok\.com/v/(\d+)`),
	regexp.MustCompile(`vm\.tiktok\.com/([\w-]+)`),
	regexp.MustCompile(`tiktok\.com/t/([\w-]+)`),
}

var validHosts = map[string]bool{
	"www.tiktok.com": true,
	"tiktok.com":     true,
	"vm.tiktok.com":  true,
}

// ExtractVideoID returns the stable content identifier embedded in a TikTok
// video URL, or false when no known shape matches.
func ExtractVideoID(rawURL string) (string, bool) {
	for _, pattern := range patterns {
		if match := pattern.FindStringSubmatch(rawURL); match != nil {
			return match[1], true
		}
	}
	return "", false
}

// IsValidURL reports whether rawURL is a well-formed TikTok video link on a
// recognized host with an extractable video ID.
func IsValidURL(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if !validHosts[parsed.Hostname()] {
		return false
	}
	_, ok := ExtractVideoID(rawURL)
	return ok
}
