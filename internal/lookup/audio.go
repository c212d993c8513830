package lookup

import (
	"net/url"
	"strings"
)

// ResolveAudioRef turns a stored audio reference into a playable URL.
// Absolute locators are used as-is (insecure scheme upgraded); anything else
// is treated as an opaque token for the text-to-speech endpoint. Pure
// function, no side effects.
func ResolveAudioRef(ref, ttsEndpoint string) string {
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "https://") {
		return ref
	}
	if rest, ok := strings.CutPrefix(ref, "http://"); ok {
		return "https://" + rest
	}
	return ttsEndpoint + url.QueryEscape(ref)
}
