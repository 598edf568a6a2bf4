// Package links normalizes free-text link input into canonical absolute
// URLs. Users paste anything from bare handles to full URLs; the gateway
// only ever receives the normalized form.
//
// Every normalizer is idempotent: feeding its own output back returns the
// same string. Empty and whitespace-only input normalizes to "".
package links

import "strings"

// SocialPlatform enumerates the social link family.
type SocialPlatform string

const (
	SocialInstagram SocialPlatform = "instagram"
	SocialTikTok    SocialPlatform = "tiktok"
	SocialFacebook  SocialPlatform = "facebook"
	SocialWebsite   SocialPlatform = "website"
)

// MusicPlatform enumerates the free-text music link family. Catalog
// platforms (Spotify, Apple Music) are not listed here: their URLs come
// verbatim from a selected search result and bypass text normalization.
type MusicPlatform string

const (
	MusicYouTube    MusicPlatform = "youtube"
	MusicSoundCloud MusicPlatform = "soundcloud"
	MusicBandcamp   MusicPlatform = "bandcamp"
)

// EnsureHTTPS turns a bare domain or www-prefixed value into an https URL.
// Already-prefixed http(s) values pass through unchanged.
func EnsureHTTPS(raw string) string {
	value := strings.TrimSpace(raw)

	if value == "" {
		return ""
	}

	if strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://") {
		return value
	}

	if strings.HasPrefix(value, "www.") {
		return "https://" + value
	}

	return "https://" + value
}

func stripLeadingAt(value string) string {
	return strings.TrimLeft(strings.TrimSpace(value), "@")
}

// stripDomainPrefix removes a leading "<domain>/" (case-insensitive) so
// that "instagram.com/name" and "name" both reduce to the bare handle.
func stripDomainPrefix(value, domain string) string {
	v := strings.TrimSpace(value)
	prefix := domain + "/"
	if len(v) >= len(prefix) && strings.EqualFold(v[:len(prefix)], prefix) {
		v = v[len(prefix):]
	}
	return strings.TrimSpace(v)
}

// NormalizeSocial maps raw input to the canonical profile URL for the
// platform, or "" for empty input.
func NormalizeSocial(platform SocialPlatform, value string) string {
	raw := strings.TrimSpace(value)

	if raw == "" {
		return ""
	}

	switch platform {
	case SocialInstagram:
		if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
			return raw
		}
		if strings.Contains(strings.ToLower(raw), "instagram.com/") {
			return EnsureHTTPS(raw)
		}
		handle := stripDomainPrefix(stripLeadingAt(raw), "instagram.com")
		if handle == "" {
			return ""
		}
		return "https://instagram.com/" + handle

	case SocialTikTok:
		if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
			return raw
		}
		if strings.Contains(strings.ToLower(raw), "tiktok.com/") {
			return EnsureHTTPS(raw)
		}
		handle := stripDomainPrefix(stripLeadingAt(raw), "tiktok.com")
		if handle == "" {
			return ""
		}
		return "https://tiktok.com/@" + handle

	case SocialFacebook:
		if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
			return raw
		}
		if strings.Contains(strings.ToLower(raw), "facebook.com/") {
			return EnsureHTTPS(raw)
		}
		// Facebook page names keep a leading @ meaningful, so it is not stripped.
		handle := stripDomainPrefix(raw, "facebook.com")
		if handle == "" {
			return ""
		}
		return "https://facebook.com/" + handle
	}

	return EnsureHTTPS(raw)
}

// NormalizeMusic maps raw input for a free-text music platform to an
// absolute URL, or "" for empty input.
func NormalizeMusic(platform MusicPlatform, value string) string {
	raw := strings.TrimSpace(value)

	if raw == "" {
		return ""
	}

	// All three platforms accept full profile URLs or bare domains; none
	// has a handle template worth reconstructing client-side.
	return EnsureHTTPS(raw)
}
