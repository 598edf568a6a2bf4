package links

import (
	"strings"

	"github.com/skatuve/skatuve-client/internal/profile"
)

// NormalizeSocialSet normalizes every field of a social link set.
func NormalizeSocialSet(s profile.SocialLinks) profile.SocialLinks {
	return profile.SocialLinks{
		Instagram: NormalizeSocial(SocialInstagram, s.Instagram),
		TikTok:    NormalizeSocial(SocialTikTok, s.TikTok),
		Facebook:  NormalizeSocial(SocialFacebook, s.Facebook),
		Website:   NormalizeSocial(SocialWebsite, s.Website),
	}
}

// NormalizeMusicSet normalizes the free-text music links and carries the
// catalog selections (Spotify, Apple Music) through verbatim.
func NormalizeMusicSet(m profile.MusicLinks) profile.MusicLinks {
	out := m
	out.YouTube = NormalizeMusic(MusicYouTube, m.YouTube)
	out.SoundCloud = NormalizeMusic(MusicSoundCloud, m.SoundCloud)
	out.Bandcamp = NormalizeMusic(MusicBandcamp, m.Bandcamp)
	return out
}

// CountFilledSocial returns how many social links are non-empty after
// trimming. Validators use it for the at-least-one rule.
func CountFilledSocial(s profile.SocialLinks) int {
	c := 0
	for _, v := range []string{s.Instagram, s.TikTok, s.Facebook, s.Website} {
		if strings.TrimSpace(v) != "" {
			c++
		}
	}
	return c
}

// CountFilledMusic counts non-empty music entries across both the catalog
// URLs and the free-text links.
func CountFilledMusic(m profile.MusicLinks) int {
	c := 0
	for _, v := range []string{m.Spotify, m.AppleMusic, m.YouTube, m.SoundCloud, m.Bandcamp} {
		if strings.TrimSpace(v) != "" {
			c++
		}
	}
	return c
}
