package links

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skatuve/skatuve-client/internal/profile"
)

func TestEnsureHTTPS(t *testing.T) {
	assert.Equal(t, "", EnsureHTTPS(""))
	assert.Equal(t, "", EnsureHTTPS("   "))
	assert.Equal(t, "https://example.com", EnsureHTTPS("example.com"))
	assert.Equal(t, "https://www.example.com", EnsureHTTPS("www.example.com"))
	assert.Equal(t, "http://example.com", EnsureHTTPS("http://example.com"))
	assert.Equal(t, "https://example.com", EnsureHTTPS("https://example.com"))
	assert.Equal(t, "https://example.com", EnsureHTTPS("  example.com  "))
}

func TestNormalizeSocial(t *testing.T) {
	t.Run("Instagram", func(t *testing.T) {
		cases := map[string]string{
			"":                             "",
			"   ":                          "",
			"@astro":                       "https://instagram.com/astro",
			"astro":                        "https://instagram.com/astro",
			"@@astro":                      "https://instagram.com/astro",
			"instagram.com/astro":          "https://instagram.com/astro",
			"Instagram.com/astro":          "https://Instagram.com/astro",
			"www.instagram.com/astro":      "https://www.instagram.com/astro",
			"https://instagram.com/astro":  "https://instagram.com/astro",
			"http://instagram.com/astro":   "http://instagram.com/astro",
			"@@@":                          "",
		}
		for in, want := range cases {
			assert.Equal(t, want, NormalizeSocial(SocialInstagram, in), "input %q", in)
		}
	})

	t.Run("TikTok handle keeps the at-sign template", func(t *testing.T) {
		assert.Equal(t, "https://tiktok.com/@astro", NormalizeSocial(SocialTikTok, "@astro"))
		assert.Equal(t, "https://tiktok.com/@astro", NormalizeSocial(SocialTikTok, "astro"))
		// A pasted domain form passes through the https rule without the
		// handle template being re-applied.
		assert.Equal(t, "https://tiktok.com/astro", NormalizeSocial(SocialTikTok, "tiktok.com/astro"))
		assert.Equal(t, "https://tiktok.com/@astro", NormalizeSocial(SocialTikTok, "https://tiktok.com/@astro"))
	})

	t.Run("Facebook does not strip the at-sign", func(t *testing.T) {
		assert.Equal(t, "https://facebook.com/@astro", NormalizeSocial(SocialFacebook, "@astro"))
		assert.Equal(t, "https://facebook.com/astro", NormalizeSocial(SocialFacebook, "astro"))
		assert.Equal(t, "https://facebook.com/astro", NormalizeSocial(SocialFacebook, "facebook.com/astro"))
	})

	t.Run("Website is a bare domain rule", func(t *testing.T) {
		assert.Equal(t, "https://astro.lv", NormalizeSocial(SocialWebsite, "astro.lv"))
		assert.Equal(t, "https://www.astro.lv", NormalizeSocial(SocialWebsite, "www.astro.lv"))
		assert.Equal(t, "http://astro.lv", NormalizeSocial(SocialWebsite, "http://astro.lv"))
	})
}

func TestNormalizeMusic(t *testing.T) {
	assert.Equal(t, "", NormalizeMusic(MusicYouTube, ""))
	assert.Equal(t, "https://youtube.com/@astro", NormalizeMusic(MusicYouTube, "youtube.com/@astro"))
	assert.Equal(t, "https://soundcloud.com/astro", NormalizeMusic(MusicSoundCloud, "soundcloud.com/astro"))
	assert.Equal(t, "https://astro.bandcamp.com", NormalizeMusic(MusicBandcamp, "astro.bandcamp.com"))
}

// Idempotence is a contract, not an observation: normalize(normalize(x))
// must equal normalize(x) for any input.
func TestNormalizeIdempotence(t *testing.T) {
	inputs := []string{
		"", "   ", "@astro", "astro", "instagram.com/astro", "tiktok.com/astro",
		"www.example.com", "example.com", "https://example.com", "http://example.com",
		"facebook.com/astro", "@@name", "some weird input!", "ASTRO.bandcamp.COM",
	}

	for _, platform := range []SocialPlatform{SocialInstagram, SocialTikTok, SocialFacebook, SocialWebsite} {
		for _, in := range inputs {
			once := NormalizeSocial(platform, in)
			twice := NormalizeSocial(platform, once)
			assert.Equal(t, once, twice, "platform %s input %q", platform, in)
		}
	}

	for _, platform := range []MusicPlatform{MusicYouTube, MusicSoundCloud, MusicBandcamp} {
		for _, in := range inputs {
			once := NormalizeMusic(platform, in)
			twice := NormalizeMusic(platform, once)
			assert.Equal(t, once, twice, "platform %s input %q", platform, in)
		}
	}
}

func TestNormalizeSocialSet(t *testing.T) {
	got := NormalizeSocialSet(profile.SocialLinks{
		Instagram: "@astro",
		TikTok:    "astro",
		Facebook:  "",
		Website:   "astro.lv",
	})
	assert.Equal(t, profile.SocialLinks{
		Instagram: "https://instagram.com/astro",
		TikTok:    "https://tiktok.com/@astro",
		Website:   "https://astro.lv",
	}, got)
}

func TestNormalizeMusicSetKeepsCatalogSelectionsVerbatim(t *testing.T) {
	in := profile.MusicLinks{
		Spotify:           "https://open.spotify.com/artist/123",
		SpotifyArtistID:   "123",
		SpotifyArtistName: "Astro",
		YouTube:           "youtube.com/@astro",
	}
	got := NormalizeMusicSet(in)
	assert.Equal(t, in.Spotify, got.Spotify)
	assert.Equal(t, in.SpotifyArtistID, got.SpotifyArtistID)
	assert.Equal(t, in.SpotifyArtistName, got.SpotifyArtistName)
	assert.Equal(t, "https://youtube.com/@astro", got.YouTube)
}

func TestCountFilled(t *testing.T) {
	assert.Equal(t, 0, CountFilledSocial(profile.SocialLinks{}))
	assert.Equal(t, 2, CountFilledSocial(profile.SocialLinks{Instagram: "x", Website: "y"}))
	assert.Equal(t, 0, CountFilledSocial(profile.SocialLinks{Instagram: "   "}))

	assert.Equal(t, 0, CountFilledMusic(profile.MusicLinks{}))
	assert.Equal(t, 2, CountFilledMusic(profile.MusicLinks{Spotify: "s", Bandcamp: "b"}))
}
