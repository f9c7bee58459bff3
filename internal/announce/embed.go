// Package announce builds branded embeds and posts announcements.
package announce

import (
	"strconv"
	"strings"
	"time"

	"github.com/rustytiger/tigerbot/internal/config"
	"github.com/rustytiger/tigerbot/internal/platform"
)

// colorMap holds the named colors accepted everywhere a color is configured.
var colorMap = map[string]int{
	"orange":       0xD97706,
	"burnt_orange": 0xCC5500,
	"black":        0x111111,
	"gray":         0x4B5563,
	"red":          0xEF4444,
	"green":        0x10B981,
	"blue":         0x3B82F6,
	"purple":       0x8B5CF6,
	"gold":         0xF59E0B,
}

// ParseColor resolves a color name or hex string ("#D97706" or "D97706") to
// an RGB value. Empty input falls back to the brand color, garbage falls back
// to orange.
func ParseColor(value string, brand config.BrandConfig) int {
	if value == "" {
		if brand.Color != "" {
			return ParseColor(brand.Color, config.BrandConfig{})
		}
		return colorMap["orange"]
	}
	v := strings.ToLower(strings.TrimSpace(value))
	if c, ok := colorMap[v]; ok {
		return c
	}
	v = strings.TrimPrefix(v, "#")
	parsed, err := strconv.ParseInt(v, 16, 64)
	if err != nil {
		return colorMap["orange"]
	}
	return int(parsed) & 0xFFFFFF
}

// NormalizeMultiline expands the literal escapes users type into slash
// command options into real newlines and tabs.
func NormalizeMultiline(s string) string {
	s = strings.ReplaceAll(s, `\r\n`, "\n")
	s = strings.ReplaceAll(s, `\n`, "\n")
	s = strings.ReplaceAll(s, `\t`, "\t")
	return s
}

// EmbedOptions carries the optional fields of a branded embed. Zero values
// fall back to the brand config.
type EmbedOptions struct {
	Title      string
	Color      string
	URL        string
	Thumbnail  string
	Image      string
	Footer     string
	AuthorName string
	AuthorIcon string
}

// BrandEmbed builds a styled announcement embed from text and options,
// filling author, footer, and color from the brand config where no override
// is given.
func BrandEmbed(text string, opts EmbedOptions, brand config.BrandConfig) *platform.Embed {
	title := opts.Title
	if title == "" {
		title = "📣 Announcement"
	}

	emb := &platform.Embed{
		Title:       title,
		Description: text,
		URL:         opts.URL,
		Color:       ParseColor(opts.Color, brand),
		Timestamp:   time.Now().UTC(),
	}

	authorName := opts.AuthorName
	if authorName == "" {
		authorName = brand.Name
	}
	authorIcon := opts.AuthorIcon
	if authorIcon == "" {
		authorIcon = brand.AuthorIcon
	}
	if authorName != "" {
		emb.AuthorName = authorName
		emb.AuthorIcon = authorIcon
	}

	if opts.Thumbnail != "" {
		emb.ThumbnailURL = opts.Thumbnail
	}
	if opts.Image != "" {
		emb.ImageURL = opts.Image
	}

	footer := opts.Footer
	if footer == "" {
		footer = brand.FooterText
	}
	emb.FooterText = footer

	return emb
}
