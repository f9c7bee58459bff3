package announce

import (
	"encoding/json"
	"strings"

	"github.com/rustytiger/tigerbot/internal/config"
	"github.com/rustytiger/tigerbot/internal/platform"
)

// maxButtons is the platform limit for one action row.
const maxButtons = 5

// ParseLinkButtons parses a user-supplied JSON array of {"label","url"}
// objects into link buttons. Invalid JSON, a non-array, or an empty input
// falls back to the brand's default buttons. Entries beyond the row limit or
// without an http(s) URL are dropped.
func ParseLinkButtons(buttonsJSON string, brand config.BrandConfig) []platform.LinkButton {
	var raw []config.LinkButton
	if buttonsJSON != "" {
		if err := json.Unmarshal([]byte(buttonsJSON), &raw); err != nil {
			raw = nil
		}
	}
	if len(raw) == 0 {
		raw = brand.DefaultButtons
	}

	var buttons []platform.LinkButton
	for _, b := range raw {
		if len(buttons) == maxButtons {
			break
		}
		if !strings.HasPrefix(b.URL, "http://") && !strings.HasPrefix(b.URL, "https://") {
			continue
		}
		label := b.Label
		if label == "" {
			label = "Open"
		}
		buttons = append(buttons, platform.LinkButton{Label: label, URL: b.URL})
	}
	return buttons
}
