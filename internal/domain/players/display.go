package players

// NameDisplay controls how a player's name is rendered in sentences and listings.
type NameDisplay string

const (
	DisplayKanji NameDisplay = "kanji"
	DisplayKana  NameDisplay = "kana"
	DisplayBoth  NameDisplay = "both"
)

// DefaultNameDisplay is used when no preference is given.
const DefaultNameDisplay = DisplayKanji

// ParseNameDisplay maps raw input to a NameDisplay. Unknown values yield the default and ok=false.
func ParseNameDisplay(raw string) (NameDisplay, bool) {
	switch NameDisplay(raw) {
	case DisplayKanji, DisplayKana, DisplayBoth:
		return NameDisplay(raw), true
	default:
		return DefaultNameDisplay, false
	}
}

// FormatName renders the player's name for the given display mode.
func FormatName(p Player, display NameDisplay) string {
	switch display {
	case DisplayKana:
		if p.NameKana == "" {
			return p.Name
		}
		return p.NameKana
	case DisplayBoth:
		if p.NameKana == "" {
			return p.Name
		}
		return p.Name + "(" + p.NameKana + ")"
	default:
		return p.Name
	}
}
