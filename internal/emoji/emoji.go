package emoji

// emojiMap holds emoji and plain-text fallbacks for comparison output.
var emojiMap = map[string][2]string{
	// [emoji, fallback]
	"error":      {"❌", "[ERR]"},
	"warning":    {"⚠️", "[WRN]"},
	"info":       {"ℹ️", "[INF]"},
	"success":    {"✅", "[OK]"},
	"added":      {"➕", "[+]"},
	"deleted":    {"➖", "[-]"},
	"edited":     {"✏️", "[~]"},
	"array":      {"📑", "[[]]"},
	"blue":       {"🔵", "[BLUE]"},
	"green":      {"🟢", "[GREEN]"},
	"regressed":  {"🔴", "[REG]"},
	"improved":   {"🟩", "[IMP]"},
	"statistics": {"📊", "[STATS]"},
	"search":     {"🔍", "[SCAN]"},
	"brain":      {"🧠", "[AI]"},
	"watch":      {"👀", "[WATCH]"},
	"rocket":     {"🚀", "[RUN]"},
}

var emojiDisabled bool

// SetEmojiDisabled sets the global emoji disabled state
func SetEmojiDisabled(disabled bool) {
	emojiDisabled = disabled
}

// IsEmojiDisabled returns the current emoji disabled state
func IsEmojiDisabled() bool {
	return emojiDisabled
}

// GetEmoji returns emoji or fallback based on no-emoji setting
func GetEmoji(key string) string {
	if mapping, exists := emojiMap[key]; exists {
		if emojiDisabled {
			return mapping[1]
		}
		return mapping[0]
	}
	return "[?]"
}
