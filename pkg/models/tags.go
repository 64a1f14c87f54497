package models

import (
	"hash/fnv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DefaultColorPalette provides a curated set of colors for tag chips
var DefaultColorPalette = []string{
	"#e74c3c", // red
	"#3498db", // blue
	"#2ecc71", // green
	"#f39c12", // orange
	"#9b59b6", // purple
	"#1abc9c", // turquoise
	"#34495e", // dark gray
	"#e67e22", // dark orange
	"#16a085", // dark turquoise
	"#8e44ad", // dark purple
	"#d35400", // pumpkin
	"#27ae60", // nephritis
	"#2980b9", // belize hole
	"#c0392b", // pomegranate
}

// GetTagColor returns a stable chip color for a tag, derived from its text
func GetTagColor(tag string) string {
	h := fnv.New32a()
	h.Write([]byte(tag))
	return DefaultColorPalette[int(h.Sum32()%uint32(len(DefaultColorPalette)))]
}

// NormalizeCategoryID derives an identifier from a display name.
// Full-width forms are folded with NFKC so "ＷＥＢ" and "web" collide.
func NormalizeCategoryID(name string) string {
	normalized := strings.ToLower(strings.TrimSpace(norm.NFKC.String(name)))
	return strings.Join(strings.Fields(normalized), "-")
}

// ParseTagLines splits newline separated text into trimmed, non-empty tags.
// Duplicates are kept.
func ParseTagLines(raw string) []string {
	tags := []string{}
	for _, line := range strings.Split(raw, "\n") {
		if tag := strings.TrimSpace(line); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// JoinTagLines is the inverse of ParseTagLines for editing
func JoinTagLines(tags []string) string {
	return strings.Join(tags, "\n")
}

// SplitTags tokenizes preview text on the delimiter's separator. Tokens are
// trimmed and blanks dropped, but duplicates are kept.
func SplitTags(text string, d Delimiter) []string {
	tags := []string{}
	text = strings.TrimSpace(text)
	if text == "" {
		return tags
	}
	for _, token := range strings.Split(text, d.OrDefault().Separator()) {
		if tag := strings.TrimSpace(token); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
