package format

import (
	"fmt"
	"html"
)

// EscapeHTML escapes text for Telegram's HTML parse mode.
func EscapeHTML(text string) string {
	return html.EscapeString(text)
}

// Bold wraps escaped text in <b> tags.
func Bold(text string) string {
	return fmt.Sprintf("<b>%s</b>", EscapeHTML(text))
}

// Italic wraps escaped text in <i> tags.
func Italic(text string) string {
	return fmt.Sprintf("<i>%s</i>", EscapeHTML(text))
}

// HashTags renders tags as a space-separated #tag list.
func HashTags(tags []string) string {
	out := ""
	for i, tag := range tags {
		if i > 0 {
			out += "  "
		}
		out += "#" + EscapeHTML(tag)
	}
	return out
}
