package markdown

import "strings"

func blockMarkers(name string) (string, string) {
	return "<!-- mealtrack:" + name + ":start -->", "<!-- mealtrack:" + name + ":end -->"
}

// SetBlock replaces the named managed block in body, appending it when the
// body has none. Text outside the markers is left untouched.
func SetBlock(body, name, content string) string {
	start, end := blockMarkers(name)
	block := start + "\n" + strings.TrimRight(content, "\n") + "\n" + end

	i := strings.Index(body, start)
	j := strings.Index(body, end)
	if i >= 0 && j > i {
		return body[:i] + block + body[j+len(end):]
	}
	switch {
	case strings.TrimSpace(body) == "":
		return block + "\n"
	case strings.HasSuffix(body, "\n"):
		return body + "\n" + block + "\n"
	default:
		return body + "\n\n" + block + "\n"
	}
}
