package shared

import "strings"

// CenterContent renders content vertically centered in the available height.
func CenterContent(content string, height int) string {
	content = strings.TrimRight(content, "\n")

	var contentLines []string
	if content != "" {
		contentLines = strings.Split(content, "\n")
	}

	if len(contentLines) >= height {
		return content
	}

	topPad := (height - len(contentLines)) / 2

	lines := make([]string, 0, height)
	for i := 0; i < topPad; i++ {
		lines = append(lines, "")
	}
	lines = append(lines, contentLines...)
	for len(lines) < height {
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}
