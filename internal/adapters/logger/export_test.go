package logger

import "strings"

// Exported for black-box tests.
var CollectErrorEntries = collectErrorEntries

// ChainText renders entries the way the pretty handler lays them out, without colour.
func ChainText(entries []ErrorEntry) string {
	lines := chainLines(entries)
	texts := make([]string, len(lines))
	for i, line := range lines {
		texts[i] = line.text
	}
	return strings.Join(texts, "\n")
}
