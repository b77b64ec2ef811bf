package vmlang

import "strings"

// Parse splits source into Commands, one per non-blank, non-comment line.
// stem tags each command with its file of origin, since static segment
// references resolve per-file ("<stem>.<index>").
func Parse(stem string, source string) ([]Command, error) {
	var commands []Command
	lineNo := 0
	for _, raw := range strings.Split(source, "\n") {
		lineNo++
		text := stripComment(raw)
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		cmd, err := ParseCommand(stem, lineNo, text)
		if err != nil {
			return nil, err
		}
		commands = append(commands, cmd)
	}
	return commands, nil
}

// stripComment removes a trailing "// ..." comment, if present. VM source
// has no block-comment form, so a naive first-occurrence scan is exact.
func stripComment(line string) string {
	if i := strings.Index(line, "//"); i >= 0 {
		return line[:i]
	}
	return line
}
