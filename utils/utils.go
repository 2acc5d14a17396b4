package utils

import (
	"fmt"
	"net/http"
	"strings"
)

// FormatBytes converts a body length to a human readable string.
// Negative lengths mean the size is unknown.
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < 0 {
		return "unknown"
	}
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// ParseHeaderLine splits a "Name: value" line as given on the command line.
func ParseHeaderLine(line string) (string, string, error) {
	parts := strings.SplitN(line, ":", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid header format: %s", line)
	}
	name := strings.TrimSpace(parts[0])
	if name == "" {
		return "", "", fmt.Errorf("empty header name: %s", line)
	}
	return name, strings.TrimSpace(parts[1]), nil
}

// ParseHeaderLines collects header lines into an http.Header.
// Repeated names keep every value in the order given.
func ParseHeaderLines(lines []string) (http.Header, error) {
	header := make(http.Header, len(lines))
	for _, line := range lines {
		name, value, err := ParseHeaderLine(line)
		if err != nil {
			return nil, err
		}
		header.Add(name, value)
	}
	return header, nil
}
