// Package worklist loads the batch input: a text file of video URLs, one per
// line, with blank lines and #-comments skipped.
package worklist

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Load reads URLs from path in input order. Surrounding whitespace is
// trimmed; empty lines and lines starting with '#' are ignored. Duplicate
// handling is left to the batch engine.
func Load(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input file: %w", err)
	}
	defer file.Close()

	var urls []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input file: %w", err)
	}
	return urls, nil
}
