package parser

import (
	"bufio"
	"io"
	"strings"
)

// ParseIDs reads student ids, one per line or comma separated.
// Text after '#' is a comment. Order and duplicates are preserved.
func ParseIDs(r io.Reader) ([]string, error) {
	var ids []string
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		for _, field := range strings.Split(line, ",") {
			if id := strings.TrimSpace(field); id != "" {
				ids = append(ids, id)
			}
		}
	}

	return ids, scanner.Err()
}
