package scanner

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadTargets reads one URL per line from path. Blank lines and lines
// starting with '#' are skipped.
func LoadTargets(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open target list %q: %w", path, err)
	}
	defer file.Close()

	var targets []string
	sc := bufio.NewScanner(file)
	buf := make([]byte, 0, 64*1024)
	sc.Buffer(buf, 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		targets = append(targets, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("target list read error: %w", err)
	}
	return targets, nil
}

// MergeTargets concatenates the lists and drops exact duplicates, keeping the
// first occurrence.
func MergeTargets(lists ...[]string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, list := range lists {
		for _, t := range list {
			t = strings.TrimSpace(t)
			if t == "" {
				continue
			}
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	return out
}
