package main

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

var commandNames = []string{"info", "find", "path", "bench", "watch", "help"}

// suggestCommand returns the known command closest to name, or "" when
// nothing is close enough to be a plausible typo.
func suggestCommand(name string) string {
	name = strings.ToLower(strings.TrimLeft(name, "-"))
	if name == "" {
		return ""
	}

	best := ""
	bestDist := -1
	for _, cand := range commandNames {
		dist := levenshtein.ComputeDistance(name, cand)
		if dist > typoLimit(len(cand)) {
			continue
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = cand, dist
		}
	}
	return best
}

func typoLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
