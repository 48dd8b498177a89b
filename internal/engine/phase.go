package engine

import (
	"strings"

	"github.com/dom/hero-companion/internal/domain"
)

var (
	earlyServerMarkers = []string{"new", "1-30", "1-60"}
	midServerMarkers   = []string{"60", "80", "mid"}
	lateServerMarkers  = []string{"100", "late", "+"}
)

// ClassifyServerPhase guesses the server age from a free-text server group label.
// Early markers are checked first so "1-60" is Early, not Mid.
func ClassifyServerPhase(serverGroup string) domain.ServerPhase {
	label := strings.ToLower(serverGroup)
	switch {
	case containsAny(label, earlyServerMarkers):
		return domain.ServerPhaseEarly
	case containsAny(label, midServerMarkers):
		return domain.ServerPhaseMid
	case containsAny(label, lateServerMarkers):
		return domain.ServerPhaseLate
	default:
		return domain.ServerPhaseMid
	}
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
