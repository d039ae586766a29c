package root

import (
	"fmt"
	"strings"

	"github.com/nhle/prodowl/internal/theme"
)

const shortIDLen = 8

func shortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}

// resolveID finds the one id that starts with prefix.
func resolveID(kind string, ids []string, prefix string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", fmt.Errorf("%s id is required", kind)
	}
	var match []string
	for _, id := range ids {
		if id == prefix {
			return id, nil
		}
		if strings.HasPrefix(id, prefix) {
			match = append(match, id)
		}
	}
	switch len(match) {
	case 0:
		return "", fmt.Errorf("no %s matches %q", kind, prefix)
	case 1:
		return match[0], nil
	}
	return "", fmt.Errorf("%q matches %d %ss, use more of the id", prefix, len(match), kind)
}

func heading(icon, title string) string {
	return theme.TitleStyle.Render(icon + " " + title)
}

func muted(s string) string { return theme.DimmedStyle.Render(s) }
