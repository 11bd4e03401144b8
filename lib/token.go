package lib

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// GenerateObjectKey builds a unique storage key for an uploaded image, e.g.
// articles/6f1c.../a81d...-front-panel.jpg. The filename part is sanitized so
// keys stay URL- and policy-safe.
func GenerateObjectKey(prefix string, ownerID uuid.UUID, filename string) string {
	name := strings.ToLower(filename)
	name = strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '.' || r == '-' {
			return r
		}
		return '-'
	}, name)

	return fmt.Sprintf("%s/%s/%s-%s", prefix, ownerID, uuid.New(), name)
}
