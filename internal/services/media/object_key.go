package media

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"path"
	"strings"
	"time"
)

// BuildObjectKey derives a collision-free object name from the submitter's
// name: "<prefix>/<sanitized-name>_<utc-stamp>_<random>.<ext>". Names carry
// arbitrary unicode, so anything outside [a-z0-9-] is squashed.
func BuildObjectKey(prefix, submitterName, fileName string) (string, error) {
	rnd := make([]byte, 8)
	if _, err := rand.Read(rnd); err != nil {
		return "", err
	}

	ext := strings.ToLower(path.Ext(strings.TrimSpace(fileName)))
	if ext == "" {
		ext = ".bin"
	}

	slug := sanitizeName(submitterName)
	stamp := time.Now().UTC().Format("20060102T150405")

	return fmt.Sprintf("%s/%s_%s_%s%s", strings.Trim(prefix, "/"), slug, stamp, hex.EncodeToString(rnd), ext), nil
}

func sanitizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteByte('-')
		}
	}

	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		slug = "anonymous"
	}
	if len(slug) > 40 {
		slug = slug[:40]
	}
	return slug
}
