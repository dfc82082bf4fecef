package herbarium

import (
	"net/url"
	"path"
	"regexp"
	"strings"
)

// sizeSuffixRe matches CMS-generated image size variants like "-300" or
// "-1024" appended to a base filename.
var sizeSuffixRe = regexp.MustCompile(`-\d+$`)

// Slugify normalizes s into a stable entity slug: lowercase, with any run
// of characters outside [a-z0-9-] collapsed to a single hyphen and
// leading/trailing hyphens trimmed. Applying Slugify to its own output is a
// no-op.
func Slugify(s string) string {
	var sb strings.Builder
	prevHyphen := false

	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			sb.WriteRune(r)
			prevHyphen = false
		default:
			if !prevHyphen && sb.Len() > 0 {
				sb.WriteRune('-')
				prevHyphen = true
			}
		}
	}

	return strings.TrimSuffix(sb.String(), "-")
}

// SlugFromImageURL derives an entity slug from a product image URL. The
// image filename is taken as the identity anchor because the source site
// reuses the same image asset across locale pages. The filename's extension
// and any trailing "-<digits>" size-variant suffix are stripped before
// slugifying. Returns "" when no filename can be extracted.
func SlugFromImageURL(rawURL string) string {
	if rawURL == "" {
		return ""
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	base := path.Base(u.Path)
	if base == "." || base == "/" {
		return ""
	}

	base = strings.TrimSuffix(base, path.Ext(base))
	base = sizeSuffixRe.ReplaceAllString(base, "")

	return Slugify(base)
}
