// Package content post-processes rich project bodies: it neutralizes
// executable markup before render and relocates locally-staged image
// references to their resolved storage paths after upload.
//
// These are bounded-pass text rewrites over semi-structured markup, not
// a full HTML parser. They tolerate arbitrary input; malformed tags are
// skipped best-effort rather than aborting the whole rewrite.
package content

import (
	"regexp"
	"strings"
)

var (
	scriptPattern = regexp.MustCompile(`(?i)<? *script`)
	imagePattern  = regexp.MustCompile(`<img(.*?)/>`)
)

// StagedImage pairs an ephemeral local image reference with the storage
// path it resolved to after upload.
type StagedImage struct {
	LocalRef string
	Path     string
}

// Sanitize textually neutralizes script-opening tag patterns so the
// document can never execute when rendered as markup.
func Sanitize(doc string) string {
	return scriptPattern.ReplaceAllString(doc, "illegalscript")
}

// RelocateImages rewrites image tags whose src matches a pending local
// reference to point at the resolved storage path. Each staged image is
// consumed at most once. Tags whose src cannot be located are skipped.
func RelocateImages(doc string, staged []StagedImage) string {
	if len(staged) == 0 {
		return doc
	}

	pending := make(map[string]string, len(staged))
	for _, img := range staged {
		pending[img.LocalRef] = img.Path
	}

	total := len(imagePattern.FindAllStringIndex(doc, -1))
	offset := 0
	for i := 0; i < total; i++ {
		loc := imagePattern.FindStringIndex(doc[offset:])
		if loc == nil {
			break
		}
		start, end := offset+loc[0], offset+loc[1]
		tag := doc[start:end]

		src, ok := extractSrc(tag)
		if !ok {
			offset = end
			continue
		}

		path, match := pending[src]
		if !match {
			offset = end
			continue
		}

		rewritten := strings.Replace(tag, src, path, 1)
		doc = doc[:start] + rewritten + doc[end:]
		delete(pending, src)
		offset = start + len(rewritten)
	}

	return doc
}

// extractSrc pulls the src attribute value out of an image tag,
// supporting both single- and double-quoted forms.
func extractSrc(tag string) (string, bool) {
	idx := strings.Index(tag, "src")
	if idx < 0 {
		return "", false
	}
	rest := tag[idx:]

	for _, quote := range []string{`'`, `"`} {
		parts := strings.SplitN(rest, quote, 3)
		if len(parts) == 3 {
			return parts[1], true
		}
	}
	return "", false
}
