package storage

import "strings"

// sentinel tags text payloads before storage. The store keeps no
// metadata channel, so the prefix is the only way retrieval can tell
// uploaded text from binary content.
const sentinel = "$START$"

// EncodeText prepends the sentinel marker to text for storage.
func EncodeText(text string) []byte {
	return []byte(sentinel + text)
}

// DecodeText strips the sentinel marker from a retrieved payload. The
// second return is false when the payload is not sentinel-tagged text;
// the payload is never truncated in that case.
func DecodeText(data []byte) (string, bool) {
	text, ok := strings.CutPrefix(string(data), sentinel)
	if !ok {
		return "", false
	}
	return text, true
}
