package ledger

import "strings"

// Slug builds the URL identifier for a project: its ledger id followed
// by the lowercased, hyphen-joined title words.
func Slug(p Project) string {
	words := strings.Fields(p.Title)
	for i, w := range words {
		words[i] = strings.ToLower(strings.TrimSpace(w))
	}
	if len(words) == 0 {
		return p.ID
	}
	return p.ID + "-" + strings.Join(words, "-")
}

// CanonicalID strips the title suffix from a slug, leaving the ledger
// id the contract understands.
func CanonicalID(slugOrID string) string {
	id, _, _ := strings.Cut(slugOrID, "-")
	return id
}
