package engine

import (
	"fmt"
	"strings"

	"github.com/daryltucker/ei-reports/internal/model"
	"github.com/daryltucker/ei-reports/internal/output"
)

// Identities derives a unique, file-name-safe identity for every record, in
// dataset order. The Name column is used when present and non-blank, otherwise
// "Person_<n>". Later duplicates get "_2", "_3", ... appended.
func Identities(ds *model.Dataset) []string {
	out := make([]string, len(ds.Records))
	seen := make(map[string]int, len(ds.Records))
	for i, rec := range ds.Records {
		base := sanitize(rec.Text(model.ColName))
		if base == "" {
			base = fmt.Sprintf("Person_%d", rec.Index+1)
		}
		id := base
		for n := seen[strings.ToLower(base)]; n > 0; n++ {
			id = fmt.Sprintf("%s_%d", base, n+1)
			if seen[strings.ToLower(id)] == 0 {
				output.Logger.Warn("Duplicate identity renamed", "identity", base, "renamed", id, "row", rec.Index+1)
				break
			}
		}
		seen[strings.ToLower(base)]++
		if id != base {
			seen[strings.ToLower(id)]++
		}
		out[i] = id
	}
	return out
}

// sanitize makes s usable as a file name component.
func sanitize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		if r < 0x20 {
			return -1
		}
		return r
	}, s)
	return strings.Trim(s, ". ")
}
