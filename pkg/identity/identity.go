// Package identity matches parsed residents against existing ones by natural key.
//
// Matching is exact and first-wins: phone, then lower(name)|phone. There is no
// scoring or fuzzy matching, so an uncertain match becomes a new resident
// rather than a merge of two different people.
package identity

import (
	"strings"

	"github.com/yurifrl/residentledger/pkg/models"
)

type Index struct {
	byPhone map[string]string
	byName  map[string]string
}

func NewIndex(residents []*models.Resident) *Index {
	idx := &Index{
		byPhone: make(map[string]string, len(residents)),
		byName:  make(map[string]string, len(residents)),
	}
	for _, r := range residents {
		idx.Add(r)
	}
	return idx
}

// Add registers a resident. Keys already taken keep their first owner.
func (i *Index) Add(r *models.Resident) {
	if phone := strings.TrimSpace(r.Phone); phone != "" {
		if _, ok := i.byPhone[phone]; !ok {
			i.byPhone[phone] = r.ID
		}
	}
	if key := r.NameKey(); key != "|" {
		if _, ok := i.byName[key]; !ok {
			i.byName[key] = r.ID
		}
	}
}

// Resolve returns the existing resident id for name/phone, or false when the
// resident should be created.
func (i *Index) Resolve(name, phone string) (string, bool) {
	if phone = strings.TrimSpace(phone); phone != "" {
		if id, ok := i.byPhone[phone]; ok {
			return id, true
		}
	}
	id, ok := i.byName[models.NameKey(name, phone)]
	return id, ok
}

func (i *Index) Len() int {
	return len(i.byName)
}
