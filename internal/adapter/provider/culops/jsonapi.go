package culops

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Resource types and relationship names used by the culops API.
const (
	TypeRecipe                          = "recipes"
	TypeIngredient                      = "ingredients"
	TypeCulinaryIngredientSpecification = "culinary-ingredient-specifications"
	TypeCulinaryIngredient              = "culinary-ingredients"

	relIngredients                     = "ingredients"
	relCulinaryIngredientSpecification = "culinary-ingredient-specification"
	relCulinaryIngredient              = "culinary-ingredient"
)

// Document is a JSON:API top-level document. Data is nil when the "data"
// member is absent or null.
type Document struct {
	Data     []Resource `json:"data"`
	Included []Resource `json:"included,omitempty"`
	Links    *Links     `json:"links,omitempty"`
}

// Links holds pagination links.
type Links struct {
	Next string `json:"next,omitempty"`
}

// Resource is a JSON:API resource object. Attributes stay raw so each
// resource type decodes its own attribute set.
type Resource struct {
	ID            string                  `json:"id"`
	Type          string                  `json:"type"`
	Attributes    json.RawMessage         `json:"attributes,omitempty"`
	Relationships map[string]Relationship `json:"relationships,omitempty"`
}

// Identifier is a resource linkage.
type Identifier struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// Relationship holds a linkage that may be absent, null, one identifier or
// a list of identifiers.
type Relationship struct {
	Data json.RawMessage `json:"data,omitempty"`
}

func (r Relationship) empty() bool {
	d := bytes.TrimSpace(r.Data)
	return len(d) == 0 || bytes.Equal(d, []byte("null"))
}

// One returns a to-one linkage; ok is false when data is absent or null.
func (r Relationship) One() (Identifier, bool, error) {
	if r.empty() {
		return Identifier{}, false, nil
	}
	var id Identifier
	if err := json.Unmarshal(r.Data, &id); err != nil {
		return Identifier{}, false, fmt.Errorf("decode to-one linkage: %w", err)
	}
	return id, true, nil
}

// Many returns a to-many linkage; absent or null data yields no identifiers.
func (r Relationship) Many() ([]Identifier, error) {
	if r.empty() {
		return nil, nil
	}
	var ids []Identifier
	if err := json.Unmarshal(r.Data, &ids); err != nil {
		return nil, fmt.Errorf("decode to-many linkage: %w", err)
	}
	return ids, nil
}

// UnmarshalJSON keeps Data nil for both a missing and a null "data" member.
func (d *Document) UnmarshalJSON(b []byte) error {
	type plain Document
	var raw struct {
		plain
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*d = Document(raw.plain)
	d.Data = nil

	data := bytes.TrimSpace(raw.Data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '{' {
		var one Resource
		if err := json.Unmarshal(data, &one); err != nil {
			return fmt.Errorf("decode data: %w", err)
		}
		d.Data = []Resource{one}
		return nil
	}
	d.Data = []Resource{}
	if err := json.Unmarshal(data, &d.Data); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}

type resourceKey struct{ typ, id string }

// index maps (type, id) to included resources. The first occurrence wins.
type index map[resourceKey]*Resource

func newIndex(resources []Resource) index {
	idx := make(index, len(resources))
	for i := range resources {
		k := resourceKey{resources[i].Type, resources[i].ID}
		if _, ok := idx[k]; !ok {
			idx[k] = &resources[i]
		}
	}
	return idx
}

func (idx index) lookup(id Identifier) (*Resource, bool) {
	r, ok := idx[resourceKey{id.Type, id.ID}]
	return r, ok
}

// merge appends next's data and the included resources not yet present.
func (d *Document) merge(next *Document) {
	if d.Data == nil {
		d.Data = []Resource{}
	}
	d.Data = append(d.Data, next.Data...)

	seen := make(map[resourceKey]struct{}, len(d.Included))
	for _, r := range d.Included {
		seen[resourceKey{r.Type, r.ID}] = struct{}{}
	}
	for _, r := range next.Included {
		k := resourceKey{r.Type, r.ID}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		d.Included = append(d.Included, r)
	}
}
