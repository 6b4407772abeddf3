package domain

import "sort"

// CategoryInfo is the display metadata of a category.
type CategoryInfo struct {
	Name  string `json:"nome"`
	Color string `json:"cor"`
}

// Categories maps every known category id to its display metadata. It is
// initialized once and never mutated; treat it as read-only.
var Categories = map[string]CategoryInfo{
	"delegacia":        {Name: "Delegacia", Color: "#0066cc"},
	"posto_fronteira":  {Name: "Posto de Fronteira", Color: "#cc0000"},
	"local_ocorrencia": {Name: "Local de Ocorrência", Color: "#ff9900"},
	"posto_avancado":   {Name: "Posto Avançado", Color: "#009933"},
	"outros":           {Name: "Outros", Color: "#666666"},
}

// ValidCategory reports whether id is a known category.
func ValidCategory(id string) bool {
	_, ok := Categories[id]
	return ok
}

// CategoryIDs returns the known category ids in sorted order.
func CategoryIDs() []string {
	ids := make([]string, 0, len(Categories))
	for id := range Categories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
