package table

import (
	"sort"
	"strings"

	"github.com/s0up4200/petpy/petfinder"
)

// linkColumn derives a plain id column from a HAL link column.
type linkColumn struct {
	link   string
	column string
	prefix string
}

var animalLinks = []linkColumn{
	{link: "_links.self.href", column: "animal_id", prefix: "/v2/animals/"},
	{link: "_links.type.href", column: "animal_type", prefix: "/v2/types/"},
	{link: "_links.organization.href", column: "organization_id", prefix: "/v2/organizations/"},
}

var organizationLinks = []linkColumn{
	{link: "_links.self.href", column: "organization_id", prefix: "/v2/organizations/"},
}

func (t *Table) applyLinks(links []linkColumn) {
	for _, l := range links {
		prefix := l.prefix
		t.Map(l.link, func(v any) any {
			s, ok := v.(string)
			if !ok {
				return v
			}
			return strings.TrimPrefix(s, prefix)
		})
		t.Rename(l.link, l.column)
	}
}

// Animals flattens animal records. Link columns become animal_id,
// animal_type and organization_id.
func Animals(animals []petfinder.Animal) (*Table, error) {
	t, err := FromRecords(animals)
	if err != nil {
		return nil, err
	}
	t.applyLinks(animalLinks)
	return t, nil
}

// Organizations flattens organization records. The self link becomes
// organization_id and the animals link is dropped.
func Organizations(orgs []petfinder.Organization) (*Table, error) {
	t, err := FromRecords(orgs)
	if err != nil {
		return nil, err
	}
	t.Drop("_links.animals.href")
	t.applyLinks(organizationLinks)
	return t, nil
}

// AnimalTypes flattens animal type records.
func AnimalTypes(types []petfinder.AnimalType) (*Table, error) {
	return FromRecords(types)
}

// Breeds lists breeds as name and animal_type columns, ordered by type and
// then by the order the API returned them in.
func Breeds(breeds map[string][]petfinder.Breed) *Table {
	t := New("name", "animal_type")

	for _, animalType := range sortedKeys(breeds) {
		for _, b := range breeds[animalType] {
			name := animalType
			if href := b.Links.Type.Href; href != "" {
				name = strings.TrimPrefix(href, "/v2/types/")
			}
			t.Rows = append(t.Rows, Row{
				"name":        b.Name,
				"animal_type": capitalize(name),
			})
		}
	}
	return t
}

// BreedNames is the name-only form of Breeds, one column per type.
func BreedNames(names map[string][]string) *Table {
	types := make([]string, 0, len(names))
	for t := range names {
		types = append(types, t)
	}
	sort.Strings(types)

	t := New("animal_type", "breeds")
	for _, animalType := range types {
		t.Rows = append(t.Rows, Row{
			"animal_type": capitalize(animalType),
			"breeds":      anySlice(names[animalType]),
		})
	}
	return t
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

func anySlice(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}
