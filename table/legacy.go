package table

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoRecords is returned when a shelter search matched nothing.
var ErrNoRecords = errors.New("no records matching criteria found")

// Legacy flattens a decoded v1 response of the given method.
func Legacy(method string, body map[string]any) (*Table, error) {
	root, _ := body["petfinder"].(map[string]any)

	switch method {
	case "pet.get", "pet.getRandom":
		return petTable(listOf(root["pet"])), nil
	case "pet.find", "shelter.getPets":
		pets, _ := root["pets"].(map[string]any)
		return petTable(listOf(pets["pet"])), nil
	case "shelter.find", "shelter.listByBreed":
		shelters, _ := root["shelters"].(map[string]any)
		records := listOf(shelters["shelter"])
		if len(records) == 0 {
			return nil, fmt.Errorf("%s: %w", method, ErrNoRecords)
		}
		return shelterTable(records), nil
	case "shelter.get":
		records := listOf(root["shelter"])
		if len(records) == 0 {
			t := New("shelterId")
			t.Rows = append(t.Rows, Row{"shelterId": "shelter opt-out"})
			return t, nil
		}
		return shelterTable(records), nil
	case "breed.list":
		return breedListTable(root), nil
	default:
		return nil, fmt.Errorf("unknown API method %q", method)
	}
}

// listOf normalizes a v1 record field, which holds an object when there is a
// single record and an array otherwise.
func listOf(v any) []map[string]any {
	switch v := v.(type) {
	case map[string]any:
		if len(v) == 0 {
			return nil
		}
		return []map[string]any{v}
	case []any:
		out := make([]map[string]any, 0, len(v))
		for _, elem := range v {
			if m, ok := elem.(map[string]any); ok {
				out = append(out, m)
			}
		}
		return out
	default:
		return nil
	}
}

// texts unwraps a list of {"$t": value} objects.
func texts(v any) []any {
	records := listOf(v)
	out := make([]any, 0, len(records))
	for _, r := range records {
		out = append(out, r["$t"])
	}
	return out
}

func lookup(m map[string]any, path ...string) any {
	var cur any = m
	for _, p := range path {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = obj[p]
	}
	return cur
}

func legacyColumn(name string) string {
	name = strings.ReplaceAll(name, ".$t", "")
	name = strings.ReplaceAll(name, "contact.", "")
	return name
}

func dropLegacyColumn(name string) bool {
	return strings.Contains(name, "options") ||
		strings.HasPrefix(name, "breeds.") ||
		strings.HasPrefix(name, "media.")
}

// legacyRow flattens a record, renames its columns and returns the row with
// its column order.
func legacyRow(record map[string]any) (Row, []string) {
	flat := Row{}
	var keys []string
	flattenMap("", record, flat, &keys)

	row := make(Row, len(flat))
	order := make([]string, 0, len(keys))
	for _, k := range keys {
		if dropLegacyColumn(k) {
			continue
		}
		name := legacyColumn(k)
		if _, dup := row[name]; !dup {
			order = append(order, name)
		}
		row[name] = flat[k]
	}
	return row, order
}

func expand(row Row, order []string, prefix string, values []any) []string {
	for i, v := range values {
		col := fmt.Sprintf("%s%d", prefix, i)
		row[col] = v
		order = append(order, col)
	}
	return order
}

func petTable(pets []map[string]any) *Table {
	t := New()
	for _, pet := range pets {
		row, order := legacyRow(pet)
		order = expand(row, order, "breed", texts(lookup(pet, "breeds", "breed")))
		order = expand(row, order, "option", texts(lookup(pet, "options", "option")))
		order = expand(row, order, "photos", texts(lookup(pet, "media", "photos", "photo")))
		t.Append(row, order...)
	}
	return t
}

func shelterTable(shelters []map[string]any) *Table {
	t := New()
	for _, s := range shelters {
		row, order := legacyRow(s)
		t.Append(row, order...)
	}
	return t
}

func breedListTable(root map[string]any) *Table {
	breeds, _ := root["breeds"].(map[string]any)
	animal, _ := breeds["@animal"].(string)

	t := New("breed", "animal")
	for _, b := range texts(breeds["breed"]) {
		t.Rows = append(t.Rows, Row{"breed": b, "animal": animal})
	}
	return t
}
