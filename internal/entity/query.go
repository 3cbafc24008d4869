package entity

import "sort"

// Query returns the IDs of entities present in every given column, in
// ascending order. Intersection starts from the smallest column.
func Query(cols ...Queryable) []ID {
	if len(cols) == 0 {
		return nil
	}

	sorted := make([]Queryable, len(cols))
	copy(sorted, cols)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Len() < sorted[j].Len()
	})

	candidates := sorted[0].IDs()
	result := candidates[:0]
	for _, id := range candidates {
		matched := true
		for _, c := range sorted[1:] {
			if !c.Has(id) {
				matched = false
				break
			}
		}
		if matched {
			result = append(result, id)
		}
	}
	return result
}
