package recommend

import "sort"

// Candidates unions the articles touched by the neighbors and removes those the target
// has already touched. The result is sorted ascending; its order carries no rank.
func (m *Matrix) Candidates(target int64, neighbors []Neighbor) []int64 {
	seen := make(map[int]struct{})
	if row, ok := m.row(target); ok {
		for c, v := range row {
			if v > 0 {
				seen[c] = struct{}{}
			}
		}
	}

	union := make(map[int]struct{})
	for _, n := range neighbors {
		row, ok := m.row(n.ReaderID)
		if !ok {
			continue
		}
		for c, v := range row {
			if v <= 0 {
				continue
			}
			if _, dup := seen[c]; dup {
				continue
			}
			union[c] = struct{}{}
		}
	}

	ids := make([]int64, 0, len(union))
	for c := range union {
		ids = append(ids, m.articles[c])
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
