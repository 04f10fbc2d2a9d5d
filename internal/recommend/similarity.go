package recommend

import (
	"math"
	"sort"
)

// Neighbor is another reader ranked by similarity to the target.
type Neighbor struct {
	ReaderID int64
	Score    float64
}

// Cosine returns dot(a, b) / (|a| * |b|), or zero when either vector is empty.
func Cosine(a, b map[int]float64) float64 {
	small, large := a, b
	if len(large) < len(small) {
		small, large = large, small
	}

	var dot float64
	for k, v := range small {
		dot += v * large[k]
	}

	normA, normB := norm(a), norm(b)
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (normA * normB)
}

func norm(v map[int]float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Neighbors ranks every other reader by cosine similarity to target and keeps the top k.
// Readers with a score of zero or less are dropped. Ties break on reader id ascending.
// A target without a row, or a matrix with fewer than two readers, yields no neighbors.
func (m *Matrix) Neighbors(target int64, k int) []Neighbor {
	if k <= 0 || m.Len() < 2 {
		return nil
	}
	targetRow, ok := m.row(target)
	if !ok {
		return nil
	}

	neighbors := make([]Neighbor, 0, m.Len()-1)
	for i, readerID := range m.readers {
		if readerID == target {
			continue
		}
		score := Cosine(targetRow, m.rows[i])
		if score <= 0 {
			continue
		}
		neighbors = append(neighbors, Neighbor{ReaderID: readerID, Score: score})
	}

	sort.Slice(neighbors, func(i, j int) bool {
		if neighbors[i].Score != neighbors[j].Score {
			return neighbors[i].Score > neighbors[j].Score
		}
		return neighbors[i].ReaderID < neighbors[j].ReaderID
	})

	if len(neighbors) > k {
		neighbors = neighbors[:k]
	}
	return neighbors
}
