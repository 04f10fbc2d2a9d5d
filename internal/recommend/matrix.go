package recommend

import (
	"sort"

	"ArticleRecommender/internal/domain"
)

// Matrix is a sparse reader x article interaction count table.
// Rows and columns hold exactly the readers and articles present in the snapshot
// it was built from, both ordered by id ascending.
type Matrix struct {
	readers    []int64
	articles   []int64
	readerIdx  map[int64]int
	articleIdx map[int64]int
	// rows[r] maps a column index to the interaction count for that cell.
	rows []map[int]float64
}

// BuildMatrix counts interactions per (reader, article) pair.
// Interaction kinds are not weighted; every row counts once.
func BuildMatrix(pairs []domain.Interaction) *Matrix {
	readerSet := make(map[int64]struct{})
	articleSet := make(map[int64]struct{})
	for _, p := range pairs {
		readerSet[p.ReaderID] = struct{}{}
		articleSet[p.ArticleID] = struct{}{}
	}

	m := &Matrix{
		readers:  sortedIDs(readerSet),
		articles: sortedIDs(articleSet),
	}
	m.readerIdx = indexOf(m.readers)
	m.articleIdx = indexOf(m.articles)

	m.rows = make([]map[int]float64, len(m.readers))
	for i := range m.rows {
		m.rows[i] = make(map[int]float64)
	}
	for _, p := range pairs {
		m.rows[m.readerIdx[p.ReaderID]][m.articleIdx[p.ArticleID]]++
	}

	return m
}

// Len returns the number of distinct readers.
func (m *Matrix) Len() int {
	return len(m.readers)
}

// Readers returns the row index order.
func (m *Matrix) Readers() []int64 {
	return append([]int64(nil), m.readers...)
}

// Articles returns the column index order.
func (m *Matrix) Articles() []int64 {
	return append([]int64(nil), m.articles...)
}

// HasReader reports whether the reader has a row.
func (m *Matrix) HasReader(readerID int64) bool {
	_, ok := m.readerIdx[readerID]
	return ok
}

// Count returns the cell value for (reader, article), zero when either is absent.
func (m *Matrix) Count(readerID, articleID int64) int {
	r, ok := m.readerIdx[readerID]
	if !ok {
		return 0
	}
	c, ok := m.articleIdx[articleID]
	if !ok {
		return 0
	}
	return int(m.rows[r][c])
}

// Touched returns the articles with a positive count for the reader, ascending.
func (m *Matrix) Touched(readerID int64) []int64 {
	r, ok := m.readerIdx[readerID]
	if !ok {
		return nil
	}
	ids := make([]int64, 0, len(m.rows[r]))
	for c, v := range m.rows[r] {
		if v > 0 {
			ids = append(ids, m.articles[c])
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (m *Matrix) row(readerID int64) (map[int]float64, bool) {
	r, ok := m.readerIdx[readerID]
	if !ok {
		return nil, false
	}
	return m.rows[r], true
}

func sortedIDs(set map[int64]struct{}) []int64 {
	ids := make([]int64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func indexOf(ids []int64) map[int64]int {
	idx := make(map[int64]int, len(ids))
	for i, id := range ids {
		idx[id] = i
	}
	return idx
}
