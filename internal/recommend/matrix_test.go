package recommend

import (
	"reflect"
	"testing"

	"ArticleRecommender/internal/domain"
)

func pairs(rows map[int64][]int64) []domain.Interaction {
	var out []domain.Interaction
	for reader, articles := range rows {
		for _, a := range articles {
			out = append(out, domain.Interaction{ReaderID: reader, ArticleID: a, Kind: domain.KindClick})
		}
	}
	return out
}

func TestBuildMatrixEmpty(t *testing.T) {
	t.Parallel()

	m := BuildMatrix(nil)
	if m.Len() != 0 {
		t.Fatalf("expected empty matrix, got %d readers", m.Len())
	}
	if len(m.Articles()) != 0 {
		t.Fatalf("expected no columns, got %v", m.Articles())
	}
	if m.HasReader(1) {
		t.Fatalf("empty matrix must not contain readers")
	}
}

func TestBuildMatrixIndexes(t *testing.T) {
	t.Parallel()

	m := BuildMatrix(pairs(map[int64][]int64{
		30: {7, 3},
		10: {3},
		20: {9},
	}))

	if got, want := m.Readers(), []int64{10, 20, 30}; !reflect.DeepEqual(got, want) {
		t.Fatalf("readers = %v, want %v", got, want)
	}
	if got, want := m.Articles(), []int64{3, 7, 9}; !reflect.DeepEqual(got, want) {
		t.Fatalf("articles = %v, want %v", got, want)
	}
	if m.HasReader(40) {
		t.Fatalf("reader without interactions must be absent")
	}
	if got := m.Count(30, 7); got != 1 {
		t.Fatalf("count(30,7) = %d, want 1", got)
	}
	if got := m.Count(10, 7); got != 0 {
		t.Fatalf("count(10,7) = %d, want 0", got)
	}
	if got := m.Count(99, 7); got != 0 {
		t.Fatalf("count for unknown reader = %d, want 0", got)
	}
}

func TestBuildMatrixCountsDuplicates(t *testing.T) {
	t.Parallel()

	m := BuildMatrix([]domain.Interaction{
		{ReaderID: 1, ArticleID: 5, Kind: domain.KindClick},
		{ReaderID: 1, ArticleID: 5, Kind: "share"},
		{ReaderID: 1, ArticleID: 6, Kind: domain.KindClick},
	})

	if got := m.Count(1, 5); got != 2 {
		t.Fatalf("count(1,5) = %d, want 2", got)
	}
	if got, want := m.Touched(1), []int64{5, 6}; !reflect.DeepEqual(got, want) {
		t.Fatalf("touched = %v, want %v", got, want)
	}
	if got := m.Touched(2); got != nil {
		t.Fatalf("touched for unknown reader = %v, want nil", got)
	}
}
