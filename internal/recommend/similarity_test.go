package recommend

import (
	"math"
	"reflect"
	"testing"
)

func TestCosine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b map[int]float64
		want float64
	}{
		{name: "identical", a: map[int]float64{0: 1, 1: 1}, b: map[int]float64{0: 1, 1: 1}, want: 1},
		{name: "disjoint", a: map[int]float64{0: 1}, b: map[int]float64{1: 1}, want: 0},
		{name: "empty side", a: map[int]float64{}, b: map[int]float64{1: 1}, want: 0},
		{name: "both empty", a: nil, b: nil, want: 0},
		{name: "partial overlap", a: map[int]float64{0: 1, 1: 1}, b: map[int]float64{0: 1, 1: 1, 2: 1}, want: 2 / math.Sqrt(6)},
		{name: "counts weigh in", a: map[int]float64{0: 2}, b: map[int]float64{0: 1, 1: 1}, want: 2 / (2 * math.Sqrt(2))},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Cosine(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Fatalf("Cosine = %v, want %v", got, tt.want)
			}
			if back := Cosine(tt.b, tt.a); math.Abs(back-got) > 1e-12 {
				t.Fatalf("Cosine not symmetric: %v vs %v", got, back)
			}
		})
	}
}

func TestNeighborsScenario(t *testing.T) {
	t.Parallel()

	const a, b, c = 1, 2, 3
	m := BuildMatrix(pairs(map[int64][]int64{
		a: {1, 2},
		b: {1, 2, 3},
		c: {4},
	}))

	got := m.Neighbors(a, 5)
	if len(got) != 1 {
		t.Fatalf("expected only B as neighbor, got %+v", got)
	}
	if got[0].ReaderID != b {
		t.Fatalf("neighbor = %d, want %d", got[0].ReaderID, b)
	}
	if got[0].Score <= 0 || got[0].Score > 1 {
		t.Fatalf("score out of range: %v", got[0].Score)
	}
}

func TestNeighborsOrderingAndLimit(t *testing.T) {
	t.Parallel()

	m := BuildMatrix(pairs(map[int64][]int64{
		1: {1, 2, 3},
		// identical to the target, ties broken by id
		9: {1, 2, 3},
		8: {1, 2, 3},
		2: {1, 2},
		3: {1},
		4: {1, 50},
		5: {2, 60, 61},
		6: {3, 70, 71, 72},
		7: {99},
	}))

	got := m.Neighbors(1, 5)
	ids := make([]int64, len(got))
	for i, n := range got {
		ids[i] = n.ReaderID
	}
	if want := []int64{8, 9, 2, 3, 4}; !reflect.DeepEqual(ids, want) {
		t.Fatalf("neighbors = %v, want %v", ids, want)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Score > got[i-1].Score {
			t.Fatalf("neighbors not sorted by score: %+v", got)
		}
	}
	for _, n := range got {
		if n.ReaderID == 1 {
			t.Fatalf("target must not be its own neighbor")
		}
	}
}

func TestNeighborsDegenerate(t *testing.T) {
	t.Parallel()

	single := BuildMatrix(pairs(map[int64][]int64{1: {1, 2}}))
	if got := single.Neighbors(1, 5); got != nil {
		t.Fatalf("single reader matrix must yield no neighbors, got %+v", got)
	}

	m := BuildMatrix(pairs(map[int64][]int64{1: {1}, 2: {1}}))
	if got := m.Neighbors(3, 5); got != nil {
		t.Fatalf("absent target must yield no neighbors, got %+v", got)
	}
	if got := m.Neighbors(1, 0); got != nil {
		t.Fatalf("k=0 must yield no neighbors, got %+v", got)
	}
	if got := BuildMatrix(nil).Neighbors(1, 5); got != nil {
		t.Fatalf("empty matrix must yield no neighbors, got %+v", got)
	}
}

func TestNeighborsDeterministic(t *testing.T) {
	t.Parallel()

	rows := map[int64][]int64{1: {1, 2}, 2: {1}, 3: {2}, 4: {1}, 5: {2}}
	first := BuildMatrix(pairs(rows)).Neighbors(1, 5)
	for i := 0; i < 20; i++ {
		again := BuildMatrix(pairs(rows)).Neighbors(1, 5)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs: %+v vs %+v", i, first, again)
		}
	}
}
