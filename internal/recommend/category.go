package recommend

import (
	"fmt"
	"sort"
	"strings"
)

// CategoryPolicy decides which categories count as a reader's favorites.
type CategoryPolicy string

const (
	// CategoriesAll keeps every category the reader has touched.
	CategoriesAll CategoryPolicy = "all"
	// CategoriesTop keeps only the most interacted category.
	CategoriesTop CategoryPolicy = "top"
)

// ParseCategoryPolicy maps a config value to a policy; empty means CategoriesAll.
func ParseCategoryPolicy(value string) (CategoryPolicy, error) {
	switch CategoryPolicy(strings.ToLower(strings.TrimSpace(value))) {
	case "", CategoriesAll:
		return CategoriesAll, nil
	case CategoriesTop:
		return CategoriesTop, nil
	default:
		return "", fmt.Errorf("unknown category policy %q", value)
	}
}

// FavoriteCategories picks favorites from per-category interaction counts.
// With CategoriesTop the highest count wins and ties go to the lexically smaller name.
// The returned names are sorted ascending.
func FavoriteCategories(counts map[string]int, policy CategoryPolicy) []string {
	names := make([]string, 0, len(counts))
	for name, n := range counts {
		if n > 0 && name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	if policy != CategoriesTop || len(names) == 0 {
		return names
	}

	best := names[0]
	for _, name := range names[1:] {
		if counts[name] > counts[best] {
			best = name
		}
	}
	return []string{best}
}
