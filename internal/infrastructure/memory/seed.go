package memory

import (
	"context"
	"fmt"
	"time"

	"ArticleRecommender/internal/domain"
)

// Demo returns a store populated with a small catalog and a few readers' clicks.
func Demo(seed uint64) *Store {
	s := NewStore(seed)
	base := time.Date(2025, time.March, 1, 8, 0, 0, 0, time.UTC)

	var id int64
	for ci, category := range domain.Categories {
		for i := 0; i < 6; i++ {
			id++
			image := fmt.Sprintf("https://img.example.org/%d.jpg", id)
			// every sixth article lacks media and must never be recommended
			if i == 5 {
				image = ""
			}
			s.AddArticle(domain.Article{
				ID:          id,
				Title:       fmt.Sprintf("%s story %d", category, i+1),
				Description: fmt.Sprintf("Coverage of %s, part %d.", category, i+1),
				URL:         fmt.Sprintf("https://news.example.org/%s/%d", category, id),
				ImageURL:    image,
				PublishedAt: base.Add(time.Duration(ci*6+i) * time.Hour),
				Source:      "Example Wire",
				Category:    category,
			})
		}
	}

	clicks := map[int64][]int64{
		1: {1, 2, 31},
		2: {1, 2, 3, 4},
		3: {31, 32, 33},
		4: {19, 20},
	}
	ctx := context.Background()
	for reader, articles := range clicks {
		for _, a := range articles {
			_, _ = s.RecordInteraction(ctx, domain.Interaction{ReaderID: reader, ArticleID: a, Kind: domain.KindClick})
		}
	}
	return s
}
