package domain

import "time"

// InteractionKind enumerates how a reader engaged with an article.
type InteractionKind string

const (
	KindClick InteractionKind = "click"
)

// Interaction records that a reader engaged with an article.
type Interaction struct {
	ReaderID  int64
	ArticleID int64
	Kind      InteractionKind
	CreatedAt time.Time
}

// Stage names the part of the engine that produced a recommendation.
type Stage string

const (
	StageCollaborative Stage = "collaborative"
	StageFallback      Stage = "fallback"
	StageEmpty         Stage = "empty"
)

// Recommendation is the outcome of one request for one reader.
type Recommendation struct {
	ReaderID int64     `json:"reader_id"`
	Stage    Stage     `json:"stage"`
	Articles []Article `json:"articles"`
}
