package domain

import (
	"database/sql"
	"time"
)

// to iterate thru layers: handler -> service -> storage
type PostCreationData struct {
	Board    BoardName
	ParentId PostId
	Title    string
	Message  string
	FilePath string // relative media path, empty when no attachment survived ingestion
}

type Post struct {
	Id           PostId
	PublicId     PublicId
	ParentId     PostId
	Title        string
	Message      string
	FilePath     sql.NullString
	CreatedAt    time.Time
	LastActivity time.Time
}

// IsRoot reports whether the post starts a thread.
func (p *Post) IsRoot() bool {
	return p.ParentId == NoParent
}
