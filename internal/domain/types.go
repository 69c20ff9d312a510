package domain

type (
	BoardName = string

	PostId   = int64
	PublicId = string
)

// ParentId 0 marks a root post; nonzero references another post's Id
// within the same board.
const NoParent PostId = 0
