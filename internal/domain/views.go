package domain

// View models returned by the service layer for external rendering.

type FeedItem struct {
	Post
	ReplyCount int
	Color      string
	Truncated  bool // Message was cut for feed display
}

type FeedPage struct {
	Board      BoardName
	Page       int
	TotalPages int
	Posts      []FeedItem
}

type ThreadPost struct {
	Post
	Label string // "Original Post" or "Reply N"
	Color string
}

type ThreadView struct {
	Board BoardName
	Id    PostId
	Posts []ThreadPost
}
