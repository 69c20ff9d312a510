package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/wirechan-dev/wirechan/internal/config"
	"github.com/wirechan-dev/wirechan/internal/domain"
	"github.com/wirechan-dev/wirechan/internal/errors"
	"github.com/wirechan-dev/wirechan/internal/logger"
	"github.com/wirechan-dev/wirechan/internal/utils"
)

type ThreadService interface {
	Create(data domain.PostCreationData) (domain.PostId, error)
	Feed(ctx context.Context, board domain.BoardName, page int) (domain.FeedPage, error)
	Thread(board domain.BoardName, id domain.PostId) (domain.ThreadView, error)
}

type PostStorage interface {
	CreatePost(data domain.PostCreationData, publicId domain.PublicId) (domain.PostId, error)
	TouchThread(board domain.BoardName, id domain.PostId) error
	GetThread(board domain.BoardName, id domain.PostId) ([]domain.Post, error)
	CountReplies(board domain.BoardName, id domain.PostId) (int, error)
	FeedPage(board domain.BoardName, page, pageSize int) ([]domain.Post, int, error)
}

// ReplyCountCache absorbs the per-root reply-count query on the feed page.
// Stale counts within the TTL are acceptable: feed reads are not required to
// be transactionally consistent with concurrent writes.
type ReplyCountCache interface {
	Get(ctx context.Context, board domain.BoardName, id domain.PostId) (int, bool)
	Set(ctx context.Context, board domain.BoardName, id domain.PostId, count int)
}

type Thread struct {
	storage PostStorage
	replies ReplyCountCache // optional, nil disables caching
	cfg     config.Public
}

func NewThread(storage PostStorage, replies ReplyCountCache, cfg config.Public) *Thread {
	return &Thread{storage: storage, replies: replies, cfg: cfg}
}

// Create validates and stores a new post. Any attachment referenced by the
// creation data has already been streamed to media storage by ingestion;
// it is retained even when validation rejects the post.
func (t *Thread) Create(data domain.PostCreationData) (domain.PostId, error) {
	data.Board = utils.SanitizeBoardName(data.Board)
	data.Title = strings.TrimSpace(data.Title)
	data.Message = strings.TrimSpace(data.Message)

	if data.Title == "" || data.Message == "" {
		return 0, &errors.ErrorWithStatusCode{Message: "Title and message are mandatory.", StatusCode: 400}
	}
	if len(data.Title) > t.cfg.TitleMaxLen || len(data.Message) > t.cfg.MessageMaxLen {
		return 0, &errors.ErrorWithStatusCode{Message: "Title or message is too long.", StatusCode: 400}
	}

	publicId := utils.NewPublicId()
	id, err := t.storage.CreatePost(data, publicId)
	if err != nil {
		return 0, err
	}

	if data.ParentId != domain.NoParent {
		if err := t.storage.TouchThread(data.Board, data.ParentId); err != nil {
			// the reply itself is committed; a failed bump only affects feed order
			logger.Log.Error("failed to touch thread", "board", data.Board, "parent", data.ParentId, "err", err)
		}
	}

	logger.Log.Info("post created", "board", data.Board, "id", id, "parent", data.ParentId)
	return id, nil
}

// Feed builds one page of the board's root posts ordered by recent activity,
// decorated with reply counts and display colors. Messages longer than the
// preview length are cut and flagged for a read-more link.
func (t *Thread) Feed(ctx context.Context, board domain.BoardName, page int) (domain.FeedPage, error) {
	board = utils.SanitizeBoardName(board)
	if page < 1 {
		page = 1
	}

	posts, totalPages, err := t.storage.FeedPage(board, page, t.cfg.PostsPerPage)
	if err != nil {
		return domain.FeedPage{}, err
	}

	feed := domain.FeedPage{Board: board, Page: page, TotalPages: totalPages}
	for _, p := range posts {
		count, err := t.replyCount(ctx, board, p.Id)
		if err != nil {
			return domain.FeedPage{}, err
		}

		item := domain.FeedItem{Post: p, ReplyCount: count, Color: ColorOf(p.PublicId)}
		if len(item.Message) > t.cfg.FeedPreviewLen {
			item.Message = item.Message[:t.cfg.FeedPreviewLen]
			item.Truncated = true
		}
		feed.Posts = append(feed.Posts, item)
	}
	return feed, nil
}

// Thread returns the full ordered thread for a post id: the post itself
// first, then its replies in insertion order. A missing board or id yields
// an empty view rather than an error.
func (t *Thread) Thread(board domain.BoardName, id domain.PostId) (domain.ThreadView, error) {
	board = utils.SanitizeBoardName(board)

	posts, err := t.storage.GetThread(board, id)
	if err != nil {
		return domain.ThreadView{}, err
	}

	view := domain.ThreadView{Board: board, Id: id}
	for n, p := range posts {
		label := "Original Post"
		if n > 0 {
			label = fmt.Sprintf("Reply %d", n)
		}
		view.Posts = append(view.Posts, domain.ThreadPost{Post: p, Label: label, Color: ColorOf(p.PublicId)})
	}
	return view, nil
}

func (t *Thread) replyCount(ctx context.Context, board domain.BoardName, id domain.PostId) (int, error) {
	if t.replies != nil {
		if count, ok := t.replies.Get(ctx, board, id); ok {
			return count, nil
		}
	}

	count, err := t.storage.CountReplies(board, id)
	if err != nil {
		return 0, err
	}

	if t.replies != nil {
		t.replies.Set(ctx, board, id, count)
	}
	return count, nil
}
