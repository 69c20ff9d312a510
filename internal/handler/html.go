package handler

import (
	"fmt"
	"strings"

	"github.com/wirechan-dev/wirechan/internal/domain"
	"github.com/wirechan-dev/wirechan/internal/storage/fs"
)

// HTML fragment builders for the feed and thread pages. Fragments are
// substituted verbatim by the template layer; post text is emitted unescaped,
// which is the documented (and inherited) contract of that layer.

func feedPostsHTML(feed domain.FeedPage) string {
	var b strings.Builder
	for _, p := range feed.Posts {
		message := p.Message
		if p.Truncated {
			message += fmt.Sprintf(`... <a href="/%s/post/%d" class="view-full-post">Click here to open full post</a>`, feed.Board, p.Id)
		}

		b.WriteString(`<div class="post">`)
		fmt.Fprintf(&b, `<div class="post-id-box" style="background-color: %s">%s</div>`, p.Color, p.PublicId)
		fmt.Fprintf(&b, `<div class="post-title title-green">%s</div>`, p.Title)
		b.WriteString(attachmentHTML(p.Post))
		fmt.Fprintf(&b, `<div class="post-message">%s</div>`, message)
		fmt.Fprintf(&b, `<a class="reply-button" href="/%s/post/%d">Reply (%d)</a>`, feed.Board, p.Id, p.ReplyCount)
		b.WriteString(`</div>`)
	}
	return b.String()
}

func threadPostsHTML(view domain.ThreadView) string {
	var b strings.Builder
	for _, p := range view.Posts {
		fmt.Fprintf(&b, `<div class="post" style="border-color: %s">`, p.Color)
		fmt.Fprintf(&b, `<div class="post-id">%s</div>`, p.Label)
		fmt.Fprintf(&b, `<div class="post-title">%s</div>`, p.Title)
		b.WriteString(attachmentHTML(p.Post))
		fmt.Fprintf(&b, `<div class="post-message">%s</div>`, p.Message)
		b.WriteString(`</div>`)
	}
	return b.String()
}

func attachmentHTML(p domain.Post) string {
	if !p.FilePath.Valid {
		return ""
	}
	path := p.FilePath.String
	switch fs.Classify(path) {
	case fs.KindImage:
		return fmt.Sprintf(`<img src="/static/%s"><br>`, path)
	case fs.KindVideo:
		return fmt.Sprintf(`<video controls><source src="/static/%s"></video><br>`, path)
	default:
		return ""
	}
}

func paginationHTML(feed domain.FeedPage) string {
	var b strings.Builder
	if feed.Page > 1 {
		fmt.Fprintf(&b, `<a href="/%s?page=%d">Previous</a>`, feed.Board, feed.Page-1)
	}
	if feed.Page < feed.TotalPages {
		fmt.Fprintf(&b, `<a href="/%s?page=%d">Next</a>`, feed.Board, feed.Page+1)
	}
	return b.String()
}
