package pg

import (
	"database/sql"
	"fmt"

	"github.com/wirechan-dev/wirechan/internal/domain"
)

// EnsureBoard creates the board's post table if it does not exist yet.
// Board storage materializes lazily from name usage.
func (s *Storage) EnsureBoard(board domain.BoardName) error {
	return s.ensureBoard(s.db, board)
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func (s *Storage) ensureBoard(e execer, board domain.BoardName) error {
	table := PostsTableName(board)
	_, err := e.Exec(fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS %s (
		id BIGSERIAL PRIMARY KEY,
		public_id TEXT NOT NULL,
		parent_id BIGINT NOT NULL DEFAULT 0,
		title TEXT NOT NULL,
		message TEXT NOT NULL,
		file_path TEXT,
		created TIMESTAMP NOT NULL DEFAULT (NOW() AT TIME ZONE 'utc'),
		last_activity TIMESTAMP NOT NULL DEFAULT (NOW() AT TIME ZONE 'utc')
	)`, table))
	if err != nil {
		return fmt.Errorf("failed to create board table: %w", err)
	}

	_, err = e.Exec(fmt.Sprintf(
		"CREATE INDEX IF NOT EXISTS %s ON %s (parent_id, last_activity DESC)",
		feedIndexName(board), table))
	if err != nil {
		return fmt.Errorf("failed to create feed index: %w", err)
	}
	return nil
}

// CreatePost inserts a post row and returns its assigned id.
// The insert is transactional with lazy board-table creation: either the
// full row becomes visible or nothing does.
func (s *Storage) CreatePost(data domain.PostCreationData, publicId domain.PublicId) (domain.PostId, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return -1, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // The rollback will be ignored if the tx has been committed later in the function.

	if err := s.ensureBoard(tx, data.Board); err != nil {
		return -1, err
	}

	var filePath sql.NullString
	if data.FilePath != "" {
		filePath = sql.NullString{String: data.FilePath, Valid: true}
	}

	var id domain.PostId
	err = tx.QueryRow(fmt.Sprintf(`
	INSERT INTO %s (public_id, parent_id, title, message, file_path)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id`, PostsTableName(data.Board)),
		publicId, data.ParentId, data.Title, data.Message, filePath,
	).Scan(&id)
	if err != nil {
		return -1, fmt.Errorf("failed to insert post: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return -1, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return id, nil
}

// TouchThread bumps last_activity on the row with the given id and on every
// row whose parent_id equals it. The predicate operates on whatever id is
// passed, which for a reply-to-a-reply is the immediate parent, not the
// thread root.
func (s *Storage) TouchThread(board domain.BoardName, id domain.PostId) error {
	_, err := s.db.Exec(fmt.Sprintf(`
	UPDATE %s
	SET last_activity = NOW() AT TIME ZONE 'utc'
	WHERE id = $1 OR parent_id = $1`, PostsTableName(board)), id)
	if err != nil {
		if isUndefinedTable(err) {
			return nil
		}
		return fmt.Errorf("failed to touch thread: %w", err)
	}
	return nil
}

// GetThread returns the post with the given id plus all direct replies,
// ordered by id ascending (the root is numerically smallest by construction).
// An unknown board or id yields an empty slice.
func (s *Storage) GetThread(board domain.BoardName, id domain.PostId) ([]domain.Post, error) {
	rows, err := s.db.Query(fmt.Sprintf(`
	SELECT id, public_id, parent_id, title, message, file_path, created, last_activity
	FROM %s
	WHERE id = $1 OR parent_id = $1
	ORDER BY id ASC`, PostsTableName(board)), id)
	if err != nil {
		if isUndefinedTable(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch thread: %w", err)
	}
	defer rows.Close()

	return scanPosts(rows)
}

// CountReplies returns the number of posts whose parent_id equals id.
func (s *Storage) CountReplies(board domain.BoardName, id domain.PostId) (int, error) {
	var count int
	err := s.db.QueryRow(fmt.Sprintf(
		"SELECT COUNT(*) FROM %s WHERE parent_id = $1", PostsTableName(board)), id,
	).Scan(&count)
	if err != nil {
		if isUndefinedTable(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to count replies: %w", err)
	}
	return count, nil
}

// FeedPage returns one page of root posts ordered by recent activity plus
// the total page count. Pages are 1-based.
func (s *Storage) FeedPage(board domain.BoardName, page, pageSize int) ([]domain.Post, int, error) {
	table := PostsTableName(board)

	var totalRoots int
	err := s.db.QueryRow(fmt.Sprintf(
		"SELECT COUNT(*) FROM %s WHERE parent_id = 0", table),
	).Scan(&totalRoots)
	if err != nil {
		if isUndefinedTable(err) {
			return nil, 0, nil
		}
		return nil, 0, fmt.Errorf("failed to count root posts: %w", err)
	}

	totalPages := (totalRoots + pageSize - 1) / pageSize

	rows, err := s.db.Query(fmt.Sprintf(`
	SELECT id, public_id, parent_id, title, message, file_path, created, last_activity
	FROM %s
	WHERE parent_id = 0
	ORDER BY last_activity DESC
	LIMIT $1 OFFSET $2`, table), pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch feed page: %w", err)
	}
	defer rows.Close()

	posts, err := scanPosts(rows)
	if err != nil {
		return nil, 0, err
	}
	return posts, totalPages, nil
}

func scanPosts(rows *sql.Rows) ([]domain.Post, error) {
	var posts []domain.Post
	for rows.Next() {
		var p domain.Post
		if err := rows.Scan(
			&p.Id, &p.PublicId, &p.ParentId, &p.Title, &p.Message,
			&p.FilePath, &p.CreatedAt, &p.LastActivity,
		); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return posts, nil
}
