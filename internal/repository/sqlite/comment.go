package sqlite

import "github.com/sakif/blog-api/internal/model"

func (db *DB) comments() *table[model.Comment] {
	return &table[model.Comment]{
		conn:     db.conn,
		resource: "comment",
		name:     "comments",
		columns:  "id, content, post_id, author_id",
		insert:   `INSERT INTO comments (content, post_id, author_id) VALUES (?, ?, ?)`,
		args: func(c model.Comment) []any {
			return []any{c.Content, c.PostID, c.AuthorID}
		},
		assign: func(c model.Comment, id int64) model.Comment {
			c.ID = id
			return c
		},
	}
}
