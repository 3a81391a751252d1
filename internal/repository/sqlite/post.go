package sqlite

import "github.com/sakif/blog-api/internal/model"

func (db *DB) posts() *table[model.Post] {
	return &table[model.Post]{
		conn:     db.conn,
		resource: "post",
		name:     "posts",
		columns:  "id, title, content, author_id",
		insert:   `INSERT INTO posts (title, content, author_id) VALUES (?, ?, ?)`,
		args: func(p model.Post) []any {
			return []any{p.Title, p.Content, p.AuthorID}
		},
		assign: func(p model.Post, id int64) model.Post {
			p.ID = id
			return p
		},
	}
}
