package postgres

import "github.com/sakif/blog-api/internal/model"

func (db *DB) users() *table[model.User] {
	return &table[model.User]{
		pool:     db.pool,
		resource: "user",
		name:     "users",
		columns:  "id, username, email",
		insert:   `INSERT INTO users (username, email) VALUES ($1, $2) RETURNING id`,
		args:     func(u model.User) []any { return []any{u.Username, u.Email} },
		assign:   func(u model.User, id int64) model.User { u.ID = id; return u },
	}
}

func (db *DB) posts() *table[model.Post] {
	return &table[model.Post]{
		pool:     db.pool,
		resource: "post",
		name:     "posts",
		columns:  "id, title, content, author_id",
		insert:   `INSERT INTO posts (title, content, author_id) VALUES ($1, $2, $3) RETURNING id`,
		args:     func(p model.Post) []any { return []any{p.Title, p.Content, p.AuthorID} },
		assign:   func(p model.Post, id int64) model.Post { p.ID = id; return p },
	}
}

func (db *DB) comments() *table[model.Comment] {
	return &table[model.Comment]{
		pool:     db.pool,
		resource: "comment",
		name:     "comments",
		columns:  "id, content, post_id, author_id",
		insert:   `INSERT INTO comments (content, post_id, author_id) VALUES ($1, $2, $3) RETURNING id`,
		args:     func(c model.Comment) []any { return []any{c.Content, c.PostID, c.AuthorID} },
		assign:   func(c model.Comment, id int64) model.Comment { c.ID = id; return c },
	}
}
