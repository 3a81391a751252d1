package sqlite

import "github.com/sakif/blog-api/internal/model"

func (db *DB) users() *table[model.User] {
	return &table[model.User]{
		conn:     db.conn,
		resource: "user",
		name:     "users",
		columns:  "id, username, email",
		insert:   `INSERT INTO users (username, email) VALUES (?, ?)`,
		args: func(u model.User) []any {
			return []any{u.Username, u.Email}
		},
		assign: func(u model.User, id int64) model.User {
			u.ID = id
			return u
		},
	}
}
