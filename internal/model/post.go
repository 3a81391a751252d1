package model

// Post is an article written by a User.
// AuthorID must name an existing user at the time the post is created.
type Post struct {
	ID       int64  `json:"id"        db:"id"`
	Title    string `json:"title"     db:"title"`
	Content  string `json:"content"   db:"content"`
	AuthorID int64  `json:"author_id" db:"author_id"`
}

// NewPost builds a Post that has not been stored yet.
func NewPost(title, content string, authorID int64) Post {
	return Post{Title: title, Content: content, AuthorID: authorID}
}
