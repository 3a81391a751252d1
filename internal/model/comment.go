package model

// Comment is a reply to a Post by a User.
type Comment struct {
	ID       int64  `json:"id"        db:"id"`
	Content  string `json:"content"   db:"content"`
	PostID   int64  `json:"post_id"   db:"post_id"`
	AuthorID int64  `json:"author_id" db:"author_id"`
}

// NewComment builds a Comment that has not been stored yet.
func NewComment(content string, postID, authorID int64) Comment {
	return Comment{Content: content, PostID: postID, AuthorID: authorID}
}

// Entity is the set of record types a storage gateway can hold.
type Entity interface {
	User | Post | Comment
}
