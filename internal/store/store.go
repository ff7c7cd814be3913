package store

import (
	"gorm.io/gorm"
)

// Store bundles the per-entity repositories around one database handle.
// Handlers receive a *Store instead of touching gorm directly, which keeps the
// role/engagement rules testable without a live postgres.
type Store struct {
	Users     *UserStore
	Parasites *ParasiteStore
	Articles  *ArticleStore
	Posts     *PostStore
	Reactions *ReactionStore
	Comments  *CommentStore
}

func New(gdb *gorm.DB) *Store {
	return &Store{
		Users:     &UserStore{db: gdb},
		Parasites: &ParasiteStore{db: gdb},
		Articles:  &ArticleStore{db: gdb},
		Posts:     &PostStore{db: gdb},
		Reactions: &ReactionStore{db: gdb},
		Comments:  &CommentStore{db: gdb},
	}
}
