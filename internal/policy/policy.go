// Package policy centralizes every access decision for content items.
// Handlers never branch on roles directly; they either call CanAccess or
// query through VisibleTo.
package policy

import (
	"github.com/rahulm-dev/inkwell/internal/models"
	"gorm.io/gorm"
)

type Action string

const (
	ActionRead   Action = "read"
	ActionWrite  Action = "write"
	ActionDelete Action = "delete"
)

// CanAccess reports whether user may perform action on item. Admins may
// do anything; everyone else only touches their own items. The action is
// part of the contract so future role tiers can split read from write
// without touching call sites.
func CanAccess(user *models.User, item *models.ContentItem, action Action) bool {
	if user.IsAdmin() {
		return true
	}
	switch action {
	case ActionRead, ActionWrite, ActionDelete:
		return item.AuthorID == user.ID
	default:
		return false
	}
}

// VisibleTo is a GORM scope restricting content queries to the rows the
// user is allowed to read. Detail lookups run through this scope too, so
// a foreign item id comes back as record-not-found rather than forbidden.
func VisibleTo(user *models.User) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if user.IsAdmin() {
			return db
		}
		return db.Where("author_id = ?", user.ID)
	}
}
