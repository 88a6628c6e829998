package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContentItem stores categories as a single comma-joined string. The API
// exposes them as an ordered list; an empty stored string maps to an
// empty list.
type ContentItem struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Title      string    `json:"title" gorm:"size:30;not null"`
	Body       string    `json:"body" gorm:"size:300;not null"`
	Summary    string    `json:"summary" gorm:"size:60;not null"`
	Categories string    `json:"-" gorm:"size:255"`
	Document   string    `json:"document"` // storage key, opaque to clients
	AuthorID   uuid.UUID `json:"author" gorm:"type:uuid;index;not null"`
	Author     User      `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt  time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (c *ContentItem) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// CategoryList splits the stored string back into the external list form.
func (c *ContentItem) CategoryList() []string {
	if c.Categories == "" {
		return []string{}
	}
	return strings.Split(c.Categories, ",")
}

// SetCategories joins the external list into the stored string form.
func (c *ContentItem) SetCategories(categories []string) {
	c.Categories = strings.Join(categories, ",")
}
