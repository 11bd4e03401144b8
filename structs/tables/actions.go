package tables

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Action is a time-bounded promotional discount applied to a set of articles.
type Action struct {
	bun.BaseModel `bun:"table:actions,alias:act"`

	ID          uuid.UUID  `bun:"id,pk,type:uuid" json:"id"`
	Title       string     `bun:"title,notnull" json:"title"`
	Discount    int        `bun:"discount,notnull" json:"discount"` // percent
	Description string     `bun:"description" json:"description,omitempty"`
	Date        *time.Time `bun:"date" json:"date,omitempty"`
	CreatedAt   time.Time  `bun:"created_at,notnull,default:now()" json:"created_at"`

	Images   []Image   `bun:"rel:has-many,join:id=action_id" json:"images,omitempty"`
	Articles []Article `bun:"rel:has-many,join:id=action_id" json:"articles,omitempty"`
}
