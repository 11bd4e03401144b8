package tables

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type Article struct {
	bun.BaseModel `bun:"table:articles,alias:a"`

	ID               uuid.UUID  `bun:"id,pk,type:uuid" json:"id"`
	Name             string     `bun:"name,notnull" json:"name"`
	Description      string     `bun:"description,notnull" json:"description"`
	ShortDescription string     `bun:"short_description" json:"short_description,omitempty"`
	BasePrice        uint64     `bun:"base_price,notnull" json:"base_price"` // stored in cents
	Warranty         string     `bun:"warranty" json:"warranty,omitempty"`
	BrandID          *uuid.UUID `bun:"brand_id,type:uuid" json:"brand_id,omitempty"`
	ActionID         *uuid.UUID `bun:"action_id,type:uuid" json:"action_id,omitempty"`
	CreatedAt        time.Time  `bun:"created_at,notnull,default:now()" json:"created_at"`
	UpdatedAt        time.Time  `bun:"updated_at,notnull,default:now()" json:"updated_at"`

	Brand      *Brand      `bun:"rel:belongs-to,join:brand_id=id" json:"brand,omitempty"`
	Action     *Action     `bun:"rel:belongs-to,join:action_id=id" json:"action,omitempty"`
	Attributes []Attribute `bun:"rel:has-many,join:id=article_id" json:"attributes,omitempty"`
	Images     []Image     `bun:"rel:has-many,join:id=article_id" json:"images,omitempty"`
	Categories []Category  `bun:"m2m:article_categories,join:Article=Category" json:"categories,omitempty"`
	Groups     []Group     `bun:"m2m:article_groups,join:Article=Group" json:"groups,omitempty"`
}

// Attribute is a title/text pair describing an article (e.g. "RAM" / "16 GB").
// Attributes are replaced wholesale on article update.
type Attribute struct {
	bun.BaseModel `bun:"table:attributes,alias:att"`

	ID        uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	ArticleID uuid.UUID `bun:"article_id,type:uuid,notnull" json:"article_id"`
	Title     string    `bun:"title,notnull" json:"title"`
	Text      string    `bun:"text,notnull" json:"text"`
}

type Brand struct {
	bun.BaseModel `bun:"table:brands,alias:b"`

	ID   uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	Name string    `bun:"name,notnull" json:"name"`
}
