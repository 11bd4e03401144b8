package tables

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type Category struct {
	bun.BaseModel `bun:"table:categories,alias:c"`

	ID        uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	Name      string    `bun:"name,notnull" json:"name"`
	CreatedAt time.Time `bun:"created_at,notnull,default:now()" json:"created_at"`

	Articles []Article `bun:"m2m:article_categories,join:Category=Article" json:"articles,omitempty"`
	Groups   []Group   `bun:"m2m:category_groups,join:Category=Group" json:"groups,omitempty"`
}

// Group is a named bucket of articles used for homepage sectioning,
// distinct from Category.
type Group struct {
	bun.BaseModel `bun:"table:groups,alias:g"`

	ID        uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	Name      string    `bun:"name,notnull" json:"name"`
	CreatedAt time.Time `bun:"created_at,notnull,default:now()" json:"created_at"`

	Articles []Article `bun:"m2m:article_groups,join:Group=Article" json:"articles,omitempty"`
}

// Join models. Registered with bun on connect so the m2m relations above resolve.

type ArticleCategory struct {
	bun.BaseModel `bun:"table:article_categories,alias:acat"`

	ArticleID  uuid.UUID `bun:"article_id,pk,type:uuid" json:"article_id"`
	CategoryID uuid.UUID `bun:"category_id,pk,type:uuid" json:"category_id"`

	Article  *Article  `bun:"rel:belongs-to,join:article_id=id" json:"-"`
	Category *Category `bun:"rel:belongs-to,join:category_id=id" json:"-"`
}

type ArticleGroup struct {
	bun.BaseModel `bun:"table:article_groups,alias:agr"`

	ArticleID uuid.UUID `bun:"article_id,pk,type:uuid" json:"article_id"`
	GroupID   uuid.UUID `bun:"group_id,pk,type:uuid" json:"group_id"`

	Article *Article `bun:"rel:belongs-to,join:article_id=id" json:"-"`
	Group   *Group   `bun:"rel:belongs-to,join:group_id=id" json:"-"`
}

type CategoryGroup struct {
	bun.BaseModel `bun:"table:category_groups,alias:cgr"`

	CategoryID uuid.UUID `bun:"category_id,pk,type:uuid" json:"category_id"`
	GroupID    uuid.UUID `bun:"group_id,pk,type:uuid" json:"group_id"`

	Category *Category `bun:"rel:belongs-to,join:category_id=id" json:"-"`
	Group    *Group    `bun:"rel:belongs-to,join:group_id=id" json:"-"`
}
