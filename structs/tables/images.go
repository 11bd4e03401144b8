package tables

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type ImageStatus string

const (
	// ImagePending means a presigned upload URL was issued but the client has
	// not yet confirmed the upload. Pending rows past their TTL are reaped by
	// the reconciler.
	ImagePending ImageStatus = "pending"
	// ImageCommitted means the client confirmed the upload completed.
	ImageCommitted ImageStatus = "committed"
)

// Image belongs to exactly one of {article, action}. The access URL is never
// persisted; it is signed per request from the object key.
type Image struct {
	bun.BaseModel `bun:"table:images,alias:img"`

	ID        uuid.UUID   `bun:"id,pk,type:uuid" json:"id"`
	ObjectKey string      `bun:"object_key,notnull" json:"object_key"`
	ArticleID *uuid.UUID  `bun:"article_id,type:uuid" json:"article_id,omitempty"`
	ActionID  *uuid.UUID  `bun:"action_id,type:uuid" json:"action_id,omitempty"`
	Status    ImageStatus `bun:"status,notnull,default:'pending'" json:"status"`
	CreatedAt time.Time   `bun:"created_at,notnull,default:now()" json:"created_at"`

	URL string `bun:"-" json:"url,omitempty"`
}

// StorageDeletion queues an object whose storage delete failed so the
// reconciler can retry it. Rows are removed once the delete succeeds.
type StorageDeletion struct {
	bun.BaseModel `bun:"table:storage_deletions,alias:sd"`

	ID        uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	ObjectKey string    `bun:"object_key,notnull" json:"object_key"`
	Attempts  int       `bun:"attempts,notnull,default:0" json:"attempts"`
	LastError string    `bun:"last_error" json:"last_error,omitempty"`
	CreatedAt time.Time `bun:"created_at,notnull,default:now()" json:"created_at"`
}
