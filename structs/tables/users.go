package tables

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User holds back-office accounts. There is no self-registration; admins are
// seeded out of band.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	Email        string    `bun:"email,notnull,unique" json:"email"`
	PasswordHash string    `bun:"password_hash,notnull" json:"-"`
	Role         string    `bun:"role,notnull,default:'admin'" json:"role"`
	CreatedAt    time.Time `bun:"created_at,notnull,default:now()" json:"created_at"`
}
