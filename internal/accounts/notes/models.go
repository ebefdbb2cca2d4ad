package notes

import (
	"time"

	"github.com/uptrace/bun"
)

// Note represents a note owned by a user. Its business logic lives in the
// note subsystem; the accounts service only consumes the existence contract
// when guarding user deletion.
type Note struct {
	bun.BaseModel `bun:"table:notes,alias:n"`

	ID        string    `json:"id" bun:"id,pk"`
	UserID    string    `json:"user_id" bun:"user_id,notnull"`
	Title     string    `json:"title" bun:"title,notnull"`
	Text      string    `json:"text" bun:"text"`
	CreatedAt time.Time `json:"created_at" bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `json:"updated_at" bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}
