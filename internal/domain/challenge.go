package domain

import (
	"time"

	"github.com/google/uuid"
)

// Challenge is a user-authored struggle or goal that steers insight generation.
type Challenge struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Name        string
	Description string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ChallengeUpdateParams holds partial-update fields. Nil means "don't change".
type ChallengeUpdateParams struct {
	Name        *string
	Description *string
	IsActive    *bool
}

// WisdomSource is a user-curated influence (book, author, philosophy) that
// steers insight generation. Tag is a free-text category.
type WisdomSource struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Name        string
	Description string
	Tag         string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// WisdomUpdateParams holds partial-update fields. Nil means "don't change".
type WisdomUpdateParams struct {
	Name        *string
	Description *string
	Tag         *string
	IsActive    *bool
}
