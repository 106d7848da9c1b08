package staff

import (
	"time"

	"github.com/google/uuid"
)

// User is one staff account. The auth layer reads the same table when
// issuing tokens; this package administers it.
type User struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Email       string    `db:"email" json:"email"`
	Role        string    `db:"role" json:"role"`
	Verified    bool      `db:"verified" json:"verified"`
	CanDownload bool      `db:"can_download" json:"canDownload"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}
