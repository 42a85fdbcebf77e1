// Package lead persists audit attempt records to an append-only log.
package lead

import (
	"context"

	"github.com/sells-group/audit-api/internal/model"
)

// Store defines lead persistence. Leads are appended once per audit
// attempt and never mutated or deleted.
type Store interface {
	Append(ctx context.Context, l model.Lead) error
	List(ctx context.Context) ([]model.Lead, error)
}
