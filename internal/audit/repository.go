package audit

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
)

// Insert records who did what to which booking. It runs inside the caller's transaction so the
// audit row and the change it describes commit together.
func Insert(ctx context.Context, tx pgx.Tx, actorID string, bookingID *string, action, actorRole string, metadata any) error {
	var s *string
	if metadata != nil {
		b, err := json.Marshal(metadata)
		if err != nil {
			return err
		}
		str := string(b)
		s = &str
	}
	const q = `
INSERT INTO audit_logs (actor_id, booking_id, action, actor_role, metadata)
VALUES (CAST(NULLIF($1, '') AS uuid), $2, $3, NULLIF($4, ''), CAST($5 AS jsonb))
`
	_, err := tx.Exec(ctx, q, actorID, bookingID, action, actorRole, s)
	return err
}
