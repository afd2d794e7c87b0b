package db

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"
)

// StartExpiredTokenCleaner removes expired token revocations and password
// reset tokens every interval until ctx is cancelled.
func StartExpiredTokenCleaner(
	ctx context.Context,
	db *sql.DB,
	interval time.Duration,
	log *zap.Logger,
) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				now := time.Now()
				var removed int64
				for _, table := range []string{"revoked_tokens", "password_resets"} {
					res, err := db.ExecContext(ctx, `DELETE FROM `+table+` WHERE expires_at < $1`, now)
					if err != nil {
						log.Error("failed to clean expired tokens", zap.String("table", table), zap.Error(err))
						continue
					}
					if rows, _ := res.RowsAffected(); rows > 0 {
						removed += rows
					}
				}
				if removed > 0 {
					log.Info("cleaned expired tokens", zap.Int64("removed", removed))
				}
			}
		}
	}()
}
