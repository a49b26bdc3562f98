package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/checkin-service/internal/domain"
)

// SnapshotRepository persists check-in tallies taken after each fetch.
type SnapshotRepository interface {
	Create(ctx context.Context, snapshot *domain.CheckinSnapshot) error
	ListByEvent(ctx context.Context, eventID string, limit int) ([]domain.CheckinSnapshot, error)
}

type snapshotRepository struct {
	pool *pgxpool.Pool
}

// NewSnapshotRepository instantiates repository.
func NewSnapshotRepository(pool *pgxpool.Pool) SnapshotRepository {
	return &snapshotRepository{pool: pool}
}

func (r *snapshotRepository) Create(ctx context.Context, snapshot *domain.CheckinSnapshot) error {
	const query = `
        INSERT INTO checkin_snapshots (id, event_id, total, checked_in, no_show, cancelled, refunded, fetched_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`
	_, err := r.pool.Exec(ctx, query,
		snapshot.ID,
		snapshot.EventID,
		snapshot.Total,
		snapshot.CheckedIn,
		snapshot.NoShow,
		snapshot.Cancelled,
		snapshot.Refunded,
		snapshot.FetchedAt,
	)
	return err
}

// ListByEvent returns the newest snapshots first.
func (r *snapshotRepository) ListByEvent(ctx context.Context, eventID string, limit int) ([]domain.CheckinSnapshot, error) {
	const query = `
        SELECT id::text, event_id, total, checked_in, no_show, cancelled, refunded, fetched_at
        FROM checkin_snapshots
        WHERE event_id=$1
        ORDER BY fetched_at DESC
        LIMIT $2`
	rows, err := r.pool.Query(ctx, query, eventID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	snapshots := make([]domain.CheckinSnapshot, 0)
	for rows.Next() {
		var s domain.CheckinSnapshot
		if err := rows.Scan(&s.ID, &s.EventID, &s.Total, &s.CheckedIn, &s.NoShow, &s.Cancelled, &s.Refunded, &s.FetchedAt); err != nil {
			return nil, err
		}
		snapshots = append(snapshots, s)
	}
	return snapshots, rows.Err()
}
