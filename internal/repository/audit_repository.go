package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/auth-gateway/internal/domain"
)

// AuditRepository persists authentication-path events. The trail is
// advisory: callers treat write failures as non-fatal.
type AuditRepository interface {
	Record(ctx context.Context, event *domain.AuthEvent) error
	ListBySubject(ctx context.Context, subject string, limit int) ([]domain.AuthEvent, error)
}

type auditRepository struct {
	pool *pgxpool.Pool
}

// NewAuditRepository constructs the repository.
func NewAuditRepository(pool *pgxpool.Pool) AuditRepository {
	return &auditRepository{pool: pool}
}

func (r *auditRepository) Record(ctx context.Context, event *domain.AuthEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	const query = `
        INSERT INTO auth_events (id, event, subject, email, ip, created_at)
        VALUES ($1,$2,$3,$4,$5,$6)`
	_, err := r.pool.Exec(ctx, query,
		event.ID,
		string(event.Event),
		event.Subject,
		event.Email,
		event.IP,
		event.CreatedAt,
	)
	return err
}

func (r *auditRepository) ListBySubject(ctx context.Context, subject string, limit int) ([]domain.AuthEvent, error) {
	if limit <= 0 {
		limit = 50
	}

	const query = `
        SELECT id, event, subject, email, ip, created_at
        FROM auth_events WHERE subject=$1
        ORDER BY created_at DESC LIMIT $2`
	rows, err := r.pool.Query(ctx, query, subject, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.AuthEvent
	for rows.Next() {
		var ev domain.AuthEvent
		var eventType string
		if err := rows.Scan(&ev.ID, &eventType, &ev.Subject, &ev.Email, &ev.IP, &ev.CreatedAt); err != nil {
			return nil, err
		}
		ev.Event = domain.AuthEventType(eventType)
		events = append(events, ev)
	}
	return events, rows.Err()
}
