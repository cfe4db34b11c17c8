package db

import (
	"context"
	"fmt"

	"github.com/EO-DataHub/eodhp-admin-console/models"
)

// Record inserts an audit event.
func (a *AuditDB) Record(ctx context.Context, event models.AuditEvent) error {
	_, err := a.DB.ExecContext(ctx, `
		INSERT INTO audit_events (id, action, record_id, endpoint, outcome, message, actor, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		event.ID, event.Action, event.RecordID, event.Endpoint, event.Outcome,
		event.Message, event.Actor, event.CreatedAt)
	if err != nil {
		return fmt.Errorf("error inserting audit event: %w", err)
	}
	return nil
}

// ListRecent returns up to limit events, newest first.
func (a *AuditDB) ListRecent(ctx context.Context, limit int) ([]models.AuditEvent, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := a.DB.QueryContext(ctx, `
		SELECT id, action, record_id, endpoint, outcome, message, actor, created_at
		FROM audit_events
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("error retrieving audit events: %w", err)
	}
	defer rows.Close()

	var events []models.AuditEvent
	for rows.Next() {
		var e models.AuditEvent
		if err := rows.Scan(&e.ID, &e.Action, &e.RecordID, &e.Endpoint, &e.Outcome,
			&e.Message, &e.Actor, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning audit events: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating audit events: %w", err)
	}
	return events, nil
}
