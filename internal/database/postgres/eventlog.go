package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chibox/chibox-server/internal/eventlog"
)

const eventColumns = `id, event_type, user_id, payload, metadata, created_at`

// EventLogRepository stores the activity log in the event_log table
type EventLogRepository struct {
	pool *pgxpool.Pool
}

var _ eventlog.Repository = (*EventLogRepository)(nil)

// NewEventLogRepository creates a PostgreSQL event log repository
func NewEventLogRepository(pool *pgxpool.Pool) *EventLogRepository {
	return &EventLogRepository{pool: pool}
}

func (r *EventLogRepository) LogEvent(ctx context.Context, eventType string, userID *string, payload, metadata map[string]interface{}) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf(ErrMsgWrite, "event payload", err)
	}

	var metadataJSON []byte
	if len(metadata) > 0 {
		if metadataJSON, err = json.Marshal(metadata); err != nil {
			return fmt.Errorf(ErrMsgWrite, "event metadata", err)
		}
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO event_log (event_type, user_id, payload, metadata)
		VALUES ($1, $2, $3, $4)`,
		eventType, userID, payloadJSON, metadataJSON)
	if err != nil {
		return fmt.Errorf(ErrMsgWrite, "event", err)
	}
	return nil
}

func (r *EventLogRepository) GetEvents(ctx context.Context, filter eventlog.EventFilter) ([]eventlog.Event, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + eventColumns + ` FROM event_log WHERE true`)

	var args []interface{}
	arg := func(clause string, v interface{}) {
		args = append(args, v)
		fmt.Fprintf(&sb, clause, len(args))
	}

	if filter.UserID != nil {
		arg(" AND user_id = $%d", *filter.UserID)
	}
	if filter.EventType != nil {
		arg(" AND event_type = $%d", *filter.EventType)
	}
	if filter.Since != nil {
		arg(" AND created_at >= $%d", *filter.Since)
	}
	sb.WriteString(" ORDER BY created_at DESC, id DESC")
	if filter.Limit > 0 {
		arg(" LIMIT $%d", filter.Limit)
	}

	rows, err := r.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgEventQuery, err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

func (r *EventLogRepository) CleanupOldEvents(ctx context.Context, before time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM event_log WHERE created_at < $1`, before)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgWrite, "event cleanup", err)
	}
	return tag.RowsAffected(), nil
}

func scanEvents(rows pgx.Rows) ([]eventlog.Event, error) {
	var events []eventlog.Event
	for rows.Next() {
		var evt eventlog.Event
		var payloadJSON, metadataJSON []byte
		if err := rows.Scan(&evt.ID, &evt.EventType, &evt.UserID, &payloadJSON, &metadataJSON, &evt.CreatedAt); err != nil {
			return nil, fmt.Errorf(ErrMsgEventQuery, err)
		}
		if err := json.Unmarshal(payloadJSON, &evt.Payload); err != nil {
			return nil, fmt.Errorf(ErrMsgEventQuery, err)
		}
		if len(metadataJSON) > 0 {
			if err := json.Unmarshal(metadataJSON, &evt.Metadata); err != nil {
				return nil, fmt.Errorf(ErrMsgEventQuery, err)
			}
		}
		events = append(events, evt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf(ErrMsgEventQuery, err)
	}
	return events, nil
}
