package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	id "punchclock/pkg/domain"
	audit "punchclock/pkg/platform/audit"
	txcontext "punchclock/pkg/platform/tx"
)

// Store implements audit.Store using the transactional outbox pattern.
// Events are written to the outbox table in the caller's transaction and
// published to Kafka by the relay.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Payload is the JSON document stored in the outbox and published to Kafka.
type Payload struct {
	ID              string   `json:"id"`
	Category        string   `json:"category"`
	Timestamp       string   `json:"timestamp"`
	CompanyID       string   `json:"companyId"`
	ActorID         string   `json:"actorId,omitempty"`
	Action          string   `json:"action"`
	Outcome         string   `json:"outcome,omitempty"`
	Reason          string   `json:"reason,omitempty"`
	Entity          string   `json:"entity,omitempty"`
	EntityID        string   `json:"entityId,omitempty"`
	Method          string   `json:"method,omitempty"`
	MethodAttempted string   `json:"methodAttempted,omitempty"`
	EmployeeID      string   `json:"employeeId,omitempty"`
	EventType       string   `json:"eventType,omitempty"`
	DeviceLabel     string   `json:"deviceLabel,omitempty"`
	GeoStatus       string   `json:"geoStatus,omitempty"`
	DistanceMeters  *int     `json:"distanceMeters,omitempty"`
	RadiusMeters    *int     `json:"radiusMeters,omitempty"`
	AccuracyMeters  *float64 `json:"accuracy,omitempty"`
	QRDate          string   `json:"qrDate,omitempty"`
	QRDisposition   string   `json:"qrDisposition,omitempty"`
	IP              string   `json:"ip,omitempty"`
	UserAgent       string   `json:"userAgent,omitempty"`
	Client          string   `json:"client,omitempty"`
	RequestID       string   `json:"requestId,omitempty"`
}

func toPayload(eventID uuid.UUID, event audit.Event) Payload {
	p := Payload{
		ID:              eventID.String(),
		Category:        string(event.Category()),
		Timestamp:       event.Timestamp.UTC().Format(time.RFC3339Nano),
		CompanyID:       event.CompanyID.String(),
		Action:          string(event.Action),
		Outcome:         string(event.Outcome),
		Reason:          event.Reason,
		Entity:          event.Entity,
		EntityID:        event.EntityID,
		Method:          event.Method,
		MethodAttempted: event.MethodAttempted,
		EmployeeID:      event.EmployeeID,
		EventType:       event.EventType,
		DeviceLabel:     event.DeviceLabel,
		GeoStatus:       event.GeoStatus,
		DistanceMeters:  event.DistanceMeters,
		RadiusMeters:    event.RadiusMeters,
		AccuracyMeters:  event.AccuracyMeters,
		QRDate:          event.QRDate,
		QRDisposition:   event.QRDisposition,
		IP:              event.IP,
		UserAgent:       event.UserAgent,
		Client:          event.ClientSummary(),
		RequestID:       event.RequestID,
	}
	if !event.ActorID.IsNil() {
		p.ActorID = event.ActorID.String()
	}
	return p
}

// Append writes an audit event to the outbox table.
func (s *Store) Append(ctx context.Context, event audit.Event) error {
	eventID := uuid.New()
	payloadBytes, err := json.Marshal(toPayload(eventID, event))
	if err != nil {
		return fmt.Errorf("marshal audit payload: %w", err)
	}

	query := `
		INSERT INTO outbox (id, aggregate_type, aggregate_id, event_type, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = txcontext.ExecerFrom(ctx, s.db).ExecContext(ctx, query,
		eventID,
		"company",
		event.CompanyID.String(),
		string(event.Action),
		payloadBytes,
		event.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert outbox entry: %w", err)
	}
	return nil
}

// OutboxEntry is an unpublished outbox row.
type OutboxEntry struct {
	ID          uuid.UUID
	AggregateID string
	EventType   string
	Payload     []byte
	CreatedAt   time.Time
}

// FetchPending returns up to limit unpublished entries, oldest first.
func (s *Store) FetchPending(ctx context.Context, limit int) ([]OutboxEntry, error) {
	query := `
		SELECT id, aggregate_id, event_type, payload, created_at
		FROM outbox
		WHERE published_at IS NULL
		ORDER BY created_at
		LIMIT $1
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query outbox: %w", err)
	}
	defer rows.Close()

	var entries []OutboxEntry
	for rows.Next() {
		var e OutboxEntry
		if err := rows.Scan(&e.ID, &e.AggregateID, &e.EventType, &e.Payload, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan outbox entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outbox: %w", err)
	}
	return entries, nil
}

// MarkPublished stamps the entry so the relay does not send it again.
func (s *Store) MarkPublished(ctx context.Context, entryID uuid.UUID, at time.Time) error {
	_, err := s.db.ExecContext(ctx, `UPDATE outbox SET published_at = $2 WHERE id = $1`, entryID, at)
	if err != nil {
		return fmt.Errorf("mark outbox entry published: %w", err)
	}
	return nil
}

// CountByActor tallies action events for the company with from <= created_at < to.
// Relayed rows stay in the outbox, so published entries are counted too.
func (s *Store) CountByActor(ctx context.Context, companyID id.CompanyID, action audit.Action, from, to time.Time) (audit.Tally, error) {
	rows, err := txcontext.ExecerFrom(ctx, s.db).QueryContext(ctx, `
		SELECT payload->>'actorId', COUNT(*)
		FROM outbox
		WHERE aggregate_type = 'company' AND aggregate_id = $1 AND event_type = $2
			AND created_at >= $3 AND created_at < $4
		GROUP BY 1
	`, companyID.String(), string(action), from, to)
	if err != nil {
		return audit.Tally{}, fmt.Errorf("count outbox entries: %w", err)
	}
	defer rows.Close()

	tally := audit.Tally{ByActor: make(map[id.UserID]int)}
	for rows.Next() {
		var (
			actor sql.NullString
			n     int
		)
		if err := rows.Scan(&actor, &n); err != nil {
			return audit.Tally{}, fmt.Errorf("scan outbox count: %w", err)
		}
		tally.Total += n
		if !actor.Valid {
			continue
		}
		actorID, err := id.ParseUserID(actor.String)
		if err != nil {
			continue
		}
		tally.ByActor[actorID] += n
	}
	if err := rows.Err(); err != nil {
		return audit.Tally{}, fmt.Errorf("iterate outbox counts: %w", err)
	}
	return tally, nil
}
