// Package realtime is a path-keyed record store with change subscriptions.
// Subscribers always receive the full set of records under a path, never a
// delta.
package realtime

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"meal-scheduler/internal/realtime/recorddb"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// ErrNotFound is returned when a record does not exist under a path.
var ErrNotFound = errors.New("record not found")

// Fields is the schemaless content of a record.
type Fields map[string]any

// Record is a single stored record.
type Record struct {
	ID     string
	Fields Fields
}

// Snapshot is the complete content of a path at one point in time,
// in append order.
type Snapshot struct {
	Path    string
	Records []Record
}

// Latest returns the most recently appended record.
func (s Snapshot) Latest() (Record, bool) {
	if len(s.Records) == 0 {
		return Record{}, false
	}
	return s.Records[len(s.Records)-1], true
}

// Store persists records in SQLite and fans out change notifications
// through an in-process pub/sub.
type Store struct {
	queries *recorddb.Queries
	pubSub  *gochannel.GoChannel
}

// NewStore initializes the Store with an existing database connection.
func NewStore(db *sql.DB) *Store {
	logger := watermill.NewStdLogger(false, false)
	return &Store{
		queries: recorddb.New(db),
		pubSub: gochannel.NewGoChannel(
			gochannel.Config{
				OutputChannelBuffer:            16,
				BlockPublishUntilSubscriberAck: false,
			},
			logger,
		),
	}
}

// Close stops the notification fan-out and closes every subscription.
// The database connection is owned by the caller.
func (s *Store) Close() error {
	return s.pubSub.Close()
}

// Read returns the current snapshot of path.
func (s *Store) Read(ctx context.Context, path string) (Snapshot, error) {
	rows, err := s.queries.ListRecordsByPath(ctx, path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to list records at %s: %w", path, err)
	}

	snap := Snapshot{Path: path, Records: make([]Record, 0, len(rows))}
	for _, row := range rows {
		var fields Fields
		if err := json.Unmarshal([]byte(row.Data), &fields); err != nil {
			log.Printf("skipping undecodable record %s/%s: %v", path, row.ID, err)
			continue
		}
		snap.Records = append(snap.Records, Record{ID: row.ID, Fields: fields})
	}
	return snap, nil
}

// Append stores a new record under path and returns its generated id.
func (s *Store) Append(ctx context.Context, path string, fields Fields) (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate record id: %w", err)
	}

	data, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("failed to marshal record: %w", err)
	}

	err = s.queries.InsertRecord(ctx, recorddb.InsertRecordParams{
		Path:      path,
		ID:        id.String(),
		Data:      string(data),
		UpdatedAt: time.Now().UTC().Unix(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to insert record at %s: %w", path, err)
	}

	s.notify(path)
	return id.String(), nil
}

// Set replaces the fields of an existing record.
func (s *Store) Set(ctx context.Context, path, id string, fields Fields) error {
	data, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	n, err := s.queries.UpdateRecord(ctx, recorddb.UpdateRecordParams{
		Data:      string(data),
		UpdatedAt: time.Now().UTC().Unix(),
		Path:      path,
		ID:        id,
	})
	if err != nil {
		return fmt.Errorf("failed to update record %s/%s: %w", path, id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s/%s", ErrNotFound, path, id)
	}

	s.notify(path)
	return nil
}

// Delete removes exactly the record with the given id.
func (s *Store) Delete(ctx context.Context, path, id string) error {
	n, err := s.queries.DeleteRecord(ctx, recorddb.DeleteRecordParams{Path: path, ID: id})
	if err != nil {
		return fmt.Errorf("failed to delete record %s/%s: %w", path, id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s/%s", ErrNotFound, path, id)
	}

	s.notify(path)
	return nil
}

// Subscribe delivers the current snapshot of path, then a fresh snapshot
// after every change. The channel is closed when ctx is done or the store
// is closed.
func (s *Store) Subscribe(ctx context.Context, path string) (<-chan Snapshot, error) {
	// Subscribe before the initial read so no change can slip between them.
	messages, err := s.pubSub.Subscribe(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("watermill subscribe failed: %w", err)
	}

	initial, err := s.Read(ctx, path)
	if err != nil {
		return nil, err
	}

	out := make(chan Snapshot, 1)
	out <- initial

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}
				msg.Ack()

				snap, err := s.Read(ctx, path)
				if err != nil {
					if ctx.Err() != nil {
						return
					}
					log.Printf("failed to refresh snapshot for %s: %v", path, err)
					continue
				}

				select {
				case out <- snap:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

func (s *Store) notify(path string) {
	msg := message.NewMessage(watermill.NewUUID(), []byte(path))
	if err := s.pubSub.Publish(path, msg); err != nil {
		log.Printf("failed to publish change for %s: %v", path, err)
	}
}
