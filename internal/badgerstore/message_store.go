// Package badgerstore keeps the chat log in an embedded badger database.
package badgerstore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"coursechat/pkg/types"

	"github.com/dgraph-io/badger/v4"
)

const sequenceBandwidth = 100

// MessageStore persists messages under keys ordered by course, timestamp and a
// monotonic sequence, so a prefix scan yields the course log in send order.
type MessageStore struct {
	db  *badger.DB
	seq *badger.Sequence
	log *slog.Logger
}

// Open opens (or creates) the store in dir. An empty dir keeps everything in memory.
func Open(dir string, log *slog.Logger) (*MessageStore, error) {
	opts := badger.DefaultOptions(dir).WithLoggingLevel(badger.ERROR)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger: %w", err)
	}
	store, err := New(db, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// New wraps an already opened database.
func New(db *badger.DB, log *slog.Logger) (*MessageStore, error) {
	seq, err := db.GetSequence([]byte("seq:messages"), sequenceBandwidth)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire message sequence: %w", err)
	}
	return &MessageStore{db: db, seq: seq, log: log}, nil
}

type diskMessage struct {
	ID         string `json:"id"`
	CourseID   string `json:"course_id"`
	AuthorID   string `json:"author_id"`
	AuthorName string `json:"author_name"`
	Content    string `json:"content"`
	At         int64  `json:"at"`
}

func coursePrefix(courseID string) []byte {
	return []byte("msg\x00" + courseID + "\x00")
}

func messageKey(courseID string, at int64, seq uint64) []byte {
	return append(coursePrefix(courseID), []byte(fmt.Sprintf("%019d\x00%019d", at, seq))...)
}

func (s *MessageStore) StoreMessage(ctx context.Context, message *types.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	n, err := s.seq.Next()
	if err != nil {
		return fmt.Errorf("failed to allocate message sequence: %w", err)
	}

	at := message.CreatedAt.UTC().UnixNano()
	value, err := json.Marshal(diskMessage{
		ID:         message.ID,
		CourseID:   message.CourseID,
		AuthorID:   message.AuthorID,
		AuthorName: message.Author.Name,
		Content:    message.Content,
		At:         at,
	})
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(messageKey(message.CourseID, at, n), value)
	})
}

func (s *MessageStore) GetCourseMessages(ctx context.Context, courseID string) ([]*types.Message, error) {
	messages := make([]*types.Message, 0)
	prefix := coursePrefix(courseID)

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			err := it.Item().Value(func(value []byte) error {
				var dm diskMessage
				if err := json.Unmarshal(value, &dm); err != nil {
					return err
				}
				messages = append(messages, toMessage(dm))
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read course messages: %w", err)
	}

	s.log.Debug("Loaded course history", "course_id", courseID, "count", len(messages))
	return messages, nil
}

// Close releases the sequence lease and closes the database.
func (s *MessageStore) Close() error {
	if err := s.seq.Release(); err != nil {
		s.log.Warn("Failed to release message sequence", "err", err)
	}
	return s.db.Close()
}

func toMessage(dm diskMessage) *types.Message {
	return &types.Message{
		ID:        dm.ID,
		CourseID:  dm.CourseID,
		AuthorID:  dm.AuthorID,
		Author:    types.NewAuthor(dm.AuthorID, dm.AuthorName),
		Content:   dm.Content,
		CreatedAt: time.Unix(0, dm.At).UTC(),
	}
}
