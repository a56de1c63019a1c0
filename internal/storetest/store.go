// Package storetest provides an in-memory db.Store used by handler tests.
package storetest

import (
	"context"
	"sort"
	"sync"
	"time"

	"whispr/feedback-api/db"
	"whispr/feedback-api/internal/model"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// MemStore keeps users in a map and mimics the per-document update
// semantics of the Mongo store.
type MemStore struct {
	mu    sync.Mutex
	users map[string]*model.User

	// FailWith, when set, is returned by every method to simulate an
	// unreachable database.
	FailWith error
}

func New() *MemStore {
	return &MemStore{users: map[string]*model.User{}}
}

var _ db.Store = (*MemStore)(nil)

// Seed inserts a user directly, assigning an ID if missing, and returns it.
func (s *MemStore) Seed(u model.User) *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u.ID.IsZero() {
		u.ID = bson.NewObjectID()
	}

	s.users[u.ID.Hex()] = &u
	return &u
}

func (s *MemStore) find(match func(*model.User) bool) (*model.User, error) {
	if s.FailWith != nil {
		return nil, s.FailWith
	}

	for _, u := range s.users {
		if match(u) {
			copied := *u
			copied.Messages = append([]model.Message(nil), u.Messages...)
			return &copied, nil
		}
	}

	return nil, db.ErrNotFound
}

func (s *MemStore) FindVerifiedByUsername(_ context.Context, username string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.find(func(u *model.User) bool { return u.Username == username && u.IsVerified })
}

func (s *MemStore) FindByUsername(_ context.Context, username string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.find(func(u *model.User) bool { return u.Username == username })
}

func (s *MemStore) FindByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.find(func(u *model.User) bool { return u.Email == email })
}

func (s *MemStore) FindByID(_ context.Context, id string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.find(func(u *model.User) bool { return u.ID.Hex() == id })
}

func (s *MemStore) CreateUser(_ context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailWith != nil {
		return s.FailWith
	}

	u.ID = bson.NewObjectID()
	copied := *u
	s.users[u.ID.Hex()] = &copied
	return nil
}

func (s *MemStore) ReissueVerification(_ context.Context, id string, passwordHash, code string, expiry time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailWith != nil {
		return s.FailWith
	}

	u, ok := s.users[id]
	if !ok {
		return db.ErrNotFound
	}

	u.PasswordHash = passwordHash
	u.VerifyCode = code
	u.VerifyCodeExpiry = expiry
	return nil
}

func (s *MemStore) MarkVerified(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailWith != nil {
		return s.FailWith
	}

	u, ok := s.users[id]
	if !ok {
		return db.ErrNotFound
	}

	u.IsVerified = true
	return nil
}

func (s *MemStore) SetAcceptingMessages(_ context.Context, id string, accepting bool) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailWith != nil {
		return nil, s.FailWith
	}

	u, ok := s.users[id]
	if !ok {
		return nil, db.ErrNotFound
	}

	u.IsAcceptingMessages = accepting
	copied := *u
	return &copied, nil
}

func (s *MemStore) AppendMessage(_ context.Context, id string, msg model.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailWith != nil {
		return s.FailWith
	}

	u, ok := s.users[id]
	if !ok {
		return db.ErrNotFound
	}

	u.Messages = append(u.Messages, msg)
	return nil
}

func (s *MemStore) MessagesSortedDesc(_ context.Context, id string) ([]model.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailWith != nil {
		return nil, s.FailWith
	}

	u, ok := s.users[id]
	if !ok {
		return nil, db.ErrNotFound
	}

	msgs := append([]model.Message{}, u.Messages...)
	sort.Slice(msgs, func(i, j int) bool {
		return msgs[i].CreatedAt.After(msgs[j].CreatedAt)
	})

	return msgs, nil
}

func (s *MemStore) RemoveMessage(_ context.Context, userID, messageID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailWith != nil {
		return false, s.FailWith
	}

	u, ok := s.users[userID]
	if !ok {
		return false, db.ErrNotFound
	}

	for i, m := range u.Messages {
		if m.ID.Hex() == messageID {
			u.Messages = append(u.Messages[:i], u.Messages[i+1:]...)
			return true, nil
		}
	}

	return false, nil
}

func (s *MemStore) DeleteStaleUnverified(_ context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailWith != nil {
		return 0, s.FailWith
	}

	var n int64
	for id, u := range s.users {
		if !u.IsVerified && u.VerifyCodeExpiry.Before(cutoff) {
			delete(s.users, id)
			n++
		}
	}

	return n, nil
}
