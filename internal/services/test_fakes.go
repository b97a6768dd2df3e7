package services

import (
	"sync"

	"github.com/bitwatch/bitwatch-api/internal/models"
	"github.com/bitwatch/bitwatch-api/internal/storage"
	"github.com/google/uuid"
)

// FakeUserStore is a test-only in-memory storage.UserStore. It enforces the
// same uniqueness rules as the real store and exposes error fields for
// behavior injection.
type FakeUserStore struct {
	mu        sync.RWMutex
	users     map[uuid.UUID]*models.User
	CreateErr error
	FindErr   error
	ListErr   error
}

func NewFakeUserStore() *FakeUserStore {
	return &FakeUserStore{users: make(map[uuid.UUID]*models.User)}
}

func (f *FakeUserStore) Create(user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.CreateErr != nil {
		return f.CreateErr
	}
	for _, u := range f.users {
		if u.Email == user.Email {
			return storage.ErrDuplicateEmail
		}
		if u.Nickname == user.Nickname {
			return storage.ErrDuplicateNickname
		}
	}
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *FakeUserStore) FindByEmail(email string) (*models.User, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.FindErr != nil {
		return nil, f.FindErr
	}
	for _, u := range f.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (f *FakeUserStore) FindByNickname(nickname string) (*models.User, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.FindErr != nil {
		return nil, f.FindErr
	}
	for _, u := range f.users {
		if u.Nickname == nickname {
			clone := *u
			return &clone, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (f *FakeUserStore) FindByID(id uuid.UUID) (*models.User, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.FindErr != nil {
		return nil, f.FindErr
	}
	u, ok := f.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (f *FakeUserStore) All() ([]models.User, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	users := make([]models.User, 0, len(f.users))
	for _, u := range f.users {
		users = append(users, *u)
	}
	return users, nil
}

// FakeVerificationStore is a test-only in-memory storage.VerificationStore.
type FakeVerificationStore struct {
	mu        sync.RWMutex
	rows      map[string]*models.EmailVerification
	UpsertErr error
}

func NewFakeVerificationStore() *FakeVerificationStore {
	return &FakeVerificationStore{rows: make(map[string]*models.EmailVerification)}
}

func (f *FakeVerificationStore) Upsert(v *models.EmailVerification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.UpsertErr != nil {
		return f.UpsertErr
	}
	clone := *v
	f.rows[v.Email] = &clone
	return nil
}

func (f *FakeVerificationStore) FindByEmail(email string) (*models.EmailVerification, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	v, ok := f.rows[email]
	if !ok {
		return nil, storage.ErrNotFound
	}
	clone := *v
	return &clone, nil
}

func (f *FakeVerificationStore) MarkVerified(email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.rows[email]
	if !ok {
		return storage.ErrNotFound
	}
	v.IsVerified = true
	return nil
}

// SentMail records a message delivered through FakeSender.
type SentMail struct {
	To      string
	Subject string
	Body    string
}

// FakeSender is a test-only mailer.Sender that records sent messages.
type FakeSender struct {
	mu      sync.Mutex
	Sent    []SentMail
	SendErr error
}

func (f *FakeSender) Send(to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SendErr != nil {
		return f.SendErr
	}
	f.Sent = append(f.Sent, SentMail{To: to, Subject: subject, Body: body})
	return nil
}
