// Package session holds the single authoritative session for the running
// process and keeps it synchronized with the durable keystore.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"sync"

	"healthdesk/internal/client/keystore"
	"healthdesk/internal/client/models"
	"healthdesk/internal/dbx"
	"healthdesk/internal/logging"
	"healthdesk/internal/shared"
)

// State is the process-wide authentication state.
type State int

const (
	// StateUnknown holds before Initialize has run. Protected views must not
	// render until the store has left this state.
	StateUnknown State = iota
	StateUnauthenticated
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// storedUser is the durable identity record, kept under keystore.KeyUser.
// The token lives in its own entry so the layout mirrors the two keys the
// web front end kept in localStorage.
type storedUser struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Store owns the in-memory session and its durable mirror. All methods are
// safe for concurrent use; EndSession in particular may arrive asynchronously
// from the gateway's auth-failure hook while other calls are in flight.
type Store struct {
	mu      sync.Mutex
	db      *sql.DB
	log     logging.Logger
	state   State
	current *models.Identity
	onEnd   func()
}

func NewStore(db *sql.DB, log logging.Logger) *Store {
	return &Store{db: db, log: log, state: StateUnknown}
}

// SetOnEnd registers the observer notified when an authenticated session is
// torn down. The front end uses it to navigate back to the login step.
func (s *Store) SetOnEnd(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onEnd = fn
}

// Initialize rehydrates the session from the keystore. A well-formed record
// (token and full identity both present) is adopted; anything partial or
// malformed is discarded from the keystore and the store starts
// unauthenticated. Must run before any protected view renders.
func (s *Store) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	repo := keystore.NewSQLiteRepository(s.db)

	token, err := repo.Get(ctx, keystore.KeyToken)
	if err != nil {
		return err
	}
	userData, err := repo.Get(ctx, keystore.KeyUser)
	if err != nil {
		return err
	}

	if len(token) > 0 && len(userData) > 0 {
		var u storedUser
		if err := json.Unmarshal(userData, &u); err == nil {
			id := models.Identity{Token: string(token), UserID: u.UserID, Username: u.Username, Email: u.Email}
			if id.Complete() {
				s.current = &id
				s.state = StateAuthenticated
				s.log.Info(ctx, "session rehydrated", "username", id.Username)
				return nil
			}
		}
	}

	// Partial or malformed records never survive.
	if len(token) > 0 || len(userData) > 0 {
		s.log.Warn(ctx, "discarding malformed session record")
		if err := s.clearStorage(ctx); err != nil {
			return err
		}
	}

	s.current = nil
	s.state = StateUnauthenticated
	return nil
}

// CompleteAuthentication adopts a fully populated identity bundle as the
// current session and persists it. This is the only transition from absent to
// present. The two keystore entries are written in one transaction so a crash
// cannot leave a partial record behind.
func (s *Store) CompleteAuthentication(ctx context.Context, id models.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !id.Complete() {
		return shared.ErrInvalidSession
	}
	if s.state == StateAuthenticated {
		return shared.ErrAlreadyAuthenticated
	}

	userData, err := json.Marshal(storedUser{UserID: id.UserID, Username: id.Username, Email: id.Email})
	if err != nil {
		return err
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := keystore.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, keystore.KeyToken, []byte(id.Token)); err != nil {
			return err
		}
		return repo.Set(ctx, keystore.KeyUser, userData)
	})
	if err != nil {
		return err
	}

	s.current = &id
	s.state = StateAuthenticated
	s.log.Info(ctx, "session established", "username", id.Username)
	return nil
}

// EndSession clears the keystore and the in-memory session. Calling it when
// already unauthenticated is a no-op, not an error; it is safe to invoke at
// any time, including from the gateway's auth-failure hook. The in-memory
// teardown happens even when the durable clear fails: a revoked token must
// never keep being served. The storage error is reported afterwards.
func (s *Store) EndSession(ctx context.Context) error {
	s.mu.Lock()

	wasAuthenticated := s.state == StateAuthenticated

	storageErr := s.clearStorage(ctx)
	s.current = nil
	s.state = StateUnauthenticated
	onEnd := s.onEnd
	s.mu.Unlock()

	if wasAuthenticated {
		s.log.Info(ctx, "session ended")
		if onEnd != nil {
			onEnd()
		}
	}
	return storageErr
}

// clearStorage removes both session entries. Caller holds the lock.
func (s *Store) clearStorage(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := keystore.NewSQLiteRepository(tx)
		if err := repo.Delete(ctx, keystore.KeyToken); err != nil {
			return err
		}
		return repo.Delete(ctx, keystore.KeyUser)
	})
}

// Current returns a copy of the session identity and whether one exists.
// Pure in-memory read; the keystore is only touched at Initialize and on
// writes.
func (s *Store) Current() (models.Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return models.Identity{}, false
	}
	return *s.current, true
}

func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == StateAuthenticated
}

// State reports the lifecycle state (Unknown until Initialize completes).
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Token implements api.TokenSource. Empty when unauthenticated.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return ""
	}
	return s.current.Token
}
