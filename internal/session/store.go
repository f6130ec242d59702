// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MagicStream Contributors

package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/samber/oops"

	"github.com/magicstream/magicstream/pkg/errutil"
)

// Store holds the single authoritative session value for the process and
// mirrors every committed transition to a durable JSON record.
//
// The in-memory value is authoritative: persistence is write-through and
// best-effort, and a storage failure never rolls back a committed value.
// Exactly one Store exists per process; every consumer reads the same
// instance.
type Store struct {
	path   string
	logger *slog.Logger

	mu           sync.RWMutex
	current      Session
	present      bool
	initializing bool
	initialized  bool

	nextSubID int
	subs      map[int]func(Session, bool)
}

// NewStore creates a store persisting to path. The store reports
// Initializing() == true until Initialize has run.
func NewStore(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		path:         path,
		logger:       logger,
		initializing: true,
		subs:         make(map[int]func(Session, bool)),
	}
}

// Initialize hydrates the store from the durable record. It runs once;
// later calls are no-ops. A missing or malformed record yields an absent
// session and is logged, never returned as an error: a corrupt persisted
// session must not block startup.
func (st *Store) Initialize() {
	st.mu.Lock()
	if st.initialized {
		st.mu.Unlock()
		return
	}

	sess, ok := st.hydrate()
	st.current = sess
	st.present = ok
	st.initialized = true
	st.initializing = false
	subs, cur, present := st.snapshotSubsLocked()
	st.mu.Unlock()

	for _, fn := range subs {
		fn(cur, present)
	}
}

// hydrate reads and parses the durable record. Caller holds the lock.
func (st *Store) hydrate() (Session, bool) {
	data, err := os.ReadFile(st.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			errutil.LogWarn(st.logger, "failed to read session record", err)
		}
		return Session{}, false
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		errutil.LogWarn(st.logger, "discarding malformed session record",
			oops.Code("SESSION_RECORD_MALFORMED").With("path", st.path).Wrap(err))
		return Session{}, false
	}
	if err := sess.validate(); err != nil {
		errutil.LogWarn(st.logger, "discarding incomplete session record", err)
		return Session{}, false
	}
	return sess, true
}

// Initializing reports whether hydration has not yet completed. Consumers
// such as the navigation guard use this to distinguish "not yet determined"
// from "determined absent".
func (st *Store) Initializing() bool {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.initializing
}

// Current returns the session value and whether one is present. The
// returned value always reflects the latest committed transition.
func (st *Store) Current() (Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.current, st.present
}

// Token returns the bearer credential of the current session, if any.
// It satisfies the transport.TokenSource interface.
func (st *Store) Token() (string, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	if !st.present {
		return "", false
	}
	return st.current.Token, true
}

// Set commits a fully populated session and writes it through to the
// durable record. Partial sessions are rejected. A persistence failure is
// logged but does not roll back the committed in-memory value.
func (st *Store) Set(sess Session) error {
	if err := sess.validate(); err != nil {
		return err
	}

	st.mu.Lock()
	st.current = sess
	st.present = true
	// An explicit mutation settles initialization: hydration that has
	// not run yet must not clobber a fresher value.
	st.initialized = true
	st.initializing = false
	subs, cur, present := st.snapshotSubsLocked()
	st.mu.Unlock()

	if err := st.persist(sess); err != nil {
		errutil.LogWarn(st.logger, "failed to persist session record", err)
	}

	for _, fn := range subs {
		fn(cur, present)
	}
	return nil
}

// Clear commits the absent state and removes the durable record.
func (st *Store) Clear() {
	st.mu.Lock()
	st.current = Session{}
	st.present = false
	st.initialized = true
	st.initializing = false
	subs, cur, present := st.snapshotSubsLocked()
	st.mu.Unlock()

	if err := os.Remove(st.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		errutil.LogWarn(st.logger, "failed to remove session record",
			oops.Code("SESSION_RECORD_REMOVE").With("path", st.path).Wrap(err))
	}

	for _, fn := range subs {
		fn(cur, present)
	}
}

// Subscribe registers fn to run after every committed transition,
// including the transition out of initialization. The returned cancel
// function removes the registration and is safe to call more than once.
func (st *Store) Subscribe(fn func(sess Session, present bool)) (cancel func()) {
	st.mu.Lock()
	id := st.nextSubID
	st.nextSubID++
	st.subs[id] = fn
	st.mu.Unlock()

	return func() {
		st.mu.Lock()
		delete(st.subs, id)
		st.mu.Unlock()
	}
}

// persist atomically replaces the durable record via temp file and rename.
func (st *Store) persist(sess Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return oops.Code("SESSION_RECORD_ENCODE").Wrap(err)
	}

	dir := filepath.Dir(st.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return oops.Code("SESSION_RECORD_WRITE").With("path", st.path).Wrap(err)
	}

	tmp, err := os.CreateTemp(dir, "session-*.json")
	if err != nil {
		return oops.Code("SESSION_RECORD_WRITE").With("path", st.path).Wrap(err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return oops.Code("SESSION_RECORD_WRITE").With("path", st.path).Wrap(err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return oops.Code("SESSION_RECORD_WRITE").With("path", st.path).Wrap(err)
	}
	if err := tmp.Close(); err != nil {
		return oops.Code("SESSION_RECORD_WRITE").With("path", st.path).Wrap(err)
	}
	if err := os.Rename(tmp.Name(), st.path); err != nil {
		return oops.Code("SESSION_RECORD_WRITE").With("path", st.path).Wrap(err)
	}
	return nil
}

// snapshotSubsLocked copies the subscriber list and current value so
// notifications can run outside the lock. Caller holds the lock.
func (st *Store) snapshotSubsLocked() ([]func(Session, bool), Session, bool) {
	subs := make([]func(Session, bool), 0, len(st.subs))
	for _, fn := range st.subs {
		subs = append(subs, fn)
	}
	return subs, st.current, st.present
}
