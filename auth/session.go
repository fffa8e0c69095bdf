// Copyright 2026 The Geodash Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package auth gates access to the dashboard behind a session state
// machine with a CAPTCHA challenge and a persisted credential store.
package auth

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// State is the session state.
type State int

const (
	// StateAnonymous is the initial, unauthenticated state.
	StateAnonymous State = iota
	// StateAuthenticated grants access to the dashboard until expiry.
	StateAuthenticated
	// StateLocked blocks further login submissions for the rest of the
	// session. It is not persisted and clears only on Reset.
	StateLocked
)

// String returns the string representation of a State.
func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "Anonymous"
	case StateAuthenticated:
		return "Authenticated"
	case StateLocked:
		return "Locked"
	default:
		return fmt.Sprintf("Unknown(%d)", s)
	}
}

// Session is the per-user authentication state. It is mutated only by
// the Gate and handed out by value.
type Session struct {
	State    State
	Username string
	Expiry   time.Time
	Attempts int
}

// DefaultTTL is how long an authenticated session stays valid.
const DefaultTTL = 24 * time.Hour

// DefaultMaxAttempts is the failed-login budget before lockout.
const DefaultMaxAttempts = 3

// Gate is the authentication gate in front of the dashboard controller.
// It owns the session, the current CAPTCHA challenge and the credential
// store. All methods are safe for concurrent use, although the dashboard
// drives it from a single event loop.
type Gate struct {
	mu        sync.Mutex
	store     *Store
	log       *zap.Logger
	now       func() time.Time
	ttl       time.Duration
	maxTries  int
	session   Session
	challenge *Challenge
}

// Option configures a Gate.
type Option func(*Gate)

// WithClock injects a clock, used by expiry tests.
func WithClock(now func() time.Time) Option {
	return func(g *Gate) { g.now = now }
}

// WithTTL overrides the session lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(g *Gate) { g.ttl = ttl }
}

// WithLogger attaches a logger.
func WithLogger(log *zap.Logger) Option {
	return func(g *Gate) { g.log = log }
}

// NewGate creates a gate over a credential store and issues the first
// CAPTCHA challenge.
func NewGate(store *Store, opts ...Option) *Gate {
	g := &Gate{
		store:     store,
		log:       zap.NewNop(),
		now:       time.Now,
		ttl:       DefaultTTL,
		maxTries:  DefaultMaxAttempts,
		challenge: NewChallenge(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Challenge returns the current CAPTCHA challenge.
func (g *Gate) Challenge() *Challenge {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.challenge
}

// Guard is the entry check for every gated view. It demotes an expired
// session silently, then reports whether the dashboard may be shown.
// The returned session is a snapshot.
func (g *Gate) Guard() (Session, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.expireLocked()
	return g.session, g.session.State == StateAuthenticated
}

// IsAuthenticated reports whether the session is currently valid.
func (g *Gate) IsAuthenticated() bool {
	_, ok := g.Guard()
	return ok
}

// CurrentUser returns the authenticated username, if any.
func (g *Gate) CurrentUser() (string, bool) {
	s, ok := g.Guard()
	if !ok {
		return "", false
	}
	return s.Username, true
}

// Login verifies the CAPTCHA and the credentials. After maxTries failed
// attempts the session locks and further submissions are rejected
// without consulting the store. Every failed verification regenerates
// the challenge.
func (g *Gate) Login(username, password, captchaInput string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.expireLocked()

	if g.session.Attempts >= g.maxTries {
		g.session.State = StateLocked
		g.log.Warn("login rejected: session locked",
			zap.String("username", username),
			zap.Int("attempts", g.session.Attempts))
		return ErrLockedOut
	}

	if !g.challenge.Verify(captchaInput) {
		g.session.Attempts++
		g.challenge = NewChallenge()
		return ErrCaptchaMismatch
	}

	if err := g.store.Authenticate(username, password); err != nil {
		g.session.Attempts++
		g.challenge = NewChallenge()
		if !errors.Is(err, ErrInvalidCredentials) {
			// Unreadable store behaves like an empty one.
			g.log.Error("credential store read failed", zap.Error(err))
		}
		return ErrInvalidCredentials
	}

	now := g.now()
	if err := g.store.RecordLogin(username, now); err != nil {
		// Store unwritable: surface on this action, stay anonymous.
		return err
	}

	g.session.State = StateAuthenticated
	g.session.Username = username
	g.session.Expiry = now.Add(g.ttl)
	g.log.Info("login succeeded",
		zap.String("username", username),
		zap.Time("expiry", g.session.Expiry))
	return nil
}

// Signup registers a new credential record. The CAPTCHA is checked
// first and regenerated on mismatch and on success; the field
// validation rejections leave the current challenge in place.
func (g *Gate) Signup(username, password, confirm, captchaInput string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.challenge.Verify(captchaInput) {
		g.challenge = NewChallenge()
		return ErrCaptchaMismatch
	}
	if username == "" || password == "" {
		return ErrEmptyCredentials
	}
	if password != confirm {
		return ErrPasswordMismatch
	}

	if err := g.store.Create(username, password, g.now()); err != nil {
		return err
	}

	g.challenge = NewChallenge()
	g.log.Info("signup succeeded", zap.String("username", username))
	return nil
}

// Logout returns the session to its initial state, records last_logout
// and issues a fresh challenge.
func (g *Gate) Logout() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.session.Username != "" {
		if err := g.store.RecordLogout(g.session.Username, g.now()); err != nil {
			// Logout proceeds even when stamping fails.
			g.log.Warn("failed to record logout", zap.Error(err))
		}
	}

	g.session = Session{}
	g.challenge = NewChallenge()
}

// Reset is the external session reset: it clears a lockout too.
func (g *Gate) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.session = Session{}
	g.challenge = NewChallenge()
}

// expireLocked demotes an authenticated session whose expiry has passed.
// Callers hold g.mu.
func (g *Gate) expireLocked() {
	if g.session.State != StateAuthenticated {
		return
	}
	if !g.session.Expiry.IsZero() && !g.now().Before(g.session.Expiry) {
		g.log.Info("session expired", zap.String("username", g.session.Username))
		g.session.State = StateAnonymous
		g.session.Username = ""
		g.session.Expiry = time.Time{}
	}
}
