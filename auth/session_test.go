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

package auth

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenStore(filepath.Join(t.TempDir(), "users.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testGate(t *testing.T, opts ...Option) (*Gate, *Store) {
	t.Helper()
	s := testStore(t)
	require.NoError(t, s.Create("alice", "pw123", time.Now()))
	return NewGate(s, opts...), s
}

// captchaCode answers the gate's current challenge. The UI never does
// this; tests do.
func captchaCode(g *Gate) string {
	return g.Challenge().Code()
}

func TestLoginSuccess(t *testing.T) {
	g, _ := testGate(t)

	require.NoError(t, g.Login("alice", "pw123", captchaCode(g)))

	s, ok := g.Guard()
	assert.True(t, ok)
	assert.Equal(t, StateAuthenticated, s.State)
	assert.Equal(t, "alice", s.Username)

	user, ok := g.CurrentUser()
	assert.True(t, ok)
	assert.Equal(t, "alice", user)
}

func TestLoginWrongPassword(t *testing.T) {
	g, _ := testGate(t)

	err := g.Login("alice", "wrong", captchaCode(g))
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.False(t, g.IsAuthenticated())
}

func TestLoginUnknownUser(t *testing.T) {
	g, _ := testGate(t)

	err := g.Login("mallory", "pw123", captchaCode(g))
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginCaptchaMismatch(t *testing.T) {
	g, _ := testGate(t)
	before := g.Challenge()

	err := g.Login("alice", "pw123", "000000")
	assert.ErrorIs(t, err, ErrCaptchaMismatch)
	assert.False(t, g.IsAuthenticated())

	// A failed CAPTCHA issues a fresh challenge.
	assert.NotSame(t, before, g.Challenge())
}

func TestLoginEmptyCaptchaNeverMatches(t *testing.T) {
	g, _ := testGate(t)

	err := g.Login("alice", "pw123", "")
	assert.ErrorIs(t, err, ErrCaptchaMismatch)
}

func TestLockoutAfterThreeFailures(t *testing.T) {
	g, _ := testGate(t)

	for i := 0; i < DefaultMaxAttempts; i++ {
		err := g.Login("alice", "wrong", captchaCode(g))
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}

	// The fourth submission is rejected outright, correct credentials
	// and CAPTCHA notwithstanding.
	err := g.Login("alice", "pw123", captchaCode(g))
	assert.ErrorIs(t, err, ErrLockedOut)

	s, _ := g.Guard()
	assert.Equal(t, StateLocked, s.State)
}

func TestLockoutCountsCaptchaFailures(t *testing.T) {
	g, _ := testGate(t)

	g.Login("alice", "wrong", captchaCode(g))
	g.Login("alice", "pw123", "000000")
	g.Login("alice", "wrong", captchaCode(g))

	err := g.Login("alice", "pw123", captchaCode(g))
	assert.ErrorIs(t, err, ErrLockedOut)
}

func TestResetClearsLockout(t *testing.T) {
	g, _ := testGate(t)

	for i := 0; i < DefaultMaxAttempts; i++ {
		g.Login("alice", "wrong", captchaCode(g))
	}
	require.ErrorIs(t, g.Login("alice", "pw123", captchaCode(g)), ErrLockedOut)

	g.Reset()
	assert.NoError(t, g.Login("alice", "pw123", captchaCode(g)))
}

func TestAttemptsSurviveSuccessfulLogin(t *testing.T) {
	g, _ := testGate(t)

	g.Login("alice", "wrong", captchaCode(g))
	g.Login("alice", "wrong", captchaCode(g))
	require.NoError(t, g.Login("alice", "pw123", captchaCode(g)))

	// The counter carries past a successful login.
	s, ok := g.Guard()
	assert.True(t, ok)
	assert.Equal(t, 2, s.Attempts)

	// Logout zeroes the session, counter included.
	g.Logout()
	s, _ = g.Guard()
	assert.Equal(t, 0, s.Attempts)
}

func TestSessionExpiry(t *testing.T) {
	current := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	g, _ := testGate(t, WithClock(func() time.Time { return current }))

	require.NoError(t, g.Login("alice", "pw123", captchaCode(g)))
	assert.True(t, g.IsAuthenticated())

	// One minute before the 24h expiry the session holds.
	current = current.Add(24*time.Hour - time.Minute)
	assert.True(t, g.IsAuthenticated())

	// At the expiry instant the session is demoted silently.
	current = current.Add(time.Minute)
	assert.False(t, g.IsAuthenticated())

	s, _ := g.Guard()
	assert.Equal(t, StateAnonymous, s.State)
	assert.Equal(t, "", s.Username)
}

func TestCustomTTL(t *testing.T) {
	current := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	g, _ := testGate(t,
		WithClock(func() time.Time { return current }),
		WithTTL(time.Hour))

	require.NoError(t, g.Login("alice", "pw123", captchaCode(g)))
	current = current.Add(2 * time.Hour)
	assert.False(t, g.IsAuthenticated())
}

func TestLogout(t *testing.T) {
	g, store := testGate(t)

	require.NoError(t, g.Login("alice", "pw123", captchaCode(g)))
	before := g.Challenge()
	g.Logout()

	assert.False(t, g.IsAuthenticated())
	assert.NotSame(t, before, g.Challenge())

	cred, err := store.Lookup("alice")
	require.NoError(t, err)
	assert.NotNil(t, cred.LastLogin)
	assert.NotNil(t, cred.LastLogout)
}

func TestSignup(t *testing.T) {
	g, store := testGate(t)
	before := g.Challenge()

	require.NoError(t, g.Signup("bob", "secret", "secret", captchaCode(g)))

	// Success regenerates the challenge.
	assert.NotSame(t, before, g.Challenge())

	_, err := store.Lookup("bob")
	require.NoError(t, err)

	// But signup does not log the user in.
	assert.False(t, g.IsAuthenticated())
	require.NoError(t, g.Login("bob", "secret", captchaCode(g)))
}

func TestSignupCaptchaMismatch(t *testing.T) {
	g, _ := testGate(t)
	before := g.Challenge()

	err := g.Signup("bob", "secret", "secret", "000000")
	assert.ErrorIs(t, err, ErrCaptchaMismatch)
	assert.NotSame(t, before, g.Challenge())
}

func TestSignupValidationKeepsChallenge(t *testing.T) {
	g, _ := testGate(t)

	// Field validation rejections do not burn the current challenge.
	err := g.Signup("", "secret", "secret", captchaCode(g))
	assert.ErrorIs(t, err, ErrEmptyCredentials)

	err = g.Signup("bob", "secret", "different", captchaCode(g))
	assert.ErrorIs(t, err, ErrPasswordMismatch)

	err = g.Signup("alice", "secret", "secret", captchaCode(g))
	assert.ErrorIs(t, err, ErrUserExists)

	// The same challenge still answers a subsequent signup.
	assert.NoError(t, g.Signup("bob", "secret", "secret", captchaCode(g)))
}

func TestGuardAnonymous(t *testing.T) {
	g, _ := testGate(t)

	s, ok := g.Guard()
	assert.False(t, ok)
	assert.Equal(t, StateAnonymous, s.State)

	_, ok = g.CurrentUser()
	assert.False(t, ok)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "Anonymous", StateAnonymous.String())
	assert.Equal(t, "Authenticated", StateAuthenticated.String())
	assert.Equal(t, "Locked", StateLocked.String())
	assert.Equal(t, "Unknown(9)", State(9).String())
}
