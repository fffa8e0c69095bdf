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
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

// Store persists credential records in an embedded SQLite database.
// Mutations are single statements, so concurrent sessions cannot lose
// updates the way a whole-file rewrite would.
type Store struct {
	db   *sql.DB
	path string
}

// Credential is a persisted user record. The password itself is stored
// only as a bcrypt hash.
type Credential struct {
	Username   string
	CreatedAt  time.Time
	LastLogin  *time.Time
	LastLogout *time.Time
}

// OpenStore creates or opens the credential store at path. A missing or
// empty database is equivalent to "no users exist yet".
func OpenStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", "file:"+path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open credential store: %w", err)
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize credential store: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		username    TEXT PRIMARY KEY,
		password    TEXT NOT NULL,
		created_at  DATETIME NOT NULL,
		last_login  DATETIME,
		last_logout DATETIME
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Create persists a new credential record with a bcrypt password hash.
// Returns ErrUserExists when the username is taken.
func (s *Store) Create(username, password string, now time.Time) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO users (username, password, created_at) VALUES (?, ?, ?)`,
		username, string(hash), now.UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrUserExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Authenticate checks the password for a username with a constant-time
// bcrypt comparison. Unknown users and wrong passwords are
// indistinguishable to the caller.
func (s *Store) Authenticate(username, password string) error {
	var hash string
	err := s.db.QueryRow(
		`SELECT password FROM users WHERE username = ?`, username,
	).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrInvalidCredentials
	}
	if err != nil {
		return fmt.Errorf("failed to read credential record: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// RecordLogin stamps last_login for the user.
func (s *Store) RecordLogin(username string, t time.Time) error {
	_, err := s.db.Exec(
		`UPDATE users SET last_login = ? WHERE username = ?`, t.UTC(), username,
	)
	if err != nil {
		return fmt.Errorf("failed to record login: %w", err)
	}
	return nil
}

// RecordLogout stamps last_logout for the user.
func (s *Store) RecordLogout(username string, t time.Time) error {
	_, err := s.db.Exec(
		`UPDATE users SET last_logout = ? WHERE username = ?`, t.UTC(), username,
	)
	if err != nil {
		return fmt.Errorf("failed to record logout: %w", err)
	}
	return nil
}

// Lookup returns the credential record for a username.
func (s *Store) Lookup(username string) (Credential, error) {
	var (
		cred       Credential
		lastLogin  sql.NullTime
		lastLogout sql.NullTime
	)
	err := s.db.QueryRow(
		`SELECT username, created_at, last_login, last_logout FROM users WHERE username = ?`,
		username,
	).Scan(&cred.Username, &cred.CreatedAt, &lastLogin, &lastLogout)
	if errors.Is(err, sql.ErrNoRows) {
		return Credential{}, ErrUserNotFound
	}
	if err != nil {
		return Credential{}, fmt.Errorf("failed to read credential record: %w", err)
	}
	if lastLogin.Valid {
		cred.LastLogin = &lastLogin.Time
	}
	if lastLogout.Valid {
		cred.LastLogout = &lastLogout.Time
	}
	return cred, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
