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

import "errors"

// Errors surfaced to the login and signup forms. None of them are fatal;
// every one is recoverable by re-attempting the triggering action.
var (
	// ErrLockedOut is returned after too many failed login attempts.
	ErrLockedOut = errors.New("too many failed login attempts")

	// ErrCaptchaMismatch is returned when the CAPTCHA input is wrong.
	ErrCaptchaMismatch = errors.New("CAPTCHA verification failed")

	// ErrInvalidCredentials is returned for unknown users or wrong passwords.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrUserExists is returned when a signup username is already taken.
	ErrUserExists = errors.New("username already exists")

	// ErrPasswordMismatch is returned when password and confirmation differ.
	ErrPasswordMismatch = errors.New("passwords do not match")

	// ErrEmptyCredentials is returned when username or password is empty.
	ErrEmptyCredentials = errors.New("username and password are required")

	// ErrUserNotFound is returned when looking up an unknown user.
	ErrUserNotFound = errors.New("user not found")
)
