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
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"image"

	"github.com/dchest/captcha"
)

// Challenge dimensions and code length. Six digits rendered as a
// distorted raster with noise and strike-through lines.
const (
	CodeLength      = 6
	ChallengeWidth  = captcha.StdWidth
	ChallengeHeight = captcha.StdHeight
)

// Challenge is a single CAPTCHA: a digit code and its raster rendering.
// A new challenge is issued after every failed verification so a leaked
// code cannot be replayed.
type Challenge struct {
	code string
	img  *captcha.Image
}

// NewChallenge generates a fresh random challenge.
func NewChallenge() *Challenge {
	digits := captcha.RandomDigits(CodeLength)

	code := make([]byte, CodeLength)
	for i, d := range digits {
		code[i] = '0' + d
	}

	seed := make([]byte, 8)
	rand.Read(seed)
	img := captcha.NewImage(hex.EncodeToString(seed), digits, ChallengeWidth, ChallengeHeight)

	return &Challenge{code: string(code), img: img}
}

// Code returns the expected digits. Exposed for tests and for rendering
// fallbacks; the UI shows only the image.
func (c *Challenge) Code() string { return c.code }

// Image returns the distorted raster rendering of the code.
func (c *Challenge) Image() image.Image { return c.img }

// PNG encodes the challenge image as PNG bytes.
func (c *Challenge) PNG() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := c.img.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Verify compares user input to the code. Digits only, so the exact
// string match is effectively case-insensitive.
func (c *Challenge) Verify(input string) bool {
	return input != "" && input == c.code
}
