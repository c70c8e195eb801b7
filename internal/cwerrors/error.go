/*
 *     Copyright 2026 The Cropwise Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package cwerrors

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by the advisor core.
var (
	// ErrInvalidInput is returned for malformed or non-numeric request payloads.
	ErrInvalidInput = errors.New("invalid input")

	// ErrModelUnavailable is returned when no fitted model set is loaded.
	ErrModelUnavailable = errors.New("model unavailable")

	// ErrPersistence is returned when artifacts can not be written or read.
	ErrPersistence = errors.New("persistence failure")

	// ErrCropNotFound is returned when a crop id is absent from the knowledge base.
	ErrCropNotFound = errors.New("crop not found")
)

// Error carries a kind and a human readable message.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap lets errors.Is match the kind.
func (e *Error) Unwrap() error {
	return e.Kind
}

func New(kind error, msg string) *Error {
	return &Error{
		Kind:    kind,
		Message: msg,
	}
}

func Newf(kind error, format string, a ...any) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, a...),
	}
}

// Wrap annotates err with kind, keeping err in the message.
func Wrap(kind error, err error, msg string) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf("%s: %v", msg, err),
	}
}

// KindOf returns the kind of err, nil if err carries no known kind.
func KindOf(err error) error {
	for _, kind := range []error{ErrInvalidInput, ErrModelUnavailable, ErrPersistence, ErrCropNotFound} {
		if errors.Is(err, kind) {
			return kind
		}
	}

	return nil
}

func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

func IsModelUnavailable(err error) bool {
	return errors.Is(err, ErrModelUnavailable)
}

func IsCropNotFound(err error) bool {
	return errors.Is(err, ErrCropNotFound)
}
