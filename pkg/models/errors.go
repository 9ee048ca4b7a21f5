/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package models

import (
	"errors"
	"fmt"
	"strings"
)

// FailureKind classifies why a run or a single device could not be processed.
type FailureKind string

const (
	KindConfiguration       FailureKind = "configuration"
	KindSourceLoad          FailureKind = "source_load"
	KindUnsupportedPlatform FailureKind = "unsupported_platform"
	KindConnection          FailureKind = "connection"
	KindCommand             FailureKind = "command"
	KindIdentity            FailureKind = "identity"
	KindPersistence         FailureKind = "persistence"
	KindInternal            FailureKind = "internal"
)

var (
	ErrConfiguration       = errors.New("configuration error")
	ErrSourceLoad          = errors.New("device source load error")
	ErrUnsupportedPlatform = errors.New("unsupported platform")
	ErrConnection          = errors.New("connection error")
	ErrCommand             = errors.New("command error")
	ErrIdentity            = errors.New("identity error")
	ErrPersistence         = errors.New("persistence error")
	ErrInternal            = errors.New("internal error")
)

// Sentinel returns the sentinel error matched by errors.Is for this kind.
func (k FailureKind) Sentinel() error {
	switch k {
	case KindConfiguration:
		return ErrConfiguration
	case KindSourceLoad:
		return ErrSourceLoad
	case KindUnsupportedPlatform:
		return ErrUnsupportedPlatform
	case KindConnection:
		return ErrConnection
	case KindCommand:
		return ErrCommand
	case KindIdentity:
		return ErrIdentity
	case KindPersistence:
		return ErrPersistence
	case KindInternal:
		return ErrInternal
	}

	return ErrInternal
}

// DeviceError carries the failure class, the device it concerns (if any) and
// the operation that failed.
type DeviceError struct {
	Kind FailureKind
	IP   string
	Op   string
	Err  error
}

// NewDeviceError wraps err with its failure class.
func NewDeviceError(kind FailureKind, ip, op string, err error) *DeviceError {
	return &DeviceError{
		Kind: kind,
		IP:   ip,
		Op:   op,
		Err:  err,
	}
}

// Error implements the error interface.
func (e *DeviceError) Error() string {
	var b strings.Builder

	b.WriteString(e.Kind.Sentinel().Error())

	if e.IP != "" {
		fmt.Fprintf(&b, " for %s", e.IP)
	}

	if e.Op != "" {
		fmt.Fprintf(&b, " during %s", e.Op)
	}

	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}

	return b.String()
}

// Unwrap returns the underlying cause for errors.Is and errors.As support.
func (e *DeviceError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of the error's kind.
func (e *DeviceError) Is(target error) bool {
	return target == e.Kind.Sentinel()
}

// KindOf returns the failure class of err, or KindInternal when err carries none.
func KindOf(err error) FailureKind {
	var de *DeviceError
	if errors.As(err, &de) {
		return de.Kind
	}

	return KindInternal
}
