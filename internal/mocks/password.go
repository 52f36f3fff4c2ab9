package mocks

import (
	"errors"

	"github.com/phrazzld/question-api/internal/service/auth"
)

// MockPasswordHasher implements auth.PasswordHasher and auth.PasswordVerifier for testing.
// Hash prefixes the plaintext with "hashed:"; Compare checks that relationship
// unless CompareFn is set.
type MockPasswordHasher struct {
	HashFn    func(password string) (string, error)
	CompareFn func(hashedPassword, password string) error

	// HashCalls records every plaintext passed to Hash
	HashCalls []string
	// CompareCallCount tracks how many times Compare was called
	CompareCallCount int
}

var (
	_ auth.PasswordHasher   = (*MockPasswordHasher)(nil)
	_ auth.PasswordVerifier = (*MockPasswordHasher)(nil)
)

// Hash implements auth.PasswordHasher
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	m.HashCalls = append(m.HashCalls, password)
	if m.HashFn != nil {
		return m.HashFn(password)
	}
	return "hashed:" + password, nil
}

// Compare implements auth.PasswordVerifier
func (m *MockPasswordHasher) Compare(hashedPassword, password string) error {
	m.CompareCallCount++
	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if hashedPassword != "hashed:"+password {
		return auth.ErrInvalidCredentials
	}
	return nil
}

// ErrMock is a generic failure for tests that only need a non-nil error.
var ErrMock = errors.New("mock failure")
