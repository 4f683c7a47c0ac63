package domainerrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
)

// DomainErrorsSuite tests the domain error primitives.
//
// Justification: These are core error primitives used at every trust boundary.
// Unit tests ensure invariants like "wrapped domain errors preserve original code"
// and "errors.Is matches by code" are maintained.
type DomainErrorsSuite struct {
	suite.Suite
}

func TestDomainErrorsSuite(t *testing.T) {
	suite.Run(t, new(DomainErrorsSuite))
}

func (s *DomainErrorsSuite) TestErrorInterface() {
	s.Run("returns message when present", func() {
		err := &Error{Code: CodeNotFound, Message: "attachment not found"}
		s.Equal("attachment not found", err.Error())
	})

	s.Run("returns code when message is empty", func() {
		err := &Error{Code: CodeDisallowedType}
		s.Equal("disallowed_type", err.Error())
	})
}

func (s *DomainErrorsSuite) TestUnwrap() {
	s.Run("returns wrapped error", func() {
		inner := errors.New("database connection failed")
		err := &Error{Code: CodeStoreUnavailable, Message: "persist record", Err: inner}
		s.Equal(inner, err.Unwrap())
	})

	s.Run("returns nil when no wrapped error", func() {
		err := &Error{Code: CodeNotFound, Message: "not found"}
		s.Nil(err.Unwrap())
	})
}

func (s *DomainErrorsSuite) TestIsMatching() {
	s.Run("matches by code only", func() {
		err1 := &Error{Code: CodeForbidden, Message: "attachment not owned"}
		err2 := &Error{Code: CodeForbidden, Message: "token scope mismatch"}
		s.True(err1.Is(err2))
	})

	s.Run("does not match different codes", func() {
		err1 := &Error{Code: CodeNotFound}
		err2 := &Error{Code: CodeInternal}
		s.False(err1.Is(err2))
	})
}

func (s *DomainErrorsSuite) TestWrap() {
	s.Run("preserves original domain code", func() {
		inner := New(CodeDisallowedType, "extension not allowed")
		wrapped := Wrap(inner, CodeInternal, "validate attachment")
		s.True(HasCode(wrapped, CodeDisallowedType))
	})

	s.Run("applies code to plain errors", func() {
		wrapped := Wrap(errors.New("connection refused"), CodeStoreUnavailable, "persist record")
		s.True(HasCode(wrapped, CodeStoreUnavailable))
	})
}

func (s *DomainErrorsSuite) TestHasCode() {
	s.False(HasCode(nil, CodeNotFound))
	s.False(HasCode(errors.New("plain"), CodeNotFound))
	s.True(HasCode(New(CodeUnauthorized, ""), CodeUnauthorized))
}
