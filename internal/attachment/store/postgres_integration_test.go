//go:build integration

package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"vouch/internal/attachment"
	"vouch/pkg/platform/sentinel"
	"vouch/pkg/testutil/containers"
)

type PostgresAttachmentSuite struct {
	suite.Suite
	pg    *containers.PostgresContainer
	store *PostgresStore
}

func (s *PostgresAttachmentSuite) SetupSuite() {
	s.pg = containers.GetManager().GetPostgres(s.T())
	s.store = NewPostgres(s.pg.DB)
}

func (s *PostgresAttachmentSuite) SetupTest() {
	s.Require().NoError(s.pg.TruncateAll(context.Background()))
}

func TestPostgresAttachmentSuite(t *testing.T) {
	suite.Run(t, new(PostgresAttachmentSuite))
}

func (s *PostgresAttachmentSuite) TestPutThenResolve() {
	ctx := context.Background()

	s.Require().NoError(s.store.Put(ctx, &attachment.Attachment{
		ID: 42, OwnerID: "u1", URL: "https://cdn.example/uploads/front.png",
	}))

	att, err := s.store.Resolve(ctx, 42)
	s.Require().NoError(err)
	s.Equal("u1", att.OwnerID)
	s.Equal("png", att.Extension())
}

func (s *PostgresAttachmentSuite) TestResolveUnknownID() {
	_, err := s.store.Resolve(context.Background(), 999)
	s.True(errors.Is(err, sentinel.ErrNotFound))
}

func (s *PostgresAttachmentSuite) TestPutUpdatesExisting() {
	ctx := context.Background()

	s.Require().NoError(s.store.Put(ctx, &attachment.Attachment{
		ID: 42, OwnerID: "u1", URL: "https://cdn.example/uploads/front.png",
	}))
	s.Require().NoError(s.store.Put(ctx, &attachment.Attachment{
		ID: 42, OwnerID: "u1", URL: "https://cdn.example/uploads/front-v2.jpg",
	}))

	att, err := s.store.Resolve(ctx, 42)
	s.Require().NoError(err)
	s.Equal("jpg", att.Extension())
}
