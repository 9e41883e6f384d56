package documents_test

import (
	"context"
	"testing"

	"github.com/daybook/daybook/internal/domain/planner"
	dayerr "github.com/daybook/daybook/internal/errors"
	"github.com/daybook/daybook/internal/repositories/documents"
	"github.com/stretchr/testify/suite"
)

type InMemorySuite struct {
	suite.Suite
	ctx  context.Context
	repo documents.Repository
}

func TestInMemorySuite(t *testing.T) {
	suite.Run(t, new(InMemorySuite))
}

func (s *InMemorySuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = documents.NewInMemoryRepository()
}

func (s *InMemorySuite) testDoc(id string) *planner.Document {
	return &planner.Document{
		ID:    id,
		Title: "Week 35",
		Sections: []*planner.Section{
			{ID: "sec-1", Title: "Monday"},
		},
	}
}

func (s *InMemorySuite) TestCreateAndGet() {
	doc := s.testDoc("doc-1")

	s.Require().NoError(s.repo.Create(s.ctx, doc))

	got, err := s.repo.Get(s.ctx, "doc-1")
	s.Require().NoError(err)
	s.Equal("Week 35", got.Title)
}

func (s *InMemorySuite) TestCreateValidation() {
	s.Error(s.repo.Create(s.ctx, nil))
	s.Error(s.repo.Create(s.ctx, &planner.Document{}))
}

func (s *InMemorySuite) TestCreateDuplicate() {
	s.Require().NoError(s.repo.Create(s.ctx, s.testDoc("doc-1")))

	err := s.repo.Create(s.ctx, s.testDoc("doc-1"))
	s.True(dayerr.IsAlreadyExists(err))
}

func (s *InMemorySuite) TestGetMissing() {
	_, err := s.repo.Get(s.ctx, "missing")
	s.True(dayerr.IsNotFound(err))
}

func (s *InMemorySuite) TestUpdate() {
	doc := s.testDoc("doc-1")
	s.Require().NoError(s.repo.Create(s.ctx, doc))

	doc.Title = "Week 36"
	s.Require().NoError(s.repo.Update(s.ctx, doc))

	got, err := s.repo.Get(s.ctx, "doc-1")
	s.Require().NoError(err)
	s.Equal("Week 36", got.Title)
}

func (s *InMemorySuite) TestUpdateMissing() {
	err := s.repo.Update(s.ctx, s.testDoc("missing"))
	s.True(dayerr.IsNotFound(err))
}

func (s *InMemorySuite) TestDelete() {
	s.Require().NoError(s.repo.Create(s.ctx, s.testDoc("doc-1")))

	s.Require().NoError(s.repo.Delete(s.ctx, "doc-1"))

	_, err := s.repo.Get(s.ctx, "doc-1")
	s.True(dayerr.IsNotFound(err))

	s.True(dayerr.IsNotFound(s.repo.Delete(s.ctx, "doc-1")))
}

func (s *InMemorySuite) TestList() {
	docs, err := s.repo.List(s.ctx)
	s.Require().NoError(err)
	s.Empty(docs)

	s.Require().NoError(s.repo.Create(s.ctx, s.testDoc("doc-1")))
	s.Require().NoError(s.repo.Create(s.ctx, s.testDoc("doc-2")))

	docs, err = s.repo.List(s.ctx)
	s.Require().NoError(err)
	s.Len(docs, 2)
}
