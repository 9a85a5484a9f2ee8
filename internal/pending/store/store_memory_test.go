package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"docpanel/internal/pending/models"
	"docpanel/pkg/platform/sentinel"
)

type PendingStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
	now   time.Time
}

func TestPendingStoreSuite(t *testing.T) {
	suite.Run(t, new(PendingStoreSuite))
}

func (s *PendingStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
	s.now = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
}

func (s *PendingStoreSuite) add(identifier string, age time.Duration) {
	s.Require().NoError(s.store.Add(s.ctx, &models.PendingIdentifier{
		Identifier:  identifier,
		SenderID:    "5219999999999",
		RequestedAt: s.now.Add(-age),
	}))
}

func (s *PendingStoreSuite) TestAddRejectsDuplicateWhilePending() {
	s.add("ABCD1234", time.Minute)
	err := s.store.Add(s.ctx, &models.PendingIdentifier{Identifier: "ABCD1234", RequestedAt: s.now})
	s.Require().ErrorIs(err, sentinel.ErrConflict)
}

func (s *PendingStoreSuite) TestRemoveReturnsRecord() {
	s.add("ABCD1234", time.Minute)

	removed, err := s.store.Remove(s.ctx, "ABCD1234")
	s.Require().NoError(err)
	s.Equal("5219999999999", removed.SenderID)

	// Identifier is reusable once resolved.
	s.Require().NoError(s.store.Add(s.ctx, &models.PendingIdentifier{Identifier: "ABCD1234", RequestedAt: s.now}))
}

func (s *PendingStoreSuite) TestRemoveUnknown() {
	_, err := s.store.Remove(s.ctx, "ZZZZ9999")
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PendingStoreSuite) TestDeleteOlderThan() {
	s.add("OLD1", 50*time.Minute)
	s.add("OLD2", 40*time.Minute)
	s.add("FRESH", 5*time.Minute)

	removed, err := s.store.DeleteOlderThan(s.ctx, s.now.Add(-30*time.Minute))
	s.Require().NoError(err)
	s.Equal(2, removed)

	count, err := s.store.Count(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, count)
}

func (s *PendingStoreSuite) TestElapsedMinutesFloors() {
	record := models.PendingIdentifier{RequestedAt: s.now.Add(-(2*time.Minute + 59*time.Second))}
	s.Equal(2, record.ElapsedMinutesAt(s.now))

	future := models.PendingIdentifier{RequestedAt: s.now.Add(time.Minute)}
	s.Equal(0, future.ElapsedMinutesAt(s.now))
}
