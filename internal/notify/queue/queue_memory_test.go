package queue

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"docpanel/internal/notify/models"
)

type MemoryQueueSuite struct {
	suite.Suite
	queue *InMemory
	ctx   context.Context
}

func TestMemoryQueueSuite(t *testing.T) {
	suite.Run(t, new(MemoryQueueSuite))
}

func (s *MemoryQueueSuite) SetupTest() {
	s.queue = NewInMemory()
	s.ctx = context.Background()
}

func (s *MemoryQueueSuite) newMessage(correlationID, recipient string) *models.Message {
	return &models.Message{
		ID:            uuid.New(),
		Recipient:     recipient,
		Body:          "cuerpo",
		CorrelationID: correlationID,
		CreatedAt:     time.Now(),
	}
}

func (s *MemoryQueueSuite) TestSequenceIsMonotonic() {
	first := s.newMessage("C1", "R1")
	second := s.newMessage("C2", "R1")
	s.Require().NoError(s.queue.Enqueue(s.ctx, first))
	s.Require().NoError(s.queue.Enqueue(s.ctx, second))

	s.Equal(int64(1), first.Seq)
	s.Equal(int64(2), second.Seq)
}

func (s *MemoryQueueSuite) TestEnqueueIsIdempotentPerCorrelationAndRecipient() {
	s.Require().NoError(s.queue.Enqueue(s.ctx, s.newMessage("C1", "R1")))
	s.Require().NoError(s.queue.Enqueue(s.ctx, s.newMessage("C1", "R1")))
	s.Require().NoError(s.queue.Enqueue(s.ctx, s.newMessage("C1", "R2")))

	s.Len(s.queue.All(), 2)
}

func (s *MemoryQueueSuite) TestNextBatchSkipsRelayed() {
	first := s.newMessage("C1", "R1")
	second := s.newMessage("C2", "R1")
	s.Require().NoError(s.queue.Enqueue(s.ctx, first))
	s.Require().NoError(s.queue.Enqueue(s.ctx, second))

	batch, err := s.queue.NextBatch(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(batch, 2)

	s.Require().NoError(s.queue.MarkRelayed(s.ctx, first.Seq))

	batch, err = s.queue.NextBatch(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(batch, 1)
	s.Equal(second.Seq, batch[0].Seq)
}

func (s *MemoryQueueSuite) TestNextBatchHonorsLimit() {
	for i := 0; i < 5; i++ {
		s.Require().NoError(s.queue.Enqueue(s.ctx, s.newMessage("C"+string(rune('A'+i)), "R1")))
	}
	batch, err := s.queue.NextBatch(s.ctx, 3)
	s.Require().NoError(err)
	s.Len(batch, 3)
}
