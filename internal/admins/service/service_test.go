package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	adminStore "docpanel/internal/admins/store"
	"docpanel/internal/domain"
	"docpanel/internal/platform/logger"
	dErrors "docpanel/pkg/domain-errors"
	"docpanel/pkg/requestcontext"
)

type AdminServiceSuite struct {
	suite.Suite
	store   *adminStore.InMemory
	service *Service
	ctx     context.Context
}

func TestAdminServiceSuite(t *testing.T) {
	suite.Run(t, new(AdminServiceSuite))
}

func (s *AdminServiceSuite) SetupTest() {
	s.store = adminStore.NewInMemory()
	s.service = New(s.store, nil, logger.New())
	s.ctx = requestcontext.WithTime(context.Background(), time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC))
}

func (s *AdminServiceSuite) TestAdd() {
	s.Run("adds an administrator and reports membership", func() {
		admin, err := s.service.Add(s.ctx, "5211111111111", "Ana", domain.SenderUser, "PANEL_WEB")
		s.Require().NoError(err)
		s.Equal("PANEL_WEB", admin.AddedBy)

		isAdmin, err := s.service.IsAdmin(s.ctx, "5211111111111")
		s.Require().NoError(err)
		s.True(isAdmin)
	})

	s.Run("defaults kind from group suffix", func() {
		admin, err := s.service.Add(s.ctx, "120363000000000001@g.us", "Mesa de ayuda", "", "PANEL_WEB")
		s.Require().NoError(err)
		s.Equal(domain.SenderGroup, admin.Kind)
	})

	s.Run("rejects missing fields", func() {
		_, err := s.service.Add(s.ctx, "", "Ana", domain.SenderUser, "PANEL_WEB")
		s.Require().True(dErrors.HasCode(err, dErrors.CodeBadRequest))

		_, err = s.service.Add(s.ctx, "5212222222222", "  ", domain.SenderUser, "PANEL_WEB")
		s.Require().True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	s.Run("rejects duplicates with conflict", func() {
		_, err := s.service.Add(s.ctx, "5213333333333", "Luis", domain.SenderUser, "PANEL_WEB")
		s.Require().NoError(err)

		_, err = s.service.Add(s.ctx, "5213333333333", "Luis", domain.SenderUser, "PANEL_WEB")
		s.Require().True(dErrors.HasCode(err, dErrors.CodeConflict))
	})
}

func (s *AdminServiceSuite) TestRemove() {
	s.Run("removes an administrator", func() {
		_, err := s.service.Add(s.ctx, "5214444444444", "Eva", domain.SenderUser, "PANEL_WEB")
		s.Require().NoError(err)

		s.Require().NoError(s.service.Remove(s.ctx, "5214444444444", "PANEL_WEB"))

		isAdmin, err := s.service.IsAdmin(s.ctx, "5214444444444")
		s.Require().NoError(err)
		s.False(isAdmin)
	})

	s.Run("fails when sender is not an administrator", func() {
		err := s.service.Remove(s.ctx, "5219999999999", "PANEL_WEB")
		s.Require().True(dErrors.HasCode(err, dErrors.CodeConflict))
	})
}

func (s *AdminServiceSuite) TestIsAdminUnknownSender() {
	isAdmin, err := s.service.IsAdmin(s.ctx, "nobody")
	s.Require().NoError(err)
	s.False(isAdmin)
}
