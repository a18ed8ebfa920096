package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/williandearaujo/Gestao-OL-360-sub001/internal/knowledge/models"
	id "github.com/williandearaujo/Gestao-OL-360-sub001/pkg/domain"
	dErrors "github.com/williandearaujo/Gestao-OL-360-sub001/pkg/domain-errors"
)

type LinkSuite struct {
	suite.Suite
	cert   models.LearningItem
	course models.LearningItem
	person id.PersonID
}

func TestLinkSuite(t *testing.T) {
	suite.Run(t, new(LinkSuite))
}

func (s *LinkSuite) SetupTest() {
	s.cert = models.LearningItem{
		ID:             id.NewItemID(),
		Name:           "Certified Ethical Hacker",
		Code:           "CEH",
		Type:           models.ItemTypeCertification,
		ValidityMonths: models.Months(36),
	}
	s.course = models.LearningItem{
		ID:   id.NewItemID(),
		Name: "Go Fundamentals",
		Type: models.ItemTypeCourse,
	}
	s.person = id.NewPersonID()
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func (s *LinkSuite) TestObtainedLinks() {
	s.Run("derives expiration from item validity", func() {
		l, err := models.NewLink(models.Link{
			PersonID:   s.person,
			Binding:    models.BindingObtained,
			ObtainedOn: date(2024, 1, 10),
		}, s.cert)
		s.Require().NoError(err)
		s.Require().NotNil(l.ExpiresOn)
		s.Equal(*date(2027, 1, 10), *l.ExpiresOn)
		s.Equal(s.cert.ID, l.ItemID)
		s.Equal(models.PriorityMedium, l.Priority)
		s.False(l.ID.IsNil())
	})

	s.Run("keeps an explicit expiration", func() {
		l, err := models.NewLink(models.Link{
			PersonID:   s.person,
			Binding:    models.BindingObtained,
			ObtainedOn: date(2024, 1, 10),
			ExpiresOn:  date(2025, 1, 10),
		}, s.cert)
		s.Require().NoError(err)
		s.Equal(*date(2025, 1, 10), *l.ExpiresOn)
	})

	s.Run("clears expiration for items that never expire", func() {
		l, err := models.NewLink(models.Link{
			PersonID:   s.person,
			Binding:    models.BindingObtained,
			ObtainedOn: date(2024, 5, 10),
			ExpiresOn:  date(2025, 5, 10),
		}, s.course)
		s.Require().NoError(err)
		s.Nil(l.ExpiresOn)
	})

	s.Run("requires obtained date", func() {
		_, err := models.NewLink(models.Link{PersonID: s.person, Binding: models.BindingObtained}, s.cert)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	s.Run("rejects expiration before obtained date", func() {
		_, err := models.NewLink(models.Link{
			PersonID:   s.person,
			Binding:    models.BindingObtained,
			ObtainedOn: date(2024, 1, 10),
			ExpiresOn:  date(2023, 1, 10),
		}, s.cert)
		s.Require().Error(err)
	})
}

func (s *LinkSuite) TestPlannedLinks() {
	s.Run("desired link drops obtained fields", func() {
		l, err := models.NewLink(models.Link{
			PersonID:   s.person,
			Binding:    models.BindingDesired,
			TargetDate: date(2026, 6, 1),
			ObtainedOn: date(2024, 1, 1),
			ExpiresOn:  date(2027, 1, 1),
			Priority:   models.PriorityHigh,
		}, s.cert)
		s.Require().NoError(err)
		s.Nil(l.ObtainedOn)
		s.Nil(l.ExpiresOn)
		s.NotNil(l.TargetDate)
		s.Equal(models.PriorityHigh, l.Priority)
	})

	s.Run("rejects unknown binding", func() {
		_, err := models.NewLink(models.Link{PersonID: s.person, Binding: "IN_PROGRESS"}, s.cert)
		s.Require().Error(err)
	})

	s.Run("rejects missing person", func() {
		_, err := models.NewLink(models.Link{Binding: models.BindingRequired}, s.cert)
		s.Require().Error(err)
		s.Contains(err.Error(), "person")
	})

	s.Run("rejects mismatched item", func() {
		_, err := models.NewLink(models.Link{
			PersonID: s.person,
			ItemID:   s.course.ID,
			Binding:  models.BindingRequired,
		}, s.cert)
		s.Require().Error(err)
	})
}

func (s *LinkSuite) TestPersonTeamOrDefault() {
	s.Equal("Red Team", models.Person{Team: " Red Team "}.TeamOrDefault())
	s.Equal(models.UnassignedTeam, models.Person{Team: "  "}.TeamOrDefault())
}
