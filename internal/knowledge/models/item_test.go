package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/williandearaujo/Gestao-OL-360-sub001/internal/knowledge/models"
	id "github.com/williandearaujo/Gestao-OL-360-sub001/pkg/domain"
	dErrors "github.com/williandearaujo/Gestao-OL-360-sub001/pkg/domain-errors"
)

type LearningItemSuite struct {
	suite.Suite
}

func TestLearningItemSuite(t *testing.T) {
	suite.Run(t, new(LearningItemSuite))
}

func (s *LearningItemSuite) certification() models.LearningItem {
	return models.LearningItem{
		Name:           "Certified Information Systems Security Professional",
		Code:           "CISSP",
		Type:           models.ItemTypeCertification,
		Provider:       "ISC2",
		Area:           "Security",
		ValidityMonths: models.Months(36),
	}
}

func (s *LearningItemSuite) TestConstructionInvariants() {
	s.Run("rejects empty name", func() {
		spec := s.certification()
		spec.Name = "   "
		_, err := models.NewLearningItem(spec)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
		s.Contains(err.Error(), "name")
	})

	s.Run("rejects certification without code", func() {
		spec := s.certification()
		spec.Code = ""
		_, err := models.NewLearningItem(spec)
		s.Require().Error(err)
		s.Contains(err.Error(), "code")
	})

	s.Run("rejects degree without level", func() {
		_, err := models.NewLearningItem(models.LearningItem{Name: "Computer Science", Type: models.ItemTypeDegree})
		s.Require().Error(err)
		s.Contains(err.Error(), "degree level")
	})

	s.Run("rejects unknown type", func() {
		_, err := models.NewLearningItem(models.LearningItem{Name: "x", Type: "WORKSHOP"})
		s.Require().Error(err)
	})

	s.Run("rejects non-positive validity", func() {
		spec := s.certification()
		spec.ValidityMonths = models.Months(0)
		_, err := models.NewLearningItem(spec)
		s.Require().Error(err)
	})

	s.Run("accepts course without code", func() {
		item, err := models.NewLearningItem(models.LearningItem{Name: "Python for Security", Type: models.ItemTypeCourse})
		s.Require().NoError(err)
		s.False(item.ID.IsNil())
	})

	s.Run("keeps supplied ID", func() {
		spec := s.certification()
		spec.ID = id.NewItemID()
		item, err := models.NewLearningItem(spec)
		s.Require().NoError(err)
		s.Equal(spec.ID, item.ID)
	})
}

func (s *LearningItemSuite) TestNormalization() {
	s.Run("drops validity for courses and degrees", func() {
		item, err := models.NewLearningItem(models.LearningItem{
			Name:           "MBA in IT Management",
			Type:           models.ItemTypeDegree,
			DegreeLevel:    models.DegreeMBA,
			ValidityMonths: models.Months(24),
		})
		s.Require().NoError(err)
		s.Nil(item.ValidityMonths)
		s.False(item.Expires())
	})

	s.Run("drops degree level for non-degrees", func() {
		spec := s.certification()
		spec.DegreeLevel = models.DegreeMasters
		item, err := models.NewLearningItem(spec)
		s.Require().NoError(err)
		s.Equal(models.NoDegreeLevel, item.DegreeLevel)
	})

	s.Run("trims text fields", func() {
		spec := s.certification()
		spec.Provider = "  ISC2 "
		item, err := models.NewLearningItem(spec)
		s.Require().NoError(err)
		s.Equal("ISC2", item.Provider)
	})

	s.Run("does not mutate the spec", func() {
		spec := s.certification()
		spec.Name = "  padded  "
		_, err := models.NewLearningItem(spec)
		s.Require().NoError(err)
		s.Equal("  padded  ", spec.Name)
	})
}

func (s *LearningItemSuite) TestEffectiveDegreeLevel() {
	s.Run("valid degree keeps level", func() {
		item := models.LearningItem{Type: models.ItemTypeDegree, DegreeLevel: models.DegreeDoctorate}
		s.Equal(models.DegreeDoctorate, item.EffectiveDegreeLevel())
	})

	s.Run("degree with invalid level has none", func() {
		item := models.LearningItem{Type: models.ItemTypeDegree, DegreeLevel: "BOOTCAMP"}
		s.Equal(models.NoDegreeLevel, item.EffectiveDegreeLevel())
	})

	s.Run("non-degree with level has none", func() {
		item := models.LearningItem{Type: models.ItemTypeCourse, DegreeLevel: models.DegreeMBA}
		s.Equal(models.NoDegreeLevel, item.EffectiveDegreeLevel())
	})
}

func (s *LearningItemSuite) TestComputeExpiration() {
	obtained := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	s.Run("certification with validity expires after the period", func() {
		exp := models.ComputeExpiration(s.certification(), obtained)
		s.Require().NotNil(exp)
		s.Equal(time.Date(2027, 3, 15, 0, 0, 0, 0, time.UTC), *exp)
	})

	s.Run("permanent certification never expires", func() {
		spec := s.certification()
		spec.ValidityMonths = nil
		s.Nil(models.ComputeExpiration(spec, obtained))
	})

	s.Run("course never expires even with validity", func() {
		course := models.LearningItem{Type: models.ItemTypeCourse, ValidityMonths: models.Months(12)}
		s.Nil(models.ComputeExpiration(course, obtained))
	})

	s.Run("zero obtained date yields nil", func() {
		s.Nil(models.ComputeExpiration(s.certification(), time.Time{}))
	})
}
