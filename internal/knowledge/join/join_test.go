package join_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/williandearaujo/Gestao-OL-360-sub001/internal/knowledge/join"
	"github.com/williandearaujo/Gestao-OL-360-sub001/internal/knowledge/models"
	id "github.com/williandearaujo/Gestao-OL-360-sub001/pkg/domain"
)

type IndexSuite struct {
	suite.Suite
	alice models.Person
	bob   models.Person
	cert  models.LearningItem
}

func TestIndexSuite(t *testing.T) {
	suite.Run(t, new(IndexSuite))
}

func (s *IndexSuite) SetupTest() {
	s.alice = models.Person{ID: id.NewPersonID(), Name: "Alice", Team: "Blue"}
	s.bob = models.Person{ID: id.NewPersonID(), Name: "Bob", Team: "Red"}
	s.cert = models.LearningItem{ID: id.NewItemID(), Name: "OSCP", Code: "OSCP", Type: models.ItemTypeCertification}
}

func (s *IndexSuite) link(p id.PersonID, it id.ItemID, b models.Binding) models.Link {
	return models.Link{ID: id.NewLinkID(), PersonID: p, ItemID: it, Binding: b, Priority: models.PriorityMedium}
}

func (s *IndexSuite) TestResolution() {
	s.Run("resolves links with both references present", func() {
		l := s.link(s.alice.ID, s.cert.ID, models.BindingDesired)
		ix := join.New([]models.Person{s.alice}, []models.LearningItem{s.cert}, []models.Link{l})

		rows := ix.Rows()
		s.Require().Len(rows, 1)
		s.Equal(s.alice, rows[0].Person)
		s.Equal(s.cert, rows[0].Item)
		s.Equal(l, rows[0].Link)
		s.Equal(1, ix.ValidCount())
		s.Zero(ix.DanglingCount())
	})

	s.Run("missing person or item makes the link dangling", func() {
		missingPerson := s.link(id.NewPersonID(), s.cert.ID, models.BindingDesired)
		missingItem := s.link(s.alice.ID, id.NewItemID(), models.BindingRequired)
		ix := join.New([]models.Person{s.alice}, []models.LearningItem{s.cert}, []models.Link{missingPerson, missingItem})

		s.Empty(ix.Rows())
		s.Equal(2, ix.DanglingCount())
		s.ElementsMatch([]models.Link{missingPerson, missingItem}, ix.Dangling())
	})

	s.Run("unknown binding makes the link invalid", func() {
		l := s.link(s.alice.ID, s.cert.ID, models.Binding("IN_PROGRESS"))
		ix := join.New([]models.Person{s.alice}, []models.LearningItem{s.cert}, []models.Link{l})

		s.Empty(ix.Rows())
		s.Zero(ix.DanglingCount())
		s.Equal(1, ix.InvalidCount())
	})
}

func (s *IndexSuite) TestOrdering() {
	links := make([]models.Link, 0, 20)
	for range 20 {
		links = append(links, s.link(s.bob.ID, s.cert.ID, models.BindingObtained))
	}
	ix := join.New([]models.Person{s.bob}, []models.LearningItem{s.cert}, links)

	rows := ix.Rows()
	s.Require().Len(rows, 20)
	for i := 1; i < len(rows); i++ {
		s.Negative(rows[i-1].Link.ID.Compare(rows[i].Link.ID), "rows must be ordered by link ID")
	}
}

func (s *IndexSuite) TestDuplicates() {
	dupe := s.alice
	dupe.Name = "Alice Duplicate"
	ix := join.New([]models.Person{s.alice, dupe, s.bob}, []models.LearningItem{s.cert, s.cert}, nil)

	s.Len(ix.People(), 2)
	s.Len(ix.Items(), 1)
	p, ok := ix.Person(s.alice.ID)
	s.True(ok)
	s.Equal("Alice", p.Name)
}

func (s *IndexSuite) TestDoesNotMutateInputs() {
	people := []models.Person{s.bob, s.alice}
	l1 := s.link(s.alice.ID, s.cert.ID, models.BindingDesired)
	l2 := s.link(s.bob.ID, s.cert.ID, models.BindingDesired)
	links := []models.Link{l1, l2}

	ix := join.New(people, []models.LearningItem{s.cert}, links)
	_ = ix.Rows()

	s.Equal([]models.Person{s.bob, s.alice}, people)
	s.Equal([]models.Link{l1, l2}, links)
}

func (s *IndexSuite) TestEmpty() {
	ix := join.New(nil, nil, nil)
	s.NotNil(ix.Rows())
	s.Empty(ix.Rows())
	s.Empty(ix.People())
	_, ok := ix.Item(id.NewItemID())
	s.False(ok)
}
