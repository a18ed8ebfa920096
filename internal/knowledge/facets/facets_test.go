package facets_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/williandearaujo/Gestao-OL-360-sub001/internal/knowledge/facets"
	"github.com/williandearaujo/Gestao-OL-360-sub001/internal/knowledge/knowledgetest"
	"github.com/williandearaujo/Gestao-OL-360-sub001/internal/knowledge/models"
)

func catalog() []models.LearningItem {
	f := &knowledgetest.Fixture{}
	f.Cert("AZ-104", "Microsoft", "Cloud", models.Months(12))
	f.Cert("SAA-C03", " AWS ", "Cloud", models.Months(36))
	f.Cert("CISSP", "ISC2", "Security", models.Months(36))
	f.Course("React Advanced", "Udemy", "Development")
	f.Course("Azure Fundamentals", "Microsoft", "")
	f.Degree("Computer Science", "USP", models.DegreeUndergraduate)
	return f.Items
}

func TestResolve(t *testing.T) {
	items := catalog()

	tests := []struct {
		name          string
		selected      models.ItemType
		wantProviders []string
		wantAreas     []string
	}{
		{
			name:          "any type covers the whole catalog",
			selected:      models.AnyType,
			wantProviders: []string{"AWS", "ISC2", "Microsoft", "USP", "Udemy"},
			wantAreas:     []string{"Cloud", "Development", "Security"},
		},
		{
			name:          "certifications exclude course-only providers",
			selected:      models.ItemTypeCertification,
			wantProviders: []string{"AWS", "ISC2", "Microsoft"},
			wantAreas:     []string{"Cloud", "Security"},
		},
		{
			name:          "courses",
			selected:      models.ItemTypeCourse,
			wantProviders: []string{"Microsoft", "Udemy"},
			wantAreas:     []string{"Development"},
		},
		{
			name:          "degrees without areas yield an empty list",
			selected:      models.ItemTypeDegree,
			wantProviders: []string{"USP"},
			wantAreas:     []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := facets.Resolve(items, tt.selected)
			assert.Equal(t, tt.wantProviders, got.Providers)
			assert.Equal(t, tt.wantAreas, got.Areas)
		})
	}
}

func TestResolveEmptyCatalog(t *testing.T) {
	got := facets.Resolve(nil, models.ItemTypeCertification)
	assert.NotNil(t, got.Providers)
	assert.NotNil(t, got.Areas)
	assert.Empty(t, got.Providers)
}

func TestResolveDoesNotMutateInput(t *testing.T) {
	items := catalog()
	before := append([]models.LearningItem(nil), items...)

	facets.Resolve(items, models.AnyType)

	assert.Equal(t, before, items)
}

func TestMembership(t *testing.T) {
	f := facets.Resolve(catalog(), models.ItemTypeCertification)

	assert.True(t, f.HasProvider("ISC2"))
	assert.False(t, f.HasProvider("Udemy"))
	assert.True(t, f.HasArea("Security"))
	assert.False(t, f.HasArea("Development"))
}
