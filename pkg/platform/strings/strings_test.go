package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistinct(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{"nil slice", nil, []string{}},
		{"trims whitespace", []string{"  AWS  ", "Udemy  "}, []string{"AWS", "Udemy"}},
		{"keeps first occurrence", []string{"Udemy", "AWS", "Udemy"}, []string{"Udemy", "AWS"}},
		{"drops blanks", []string{"", "  ", "AWS"}, []string{"AWS"}},
		{"case sensitive", []string{"aws", "AWS"}, []string{"aws", "AWS"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Distinct(tt.input))
		})
	}
}

func TestSortedDistinct(t *testing.T) {
	t.Run("sorts after dedupe", func(t *testing.T) {
		assert.Equal(t, []string{"AWS", "Microsoft", "Udemy"},
			SortedDistinct([]string{"Udemy", " AWS", "", "Microsoft", "Udemy"}))
	})

	t.Run("never nil", func(t *testing.T) {
		assert.NotNil(t, SortedDistinct(nil))
		assert.Empty(t, SortedDistinct([]string{" ", ""}))
	})

	t.Run("input untouched", func(t *testing.T) {
		input := []string{"b", "a"}
		SortedDistinct(input)
		assert.Equal(t, []string{"b", "a"}, input)
	})
}

func TestContainsFold(t *testing.T) {
	assert.True(t, ContainsFold("Certified Kubernetes Administrator", "kubernetes"))
	assert.True(t, ContainsFold("CKA", "cka"))
	assert.True(t, ContainsFold("anything", ""))
	assert.False(t, ContainsFold("AZ-900", "az-104"))
}
