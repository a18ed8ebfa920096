package aggregate

import "github.com/williandearaujo/Gestao-OL-360-sub001/internal/knowledge/models"

// StatusCounts partitions links over the five status tags.
type StatusCounts struct {
	Desired              int `json:"desired"`
	Required             int `json:"required"`
	ObtainedActive       int `json:"obtained_active"`
	ObtainedExpiringSoon int `json:"obtained_expiring_soon"`
	ObtainedExpired      int `json:"obtained_expired"`
}

// Add counts one link under tag. StatusUnknown is ignored.
func (c *StatusCounts) Add(tag models.StatusTag) {
	switch tag {
	case models.StatusDesired:
		c.Desired++
	case models.StatusRequired:
		c.Required++
	case models.StatusObtainedActive:
		c.ObtainedActive++
	case models.StatusObtainedExpiringSoon:
		c.ObtainedExpiringSoon++
	case models.StatusObtainedExpired:
		c.ObtainedExpired++
	}
}

// Get returns the count for tag.
func (c StatusCounts) Get(tag models.StatusTag) int {
	switch tag {
	case models.StatusDesired:
		return c.Desired
	case models.StatusRequired:
		return c.Required
	case models.StatusObtainedActive:
		return c.ObtainedActive
	case models.StatusObtainedExpiringSoon:
		return c.ObtainedExpiringSoon
	case models.StatusObtainedExpired:
		return c.ObtainedExpired
	}
	return 0
}

// Obtained sums the three OBTAINED_* buckets.
func (c StatusCounts) Obtained() int {
	return c.ObtainedActive + c.ObtainedExpiringSoon + c.ObtainedExpired
}

// Total sums every bucket.
func (c StatusCounts) Total() int {
	return c.Desired + c.Required + c.Obtained()
}
