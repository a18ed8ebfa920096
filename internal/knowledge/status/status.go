// Package status derives the temporal status of a person's link to a catalog item.
package status

import (
	"time"

	"github.com/williandearaujo/Gestao-OL-360-sub001/internal/knowledge/models"
)

// DefaultExpiringWindow is how far ahead an expiration counts as "soon".
// It is an exact duration, not a calendar month.
const DefaultExpiringWindow = 30 * 24 * time.Hour

// Classifier tags links relative to an instant. The zero value uses
// DefaultExpiringWindow.
type Classifier struct {
	Window time.Duration
}

// Default returns a classifier with the default expiring window.
func Default() Classifier {
	return Classifier{Window: DefaultExpiringWindow}
}

// Classify tags a link using DefaultExpiringWindow.
func Classify(link models.Link, item models.LearningItem, now time.Time) models.StatusTag {
	return Default().Classify(link, item, now)
}

func (c Classifier) window() time.Duration {
	if c.Window <= 0 {
		return DefaultExpiringWindow
	}
	return c.Window
}

// Classify maps a link to exactly one status tag.
// This is pure domain logic - no I/O, no side effects.
// Rule priority (first match wins):
//  1. DESIRED binding
//  2. REQUIRED binding
//  3. OBTAINED without an expiration - active
//  4. OBTAINED, expired before now
//  5. OBTAINED, expiring within the window (inclusive on both ends)
//  6. OBTAINED otherwise - active
func (c Classifier) Classify(link models.Link, item models.LearningItem, now time.Time) models.StatusTag {
	switch link.Binding {
	case models.BindingDesired:
		return models.StatusDesired
	case models.BindingRequired:
		return models.StatusRequired
	case models.BindingObtained:
	default:
		return models.StatusUnknown
	}

	// Rule 3: no expiration, or the item never expires
	exp := Expiration(link, item)
	if exp == nil {
		return models.StatusObtainedActive
	}

	// Rule 4: expired
	if exp.Before(now) {
		return models.StatusObtainedExpired
	}

	// Rule 5: expiring soon
	if !exp.After(now.Add(c.window())) {
		return models.StatusObtainedExpiringSoon
	}

	return models.StatusObtainedActive
}

// Expiration returns the instant an OBTAINED link stops being valid, or nil
// when it never does. The stored expiration is ignored for items that
// never expire.
func Expiration(link models.Link, item models.LearningItem) *time.Time {
	if link.Binding != models.BindingObtained || link.ExpiresOn == nil || link.ExpiresOn.IsZero() {
		return nil
	}
	if !item.Expires() {
		return nil
	}
	return link.ExpiresOn
}

// DaysUntil is the whole number of 24h periods from now until the link
// expires, negative once it has. ok is false when the link never expires.
func DaysUntil(link models.Link, item models.LearningItem, now time.Time) (days int, ok bool) {
	exp := Expiration(link, item)
	if exp == nil {
		return 0, false
	}
	return int(exp.Sub(now) / (24 * time.Hour)), true
}
