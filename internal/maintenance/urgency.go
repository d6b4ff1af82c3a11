package maintenance

import (
	"sort"

	"github.com/alexanderramin/mainstay/internal/domain"
)

// Classifier derives an urgency signal from a projection. Thresholds are
// configurable; the zero-value thresholds are not usable, construct via
// DefaultClassifier or config.
type Classifier struct {
	// PercentThreshold marks equipment urgent below this % of interval remaining.
	PercentThreshold float64
	// DaysThreshold marks calendar-axis equipment urgent under this many days
	// remaining, including overdue. There is no hours-axis equivalent: on the
	// hours axis only overdue equipment is urgent. That asymmetry is intended.
	DaysThreshold int
}

// DefaultClassifier returns the standard thresholds: 10% and 7 days.
func DefaultClassifier() Classifier {
	return Classifier{PercentThreshold: 10, DaysThreshold: 7}
}

// IsUrgent reports whether any urgency rule fires for the projection.
func (c Classifier) IsUrgent(p Projection) bool {
	if p.PercentRemaining < c.PercentThreshold {
		return true
	}
	if p.Axis == AxisCalendar && p.DaysRemaining != nil && *p.DaysRemaining < c.DaysThreshold {
		return true
	}
	if p.Axis == AxisHours && p.HoursRemaining != nil && *p.HoursRemaining < 0 {
		return true
	}
	return false
}

// IsUrgent classifies a projection with the default thresholds.
func IsUrgent(p Projection) bool {
	return DefaultClassifier().IsUrgent(p)
}

// UrgentEquipment pairs an equipment record with its projection for ranking
// and display.
type UrgentEquipment struct {
	Equipment  *domain.Equipment
	Projection Projection
}

// SortByUrgency orders most-urgent-first: ascending percent remaining,
// equipment without a concrete due point last, ties broken by equipment ID
// for determinism.
func SortByUrgency(items []UrgentEquipment) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]

		if a.Projection.HasDuePoint() != b.Projection.HasDuePoint() {
			return a.Projection.HasDuePoint()
		}
		if a.Projection.PercentRemaining != b.Projection.PercentRemaining {
			return a.Projection.PercentRemaining < b.Projection.PercentRemaining
		}
		return a.Equipment.ID < b.Equipment.ID
	})
}
