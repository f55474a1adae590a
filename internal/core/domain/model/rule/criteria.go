package rule

import (
	"errors"
	"fmt"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Weight bounds for the scoring criteria.
const (
	MinWeight = 0.0
	MaxWeight = 10.0
)

// ErrInvalidRuleConfig is returned when a criteria set fails validation.
// Validation is all-or-nothing: either every field is within range or the
// whole update is rejected and the previous criteria stay in effect.
var ErrInvalidRuleConfig = errors.New("invalid rule configuration")

// Criteria is the value object holding the knobs of the auto-assignment rule:
// hard limits (radius, per-rider order cap), zone preference, and the weights
// of the soft scoring components.
type Criteria struct {
	maxRadiusKm       float64
	maxOrdersPerRider int
	preferSameZone    bool
	priorityWeight    float64
	distanceWeight    float64
	etaWeight         float64

	guard guard.ConstructorGuard
}

// NewCriteria creates a validated Criteria set. All fields are checked
// together; a single out-of-range field invalidates the whole set.
func NewCriteria(
	maxRadiusKm float64,
	maxOrdersPerRider int,
	preferSameZone bool,
	priorityWeight float64,
	distanceWeight float64,
	etaWeight float64,
) (Criteria, error) {
	c := Criteria{
		preferSameZone: preferSameZone,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setMaxRadiusKm(maxRadiusKm),
		c.setMaxOrdersPerRider(maxOrdersPerRider),
		c.setWeight(&c.priorityWeight, "priorityWeight", priorityWeight),
		c.setWeight(&c.distanceWeight, "distanceWeight", distanceWeight),
		c.setWeight(&c.etaWeight, "etaWeight", etaWeight),
	); err != nil {
		return Criteria{}, fmt.Errorf("%w: %w", ErrInvalidRuleConfig, err)
	}

	return c, nil
}

// Validate checks if the Criteria were constructed via NewCriteria.
// The zero value is invalid and will fail this validation.
func (c Criteria) Validate() error {
	return c.guard.Validate(ErrInvalidRuleConfig)
}

// MaxRadiusKm returns the pickup radius limit in kilometers.
func (c Criteria) MaxRadiusKm() float64 {
	return c.maxRadiusKm
}

// MaxOrdersPerRider returns the rule-level cap on concurrent orders per rider.
func (c Criteria) MaxOrdersPerRider() int {
	return c.maxOrdersPerRider
}

// PreferSameZone reports whether same-zone riders bypass the radius limit
// and receive a score bonus.
func (c Criteria) PreferSameZone() bool {
	return c.preferSameZone
}

// PriorityWeight returns the weight of the order-priority score component.
func (c Criteria) PriorityWeight() float64 {
	return c.priorityWeight
}

// DistanceWeight returns the weight of the pickup-distance score component.
func (c Criteria) DistanceWeight() float64 {
	return c.distanceWeight
}

// EtaWeight returns the weight of the estimated-pickup-time score component.
func (c Criteria) EtaWeight() float64 {
	return c.etaWeight
}

func (c *Criteria) setMaxRadiusKm(maxRadiusKm float64) error {
	if maxRadiusKm <= 0 {
		return errs.NewValueIsOutOfRangeError("maxRadiusKm", maxRadiusKm, "exclusive 0", "unbounded")
	}

	c.maxRadiusKm = maxRadiusKm
	return nil
}

func (c *Criteria) setMaxOrdersPerRider(maxOrdersPerRider int) error {
	if maxOrdersPerRider < 1 {
		return errs.NewValueIsOutOfRangeError("maxOrdersPerRider", maxOrdersPerRider, 1, "unbounded")
	}

	c.maxOrdersPerRider = maxOrdersPerRider
	return nil
}

func (c *Criteria) setWeight(field *float64, name string, value float64) error {
	if value < MinWeight || value > MaxWeight {
		return errs.NewValueIsOutOfRangeError(name, value, MinWeight, MaxWeight)
	}

	*field = value
	return nil
}
