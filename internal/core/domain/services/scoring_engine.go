package services

import (
	"errors"
	"sort"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/rider"
	"dispatch/internal/core/domain/model/rule"
)

// ErrNoSuitableRider is returned when every candidate rider is rejected by
// the hard filters: all offline, at capacity, or outside the pickup radius.
var ErrNoSuitableRider = errors.New("no suitable rider found")

// avgPickupSpeedKmh is the assumed travel speed used to convert a pickup
// distance into minutes of travel. The rider's historical average is added
// on top as fixed overhead.
const avgPickupSpeedKmh = 18.0

// Priority score components. Higher-priority orders reward candidates more,
// so weighting priority up steers capacity toward urgent orders.
const (
	priorityScoreHigh   = 1.0
	priorityScoreMedium = 0.6
	priorityScoreLow    = 0.3
)

// sameZoneBonus is added to the score when the rule prefers same-zone
// matches and the candidate works the order's zone.
const sameZoneBonus = 1.0

// RankedRider is one scored candidate for an order. The slice returned by
// Rank is ordered best-first.
type RankedRider struct {
	Rider                  *rider.Rider
	Score                  float64
	PickupDistanceKm       float64
	EstimatedPickupMinutes float64
}

// ScoringEngine is a domain service that ranks candidate riders for an order
// under the active auto-assign criteria.
//
// Ranking is pure and deterministic: no wall clock, no randomness, no
// mutation of its inputs. The same order, rider snapshot and criteria always
// produce the same ranking, so a manual recommendation query and the
// auto-assign pass agree on the candidates. Staleness of the rider snapshot
// is acceptable; the assignment coordinator re-checks every precondition at
// commit time.
type ScoringEngine struct{}

// NewScoringEngine creates a new ScoringEngine instance.
func NewScoringEngine() ScoringEngine {
	return ScoringEngine{}
}

// Rank evaluates the candidate riders for the given order and returns them
// best-first.
//
// Hard filters drop a candidate entirely:
//   - the rider is offline
//   - the rider's active load has reached min(rider capacity, rule cap)
//   - geography: with PreferSameZone off, the pickup distance must stay
//     within the rule radius; with it on, zone affinity replaces the radius
//     filter entirely (in-zone riders pass at any distance, out-of-zone
//     riders never pass)
//
// Survivors are scored as a weighted sum of distance, ETA and priority
// components (each in (0, 1]), plus the same-zone bonus when it applies.
// Ties break on lower active load, then shorter pickup distance, then
// rider ID, so equal-scored candidates still rank deterministically.
//
// An empty result means no rider passed the hard filters; callers that
// require a candidate should treat that as ErrNoSuitableRider.
func (s ScoringEngine) Rank(
	ord *order.Order,
	riders []*rider.Rider,
	criteria rule.Criteria,
) ([]RankedRider, error) {
	if err := ord.Validate(); err != nil {
		return nil, err
	}
	if err := criteria.Validate(); err != nil {
		return nil, err
	}

	ranked := make([]RankedRider, 0, len(riders))
	for _, r := range riders {
		if err := r.Validate(); err != nil {
			return nil, err
		}

		candidate, ok, err := s.evaluate(ord, r, criteria)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		ranked = append(ranked, candidate)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return lessRanked(ranked[i], ranked[j])
	})

	return ranked, nil
}

// evaluate applies the hard filters and computes the candidate's score.
// It reports false when the rider is filtered out.
func (s ScoringEngine) evaluate(
	ord *order.Order,
	r *rider.Rider,
	criteria rule.Criteria,
) (RankedRider, bool, error) {
	if !r.Status().IsAssignable() {
		return RankedRider{}, false, nil
	}

	cap := r.MaxCapacity()
	if criteria.MaxOrdersPerRider() < cap {
		cap = criteria.MaxOrdersPerRider()
	}
	if r.ActiveOrdersCount() >= cap {
		return RankedRider{}, false, nil
	}

	distanceKm, err := r.Location().DistanceKmTo(ord.PickupPoint())
	if err != nil {
		return RankedRider{}, false, err
	}
	sameZone := r.Zone() == ord.Zone()
	if criteria.PreferSameZone() {
		// Zone affinity replaces the radius filter: in-zone riders pass
		// regardless of distance, out-of-zone riders never do.
		if !sameZone {
			return RankedRider{}, false, nil
		}
	} else if distanceKm > criteria.MaxRadiusKm() {
		return RankedRider{}, false, nil
	}

	etaMinutes := distanceKm/avgPickupSpeedKmh*60 + r.AvgEtaMinutes()

	score := criteria.DistanceWeight()*(1/(1+distanceKm)) +
		criteria.EtaWeight()*(1/(1+etaMinutes)) +
		criteria.PriorityWeight()*priorityScore(ord.Priority())
	if criteria.PreferSameZone() && sameZone {
		score += sameZoneBonus
	}

	return RankedRider{
		Rider:                  r,
		Score:                  score,
		PickupDistanceKm:       distanceKm,
		EstimatedPickupMinutes: etaMinutes,
	}, true, nil
}

func priorityScore(p order.Priority) float64 {
	switch p {
	case order.PriorityHigh:
		return priorityScoreHigh
	case order.PriorityMedium:
		return priorityScoreMedium
	default:
		return priorityScoreLow
	}
}

// lessRanked orders candidates best-first: higher score, then lower active
// load, then shorter pickup distance, then rider ID.
func lessRanked(a, b RankedRider) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if a.Rider.ActiveOrdersCount() != b.Rider.ActiveOrdersCount() {
		return a.Rider.ActiveOrdersCount() < b.Rider.ActiveOrdersCount()
	}
	if a.PickupDistanceKm != b.PickupDistanceKm {
		return a.PickupDistanceKm < b.PickupDistanceKm
	}
	return a.Rider.ID().String() < b.Rider.ID().String()
}
