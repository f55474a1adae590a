package services_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/rider"
	"dispatch/internal/core/domain/model/rule"
	"dispatch/internal/core/domain/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// kmPerLatDegree matches the haversine conversion for a pure latitude offset.
const kmPerLatDegree = 111.19492664455873

var basePoint = mustGeoPoint(52.5200, 13.4050)

func mustGeoPoint(lat, lng float64) kernel.GeoPoint {
	p, err := kernel.NewGeoPoint(lat, lng)
	if err != nil {
		panic(err)
	}
	return p
}

// pointKmNorth returns a point the given number of kilometers due north of
// basePoint, so test distances are exact under the haversine formula.
func pointKmNorth(km float64) kernel.GeoPoint {
	return mustGeoPoint(52.5200+km/kmPerLatDegree, 13.4050)
}

func riderAt(t *testing.T, name, zone string, location kernel.GeoPoint, load, capacity int, avgEta float64) *rider.Rider {
	t.Helper()

	status := rider.StatusIdle
	if load > 0 {
		status = rider.StatusBusy
	}

	r, err := rider.RestoreRider(kernel.NewUUID(), name, status, zone, location, load, capacity, avgEta, 1)
	require.NoError(t, err)
	return r
}

func riderWithID(t *testing.T, id, zone string, location kernel.GeoPoint, load, capacity int) *rider.Rider {
	t.Helper()

	uid, err := kernel.UUIDFromString(id)
	require.NoError(t, err)

	status := rider.StatusIdle
	if load > 0 {
		status = rider.StatusBusy
	}

	r, err := rider.RestoreRider(uid, "rider "+id[:8], status, zone, location, load, capacity, 5.0, 1)
	require.NoError(t, err)
	return r
}

func orderInZone(t *testing.T, zone string, priority order.Priority) *order.Order {
	t.Helper()

	o, err := order.NewOrder(
		kernel.NewUUID(),
		priority,
		basePoint, "Alexanderplatz 1",
		pointKmNorth(2.0), "Torstrasse 10",
		zone,
		2.0, 12.0,
		time.Now().UTC().Add(30*time.Minute),
	)
	require.NoError(t, err)
	return o
}

func criteria(t *testing.T, maxRadiusKm float64, maxOrders int, preferSameZone bool, pW, dW, eW float64) rule.Criteria {
	t.Helper()

	c, err := rule.NewCriteria(maxRadiusKm, maxOrders, preferSameZone, pW, dW, eW)
	require.NoError(t, err)
	return c
}

func TestScoringEngine_HardFilters(t *testing.T) {
	engine := services.NewScoringEngine()
	o := orderInZone(t, "A", order.PriorityMedium)
	crit := criteria(t, 5.0, 3, false, 2.0, 5.0, 3.0)

	t.Run("excludes offline riders", func(t *testing.T) {
		offline := riderAt(t, "offline", "A", basePoint, 0, 3, 5.0)
		require.NoError(t, offline.SetStatus(rider.StatusOffline))
		online := riderAt(t, "online", "A", basePoint, 0, 3, 5.0)

		ranked, err := engine.Rank(o, []*rider.Rider{offline, online}, crit)

		require.NoError(t, err)
		require.Len(t, ranked, 1)
		assert.True(t, ranked[0].Rider.IsEqual(online))
	})

	t.Run("excludes riders at their own capacity", func(t *testing.T) {
		full := riderAt(t, "full", "A", basePoint, 3, 3, 5.0)

		ranked, err := engine.Rank(o, []*rider.Rider{full}, crit)

		require.NoError(t, err)
		assert.Empty(t, ranked)
	})

	t.Run("excludes riders at the rule cap below their capacity", func(t *testing.T) {
		capped := criteria(t, 5.0, 2, false, 2.0, 5.0, 3.0)
		loaded := riderAt(t, "loaded", "A", basePoint, 2, 5, 5.0)

		ranked, err := engine.Rank(o, []*rider.Rider{loaded}, capped)

		require.NoError(t, err)
		assert.Empty(t, ranked)
	})

	t.Run("excludes riders outside the radius", func(t *testing.T) {
		far := riderAt(t, "far", "A", pointKmNorth(6.0), 0, 3, 5.0)
		near := riderAt(t, "near", "A", pointKmNorth(1.0), 0, 3, 5.0)

		ranked, err := engine.Rank(o, []*rider.Rider{far, near}, crit)

		require.NoError(t, err)
		require.Len(t, ranked, 1)
		assert.True(t, ranked[0].Rider.IsEqual(near))
	})

	t.Run("returns empty slice when nobody survives", func(t *testing.T) {
		far := riderAt(t, "far", "A", pointKmNorth(20.0), 0, 3, 5.0)

		ranked, err := engine.Rank(o, []*rider.Rider{far}, crit)

		require.NoError(t, err)
		assert.Empty(t, ranked)
	})
}

func TestScoringEngine_ZoneAffinity(t *testing.T) {
	engine := services.NewScoringEngine()
	o := orderInZone(t, "A", order.PriorityHigh)
	crit := criteria(t, 3.0, 3, true, 2.0, 5.0, 3.0)

	t.Run("in-zone rider passes beyond the radius", func(t *testing.T) {
		farSameZone := riderAt(t, "far same zone", "A", pointKmNorth(4.0), 0, 3, 5.0)

		ranked, err := engine.Rank(o, []*rider.Rider{farSameZone}, crit)

		require.NoError(t, err)
		require.Len(t, ranked, 1)
	})

	t.Run("out-of-zone rider is excluded even within the radius", func(t *testing.T) {
		nearOtherZone := riderAt(t, "near other zone", "B", pointKmNorth(0.5), 2, 3, 5.0)
		farSameZone := riderAt(t, "far same zone", "A", pointKmNorth(4.0), 0, 3, 5.0)

		ranked, err := engine.Rank(o, []*rider.Rider{nearOtherZone, farSameZone}, crit)

		require.NoError(t, err)
		require.Len(t, ranked, 1)
		assert.True(t, ranked[0].Rider.IsEqual(farSameZone))
	})
}

func TestScoringEngine_Scoring(t *testing.T) {
	engine := services.NewScoringEngine()
	o := orderInZone(t, "A", order.PriorityMedium)
	crit := criteria(t, 10.0, 3, false, 2.0, 5.0, 3.0)

	t.Run("closer rider ranks higher", func(t *testing.T) {
		near := riderAt(t, "near", "A", pointKmNorth(1.0), 0, 3, 5.0)
		far := riderAt(t, "far", "A", pointKmNorth(5.0), 0, 3, 5.0)

		ranked, err := engine.Rank(o, []*rider.Rider{far, near}, crit)

		require.NoError(t, err)
		require.Len(t, ranked, 2)
		assert.True(t, ranked[0].Rider.IsEqual(near))
		assert.Greater(t, ranked[0].Score, ranked[1].Score)
	})

	t.Run("reports pickup distance and estimated minutes", func(t *testing.T) {
		r := riderAt(t, "rider", "A", pointKmNorth(3.0), 0, 3, 5.0)

		ranked, err := engine.Rank(o, []*rider.Rider{r}, crit)

		require.NoError(t, err)
		require.Len(t, ranked, 1)
		assert.InDelta(t, 3.0, ranked[0].PickupDistanceKm, 1e-6)
		// 3 km at 18 km/h is 10 minutes, plus the rider's 5 minute average.
		assert.InDelta(t, 15.0, ranked[0].EstimatedPickupMinutes, 1e-6)
	})

	t.Run("same-zone bonus adds one to the score", func(t *testing.T) {
		plainCrit := criteria(t, 10.0, 3, false, 2.0, 1.0, 1.0)
		affinity := criteria(t, 10.0, 3, true, 2.0, 1.0, 1.0)
		inZone := riderAt(t, "in zone", "A", pointKmNorth(2.0), 0, 3, 5.0)

		plain, err := engine.Rank(o, []*rider.Rider{inZone}, plainCrit)
		require.NoError(t, err)
		boosted, err := engine.Rank(o, []*rider.Rider{inZone}, affinity)
		require.NoError(t, err)

		require.Len(t, plain, 1)
		require.Len(t, boosted, 1)
		assert.InDelta(t, plain[0].Score+1.0, boosted[0].Score, 1e-9)
	})
}

func TestScoringEngine_TieBreaks(t *testing.T) {
	engine := services.NewScoringEngine()
	o := orderInZone(t, "A", order.PriorityLow)
	crit := criteria(t, 10.0, 5, false, 2.0, 5.0, 0.0)

	t.Run("lower active load wins on equal score", func(t *testing.T) {
		// Zero eta weight makes the per-rider average irrelevant, so two
		// riders at the same spot score identically.
		busy := riderAt(t, "busy", "A", pointKmNorth(1.0), 2, 5, 5.0)
		idle := riderAt(t, "idle", "A", pointKmNorth(1.0), 0, 5, 5.0)

		ranked, err := engine.Rank(o, []*rider.Rider{busy, idle}, crit)

		require.NoError(t, err)
		require.Len(t, ranked, 2)
		assert.True(t, ranked[0].Rider.IsEqual(idle))
	})

	t.Run("rider id breaks full ties lexicographically", func(t *testing.T) {
		first := riderWithID(t, "11111111-1111-4111-8111-111111111111", "A", pointKmNorth(1.0), 0, 5)
		second := riderWithID(t, "99999999-9999-4999-8999-999999999999", "A", pointKmNorth(1.0), 0, 5)

		ranked, err := engine.Rank(o, []*rider.Rider{second, first}, crit)

		require.NoError(t, err)
		require.Len(t, ranked, 2)
		assert.True(t, ranked[0].Rider.IsEqual(first))
		assert.True(t, ranked[1].Rider.IsEqual(second))
	})
}

func TestScoringEngine_Deterministic(t *testing.T) {
	engine := services.NewScoringEngine()
	o := orderInZone(t, "A", order.PriorityHigh)
	crit := criteria(t, 10.0, 3, false, 2.0, 5.0, 3.0)

	riders := make([]*rider.Rider, 0, 10)
	for i := 0; i < 10; i++ {
		riders = append(riders, riderAt(t, uuid.NewString(), "A", pointKmNorth(float64(i%4)), i%2, 3, 5.0))
	}

	first, err := engine.Rank(o, riders, crit)
	require.NoError(t, err)
	second, err := engine.Rank(o, riders, crit)
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		assert.True(t, first[i].Rider.IsEqual(second[i].Rider))
		assert.Equal(t, first[i].Score, second[i].Score)
	}
}

// TestScoringEngine_HighPriorityZoneScenario pins the combined behavior of
// zone affinity and the hard filters for a high-priority order: the in-zone
// rider four kilometers out is the only survivor, even though an out-of-zone
// rider sits half a kilometer from the pickup.
func TestScoringEngine_HighPriorityZoneScenario(t *testing.T) {
	engine := services.NewScoringEngine()

	o, err := order.NewOrder(
		kernel.NewUUID(),
		order.PriorityHigh,
		basePoint, "Alexanderplatz 1",
		pointKmNorth(2.0), "Torstrasse 10",
		"A",
		2.0, 12.0,
		time.Now().UTC().Add(30*time.Minute),
	)
	require.NoError(t, err)

	r1 := riderAt(t, "R1", "A", pointKmNorth(4.0), 0, 3, 5.0)
	r2 := riderAt(t, "R2", "B", pointKmNorth(0.5), 2, 3, 5.0)

	crit := criteria(t, 3.0, 3, true, 2.0, 5.0, 3.0)

	ranked, err := engine.Rank(o, []*rider.Rider{r1, r2}, crit)

	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.True(t, ranked[0].Rider.IsEqual(r1))
}
