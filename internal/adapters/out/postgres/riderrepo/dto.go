// Package riderrepo provides data transfer objects and mapping functions for
// rider persistence. It implements the repository pattern for the rider
// aggregate, handling the conversion between domain entities and their
// database representation.
package riderrepo

import (
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/rider"

	"github.com/google/uuid"
)

// RiderDTO represents the database structure for persisting rider aggregates.
// The status is stored as its wire string and the version column carries the
// optimistic-concurrency guard protecting the load counter.
type RiderDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name              string
	Status            string `gorm:"type:text;index"`
	Zone              string `gorm:"type:text;index"`
	Lat               float64
	Lng               float64
	ActiveOrdersCount int
	MaxCapacity       int
	AvgEtaMinutes     float64
	Version           int
}

// TableName specifies the database table name for rider entities.
func (RiderDTO) TableName() string {
	return "riders"
}

// fromDomain converts a rider aggregate to its database representation.
func fromDomain(aggregate *rider.Rider) RiderDTO {
	return RiderDTO{
		ID:                aggregate.ID().Bytes(),
		Name:              aggregate.Name(),
		Status:            aggregate.Status().String(),
		Zone:              aggregate.Zone(),
		Lat:               aggregate.Location().Lat(),
		Lng:               aggregate.Location().Lng(),
		ActiveOrdersCount: aggregate.ActiveOrdersCount(),
		MaxCapacity:       aggregate.MaxCapacity(),
		AvgEtaMinutes:     aggregate.AvgEtaMinutes(),
		Version:           aggregate.Version(),
	}
}

// toDomain converts a database DTO to a rider aggregate using RestoreRider.
func toDomain(dto RiderDTO) (*rider.Rider, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := rider.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	location, err := kernel.NewGeoPoint(dto.Lat, dto.Lng)
	if err != nil {
		return nil, err
	}

	return rider.RestoreRider(
		id,
		dto.Name,
		status,
		dto.Zone,
		location,
		dto.ActiveOrdersCount,
		dto.MaxCapacity,
		dto.AvgEtaMinutes,
		dto.Version,
	)
}
