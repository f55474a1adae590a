// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, handling the conversion between domain entities and their
// database representation.
package orderrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Statuses and priorities are stored as their wire strings so the read-side
// queries can filter without decoding, and the version column carries the
// optimistic-concurrency guard.
type OrderDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Status        string    `gorm:"type:text;index"`
	Priority      string    `gorm:"type:text"`
	PickupLat     float64
	PickupLng     float64
	PickupAddress string
	DropLat       float64
	DropLng       float64
	DropAddress   string
	Zone          string `gorm:"type:text;index"`
	DistanceKm    float64
	EtaMinutes    float64
	SLADeadline   time.Time  `gorm:"column:sla_deadline"`
	RiderID       *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt     time.Time
	Version       int
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var riderID *uuid.UUID
	if id := aggregate.Rider(); id != nil {
		raw := id.Bytes()
		riderID = &raw
	}

	return OrderDTO{
		ID:            aggregate.ID().Bytes(),
		Status:        aggregate.Status().String(),
		Priority:      aggregate.Priority().String(),
		PickupLat:     aggregate.PickupPoint().Lat(),
		PickupLng:     aggregate.PickupPoint().Lng(),
		PickupAddress: aggregate.PickupAddress(),
		DropLat:       aggregate.DropPoint().Lat(),
		DropLng:       aggregate.DropPoint().Lng(),
		DropAddress:   aggregate.DropAddress(),
		Zone:          aggregate.Zone(),
		DistanceKm:    aggregate.DistanceKm(),
		EtaMinutes:    aggregate.EtaMinutes(),
		SLADeadline:   aggregate.SLADeadline(),
		RiderID:       riderID,
		CreatedAt:     aggregate.CreatedAt(),
		Version:       aggregate.Version(),
	}
}

// toDomain converts a database DTO to an order aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	priority, err := order.PriorityFromString(dto.Priority)
	if err != nil {
		return nil, err
	}

	pickup, err := kernel.NewGeoPoint(dto.PickupLat, dto.PickupLng)
	if err != nil {
		return nil, err
	}

	drop, err := kernel.NewGeoPoint(dto.DropLat, dto.DropLng)
	if err != nil {
		return nil, err
	}

	var riderID *kernel.UUID
	if dto.RiderID != nil {
		rID, riderErr := kernel.UUIDFromBytes((*dto.RiderID)[:])
		if riderErr != nil {
			return nil, riderErr
		}

		riderID = &rID
	}

	return order.RestoreOrder(
		id,
		status,
		priority,
		pickup, dto.PickupAddress,
		drop, dto.DropAddress,
		dto.Zone,
		dto.DistanceKm,
		dto.EtaMinutes,
		dto.SLADeadline,
		riderID,
		dto.CreatedAt,
		dto.Version,
	)
}
