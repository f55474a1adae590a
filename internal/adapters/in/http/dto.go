package http

import (
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// ErrorResponse is the uniform error body of the dispatch API.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// AssignOrderRequest asks to commit one order to one rider.
type AssignOrderRequest struct {
	OrderID     uuid.UUID `json:"orderId"`
	RiderID     uuid.UUID `json:"riderId"`
	OverrideSLA bool      `json:"overrideSla"`
	AssignedBy  string    `json:"assignedBy"`
}

// AssignBatchRequest asks to commit several orders to one rider.
type AssignBatchRequest struct {
	OrderIDs   []uuid.UUID `json:"orderIds"`
	RiderID    uuid.UUID   `json:"riderId"`
	AssignedBy string      `json:"assignedBy"`
}

// AutoAssignRequest triggers one auto-assign pass, optionally narrowed to
// the named orders.
type AutoAssignRequest struct {
	OrderIDs []uuid.UUID `json:"orderIds,omitempty"`
}

// CreateOrderRequest intakes a manually created order. When riderId is set
// the order is assigned right after creation.
type CreateOrderRequest struct {
	Priority      string     `json:"priority"`
	PickupLat     float64    `json:"pickupLat"`
	PickupLng     float64    `json:"pickupLng"`
	PickupAddress string     `json:"pickupAddress"`
	DropLat       float64    `json:"dropLat"`
	DropLng       float64    `json:"dropLng"`
	DropAddress   string     `json:"dropAddress"`
	Zone          string     `json:"zone"`
	DistanceKm    float64    `json:"distanceKm"`
	EtaMinutes    float64    `json:"etaMinutes"`
	SLADeadline   time.Time  `json:"slaDeadline"`
	RiderID       *uuid.UUID `json:"riderId,omitempty"`
	AssignedBy    string     `json:"assignedBy,omitempty"`
}

// RuleConfigRequest carries the full auto-assign rule configuration;
// updates are atomic, partial updates are not supported.
type RuleConfigRequest struct {
	Name              string  `json:"name"`
	IsActive          bool    `json:"isActive"`
	MaxRadiusKm       float64 `json:"maxRadiusKm"`
	MaxOrdersPerRider int     `json:"maxOrdersPerRider"`
	PreferSameZone    bool    `json:"preferSameZone"`
	PriorityWeight    float64 `json:"priorityWeight"`
	DistanceWeight    float64 `json:"distanceWeight"`
	EtaWeight         float64 `json:"etaWeight"`
}

// AssignmentResponse is one committed assignment fact.
type AssignmentResponse struct {
	OrderID     uuid.UUID `json:"orderId"`
	RiderID     uuid.UUID `json:"riderId"`
	AssignedAt  time.Time `json:"assignedAt"`
	OverrideSLA bool      `json:"overrideSla"`
	AssignedBy  string    `json:"assignedBy"`
}

// BatchResultResponse reports a batch outcome; partial success is expected.
type BatchResultResponse struct {
	AssignedCount int                   `json:"assignedCount"`
	FailedOrders  []FailedOrderResponse `json:"failedOrders"`
}

// FailedOrderResponse names one order a batch or auto pass could not assign.
type FailedOrderResponse struct {
	OrderID uuid.UUID `json:"orderId"`
	Reason  string    `json:"reason"`
}

// TickResultResponse reports one auto-assign pass.
type TickResultResponse struct {
	Assigned int `json:"assigned"`
	Failed   int `json:"failed"`
}

// RecommendedRiderResponse is one ranked candidate for an order.
type RecommendedRiderResponse struct {
	RiderID                uuid.UUID `json:"riderId"`
	Name                   string    `json:"name"`
	Zone                   string    `json:"zone"`
	Score                  float64   `json:"score"`
	PickupDistanceKm       float64   `json:"pickupDistanceKm"`
	EstimatedPickupMinutes float64   `json:"estimatedPickupMinutes"`
	ActiveOrdersCount      int       `json:"activeOrdersCount"`
	MaxCapacity            int       `json:"maxCapacity"`
}

// RuleConfigResponse is the stored auto-assign rule configuration.
type RuleConfigResponse struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	IsActive          bool      `json:"isActive"`
	MaxRadiusKm       float64   `json:"maxRadiusKm"`
	MaxOrdersPerRider int       `json:"maxOrdersPerRider"`
	PreferSameZone    bool      `json:"preferSameZone"`
	PriorityWeight    float64   `json:"priorityWeight"`
	DistanceWeight    float64   `json:"distanceWeight"`
	EtaWeight         float64   `json:"etaWeight"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// OrderResponse is one order row of the list API.
type OrderResponse struct {
	ID            uuid.UUID  `json:"id"`
	Status        string     `json:"status"`
	Priority      string     `json:"priority"`
	PickupAddress string     `json:"pickupAddress"`
	DropAddress   string     `json:"dropAddress"`
	Zone          string     `json:"zone"`
	DistanceKm    float64    `json:"distanceKm"`
	EtaMinutes    float64    `json:"etaMinutes"`
	SLADeadline   time.Time  `json:"slaDeadline"`
	RiderID       *uuid.UUID `json:"riderId,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// OrderListResponse is one page of orders.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Total int64           `json:"total"`
}

// RiderResponse is one rider row of the list API.
type RiderResponse struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Status            string    `json:"status"`
	Zone              string    `json:"zone"`
	Lat               float64   `json:"lat"`
	Lng               float64   `json:"lng"`
	ActiveOrdersCount int       `json:"activeOrdersCount"`
	MaxCapacity       int       `json:"maxCapacity"`
	AvgEtaMinutes     float64   `json:"avgEtaMinutes"`
}

// RiderListResponse is one page of riders.
type RiderListResponse struct {
	Items []RiderResponse `json:"items"`
	Total int64           `json:"total"`
}

func assignmentResponseFromFact(fact order.Assignment) AssignmentResponse {
	return AssignmentResponse{
		OrderID:     fact.OrderID().Bytes(),
		RiderID:     fact.RiderID().Bytes(),
		AssignedAt:  fact.AssignedAt(),
		OverrideSLA: fact.OverrideSLA(),
		AssignedBy:  fact.AssignedBy(),
	}
}

func batchResultResponse(result commands.BatchResult) BatchResultResponse {
	failed := make([]FailedOrderResponse, 0, len(result.Failed))
	for _, f := range result.Failed {
		failed = append(failed, FailedOrderResponse{
			OrderID: f.OrderID.Bytes(),
			Reason:  f.Reason.Error(),
		})
	}
	return BatchResultResponse{AssignedCount: result.Assigned, FailedOrders: failed}
}

func orderListResponse(resp queries.GetOrdersQueryResponse) OrderListResponse {
	items := make([]OrderResponse, 0, len(resp.Items))
	for _, item := range resp.Items {
		var riderID *uuid.UUID
		if item.RiderID != nil {
			raw := item.RiderID.Bytes()
			riderID = &raw
		}
		items = append(items, OrderResponse{
			ID:            item.ID.Bytes(),
			Status:        item.Status,
			Priority:      item.Priority,
			PickupAddress: item.PickupAddress,
			DropAddress:   item.DropAddress,
			Zone:          item.Zone,
			DistanceKm:    item.DistanceKm,
			EtaMinutes:    item.EtaMinutes,
			SLADeadline:   item.SLADeadline,
			RiderID:       riderID,
			CreatedAt:     item.CreatedAt,
		})
	}
	return OrderListResponse{Items: items, Total: resp.Total}
}

func riderListResponse(resp queries.GetRidersQueryResponse) RiderListResponse {
	items := make([]RiderResponse, 0, len(resp.Items))
	for _, item := range resp.Items {
		items = append(items, RiderResponse{
			ID:                item.ID.Bytes(),
			Name:              item.Name,
			Status:            item.Status,
			Zone:              item.Zone,
			Lat:               item.Lat,
			Lng:               item.Lng,
			ActiveOrdersCount: item.ActiveOrdersCount,
			MaxCapacity:       item.MaxCapacity,
			AvgEtaMinutes:     item.AvgEtaMinutes,
		})
	}
	return RiderListResponse{Items: items, Total: resp.Total}
}
