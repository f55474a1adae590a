package http

import (
	"net/http"
	"strconv"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	assignOrderHandler commands.AssignOrderCommandHandler
	assignBatchHandler commands.AssignBatchCommandHandler
	autoAssignHandler  commands.AutoAssignCommandHandler
	createOrderHandler commands.CreateOrderCommandHandler
	updateRuleHandler  commands.UpdateRuleCommandHandler

	// Query handlers
	getOrdersHandler            queries.GetOrdersQueryHandler
	getRidersHandler            queries.GetRidersQueryHandler
	getAssignmentsHandler       queries.GetAssignmentsByOrderQueryHandler
	getActiveRuleHandler        queries.GetActiveRuleQueryHandler
	getRecommendedRidersHandler queries.GetRecommendedRidersQueryHandler

	sink *metrics.PromSink
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	assignOrderHandler commands.AssignOrderCommandHandler,
	assignBatchHandler commands.AssignBatchCommandHandler,
	autoAssignHandler commands.AutoAssignCommandHandler,
	createOrderHandler commands.CreateOrderCommandHandler,
	updateRuleHandler commands.UpdateRuleCommandHandler,
	getOrdersHandler queries.GetOrdersQueryHandler,
	getRidersHandler queries.GetRidersQueryHandler,
	getAssignmentsHandler queries.GetAssignmentsByOrderQueryHandler,
	getActiveRuleHandler queries.GetActiveRuleQueryHandler,
	getRecommendedRidersHandler queries.GetRecommendedRidersQueryHandler,
	sink *metrics.PromSink,
) *Server {
	return &Server{
		assignOrderHandler:          assignOrderHandler,
		assignBatchHandler:          assignBatchHandler,
		autoAssignHandler:           autoAssignHandler,
		createOrderHandler:          createOrderHandler,
		updateRuleHandler:           updateRuleHandler,
		getOrdersHandler:            getOrdersHandler,
		getRidersHandler:            getRidersHandler,
		getAssignmentsHandler:       getAssignmentsHandler,
		getActiveRuleHandler:        getActiveRuleHandler,
		getRecommendedRidersHandler: getRecommendedRidersHandler,
		sink:                        sink,
	}
}

// RegisterRoutes attaches every API route to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/assignments", s.AssignOrder)
	api.POST("/assignments/batch", s.AssignBatch)
	api.POST("/assignments/auto", s.AutoAssign)

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.GetOrders)
	api.GET("/orders/:orderId/assignments", s.GetAssignmentsByOrder)
	api.GET("/orders/:orderId/recommended-riders", s.GetRecommendedRiders)

	api.GET("/riders", s.GetRiders)

	api.GET("/rule-config", s.GetRuleConfig)
	api.PUT("/rule-config", s.UpdateRuleConfig)

	e.GET("/health", func(ctx echo.Context) error {
		return ctx.JSON(http.StatusOK, map[string]string{"status": "healthy"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// AssignOrder handles POST /api/v1/assignments - commits one order to one rider.
func (s *Server) AssignOrder(ctx echo.Context) error {
	var req AssignOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderID, err := kernel.UUIDFromBytes(req.OrderID[:])
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}
	riderID, err := kernel.UUIDFromBytes(req.RiderID[:])
	if err != nil {
		return badRequest(ctx, "Invalid rider id: "+err.Error())
	}

	cmd, err := commands.NewAssignOrderCommand(orderID, riderID, req.OverrideSLA, req.AssignedBy)
	if err != nil {
		return badRequest(ctx, "Invalid assignment data: "+err.Error())
	}

	fact, err := s.assignOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		s.sink.RecordAssignment(req.AssignedBy, false)
		return domainError(ctx, err)
	}
	s.sink.RecordAssignment(fact.AssignedBy(), true)

	return ctx.JSON(http.StatusCreated, assignmentResponseFromFact(fact))
}

// AssignBatch handles POST /api/v1/assignments/batch - commits several orders
// to one rider. Partial success returns 200 with the per-order failures.
func (s *Server) AssignBatch(ctx echo.Context) error {
	var req AssignBatchRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderIDs := make([]kernel.UUID, 0, len(req.OrderIDs))
	for _, raw := range req.OrderIDs {
		orderID, err := kernel.UUIDFromBytes(raw[:])
		if err != nil {
			return badRequest(ctx, "Invalid order id: "+err.Error())
		}
		orderIDs = append(orderIDs, orderID)
	}
	riderID, err := kernel.UUIDFromBytes(req.RiderID[:])
	if err != nil {
		return badRequest(ctx, "Invalid rider id: "+err.Error())
	}

	cmd, err := commands.NewAssignBatchCommand(orderIDs, riderID, req.AssignedBy)
	if err != nil {
		return badRequest(ctx, "Invalid batch data: "+err.Error())
	}

	result, err := s.assignBatchHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	for i := 0; i < result.Assigned; i++ {
		s.sink.RecordAssignment(req.AssignedBy, true)
	}
	for range result.Failed {
		s.sink.RecordAssignment(req.AssignedBy, false)
	}

	return ctx.JSON(http.StatusOK, batchResultResponse(result))
}

// AutoAssign handles POST /api/v1/assignments/auto - runs one auto-assignment
// pass on demand, over every unassigned order or the requested subset.
func (s *Server) AutoAssign(ctx echo.Context) error {
	var req AutoAssignRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	var orderIDs []kernel.UUID
	for _, raw := range req.OrderIDs {
		orderID, err := kernel.UUIDFromBytes(raw[:])
		if err != nil {
			return badRequest(ctx, "Invalid order id: "+err.Error())
		}
		orderIDs = append(orderIDs, orderID)
	}

	cmd, err := commands.NewAutoAssignCommand(orderIDs)
	if err != nil {
		return badRequest(ctx, "Invalid auto-assign data: "+err.Error())
	}

	result, err := s.autoAssignHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}
	s.sink.RecordSchedulerTick(result.Assigned, result.Failed)

	return ctx.JSON(http.StatusOK, TickResultResponse{
		Assigned: result.Assigned,
		Failed:   result.Failed,
	})
}

// CreateOrder handles POST /api/v1/orders - registers a new delivery order.
// When riderId is present the order is assigned right after creation; an
// assignment failure still leaves the order created.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	priority, err := order.PriorityFromString(req.Priority)
	if err != nil {
		return badRequest(ctx, "Invalid priority: "+err.Error())
	}
	pickup, err := kernel.NewGeoPoint(req.PickupLat, req.PickupLng)
	if err != nil {
		return badRequest(ctx, "Invalid pickup point: "+err.Error())
	}
	drop, err := kernel.NewGeoPoint(req.DropLat, req.DropLng)
	if err != nil {
		return badRequest(ctx, "Invalid drop point: "+err.Error())
	}

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), priority,
		pickup, req.PickupAddress,
		drop, req.DropAddress,
		req.Zone, req.DistanceKm, req.EtaMinutes, req.SLADeadline,
	)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	if req.RiderID == nil {
		return ctx.JSON(http.StatusCreated, OrderResponse{
			ID:            created.ID().Bytes(),
			Status:        created.Status().String(),
			Priority:      created.Priority().String(),
			PickupAddress: created.PickupAddress(),
			DropAddress:   created.DropAddress(),
			Zone:          created.Zone(),
			DistanceKm:    created.DistanceKm(),
			EtaMinutes:    created.EtaMinutes(),
			SLADeadline:   created.SLADeadline(),
			CreatedAt:     created.CreatedAt(),
		})
	}

	riderID, err := kernel.UUIDFromBytes(req.RiderID[:])
	if err != nil {
		return badRequest(ctx, "Invalid rider id: "+err.Error())
	}
	assignedBy := req.AssignedBy
	if assignedBy == "" {
		assignedBy = "operator"
	}

	assignCmd, err := commands.NewAssignOrderCommand(created.ID(), riderID, false, assignedBy)
	if err != nil {
		return badRequest(ctx, "Invalid assignment data: "+err.Error())
	}

	fact, err := s.assignOrderHandler.Handle(ctx.Request().Context(), assignCmd)
	if err != nil {
		s.sink.RecordAssignment(assignedBy, false)
		return domainError(ctx, err)
	}
	s.sink.RecordAssignment(fact.AssignedBy(), true)

	return ctx.JSON(http.StatusCreated, assignmentResponseFromFact(fact))
}

// GetOrders handles GET /api/v1/orders - lists orders with filters and paging.
func (s *Server) GetOrders(ctx echo.Context) error {
	query := queries.NewGetOrdersQuery(
		ctx.QueryParam("status"),
		ctx.QueryParam("zone"),
		ctx.QueryParam("priority"),
		ctx.QueryParam("search"),
		intParam(ctx, "page"),
		intParam(ctx, "perPage"),
	)

	resp, err := s.getOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderListResponse(resp))
}

// GetRiders handles GET /api/v1/riders - lists riders with filters and paging.
func (s *Server) GetRiders(ctx echo.Context) error {
	query := queries.NewGetRidersQuery(
		ctx.QueryParam("status"),
		ctx.QueryParam("zone"),
		ctx.QueryParam("search"),
		intParam(ctx, "page"),
		intParam(ctx, "perPage"),
	)

	resp, err := s.getRidersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, riderListResponse(resp))
}

// GetAssignmentsByOrder handles GET /api/v1/orders/:orderId/assignments -
// returns the order's assignment trail, oldest first.
func (s *Server) GetAssignmentsByOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	query, err := queries.NewGetAssignmentsByOrderQuery(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid query: "+err.Error())
	}

	trail, err := s.getAssignmentsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	response := make([]AssignmentResponse, 0, len(trail))
	for _, fact := range trail {
		response = append(response, AssignmentResponse{
			OrderID:     fact.OrderID.Bytes(),
			RiderID:     fact.RiderID.Bytes(),
			AssignedAt:  fact.AssignedAt,
			OverrideSLA: fact.OverrideSLA,
			AssignedBy:  fact.AssignedBy,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetRecommendedRiders handles GET /api/v1/orders/:orderId/recommended-riders -
// returns ranked candidates for the order, best first.
func (s *Server) GetRecommendedRiders(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	query, err := queries.NewGetRecommendedRidersQuery(orderID, ctx.QueryParam("search"))
	if err != nil {
		return badRequest(ctx, "Invalid query: "+err.Error())
	}

	candidates, err := s.getRecommendedRidersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	response := make([]RecommendedRiderResponse, 0, len(candidates))
	for _, c := range candidates {
		response = append(response, RecommendedRiderResponse{
			RiderID:                c.RiderID.Bytes(),
			Name:                   c.Name,
			Zone:                   c.Zone,
			Score:                  c.Score,
			PickupDistanceKm:       c.PickupDistanceKm,
			EstimatedPickupMinutes: c.EstimatedPickupMinutes,
			ActiveOrdersCount:      c.ActiveOrdersCount,
			MaxCapacity:            c.MaxCapacity,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetRuleConfig handles GET /api/v1/rule-config - returns the stored
// auto-assign rule configuration.
func (s *Server) GetRuleConfig(ctx echo.Context) error {
	resp, err := s.getActiveRuleHandler.Handle(ctx.Request().Context(), queries.NewGetActiveRuleQuery())
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, RuleConfigResponse{
		ID:                resp.ID.Bytes(),
		Name:              resp.Name,
		IsActive:          resp.IsActive,
		MaxRadiusKm:       resp.MaxRadiusKm,
		MaxOrdersPerRider: resp.MaxOrdersPerRider,
		PreferSameZone:    resp.PreferSameZone,
		PriorityWeight:    resp.PriorityWeight,
		DistanceWeight:    resp.DistanceWeight,
		EtaWeight:         resp.EtaWeight,
		UpdatedAt:         resp.UpdatedAt,
	})
}

// UpdateRuleConfig handles PUT /api/v1/rule-config - atomically replaces the
// auto-assign rule configuration.
func (s *Server) UpdateRuleConfig(ctx echo.Context) error {
	var req RuleConfigRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewUpdateRuleCommand(
		req.Name, req.IsActive,
		req.MaxRadiusKm, req.MaxOrdersPerRider, req.PreferSameZone,
		req.PriorityWeight, req.DistanceWeight, req.EtaWeight,
	)
	if err != nil {
		return domainError(ctx, err)
	}

	updated, err := s.updateRuleHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	criteria := updated.Criteria()
	return ctx.JSON(http.StatusOK, RuleConfigResponse{
		ID:                updated.ID().Bytes(),
		Name:              updated.Name(),
		IsActive:          updated.IsActive(),
		MaxRadiusKm:       criteria.MaxRadiusKm(),
		MaxOrdersPerRider: criteria.MaxOrdersPerRider(),
		PreferSameZone:    criteria.PreferSameZone(),
		PriorityWeight:    criteria.PriorityWeight(),
		DistanceWeight:    criteria.DistanceWeight(),
		EtaWeight:         criteria.EtaWeight(),
		UpdatedAt:         updated.UpdatedAt(),
	})
}

func intParam(ctx echo.Context, name string) int {
	value, err := strconv.Atoi(ctx.QueryParam(name))
	if err != nil {
		return 0
	}
	return value
}
