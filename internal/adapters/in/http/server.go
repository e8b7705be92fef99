// Package http exposes the package lifecycle and discovery operations as a
// JSON API on Echo. It translates transport concerns (headers, query params,
// bodies) into commands and queries, and the error taxonomy into status codes.
package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"foodbridge/internal/core/application/usecases/commands"
	"foodbridge/internal/core/application/usecases/queries"
	"foodbridge/internal/core/domain/model/kernel"
	"foodbridge/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// callerHeader identifies the acting store or courier. Authentication proper
// is out of scope; the header carries an opaque UUID issued elsewhere.
const callerHeader = "X-Caller-ID"

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createPackageHandler   commands.CreatePackageCommandHandler
	assignPackageHandler   commands.AssignPackageCommandHandler
	confirmPickupHandler   commands.ConfirmPickupCommandHandler
	confirmDeliveryHandler commands.ConfirmDeliveryCommandHandler
	deletePackageHandler   commands.DeletePackageCommandHandler

	// Query handlers
	availablePackagesHandler queries.GetAvailablePackagesQueryHandler
	storePackagesHandler     queries.GetStorePackagesQueryHandler

	// defaultCoordinates is used when a courier queries discovery without
	// lat/lng.
	defaultCoordinates kernel.GeoPoint
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createPackageHandler commands.CreatePackageCommandHandler,
	assignPackageHandler commands.AssignPackageCommandHandler,
	confirmPickupHandler commands.ConfirmPickupCommandHandler,
	confirmDeliveryHandler commands.ConfirmDeliveryCommandHandler,
	deletePackageHandler commands.DeletePackageCommandHandler,
	availablePackagesHandler queries.GetAvailablePackagesQueryHandler,
	storePackagesHandler queries.GetStorePackagesQueryHandler,
	defaultCoordinates kernel.GeoPoint,
) *Server {
	return &Server{
		createPackageHandler:     createPackageHandler,
		assignPackageHandler:     assignPackageHandler,
		confirmPickupHandler:     confirmPickupHandler,
		confirmDeliveryHandler:   confirmDeliveryHandler,
		deletePackageHandler:     deletePackageHandler,
		availablePackagesHandler: availablePackagesHandler,
		storePackagesHandler:     storePackagesHandler,
		defaultCoordinates:       defaultCoordinates,
	}
}

// RegisterRoutes attaches all API routes to the Echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/packages", s.CreatePackage)
	api.GET("/packages/available", s.GetAvailablePackages)
	api.GET("/packages", s.GetStorePackages)
	api.POST("/packages/:id/assign", s.AssignPackage)
	api.POST("/packages/:id/pickup", s.ConfirmPickup)
	api.POST("/packages/:id/delivery", s.ConfirmDelivery)
	api.DELETE("/packages/:id", s.DeletePackage)

	e.GET("/health", s.Health)
}

// ErrorResponse is the JSON shape of every error reply.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreatePackageRequest is the body of POST /api/v1/packages.
type CreatePackageRequest struct {
	StoreName    string    `json:"store_name"`
	StoreAddress string    `json:"store_address"`
	Lat          *float64  `json:"lat"`
	Lng          *float64  `json:"lng"`
	WeightLbs    float64   `json:"weight_lbs"`
	FoodType     string    `json:"food_type"`
	Instructions string    `json:"instructions"`
	WindowStart  time.Time `json:"window_start"`
	WindowEnd    time.Time `json:"window_end"`
}

// CreatePackageResponse returns the new package to the owning store. This is
// the only response that carries the access codes; they are not retrievable
// afterwards.
type CreatePackageResponse struct {
	ID           string    `json:"id"`
	Status       string    `json:"status"`
	PickupCode   string    `json:"pickup_code"`
	DeliveryCode string    `json:"delivery_code"`
	RewardPoints int       `json:"reward_points"`
	CreatedAt    time.Time `json:"created_at"`
}

// AvailablePackageResponse is one row of the courier discovery listing.
type AvailablePackageResponse struct {
	ID           string    `json:"id"`
	StoreName    string    `json:"store_name"`
	StoreAddress string    `json:"store_address"`
	Lat          *float64  `json:"lat,omitempty"`
	Lng          *float64  `json:"lng,omitempty"`
	WeightLbs    float64   `json:"weight_lbs"`
	FoodType     string    `json:"food_type"`
	Instructions string    `json:"instructions"`
	WindowStart  time.Time `json:"window_start"`
	WindowEnd    time.Time `json:"window_end"`

	// DistanceMi is omitted when unknown; it is never reported as zero.
	DistanceMi   *float64 `json:"distance_mi,omitempty"`
	RewardPoints int      `json:"reward_points"`
	Urgency      string   `json:"urgency"`
}

// StorePackageResponse is one row of the store's own listing.
type StorePackageResponse struct {
	ID           string     `json:"id"`
	StoreName    string     `json:"store_name"`
	StoreAddress string     `json:"store_address"`
	WeightLbs    float64    `json:"weight_lbs"`
	FoodType     string     `json:"food_type"`
	Instructions string     `json:"instructions"`
	WindowStart  time.Time  `json:"window_start"`
	WindowEnd    time.Time  `json:"window_end"`
	Status       string     `json:"status"`
	CourierID    *string    `json:"courier_id,omitempty"`
	RewardPoints int        `json:"reward_points"`
	CreatedAt    time.Time  `json:"created_at"`
	AssignedAt   *time.Time `json:"assigned_at,omitempty"`
	PickedUpAt   *time.Time `json:"picked_up_at,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// CodeRequest carries the access code for pickup and delivery confirmations.
type CodeRequest struct {
	Code string `json:"code"`
}

// CreatePackage handles POST /api/v1/packages - a store publishes a package.
func (s *Server) CreatePackage(ctx echo.Context) error {
	storeID, err := s.callerID(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var req CreatePackageRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	// Coordinates come as a pair or not at all; half a location is a client
	// bug, same as on the discovery side.
	var location *kernel.GeoPoint
	switch {
	case req.Lat != nil && req.Lng != nil:
		point, pointErr := kernel.NewGeoPoint(*req.Lat, *req.Lng)
		if pointErr != nil {
			return badRequest(ctx, pointErr)
		}
		location = &point
	case req.Lat != nil:
		return badRequest(ctx, errs.NewValueIsRequiredError("lng"))
	case req.Lng != nil:
		return badRequest(ctx, errs.NewValueIsRequiredError("lat"))
	}

	window, err := kernel.NewTimeWindow(req.WindowStart, req.WindowEnd)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewCreatePackageCommand(
		kernel.NewUUID(), storeID, req.StoreName, req.StoreAddress, location,
		req.WeightLbs, req.FoodType, req.Instructions, window,
	)
	if err != nil {
		return badRequest(ctx, err)
	}

	created, err := s.createPackageHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatePackageResponse{
		ID:           created.ID().String(),
		Status:       created.Status().String(),
		PickupCode:   created.PickupCode().Value(),
		DeliveryCode: created.DeliveryCode().Value(),
		RewardPoints: created.RewardPoints(),
		CreatedAt:    created.CreatedAt(),
	})
}

// GetAvailablePackages handles GET /api/v1/packages/available - courier discovery.
func (s *Server) GetAvailablePackages(ctx echo.Context) error {
	position, err := s.courierPosition(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var maxDistance *float64
	if raw := ctx.QueryParam("max_distance_mi"); raw != "" {
		parsed, parseErr := strconv.ParseFloat(raw, 64)
		if parseErr != nil {
			return badRequest(ctx, errs.NewValueIsInvalidErrorWithCause("max_distance_mi", parseErr))
		}
		maxDistance = &parsed
	}

	query, err := queries.NewGetAvailablePackagesQuery(
		position,
		ctx.QueryParam("q"),
		ctx.QueryParam("food_type"),
		maxDistance,
		ctx.QueryParam("sort"),
	)
	if err != nil {
		return badRequest(ctx, err)
	}

	results, err := s.availablePackagesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	response := make([]AvailablePackageResponse, len(results))
	for i, r := range results {
		response[i] = AvailablePackageResponse{
			ID:           r.ID.String(),
			StoreName:    r.StoreName,
			StoreAddress: r.StoreAddress,
			Lat:          r.StoreLat,
			Lng:          r.StoreLng,
			WeightLbs:    r.WeightLbs,
			FoodType:     r.FoodType,
			Instructions: r.Instructions,
			WindowStart:  r.WindowStart,
			WindowEnd:    r.WindowEnd,
			DistanceMi:   r.DistanceMiles,
			RewardPoints: r.RewardPoints,
			Urgency:      r.Urgency,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetStorePackages handles GET /api/v1/packages - a store lists its packages.
func (s *Server) GetStorePackages(ctx echo.Context) error {
	storeID, err := s.callerID(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	query, err := queries.NewGetStorePackagesQuery(storeID)
	if err != nil {
		return badRequest(ctx, err)
	}

	results, err := s.storePackagesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	response := make([]StorePackageResponse, len(results))
	for i, r := range results {
		var courierID *string
		if r.CourierID != nil {
			id := r.CourierID.String()
			courierID = &id
		}

		response[i] = StorePackageResponse{
			ID:           r.ID.String(),
			StoreName:    r.StoreName,
			StoreAddress: r.StoreAddress,
			WeightLbs:    r.WeightLbs,
			FoodType:     r.FoodType,
			Instructions: r.Instructions,
			WindowStart:  r.WindowStart,
			WindowEnd:    r.WindowEnd,
			Status:       r.Status,
			CourierID:    courierID,
			RewardPoints: r.RewardPoints,
			CreatedAt:    r.CreatedAt,
			AssignedAt:   r.AssignedAt,
			PickedUpAt:   r.PickedUpAt,
			CompletedAt:  r.CompletedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// AssignPackage handles POST /api/v1/packages/:id/assign - a courier claims a package.
func (s *Server) AssignPackage(ctx echo.Context) error {
	courierID, err := s.callerID(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	packageID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewAssignPackageCommand(packageID, courierID)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.assignPackageHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ConfirmPickup handles POST /api/v1/packages/:id/pickup - the store handoff gate.
func (s *Server) ConfirmPickup(ctx echo.Context) error {
	courierID, err := s.callerID(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	packageID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, err)
	}

	var req CodeRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewConfirmPickupCommand(packageID, courierID, req.Code)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.confirmPickupHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ConfirmDelivery handles POST /api/v1/packages/:id/delivery - the food bank handoff gate.
func (s *Server) ConfirmDelivery(ctx echo.Context) error {
	packageID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, err)
	}

	var req CodeRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewConfirmDeliveryCommand(packageID, req.Code)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.confirmDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DeletePackage handles DELETE /api/v1/packages/:id - a store withdraws a pending package.
func (s *Server) DeletePackage(ctx echo.Context) error {
	packageID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewDeletePackageCommand(packageID)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.deletePackageHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// callerID resolves the acting party from the X-Caller-ID header.
func (s *Server) callerID(ctx echo.Context) (kernel.UUID, error) {
	raw := ctx.Request().Header.Get(callerHeader)
	if raw == "" {
		return kernel.UUID{}, errs.NewValueIsRequiredError(callerHeader)
	}

	return kernel.UUIDFromString(raw)
}

// courierPosition resolves the courier's coordinates from lat/lng query
// params, falling back to the configured default when both are absent.
func (s *Server) courierPosition(ctx echo.Context) (*kernel.GeoPoint, error) {
	rawLat, rawLng := ctx.QueryParam("lat"), ctx.QueryParam("lng")
	if rawLat == "" && rawLng == "" {
		position := s.defaultCoordinates
		return &position, nil
	}

	lat, err := strconv.ParseFloat(rawLat, 64)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("lat", err)
	}

	lng, err := strconv.ParseFloat(rawLng, 64)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("lng", err)
	}

	position, err := kernel.NewGeoPoint(lat, lng)
	if err != nil {
		return nil, err
	}

	return &position, nil
}

// writeError maps the error taxonomy onto status codes. Verification
// failures get a constant body so callers cannot tell a wrong code from a
// wrong courier binding.
func (s *Server) writeError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrCodeVerificationFailed):
		return ctx.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Code:    http.StatusUnprocessableEntity,
			Message: "verification failed",
		})
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, ErrorResponse{
			Code:    http.StatusNotFound,
			Message: "Package not found",
		})
	case errors.Is(err, errs.ErrStatusConflict):
		return ctx.JSON(http.StatusConflict, ErrorResponse{
			Code:    http.StatusConflict,
			Message: "Package status does not allow this operation",
		})
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return badRequest(ctx, err)
	default:
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Internal error",
		})
	}
}

func badRequest(ctx echo.Context, err error) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: err.Error(),
	})
}
