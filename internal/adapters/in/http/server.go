package http

import (
	"context"
	"errors"
	"net/http"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/restaurant"
	"ordering/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// createOrderHandler handles order placement.
type createOrderHandler interface {
	Handle(ctx context.Context, cmd commands.CreateOrderCommand) (commands.CreateOrderResponse, error)
}

// trackOrderHandler resolves tracking ids.
type trackOrderHandler interface {
	Handle(ctx context.Context, query queries.TrackOrderQuery) (queries.TrackOrderQueryResponse, error)
}

// Server exposes the ordering use cases over HTTP.
// It translates between the JSON API and the application layer and maps
// application errors to status codes.
type Server struct {
	createOrderHandler createOrderHandler
	trackOrderHandler  trackOrderHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(createOrder createOrderHandler, trackOrder trackOrderHandler) *Server {
	return &Server{
		createOrderHandler: createOrder,
		trackOrderHandler:  trackOrder,
	}
}

// RegisterRoutes mounts the API routes on the given echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/:trackingId", s.TrackOrder)
}

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// AddressRequest is the delivery destination of a new order.
type AddressRequest struct {
	Street     string `json:"street"`
	PostalCode string `json:"postalCode"`
	City       string `json:"city"`
}

// OrderItemRequest is one order line as the client saw it at checkout.
type OrderItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price"`
	SubTotal  string `json:"subTotal"`
}

// CreateOrderRequest is the body of POST /api/v1/orders.
type CreateOrderRequest struct {
	CustomerID      string             `json:"customerId"`
	RestaurantID    string             `json:"restaurantId"`
	DeliveryAddress AddressRequest     `json:"deliveryAddress"`
	Price           string             `json:"price"`
	Items           []OrderItemRequest `json:"items"`
}

// CreateOrderResponse is the body of a successful order placement.
type CreateOrderResponse struct {
	OrderID    string `json:"orderId"`
	TrackingID string `json:"trackingId"`
	Status     string `json:"status"`
	Message    string `json:"message"`
}

// TrackOrderResponse is the body of GET /api/v1/orders/:trackingId.
type TrackOrderResponse struct {
	TrackingID      string   `json:"trackingId"`
	Status          string   `json:"status"`
	Price           string   `json:"price"`
	FailureMessages []string `json:"failureMessages,omitempty"`
}

// CreateOrder handles POST /api/v1/orders - places a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request CreateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commandFromRequest(request)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid order data: " + err.Error(),
		})
	}

	response, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{
		OrderID:    response.OrderID.String(),
		TrackingID: response.TrackingID.String(),
		Status:     response.Status.String(),
		Message:    response.Message,
	})
}

// TrackOrder handles GET /api/v1/orders/:trackingId - resolves a tracking id.
func (s *Server) TrackOrder(ctx echo.Context) error {
	trackingID, err := kernel.UUIDFromString(ctx.Param("trackingId"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid tracking id",
		})
	}

	query, err := queries.NewTrackOrderQuery(trackingID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid tracking id",
		})
	}

	response, err := s.trackOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, TrackOrderResponse{
		TrackingID:      response.TrackingID.String(),
		Status:          response.Status,
		Price:           response.Price,
		FailureMessages: response.FailureMessages,
	})
}

// commandFromRequest converts the JSON body into an application command.
func commandFromRequest(request CreateOrderRequest) (commands.CreateOrderCommand, error) {
	customerID, err := kernel.UUIDFromString(request.CustomerID)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	restaurantID, err := kernel.UUIDFromString(request.RestaurantID)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	address, err := order.NewStreetAddress(
		request.DeliveryAddress.Street,
		request.DeliveryAddress.PostalCode,
		request.DeliveryAddress.City,
	)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	price, err := kernel.MoneyFromString(request.Price)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	items := make([]commands.CreateOrderItem, 0, len(request.Items))
	for _, itemRequest := range request.Items {
		item, err := itemFromRequest(itemRequest)
		if err != nil {
			return commands.CreateOrderCommand{}, err
		}
		items = append(items, item)
	}

	return commands.NewCreateOrderCommand(customerID, restaurantID, address, price, items)
}

func itemFromRequest(request OrderItemRequest) (commands.CreateOrderItem, error) {
	rawID, err := kernel.UUIDFromString(request.ProductID)
	if err != nil {
		return commands.CreateOrderItem{}, err
	}

	productID, err := restaurant.ProductIDFromUUID(rawID)
	if err != nil {
		return commands.CreateOrderItem{}, err
	}

	price, err := kernel.MoneyFromString(request.Price)
	if err != nil {
		return commands.CreateOrderItem{}, err
	}

	subTotal, err := kernel.MoneyFromString(request.SubTotal)
	if err != nil {
		return commands.CreateOrderItem{}, err
	}

	return commands.NewCreateOrderItem(productID, request.Quantity, price, subTotal)
}

// errorResponse maps application errors to HTTP status codes.
func errorResponse(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, ErrorResponse{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrDomainViolation):
		return ctx.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Code:    http.StatusUnprocessableEntity,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValueIsRequired), errors.Is(err, errs.ErrValueIsInvalid):
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
}
