package handler

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/kynetiq/orderbook/internal/domain"
	"github.com/kynetiq/orderbook/internal/engine"
	"github.com/kynetiq/orderbook/internal/service"
)

// OrderHandler handles HTTP requests for order placement.
type OrderHandler struct {
	svc *service.OrderBookService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(svc *service.OrderBookService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

// addOrderRequest is the JSON request body for POST /api/orders/limit.
// Quantity and price accept JSON numbers or numeric strings; both are
// carried as exact decimals end to end.
type addOrderRequest struct {
	Side       string           `json:"side"`
	Quantity   *decimal.Decimal `json:"quantity"`
	Price      *decimal.Decimal `json:"price"`
	Instrument string           `json:"instrument"`
}

// orderDetailsResponse echoes the settled order in the outcome.
type orderDetailsResponse struct {
	Side       string          `json:"side"`
	Quantity   decimal.Decimal `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	Instrument string          `json:"instrument"`
}

// addOrderResponse is the JSON form of the addition outcome.
type addOrderResponse struct {
	Success           bool                  `json:"success"`
	Message           string                `json:"message"`
	IsOrderMatched    bool                  `json:"isOrderMatched"`
	PartiallyFilled   bool                  `json:"partiallyFilled"`
	RemainingQuantity decimal.Decimal       `json:"remainingQuantity"`
	OrderDetails      *orderDetailsResponse `json:"orderDetails"`
}

// AddLimitOrder handles POST /api/orders/limit. A validation rejection is
// surfaced as 400 with the outcome body; an accepted order returns 201.
func (h *OrderHandler) AddLimitOrder(w http.ResponseWriter, r *http.Request) {
	var req addOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if req.Quantity == nil || req.Price == nil || req.Side == "" || req.Instrument == "" {
		WriteError(w, http.StatusBadRequest, "invalid_request",
			"One of the fields is missing: 'side', 'price', 'quantity' or 'instrument'")
		return
	}
	side, ok := domain.ParseSide(req.Side)
	if !ok {
		WriteError(w, http.StatusBadRequest, "invalid_request", "side must be BUY or SELL")
		return
	}

	order := domain.NewOrder(side, *req.Quantity, *req.Price, req.Instrument)
	outcome := h.svc.AddOrder(order)

	status := http.StatusCreated
	if !outcome.Success {
		status = http.StatusBadRequest
	}
	WriteJSON(w, status, buildAddOrderResponse(outcome))
}

func buildAddOrderResponse(outcome engine.AdditionOutcome) addOrderResponse {
	resp := addOrderResponse{
		Success:           outcome.Success,
		Message:           outcome.Message,
		IsOrderMatched:    outcome.Matched,
		PartiallyFilled:   outcome.PartiallyFilled,
		RemainingQuantity: outcome.RemainingQuantity,
	}
	if outcome.Order != nil {
		resp.OrderDetails = &orderDetailsResponse{
			Side:       string(outcome.Order.Side),
			Quantity:   outcome.Order.Quantity,
			Price:      outcome.Order.Price,
			Instrument: outcome.Order.Instrument,
		}
	}
	return resp
}
