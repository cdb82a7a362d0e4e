package handler

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kynetiq/orderbook/internal/domain"
	"github.com/kynetiq/orderbook/internal/service"
)

// TradeHandler serves the recorded trade history.
type TradeHandler struct {
	svc *service.OrderBookService
}

// NewTradeHandler creates a new TradeHandler.
func NewTradeHandler(svc *service.OrderBookService) *TradeHandler {
	return &TradeHandler{svc: svc}
}

// tradeResponse is the JSON form of one recorded trade.
type tradeResponse struct {
	ID         string          `json:"id"`
	Price      decimal.Decimal `json:"price"`
	Quantity   decimal.Decimal `json:"quantity"`
	Instrument string          `json:"instrument"`
	Timestamp  string          `json:"timestamp"`
	TakerSide  string          `json:"takerSide"`
}

// GetTrades handles GET /api/recent-trades. Trades are returned in the
// order they were recorded.
func (h *TradeHandler) GetTrades(w http.ResponseWriter, r *http.Request) {
	trades := h.svc.Trades()
	WriteJSON(w, http.StatusOK, buildTradeResponses(trades))
}

func buildTradeResponses(trades []domain.Trade) []tradeResponse {
	out := make([]tradeResponse, 0, len(trades))
	for _, t := range trades {
		out = append(out, buildTradeResponse(t))
	}
	return out
}

func buildTradeResponse(t domain.Trade) tradeResponse {
	return tradeResponse{
		ID:         t.ID,
		Price:      t.Price,
		Quantity:   t.Quantity,
		Instrument: t.Instrument,
		Timestamp:  t.Timestamp.Format(time.RFC3339Nano),
		TakerSide:  string(t.TakerSide),
	}
}
