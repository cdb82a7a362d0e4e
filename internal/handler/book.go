package handler

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kynetiq/orderbook/internal/engine"
	"github.com/kynetiq/orderbook/internal/service"
)

// BookHandler serves aggregated order book snapshots.
type BookHandler struct {
	svc *service.OrderBookService
}

// NewBookHandler creates a new BookHandler.
func NewBookHandler(svc *service.OrderBookService) *BookHandler {
	return &BookHandler{svc: svc}
}

// levelResponse is one aggregated price level in the snapshot.
type levelResponse struct {
	Side       string          `json:"side"`
	Quantity   decimal.Decimal `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	Instrument string          `json:"instrument"`
	OrderCount int             `json:"orderCount"`
}

// bookResponse is the JSON form of a book snapshot.
type bookResponse struct {
	Asks           []levelResponse `json:"asks"`
	Bids           []levelResponse `json:"bids"`
	LastChange     string          `json:"lastChange"`
	SequenceNumber int64           `json:"sequenceNumber"`
}

// GetBook handles GET /api/orderbook.
func (h *BookHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	snap := h.svc.Snapshot()
	WriteJSON(w, http.StatusOK, bookResponse{
		Asks:           buildLevels(snap.Asks),
		Bids:           buildLevels(snap.Bids),
		LastChange:     snap.LastUpdated.Format(time.RFC3339Nano),
		SequenceNumber: snap.Sequence,
	})
}

func buildLevels(levels []engine.LevelSummary) []levelResponse {
	out := make([]levelResponse, 0, len(levels))
	for _, lvl := range levels {
		out = append(out, levelResponse{
			Side:       string(lvl.Side),
			Quantity:   lvl.Quantity,
			Price:      lvl.Price,
			Instrument: lvl.Instrument,
			OrderCount: lvl.OrderCount,
		})
	}
	return out
}
