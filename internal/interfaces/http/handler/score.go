package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	scoringapp "github.com/parceldesk/backend/internal/application/scoring"
	"github.com/parceldesk/backend/internal/domain/scoring"
)

// ScoreHandler exposes delivery reliability scores and ledger history
type ScoreHandler struct {
	BaseHandler
	ledgerService *scoringapp.LedgerService
}

// NewScoreHandler creates a new ScoreHandler
func NewScoreHandler(ledgerService *scoringapp.LedgerService) *ScoreHandler {
	return &ScoreHandler{
		ledgerService: ledgerService,
	}
}

// ScoreResponse carries a computed reliability score
type ScoreResponse struct {
	Score int64 `json:"score"`
}

// LedgerEntryResponse is one ledger row as returned to callers
type LedgerEntryResponse struct {
	ID         uuid.UUID `json:"id"`
	ShipmentID uuid.UUID `json:"shipment_id"`
	CustomerID uuid.UUID `json:"customer_id"`
	Delta      int       `json:"delta"`
	Reason     string    `json:"reason"`
	CreatedAt  time.Time `json:"created_at"`
}

func toLedgerEntryResponses(entries []scoring.LedgerEntry) []LedgerEntryResponse {
	resp := make([]LedgerEntryResponse, len(entries))
	for i, e := range entries {
		resp[i] = LedgerEntryResponse{
			ID:         e.ID,
			ShipmentID: e.ShipmentID,
			CustomerID: e.CustomerID,
			Delta:      e.Delta,
			Reason:     e.Reason.String(),
			CreatedAt:  e.CreatedAt,
		}
	}
	return resp
}

// CustomerScore returns the reliability score for one tenant-local customer
func (h *ScoreHandler) CustomerScore(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	score, err := h.ledgerService.ScoreFor(c.Request.Context(), customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ScoreResponse{Score: score})
}

// CustomerHistory returns the ledger entries recorded for a customer
func (h *ScoreHandler) CustomerHistory(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	entries, err := h.ledgerService.History(c.Request.Context(), customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toLedgerEntryResponses(entries))
}

// GlobalIdentityScore returns the cross-tenant reliability score for a
// resolved global identity
func (h *ScoreHandler) GlobalIdentityScore(c *gin.Context) {
	identityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid global identity ID")
		return
	}

	score, err := h.ledgerService.ScoreForGlobalIdentity(c.Request.Context(), identityID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ScoreResponse{Score: score})
}

// RegisterRoutes registers all score and ledger routes
func (h *ScoreHandler) RegisterRoutes(rg *gin.RouterGroup) {
	customers := rg.Group("/customers")
	{
		customers.GET("/:id/score", h.CustomerScore)
		customers.GET("/:id/ledger", h.CustomerHistory)
	}

	identities := rg.Group("/identities")
	{
		identities.GET("/:id/score", h.GlobalIdentityScore)
	}
}
