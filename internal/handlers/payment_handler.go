package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	gigsvc "github.com/gignest/gignest_backend/internal/services/gig"
)

type PaymentHandler struct {
	Svc *gigsvc.Service
	Log *zap.Logger
}

func NewPaymentHandler(svc *gigsvc.Service, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{Svc: svc, Log: log}
}

// RecordPayment is the client's simulated escrow capture. It moves the gig to
// awaiting_payout and writes the pending-release ledger entry.
func (h *PaymentHandler) RecordPayment(c *fiber.Ctx) error {
	actorID, err := currentUserID(c)
	if err != nil {
		return err
	}
	gigID, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	g, txn, err := h.Svc.RecordClientPayment(c.Context(), gigID, actorID)
	if err != nil {
		return respondErr(c, err)
	}
	return created(c, fiber.Map{
		"gig":         g,
		"transaction": txn,
		"net_payout":  g.GrossBudget().NetPayout(),
	})
}

// RequestPayment is the student's nudge to the client once every report is
// approved.
func (h *PaymentHandler) RequestPayment(c *fiber.Ctx) error {
	studentID, err := currentUserID(c)
	if err != nil {
		return err
	}
	gigID, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	g, err := h.Svc.RequestPayment(c.Context(), gigID, studentID)
	if err != nil {
		return respondErr(c, err)
	}
	return ok(c, fiber.Map{
		"gig":                    g,
		"payment_requests_count": g.PaymentRequestsCount,
	})
}

// FinalizeRelease is the admin release step completing the gig.
func (h *PaymentHandler) FinalizeRelease(c *fiber.Ctx) error {
	gigID, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	g, err := h.Svc.FinalizeRelease(c.Context(), gigID)
	if err != nil {
		return respondErr(c, err)
	}
	return ok(c, g)
}

// ListTransactions returns the ledger entries the caller participates in.
func (h *PaymentHandler) ListTransactions(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	txns, err := h.Svc.ListTransactionsFor(c.Context(), userID)
	if err != nil {
		return respondErr(c, err)
	}
	return ok(c, txns)
}
