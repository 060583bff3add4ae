package handlers

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"expense-tracker-go-be/services"
)

// jsonNumber writes d as a bare JSON number without going through float64.
func jsonNumber(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

// TransactionHandler serves the tracker routes. Every route runs behind
// the session middleware.
type TransactionHandler struct {
	svc *services.TransactionService
}

func NewTransactionHandler(svc *services.TransactionService) *TransactionHandler {
	return &TransactionHandler{svc: svc}
}

func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return err
	}

	var req transactionRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	txn, err := h.svc.Create(c.UserContext(), id.UserID, req.fields())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":            true,
		"message":            "New transaction is created successfully.",
		"transactionDetails": txn,
	})
}

func (h *TransactionHandler) GetAll(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return err
	}

	txns, err := h.svc.List(c.UserContext(), id.UserID)
	if err != nil {
		return err
	}

	message := fmt.Sprintf("%s %s here is your all transactions details.", id.FirstName, id.LastName)
	if len(txns) == 0 {
		message = fmt.Sprintf("%s %s you have not created any transactions yet. Please create your transactions.", id.FirstName, id.LastName)
	}
	return c.JSON(fiber.Map{
		"success":           true,
		"message":           message,
		"transactionList":   txns,
		"totalTransactions": len(txns),
	})
}

func (h *TransactionHandler) Get(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return err
	}

	txn, err := h.svc.Get(c.UserContext(), id.UserID, c.Params("transactionId"))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":            true,
		"transactionDetails": txn,
	})
}

func (h *TransactionHandler) Update(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return err
	}

	var req transactionRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	txn, err := h.svc.Update(c.UserContext(), id.UserID, c.Params("transactionId"), req.fields())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":            true,
		"message":            "Transaction updated successfully.",
		"transactionDetails": txn,
	})
}

func (h *TransactionHandler) Delete(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return err
	}

	if err := h.svc.Delete(c.UserContext(), id.UserID, c.Params("transactionId")); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Transaction deleted successfully.",
	})
}

func (h *TransactionHandler) Summary(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return err
	}

	sum, err := h.svc.Summary(c.UserContext(), id.UserID, services.SummaryFilter{
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
		Category:  c.Query("category"),
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":             true,
		"message":             fmt.Sprintf("%s %s here is your summary", id.FirstName, id.LastName),
		"totalIncome":         jsonNumber(sum.TotalIncome),
		"totalExpense":        jsonNumber(sum.TotalExpense),
		"balance":             jsonNumber(sum.Balance),
		"totalTransactions":   sum.Transactions,
		"skippedTransactions": sum.Skipped,
	})
}

// Categories lists the categories recorded from transactions.
func (h *TransactionHandler) Categories(c *fiber.Ctx) error {
	if _, err := caller(c); err != nil {
		return err
	}

	categories, err := h.svc.Categories(c.UserContext())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":         true,
		"categoryList":    categories,
		"totalCategories": len(categories),
	})
}
