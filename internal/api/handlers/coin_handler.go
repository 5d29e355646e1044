package handlers

import (
	"strconv"

	"Maqal-Backend/domain"
	"Maqal-Backend/internal/api/presenters"
	"Maqal-Backend/pkg/wallet"

	"github.com/gofiber/fiber/v2"
)

type (
	CoinHandler interface {
		GetCoinPackages(c *fiber.Ctx) error
		GetBalance(c *fiber.Ctx) error
		GetPaymentHistory(c *fiber.Ctx) error
	}

	coinHandler struct {
		walletService wallet.WalletService
	}
)

func NewCoinHandler(walletService wallet.WalletService) CoinHandler {
	return &coinHandler{
		walletService: walletService,
	}
}

func (h *coinHandler) GetCoinPackages(c *fiber.Ctx) error {
	packages, err := h.walletService.GetCoinPackages(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetCoinPackages, err)
	}

	return presenters.SuccessResponse(c, packages, fiber.StatusOK, domain.MessageSuccessGetCoinPackages)
}

func (h *coinHandler) GetBalance(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	balance, err := h.walletService.GetBalance(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetBalance, err)
	}

	return presenters.SuccessResponse(c, balance, fiber.StatusOK, domain.MessageSuccessGetBalance)
}

func (h *coinHandler) GetPaymentHistory(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	records, count, err := h.walletService.GetPaymentHistory(c.Context(), userID, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetHistory, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"payments": records,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetHistory)
}
