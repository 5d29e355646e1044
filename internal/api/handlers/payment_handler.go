package handlers

import (
	"errors"

	"Maqal-Backend/domain"
	"Maqal-Backend/internal/api/presenters"
	"Maqal-Backend/pkg/payment"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	PaymentHandler interface {
		InitiatePaystack(c *fiber.Ctx) error
		VerifyPaystack(c *fiber.Ctx) error
		InitiateWaafi(c *fiber.Ctx) error
		PaystackWebhook(c *fiber.Ctx) error
		WaafiCallback(c *fiber.Ctx) error
	}

	paymentHandler struct {
		paymentService payment.PaymentService
		validator      *validator.Validate
	}
)

func NewPaymentHandler(paymentService payment.PaymentService, validator *validator.Validate) PaymentHandler {
	return &paymentHandler{
		paymentService: paymentService,
		validator:      validator,
	}
}

func (h *paymentHandler) InitiatePaystack(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.InitiatePaystackRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedInitiatePayment, err)
	}

	res, err := h.paymentService.InitiatePaystack(c.Context(), *req, userID)
	if err != nil {
		if errors.Is(err, domain.ErrGatewayMisconfigured) {
			return presenters.ErrorResponse(c, fiber.StatusServiceUnavailable, domain.MessageFailedInitiatePayment, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedInitiatePayment, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessInitiatePayment)
}

// VerifyPaystack is called by the client after the payment popup closes.
// The popup's own success callback proves nothing; only the gateway's
// verify response credits coins.
func (h *paymentHandler) VerifyPaystack(c *fiber.Ctx) error {
	reference := c.Params("reference")

	res, err := h.paymentService.VerifyPaystack(c.Context(), reference)
	if err != nil {
		if errors.Is(err, domain.ErrGatewayMisconfigured) {
			return presenters.ErrorResponse(c, fiber.StatusServiceUnavailable, domain.MessageFailedVerifyPayment, err)
		}
		if errors.Is(err, domain.ErrInvalidCallbackMetadata) {
			return presenters.ErrorResponse(c, fiber.StatusUnprocessableEntity, domain.MessageFailedVerifyPayment, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadGateway, domain.MessageFailedVerifyPayment, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessVerifyPayment)
}

func (h *paymentHandler) InitiateWaafi(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.InitiateWaafiRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedInitiatePayment, err)
	}

	res, err := h.paymentService.InitiateWaafi(c.Context(), *req, userID)
	if err != nil {
		if errors.Is(err, domain.ErrGatewayMisconfigured) {
			return presenters.ErrorResponse(c, fiber.StatusServiceUnavailable, domain.MessageFailedInitiatePayment, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedInitiatePayment, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessInitiatePayment)
}

func (h *paymentHandler) PaystackWebhook(c *fiber.Ctx) error {
	signature := c.Get("x-paystack-signature")
	body := c.Body()

	res, err := h.paymentService.HandlePaystackWebhook(c.Context(), body, signature)
	if err != nil {
		if errors.Is(err, domain.ErrCallbackUnauthorized) {
			return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageFailedCallback, err)
		}
		if errors.Is(err, domain.ErrInvalidCallbackMetadata) {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCallback, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadGateway, domain.MessageFailedCallback, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessCallback)
}

func (h *paymentHandler) WaafiCallback(c *fiber.Ctx) error {
	signature := c.Get("X-Waafi-Signature")
	body := c.Body()

	res, err := h.paymentService.HandleWaafiCallback(c.Context(), body, signature)
	if err != nil {
		if errors.Is(err, domain.ErrCallbackUnauthorized) {
			return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageFailedCallback, err)
		}
		if errors.Is(err, domain.ErrInvalidCallbackMetadata) {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCallback, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadGateway, domain.MessageFailedCallback, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessCallback)
}
