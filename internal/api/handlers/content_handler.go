package handlers

import (
	"errors"
	"strconv"

	"Maqal-Backend/domain"
	"Maqal-Backend/internal/api/presenters"
	"Maqal-Backend/pkg/content"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ContentHandler interface {
		GetContents(c *fiber.Ctx) error
		GetContentDetails(c *fiber.Ctx) error
		AccessContent(c *fiber.Ctx) error
		ToggleLike(c *fiber.Ctx) error
		ToggleSave(c *fiber.Ctx) error
		GetLibrary(c *fiber.Ctx) error

		CreateContent(c *fiber.Ctx) error
		UpdateContent(c *fiber.Ctx) error
		DeleteContent(c *fiber.Ctx) error
		UploadMedia(c *fiber.Ctx) error
	}

	contentHandler struct {
		contentService content.ContentService
		validator      *validator.Validate
	}
)

func NewContentHandler(contentService content.ContentService, validator *validator.Validate) ContentHandler {
	return &contentHandler{
		contentService: contentService,
		validator:      validator,
	}
}

func (h *contentHandler) GetContents(c *fiber.Ctx) error {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	category := c.Query("category", "All")
	contentType := c.Query("type", "")

	items, count, err := h.contentService.GetContents(c.Context(), category, contentType, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetContents, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"contents": items,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetContents)
}

func (h *contentHandler) GetContentDetails(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	contentID := c.Params("id")

	res, err := h.contentService.GetContentByID(c.Context(), contentID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrContentNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetContents, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetContents, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetContents)
}

func (h *contentHandler) AccessContent(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	contentID := c.Params("id")

	res, err := h.contentService.AccessContent(c.Context(), userID, contentID)
	if err != nil {
		if errors.Is(err, domain.ErrContentNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedAccessContent, err)
		}
		if errors.Is(err, domain.ErrProfileNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedAccessContent, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAccessContent, err)
	}

	if !res.Granted {
		return presenters.SuccessResponse(c, res, fiber.StatusPaymentRequired, domain.MessageAccessDenied)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessAccessContent)
}

func (h *contentHandler) ToggleLike(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	contentID := c.Params("id")

	res, err := h.contentService.ToggleLike(c.Context(), userID, contentID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedToggleMark, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessToggleMark)
}

func (h *contentHandler) ToggleSave(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	contentID := c.Params("id")

	res, err := h.contentService.ToggleSave(c.Context(), userID, contentID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedToggleMark, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessToggleMark)
}

func (h *contentHandler) GetLibrary(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.contentService.GetLibrary(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetLibrary, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetLibrary)
}

func (h *contentHandler) CreateContent(c *fiber.Ctx) error {
	req := new(domain.CreateContentRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateContent, err)
	}

	res, err := h.contentService.CreateContent(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateContent, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateContent)
}

func (h *contentHandler) UpdateContent(c *fiber.Ctx) error {
	contentID := c.Params("id")

	req := new(domain.UpdateContentRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateContent, err)
	}

	if err := h.contentService.UpdateContent(c.Context(), contentID, *req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateContent, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUpdateContent)
}

func (h *contentHandler) DeleteContent(c *fiber.Ctx) error {
	contentID := c.Params("id")

	if err := h.contentService.DeleteContent(c.Context(), contentID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteContent, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteContent)
}

func (h *contentHandler) UploadMedia(c *fiber.Ctx) error {
	req := new(domain.UploadMediaRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	req.File = file

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadMedia, err)
	}

	res, err := h.contentService.UploadMedia(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadMedia, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUploadMedia)
}
