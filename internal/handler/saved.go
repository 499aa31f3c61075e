package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/ticketscan/ticketscan/internal/models"
	"github.com/ticketscan/ticketscan/internal/savedsearch"
)

type SavedSearchHandler struct {
	store  savedsearch.Store
	logger *zap.Logger
}

func NewSavedSearchHandler(store savedsearch.Store, logger *zap.Logger) *SavedSearchHandler {
	return &SavedSearchHandler{
		store:  store,
		logger: logger,
	}
}

func (h *SavedSearchHandler) List(c echo.Context) error {
	searches, err := h.store.List(c.Request().Context())
	if err != nil {
		return h.storeError(c, err)
	}
	return c.JSON(http.StatusOK, searches)
}

type saveSearchRequest struct {
	Params  models.SavedSearchParams    `json:"params"`
	Results []models.DestinationSummary `json:"results"`
	Note    string                      `json:"note,omitempty"`
}

func (h *SavedSearchHandler) Save(c echo.Context) error {
	var req saveSearchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Failed to parse request body: " + err.Error(),
			Code:    http.StatusBadRequest,
		})
	}
	if len(req.Params.Destinations) == 0 {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_error",
			Message: "at least one destination is required",
			Code:    http.StatusBadRequest,
		})
	}

	saved, err := h.store.Save(c.Request().Context(), models.SavedSearch{
		Params:  req.Params,
		Results: req.Results,
		Note:    req.Note,
	})
	if err != nil {
		return h.storeError(c, err)
	}

	return c.JSON(http.StatusCreated, saved)
}

func (h *SavedSearchHandler) Delete(c echo.Context) error {
	if err := h.store.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return h.storeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

type updateNoteRequest struct {
	Note string `json:"note"`
}

func (h *SavedSearchHandler) UpdateNote(c echo.Context) error {
	var req updateNoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Failed to parse request body: " + err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	err := h.store.UpdateNote(c.Request().Context(), c.Param("id"), req.Note)
	if errors.Is(err, savedsearch.ErrNotFound) {
		return c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "not_found",
			Message: "saved search not found",
			Code:    http.StatusNotFound,
		})
	}
	if err != nil {
		return h.storeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *SavedSearchHandler) storeError(c echo.Context, err error) error {
	h.logger.Error("saved search store error", zap.Error(err))
	return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error:   "storage_error",
		Message: "saved search storage failed",
		Code:    http.StatusInternalServerError,
	})
}
