package handler

import (
	"net/http"
	"net/url"
	"strconv"

	"order-dashboard/internal/detail"
	"order-dashboard/internal/model"
	"order-dashboard/internal/notify"
	"order-dashboard/internal/orders"
	"order-dashboard/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// NotificationSource exposes the current transient notification.
type NotificationSource interface {
	Current() (notify.Notification, bool)
	Dismiss() bool
}

// MessageResponse is a plain acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
}

// DashboardHandler handles the orders dashboard HTTP requests.
type DashboardHandler struct {
	service       service.DashboardService
	notifications NotificationSource
	logger        zerolog.Logger
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(svc service.DashboardService, notifications NotificationSource, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		service:       svc,
		notifications: notifications,
		logger:        logger.With().Str("handler", "dashboard").Logger(),
	}
}

// Orders handles GET /api/dashboard/orders.
func (h *DashboardHandler) Orders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.View())
}

// Search handles PUT /api/dashboard/search.
func (h *DashboardHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req model.SearchRequest
	if !decodeAndValidate(w, r, &req, h.logger) {
		return
	}

	h.service.SetSearch(req.Term)
	writeJSON(w, http.StatusOK, h.service.View())
}

// Page handles PUT /api/dashboard/page.
func (h *DashboardHandler) Page(w http.ResponseWriter, r *http.Request) {
	var req model.PageRequest
	if !decodeAndValidate(w, r, &req, h.logger) {
		return
	}

	if err := h.service.SetPage(req.Page); err != nil {
		writeServiceError(w, r, err, "failed to change page", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, h.service.View())
}

// Refresh handles POST /api/dashboard/refresh.
func (h *DashboardHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Refresh(r.Context()); err != nil {
		writeServiceError(w, r, err, service.MsgFetchOrdersFailed, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, h.service.View())
}

// Sync handles POST /api/dashboard/sync. The list refresh that follows a
// successful sync happens in the background, hence 202.
func (h *DashboardHandler) Sync(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Sync(r.Context()); err != nil {
		writeServiceError(w, r, err, service.MsgSyncFailed, h.logger)
		return
	}
	writeJSON(w, http.StatusAccepted, MessageResponse{Message: service.MsgSyncSucceeded})
}

// DownloadExport handles GET /api/dashboard/export.
func (h *DashboardHandler) DownloadExport(w http.ResponseWriter, r *http.Request) {
	doc := h.service.ExportCSV()

	w.Header().Set("Content-Type", orders.CSVContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+doc.Filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc.Data); err != nil {
		h.logger.Warn().Err(err).Str("filename", doc.Filename).Msg("failed to write CSV download")
	}
}

// SaveExport handles POST /api/dashboard/export.
func (h *DashboardHandler) SaveExport(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.SaveExport(r.Context())
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, model.ErrCodeExportFailed, service.MsgExportFailed, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

// Stats handles GET /api/dashboard/stats.
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "Failed to fetch dashboard stats", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// SelectOrder handles PUT /api/dashboard/detail/{orderID}. The detail loads
// asynchronously; poll GET /api/dashboard/detail for the result.
func (h *DashboardHandler) SelectOrder(w http.ResponseWriter, r *http.Request) {
	// chi matches on the raw path when one is set, leaving the segment escaped.
	orderID, err := url.PathUnescape(chi.URLParam(r, "orderID"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeValidation, "Order ID is not a valid path segment", h.logger)
		return
	}

	if err := h.service.SelectOrder(r.Context(), orderID); err != nil {
		writeServiceError(w, r, err, detail.FailureMessage, h.logger)
		return
	}
	writeJSON(w, http.StatusAccepted, h.service.Detail())
}

// Detail handles GET /api/dashboard/detail.
func (h *DashboardHandler) Detail(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Detail())
}

// CloseDetail handles DELETE /api/dashboard/detail.
func (h *DashboardHandler) CloseDetail(w http.ResponseWriter, r *http.Request) {
	h.service.CloseDetail()
	writeJSON(w, http.StatusOK, h.service.Detail())
}

// Notification handles GET /api/dashboard/notification.
func (h *DashboardHandler) Notification(w http.ResponseWriter, r *http.Request) {
	n, ok := h.notifications.Current()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

// DismissNotification handles DELETE /api/dashboard/notification.
func (h *DashboardHandler) DismissNotification(w http.ResponseWriter, r *http.Request) {
	h.notifications.Dismiss()
	w.WriteHeader(http.StatusNoContent)
}
