package handler

import (
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"invoice-dashboard-backend/internal/logger"
	"invoice-dashboard-backend/internal/middleware"
	"invoice-dashboard-backend/internal/services/dashboard"
	"invoice-dashboard-backend/internal/services/invoices"
)

type InvoiceHandler struct {
	invoices *invoices.Service
	views    *dashboard.Service
	log      *zap.Logger
}

func NewInvoiceHandler(inv *invoices.Service, views *dashboard.Service, log *zap.Logger) *InvoiceHandler {
	return &InvoiceHandler{invoices: inv, views: views, log: log.Named("handler.invoices")}
}

// invoiceForm collects the raw form fields the invoice schema validates.
func invoiceForm(c *gin.Context) map[string]string {
	return map[string]string{
		invoices.FieldCustomerID: c.PostForm(invoices.FieldCustomerID),
		invoices.FieldAmount:     c.PostForm(invoices.FieldAmount),
		invoices.FieldStatus:     c.PostForm(invoices.FieldStatus),
	}
}

// writeOutcome redirects on success and otherwise returns the form state:
// 422 for field errors, 500 for storage failures.
func writeOutcome(c *gin.Context, out invoices.Outcome) {
	if out.Succeeded() {
		c.Redirect(http.StatusSeeOther, out.Redirect)
		return
	}
	status := http.StatusInternalServerError
	if len(out.State.Errors) > 0 {
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, out.State)
}

// List GET /dashboard/invoices?query=&page=
func (h *InvoiceHandler) List(c *gin.Context) {
	page, err := h.views.FilteredInvoices(c.Request.Context(), c.Query("query"), dashboard.ParsePage(c.Query("page")))
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// CreateForm GET /dashboard/invoices/create
func (h *InvoiceHandler) CreateForm(c *gin.Context) {
	customers, err := h.views.Customers(c.Request.Context())
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customers": customers})
}

// EditForm GET /dashboard/invoices/:id/edit
func (h *InvoiceHandler) EditForm(c *gin.Context) {
	form, err := h.views.EditForm(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, form)
}

// Create POST /dashboard/invoices
func (h *InvoiceHandler) Create(c *gin.Context) {
	writeOutcome(c, h.invoices.Create(c.Request.Context(), invoiceForm(c)))
}

// Update POST|PUT /dashboard/invoices/:id
func (h *InvoiceHandler) Update(c *gin.Context) {
	writeOutcome(c, h.invoices.Update(c.Request.Context(), c.Param("id"), invoiceForm(c)))
}

// Delete POST /dashboard/invoices/:id/delete and DELETE /dashboard/invoices/:id
func (h *InvoiceHandler) Delete(c *gin.Context) {
	writeDeleteOutcome(c, h.invoices.Delete(c.Request.Context(), c.Param("id")))
}

func writeDeleteOutcome(c *gin.Context, out invoices.DeleteOutcome) {
	if !out.Deleted {
		c.JSON(http.StatusInternalServerError, out.State)
		return
	}
	c.JSON(http.StatusOK, out.State)
}

// Import POST /dashboard/invoices/import, multipart field "file".
func (h *InvoiceHandler) Import(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		middleware.AbortWithError(c, errors.Wrap(middleware.ErrInvalidRequest, "file required"))
		return
	}
	defer file.Close()

	log := logger.WithContext(c.Request.Context(), h.log)
	log.Info("invoice import received", zap.String("file", header.Filename), zap.Int64("size", header.Size))

	rows, err := invoices.ParseCSV(file)
	if err != nil {
		log.Warn("invoice import unreadable", zap.Error(err))
		if !errors.Is(err, invoices.ErrMissingColumns) {
			err = errors.Mark(err, middleware.ErrInvalidRequest)
		}
		middleware.AbortWithError(c, err)
		return
	}

	result := h.invoices.Import(c.Request.Context(), rows)
	c.JSON(http.StatusOK, gin.H{
		"file":          header.Filename,
		"invoicesAdded": result.Inserted,
		"rejected":      result.Rejected,
	})
}
