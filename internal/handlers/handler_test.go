package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"invoice-dashboard-backend/internal/services/invoices"
	"invoice-dashboard-backend/internal/validation"
)

func TestSafeRedirect(t *testing.T) {
	assert.Equal(t, "/dashboard/invoices?page=2", safeRedirect("/dashboard/invoices?page=2"))
	assert.Equal(t, "/dashboard", safeRedirect(""))
	assert.Equal(t, "/dashboard", safeRedirect("https://evil.example"))
	assert.Equal(t, "/dashboard", safeRedirect("//evil.example"))
	assert.Equal(t, "/dashboard", safeRedirect(`/\evil.example`))
}

func TestWriteOutcome(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name     string
		outcome  invoices.Outcome
		status   int
		location string
	}{
		{"redirect", invoices.Outcome{Redirect: invoices.InvoicesPath}, http.StatusSeeOther, invoices.InvoicesPath},
		{"field errors", invoices.Outcome{State: invoices.State{
			Errors:  validation.FieldErrors{invoices.FieldStatus: {invoices.MsgSelectStatus}},
			Message: invoices.MsgCreateMissingFields,
		}}, http.StatusUnprocessableEntity, ""},
		{"database", invoices.Outcome{State: invoices.State{Message: invoices.MsgCreateDatabaseError}}, http.StatusInternalServerError, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPost, "/dashboard/invoices", nil)

			writeOutcome(c, tc.outcome)
			c.Writer.WriteHeaderNow() // the gin engine flushes buffered headers after handlers; CreateTestContext does not
			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.location, w.Header().Get("Location"))
		})
	}
}

func TestWriteDeleteOutcome(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		out    invoices.DeleteOutcome
		status int
		body   string
	}{
		{"deleted", invoices.DeleteOutcome{State: invoices.State{Message: invoices.MsgDeleted}, Deleted: true}, http.StatusOK, `{"message":"Deleted Invoice."}`},
		{"database", invoices.DeleteOutcome{State: invoices.State{Message: invoices.MsgDeleteDatabaseError}}, http.StatusInternalServerError, `{"message":"Database Error: Failed to Delete Invoice."}`},
		{"deleted with any message", invoices.DeleteOutcome{State: invoices.State{Message: "Removed."}, Deleted: true}, http.StatusOK, `{"message":"Removed."}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodDelete, "/dashboard/invoices/abc", nil)

			writeDeleteOutcome(c, tc.out)
			assert.Equal(t, tc.status, w.Code)
			assert.JSONEq(t, tc.body, w.Body.String())
		})
	}
}
