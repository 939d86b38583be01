package invoices

import (
	"context"
	"math"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"invoice-dashboard-backend/internal/clock"
	"invoice-dashboard-backend/internal/logger"
	"invoice-dashboard-backend/internal/metrics"
	"invoice-dashboard-backend/internal/models"
	"invoice-dashboard-backend/internal/validation"
)

// InvoicesPath is the invoice list route: the one view invalidated after every write
// and the redirect target of create and update.
const InvoicesPath = "/dashboard/invoices"

const (
	MsgCreateMissingFields = "Missing Fields. Failed to Create Invoice."
	MsgUpdateMissingFields = "Missing Fields. Failed to Update Invoice."
	MsgCreateDatabaseError = "Database Error: Failed to Create Invoice."
	MsgUpdateDatabaseError = "Database Error: Failed to Update Invoice."
	MsgDeleteDatabaseError = "Database Error: Failed to Delete Invoice."
	MsgDeleted             = "Deleted Invoice."
)

const (
	actionCreate = "create"
	actionUpdate = "update"
	actionDelete = "delete"
	actionImport = "import"
)

var errAmountOutOfRange = errors.New("amount out of range")

var hundred = decimal.NewFromInt(100)

// Store is the write side of the invoices table.
type Store interface {
	Create(ctx context.Context, invoice *models.Invoice) error
	UpdateByID(ctx context.Context, id string, customerID string, amount int64, status string) error
	DeleteByID(ctx context.Context, id string) error
}

// Invalidator marks a cached view stale by route path.
type Invalidator interface {
	Invalidate(ctx context.Context, path string)
}

// State is what a form gets back when a mutation does not redirect.
type State struct {
	Errors  validation.FieldErrors `json:"errors,omitempty"`
	Message string                 `json:"message,omitempty"`
}

// Outcome of create and update. Redirect is set only on success, State only on failure.
type Outcome struct {
	State    State
	Redirect string
}

func (o Outcome) Succeeded() bool { return o.Redirect != "" }

// DeleteOutcome is the result of Delete. State always carries the message to show.
type DeleteOutcome struct {
	State   State
	Deleted bool
}

type Service struct {
	store   Store
	views   Invalidator
	clock   clock.Clock
	metrics *metrics.Metrics
	log     *zap.Logger
}

func NewService(store Store, views Invalidator, clk clock.Clock, m *metrics.Metrics, log *zap.Logger) *Service {
	if clk == nil {
		clk = clock.SystemClock{}
	}
	return &Service{
		store:   store,
		views:   views,
		clock:   clk,
		metrics: m,
		log:     log.Named("invoices.service"),
	}
}

// Create validates the form, inserts the invoice with today's date and redirects to the list.
func (s *Service) Create(ctx context.Context, raw map[string]string) Outcome {
	res := Schema.Validate(raw)
	if !res.Valid() {
		s.metrics.ObserveMutation(actionCreate, metrics.ResultValidationError)
		return Outcome{State: State{Errors: res.Errors, Message: MsgCreateMissingFields}}
	}

	if _, err := s.insert(ctx, res.Value); err != nil {
		logger.WithContext(ctx, s.log).Error("create invoice failed", zap.Error(err))
		s.metrics.ObserveMutation(actionCreate, metrics.ResultDatabaseError)
		return Outcome{State: State{Message: MsgCreateDatabaseError}}
	}

	s.views.Invalidate(ctx, InvoicesPath)
	s.metrics.ObserveMutation(actionCreate, metrics.ResultSuccess)
	return Outcome{Redirect: InvoicesPath}
}

// Update validates the form and rewrites customer, amount and status of invoice id.
func (s *Service) Update(ctx context.Context, id string, raw map[string]string) Outcome {
	res := Schema.Validate(raw)
	if !res.Valid() {
		s.metrics.ObserveMutation(actionUpdate, metrics.ResultValidationError)
		return Outcome{State: State{Errors: res.Errors, Message: MsgUpdateMissingFields}}
	}

	err := s.update(ctx, id, res.Value)
	if err != nil {
		logger.WithContext(ctx, s.log).Error("update invoice failed", zap.String("invoice_id", id), zap.Error(err))
		s.metrics.ObserveMutation(actionUpdate, metrics.ResultDatabaseError)
		return Outcome{State: State{Message: MsgUpdateDatabaseError}}
	}

	s.views.Invalidate(ctx, InvoicesPath)
	s.metrics.ObserveMutation(actionUpdate, metrics.ResultSuccess)
	return Outcome{Redirect: InvoicesPath}
}

// Delete hard deletes invoice id. It does not redirect; callers stay on the list.
func (s *Service) Delete(ctx context.Context, id string) DeleteOutcome {
	if err := s.store.DeleteByID(ctx, id); err != nil {
		logger.WithContext(ctx, s.log).Error("delete invoice failed", zap.String("invoice_id", id), zap.Error(err))
		s.metrics.ObserveMutation(actionDelete, metrics.ResultDatabaseError)
		return DeleteOutcome{State: State{Message: MsgDeleteDatabaseError}}
	}

	s.views.Invalidate(ctx, InvoicesPath)
	s.metrics.ObserveMutation(actionDelete, metrics.ResultSuccess)
	return DeleteOutcome{State: State{Message: MsgDeleted}, Deleted: true}
}

func (s *Service) insert(ctx context.Context, in InvoiceInput) (*models.Invoice, error) {
	cents, err := ToCents(in.Amount)
	if err != nil {
		return nil, err
	}
	invoice := &models.Invoice{
		ID:         uuid.New(),
		CustomerID: in.CustomerID,
		Amount:     cents,
		Status:     in.Status,
		Date:       s.clock.Now().UTC().Format(models.DateLayout),
	}
	if err := s.store.Create(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

func (s *Service) update(ctx context.Context, id string, in InvoiceInput) error {
	cents, err := ToCents(in.Amount)
	if err != nil {
		return err
	}
	return s.store.UpdateByID(ctx, id, in.CustomerID, cents, in.Status)
}

// ToCents converts a dollar amount to integer cents, rounding half away from zero.
func ToCents(amount decimal.Decimal) (int64, error) {
	cents := amount.Mul(hundred).Round(0)
	if cents.GreaterThan(decimal.NewFromInt(math.MaxInt64)) || cents.LessThan(decimal.NewFromInt(math.MinInt64)) {
		return 0, errors.Wrapf(errAmountOutOfRange, "amount %s", amount.String())
	}
	return cents.IntPart(), nil
}
