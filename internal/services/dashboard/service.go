package dashboard

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"invoice-dashboard-backend/internal/cache"
	"invoice-dashboard-backend/internal/models"
)

const (
	OverviewPath = "/dashboard"
	InvoicesPath = "/dashboard/invoices"

	ItemsPerPage       = 6
	LatestInvoiceCount = 5
)

type InvoiceReader interface {
	Latest(ctx context.Context, limit int) ([]models.InvoiceRow, error)
	SearchInvoices(ctx context.Context, query string, limit, offset int) ([]models.InvoiceRow, error)
	CountSearch(ctx context.Context, query string) (int64, error)
	TotalsByStatus(ctx context.Context) ([]models.StatusTotal, error)
	GetByID(ctx context.Context, id string) (*models.Invoice, error)
}

type CustomerReader interface {
	ListFields(ctx context.Context) ([]models.CustomerField, error)
	Count(ctx context.Context) (int64, error)
	SearchWithTotals(ctx context.Context, query string) ([]models.CustomerRow, error)
}

type RevenueReader interface {
	All(ctx context.Context) ([]models.Revenue, error)
}

type Cards struct {
	NumberOfCustomers    int64  `json:"numberOfCustomers"`
	NumberOfInvoices     int64  `json:"numberOfInvoices"`
	TotalPaidInvoices    string `json:"totalPaidInvoices"`
	TotalPendingInvoices string `json:"totalPendingInvoices"`
}

type Overview struct {
	Revenue        []models.Revenue       `json:"revenue"`
	YAxis          YAxis                  `json:"yAxis"`
	LatestInvoices []models.LatestInvoice `json:"latestInvoices"`
	Cards          Cards                  `json:"cards"`
}

type InvoicesPage struct {
	Invoices   []models.InvoiceRow `json:"invoices"`
	Query      string              `json:"query"`
	Page       int                 `json:"currentPage"`
	TotalPages int                 `json:"totalPages"`
}

// CustomerTableRow is a customers table row with totals formatted as currency.
type CustomerTableRow struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	ImageURL      string `json:"image_url"`
	TotalInvoices int64  `json:"total_invoices"`
	TotalPending  string `json:"total_pending"`
	TotalPaid     string `json:"total_paid"`
}

// EditForm carries what the edit page needs: the invoice and the customer select.
type EditForm struct {
	Invoice   models.InvoiceForm     `json:"invoice"`
	Customers []models.CustomerField `json:"customers"`
}

type Service struct {
	invoices  InvoiceReader
	customers CustomerReader
	revenue   RevenueReader
	views     *cache.ViewCache
	log       *zap.Logger
}

func NewService(invoices InvoiceReader, customers CustomerReader, revenue RevenueReader, views *cache.ViewCache, log *zap.Logger) *Service {
	return &Service{
		invoices:  invoices,
		customers: customers,
		revenue:   revenue,
		views:     views,
		log:       log.Named("dashboard.service"),
	}
}

// Overview loads the dashboard home. Revenue, latest invoices and card data
// are fetched concurrently; the first failure cancels the rest. Only revenue
// is served from the view cache. Everything read from invoices is fresh.
func (s *Service) Overview(ctx context.Context) (Overview, error) {
	var (
		revenue    []models.Revenue
		latest     []models.InvoiceRow
		totals     []models.StatusTotal
		nCustomers int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		revenue, err = s.Revenue(gctx)
		return err
	})
	g.Go(func() (err error) {
		latest, err = s.invoices.Latest(gctx, LatestInvoiceCount)
		return err
	})
	g.Go(func() (err error) {
		totals, err = s.invoices.TotalsByStatus(gctx)
		return err
	})
	g.Go(func() (err error) {
		nCustomers, err = s.customers.Count(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.Error("load overview failed", zap.Error(err))
		return Overview{}, err
	}

	return Overview{
		Revenue:        revenue,
		YAxis:          GenerateYAxis(revenue),
		LatestInvoices: lo.Map(latest, toLatestInvoice),
		Cards:          cardsFrom(totals, nCustomers),
	}, nil
}

// Revenue returns the monthly revenue chart data in calendar order.
func (s *Service) Revenue(ctx context.Context) ([]models.Revenue, error) {
	return cache.Load(ctx, s.views, OverviewPath, "revenue", func(ctx context.Context) ([]models.Revenue, error) {
		revenue, err := s.revenue.All(ctx)
		if err != nil {
			return nil, err
		}
		sort.SliceStable(revenue, func(i, j int) bool {
			return monthIndex(revenue[i].Month) < monthIndex(revenue[j].Month)
		})
		return revenue, nil
	})
}

func toLatestInvoice(row models.InvoiceRow, _ int) models.LatestInvoice {
	return models.LatestInvoice{
		ID:       row.ID,
		Name:     row.Name,
		Email:    row.Email,
		ImageURL: row.ImageURL,
		Amount:   FormatCurrency(row.Amount),
	}
}

func cardsFrom(totals []models.StatusTotal, nCustomers int64) Cards {
	byStatus := lo.KeyBy(totals, func(t models.StatusTotal) string { return t.Status })
	return Cards{
		NumberOfCustomers:    nCustomers,
		NumberOfInvoices:     lo.SumBy(totals, func(t models.StatusTotal) int64 { return t.Count }),
		TotalPaidInvoices:    FormatCurrency(byStatus[models.InvoiceStatusPaid].Sum),
		TotalPendingInvoices: FormatCurrency(byStatus[models.InvoiceStatusPending].Sum),
	}
}

// FilteredInvoices returns one page of invoices matching query. Pages start at 1.
func (s *Service) FilteredInvoices(ctx context.Context, query string, page int) (InvoicesPage, error) {
	page = max(page, 1)
	variant := fmt.Sprintf("query=%s&page=%d", query, page)

	return cache.Load(ctx, s.views, InvoicesPath, variant, func(ctx context.Context) (InvoicesPage, error) {
		rows, err := s.invoices.SearchInvoices(ctx, query, ItemsPerPage, (page-1)*ItemsPerPage)
		if err != nil {
			return InvoicesPage{}, err
		}
		pages, err := s.invoicePages(ctx, query)
		if err != nil {
			return InvoicesPage{}, err
		}
		if rows == nil {
			rows = []models.InvoiceRow{}
		}
		return InvoicesPage{Invoices: rows, Query: query, Page: page, TotalPages: pages}, nil
	})
}

// InvoicePages is the number of pages FilteredInvoices can serve for query.
func (s *Service) InvoicePages(ctx context.Context, query string) (int, error) {
	return cache.Load(ctx, s.views, InvoicesPath, "pages&query="+query, func(ctx context.Context) (int, error) {
		return s.invoicePages(ctx, query)
	})
}

func (s *Service) invoicePages(ctx context.Context, query string) (int, error) {
	count, err := s.invoices.CountSearch(ctx, query)
	if err != nil {
		return 0, err
	}
	return int((count + ItemsPerPage - 1) / ItemsPerPage), nil
}

// InvoiceByID returns the invoice for the edit form with its amount in dollars.
func (s *Service) InvoiceByID(ctx context.Context, id string) (models.InvoiceForm, error) {
	invoice, err := s.invoices.GetByID(ctx, id)
	if err != nil {
		return models.InvoiceForm{}, err
	}
	return models.InvoiceForm{
		ID:         invoice.ID,
		CustomerID: invoice.CustomerID,
		Amount:     ToDollars(invoice.Amount),
		Status:     invoice.Status,
	}, nil
}

// EditForm loads the invoice and the customer list concurrently.
func (s *Service) EditForm(ctx context.Context, id string) (EditForm, error) {
	var form EditForm

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		form.Invoice, err = s.InvoiceByID(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		form.Customers, err = s.Customers(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return EditForm{}, err
	}
	return form, nil
}

// Customers lists customer ids and names for the invoice form select.
func (s *Service) Customers(ctx context.Context) ([]models.CustomerField, error) {
	fields, err := s.customers.ListFields(ctx)
	if err != nil {
		return nil, err
	}
	if fields == nil {
		fields = []models.CustomerField{}
	}
	return fields, nil
}

// FilteredCustomers returns the customers table for query with formatted totals.
func (s *Service) FilteredCustomers(ctx context.Context, query string) ([]CustomerTableRow, error) {
	rows, err := s.customers.SearchWithTotals(ctx, query)
	if err != nil {
		return nil, err
	}
	return lo.Map(rows, func(row models.CustomerRow, _ int) CustomerTableRow {
		return CustomerTableRow{
			ID:            row.ID.String(),
			Name:          row.Name,
			Email:         row.Email,
			ImageURL:      row.ImageURL,
			TotalInvoices: row.TotalInvoices,
			TotalPending:  FormatCurrency(row.TotalPending),
			TotalPaid:     FormatCurrency(row.TotalPaid),
		}
	}), nil
}

// ParsePage reads the page search param; anything missing or below 1 is page 1.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}
