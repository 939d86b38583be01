package invoices

import (
	"bufio"
	"context"
	"encoding/csv"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"invoice-dashboard-backend/internal/logger"
	"invoice-dashboard-backend/internal/metrics"
	"invoice-dashboard-backend/internal/validation"
)

var ErrMissingColumns = errors.New("csv header must name customer_id, amount and status columns")

// headerAliases maps accepted CSV header spellings to form field names.
var headerAliases = map[string]string{
	"customerid":  FieldCustomerID,
	"customer_id": FieldCustomerID,
	"amount":      FieldAmount,
	"status":      FieldStatus,
}

// ImportRow is one CSV record keyed by form field name.
type ImportRow struct {
	Line   int
	Fields map[string]string
}

type RejectedRow struct {
	Line    int                    `json:"line"`
	Errors  validation.FieldErrors `json:"errors,omitempty"`
	Message string                 `json:"message"`
}

type ImportResult struct {
	Inserted int           `json:"invoicesAdded"`
	Rejected []RejectedRow `json:"rejected"`
}

// ParseCSV reads a header row followed by invoice records. Comma and tab
// separated files are both accepted; blank records are skipped.
func ParseCSV(r io.Reader) ([]ImportRow, error) {
	br := bufio.NewReader(r)
	sample, _ := br.Peek(1024)

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	if !strings.Contains(string(sample), ",") && strings.Contains(string(sample), "\t") {
		reader.Comma = '\t'
	}

	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrap(err, "read csv header")
	}

	columns := map[int]string{}
	seen := map[string]bool{}
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if field, ok := headerAliases[key]; ok {
			columns[i] = field
			seen[field] = true
		}
	}
	if !seen[FieldCustomerID] || !seen[FieldAmount] || !seen[FieldStatus] {
		return nil, ErrMissingColumns
	}

	var rows []ImportRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "read csv record")
		}
		if strings.TrimSpace(strings.Join(record, "")) == "" {
			continue
		}

		line, _ := reader.FieldPos(0)
		fields := make(map[string]string, len(columns))
		for i, field := range columns {
			if i < len(record) {
				fields[field] = strings.TrimSpace(record[i])
			}
		}
		rows = append(rows, ImportRow{Line: line, Fields: fields})
	}
	return rows, nil
}

// Import creates one invoice per valid row. Invalid or failed rows are
// reported and skipped; the list view is invalidated once if anything was written.
func (s *Service) Import(ctx context.Context, rows []ImportRow) ImportResult {
	result := ImportResult{Rejected: []RejectedRow{}}
	log := logger.WithContext(ctx, s.log)

	for _, row := range rows {
		res := Schema.Validate(row.Fields)
		if !res.Valid() {
			result.Rejected = append(result.Rejected, RejectedRow{
				Line:    row.Line,
				Errors:  res.Errors,
				Message: MsgCreateMissingFields,
			})
			continue
		}
		if _, err := s.insert(ctx, res.Value); err != nil {
			log.Warn("import row failed", zap.Int("line", row.Line), zap.Error(err))
			result.Rejected = append(result.Rejected, RejectedRow{Line: row.Line, Message: MsgCreateDatabaseError})
			continue
		}
		result.Inserted++
	}

	if result.Inserted > 0 {
		s.views.Invalidate(ctx, InvoicesPath)
		s.metrics.ObserveMutation(actionImport, metrics.ResultSuccess)
	}
	log.Info("invoice import finished",
		zap.Int("inserted", result.Inserted),
		zap.Int("rejected", len(result.Rejected)),
	)
	return result
}
