package printer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"curtain-pos/internal/core"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Receipt is the body of POST /print on the local print service.
type Receipt struct {
	BillNo     string          `json:"billNo"`
	Items      []core.SaleItem `json:"items"`
	GrandTotal decimal.Decimal `json:"grandTotal"`
}

// Printer prints a receipt for a completed sale.
type Printer interface {
	Print(ctx context.Context, r Receipt) error
}

// ServicePrinter posts receipts to a print service over HTTP.
type ServicePrinter struct {
	url        string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewServicePrinter returns a printer for the service at baseURL.
func NewServicePrinter(baseURL string, log zerolog.Logger) *ServicePrinter {
	return &ServicePrinter{
		url:        strings.TrimRight(baseURL, "/") + "/print",
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        log.With().Str("component", "printer").Logger(),
	}
}

func (p *ServicePrinter) Print(ctx context.Context, r Receipt) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("printer: encoding receipt %s: %w", r.BillNo, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("printer: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("printer: failed to reach %s: %w", p.url, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("printer: print service returned %d for bill %s", resp.StatusCode, r.BillNo)
	}
	p.log.Info().Str("bill_no", r.BillNo).Int("items", len(r.Items)).Msg("receipt printed")
	return nil
}

// Noop discards receipts. It is used when no print service is configured.
type Noop struct{}

func (Noop) Print(context.Context, Receipt) error { return nil }
