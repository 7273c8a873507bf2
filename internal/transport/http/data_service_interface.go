package http

import (
	"context"

	"pricepulse/internal/dataprocessing"
	"pricepulse/internal/services"
)

// DataServiceInterface defines the service contract consumed by the data
// handler. Kept small so tests can substitute a stub.
type DataServiceInterface interface {
	Tables(ctx context.Context) ([]*dataprocessing.Dataset, error)
	Table(ctx context.Context, index int) (*dataprocessing.Dataset, error)
	Segments(ctx context.Context, table int, part string) (map[string]*dataprocessing.Dataset, error)
	Bollinger(ctx context.Context, req services.BollingerRequest) (map[string]*dataprocessing.Dataset, error)
	MACD(ctx context.Context, req services.MACDRequest) (map[string]*dataprocessing.Dataset, error)
	BollingerChart(ctx context.Context, req services.BollingerRequest) ([]byte, error)
	MACDChart(ctx context.Context, req services.MACDRequest) ([]byte, error)
}
