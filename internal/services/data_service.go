package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"pricepulse/internal/chart"
	"pricepulse/internal/dataprocessing"
	"pricepulse/internal/indicator"
)

// DataService owns the per-request pipeline: read the source, partition and
// compute indicators. Nothing is cached between calls; every request
// re-reads the backing file and re-derives all intermediate structures, so
// concurrent requests share no mutable state.
type DataService struct {
	reader *dataprocessing.Reader
	logger *slog.Logger
}

// NewDataService creates a data service over the configured source path.
func NewDataService(sourcePath string, logger *slog.Logger) *DataService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DataService{
		reader: dataprocessing.NewReader(sourcePath, logger),
		logger: logger.With(slog.String("component", "data_service")),
	}
}

// SourcePath returns the backing source path.
func (s *DataService) SourcePath() string { return s.reader.Path() }

// BollingerRequest carries the Bollinger endpoint parameters.
type BollingerRequest struct {
	Table  int
	Part   string
	Window int
	K      float64
}

// MACDRequest carries the MACD endpoint parameters.
type MACDRequest struct {
	Table  int
	Part   string
	Fast   int
	Slow   int
	Signal int
}

// Tables reads and parses every table in the source.
func (s *DataService) Tables(ctx context.Context) ([]*dataprocessing.Dataset, error) {
	tables, err := s.reader.Read(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.DebugContext(ctx, "source parsed", slog.Int("tables", len(tables)))
	return tables, nil
}

// Table returns the table at the given index.
func (s *DataService) Table(ctx context.Context, index int) (*dataprocessing.Dataset, error) {
	tables, err := s.Tables(ctx)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(tables) {
		return nil, fmt.Errorf("%w: %d (have %d tables)", ErrTableOutOfRange, index, len(tables))
	}
	return tables[index], nil
}

// Segments partitions the selected table and returns the requested
// segment(s) keyed by name.
func (s *DataService) Segments(ctx context.Context, table int, part string) (map[string]*dataprocessing.Dataset, error) {
	return s.segments(ctx, table, part)
}

// Bollinger computes Bollinger Bands over the requested segment(s).
func (s *DataService) Bollinger(ctx context.Context, req BollingerRequest) (map[string]*dataprocessing.Dataset, error) {
	segments, err := s.segments(ctx, req.Table, req.Part)
	if err != nil {
		return nil, err
	}
	out := make(map[string]*dataprocessing.Dataset, len(segments))
	for name, seg := range segments {
		out[name] = indicator.Bollinger(seg, req.Window, req.K)
	}
	return out, nil
}

// MACD computes MACD over the requested segment(s).
func (s *DataService) MACD(ctx context.Context, req MACDRequest) (map[string]*dataprocessing.Dataset, error) {
	segments, err := s.segments(ctx, req.Table, req.Part)
	if err != nil {
		return nil, err
	}
	out := make(map[string]*dataprocessing.Dataset, len(segments))
	for name, seg := range segments {
		out[name] = indicator.MACD(seg, req.Fast, req.Slow, req.Signal)
	}
	return out, nil
}

// BollingerChart renders one segment's Bollinger Bands as a PNG. The part
// must name a single segment.
func (s *DataService) BollingerChart(ctx context.Context, req BollingerRequest) ([]byte, error) {
	frame, err := s.singleSegment(ctx, req.Table, req.Part)
	if err != nil {
		return nil, err
	}
	title := fmt.Sprintf("Bollinger Bands (%s, window=%d, k=%g)", req.Part, req.Window, req.K)
	png, err := chart.Bollinger(indicator.Bollinger(frame, req.Window, req.K), title)
	if err != nil {
		return nil, s.chartError(err)
	}
	return png, nil
}

// MACDChart renders one segment's MACD as a PNG.
func (s *DataService) MACDChart(ctx context.Context, req MACDRequest) ([]byte, error) {
	frame, err := s.singleSegment(ctx, req.Table, req.Part)
	if err != nil {
		return nil, err
	}
	title := fmt.Sprintf("MACD (%s, %d/%d/%d)", req.Part, req.Fast, req.Slow, req.Signal)
	png, err := chart.MACD(indicator.MACD(frame, req.Fast, req.Slow, req.Signal), title)
	if err != nil {
		return nil, s.chartError(err)
	}
	return png, nil
}

func (s *DataService) segments(ctx context.Context, table int, part string) (map[string]*dataprocessing.Dataset, error) {
	ds, err := s.Table(ctx, table)
	if err != nil {
		return nil, err
	}
	partition := dataprocessing.Split(ds)
	if part == dataprocessing.PartAll {
		return partition.ByName(), nil
	}
	seg := partition.Get(part)
	if seg == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSegment, part)
	}
	return map[string]*dataprocessing.Dataset{part: seg}, nil
}

func (s *DataService) singleSegment(ctx context.Context, table int, part string) (*dataprocessing.Dataset, error) {
	ds, err := s.Table(ctx, table)
	if err != nil {
		return nil, err
	}
	seg := dataprocessing.Split(ds).Get(part)
	if seg == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSegment, part)
	}
	return seg, nil
}

func (s *DataService) chartError(err error) error {
	if errors.Is(err, chart.ErrNotEnoughData) {
		return fmt.Errorf("%w: %v", ErrNoChartData, err)
	}
	return err
}
