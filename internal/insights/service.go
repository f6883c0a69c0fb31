package insights

import (
	"context"
	"time"

	"github.com/angelmondragon/ecomlytics-backend/internal/dataset"
	pkgerrors "github.com/angelmondragon/ecomlytics-backend/pkg/errors"
)

// FilterRequest restricts a query to a date window and channel set. A zero
// From/To means the full span; an empty channel list means all channels.
type FilterRequest struct {
	From     time.Time
	To       time.Time
	Channels []string
}

// TimeSeriesRequest asks for a bucketed rollup of the filtered rows.
type TimeSeriesRequest struct {
	Filter FilterRequest
	Bucket BucketSize
}

// BreakdownRequest asks for a ranked top-N of the filtered rows.
type BreakdownRequest struct {
	Filter FilterRequest
	By     Dimension
	Metric Metric
	N      int
}

// CompareRequest compares two caller-chosen windows of the loaded dataset.
type CompareRequest struct {
	Current  Window
	Previous Window
	By       Dimension
	Metric   Metric
	N        int
}

// CompareResponse is the delta table plus the driver ranking for the
// requested dimension and metric.
type CompareResponse struct {
	Current  Snapshot    `json:"current"`
	Previous Snapshot    `json:"previous"`
	Delta    []DeltaRow  `json:"kpi_delta"`
	Drivers  []DriverRow `json:"drivers"`
}

// DecomposeRequest runs the price/volume/mix decomposition over two windows.
type DecomposeRequest struct {
	Current  Window
	Previous Window
	By       Dimension
}

// Service answers dashboard queries against the currently loaded snapshot.
// All aggregation is stateless; the store only supplies the snapshot.
type Service interface {
	KPIs(ctx context.Context, req FilterRequest) (Snapshot, error)
	TimeSeries(ctx context.Context, req TimeSeriesRequest) ([]Bucket, error)
	Breakdown(ctx context.Context, req BreakdownRequest) ([]BreakdownRow, error)
	Compare(ctx context.Context, req CompareRequest) (*CompareResponse, error)
	Decompose(ctx context.Context, req DecomposeRequest) ([]Component, error)
	Anomaly(ctx context.Context) (Anomaly, error)
}

type service struct {
	store       *dataset.Store
	defaultTopN int
}

// NewService builds the insights service over the dataset store.
func NewService(store *dataset.Store, defaultTopN int) Service {
	if defaultTopN <= 0 {
		defaultTopN = 10
	}
	return &service{store: store, defaultTopN: defaultTopN}
}

func (s *service) snapshot() (*dataset.Dataset, error) {
	ds := s.store.Current()
	if ds == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no dataset loaded")
	}
	return ds, nil
}

func (s *service) filtered(req FilterRequest) (*dataset.Dataset, error) {
	ds, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	if !req.From.IsZero() || !req.To.IsZero() {
		from, to := req.From, req.To
		if to.IsZero() {
			to = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
		}
		if !from.IsZero() && to.Before(from) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "to must not precede from")
		}
		ds = ds.Between(from, to)
	}
	return ds.WithChannels(req.Channels), nil
}

func (s *service) KPIs(ctx context.Context, req FilterRequest) (Snapshot, error) {
	ds, err := s.filtered(req)
	if err != nil {
		return Snapshot{}, err
	}
	return Summarize(ds), nil
}

func (s *service) TimeSeries(ctx context.Context, req TimeSeriesRequest) ([]Bucket, error) {
	ds, err := s.filtered(req.Filter)
	if err != nil {
		return nil, err
	}
	return TimeSeries(ds, req.Bucket), nil
}

func (s *service) Breakdown(ctx context.Context, req BreakdownRequest) ([]BreakdownRow, error) {
	ds, err := s.filtered(req.Filter)
	if err != nil {
		return nil, err
	}
	n := req.N
	if n <= 0 {
		n = s.defaultTopN
	}
	return TopBreakdown(ds, req.By, req.Metric, n)
}

func (s *service) Compare(ctx context.Context, req CompareRequest) (*CompareResponse, error) {
	ds, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	if err := validateWindow(req.Current); err != nil {
		return nil, err
	}
	if err := validateWindow(req.Previous); err != nil {
		return nil, err
	}

	currSlice := ds.Between(req.Current.From, req.Current.To)
	prevSlice := ds.Between(req.Previous.From, req.Previous.To)

	curr := Summarize(currSlice)
	prev := Summarize(prevSlice)

	n := req.N
	if n <= 0 {
		n = s.defaultTopN
	}
	drivers, err := Drivers(currSlice, prevSlice, req.By, req.Metric, n)
	if err != nil {
		return nil, err
	}

	return &CompareResponse{
		Current:  curr,
		Previous: prev,
		Delta:    KPIDelta(curr, prev),
		Drivers:  drivers,
	}, nil
}

func (s *service) Decompose(ctx context.Context, req DecomposeRequest) ([]Component, error) {
	ds, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	if err := validateWindow(req.Current); err != nil {
		return nil, err
	}
	if err := validateWindow(req.Previous); err != nil {
		return nil, err
	}

	currSlice := ds.Between(req.Current.From, req.Current.To)
	prevSlice := ds.Between(req.Previous.From, req.Previous.To)
	return PriceVolumeMix(currSlice, prevSlice, req.By), nil
}

func (s *service) Anomaly(ctx context.Context) (Anomaly, error) {
	ds, err := s.snapshot()
	if err != nil {
		return Anomaly{}, err
	}
	return DetectDailyAnomaly(ds), nil
}

func validateWindow(w Window) error {
	if w.From.IsZero() || w.To.IsZero() {
		return pkgerrors.New(pkgerrors.CodeValidation, "window from and to are required")
	}
	if w.To.Before(w.From) {
		return pkgerrors.New(pkgerrors.CodeValidation, "window to must not precede from")
	}
	return nil
}
