package narrative

import (
	"context"

	"github.com/angelmondragon/ecomlytics-backend/internal/dataset"
	"github.com/angelmondragon/ecomlytics-backend/internal/insights"
	pkgerrors "github.com/angelmondragon/ecomlytics-backend/pkg/errors"
)

const driverRows = 5

// Request names the comparison windows. Both zero means "pick sensible
// defaults from the dataset's date span".
type Request struct {
	Current  insights.Window
	Previous insights.Window
}

type Response struct {
	Text     string          `json:"text"`
	Polished bool            `json:"polished"`
	Current  insights.Window `json:"current_window"`
	Previous insights.Window `json:"previous_window"`
}

// TextPolisher is the optional rewrite hook. Implementations must fall back
// to the input text rather than fail.
type TextPolisher interface {
	Polish(ctx context.Context, ruleSummary string) (string, bool)
}

type Service interface {
	Generate(ctx context.Context, req Request) (*Response, error)
}

type service struct {
	store    *dataset.Store
	polisher TextPolisher
}

// NewService builds the narrative generator. polisher may be nil, in which
// case only the rule-based text is produced.
func NewService(store *dataset.Store, polisher TextPolisher) Service {
	return &service{store: store, polisher: polisher}
}

func (s *service) Generate(ctx context.Context, req Request) (*Response, error) {
	ds := s.store.Current()
	if ds == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no dataset loaded")
	}

	curr, prev, err := s.resolveWindows(ds, req)
	if err != nil {
		return nil, err
	}

	currSlice := ds.Between(curr.From, curr.To)
	prevSlice := ds.Between(prev.From, prev.To)

	currSnap := insights.Summarize(currSlice)
	prevSnap := insights.Summarize(prevSlice)

	skuDrivers, err := insights.Drivers(currSlice, prevSlice, insights.DimensionSKU, insights.MetricSales, driverRows)
	if err != nil {
		return nil, err
	}
	channelDrivers, err := insights.Drivers(currSlice, prevSlice, insights.DimensionChannel, insights.MetricSales, driverRows)
	if err != nil {
		return nil, err
	}

	text := RuleBasedSummary(Tables{
		KPIDelta:    insights.KPIDelta(currSnap, prevSnap),
		Components:  insights.PriceVolumeMix(currSlice, prevSlice, insights.DimensionSKU),
		TopSKUs:     skuDrivers,
		TopChannels: channelDrivers,
	})

	polished := false
	if s.polisher != nil {
		text, polished = s.polisher.Polish(ctx, text)
	}

	return &Response{
		Text:     text,
		Polished: polished,
		Current:  curr,
		Previous: prev,
	}, nil
}

func (s *service) resolveWindows(ds *dataset.Dataset, req Request) (insights.Window, insights.Window, error) {
	currGiven := !req.Current.From.IsZero() || !req.Current.To.IsZero()
	prevGiven := !req.Previous.From.IsZero() || !req.Previous.To.IsZero()

	if !currGiven && !prevGiven {
		curr, prev, ok := insights.DefaultWindows(ds)
		if !ok {
			return insights.Window{}, insights.Window{}, pkgerrors.New(
				pkgerrors.CodeValidation, "dataset has no dated rows to compare")
		}
		return curr, prev, nil
	}

	for _, w := range []insights.Window{req.Current, req.Previous} {
		if w.From.IsZero() || w.To.IsZero() {
			return insights.Window{}, insights.Window{}, pkgerrors.New(
				pkgerrors.CodeValidation, "window from and to are required")
		}
		if w.To.Before(w.From) {
			return insights.Window{}, insights.Window{}, pkgerrors.New(
				pkgerrors.CodeValidation, "window to must not precede from")
		}
	}
	return req.Current, req.Previous, nil
}
