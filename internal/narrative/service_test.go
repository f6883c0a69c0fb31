package narrative

import (
	"context"
	"testing"
	"time"

	"github.com/angelmondragon/ecomlytics-backend/internal/dataset"
	"github.com/angelmondragon/ecomlytics-backend/internal/insights"
	pkgerrors "github.com/angelmondragon/ecomlytics-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPolisher struct {
	text     string
	polished bool
	seen     string
}

func (s *stubPolisher) Polish(_ context.Context, ruleSummary string) (string, bool) {
	s.seen = ruleSummary
	if !s.polished {
		return ruleSummary, false
	}
	return s.text, true
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t.UTC()
}

func twoWeekDataset() *dataset.Dataset {
	rows := make([]dataset.Row, 0, 14)
	for i := 0; i < 14; i++ {
		date := day("2024-03-01").AddDate(0, 0, i)
		qty := 1.0
		if i >= 7 {
			qty = 2
		}
		rows = append(rows, dataset.Row{
			OrderID:   date.Format("20060102"),
			OrderDate: date,
			Channel:   "web",
			SKU:       "A",
			Quantity:  qty,
			UnitPrice: 10,
		})
	}
	return &dataset.Dataset{ID: "two-week", Rows: rows}
}

func narrativeWith(ds *dataset.Dataset, polisher TextPolisher) Service {
	store := dataset.NewStore()
	if ds != nil {
		store.Swap(ds)
	}
	return NewService(store, polisher)
}

func TestGenerateNoDatasetLoaded(t *testing.T) {
	svc := narrativeWith(nil, nil)

	_, err := svc.Generate(context.Background(), Request{})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestGenerateDefaultsWindows(t *testing.T) {
	svc := narrativeWith(twoWeekDataset(), nil)

	resp, err := svc.Generate(context.Background(), Request{})
	require.NoError(t, err)

	assert.Equal(t, day("2024-03-08"), resp.Current.From)
	assert.Equal(t, day("2024-03-14"), resp.Current.To)
	assert.Equal(t, day("2024-03-01"), resp.Previous.From)
	assert.Equal(t, day("2024-03-07"), resp.Previous.To)
	assert.False(t, resp.Polished)

	// Second week doubles quantity: GMV 70 -> 140.
	assert.Contains(t, resp.Text, "GMV changed by $70.00; Orders changed by +0.")
	assert.Contains(t, resp.Text, "**A** ($70.00)")
	assert.Contains(t, resp.Text, "**web** ($70.00)")
}

func TestGenerateExplicitWindows(t *testing.T) {
	svc := narrativeWith(twoWeekDataset(), nil)

	resp, err := svc.Generate(context.Background(), Request{
		Current:  insights.Window{From: day("2024-03-10"), To: day("2024-03-10")},
		Previous: insights.Window{From: day("2024-03-03"), To: day("2024-03-03")},
	})
	require.NoError(t, err)
	assert.Contains(t, resp.Text, "GMV changed by $10.00")
}

func TestGenerateRejectsPartialWindows(t *testing.T) {
	svc := narrativeWith(twoWeekDataset(), nil)

	_, err := svc.Generate(context.Background(), Request{
		Current: insights.Window{From: day("2024-03-10"), To: day("2024-03-12")},
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestGenerateRejectsDatasetWithoutDates(t *testing.T) {
	svc := narrativeWith(&dataset.Dataset{ID: "empty"}, nil)

	_, err := svc.Generate(context.Background(), Request{})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestGenerateUsesPolisher(t *testing.T) {
	stub := &stubPolisher{text: "polished output", polished: true}
	svc := narrativeWith(twoWeekDataset(), stub)

	resp, err := svc.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.True(t, resp.Polished)
	assert.Equal(t, "polished output", resp.Text)
	assert.Contains(t, stub.seen, "## Executive Summary")
}

func TestGeneratePolisherFallbackKeepsRuleText(t *testing.T) {
	stub := &stubPolisher{polished: false}
	svc := narrativeWith(twoWeekDataset(), stub)

	resp, err := svc.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.False(t, resp.Polished)
	assert.Equal(t, stub.seen, resp.Text)
}
