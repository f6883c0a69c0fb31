package insights

import (
	"net/http"

	"github.com/angelmondragon/ecomlytics-backend/api/responses"
	"github.com/angelmondragon/ecomlytics-backend/api/validators"
	insightssvc "github.com/angelmondragon/ecomlytics-backend/internal/insights"
	"github.com/angelmondragon/ecomlytics-backend/pkg/logger"
)

// KPIs serves the scalar summary of the filtered snapshot.
func KPIs(service insightssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		filter, err := resolveFilter(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		snapshot, err := service.KPIs(ctx, filter)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, snapshot)
	}
}

// TimeSeries serves the daily or weekly rollup.
func TimeSeries(service insightssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		filter, err := resolveFilter(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		bucket, err := insightssvc.ParseBucketSize(r.URL.Query().Get("bucket"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		series, err := service.TimeSeries(ctx, insightssvc.TimeSeriesRequest{Filter: filter, Bucket: bucket})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, series)
	}
}

// Breakdown serves the ranked top-N table for a dimension and metric.
func Breakdown(service insightssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		filter, err := resolveFilter(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		by, err := insightssvc.ParseDimension(r.URL.Query().Get("by"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		metric, err := insightssvc.ParseMetric(r.URL.Query().Get("metric"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		n, err := validators.ParseQueryInt(r, "n", 0, 1, maxTopN)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		rows, err := service.Breakdown(ctx, insightssvc.BreakdownRequest{
			Filter: filter,
			By:     by,
			Metric: metric,
			N:      n,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

type comparePayload struct {
	Current  windowPayload `json:"current" validate:"required"`
	Previous windowPayload `json:"previous" validate:"required"`
	By       string        `json:"by"`
	Metric   string        `json:"metric"`
	N        int           `json:"n" validate:"omitempty,min=1,max=100"`
}

// Compare serves the two-window KPI delta table with driver ranking.
func Compare(service insightssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var payload comparePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		req, err := compareRequest(payload)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := service.Compare(ctx, req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func compareRequest(payload comparePayload) (insightssvc.CompareRequest, error) {
	current, err := payload.Current.toWindow("current")
	if err != nil {
		return insightssvc.CompareRequest{}, err
	}
	previous, err := payload.Previous.toWindow("previous")
	if err != nil {
		return insightssvc.CompareRequest{}, err
	}
	by, err := insightssvc.ParseDimension(payload.By)
	if err != nil {
		return insightssvc.CompareRequest{}, err
	}
	metric, err := insightssvc.ParseMetric(payload.Metric)
	if err != nil {
		return insightssvc.CompareRequest{}, err
	}
	return insightssvc.CompareRequest{
		Current:  current,
		Previous: previous,
		By:       by,
		Metric:   metric,
		N:        payload.N,
	}, nil
}

type decomposePayload struct {
	Current  windowPayload `json:"current" validate:"required"`
	Previous windowPayload `json:"previous" validate:"required"`
	By       string        `json:"by"`
}

// Decompose serves the price/volume/mix attribution of the GMV delta.
func Decompose(service insightssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var payload decomposePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		current, err := payload.Current.toWindow("current")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		previous, err := payload.Previous.toWindow("previous")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		by, err := insightssvc.ParseDimension(payload.By)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		components, err := service.Decompose(ctx, insightssvc.DecomposeRequest{
			Current:  current,
			Previous: previous,
			By:       by,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, components)
	}
}

// AnomalyCheck serves the ratio-to-median daily sales anomaly flag.
func AnomalyCheck(service insightssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		result, err := service.Anomaly(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
