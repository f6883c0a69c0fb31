package insights

import (
	"net/http"

	"github.com/angelmondragon/ecomlytics-backend/api/responses"
	"github.com/angelmondragon/ecomlytics-backend/api/validators"
	"github.com/angelmondragon/ecomlytics-backend/internal/narrative"
	"github.com/angelmondragon/ecomlytics-backend/pkg/logger"
)

type narrativePayload struct {
	Current  *windowPayload `json:"current"`
	Previous *windowPayload `json:"previous"`
}

// Narrative serves the executive summary for a comparison. Omitting both
// windows compares the trailing stretch of the data against the one before.
func Narrative(service narrative.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var payload narrativePayload
		if r.ContentLength != 0 {
			if err := validators.DecodeJSONBody(r, &payload); err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
		}

		var req narrative.Request
		if payload.Current != nil {
			window, err := payload.Current.toWindow("current")
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			req.Current = window
		}
		if payload.Previous != nil {
			window, err := payload.Previous.toWindow("previous")
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			req.Previous = window
		}

		result, err := service.Generate(ctx, req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
