package insights

import (
	"net/http"
	"time"

	"github.com/angelmondragon/ecomlytics-backend/api/validators"
	insightssvc "github.com/angelmondragon/ecomlytics-backend/internal/insights"
	pkgerrors "github.com/angelmondragon/ecomlytics-backend/pkg/errors"
)

const (
	dateLayout = "2006-01-02"
	maxTopN    = 100
)

func resolveFilter(r *http.Request) (insightssvc.FilterRequest, error) {
	from, err := validators.ParseQueryDate(r, "from")
	if err != nil {
		return insightssvc.FilterRequest{}, err
	}
	to, err := validators.ParseQueryDate(r, "to")
	if err != nil {
		return insightssvc.FilterRequest{}, err
	}
	return insightssvc.FilterRequest{
		From:     from,
		To:       to,
		Channels: validators.ParseQueryList(r, "channels"),
	}, nil
}

// windowPayload carries an inclusive YYYY-MM-DD date range in request bodies.
type windowPayload struct {
	From string `json:"from" validate:"required"`
	To   string `json:"to" validate:"required"`
}

func (p windowPayload) toWindow(field string) (insightssvc.Window, error) {
	from, err := parseBodyDate(p.From, field+".from")
	if err != nil {
		return insightssvc.Window{}, err
	}
	to, err := parseBodyDate(p.To, field+".to")
	if err != nil {
		return insightssvc.Window{}, err
	}
	return insightssvc.Window{From: from, To: to}, nil
}

func parseBodyDate(raw, field string) (time.Time, error) {
	value, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "must be a YYYY-MM-DD date").
			WithDetails(map[string]any{"field": field})
	}
	return value.UTC(), nil
}
