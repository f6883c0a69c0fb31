package datasets

import (
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/angelmondragon/ecomlytics-backend/api/responses"
	"github.com/angelmondragon/ecomlytics-backend/internal/dataset"
	pkgerrors "github.com/angelmondragon/ecomlytics-backend/pkg/errors"
	"github.com/angelmondragon/ecomlytics-backend/pkg/logger"
)

const uploadFormField = "file"

// Upload ingests an orders CSV and atomically replaces the current snapshot.
// The body may be a raw CSV or a multipart form with a "file" part. A failed
// upload leaves the previous snapshot in place.
func Upload(store *dataset.Store, maxUploadBytes int64, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

		body, err := uploadReader(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, mapSizeError(err))
			return
		}
		defer body.Close()

		ds, err := dataset.LoadCSV(body)
		if err != nil {
			responses.WriteError(ctx, logg, w, mapSizeError(err))
			return
		}

		store.Swap(ds)

		if logg != nil {
			profileCtx := logg.WithDatasetID(ctx, ds.ID)
			profileCtx = logg.WithFields(profileCtx, map[string]any{
				"rows":         len(ds.Rows),
				"dropped_rows": ds.DroppedRows,
			})
			logg.Info(profileCtx, "dataset.loaded")
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, dataset.ProfileOf(ds))
	}
}

// CurrentProfile describes the loaded snapshot.
func CurrentProfile(store *dataset.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ds := store.Current()
		if ds == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "no dataset loaded"))
			return
		}
		responses.WriteSuccess(w, dataset.ProfileOf(ds))
	}
}

func uploadReader(r *http.Request) (io.ReadCloser, error) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "multipart/form-data" {
		return r.Body, nil
	}

	file, _, err := r.FormFile(uploadFormField)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "multipart upload requires a file part")
	}
	return file, nil
}

func mapSizeError(err error) error {
	var maxBytes *http.MaxBytesError
	if errors.As(err, &maxBytes) {
		return pkgerrors.Wrap(pkgerrors.CodePayloadTooLarge, err, "upload exceeds the size limit").
			WithDetails(map[string]any{"limit_bytes": maxBytes.Limit})
	}
	return err
}
