package residence

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/de-tools/residence-atlas/pkg/adapters"
	"github.com/de-tools/residence-atlas/pkg/models/api"
	"github.com/de-tools/residence-atlas/pkg/models/domain"
	"github.com/de-tools/residence-atlas/pkg/services/residence"
	"github.com/rs/zerolog"
)

const maxBodyBytes = 10 << 20 // 10 MiB of residence history is plenty

type Handler struct {
	analyzer residence.Analyzer
}

func NewHandler(analyzer residence.Analyzer) *Handler {
	return &Handler{analyzer: analyzer}
}

func (h *Handler) ListLabels(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	labels, err := h.analyzer.Labels(ctx, http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if labels == nil {
		labels = []string{}
	}

	writeJSON(w, http.StatusOK, api.Labels{Labels: labels}, logger)
}

func (h *Handler) Aggregate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	query := r.URL.Query()

	key := query.Get("key")
	if key == "" {
		writeJSON(w, http.StatusBadRequest, api.Error{Message: "query parameter 'key' is required"}, logger)
		return
	}

	opts, err := optionsFromQuery(query.Get("axis"), query.Get("sort"), query.Get("chart"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	reports, err := h.analyzer.Analyze(ctx, http.MaxBytesReader(w, r.Body, maxBodyBytes), []string{key}, opts)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if len(reports) != 1 {
		logger.Error().Int("reports", len(reports)).Str("key", key).Msg("unexpected number of reports")
		writeJSON(w, http.StatusInternalServerError, api.Error{Message: "internal error"}, logger)
		return
	}

	writeJSON(w, http.StatusOK, adapters.MapReportDomainToApi(reports[0]), logger)
}

func optionsFromQuery(axis, sort, chart string) (residence.Options, error) {
	var (
		opts residence.Options
		err  error
	)
	if opts.Unit, err = residence.ParseUnit(axis); err != nil {
		return opts, &badRequestError{err}
	}
	if opts.Order, err = residence.ParseOrder(sort); err != nil {
		return opts, &badRequestError{err}
	}
	if opts.Chart, err = residence.ParseChart(chart); err != nil {
		return opts, &badRequestError{err}
	}
	return opts, opts.Validate()
}

type badRequestError struct {
	err error
}

func (e *badRequestError) Error() string { return e.err.Error() }
func (e *badRequestError) Unwrap() error { return e.err }

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	logger := zerolog.Ctx(r.Context())

	var (
		badRequest *badRequestError
		usage      *domain.UsageConflictError
		fieldCount *domain.FieldCountError
		dateFormat *domain.DateFormatError
		dateValue  *domain.DateValueError
		header     *domain.HeaderError
		unknown    *domain.UnknownFieldError
		tooLarge   *http.MaxBytesError
		status     = http.StatusInternalServerError
		body       = api.Error{Message: err.Error()}
	)

	switch {
	case errors.As(err, &tooLarge):
		status = http.StatusRequestEntityTooLarge
	case errors.As(err, &badRequest), errors.As(err, &usage), errors.As(err, &fieldCount),
		errors.As(err, &dateFormat), errors.As(err, &dateValue), errors.As(err, &header):
		status = http.StatusBadRequest
	case errors.As(err, &unknown):
		status = http.StatusUnprocessableEntity
		body.Available = unknown.Available
	case errors.Is(err, domain.ErrZeroTotal):
		status = http.StatusUnprocessableEntity
	default:
		body.Message = "internal error"
		logger.Error().Err(err).Msg("analysis failed")
	}

	writeJSON(w, status, body, logger)
}

func writeJSON(w http.ResponseWriter, status int, v any, logger *zerolog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error().
			Err(err).
			Msg("failed to encode response")
	}
}
