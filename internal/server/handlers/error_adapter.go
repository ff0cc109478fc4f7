package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/vigneshcj001/LinkedIn-Scraper-Dashboard-backend/internal/core/linkedin"
	"github.com/vigneshcj001/LinkedIn-Scraper-Dashboard-backend/internal/core/relay"
	apperrors "github.com/vigneshcj001/LinkedIn-Scraper-Dashboard-backend/internal/errors"
)

var defaultHTTPErrorResponder = func(w http.ResponseWriter, r *http.Request, err error) {
	apperrors.RespondWithError(w, r, err)
}

var httpErrorResponder = defaultHTTPErrorResponder

// SetHTTPErrorResponder lets the server package inject the centralized error handler.
func SetHTTPErrorResponder(responder func(http.ResponseWriter, *http.Request, error)) {
	if responder == nil {
		httpErrorResponder = defaultHTTPErrorResponder
		return
	}
	httpErrorResponder = responder
}

// ResetHTTPErrorResponder restores the default responder (useful for tests).
func ResetHTTPErrorResponder() {
	httpErrorResponder = defaultHTTPErrorResponder
}

func respondWithError(w http.ResponseWriter, r *http.Request, err error) {
	httpErrorResponder(w, r, err)
}

// relayFailureEnvelope maps a dispatcher failure onto the caller-facing error
// taxonomy. The upstream body travels in the envelope details rather than the
// message. Errors that are not dispatch failures pass through untouched for
// the error layer to normalize.
func relayFailureEnvelope(err error) error {
	var failure *relay.Failure
	if !errors.As(err, &failure) {
		return err
	}

	switch failure.Kind {
	case relay.KindMissingKey:
		return apperrors.NewMissingCredentialError(linkedin.MissingKeyDetail)
	case relay.KindQuotaExceeded:
		return apperrors.NewQuotaExceededError("Rate limit exceeded. Please try again later.")
	case relay.KindUpstream:
		message := fmt.Sprintf("RapidAPI request for %s failed with status %d", failure.Resource, failure.Status)
		return apperrors.NewUpstreamError(message, failure.Status, failure.Body)
	case relay.KindEmptyResponse:
		return apperrors.NewEmptyResponseError(fmt.Sprintf("Empty response from RapidAPI for %s", failure.Resource))
	case relay.KindTransport:
		return apperrors.NewTransportError(fmt.Sprintf("Error fetching %s from RapidAPI", failure.Resource))
	default:
		return err
	}
}
