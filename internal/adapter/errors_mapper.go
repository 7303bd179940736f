package adapter

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// mapHTTPError returns nil for 2xx responses and a [*Failure] of kind
// [FailureStatus] for everything else.
func mapHTTPError(resp *resty.Response) *Failure {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(resp.StatusCode())
	}

	return &Failure{
		Kind:   FailureStatus,
		Status: resp.StatusCode(),
		Body:   resp.Body(),
		Err:    fmt.Errorf("%w: %s", statusSentinel(resp.StatusCode()), body),
	}
}

func statusSentinel(status int) error {
	switch status {
	case http.StatusBadRequest:
		return ErrBadRequest
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	case http.StatusBadGateway:
		return ErrBadGateway
	case http.StatusInternalServerError:
		return ErrInternalServerError
	default:
		return fmt.Errorf("%w %d", ErrUnexpectedStatus, status)
	}
}
