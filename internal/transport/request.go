package transport

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/SlightlyCircuitous/update-token-xml/pkg/errors"
)

// maxErrorMessage bounds how much of an error body ends up in an APIError.
const maxErrorMessage = 512

// ReadResponse reads and closes the response body. A non-200 status yields
// an *errors.APIError; the body is returned in both cases so callers can
// inspect structured error payloads.
func ReadResponse(resp *http.Response, source string) ([]byte, error) {
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WrapIO("read", "response body", err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := strings.TrimSpace(string(body))
		if len(msg) > maxErrorMessage {
			msg = msg[:maxErrorMessage]
		}
		if msg == "" {
			msg = resp.Status
		}
		endpoint := ""
		if resp.Request != nil && resp.Request.URL != nil {
			endpoint = resp.Request.URL.String()
		}
		return body, &errors.APIError{
			Source:     source,
			StatusCode: resp.StatusCode,
			Message:    msg,
			Endpoint:   endpoint,
		}
	}

	return body, nil
}

// DecodeJSON decodes a JSON body into target.
func DecodeJSON(body []byte, source string, target any) error {
	if err := json.Unmarshal(body, target); err != nil {
		return errors.WrapParse("json", source+" response", err)
	}
	return nil
}
