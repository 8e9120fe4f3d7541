package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/clinia/apix/loggerx"
	"github.com/clinia/apix/slogx"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
)

func (c *Client) MakeHTTPRequest(ctx context.Context, input *Request) (*Response, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	if input.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, input.Timeout)
		defer cancel()
	}

	var body io.Reader
	if input.Body != nil {
		requestBodyBytes, err := encodeBody(input.Body)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(requestBodyBytes)
	}

	httpRequest, err := http.NewRequestWithContext(ctx, input.Method, input.URL, body)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	buildQueryParams(httpRequest, input.QueryParameters)

	httpRequest.Header = input.Headers.Clone()
	if httpRequest.Header == nil {
		httpRequest.Header = http.Header{}
	}
	if body != nil && httpRequest.Header.Get("Content-Type") == "" {
		httpRequest.Header.Set("Content-Type", "application/json")
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(httpRequest.Header))

	if c.logger != nil {
		l := &loggerx.Logger{Logger: slogx.WithRequest(c.logger.Logger, httpRequest)}
		l.Debug(ctx, "executing http request")
	}

	startTime := time.Now()

	httpResponse, err := c.httpClient.Do(httpRequest)
	if err != nil {
		return nil, err
	}

	defer httpResponse.Body.Close()

	endTime := time.Since(startTime)

	responseBody, err := io.ReadAll(httpResponse.Body)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if c.logger != nil {
		c.logger.Debug(ctx, "received http response",
			attribute.Int("http.response.status_code", httpResponse.StatusCode),
			attribute.Int64("http.client.duration_ms", endTime.Milliseconds()),
		)
	}

	if c.validateStatus != nil && !c.validateStatus(httpResponse.StatusCode) {
		return nil, &StatusError{
			StatusCode: httpResponse.StatusCode,
			Body:       responseBody,
			Headers:    httpResponse.Header,
			Method:     input.Method,
			URL:        input.URL,
		}
	}

	return &Response{
		StatusCode: httpResponse.StatusCode,
		Body:       responseBody,
		Headers:    httpResponse.Header,
		Duration:   endTime,
	}, nil
}

func encodeBody(body any) ([]byte, error) {
	switch b := body.(type) {
	case []byte:
		return b, nil
	case json.RawMessage:
		return b, nil
	case string:
		return []byte(b), nil
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		return raw, nil
	}
}

func buildQueryParams(httpRequest *http.Request, params url.Values) {
	if len(params) > 0 {
		requestQueryParams := httpRequest.URL.Query()

		for queryParamKey, queryParamValues := range params {
			for _, queryParamValue := range queryParamValues {
				requestQueryParams.Add(queryParamKey, queryParamValue)
			}
		}

		httpRequest.URL.RawQuery = requestQueryParams.Encode()
	}
}
