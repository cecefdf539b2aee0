// Package envelope serves function-style invocations through the HTTP router.
// An invocation arrives as a JSON event and leaves as a JSON result; both
// carry the HTTP method, query parameters, body and status.
package envelope

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
)

type Request struct {
	HTTPMethod            string            `json:"httpMethod"`
	Headers               map[string]string `json:"headers,omitempty"`
	QueryStringParameters map[string]string `json:"queryStringParameters,omitempty"`
	Body                  string            `json:"body"`
	IsBase64Encoded       bool              `json:"isBase64Encoded,omitempty"`
	RequestContext        RequestContext    `json:"requestContext,omitempty"`
}

type RequestContext struct {
	RequestID string `json:"requestId,omitempty"`
}

type Response struct {
	StatusCode      int               `json:"statusCode"`
	Headers         map[string]string `json:"headers"`
	Body            string            `json:"body"`
	IsBase64Encoded bool              `json:"isBase64Encoded"`
}

// Invoke replays req against handler at path and captures the result.
func Invoke(ctx context.Context, handler http.Handler, path string, req Request) (Response, error) {
	method := strings.ToUpper(req.HTTPMethod)
	if method == "" {
		method = http.MethodGet
	}

	target := url.URL{Path: path}
	if len(req.QueryStringParameters) > 0 {
		q := url.Values{}
		for k, v := range req.QueryStringParameters {
			q.Set(k, v)
		}
		target.RawQuery = q.Encode()
	}

	body := req.Body
	if req.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return Response{}, fmt.Errorf("failed to decode base64 body: %w", err)
		}
		body = string(decoded)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target.String(), strings.NewReader(body))
	if err != nil {
		return Response{}, err
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	if req.RequestContext.RequestID != "" && httpReq.Header.Get("X-Request-Id") == "" {
		httpReq.Header.Set("X-Request-Id", req.RequestContext.RequestID)
	}
	if body != "" && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httpReq)

	headers := make(map[string]string, len(rec.Header()))
	for k := range rec.Header() {
		headers[k] = rec.Header().Get(k)
	}
	return Response{
		StatusCode: rec.Code,
		Headers:    headers,
		Body:       rec.Body.String(),
	}, nil
}
