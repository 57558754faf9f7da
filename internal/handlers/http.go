package handlers

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"

	"compatibility-engine/internal/models"
	"compatibility-engine/internal/utils"
)

// LambdaFunc is the signature shared by every API Gateway handler.
type LambdaFunc func(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

// maxBodyBytes bounds request bodies on the local server.
const maxBodyBytes = 1 << 20

// HTTPHandler serves a Lambda handler over plain net/http for local runs.
func HTTPHandler(fn LambdaFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
		if err != nil {
			resp, _ := errorResponse(http.StatusBadRequest, models.ErrCodeInvalidRequest, "failed to read request body")
			writeProxyResponse(w, resp)
			return
		}

		request := events.APIGatewayProxyRequest{
			HTTPMethod:            r.Method,
			Path:                  r.URL.Path,
			Body:                  string(body),
			Headers:               make(map[string]string, len(r.Header)),
			QueryStringParameters: make(map[string]string, len(r.URL.Query())),
		}
		for k := range r.Header {
			request.Headers[k] = r.Header.Get(k)
		}
		for k := range r.URL.Query() {
			request.QueryStringParameters[k] = r.URL.Query().Get(k)
		}

		resp, err := fn(r.Context(), request)
		if err != nil {
			utils.GetLogger().Error("Handler failed",
				utils.String("path", r.URL.Path),
				utils.Error(err))
			resp, _ = errorResponse(http.StatusInternalServerError, models.ErrCodeInternal, err.Error())
		}
		writeProxyResponse(w, resp)
	}
}

func writeProxyResponse(w http.ResponseWriter, resp events.APIGatewayProxyResponse) {
	for k, v := range resp.Headers {
		// CORS on the local server is owned by the middleware.
		if strings.HasPrefix(k, "Access-Control-") {
			continue
		}
		w.Header().Set(k, v)
	}
	w.WriteHeader(resp.StatusCode)
	_, _ = io.WriteString(w, resp.Body)
}
