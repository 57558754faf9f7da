// Package handlers provides API Gateway handlers for the compatibility engine.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"compatibility-engine/internal/models"
)

// corsHeaders are attached to every response, including preflight.
func corsHeaders() map[string]string {
	return map[string]string{
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Headers": "authorization, x-client-info, apikey, content-type",
		"Access-Control-Allow-Methods": "POST,OPTIONS",
		"Content-Type":                 "application/json",
	}
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error      string           `json:"error"`
	Code       models.ErrorCode `json:"code"`
	MissingIDs []string         `json:"missing_ids,omitempty"`
}

// preflightResponse answers a CORS preflight.
func preflightResponse() events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers:    corsHeaders(),
		Body:       "ok",
	}
}

// jsonResponse marshals body with the given status.
func jsonResponse(statusCode int, body interface{}) (events.APIGatewayProxyResponse, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return errorResponse(http.StatusInternalServerError, models.ErrCodeInternal, "failed to encode response")
	}
	return events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Headers:    corsHeaders(),
		Body:       string(data),
	}, nil
}

// errorResponse creates an error response.
func errorResponse(statusCode int, code models.ErrorCode, message string) (events.APIGatewayProxyResponse, error) {
	body, _ := json.Marshal(ErrorResponse{Error: message, Code: code})
	return events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Headers:    corsHeaders(),
		Body:       string(body),
	}, nil
}

// responseForError maps the error taxonomy onto HTTP status codes.
// Anything unrecognised is an internal error carrying only its message.
func responseForError(err error) (events.APIGatewayProxyResponse, error) {
	var ve *models.ValidationError
	if errors.As(err, &ve) {
		return errorResponse(http.StatusBadRequest, ve.Code, ve.Message)
	}

	var nf *models.NotFoundError
	if errors.As(err, &nf) {
		body, _ := json.Marshal(ErrorResponse{Error: nf.Message, Code: nf.Code, MissingIDs: nf.MissingIDs})
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusNotFound,
			Headers:    corsHeaders(),
			Body:       string(body),
		}, nil
	}

	return errorResponse(http.StatusInternalServerError, models.ErrCodeInternal, err.Error())
}

// decodeBody parses a JSON request body. An empty body decodes to the zero
// value so that missing fields are reported as such.
func decodeBody(body string, v interface{}) error {
	if body == "" {
		return nil
	}
	return json.Unmarshal([]byte(body), v)
}
