package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"

	"compatibility-engine/internal/models"
	"compatibility-engine/internal/utils"
)

// MatchRanker produces a user's ranked match list.
type MatchRanker interface {
	GetMatches(ctx context.Context, userID string) ([]models.MatchResult, error)
}

// MatchesHandler serves GetMatches.
type MatchesHandler struct {
	ranker  MatchRanker
	timeout time.Duration
}

// NewMatchesHandler creates a new matches handler.
func NewMatchesHandler(ranker MatchRanker, timeout time.Duration) *MatchesHandler {
	return &MatchesHandler{ranker: ranker, timeout: timeout}
}

// MatchesRequest is the request body for GetMatches.
type MatchesRequest struct {
	UserID string `json:"user_id"`
}

// Handle processes API Gateway requests for a user's top matches.
func (h *MatchesHandler) Handle(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if request.HTTPMethod == http.MethodOptions {
		return preflightResponse(), nil
	}

	logger, _ := utils.RequestLogger("get_matches")

	var req MatchesRequest
	if err := decodeBody(request.Body, &req); err != nil {
		return errorResponse(http.StatusBadRequest, models.ErrCodeInvalidRequest, "Invalid JSON in request body")
	}

	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	start := time.Now()
	matches, err := h.ranker.GetMatches(ctx, req.UserID)
	if err != nil {
		if !models.IsValidationError(err) {
			logger.Error("Failed to get matches",
				utils.String("userID", req.UserID),
				utils.Error(err))
		}
		return responseForError(err)
	}

	logger.Info("Matches served",
		utils.String("userID", req.UserID),
		utils.Int("count", len(matches)),
		utils.Duration("elapsed", time.Since(start)))

	return jsonResponse(http.StatusOK, models.MatchList{Matches: matches})
}
