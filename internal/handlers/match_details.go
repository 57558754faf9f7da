package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"

	"compatibility-engine/internal/models"
	"compatibility-engine/internal/utils"
)

// MatchExplainer builds the per-category comparison of two users.
type MatchExplainer interface {
	GetMatchDetails(ctx context.Context, userID, otherUserID string) (*models.MatchDetails, error)
}

// MatchDetailsHandler serves GetMatchDetails.
type MatchDetailsHandler struct {
	explainer MatchExplainer
	timeout   time.Duration
}

// NewMatchDetailsHandler creates a new match details handler.
func NewMatchDetailsHandler(explainer MatchExplainer, timeout time.Duration) *MatchDetailsHandler {
	return &MatchDetailsHandler{explainer: explainer, timeout: timeout}
}

// MatchDetailsRequest is the request body for GetMatchDetails.
type MatchDetailsRequest struct {
	UserID      string `json:"user_id"`
	OtherUserID string `json:"other_user_id"`
}

// Handle processes API Gateway requests comparing two users.
func (h *MatchDetailsHandler) Handle(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if request.HTTPMethod == http.MethodOptions {
		return preflightResponse(), nil
	}

	logger, _ := utils.RequestLogger("get_match_details")

	var req MatchDetailsRequest
	if err := decodeBody(request.Body, &req); err != nil {
		return errorResponse(http.StatusBadRequest, models.ErrCodeInvalidRequest, "Invalid JSON in request body")
	}

	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	details, err := h.explainer.GetMatchDetails(ctx, req.UserID, req.OtherUserID)
	if err != nil {
		switch {
		case models.IsValidationError(err), models.IsNotFoundError(err):
			logger.Info("Rejected match details request",
				utils.String("userID", req.UserID),
				utils.String("otherUserID", req.OtherUserID),
				utils.Error(err))
		default:
			logger.Error("Failed to build match details",
				utils.String("userID", req.UserID),
				utils.String("otherUserID", req.OtherUserID),
				utils.Error(err))
		}
		return responseForError(err)
	}

	logger.Info("Match details served",
		utils.String("userID", req.UserID),
		utils.String("otherUserID", req.OtherUserID),
		utils.Float64("finalMatch", details.Overall.FinalMatch))

	return jsonResponse(http.StatusOK, details)
}
