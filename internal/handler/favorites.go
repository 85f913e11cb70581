package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/rs/zerolog/log"

	"github.com/chargemap/backend-go/internal/api"
	"github.com/chargemap/backend-go/internal/auth"
	"github.com/chargemap/backend-go/internal/favorites"
	"github.com/chargemap/backend-go/internal/user"
)

// FavoritesHandler serves the per-user favorites surface. Every request
// carries a bearer token; the user document is provisioned lazily on the
// first request that gets this far.
type FavoritesHandler struct {
	verifier *auth.Verifier
	users    *user.Service
	ledger   *favorites.Ledger
	resolver *favorites.Resolver
}

func NewFavoritesHandler(verifier *auth.Verifier, users *user.Service, ledger *favorites.Ledger, resolver *favorites.Resolver) *FavoritesHandler {
	return &FavoritesHandler{
		verifier: verifier,
		users:    users,
		ledger:   ledger,
		resolver: resolver,
	}
}

type favoriteRequest struct {
	StationID string `json:"stationId"`
}

func (h *FavoritesHandler) HandleRequest(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	identity, err := h.identify(request)
	if err != nil {
		return api.Error("Unauthorized", http.StatusUnauthorized)
	}

	// Lazy bootstrap: first authenticated request creates the document
	if _, err := h.users.GetOrCreate(ctx, identity.UID, identity.Email, identity.DisplayName); err != nil {
		log.Error().Err(err).Str("uid", identity.UID).Msg("User bootstrap failed")
		return api.Error("Failed to load user", http.StatusInternalServerError)
	}

	switch request.HTTPMethod {
	case http.MethodGet:
		return h.handleList(ctx, identity.UID, request)
	case http.MethodPost:
		return h.handleAdd(ctx, identity.UID, request)
	case http.MethodDelete:
		return h.handleRemove(ctx, identity.UID, request)
	}
	return api.Error("Method not allowed", http.StatusMethodNotAllowed)
}

func (h *FavoritesHandler) identify(request events.APIGatewayProxyRequest) (*auth.Identity, error) {
	header := api.Header(request, "Authorization")
	token := strings.TrimPrefix(header, "Bearer ")
	return h.verifier.Verify(token)
}

func (h *FavoritesHandler) handleList(ctx context.Context, uid string, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	ids, err := h.ledger.List(ctx, uid)
	if err != nil {
		return api.Error("Error listing favorites", http.StatusInternalServerError)
	}

	if request.QueryStringParameters["resolve"] != "true" {
		return api.Success(api.NewFavoritesResponse(ids, nil))
	}

	stations, err := h.resolver.Resolve(ctx, ids)
	if err != nil {
		return api.Error("Error resolving favorite stations", http.StatusInternalServerError)
	}
	return api.Success(api.NewFavoritesResponse(ids, stations))
}

func (h *FavoritesHandler) handleAdd(ctx context.Context, uid string, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	stationID, response, ok := stationIDFromBody(request)
	if !ok {
		return response, nil
	}

	if err := h.ledger.Add(ctx, uid, stationID); err != nil {
		return api.Error("Failed to add station to favorites", http.StatusInternalServerError)
	}
	return api.Success(api.NewMessageResponse("Added to favorites"))
}

func (h *FavoritesHandler) handleRemove(ctx context.Context, uid string, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	stationID := request.QueryStringParameters["stationId"]
	if stationID == "" {
		var response events.APIGatewayProxyResponse
		var ok bool
		stationID, response, ok = stationIDFromBody(request)
		if !ok {
			return response, nil
		}
	}

	if err := h.ledger.Remove(ctx, uid, stationID); err != nil {
		return api.Error("Failed to remove station from favorites", http.StatusInternalServerError)
	}
	return api.Success(api.NewMessageResponse("Removed from favorites"))
}

func stationIDFromBody(request events.APIGatewayProxyRequest) (string, events.APIGatewayProxyResponse, bool) {
	var body favoriteRequest
	if err := json.Unmarshal([]byte(request.Body), &body); err != nil || body.StationID == "" {
		response, _ := api.Error("stationId is required", http.StatusBadRequest)
		return "", response, false
	}
	return body.StationID, events.APIGatewayProxyResponse{}, true
}
