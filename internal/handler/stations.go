package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/rs/zerolog/log"

	"github.com/chargemap/backend-go/internal/api"
	"github.com/chargemap/backend-go/internal/catalog"
	"github.com/chargemap/backend-go/internal/models"
	"github.com/chargemap/backend-go/internal/station"
	"github.com/chargemap/backend-go/internal/validate"
)

// StationsHandler serves the public browse/search surface and the admin
// CRUD surface for stations. Every mutation invalidates the catalog, so
// the next listing re-fetches instead of serving a stale copy.
type StationsHandler struct {
	repo    station.Repository
	catalog *catalog.Catalog
}

func NewStationsHandler(repo station.Repository, stationCatalog *catalog.Catalog) *StationsHandler {
	return &StationsHandler{
		repo:    repo,
		catalog: stationCatalog,
	}
}

func (h *StationsHandler) HandleRequest(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	switch request.HTTPMethod {
	case http.MethodGet:
		return h.handleGet(ctx, request)
	case http.MethodPost:
		return h.handleCreate(ctx, request)
	case http.MethodPut, http.MethodPatch:
		return h.handleUpdate(ctx, request)
	case http.MethodDelete:
		return h.handleDelete(ctx, request)
	}
	return api.Error("Method not allowed", http.StatusMethodNotAllowed)
}

func (h *StationsHandler) handleGet(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	params := request.QueryStringParameters

	// Single-station lookup
	if stationID, ok := params["stationId"]; ok {
		found, err := h.repo.Get(ctx, stationID)
		if err != nil {
			return api.Error("Error finding station", http.StatusInternalServerError)
		}
		if found == nil {
			return api.Error("Station not found", http.StatusNotFound)
		}
		h.catalog.Select(found.ID)
		return api.Success(api.NewStationResponse(*found))
	}

	typeFilter := catalog.TypeFilterAll
	if raw, ok := params["type"]; ok && raw != "" && raw != string(catalog.TypeFilterAll) {
		if !models.StationType(raw).IsValid() {
			return api.Error("Unknown station type filter", http.StatusBadRequest)
		}
		typeFilter = catalog.TypeFilter(raw)
	}

	h.catalog.SetSearchTerm(params["search"])
	h.catalog.SetTypeFilter(typeFilter)

	stations, err := h.catalog.Displayed(ctx)
	if err != nil {
		return api.Error("Error listing stations", http.StatusInternalServerError)
	}
	return api.Success(api.NewStationsResponse(stations))
}

func (h *StationsHandler) handleCreate(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	var form validate.StationForm
	if err := json.Unmarshal([]byte(request.Body), &form); err != nil {
		return api.Error("Malformed request body", http.StatusBadRequest)
	}

	draft, errs := form.Validate()
	if errs != nil {
		return api.ValidationFailed(errs)
	}

	created, err := h.repo.Create(ctx, *draft)
	if err != nil {
		log.Error().Err(err).Msg("Creating station failed")
		return api.Error("Failed to add station", http.StatusInternalServerError)
	}

	h.catalog.Invalidate()
	return api.Success(api.NewStationResponse(*created))
}

func (h *StationsHandler) handleUpdate(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	stationID, ok := request.QueryStringParameters["stationId"]
	if !ok || stationID == "" {
		return api.Error("stationId is required", http.StatusBadRequest)
	}

	var form validate.PatchForm
	if err := json.Unmarshal([]byte(request.Body), &form); err != nil {
		return api.Error("Malformed request body", http.StatusBadRequest)
	}

	patch, errs := form.Validate()
	if errs != nil {
		return api.ValidationFailed(errs)
	}

	if err := h.repo.Update(ctx, stationID, patch); err != nil {
		log.Error().Err(err).Str("station_id", stationID).Msg("Updating station failed")
		return api.Error("Failed to update station", http.StatusInternalServerError)
	}

	h.catalog.Invalidate()
	return api.Success(api.NewMessageResponse("Station updated"))
}

func (h *StationsHandler) handleDelete(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	stationID, ok := request.QueryStringParameters["stationId"]
	if !ok || stationID == "" {
		return api.Error("stationId is required", http.StatusBadRequest)
	}

	if err := h.repo.Delete(ctx, stationID); err != nil {
		log.Error().Err(err).Str("station_id", stationID).Msg("Deleting station failed")
		return api.Error("Failed to delete station", http.StatusInternalServerError)
	}

	h.catalog.Invalidate()
	h.catalog.ClearSelectionIf(stationID)
	return api.Success(api.NewMessageResponse("Station deleted"))
}
