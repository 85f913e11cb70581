package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chargemap/backend-go/internal/models"
	"github.com/chargemap/backend-go/internal/validate"
)

func TestSuccess(t *testing.T) {
	response, err := Success(NewMessageResponse("Station updated"))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, response.StatusCode)
	assert.Equal(t, "application/json", response.Headers["Content-Type"])
	assert.Equal(t, "*", response.Headers["Access-Control-Allow-Origin"])

	var decoded MessageResponse
	require.NoError(t, json.Unmarshal([]byte(response.Body), &decoded))
	assert.Equal(t, "message", decoded.ResponseType)
	assert.Equal(t, "Station updated", decoded.Message)
}

func TestError(t *testing.T) {
	response, err := Error("Station not found", http.StatusNotFound)
	require.NoError(t, err)

	assert.Equal(t, http.StatusNotFound, response.StatusCode)

	var decoded ErrorResponse
	require.NoError(t, json.Unmarshal([]byte(response.Body), &decoded))
	assert.Equal(t, "error", decoded.ResponseType)
	assert.Equal(t, "Station not found", decoded.Error)
}

func TestValidationFailed(t *testing.T) {
	response, err := ValidationFailed(validate.Errors{
		"name":             "Station name must be at least 3 characters",
		"ports[0].powerKW": "Power must be positive",
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, response.StatusCode)

	var decoded ValidationErrorResponse
	require.NoError(t, json.Unmarshal([]byte(response.Body), &decoded))
	assert.Equal(t, "validation_error", decoded.ResponseType)
	assert.Equal(t, "Validation failed", decoded.Error)
	assert.Len(t, decoded.Fields, 2)
	assert.Contains(t, decoded.Fields, "ports[0].powerKW")
}

func TestNewFavoritesResponseOmitsUnresolvedStations(t *testing.T) {
	body, err := json.Marshal(NewFavoritesResponse([]string{"station-1"}, nil))
	require.NoError(t, err)
	assert.NotContains(t, string(body), `"stations"`)

	body, err = json.Marshal(NewFavoritesResponse([]string{"station-1"}, []models.Station{{ID: "station-1"}}))
	require.NoError(t, err)
	assert.Contains(t, string(body), `"stations"`)
}

func TestHeaderIsCaseInsensitive(t *testing.T) {
	request := events.APIGatewayProxyRequest{
		Headers: map[string]string{"authorization": "Bearer token-1"},
	}

	assert.Equal(t, "Bearer token-1", Header(request, "Authorization"))
	assert.Equal(t, "Bearer token-1", Header(request, "authorization"))
	assert.Equal(t, "", Header(request, "X-Missing"))
}
