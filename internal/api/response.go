package api

import (
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/chargemap/backend-go/internal/models"
	"github.com/chargemap/backend-go/internal/validate"
)

type APIResponse struct {
	ResponseType string `json:"responseType"`
}

type StationsResponse struct {
	APIResponse
	Stations []models.Station `json:"stations"`
}

type StationResponse struct {
	APIResponse
	Station models.Station `json:"station"`
}

type FavoritesResponse struct {
	APIResponse
	StationIDs []string         `json:"stationIds"`
	Stations   []models.Station `json:"stations,omitempty"`
}

// MessageResponse carries the transient notification text shown after a
// mutating action.
type MessageResponse struct {
	APIResponse
	Message string `json:"message"`
}

type ErrorResponse struct {
	APIResponse
	Error string `json:"error"`
}

type ValidationErrorResponse struct {
	APIResponse
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

func NewStationsResponse(stations []models.Station) *StationsResponse {
	return &StationsResponse{
		APIResponse: APIResponse{ResponseType: "stations"},
		Stations:    stations,
	}
}

func NewStationResponse(station models.Station) *StationResponse {
	return &StationResponse{
		APIResponse: APIResponse{ResponseType: "station"},
		Station:     station,
	}
}

func NewFavoritesResponse(ids []string, stations []models.Station) *FavoritesResponse {
	return &FavoritesResponse{
		APIResponse: APIResponse{ResponseType: "favorites"},
		StationIDs:  ids,
		Stations:    stations,
	}
}

func NewMessageResponse(message string) *MessageResponse {
	return &MessageResponse{
		APIResponse: APIResponse{ResponseType: "message"},
		Message:     message,
	}
}

func NewErrorResponse(message string) *ErrorResponse {
	return &ErrorResponse{
		APIResponse: APIResponse{ResponseType: "error"},
		Error:       message,
	}
}

// Response helpers
func Success(body interface{}) (events.APIGatewayProxyResponse, error) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return Error("Internal Server Error", http.StatusInternalServerError)
	}

	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers: map[string]string{
			"Content-Type":                "application/json",
			"Access-Control-Allow-Origin": "*",
		},
		Body: string(jsonBody),
	}, nil
}

func Error(message string, statusCode int) (events.APIGatewayProxyResponse, error) {
	body, _ := json.Marshal(NewErrorResponse(message))

	return events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Headers: map[string]string{
			"Content-Type":                "application/json",
			"Access-Control-Allow-Origin": "*",
		},
		Body: string(body),
	}, nil
}

// ValidationFailed renders a field-keyed error map with 400. Validation
// errors never reach the store; nothing was persisted.
func ValidationFailed(errs validate.Errors) (events.APIGatewayProxyResponse, error) {
	body, _ := json.Marshal(&ValidationErrorResponse{
		APIResponse: APIResponse{ResponseType: "validation_error"},
		Error:       "Validation failed",
		Fields:      errs,
	})

	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusBadRequest,
		Headers: map[string]string{
			"Content-Type":                "application/json",
			"Access-Control-Allow-Origin": "*",
		},
		Body: string(body),
	}, nil
}

// Header returns a request header by name, tolerating the lower-casing
// API Gateway applies.
func Header(request events.APIGatewayProxyRequest, name string) string {
	for key, value := range request.Headers {
		if http.CanonicalHeaderKey(key) == http.CanonicalHeaderKey(name) {
			return value
		}
	}
	return ""
}
