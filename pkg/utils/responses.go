package utils

import (
	"encoding/json"
	"net/http"
)

// Response is the envelope every endpoint writes. Successful calls carry
// message, failed ones carry error.
type Response struct {
	Status  bool   `json:"status"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

// ResponseJSON writes any JSON body with the given status code
func ResponseJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}

func responseOK(w http.ResponseWriter, code int, message string, data any) {
	ResponseJSON(w, code, Response{Status: true, Message: message, Data: data})
}

func responseFail(w http.ResponseWriter, code int, message string, errors any) {
	ResponseJSON(w, code, Response{Status: false, Error: message, Errors: errors})
}

// ------------- Success responses -------------

// returns 200 OK
func ResponseSuccess(w http.ResponseWriter, message string, data any) {
	responseOK(w, http.StatusOK, message, data)
}

// returns 201 Created
func ResponseCreated(w http.ResponseWriter, message string, data any) {
	responseOK(w, http.StatusCreated, message, data)
}

// ------------- Error responses -------------

// returns 400 Bad Request
func ResponseBadRequest(w http.ResponseWriter, message string, errors any) {
	responseFail(w, http.StatusBadRequest, message, errors)
}

// returns 401 Unauthorized
func ResponseUnauthorized(w http.ResponseWriter, message string) {
	responseFail(w, http.StatusUnauthorized, message, nil)
}

// returns 403 Forbidden
func ResponseForbidden(w http.ResponseWriter, message string) {
	responseFail(w, http.StatusForbidden, message, nil)
}

// returns 404 Not Found
func ResponseNotFound(w http.ResponseWriter, message string) {
	responseFail(w, http.StatusNotFound, message, nil)
}

// returns 405 Method Not Allowed
func ResponseMethodNotAllowed(w http.ResponseWriter, message string) {
	responseFail(w, http.StatusMethodNotAllowed, message, nil)
}

// returns 500 Internal Server Error
func ResponseInternalError(w http.ResponseWriter, message string) {
	responseFail(w, http.StatusInternalServerError, message, nil)
}
