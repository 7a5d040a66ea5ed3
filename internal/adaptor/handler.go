package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"ecommerce-demo/internal/usecase"
	"ecommerce-demo/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Auth       *AuthHandler
	OTP        *OTPHandler
	User       *UserHandler
	Product    *ProductHandler
	Cart       *CartHandler
	Permission *PermissionHandler
	Mail       *MailHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(service.Auth, log),
		OTP:        NewOTPHandler(service.Auth, log),
		User:       NewUserHandler(service.User, log),
		Product:    NewProductHandler(service.Product, log),
		Cart:       NewCartHandler(service.Cart, log),
		Permission: NewPermissionHandler(service.Permission, log),
		Mail:       NewMailHandler(service.Mail, log),
	}
}

// decodeJSON writes the 400 itself when the body is not valid JSON
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}
	return true
}

// handleServiceError maps usecase errors to HTTP responses
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrValidation):
		log.Warn(operation+" validation failed", zap.Error(err))
		msg := strings.TrimPrefix(err.Error(), usecase.ErrValidation.Error()+": ")
		utils.ResponseBadRequest(w, msg, nil)

	case errors.Is(err, usecase.ErrOTPExpired):
		log.Warn(operation+" failed - OTP expired", zap.Error(err))
		utils.ResponseBadRequest(w, "OTP expired", nil)

	case errors.Is(err, usecase.ErrOTPMismatch):
		log.Warn(operation+" failed - OTP mismatch", zap.Error(err))
		utils.ResponseBadRequest(w, "OTP is incorrect", nil)

	case errors.Is(err, usecase.ErrAlreadyExists):
		log.Warn(operation+" failed - already exists", zap.Error(err))
		utils.ResponseBadRequest(w, "User already exists", nil)

	case errors.Is(err, usecase.ErrInvalidCredentials):
		log.Warn(operation+" failed - wrong password", zap.Error(err))
		utils.ResponseBadRequest(w, "Password is incorrect", nil)

	case errors.Is(err, usecase.ErrInactive):
		log.Warn(operation+" failed - inactive user", zap.Error(err))
		utils.ResponseBadRequest(w, "User is inactive", nil)

	case errors.Is(err, usecase.ErrInvalidToken):
		log.Warn(operation+" failed - invalid token", zap.Error(err))
		utils.ResponseUnauthorized(w, "Token is invalid or expired")

	case errors.Is(err, usecase.ErrForbidden):
		utils.ResponseForbidden(w, "You do not have permission to perform this action")

	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, notFoundMessage(err))

	case errors.Is(err, usecase.ErrDeliveryFailed):
		log.Error(operation+" failed - delivery", zap.Error(err))
		utils.ResponseJSON(w, http.StatusBadGateway, utils.Response{Error: "Email delivery failed"})

	default:
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

func notFoundMessage(err error) string {
	switch {
	case errors.Is(err, usecase.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, usecase.ErrProductNotFound):
		return "Product not found"
	case errors.Is(err, usecase.ErrCartNotFound):
		return "Cart not found"
	case errors.Is(err, usecase.ErrGroupNotFound):
		return "Group not found"
	default:
		return "Not found"
	}
}

// pathID reads a positive integer path parameter, writing the 400 itself
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, ok := utils.ParseID(chi.URLParam(r, name))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid "+name, nil)
		return 0, false
	}
	return id, true
}
