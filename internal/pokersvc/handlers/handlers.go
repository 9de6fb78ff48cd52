package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strconv"

	"github.com/unipoker/poker-services/internal/apperr"
	"github.com/unipoker/poker-services/internal/pokersvc/service"

	"github.com/go-chi/chi"
	"github.com/go-chi/jwtauth"
	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	tokenAuth *jwtauth.JWTAuth
	validate  *validator.Validate

	users        *service.UserService
	games        *service.GameService
	joinRequests *service.JoinRequestService
	ledger       *service.LedgerService
	stats        *service.StatsService
	chat         *service.ChatService
}

type Response struct {
	Message string      `json:"message"`
	Code    int         `json:"code"`
	Data    interface{} `json:"data"`
	Error   string      `json:"error"`
}

func NewHandler(
	users *service.UserService,
	games *service.GameService,
	joinRequests *service.JoinRequestService,
	ledger *service.LedgerService,
	stats *service.StatsService,
	chat *service.ChatService,
) *Handler {
	return &Handler{
		validate:     validator.New(),
		users:        users,
		games:        games,
		joinRequests: joinRequests,
		ledger:       ledger,
		stats:        stats,
		chat:         chat,
	}
}

func (h *Handler) CreateResponse(w http.ResponseWriter, rsp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rsp.Code)

	json.NewEncoder(w).Encode(rsp)
}

// CreateError maps a service error onto the response envelope. Errors
// outside the taxonomy are logged and replaced with a generic message.
func (h *Handler) CreateError(w http.ResponseWriter, err error) {
	if apperr.KindOf(err) == apperr.Unhandled {
		log.Errorf("unhandled error: %v", err)
	}

	h.CreateResponse(w, Response{
		Code:  apperr.HTTPStatus(err),
		Error: apperr.Message(err),
	})
}

// decodeAndValidate parses the JSON body into v and runs struct validation,
// reporting only the first validation issue.
func (h *Handler) decodeAndValidate(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperr.Validationf("invalid request body")
	}

	if err := h.validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return apperr.Validationf("invalid value for field '%s'", verrs[0].Field())
		}
		return apperr.Validationf("invalid request")
	}
	return nil
}

// currentUserID pulls the authenticated user id out of the verified JWT.
func currentUserID(r *http.Request) (int64, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return 0, apperr.Wrap(apperr.Auth, "missing or invalid session", err)
	}

	switch id := claims["user_id"].(type) {
	case float64:
		return int64(id), nil
	case int64:
		return id, nil
	case json.Number:
		v, err := id.Int64()
		if err != nil {
			return 0, apperr.New(apperr.Auth, "malformed session claims")
		}
		return v, nil
	default:
		return 0, apperr.New(apperr.Auth, "malformed session claims")
	}
}

func urlParamInt64(r *http.Request, name string) (int64, error) {
	v, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		return 0, apperr.Validationf("invalid %s", name)
	}
	return v, nil
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	rsp := Response{
		Message: "poker service is running at port " + os.Getenv("POKER_SERVICE_PORT"),
		Code:    200,
		Data:    nil,
	}
	json.NewEncoder(w).Encode(rsp)
}
