package users

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"cat-health-api/internal/httpx"
)

var validate = validator.New()

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/register", registerHandler(svc))
	r.Post("/login", loginHandler(svc))
}

type registerRequest struct {
	Name     string `json:"name" validate:"required,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

func registerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.ErrorWith(w, http.StatusBadRequest, "invalid json", err)
			return
		}
		if err := validate.Struct(req); err != nil {
			httpx.ErrorWith(w, http.StatusBadRequest, "name, email and password are required", err)
			return
		}

		u, token, err := svc.Register(r.Context(), RegisterInput{
			Name:     req.Name,
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrEmailTaken):
				httpx.Error(w, http.StatusBadRequest, ErrEmailTaken.Error())
			case errors.Is(err, ErrInvalidInput):
				httpx.Error(w, http.StatusBadRequest, ErrInvalidInput.Error())
			default:
				httpx.ErrorWith(w, http.StatusInternalServerError, "could not register user", err)
			}
			return
		}

		httpx.WriteJSON(w, http.StatusCreated, authResponse{
			Token: token,
			User:  toUserResponse(u),
		})
	}
}

func loginHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.ErrorWith(w, http.StatusBadRequest, "invalid json", err)
			return
		}
		if err := validate.Struct(req); err != nil {
			// Same message as a failed login: don't leak which field is off.
			httpx.Error(w, http.StatusUnauthorized, ErrInvalidCredentials.Error())
			return
		}

		u, token, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, ErrInvalidCredentials) {
				httpx.Error(w, http.StatusUnauthorized, ErrInvalidCredentials.Error())
				return
			}
			httpx.ErrorWith(w, http.StatusInternalServerError, "could not log in", err)
			return
		}

		httpx.WriteJSON(w, http.StatusOK, authResponse{
			Token: token,
			User:  toUserResponse(u),
		})
	}
}

func toUserResponse(u User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
