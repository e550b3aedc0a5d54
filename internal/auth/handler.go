package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/go-playground/validator/v10"

	"github.com/sunvolt-erp/sunvolt/internal/platform/httpx"
	"github.com/sunvolt-erp/sunvolt/internal/shared"
)

type Handler struct {
	logger   *slog.Logger
	service  *Service
	tokens   *shared.TokenManager
	validate *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service, tokens *shared.TokenManager) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		tokens:   tokens,
		validate: validator.New(),
	}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/login", h.Login)

	// The mobile client fires this while the user is still typing, so it is
	// throttled per IP on top of its client-side debounce.
	r.Group(func(r chi.Router) {
		r.Use(httprate.Limit(10, 10*time.Second, httprate.WithKeyFuncs(httprate.KeyByIP)))
		r.Get("/phone-exists", h.PhoneExists)
	})

	r.Group(func(r chi.Router) {
		r.Use(RequireAuth(h.tokens))
		r.Post("/logout", h.Logout)
		r.Get("/me", h.Me)
		r.Put("/me/avatar", h.UpdateAvatar)
	})
}

type loginRequest struct {
	Phone    string `json:"phone" validate:"required,min=10,numeric"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
	Agent     *Agent `json:"agent"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "số điện thoại hoặc mật khẩu không hợp lệ")
		return
	}

	agent, token, err := h.service.Login(r.Context(), req.Phone, req.Password)
	if err != nil {
		if errors.Is(err, shared.ErrInvalidCredentials) {
			httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "sai số điện thoại hoặc mật khẩu")
			return
		}
		h.logger.Error("login", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}

	httpx.JSON(w, http.StatusOK, loginResponse{
		Token:     token,
		ExpiresIn: int64(h.tokens.TTL().Seconds()),
		Agent:     agent,
	})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	identity := shared.IdentityFromContext(r.Context())
	if err := h.service.Logout(r.Context(), identity.Token); err != nil {
		h.logger.Error("logout", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	identity := shared.IdentityFromContext(r.Context())
	agent, err := h.service.Me(r.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			httpx.Problem(w, http.StatusNotFound, "Not Found", "agent not found")
			return
		}
		h.logger.Error("me", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, agent)
}

type avatarRequest struct {
	AvatarURL string `json:"avatar_url" validate:"required,url"`
}

func (h *Handler) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	identity := shared.IdentityFromContext(r.Context())

	var req avatarRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "đường dẫn ảnh không hợp lệ")
		return
	}

	agent, err := h.service.UpdateAvatar(r.Context(), identity.UserID, req.AvatarURL)
	if err != nil {
		h.logger.Error("update avatar", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, agent)
}

func (h *Handler) PhoneExists(w http.ResponseWriter, r *http.Request) {
	phone := r.URL.Query().Get("phone")
	if len(phone) < 10 {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "số điện thoại phải có ít nhất 10 số")
		return
	}

	exists, err := h.service.PhoneExists(r.Context(), phone)
	if err != nil {
		h.logger.Error("phone exists", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]bool{"exists": exists})
}
