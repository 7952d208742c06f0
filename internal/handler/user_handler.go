// Package handler provides the HTTP API of the Hijri users service.
package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/prn-tf/hijri-users/internal/domain"
	"github.com/prn-tf/hijri-users/internal/hijri"
	"github.com/prn-tf/hijri-users/internal/service"
)

// maxBodyBytes bounds POST /users payloads.
const maxBodyBytes = 1 << 16

// UserHandler serves the /users and /convert endpoints.
type UserHandler struct {
	userService *service.UserService
	logger      zerolog.Logger
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService *service.UserService, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger.With().Str("handler", "user").Logger(),
	}
}

// RegisterRoutes registers user routes.
func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Route("/users", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/roster", h.handleRoster)
		r.Get("/{id}", h.handleGet)
		r.Delete("/{id}", h.handleDelete)
	})
	r.Get("/convert/{date}", h.handleConvert)
}

// UserResponse is the JSON form of a user. Gregorian is empty when the
// stored birth date does not convert.
type UserResponse struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	BirthDate hijri.Date `json:"birth_date"`
	Gregorian string     `json:"birth_date_gregorian,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func newUserResponse(u *domain.User) UserResponse {
	resp := UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		BirthDate: u.BirthDate,
		CreatedAt: u.CreatedAt,
	}
	if g, err := u.BirthDateGregorian(); err == nil {
		resp.Gregorian = hijri.FormatISO(g)
	}
	return resp
}

// ListUsersResponse is the body of GET /users.
type ListUsersResponse struct {
	Users  []UserResponse `json:"users"`
	Total  int64          `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// CreateUserRequest is the body of POST /users.
type CreateUserRequest struct {
	Name      string `json:"name"`
	BirthDate string `json:"birth_date"`
}

// ConvertResponse is the body of GET /convert/{date}.
type ConvertResponse struct {
	Hijri     hijri.Date `json:"hijri"`
	Gregorian string     `json:"gregorian"`
}

func (h *UserHandler) handleList(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid limit")
		return
	}
	offset, err := queryInt(r, "offset")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid offset")
		return
	}

	out, err := h.userService.List(r.Context(), service.ListUsersInput{Limit: limit, Offset: offset})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := ListUsersResponse{
		Users:  make([]UserResponse, 0, len(out.Users)),
		Total:  out.TotalCount,
		Limit:  limit,
		Offset: offset,
	}
	for _, u := range out.Users {
		resp.Users = append(resp.Users, newUserResponse(u))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *UserHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	out, err := h.userService.Register(r.Context(), service.RegisterUserInput{
		Name:      req.Name,
		BirthDate: req.BirthDate,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Location", "/users/"+strconv.FormatInt(out.User.ID, 10))
	writeJSON(w, http.StatusCreated, newUserResponse(out.User))
}

func (h *UserHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	user, err := h.userService.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newUserResponse(user))
}

func (h *UserHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.userService.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleRoster writes one "name, YYYY-MM-DD" line per convertible user.
func (h *UserHandler) handleRoster(w http.ResponseWriter, r *http.Request) {
	out, err := h.userService.Roster(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	var b strings.Builder
	for _, e := range out.Entries {
		b.WriteString(e.Line())
		b.WriteByte('\n')
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Skipped-Users", strconv.Itoa(len(out.Skipped)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(b.String()))
}

func (h *UserHandler) handleConvert(w http.ResponseWriter, r *http.Request) {
	out, err := h.userService.Convert(chi.URLParam(r, "date"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ConvertResponse{
		Hijri:     out.Hijri,
		Gregorian: hijri.FormatISO(out.Gregorian),
	})
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, r, http.StatusBadRequest, "invalid user id")
		return 0, false
	}
	return id, true
}

func queryInt(r *http.Request, name string) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}
