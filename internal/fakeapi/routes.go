package fakeapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-task-client/internal/app"
	"github.com/MKhiriev/go-task-client/internal/utils"
	"github.com/MKhiriev/go-task-client/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

var (
	errUnknownUser = errors.New("unknown user")

	errEmptyAuthorizationHeader = errors.New("empty authorization header")
)

func (s *Server) routes() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(s.record)
	router.Use(s.forcedStatus)

	router.Route("/api", func(api chi.Router) {
		// routes without authorization
		api.Group(func(r chi.Router) {
			r.Post("/auth/login", s.login)
			r.Post("/auth/refresh", s.refresh)
			r.Post("/auth/verify-token", s.verifyToken)
			r.Post("/auth/resend-token", s.resendToken)
			r.Post("/users/auth/signup", s.signup)
		})

		api.Group(func(r chi.Router) {
			r.Use(s.auth)

			r.Get("/auth/current", s.currentUser)
			r.Put("/users/auth/update-password", s.changePassword)
			r.Put("/users/notifications/preferences", s.notificationPreferences)
			r.Put("/users/privacy/preferences", s.privacyPreferences)

			r.Get("/users/auth/roles", s.roles)
			r.Get("/users/auth/{userID}", s.getUser)
			r.Put("/users/auth/{userID}", s.updateUser)
			r.With(s.adminOnly).Delete("/users/auth/{userID}", s.deleteUser)
			r.With(s.adminOnly).Get("/users", s.listUsers)

			r.Get("/tasks", s.listTasks)
			r.Post("/tasks", s.createTask)
			r.Get("/tasks/{taskID}", s.getTask)
			r.Put("/tasks/{taskID}", s.updateTask)
			r.Patch("/tasks/{taskID}/status", s.updateTaskStatus)
			r.Delete("/tasks/{taskID}", s.deleteTask)
		})
	})

	return router
}

// record appends every request to the request log.
func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, _ := utils.ParseBearerToken(r.Header.Get("Authorization"))

		s.mu.Lock()
		s.requests = append(s.requests, RecordedRequest{
			Method:    r.Method,
			Path:      r.URL.Path,
			Token:     token,
			RequestID: r.Header.Get(utils.RequestIDHeader),
		})
		s.mu.Unlock()

		s.logger.Debug().Str("method", r.Method).Str("path", r.URL.Path).Msg("fakeapi request")
		next.ServeHTTP(w, r)
	})
}

func (s *Server) forcedStatus(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		status, ok := s.forced[r.Method+" "+r.URL.Path]
		s.mu.Unlock()

		if ok {
			utils.WriteError(w, http.StatusText(status), status)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// auth is an HTTP middleware that enforces JWT-based authentication and
// stores the authenticated user id in the request context under
// [utils.UserIDCtxKey].
func (s *Server) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			utils.WriteError(w, errEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			utils.WriteError(w, err.Error(), http.StatusUnauthorized)
			return
		}

		userID, err := utils.ValidateJWTToken(tokenString, s.signKey, tokenIssuer, s.clock.Now())
		if err != nil {
			utils.WriteError(w, app.MsgTokenIsExpiredOrInvalid, http.StatusUnauthorized)
			return
		}

		s.mu.Lock()
		_, exists := s.accounts[userID]
		s.mu.Unlock()
		if !exists {
			utils.WriteError(w, errUnknownUser.Error(), http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), utils.UserIDCtxKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) adminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.isAdmin(r.Context()) {
			utils.WriteError(w, app.MsgAccessDenied, http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) isAdmin(ctx context.Context) bool {
	userID, _ := utils.GetUserIDFromContext(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[userID]
	return ok && acc.user.IsAdmin()
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		utils.WriteError(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		utils.WriteError(w, app.MsgInvalidID, http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func writeEnvelope[T any](w http.ResponseWriter, payload T, status int) {
	_, _ = utils.WriteJSON(w, models.Envelope[T]{Status: "OK", Payload: payload}, status)
}
