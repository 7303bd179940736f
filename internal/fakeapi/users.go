package fakeapi

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-task-client/internal/app"
	"github.com/MKhiriev/go-task-client/internal/utils"
	"github.com/MKhiriev/go-task-client/models"
)

var roleCatalogue = []models.Role{
	{ID: 1, Name: models.RoleUser},
	{ID: 2, Name: models.RoleAdmin},
}

func (s *Server) roles(w http.ResponseWriter, r *http.Request) {
	writeEnvelope(w, roleCatalogue, http.StatusOK)
}

// canAccessUser allows admins and the user itself.
func (s *Server) canAccessUser(w http.ResponseWriter, r *http.Request, userID int64) bool {
	self, _ := utils.GetUserIDFromContext(r.Context())
	if self == userID || s.isAdmin(r.Context()) {
		return true
	}
	utils.WriteError(w, app.MsgAccessDenied, http.StatusForbidden)
	return false
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userID")
	if !ok || !s.canAccessUser(w, r, userID) {
		return
	}

	s.mu.Lock()
	acc, found := s.accounts[userID]
	s.mu.Unlock()

	if !found {
		utils.WriteError(w, app.MsgUserNotFound, http.StatusNotFound)
		return
	}
	writeEnvelope(w, acc.user, http.StatusOK)
}

func (s *Server) updateUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userID")
	if !ok || !s.canAccessUser(w, r, userID) {
		return
	}
	var req models.UpdateUserRequest
	if !decode(w, r, &req) {
		return
	}
	admin := s.isAdmin(r.Context())

	s.mu.Lock()
	defer s.mu.Unlock()

	acc, found := s.accounts[userID]
	if !found {
		utils.WriteError(w, app.MsgUserNotFound, http.StatusNotFound)
		return
	}
	if req.Email != "" && req.Email != acc.user.Email {
		if s.accountByEmailLocked(req.Email) != nil {
			utils.WriteError(w, app.MsgEmailAlreadyExists, http.StatusConflict)
			return
		}
		acc.user.Email = req.Email
	}
	if req.FullName != "" {
		acc.user.FullName = req.FullName
	}
	if req.Contact != "" {
		acc.user.Contact = req.Contact
	}
	if req.Gender != "" {
		acc.user.Gender = req.Gender
	}
	if req.Role != "" {
		if !admin {
			utils.WriteError(w, app.MsgAccessDenied, http.StatusForbidden)
			return
		}
		acc.user.Roles = []string{req.Role}
	}

	writeEnvelope(w, acc.user, http.StatusOK)
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userID")
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, found := s.accounts[userID]; !found {
		utils.WriteError(w, app.MsgUserNotFound, http.StatusNotFound)
		return
	}
	delete(s.accounts, userID)
	for token, owner := range s.refreshTokens {
		if owner == userID {
			delete(s.refreshTokens, token)
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	search := strings.ToLower(q.Get("search"))

	s.mu.Lock()
	users := make([]models.User, 0, len(s.accounts))
	for _, acc := range s.accounts {
		u := acc.user
		if search != "" &&
			!strings.Contains(strings.ToLower(u.FullName), search) &&
			!strings.Contains(strings.ToLower(u.Email), search) {
			continue
		}
		users = append(users, u)
	}
	s.mu.Unlock()

	field, desc := parseSort(q.Get("sort"))
	slices.SortStableFunc(users, func(a, b models.User) int {
		var c int
		switch field {
		case "email":
			c = strings.Compare(a.Email, b.Email)
		case "fullName":
			c = strings.Compare(a.FullName, b.FullName)
		default:
			c = compareInt(a.UserID, b.UserID)
		}
		if desc {
			return -c
		}
		return c
	})

	writePage(w, users, q.Get("page"), q.Get("size"))
}

func parseSort(raw string) (field string, desc bool) {
	field, dir, _ := strings.Cut(raw, ",")
	return field, strings.EqualFold(dir, "desc")
}

func compareInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// writePage answers one zero-based page of items with pagination fields.
func writePage[T any](w http.ResponseWriter, items []T, pageParam, sizeParam string) {
	page, _ := strconv.Atoi(pageParam)
	size, _ := strconv.Atoi(sizeParam)
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = 10
	}

	total := len(items)
	from := min(page*size, total)
	to := min(from+size, total)

	_, _ = utils.WriteJSON(w, models.Envelope[[]T]{
		Status:        "OK",
		Payload:       items[from:to],
		TotalPages:    (total + size - 1) / size,
		TotalElements: int64(total),
		CurrentPage:   page,
		PageSize:      size,
	}, http.StatusOK)
}
