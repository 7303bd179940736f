package fakeapi

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-task-client/internal/app"
	"github.com/MKhiriev/go-task-client/internal/utils"
	"github.com/MKhiriev/go-task-client/models"
	"golang.org/x/crypto/bcrypt"
)

// loginUser is the currentUser shape of the login and refresh responses.
func loginUser(u models.User) *models.User {
	role := models.RoleUser
	if len(u.Roles) > 0 {
		role = u.Roles[0]
	}
	return &models.User{
		UserID:           u.UserID,
		Email:            u.Email,
		Name:             u.FullName,
		Role:             role,
		Gender:           u.Gender,
		Contact:          u.Contact,
		ProfileImagePath: u.ProfileImagePath,
	}
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if !decode(w, r, &creds) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acc := s.accountByEmailLocked(creds.Email)
	if acc == nil || bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(creds.Password)) != nil {
		utils.WriteError(w, app.MsgInvalidEmailOrPassword, http.StatusUnauthorized)
		return
	}
	if !acc.verified {
		utils.WriteError(w, app.MsgAccountNotVerified, http.StatusForbidden)
		return
	}

	session, err := s.issueLocked(acc.user.UserID, s.accessTTL)
	if err != nil {
		utils.WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	_, _ = utils.WriteJSON(w, models.AuthResponse{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		TokenType:    "Bearer",
		CurrentUser:  loginUser(acc.user),
	}, http.StatusOK)
}

// refresh rotates the refresh token: the presented one is invalidated.
func (s *Server) refresh(w http.ResponseWriter, r *http.Request) {
	var req models.RefreshRequest
	if !decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	s.refreshCalls++
	delay, status := s.refreshDelay, s.refreshStatus
	s.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	if status != 0 {
		utils.WriteError(w, http.StatusText(status), status)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	userID, ok := s.refreshTokens[req.RefreshToken]
	if !ok {
		utils.WriteError(w, app.MsgInvalidRefreshToken, http.StatusUnauthorized)
		return
	}
	delete(s.refreshTokens, req.RefreshToken)

	session, err := s.issueLocked(userID, s.accessTTL)
	if err != nil {
		utils.WriteError(w, err.Error(), http.StatusUnauthorized)
		return
	}

	_, _ = utils.WriteJSON(w, models.AuthResponse{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		TokenType:    "Bearer",
	}, http.StatusOK)
}

func (s *Server) signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		utils.WriteError(w, app.MsgCredentialsRequired, http.StatusBadRequest)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.MinCost)
	if err != nil {
		utils.WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.accountByEmailLocked(req.Email) != nil {
		utils.WriteError(w, app.MsgEmailAlreadyExists, http.StatusConflict)
		return
	}

	s.nextUserID++
	user := models.User{
		UserID:   s.nextUserID,
		Email:    req.Email,
		Username: req.Username,
		FullName: req.FullName,
		Contact:  req.Contact,
		Gender:   req.Gender,
		Roles:    []string{models.RoleUser},
	}
	s.accounts[user.UserID] = &account{
		user:              user,
		passwordHash:      hash,
		verificationToken: s.ids.Generate()[:8],
	}

	writeEnvelope(w, user, http.StatusCreated)
}

func (s *Server) verifyToken(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyTokenRequest
	if !decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acc := s.accountByEmailLocked(req.Email)
	if acc == nil {
		utils.WriteError(w, app.MsgUserNotFound, http.StatusNotFound)
		return
	}
	if acc.verified || acc.verificationToken == "" || acc.verificationToken != req.Token {
		utils.WriteError(w, app.MsgInvalidVerificationToken, http.StatusBadRequest)
		return
	}

	acc.verified = true
	acc.verificationToken = ""
	writeEnvelope(w, "Account verified", http.StatusOK)
}

func (s *Server) resendToken(w http.ResponseWriter, r *http.Request) {
	var req models.ResendTokenRequest
	if !decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acc := s.accountByEmailLocked(req.Email)
	if acc == nil {
		utils.WriteError(w, app.MsgUserNotFound, http.StatusNotFound)
		return
	}
	if acc.verified {
		utils.WriteError(w, app.MsgAccountAlreadyVerified, http.StatusBadRequest)
		return
	}

	acc.verificationToken = s.ids.Generate()[:8]
	writeEnvelope(w, "Verification token sent", http.StatusOK)
}

func (s *Server) currentUser(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	s.mu.Lock()
	user := s.accounts[userID].user
	s.mu.Unlock()

	writeEnvelope(w, user, http.StatusOK)
}

func (s *Server) changePassword(w http.ResponseWriter, r *http.Request) {
	var req models.ChangePasswordRequest
	if !decode(w, r, &req) {
		return
	}
	userID, _ := utils.GetUserIDFromContext(r.Context())

	s.mu.Lock()
	defer s.mu.Unlock()

	acc := s.accounts[userID]
	if bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(req.CurrentPassword)) != nil {
		utils.WriteError(w, app.MsgCurrentPasswordIncorrect, http.StatusBadRequest)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.MinCost)
	if err != nil {
		utils.WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	acc.passwordHash = hash
	acc.user.FirstLogin = false
	writeEnvelope(w, "Password updated", http.StatusOK)
}

func (s *Server) notificationPreferences(w http.ResponseWriter, r *http.Request) {
	var prefs models.NotificationPreferences
	if !decode(w, r, &prefs) {
		return
	}
	userID, _ := utils.GetUserIDFromContext(r.Context())

	s.mu.Lock()
	s.accounts[userID].notifications = prefs
	s.mu.Unlock()

	writeEnvelope(w, prefs, http.StatusOK)
}

func (s *Server) privacyPreferences(w http.ResponseWriter, r *http.Request) {
	var prefs models.PrivacyPreferences
	if !decode(w, r, &prefs) {
		return
	}
	userID, _ := utils.GetUserIDFromContext(r.Context())

	s.mu.Lock()
	s.accounts[userID].privacy = prefs
	s.mu.Unlock()

	writeEnvelope(w, prefs, http.StatusOK)
}
