// Command wolio-devserver runs an in-memory fake of the Wolio backend for
// local SDK development. Accounts live only for the process lifetime; any
// OTP value of "000000" is accepted.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const devOTP = "000000"

var signingKey = []byte("wolio-devserver-not-a-secret")

type account struct {
	ID       string
	Name     string
	Email    string
	Password string
	Role     string
	Verified bool
}

type server struct {
	mu       sync.Mutex
	accounts map[string]*account
	revoked  map[string]bool
}

func main() {
	addr := flag.String("addr", ":8089", "listen address")
	flag.Parse()

	s := &server{
		accounts: map[string]*account{},
		revoked:  map[string]bool{},
	}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", s.login)
		r.Post("/signup", s.signup)
		r.Post("/verify-email", s.verifyEmail)
		r.Post("/logout", s.logout)
		r.Post("/forgot-password", s.forgotPassword)
		r.Post("/reset-password", s.resetPassword)
	})
	r.Get("/dashboard", s.document("dashboard"))
	r.Get("/library", s.document("library"))
	r.Get("/explore", s.document("explore"))
	r.Get("/profile", s.profile)
	r.Put("/profile", s.updateProfile)

	log.Printf("wolio-devserver listening on %s", *addr)
	log.Fatal(http.ListenAndServe(*addr, r))
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{"code": code, "message": message})
}

func (s *server) issueToken(acc *account) (string, error) {
	claims := jwt.MapClaims{
		"sub":   acc.ID,
		"email": acc.Email,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(signingKey)
}

func (s *server) authResponse(w http.ResponseWriter, acc *account) {
	tok, err := s.issueToken(acc)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "token_error", "could not issue token")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"token": tok,
		"user": map[string]any{
			"id":    acc.ID,
			"name":  acc.Name,
			"email": acc.Email,
			"role":  acc.Role,
		},
		"is_new": !acc.Verified,
	})
}

func (s *server) bearerAccount(r *http.Request) *account {
	header := r.Header.Get("Authorization")
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || raw == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.revoked[raw] {
		return nil
	}

	claims := jwt.MapClaims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return signingKey, nil
	})
	if err != nil || !tok.Valid {
		return nil
	}
	email, _ := claims["email"].(string)
	return s.accounts[email]
}

func (s *server) login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}

	s.mu.Lock()
	acc := s.accounts[body.Email]
	s.mu.Unlock()

	if acc == nil || acc.Password != body.Password {
		writeError(w, http.StatusUnauthorized, "invalid_credentials", "email or password is incorrect")
		return
	}
	if !acc.Verified {
		writeError(w, http.StatusForbidden, "unverified", "verify your email first")
		return
	}
	s.authResponse(w, acc)
}

func (s *server) signup(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}

	email, _ := body["email"].(string)
	password, _ := body["password"].(string)
	name, _ := body["name"].(string)
	role, _ := body["role"].(string)
	if email == "" || password == "" {
		writeError(w, http.StatusBadRequest, "missing_fields", "email and password are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[email]; exists {
		writeError(w, http.StatusConflict, "duplicate", "account already exists")
		return
	}
	s.accounts[email] = &account{
		ID:       uuid.NewString(),
		Name:     name,
		Email:    email,
		Password: password,
		Role:     role,
	}
	writeJSON(w, http.StatusCreated, map[string]string{
		"message": "verification code sent, use " + devOTP,
	})
}

func (s *server) verifyEmail(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}

	s.mu.Lock()
	acc := s.accounts[body.Email]
	s.mu.Unlock()

	if acc == nil || body.OTP != devOTP {
		writeError(w, http.StatusUnauthorized, "invalid_otp", "verification code is incorrect")
		return
	}
	acc.Verified = true
	s.authResponse(w, acc)
}

func (s *server) logout(w http.ResponseWriter, r *http.Request) {
	header := r.Header.Get("Authorization")
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || raw == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return
	}

	s.mu.Lock()
	s.revoked[raw] = true
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{"message": "signed out"})
}

func (s *server) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}
	// Same answer whether or not the account exists.
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "if the account exists, a reset code was sent, use " + devOTP,
	})
}

func (s *server) resetPassword(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email              string `json:"email"`
		OTP                string `json:"otp"`
		NewPassword        string `json:"new_password"`
		ConfirmNewPassword string `json:"confirm_new_password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}
	if body.NewPassword != body.ConfirmNewPassword {
		writeError(w, http.StatusBadRequest, "password_mismatch", "passwords do not match")
		return
	}

	s.mu.Lock()
	acc := s.accounts[body.Email]
	s.mu.Unlock()

	if acc == nil || body.OTP != devOTP {
		writeError(w, http.StatusUnauthorized, "invalid_otp", "reset code is incorrect")
		return
	}
	acc.Password = body.NewPassword
	writeJSON(w, http.StatusOK, map[string]string{"message": "password updated"})
}

func (s *server) document(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		acc := s.bearerAccount(r)
		if acc == nil {
			writeError(w, http.StatusUnauthorized, "unauthorized", "sign in first")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"screen": name,
			"items":  []any{},
			"user":   acc.Email,
		})
	}
}

func (s *server) profile(w http.ResponseWriter, r *http.Request) {
	acc := s.bearerAccount(r)
	if acc == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized", "sign in first")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id":    acc.ID,
		"name":  acc.Name,
		"email": acc.Email,
		"role":  acc.Role,
	})
}

func (s *server) updateProfile(w http.ResponseWriter, r *http.Request) {
	acc := s.bearerAccount(r)
	if acc == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized", "sign in first")
		return
	}

	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}
	if name, ok := body["name"].(string); ok && name != "" {
		acc.Name = name
	}
	s.profile(w, r)
}
