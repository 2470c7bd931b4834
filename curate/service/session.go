package service

import (
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/wecurate/wecurate/curate"
	"github.com/wecurate/wecurate/curate/repository"
	"golang.org/x/crypto/bcrypt"
)

// SessionService defines the interface for the admin access gate and its
// cookie sessions.
type SessionService interface {
	// Authenticate checks a submitted secret against the configured admin
	// secret.
	Authenticate(secret string) error

	// GetCookie retrieves an existing session by name.
	GetCookie(r *http.Request, name string) (*sessions.Session, error)

	// NewCookie creates a new session with the given name.
	NewCookie(r *http.Request, name string) (*sessions.Session, error)

	// SaveCookie saves a session to the response.
	SaveCookie(r *http.Request, rw http.ResponseWriter, s *sessions.Session) error

	// DeleteCookie removes a session.
	DeleteCookie(r *http.Request, rw http.ResponseWriter, s *sessions.Session) error
}

// sessionService is the default implementation of SessionService. The admin
// secret is hashed at construction so the plaintext never sticks around.
type sessionService struct {
	repo       repository.SessionRepository
	secretHash []byte
}

// NewSessionService creates a new SessionService guarding mutations with the
// given shared secret. This is a demo gate, not a real credential system.
func NewSessionService(repo repository.SessionRepository, adminSecret string) (SessionService, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(adminSecret), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}
	return &sessionService{repo: repo, secretHash: hash}, nil
}

// Authenticate checks the submitted secret. No lockout or attempt tracking.
func (s *sessionService) Authenticate(secret string) error {
	err := bcrypt.CompareHashAndPassword(s.secretHash, []byte(secret))
	if err == bcrypt.ErrMismatchedHashAndPassword {
		return curate.ErrIncorrectSecret
	}
	return err
}

// GetCookie retrieves an existing session by name.
func (s *sessionService) GetCookie(r *http.Request, name string) (*sessions.Session, error) {
	return s.repo.Get(r, name)
}

// NewCookie creates a new session with the given name.
func (s *sessionService) NewCookie(r *http.Request, name string) (*sessions.Session, error) {
	return s.repo.New(r, name)
}

// SaveCookie saves a session to the response.
func (s *sessionService) SaveCookie(r *http.Request, rw http.ResponseWriter, s2 *sessions.Session) error {
	return s.repo.Save(r, rw, s2)
}

// DeleteCookie removes a session.
func (s *sessionService) DeleteCookie(r *http.Request, rw http.ResponseWriter, s2 *sessions.Session) error {
	return s.repo.Delete(r, rw, s2)
}
