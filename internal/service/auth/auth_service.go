package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/safarpk/safarpk/internal/domain"
	"github.com/safarpk/safarpk/internal/kafka"
	"github.com/safarpk/safarpk/internal/repository"
)

const minPasswordLength = 6

type AuthUseCase interface {
	SignUp(ctx context.Context, input SignUpInput) (*Session, error)
	SignUpPartner(ctx context.Context, input SignUpInput) (*Session, error)
	SignIn(ctx context.Context, identifier, password string) (*Session, error)
	RequestPasswordReset(ctx context.Context, email string) error
	UpdatePassword(ctx context.Context, token, newPassword string) error
	Authenticate(ctx context.Context, token string) (domain.Actor, error)
	Me(ctx context.Context, actor domain.Actor) (*domain.User, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// ResetThrottle limits how often one address may request a reset.
type ResetThrottle interface {
	AcquireResetThrottle(ctx context.Context, email string, ttl time.Duration) (bool, error)
}

type SignUpInput struct {
	Email    string      `json:"email"`
	Phone    string      `json:"phone"`
	Password string      `json:"password"`
	Name     string      `json:"name"`
	Address  string      `json:"address"`
	Role     domain.Role `json:"role"`
}

type Session struct {
	Token     string      `json:"access_token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      domain.User `json:"user"`
}

type AuthService struct {
	creds              repository.CredentialRepository
	users              repository.UserRepository
	tokens             *TokenIssuer
	producer           Producer
	throttle           ResetThrottle
	throttleWindow     time.Duration
	notificationsTopic string
	resetURL           string
}

type AuthServiceOption func(*AuthService)

func WithNotificationsTopic(topic string) AuthServiceOption {
	return func(s *AuthService) {
		s.notificationsTopic = topic
	}
}

func WithResetThrottle(throttle ResetThrottle, window time.Duration) AuthServiceOption {
	return func(s *AuthService) {
		s.throttle = throttle
		s.throttleWindow = window
	}
}

func NewAuthService(
	creds repository.CredentialRepository,
	users repository.UserRepository,
	tokens *TokenIssuer,
	producer Producer,
	resetURL string,
	opts ...AuthServiceOption,
) *AuthService {
	s := &AuthService{
		creds:    creds,
		users:    users,
		tokens:   tokens,
		producer: producer,
		resetURL: resetURL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *AuthService) SignUp(ctx context.Context, input SignUpInput) (*Session, error) {
	input.Role = domain.RoleCustomer
	return s.register(ctx, input)
}

// SignUpPartner registers a driver or hotel-owner account.
func (s *AuthService) SignUpPartner(ctx context.Context, input SignUpInput) (*Session, error) {
	if !input.Role.Partner() {
		return nil, domain.NewValidationError("role", "must be driver or hotel")
	}
	return s.register(ctx, input)
}

func (s *AuthService) register(ctx context.Context, input SignUpInput) (*Session, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Phone = strings.TrimSpace(input.Phone)
	input.Name = strings.TrimSpace(input.Name)

	if input.Email == "" && input.Phone == "" {
		return nil, domain.NewValidationError("email", "email or phone is required")
	}
	if input.Email != "" {
		if _, err := mail.ParseAddress(input.Email); err != nil {
			return nil, domain.NewValidationError("email", "is not a valid address")
		}
	}
	if input.Name == "" {
		return nil, domain.NewValidationError("name", "is required")
	}
	if err := checkPassword(input.Password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		ID:      uuid.NewString(),
		Email:   input.Email,
		Name:    input.Name,
		Role:    input.Role,
		Phone:   input.Phone,
		Address: strings.TrimSpace(input.Address),
	}
	cred := domain.Credential{
		UserID:       user.ID,
		Email:        user.Email,
		Phone:        user.Phone,
		PasswordHash: string(hash),
	}
	if err := s.creds.CreateAccount(ctx, user, cred); err != nil {
		return nil, err
	}

	if user.Email != "" {
		s.notify(ctx, kafka.Notification{
			Type:    kafka.EventAccountCreated,
			Email:   user.Email,
			Subject: "Welcome to SafarPk",
			Body:    fmt.Sprintf("Hi %s, your %s account is ready.", user.Name, user.Role.Label()),
		})
	}

	return s.session(*user)
}

// SignIn accepts an email address or a phone number as identifier.
func (s *AuthService) SignIn(ctx context.Context, identifier, password string) (*Session, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, domain.ErrUnauthorized
	}

	cred, err := s.creds.FindByIdentifier(ctx, identifier)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.users.GetByID(ctx, cred.UserID)
	if err != nil {
		return nil, err
	}
	return s.session(*user)
}

// RequestPasswordReset mails a recovery link. Unknown addresses and
// throttled repeats succeed silently.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return domain.NewValidationError("email", "is not a valid address")
	}

	if s.throttle != nil {
		ok, err := s.throttle.AcquireResetThrottle(ctx, email, s.throttleWindow)
		if err != nil {
			log.Printf("WARNING: reset throttle unavailable for %s: %v", email, err)
		} else if !ok {
			return nil
		}
	}

	cred, err := s.creds.FindByIdentifier(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	user, err := s.users.GetByID(ctx, cred.UserID)
	if err != nil {
		return err
	}

	token, _, err := s.tokens.Issue(user.ID, user.Role, PurposeRecovery)
	if err != nil {
		return err
	}

	n := kafka.Notification{
		Type:    kafka.EventPasswordRecovery,
		Email:   email,
		Subject: "Reset your SafarPk password",
		Body:    "Follow the link to choose a new password.",
		Link:    RecoveryLink(s.resetURL, token),
	}
	if err := s.producer.Publish(ctx, s.notificationsTopic, user.ID, n); err != nil {
		return fmt.Errorf("failed to queue recovery email: %w", err)
	}
	return nil
}

// UpdatePassword accepts a session or a recovery token.
func (s *AuthService) UpdatePassword(ctx context.Context, token, newPassword string) error {
	if err := checkPassword(newPassword); err != nil {
		return err
	}
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.creds.UpdatePassword(ctx, claims.UserID, string(hash))
}

// Authenticate resolves a session token to the calling actor. Recovery
// tokens are only good for UpdatePassword.
func (s *AuthService) Authenticate(ctx context.Context, token string) (domain.Actor, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return domain.Actor{}, err
	}
	if claims.Purpose != PurposeSession {
		return domain.Actor{}, domain.ErrUnauthorized
	}
	return domain.Actor{UserID: claims.UserID, Role: claims.Role}, nil
}

func (s *AuthService) Me(ctx context.Context, actor domain.Actor) (*domain.User, error) {
	if actor.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	return s.users.GetByID(ctx, actor.UserID)
}

func (s *AuthService) session(user domain.User) (*Session, error) {
	token, expiresAt, err := s.tokens.Issue(user.ID, user.Role, PurposeSession)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

func (s *AuthService) notify(ctx context.Context, n kafka.Notification) {
	if err := s.producer.Publish(ctx, s.notificationsTopic, n.Email, n); err != nil {
		log.Printf("WARNING: failed to publish %s notification: %v", n.Type, err)
	}
}

func checkPassword(password string) error {
	if len(password) < minPasswordLength {
		return domain.NewValidationError("password", fmt.Sprintf("must be at least %d characters", minPasswordLength))
	}
	return nil
}

var _ AuthUseCase = (*AuthService)(nil)
