package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/safarpk/safarpk/internal/domain"
	"github.com/safarpk/safarpk/internal/kafka"
)

type MockCredentialRepository struct {
	mock.Mock
}

func (m *MockCredentialRepository) CreateAccount(ctx context.Context, user *domain.User, cred domain.Credential) error {
	return m.Called(ctx, user, cred).Error(0)
}

func (m *MockCredentialRepository) FindByIdentifier(ctx context.Context, identifier string) (*domain.Credential, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Credential), args.Error(1)
}

func (m *MockCredentialRepository) FindByUserID(ctx context.Context, userID string) (*domain.Credential, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Credential), args.Error(1)
}

func (m *MockCredentialRepository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	return m.Called(ctx, userID, passwordHash).Error(0)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUserRepository) CountByRole(ctx context.Context) (map[domain.Role]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.Role]int64), args.Error(1)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	return m.Called(ctx, topic, key, value).Error(0)
}

type MockThrottle struct {
	mock.Mock
}

func (m *MockThrottle) AcquireResetThrottle(ctx context.Context, email string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, email, ttl)
	return args.Bool(0), args.Error(1)
}

const topic = "notifications"

type fixture struct {
	svc      *AuthService
	creds    *MockCredentialRepository
	users    *MockUserRepository
	producer *MockProducer
	tokens   *TokenIssuer
}

func newFixture(opts ...AuthServiceOption) fixture {
	f := fixture{
		creds:    new(MockCredentialRepository),
		users:    new(MockUserRepository),
		producer: new(MockProducer),
		tokens:   NewTokenIssuer("test-secret", time.Hour, 10*time.Minute),
	}
	opts = append([]AuthServiceOption{WithNotificationsTopic(topic)}, opts...)
	f.svc = NewAuthService(f.creds, f.users, f.tokens, f.producer, "http://localhost:5173/reset-password", opts...)
	return f
}

func hash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestAuthService_SignUp_CreatesCustomer(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	f.creds.On("CreateAccount", ctx, mock.MatchedBy(func(u *domain.User) bool {
		return u.Role == domain.RoleCustomer && u.Email == "ali@example.com" && u.ID != ""
	}), mock.MatchedBy(func(c domain.Credential) bool {
		return bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte("secret1")) == nil
	})).Return(nil)
	f.producer.On("Publish", ctx, topic, "ali@example.com", mock.MatchedBy(func(n kafka.Notification) bool {
		return n.Type == kafka.EventAccountCreated
	})).Return(nil)

	session, err := f.svc.SignUp(ctx, SignUpInput{
		Email:    " Ali@Example.com ",
		Password: "secret1",
		Name:     "Ali",
		Role:     domain.RoleAdmin,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.RoleCustomer, session.User.Role)
	assert.NotEmpty(t, session.Token)

	actor, err := f.svc.Authenticate(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, actor.UserID)
	assert.Equal(t, domain.RoleCustomer, actor.Role)
	f.creds.AssertExpectations(t)
	f.producer.AssertExpectations(t)
}

func TestAuthService_SignUp_PhoneOnlySkipsWelcomeMail(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.creds.On("CreateAccount", ctx, mock.Anything, mock.Anything).Return(nil)

	session, err := f.svc.SignUp(ctx, SignUpInput{Phone: "+923001234567", Password: "secret1", Name: "Sana"})

	require.NoError(t, err)
	assert.Equal(t, "+923001234567", session.User.Phone)
	f.producer.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthService_SignUp_Validation(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name  string
		input SignUpInput
	}{
		{name: "no identifier", input: SignUpInput{Password: "secret1", Name: "A"}},
		{name: "bad email", input: SignUpInput{Email: "not-an-email", Password: "secret1", Name: "A"}},
		{name: "short password", input: SignUpInput{Email: "a@b.pk", Password: "12345", Name: "A"}},
		{name: "no name", input: SignUpInput{Email: "a@b.pk", Password: "secret1"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			_, err := f.svc.SignUp(ctx, tc.input)
			assert.True(t, domain.IsValidation(err))
			f.creds.AssertNotCalled(t, "CreateAccount", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestAuthService_SignUpPartner_RequiresPartnerRole(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	_, err := f.svc.SignUpPartner(ctx, SignUpInput{Email: "d@b.pk", Password: "secret1", Name: "D", Role: domain.RoleCustomer})
	assert.True(t, domain.IsValidation(err))

	f.creds.On("CreateAccount", ctx, mock.Anything, mock.Anything).Return(nil)
	f.producer.On("Publish", ctx, topic, "d@b.pk", mock.Anything).Return(errors.New("kafka down"))

	session, err := f.svc.SignUpPartner(ctx, SignUpInput{Email: "d@b.pk", Password: "secret1", Name: "D", Role: domain.RoleDriver})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleDriver, session.User.Role)
}

func TestAuthService_SignUp_Duplicate(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.creds.On("CreateAccount", ctx, mock.Anything, mock.Anything).Return(domain.ErrConflict)

	_, err := f.svc.SignUp(ctx, SignUpInput{Email: "a@b.pk", Password: "secret1", Name: "A"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestAuthService_SignIn(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	user := &domain.User{ID: "u1", Email: "a@b.pk", Role: domain.RoleHotel}

	f.creds.On("FindByIdentifier", ctx, "+923001234567").Return(&domain.Credential{UserID: "u1", PasswordHash: hash(t, "secret1")}, nil)
	f.creds.On("FindByIdentifier", ctx, "ghost@b.pk").Return(nil, domain.NotFound("credential"))
	f.users.On("GetByID", ctx, "u1").Return(user, nil)

	session, err := f.svc.SignIn(ctx, " +923001234567 ", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "u1", session.User.ID)

	_, err = f.svc.SignIn(ctx, "+923001234567", "wrong-pass")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = f.svc.SignIn(ctx, "ghost@b.pk", "secret1")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = f.svc.SignIn(ctx, "", "secret1")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthService_RequestPasswordReset_PublishesRecoveryLink(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	f.creds.On("FindByIdentifier", ctx, "a@b.pk").Return(&domain.Credential{UserID: "u1"}, nil)
	f.users.On("GetByID", ctx, "u1").Return(&domain.User{ID: "u1", Email: "a@b.pk", Role: domain.RoleCustomer}, nil)

	var sent kafka.Notification
	f.producer.On("Publish", ctx, topic, "u1", mock.AnythingOfType("kafka.Notification")).
		Run(func(args mock.Arguments) { sent = args.Get(3).(kafka.Notification) }).
		Return(nil)

	require.NoError(t, f.svc.RequestPasswordReset(ctx, "A@B.pk"))

	assert.Equal(t, kafka.EventPasswordRecovery, sent.Type)
	assert.True(t, strings.HasPrefix(sent.Link, "http://localhost:5173/reset-password#type=recovery&access_token="))

	recovery, ok := ParseRecoveryFragment(strings.SplitN(sent.Link, "#", 2)[1])
	require.True(t, ok)

	_, err := f.svc.Authenticate(ctx, recovery.AccessToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	f.creds.On("UpdatePassword", ctx, "u1", mock.AnythingOfType("string")).Return(nil)
	require.NoError(t, f.svc.UpdatePassword(ctx, recovery.AccessToken, "newsecret"))
	f.creds.AssertExpectations(t)
}

func TestAuthService_RequestPasswordReset_UnknownEmailIsSilent(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.creds.On("FindByIdentifier", ctx, "ghost@b.pk").Return(nil, domain.NotFound("credential"))

	require.NoError(t, f.svc.RequestPasswordReset(ctx, "ghost@b.pk"))
	f.producer.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	assert.True(t, domain.IsValidation(f.svc.RequestPasswordReset(ctx, "nope")))
}

func TestAuthService_RequestPasswordReset_Throttled(t *testing.T) {
	ctx := context.Background()
	throttle := new(MockThrottle)
	f := newFixture(WithResetThrottle(throttle, time.Minute))
	throttle.On("AcquireResetThrottle", ctx, "a@b.pk", time.Minute).Return(false, nil)

	require.NoError(t, f.svc.RequestPasswordReset(ctx, "a@b.pk"))
	f.creds.AssertNotCalled(t, "FindByIdentifier", mock.Anything, mock.Anything)
}

func TestAuthService_UpdatePassword_Validation(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	assert.True(t, domain.IsValidation(f.svc.UpdatePassword(ctx, "whatever", "12345")))
	assert.ErrorIs(t, f.svc.UpdatePassword(ctx, "garbage", "123456"), domain.ErrUnauthorized)
}

func TestAuthService_Me(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.users.On("GetByID", ctx, "u1").Return(&domain.User{ID: "u1", Name: "Ali"}, nil)

	user, err := f.svc.Me(ctx, domain.Actor{UserID: "u1", Role: domain.RoleCustomer})
	require.NoError(t, err)
	assert.Equal(t, "Ali", user.Name)

	_, err = f.svc.Me(ctx, domain.Actor{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
