package users

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/safarpk/safarpk/internal/domain"
)

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
	return args.Get(0).(map[domain.Role]int64), args.Error(1)
}

var sampleUsers = []domain.User{
	{ID: "1", Name: "Ayesha Khan", Email: "ayesha@example.com", Role: domain.RoleCustomer, Phone: "+923001112233"},
	{ID: "2", Name: "Bilal Ahmed", Email: "bilal@example.com", Role: domain.RoleDriver},
	{ID: "3", Name: "Hotel Shangrila", Email: "owner@shangrila.pk", Role: domain.RoleHotel},
}

func TestUserService_List_Filters(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name     string
		filter   ListFilter
		expected []string
	}{
		{name: "no filter", filter: ListFilter{}, expected: []string{"1", "2", "3"}},
		{name: "search by name", filter: ListFilter{Search: "bilal"}, expected: []string{"2"}},
		{name: "search by phone", filter: ListFilter{Search: "300111"}, expected: []string{"1"}},
		{name: "role", filter: ListFilter{Role: domain.RoleHotel}, expected: []string{"3"}},
		{name: "role and search miss", filter: ListFilter{Role: domain.RoleDriver, Search: "ayesha"}, expected: []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &MockUserRepository{}
			repo.On("List", ctx).Return(sampleUsers, nil).Once()

			result, err := NewUserService(repo).List(ctx, tc.filter)
			require.NoError(t, err)

			ids := make([]string, 0, len(result))
			for _, u := range result {
				ids = append(ids, u.ID)
			}
			assert.Equal(t, tc.expected, ids)
			repo.AssertExpectations(t)
		})
	}
}

func TestUserService_List_RepoError(t *testing.T) {
	ctx := context.Background()
	repo := &MockUserRepository{}
	repo.On("List", ctx).Return(nil, errors.New("db down")).Once()

	result, err := NewUserService(repo).List(ctx, ListFilter{})
	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestUserService_Create_Success(t *testing.T) {
	ctx := context.Background()
	repo := &MockUserRepository{}
	repo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil).Once()

	user, err := NewUserService(repo).Create(ctx, UserInput{Email: " New@Example.com ", Name: "New User"})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "new@example.com", user.Email)
	assert.Equal(t, domain.RoleCustomer, user.Role)
	repo.AssertExpectations(t)
}

func TestUserService_Create_ValidationErrors(t *testing.T) {
	service := NewUserService(&MockUserRepository{})
	ctx := context.Background()

	testCases := []struct {
		name        string
		input       UserInput
		expectedErr string
	}{
		{name: "missing email", input: UserInput{Name: "x"}, expectedErr: "email: is required"},
		{name: "bad email", input: UserInput{Email: "nope", Name: "x"}, expectedErr: "email: is not a valid address"},
		{name: "missing name", input: UserInput{Email: "a@b.co"}, expectedErr: "name: is required"},
		{name: "bad role", input: UserInput{Email: "a@b.co", Name: "x", Role: "pilot"}, expectedErr: "role:"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			user, err := service.Create(ctx, tc.input)
			assert.Nil(t, user)
			assert.True(t, domain.IsValidation(err))
			assert.Contains(t, err.Error(), tc.expectedErr)
		})
	}
}

func TestUserService_Update_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := &MockUserRepository{}
	repo.On("Update", ctx, mock.MatchedBy(func(u *domain.User) bool { return u.ID == "42" })).
		Return(domain.NotFound("user")).Once()

	user, err := NewUserService(repo).Update(ctx, "42", UserInput{Email: "a@b.co", Name: "A", Role: domain.RoleAdmin})
	assert.Nil(t, user)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	repo.AssertExpectations(t)
}

func TestUserService_Delete(t *testing.T) {
	ctx := context.Background()
	repo := &MockUserRepository{}
	repo.On("Delete", ctx, "2").Return(nil).Once()

	assert.NoError(t, NewUserService(repo).Delete(ctx, "2"))
	repo.AssertExpectations(t)
}
