package clients

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

var silentLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// MockRepository is a mock implementation of Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, client *Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockRepository) FindByID(ctx context.Context, id bson.ObjectID) (*Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Client), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, skip, limit int) ([]*Client, int64, error) {
	args := m.Called(ctx, skip, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*Client), args.Get(1).(int64), args.Error(2)
}

func (m *MockRepository) Update(ctx context.Context, id bson.ObjectID, patch UpdateClient) (*Client, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Client), args.Error(1)
}

func strPtr(s string) *string { return &s }

func TestUpsertCreates(t *testing.T) {
	repo := &MockRepository{}
	repo.On("Create", mock.Anything, mock.MatchedBy(func(c *Client) bool {
		return c.Name == "John Smith" &&
			c.Status == "Active" &&
			!c.ID.IsZero() &&
			c.CreatedAt.Equal(c.UpdatedAt)
	})).Return(nil)
	svc := NewService(repo, silentLogger)

	resp, err := svc.Upsert(context.Background(), UpsertClientRequest{
		Name:     strPtr("John Smith"),
		Email:    strPtr("john@example.com"),
		Province: strPtr("ON"),
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "john@example.com", resp.Client.Email)
	repo.AssertExpectations(t)
}

func TestUpsertCreateRequiresName(t *testing.T) {
	repo := &MockRepository{}
	svc := NewService(repo, silentLogger)

	_, err := svc.Upsert(context.Background(), UpsertClientRequest{Email: strPtr("x@example.com")})
	require.ErrorIs(t, err, ErrNameRequired)
	repo.AssertNotCalled(t, "Create")
}

func TestUpsertCreateSanitizesName(t *testing.T) {
	repo := &MockRepository{}
	repo.On("Create", mock.Anything, mock.MatchedBy(func(c *Client) bool {
		return c.Name == "John"
	})).Return(nil)
	svc := NewService(repo, silentLogger)

	_, err := svc.Upsert(context.Background(), UpsertClientRequest{
		Name: strPtr("<b>John</b>"),
	})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUpsertPatchesExisting(t *testing.T) {
	id := bson.NewObjectID()
	now := time.Now()
	updated := &Client{ID: id, Name: "John Smith", City: "Toronto", Status: "Active", CreatedAt: now, UpdatedAt: now}

	repo := &MockRepository{}
	repo.On("Update", mock.Anything, id, mock.MatchedBy(func(p UpdateClient) bool {
		return p.City != nil && *p.City == "Toronto" && p.Name == nil
	})).Return(updated, nil)
	svc := NewService(repo, silentLogger)

	resp, err := svc.Upsert(context.Background(), UpsertClientRequest{
		ID:   id.Hex(),
		City: strPtr("Toronto"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Toronto", resp.Client.City)
	repo.AssertExpectations(t)
}

func TestUpsertBadHexReadsAsNotFound(t *testing.T) {
	svc := NewService(&MockRepository{}, silentLogger)

	_, err := svc.Upsert(context.Background(), UpsertClientRequest{ID: "not-a-valid-object-id-here!!"})
	require.ErrorIs(t, err, ErrClientNotFound)
}

func TestUpsertMissingClient(t *testing.T) {
	id := bson.NewObjectID()
	repo := &MockRepository{}
	repo.On("Update", mock.Anything, id, mock.Anything).Return(nil, ErrClientNotFound)
	svc := NewService(repo, silentLogger)

	_, err := svc.Upsert(context.Background(), UpsertClientRequest{ID: id.Hex(), City: strPtr("Ottawa")})
	require.ErrorIs(t, err, ErrClientNotFound)
}

func TestGet(t *testing.T) {
	id := bson.NewObjectID()
	repo := &MockRepository{}
	repo.On("FindByID", mock.Anything, id).Return(&Client{ID: id, Name: "John Smith"}, nil)
	svc := NewService(repo, silentLogger)

	resp, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "John Smith", resp.Client.Name)
}

func TestListPaginates(t *testing.T) {
	repo := &MockRepository{}
	repo.On("List", mock.Anything, 20, 10).Return([]*Client{{Name: "A"}, {Name: "B"}}, int64(42), nil)
	svc := NewService(repo, silentLogger)

	resp, err := svc.List(context.Background(), ListClientsRequest{Page: 3, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, resp.Clients, 2)
	assert.Equal(t, int64(42), resp.Pagination.Total)
	assert.Equal(t, 5, resp.Pagination.TotalPages)
	assert.True(t, resp.Pagination.HasNext)
	assert.True(t, resp.Pagination.HasPrev)
	repo.AssertExpectations(t)
}

func TestListRepoError(t *testing.T) {
	repo := &MockRepository{}
	repo.On("List", mock.Anything, 0, 10).Return(nil, int64(0), errors.New("boom"))
	svc := NewService(repo, silentLogger)

	_, err := svc.List(context.Background(), ListClientsRequest{})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrClientNotFound)
}
