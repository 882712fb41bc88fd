package flower

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/exp/slog"
)

// MockRepository is a mock implementation of the Repository interface for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, f *Flower) error {
	args := m.Called(ctx, f)
	if args.Error(0) == nil {
		f.ID = "flower-1"
		f.CreatedAt = time.Now()
	}
	return args.Error(0)
}

func (m *MockRepository) List(ctx context.Context) ([]Flower, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Flower), args.Error(1)
}

func (m *MockRepository) Positions(ctx context.Context) ([]Position, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Position), args.Error(1)
}

func (m *MockRepository) Stats(ctx context.Context) (Stats, error) {
	args := m.Called(ctx)
	return args.Get(0).(Stats), args.Error(1)
}

// MockClassifier is a mock implementation of the Classifier interface for testing
type MockClassifier struct {
	mock.Mock
}

func (m *MockClassifier) Classify(ctx context.Context, message string) (Classification, error) {
	args := m.Called(ctx, message)
	return args.Get(0).(Classification), args.Error(1)
}

// MockLocator is a mock implementation of the Locator interface for testing
type MockLocator struct {
	mock.Mock
}

func (m *MockLocator) Locate(ctx context.Context, ip string) (*Geo, error) {
	args := m.Called(ctx, ip)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Geo), args.Error(1)
}

// MockBroadcaster is a mock implementation of the Broadcaster interface for testing
type MockBroadcaster struct {
	mock.Mock
}

func (m *MockBroadcaster) Broadcast(f Flower) {
	m.Called(f)
}

func TestService_Plant(t *testing.T) {
	mockRepo := new(MockRepository)
	mockClassifier := new(MockClassifier)
	mockLocator := new(MockLocator)
	mockBroadcast := new(MockBroadcaster)
	service := NewService(mockRepo, mockClassifier, mockLocator, mockBroadcast, slog.Default())

	mockClassifier.On("Classify", mock.Anything, "missing the sea tonight").
		Return(Classification{Species: "forget_me_not", Caption: "missing the sea tonight"}, nil)
	mockRepo.On("Positions", mock.Anything).Return([]Position{{X: 20, Y: 70}}, nil)
	mockLocator.On("Locate", mock.Anything, "203.0.113.7").
		Return(&Geo{Country: "Portugal", City: "Lisbon"}, nil)
	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(f *Flower) bool {
		return f.Species == "forget_me_not" &&
			f.Type == VisualWildflower &&
			f.Author == "Anonymous" &&
			f.X >= 10 && f.X <= 90 &&
			f.Y >= 65 && f.Y <= 90 &&
			f.Geo != nil && f.Geo.Country == "Portugal"
	})).Return(nil)
	mockBroadcast.On("Broadcast", mock.MatchedBy(func(f Flower) bool {
		return f.ID == "flower-1"
	})).Return()

	planted, err := service.Plant(context.Background(), PlantRequest{
		Message:  "missing the sea tonight",
		RemoteIP: "203.0.113.7",
	})
	assert.NoError(t, err)
	assert.Equal(t, "flower-1", planted.ID)
	assert.Equal(t, "forget_me_not", planted.Species)
	assert.Equal(t, "missing the sea tonight", planted.Message)

	mockRepo.AssertExpectations(t)
	mockClassifier.AssertExpectations(t)
	mockLocator.AssertExpectations(t)
	mockBroadcast.AssertExpectations(t)
}

func TestService_Plant_InvalidMessage(t *testing.T) {
	mockRepo := new(MockRepository)
	mockClassifier := new(MockClassifier)
	service := NewService(mockRepo, mockClassifier, nil, nil, slog.Default())

	_, err := service.Plant(context.Background(), PlantRequest{Message: "   "})
	assert.ErrorIs(t, err, ErrEmptyMessage)

	// The classifier must not be called for rejected input.
	mockClassifier.AssertNotCalled(t, "Classify", mock.Anything, mock.Anything)
}

func TestService_Plant_RateLimitPropagates(t *testing.T) {
	mockRepo := new(MockRepository)
	mockClassifier := new(MockClassifier)
	service := NewService(mockRepo, mockClassifier, nil, nil, slog.Default())

	// Classifier errors pass through untouched so the handler can map
	// them to specific status codes.
	errRateLimited := errors.New("rate limit exceeded")
	mockClassifier.On("Classify", mock.Anything, "hello").
		Return(Classification{}, errRateLimited)

	_, err := service.Plant(context.Background(), PlantRequest{Message: "hello"})
	assert.ErrorIs(t, err, errRateLimited)

	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Plant_GeoFailureAbsorbed(t *testing.T) {
	mockRepo := new(MockRepository)
	mockClassifier := new(MockClassifier)
	mockLocator := new(MockLocator)
	service := NewService(mockRepo, mockClassifier, mockLocator, nil, slog.Default())

	mockClassifier.On("Classify", mock.Anything, "hello").
		Return(Classification{Species: "rose", Caption: "hello"}, nil)
	mockRepo.On("Positions", mock.Anything).Return([]Position{}, nil)
	mockLocator.On("Locate", mock.Anything, "10.0.0.1").
		Return(nil, errors.New("lookup timeout"))
	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(f *Flower) bool {
		return f.Geo == nil
	})).Return(nil)

	planted, err := service.Plant(context.Background(), PlantRequest{
		Message:  "hello",
		RemoteIP: "10.0.0.1",
	})
	assert.NoError(t, err)
	assert.Nil(t, planted.Geo)

	mockRepo.AssertExpectations(t)
}

func TestService_Plant_PositionsFailureAbsorbed(t *testing.T) {
	mockRepo := new(MockRepository)
	mockClassifier := new(MockClassifier)
	service := NewService(mockRepo, mockClassifier, nil, nil, slog.Default())

	mockClassifier.On("Classify", mock.Anything, "hello").
		Return(Classification{Species: "rose", Caption: "hello"}, nil)
	mockRepo.On("Positions", mock.Anything).Return(nil, errors.New("db down"))
	mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	_, err := service.Plant(context.Background(), PlantRequest{Message: "hello"})
	assert.NoError(t, err)

	mockRepo.AssertExpectations(t)
}

func TestService_Plant_LocalizedAnonymous(t *testing.T) {
	mockRepo := new(MockRepository)
	mockClassifier := new(MockClassifier)
	service := NewService(mockRepo, mockClassifier, nil, nil, slog.Default())

	mockClassifier.On("Classify", mock.Anything, "你好").
		Return(Classification{Species: "lotus", Caption: "你好"}, nil)
	mockRepo.On("Positions", mock.Anything).Return([]Position{}, nil)
	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(f *Flower) bool {
		return f.Author == "匿名"
	})).Return(nil)

	planted, err := service.Plant(context.Background(), PlantRequest{
		Message: "你好",
		Lang:    "zh-CN",
	})
	assert.NoError(t, err)
	assert.Equal(t, "匿名", planted.Author)

	mockRepo.AssertExpectations(t)
}

func TestService_Plant_CreateError(t *testing.T) {
	mockRepo := new(MockRepository)
	mockClassifier := new(MockClassifier)
	service := NewService(mockRepo, mockClassifier, nil, nil, slog.Default())

	mockClassifier.On("Classify", mock.Anything, "hello").
		Return(Classification{Species: "rose", Caption: "hello"}, nil)
	mockRepo.On("Positions", mock.Anything).Return([]Position{}, nil)
	mockRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("insert failed"))

	_, err := service.Plant(context.Background(), PlantRequest{Message: "hello"})
	assert.Error(t, err)
}

func TestService_List(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, new(MockClassifier), nil, nil, slog.Default())

	flowers := []Flower{
		{ID: "a", Species: "rose", Type: VisualRose},
		{ID: "b", Species: "triffid", Type: VisualType("triffid")},
	}
	mockRepo.On("List", mock.Anything).Return(flowers, nil)

	response, err := service.List(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 2, response.Total)
	assert.Equal(t, VisualRose, response.Flowers[0].Type)
	// Unknown stored types normalize to wildflower on the way out.
	assert.Equal(t, VisualWildflower, response.Flowers[1].Type)

	mockRepo.AssertExpectations(t)
}

func TestService_Stats(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, new(MockClassifier), nil, nil, slog.Default())

	last := time.Now()
	mockRepo.On("Stats", mock.Anything).Return(Stats{
		Total:       3,
		ByType:      map[VisualType]int64{VisualRose: 2, VisualDaisy: 1},
		Countries:   2,
		LastPlanted: &last,
	}, nil)

	stats, err := service.Stats(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(2), stats.ByType[VisualRose])

	mockRepo.AssertExpectations(t)
}
