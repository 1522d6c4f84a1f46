package services

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"travel-assistant/application/ports"
	"travel-assistant/domain/config"
	"travel-assistant/domain/events"
	"travel-assistant/domain/travel"
)

type mockGenerator struct {
	mock.Mock
}

func (m *mockGenerator) Generate(ctx context.Context, prompt string, opts ports.GenerationOptions) (string, error) {
	args := m.Called(ctx, prompt, opts)
	return args.String(0), args.Error(1)
}

type mockRetriever struct {
	mock.Mock
}

func (m *mockRetriever) Retrieve(ctx context.Context, query string, maxResults int) ([]ports.KnowledgePassage, error) {
	args := m.Called(ctx, query, maxResults)
	passages, _ := args.Get(0).([]ports.KnowledgePassage)
	return passages, args.Error(1)
}

type mockAgent struct {
	mock.Mock
}

func (m *mockAgent) Invoke(ctx context.Context, inputText, sessionID string) (ports.AgentResponse, error) {
	args := m.Called(ctx, inputText, sessionID)
	return args.Get(0).(ports.AgentResponse), args.Error(1)
}

type mockBookingStore struct {
	mock.Mock
}

func (m *mockBookingStore) Save(ctx context.Context, booking travel.Booking) error {
	return m.Called(ctx, booking).Error(0)
}

func (m *mockBookingStore) Get(ctx context.Context, bookingID string) (*travel.Booking, error) {
	args := m.Called(ctx, bookingID)
	booking, _ := args.Get(0).(*travel.Booking)
	return booking, args.Error(1)
}

func (m *mockBookingStore) ListByUser(ctx context.Context, userID string) ([]travel.Booking, error) {
	args := m.Called(ctx, userID)
	bookings, _ := args.Get(0).([]travel.Booking)
	return bookings, args.Error(1)
}

type mockSessionStore struct {
	mock.Mock
}

func (m *mockSessionStore) Touch(ctx context.Context, session travel.Session, ttl time.Duration) (*travel.Session, error) {
	args := m.Called(ctx, session, ttl)
	stored, _ := args.Get(0).(*travel.Session)
	return stored, args.Error(1)
}

type mockAvailabilitySystem struct {
	mock.Mock
}

func (m *mockAvailabilitySystem) Check(ctx context.Context, kind string, params travel.Record) travel.Record {
	return m.Called(ctx, kind, params).Get(0).(travel.Record)
}

type mockBookingSystem struct {
	mock.Mock
}

func (m *mockBookingSystem) Book(ctx context.Context, kind string, details travel.Record) travel.Record {
	return m.Called(ctx, kind, details).Get(0).(travel.Record)
}

type mockLoyalty struct {
	mock.Mock
}

func (m *mockLoyalty) Status(ctx context.Context, userID string) travel.Record {
	rec, _ := m.Called(ctx, userID).Get(0).(travel.Record)
	return rec
}

func (m *mockLoyalty) AddPoints(ctx context.Context, award ports.PointsAward) error {
	return m.Called(ctx, award).Error(0)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, event events.DomainEvent) error {
	return m.Called(ctx, event).Error(0)
}

func testRules() *config.DomainConfig {
	return config.DefaultDomainConfig()
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
