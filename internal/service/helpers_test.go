package service

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/Zubair-hussain/xovato-tech/internal/auth"
	"github.com/Zubair-hussain/xovato-tech/internal/domain"
	"github.com/Zubair-hussain/xovato-tech/internal/event"
	"github.com/Zubair-hussain/xovato-tech/internal/notify"
	"github.com/Zubair-hussain/xovato-tech/pkg/httpclient"
	pkgkafka "github.com/Zubair-hussain/xovato-tech/pkg/kafka"
)

// --- Mock Review Repository ---

type mockReviewRepository struct {
	mock.Mock
}

func (m *mockReviewRepository) Insert(ctx context.Context, draft *domain.ReviewDraft) (*domain.Review, error) {
	args := m.Called(ctx, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *mockReviewRepository) SelectApproved(ctx context.Context, country, category string, limit int) ([]domain.Review, error) {
	args := m.Called(ctx, country, category, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *mockReviewRepository) SelectPending(ctx context.Context) ([]domain.Review, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *mockReviewRepository) UpdateStatus(ctx context.Context, id string, status domain.Status) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// --- Fake token store ---

type fakeTokenStore struct {
	mu     sync.Mutex
	tokens map[string]string
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: make(map[string]string)}
}

func (s *fakeTokenStore) Save(_ context.Context, token, email string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = email
	return nil
}

func (s *fakeTokenStore) Redeem(_ context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	email, ok := s.tokens[token]
	if !ok {
		return "", auth.ErrTokenInvalid
	}
	delete(s.tokens, token)
	return email, nil
}

// --- Shared fixtures ---

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testEventProducer points at an unreachable broker; publishes fail and the
// services treat that as a logged non-event.
func testEventProducer(logger *slog.Logger) *event.Producer {
	kafkaCfg := pkgkafka.DefaultProducerConfig([]string{"localhost:9092"})
	kafkaProducer := pkgkafka.NewProducer(kafkaCfg, logger)
	return event.NewProducer(kafkaProducer, logger)
}

// testNotifier is deliberately unconfigured so sends are skipped.
func testNotifier(logger *slog.Logger) *notify.EmailJSSender {
	cfg := httpclient.DefaultConfig()
	cfg.MaxRetries = 0
	return notify.NewEmailJSSender(notify.EmailJSConfig{}, httpclient.New(cfg), logger)
}

// failingNotifier is fully configured but points at an endpoint that rejects
// every send, exercising the notify failure path instead of the skip path.
func failingNotifier(endpoint string, logger *slog.Logger) *notify.EmailJSSender {
	cfg := httpclient.DefaultConfig()
	cfg.MaxRetries = 0
	return notify.NewEmailJSSender(notify.EmailJSConfig{
		ServiceID:   "svc_1",
		TemplateID:  "tpl_1",
		PublicKey:   "pub_1",
		NotifyEmail: "inbox@example.com",
		Endpoint:    endpoint,
	}, httpclient.New(cfg), logger)
}
