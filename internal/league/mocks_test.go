package league

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sells-group/platleague/internal/model"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) ListPlayers(ctx context.Context) ([]model.Player, error) {
	args := m.Called(ctx)
	players, _ := args.Get(0).([]model.Player)
	return players, args.Error(1)
}

func (m *mockStore) AddPlayer(ctx context.Context, name string) (*model.Player, error) {
	args := m.Called(ctx, name)
	p, _ := args.Get(0).(*model.Player)
	return p, args.Error(1)
}

func (m *mockStore) CountPlayers(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockStore) ListGames(ctx context.Context) ([]model.GameRecord, error) {
	args := m.Called(ctx)
	games, _ := args.Get(0).([]model.GameRecord)
	return games, args.Error(1)
}

func (m *mockStore) AddGame(ctx context.Context, rec model.GameRecord) (string, error) {
	args := m.Called(ctx, rec)
	return args.String(0), args.Error(1)
}

func (m *mockStore) Reset(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockStore) Migrate(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockStore) Close() error {
	return m.Called().Error(0)
}
