package stellar

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type AccountServiceMock struct {
	mock.Mock
}

var _ AccountService = (*AccountServiceMock)(nil)

func (m *AccountServiceMock) NativeBalance(ctx context.Context, net Network, accountOrSecret string) (decimal.Decimal, error) {
	args := m.Called(ctx, net, accountOrSecret)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *AccountServiceMock) SequenceNumber(ctx context.Context, net Network, accountID string) (int64, error) {
	args := m.Called(ctx, net, accountID)
	return args.Get(0).(int64), args.Error(1)
}
