// Code generated manually for testing. Update as needed.

package mocks

import (
	"context"

	"github.com/luxfi/launchpad/pkg/api"
	"github.com/luxfi/launchpad/pkg/chainid"
	"github.com/luxfi/launchpad/pkg/models"
	"github.com/luxfi/launchpad/pkg/tx"
	"github.com/stretchr/testify/mock"
)

// Backend is a mock implementation of api.Backend
type Backend struct {
	mock.Mock
}

var _ api.Backend = (*Backend)(nil)

func (m *Backend) GetChains(ctx context.Context, opts api.ChainFilterOptions) ([]models.Chain, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Chain), args.Error(1)
}

func (m *Backend) GetChain(ctx context.Context, id chainid.ID) (models.Chain, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Chain), args.Error(1)
}

func (m *Backend) GetVolatile(ctx context.Context, id chainid.ID) (models.VolatileFields, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.VolatileFields), args.Error(1)
}

func (m *Backend) EstimateFee(ctx context.Context, req api.FeeRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *Backend) GetChainHeight(ctx context.Context, id chainid.ID) (uint64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *Backend) SendRawTransaction(ctx context.Context, signed *tx.SignedTransaction) (api.SendResult, error) {
	args := m.Called(ctx, signed)
	return args.Get(0).(api.SendResult), args.Error(1)
}

func (m *Backend) GetTransaction(ctx context.Context, hash string) (api.TransactionStatus, error) {
	args := m.Called(ctx, hash)
	return args.Get(0).(api.TransactionStatus), args.Error(1)
}

func (m *Backend) GetPortfolioOverview(ctx context.Context, addresses []string) (models.PortfolioOverview, error) {
	args := m.Called(ctx, addresses)
	return args.Get(0).(models.PortfolioOverview), args.Error(1)
}

func (m *Backend) GetStakingPositions(ctx context.Context, address string) ([]models.StakingPosition, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.StakingPosition), args.Error(1)
}

func (m *Backend) GetUnstakingQueue(ctx context.Context, address string) ([]models.UnstakingEntry, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UnstakingEntry), args.Error(1)
}

func (m *Backend) ClaimUnstaked(ctx context.Context, entryID string) error {
	return m.Called(ctx, entryID).Error(0)
}

func (m *Backend) CancelUnstake(ctx context.Context, entryID string) error {
	return m.Called(ctx, entryID).Error(0)
}
