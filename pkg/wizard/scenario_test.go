// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package wizard

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/luxfi/launchpad/internal/mocks"
	"github.com/luxfi/launchpad/pkg/api"
	"github.com/luxfi/launchpad/pkg/chainid"
	"github.com/luxfi/launchpad/pkg/graduation"
	"github.com/luxfi/launchpad/pkg/models"
	"github.com/luxfi/launchpad/pkg/poller"
	"github.com/luxfi/launchpad/pkg/wallet"
	luxlog "github.com/luxfi/log"
	ginkgo "github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"github.com/stretchr/testify/mock"
)

type countingSource struct {
	calls atomic.Int32
}

func (s *countingSource) GetVolatile(context.Context, chainid.ID) (models.VolatileFields, error) {
	s.calls.Add(1)
	return models.VolatileFields{}, nil
}

var _ = ginkgo.Describe("[Stake on a launching chain]", func() {
	var (
		chain   models.Chain
		keys    *fakeKeys
		backend *mocks.Backend
		ctx     context.Context
	)
	const hash = "0x9f86d081884c7d659a2feaa0c55ad015a3bf4f1b"

	ginkgo.BeforeEach(func() {
		ctx = context.Background()
		chain = models.Chain{
			ID:                  "42",
			ChainID:             42,
			Name:                "Demo",
			Status:              models.StatusVirtualActive,
			GraduationThreshold: 1000,
			VirtualPool:         &models.VirtualPool{CNPYReserve: 500},
		}
		keys = newFakeKeys()
		backend = &mocks.Backend{}
		backend.On("EstimateFee", mock.Anything, mock.Anything).Return("10000", nil)
		backend.On("GetChainHeight", mock.Anything, chainid.ID(42)).Return(uint64(321), nil)
		backend.On("SendRawTransaction", mock.Anything, mock.Anything).
			Return(api.SendResult{TransactionHash: hash}, nil)
	})

	ginkgo.It("shows half way to graduation", func() {
		gomega.Expect(graduation.Progress(chain)).To(gomega.Equal(50))
		gomega.Expect(graduation.Remaining(chain)).To(gomega.BeNumerically("==", 500))
	})

	ginkgo.It("prices the final amount once and submits", func() {
		c := newController(ginkgo.GinkgoT(), stakeOp(keys), backend, keys)
		gomega.Expect(c.CanContinue("100")).To(gomega.BeTrue())

		for _, in := range []string{"1", "10", "100"} {
			gomega.Expect(c.Input(ctx, in)).To(gomega.Succeed())
		}
		gomega.Eventually(func() bool {
			_, ok := c.Fee()
			return ok
		}, 3*time.Second, 20*time.Millisecond).Should(gomega.BeTrue())
		gomega.Consistently(func() int {
			return countCalls(backend, "EstimateFee")
		}, 700*time.Millisecond, 50*time.Millisecond).Should(gomega.Equal(1))

		gomega.Expect(c.Continue(ctx, "100")).To(gomega.Succeed())
		gomega.Expect(c.State().Kind()).To(gomega.Equal(KindReviewing))
		gomega.Expect(c.Confirm(ctx)).To(gomega.Succeed())

		done, ok := c.State().(Succeeded)
		gomega.Expect(ok).To(gomega.BeTrue())
		gomega.Expect(done.ShortHash()).To(gomega.Equal("0x9f86d081...bf4f1b"))
		gomega.Expect(countCalls(backend, "EstimateFee")).To(gomega.Equal(1))
	})

	ginkgo.It("blocks confirmation while the wallet is locked", func() {
		keys.setLocked(true)
		c := newController(ginkgo.GinkgoT(), stakeOp(keys), backend, keys)

		gomega.Expect(c.Continue(ctx, "100")).To(gomega.Succeed())
		gomega.Expect(c.CanConfirm()).To(gomega.BeFalse())
		err := c.Confirm(ctx)
		gomega.Expect(err).To(gomega.MatchError(wallet.ErrKeyLocked))
		gomega.Expect(c.Banner()).To(gomega.Equal(LockedBanner))
		gomega.Expect(countCalls(backend, "SendRawTransaction")).To(gomega.BeZero())

		keys.setLocked(false)
		gomega.Expect(c.CanConfirm()).To(gomega.BeTrue())
	})

	ginkgo.It("does not poll while the view is hidden", func() {
		src := &countingSource{}
		var visible atomic.Bool
		p := poller.New(poller.Config{}, src, poller.NewStore([]models.Chain{chain}),
			poller.VisibilityFunc(visible.Load), luxlog.NewNoOpLogger(), nil)

		gomega.Expect(p.Tick(ctx)).To(gomega.BeEmpty())
		gomega.Expect(src.calls.Load()).To(gomega.BeZero())

		visible.Store(true)
		p.Tick(ctx)
		gomega.Expect(src.calls.Load()).To(gomega.Equal(int32(1)))
	})
})

func countCalls(m *mocks.Backend, method string) int {
	n := 0
	for _, call := range m.Calls {
		if call.Method == method {
			n++
		}
	}
	return n
}
