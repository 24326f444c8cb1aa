package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	authDomain "github.com/allisson/streamgate/internal/auth/domain"
	"github.com/allisson/streamgate/internal/auth/usecase"
	usecaseMocks "github.com/allisson/streamgate/internal/auth/usecase/mocks"
)

func TestSweeper_Start(t *testing.T) {
	defer goleak.VerifyNone(t)

	gateway := &usecaseMocks.MockAuthorizationGateway{}
	swept := make(chan struct{}, 1)
	gateway.On("SweepExpired", mock.Anything).
		Return(&authDomain.SweepResult{OTPRecords: 1}, nil).
		Run(func(args mock.Arguments) {
			select {
			case swept <- struct{}{}:
			default:
			}
		})

	sweeper := usecase.NewSweeper(gateway, 5*time.Millisecond, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- sweeper.Start(ctx)
	}()

	select {
	case <-swept:
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper did not run")
	}

	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper did not stop")
	}
}

func TestSweeper_RunOnce(t *testing.T) {
	ctx := context.Background()

	t.Run("Error_IsLoggedNotPropagated", func(t *testing.T) {
		gateway := &usecaseMocks.MockAuthorizationGateway{}
		gateway.On("SweepExpired", ctx).Return(nil, errors.New("boom")).Once()

		sweeper := usecase.NewSweeper(gateway, time.Minute, discardLogger())
		require.NotPanics(t, func() { sweeper.RunOnce(ctx) })
		gateway.AssertExpectations(t)
	})

	t.Run("Success", func(t *testing.T) {
		gateway := &usecaseMocks.MockAuthorizationGateway{}
		gateway.On("SweepExpired", ctx).Return(&authDomain.SweepResult{OTPRecords: 3}, nil).Once()

		sweeper := usecase.NewSweeper(gateway, time.Minute, discardLogger())
		sweeper.RunOnce(ctx)
		gateway.AssertExpectations(t)
	})
}
