package mocks

import (
	"testing"

	"go.uber.org/mock/gomock"
)

// NewMockPriceFeedForTest creates a new mock PriceFeed for testing
func NewMockPriceFeedForTest(t *testing.T) *MockPriceFeed {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockPriceFeed(ctrl)
}

// NewMockBalanceSourceForTest creates a new mock BalanceSource for testing
func NewMockBalanceSourceForTest(t *testing.T) *MockBalanceSource {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockBalanceSource(ctrl)
}

// NewMockActionExecutorForTest creates a new mock ActionExecutor for testing
func NewMockActionExecutorForTest(t *testing.T) *MockActionExecutor {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockActionExecutor(ctrl)
}

// NewMockAlerterForTest creates a new mock Alerter for testing
func NewMockAlerterForTest(t *testing.T) *MockAlerter {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockAlerter(ctrl)
}
