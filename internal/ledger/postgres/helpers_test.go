package postgres

import (
	"testing"

	"github.com/golang/mock/gomock"

	"github.com/clearbid/driver-backend/internal/model"
)

func newTestRepository(t *testing.T) (*Repository, *MockQuerier, *MockMetrics) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	db := NewMockQuerier(ctrl)
	metrics := NewMockMetrics(ctrl)
	metrics.EXPECT().Observe(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()

	return &Repository{db: db, metrics: metrics}, db, metrics
}

func testUID(b byte) model.OrderUID {
	var uid model.OrderUID
	for i := range uid {
		uid[i] = b
	}
	return uid
}
