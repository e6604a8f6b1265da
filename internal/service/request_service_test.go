package service

import (
	"testing"
	"time"

	"campuskart/internal/domain"
	"campuskart/internal/dto"
	"campuskart/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceRequestLifecycle(t *testing.T) {
	s := newTestStack(t, time.Local)

	resp, err := s.requests.Create(ctxb(), dto.CreateServiceRequest{
		Kind:         model.RequestPrinting,
		CustomerName: "Lee Ramos",
		Contact:      "09179998877",
		Details:      "20 pages, double sided",
		AmountCents:  4000,
	})
	require.NoError(t, err)
	assert.Equal(t, model.RequestPending, resp.Status)

	id := uuid.MustParse(resp.ID)
	resp, err = s.requests.UpdateStatus(ctxb(), id, model.RequestProcessing)
	require.NoError(t, err)
	assert.Equal(t, model.RequestProcessing, resp.Status)

	resp, err = s.requests.UpdateStatus(ctxb(), id, model.RequestCompleted)
	require.NoError(t, err)
	assert.Equal(t, model.RequestCompleted, resp.Status)

	// Terminal requests are frozen.
	_, err = s.requests.UpdateStatus(ctxb(), id, model.RequestProcessing)
	var it *domain.InvalidTransitionError
	require.ErrorAs(t, err, &it)
}

func TestServiceRequestListFilters(t *testing.T) {
	s := newTestStack(t, time.Local)

	for _, kind := range []string{model.RequestPrinting, model.RequestPrinting, model.RequestGCashCashIn} {
		_, err := s.requests.Create(ctxb(), dto.CreateServiceRequest{
			Kind:         kind,
			CustomerName: "Lee Ramos",
			Contact:      "09179998877",
		})
		require.NoError(t, err)
	}

	list, err := s.requests.List(ctxb(), dto.ServiceRequestFilter{Kind: model.RequestPrinting})
	require.NoError(t, err)
	assert.Equal(t, int64(2), list.Total)

	list, err = s.requests.List(ctxb(), dto.ServiceRequestFilter{Status: model.RequestPending})
	require.NoError(t, err)
	assert.Equal(t, int64(3), list.Total)
}

func TestServiceRequestNotFound(t *testing.T) {
	s := newTestStack(t, time.Local)
	_, err := s.requests.GetByID(ctxb(), uuid.New())
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
}
