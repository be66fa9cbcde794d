package order

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/pkg/apperror"
)

type fakeOrder struct {
	patientID uuid.UUID
	status    model.OrderStatus
}

type fakeOrderRepo struct {
	orders  map[int]*fakeOrder
	created []*model.CreateOrderRequest
	nextID  int
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[int]*fakeOrder), nextID: 1}
}

func (r *fakeOrderRepo) ListDetails(context.Context, uuid.UUID) ([]model.OrderDetail, error) {
	return nil, nil
}

func (r *fakeOrderRepo) Create(_ context.Context, patientID uuid.UUID, req *model.CreateOrderRequest) (int, error) {
	r.created = append(r.created, req)
	id := r.nextID
	r.nextID++
	r.orders[id] = &fakeOrder{patientID: patientID, status: model.OrderStatusPending}
	return id, nil
}

func (r *fakeOrderRepo) Confirm(_ context.Context, patientID uuid.UUID, orderID int) (bool, error) {
	o, ok := r.orders[orderID]
	if !ok || o.patientID != patientID || o.status != model.OrderStatusPending {
		return false, nil
	}
	o.status = model.OrderStatusShipping
	return true, nil
}

func TestCreateOrder(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := NewService(repo)

	id, err := svc.Create(context.Background(), uuid.New(), &model.CreateOrderRequest{
		ShippingPlatform: "Kerry",
		PaymentPlatform:  "PromptPay",
		Items: []model.CreateOrderItemRequest{
			{MedicineID: 1, Amount: 2, Price: 35},
			{MedicineID: 4, Amount: 1, Price: 120},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, id)
	assert.Equal(t, model.OrderStatusPending, repo.orders[id].status)
}

func TestCreateOrderRejectsNonPositiveAmount(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := NewService(repo)

	for _, amount := range []int{0, -3} {
		_, err := svc.Create(context.Background(), uuid.New(), &model.CreateOrderRequest{
			ShippingPlatform: "Kerry",
			PaymentPlatform:  "PromptPay",
			Items:            []model.CreateOrderItemRequest{{MedicineID: 1, Amount: amount}},
		})
		assert.Equal(t, apperror.KindBadRequest, apperror.KindOf(err))
	}
	assert.Empty(t, repo.created, "nothing may be written on a rejected order")
}

func TestConfirm(t *testing.T) {
	repo := newFakeOrderRepo()
	patientID := uuid.New()
	svc := NewService(repo)

	id, err := svc.Create(context.Background(), patientID, &model.CreateOrderRequest{
		ShippingPlatform: "Kerry", PaymentPlatform: "PromptPay",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Confirm(context.Background(), patientID, id))
	assert.Equal(t, model.OrderStatusShipping, repo.orders[id].status)

	// Confirming again finds no PENDING row.
	err = svc.Confirm(context.Background(), patientID, id)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestConfirmForeignOrder(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := NewService(repo)

	id, err := svc.Create(context.Background(), uuid.New(), &model.CreateOrderRequest{
		ShippingPlatform: "Kerry", PaymentPlatform: "PromptPay",
	})
	require.NoError(t, err)

	err = svc.Confirm(context.Background(), uuid.New(), id)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	assert.Equal(t, model.OrderStatusPending, repo.orders[id].status)
}
