package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/srikumaragency/b-admin-prod-03/internal/dto"
	"github.com/srikumaragency/b-admin-prod-03/internal/model"
	"github.com/srikumaragency/b-admin-prod-03/internal/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var orderDay = time.Date(2025, 10, 20, 10, 0, 0, 0, IST)

type orderFixture struct {
	svc      *orderService
	orders   *stubOrderRepo
	products *stubProductRepo
	store    *stubStoreRepo
	sparkler *model.Product
	rocket   *model.Product
}

func newOrderFixture(now time.Time) orderFixture {
	products := newStubProductRepo()
	sparkler := products.add("SP10", "100", "868.42", "165", nil)
	rocket := products.add("RK2", "40", "347.37", "66", intp(3))
	store := &stubStoreRepo{}
	orders := newStubOrderRepo(fixedClock(now))
	svc := NewOrderService(orders, products, NewStoreService(store, nil)).(*orderService)
	svc.now = fixedClock(now)
	return orderFixture{svc: svc, orders: orders, products: products, store: store, sparkler: sparkler, rocket: rocket}
}

func (f orderFixture) request(items ...dto.OrderItemRequest) dto.CreateOrderRequest {
	return dto.CreateOrderRequest{
		Customer: dto.CustomerRequest{
			Name:            "Ravi Kumar",
			Mobile:          "+91 98765 43210",
			DeliveryContact: "9876500000",
			Address: dto.AddressRequest{
				Street:   "4 North Street",
				District: "Madurai",
				State:    "Tamil Nadu",
				Pincode:  "625001",
			},
		},
		Items: items,
	}
}

func item(p *model.Product, qty int) dto.OrderItemRequest {
	return dto.OrderItemRequest{ProductID: p.ID.String(), Quantity: qty}
}

func TestOrderCreate_SnapshotsAndTotals(t *testing.T) {
	f := newOrderFixture(orderDay)
	f.store.settings = &model.StoreSettings{
		ID:                model.StoreSettingsID,
		MinimumOrderValue: dec("1000"),
		UpiID:             "store@oksbi",
		PackagingActive:   true,
		PackagingTiers: []pricing.Tier{
			{MinAmount: dec("0"), MaxAmount: decp("5000"), Cost: dec("150")},
			{MinAmount: dec("5000"), Cost: dec("0")},
		},
	}

	resp, err := f.svc.Create(context.Background(), f.request(item(f.sparkler, 10), item(f.rocket, 2)))
	require.NoError(t, err)

	assert.Equal(t, "ORD-201025-001", resp.OrderID)
	assert.Equal(t, "9876543210", resp.Customer.Mobile)
	assert.Equal(t, "India", resp.Customer.Address.Country)
	assert.Equal(t, "transport_office", resp.DeliveryMethod)
	assert.Equal(t, model.PaymentPending, resp.PaymentStatus)
	assert.Equal(t, model.OrderPlaced, resp.OrderStatus)
	assert.Nil(t, resp.InvoiceNumber)

	require.Len(t, resp.Items, 2)
	first := resp.Items[0]
	assert.Equal(t, "SP10", first.Snapshot.ProductCode)
	assert.True(t, dec("868.42").Equal(first.Price))
	assert.True(t, dec("165").Equal(first.OfferPrice))
	require.NotNil(t, first.Snapshot.DiscountPercentage)
	assert.True(t, dec("81").Equal(*first.Snapshot.DiscountPercentage))

	s := resp.Summary
	assert.Equal(t, 12, s.TotalItems)
	assert.True(t, dec("9378.94").Equal(s.TotalPrice), s.TotalPrice.String())
	assert.True(t, dec("1782").Equal(s.TotalOfferPrice), s.TotalOfferPrice.String())
	assert.True(t, dec("7596.94").Equal(s.TotalSavings), s.TotalSavings.String())
	assert.True(t, dec("150").Equal(s.PackagingPrice))
	assert.True(t, dec("1932").Equal(s.TotalWithPackaging))
	assert.True(t, dec("702").Equal(s.TotalProfit), s.TotalProfit.String())

	assert.Equal(t, "store@oksbi", resp.Payment.UpiID)
	assert.True(t, dec("1932").Equal(resp.Payment.PaidAmount))
}

func TestOrderCreate_Rejections(t *testing.T) {
	f := newOrderFixture(orderDay)
	ctx := context.Background()

	t.Run("below minimum order value", func(t *testing.T) {
		_, err := f.svc.Create(ctx, f.request(item(f.sparkler, 1)))
		assert.True(t, errors.Is(err, ErrInvalid))
	})

	t.Run("above per-customer limit across lines", func(t *testing.T) {
		_, err := f.svc.Create(ctx, f.request(item(f.sparkler, 10), item(f.rocket, 2), item(f.rocket, 2)))
		assert.True(t, errors.Is(err, ErrInvalid))
	})

	t.Run("state outside delivery area", func(t *testing.T) {
		req := f.request(item(f.sparkler, 10))
		req.Customer.Address.State = "Goa"
		_, err := f.svc.Create(ctx, req)
		assert.True(t, errors.Is(err, ErrInvalid))
	})

	t.Run("inactive product", func(t *testing.T) {
		f.rocket.IsActive = false
		defer func() { f.rocket.IsActive = true }()
		_, err := f.svc.Create(ctx, f.request(item(f.sparkler, 10), item(f.rocket, 1)))
		assert.True(t, errors.Is(err, ErrInvalid))
	})

	assert.Empty(t, f.orders.orders)
}

func TestOrderCreate_NumbersWithinTheISTDay(t *testing.T) {
	f := newOrderFixture(orderDay)
	ctx := context.Background()

	for _, want := range []string{"ORD-201025-001", "ORD-201025-002"} {
		resp, err := f.svc.Create(ctx, f.request(item(f.sparkler, 10)))
		require.NoError(t, err)
		assert.Equal(t, want, resp.OrderID)
	}

	// 20:00 UTC is already the next day in India.
	late := time.Date(2025, 10, 20, 20, 0, 0, 0, time.UTC)
	f.svc.now = fixedClock(late)
	f.orders.now = fixedClock(late)
	resp, err := f.svc.Create(ctx, f.request(item(f.sparkler, 10)))
	require.NoError(t, err)
	assert.Equal(t, "ORD-211025-001", resp.OrderID)
}

func TestOrderCreate_RetriesOnTakenID(t *testing.T) {
	f := newOrderFixture(orderDay)
	f.orders.taken["ORD-201025-001"] = true

	resp, err := f.svc.Create(context.Background(), f.request(item(f.sparkler, 10)))
	require.NoError(t, err)
	assert.Equal(t, "ORD-201025-002", resp.OrderID)
}

func TestInvoiceNumberFor(t *testing.T) {
	assert.Equal(t, "INV-201025-007", InvoiceNumberFor("ORD-201025-007", orderDay))
	assert.Equal(t, "INV-201025-XYZ", InvoiceNumberFor("LEGACYXYZ", orderDay))
	assert.Equal(t, "INV-201025-AB", InvoiceNumberFor("AB", orderDay))
}

func TestUpdatePaymentStatus(t *testing.T) {
	f := newOrderFixture(orderDay)
	ctx := context.Background()
	created, err := f.svc.Create(ctx, f.request(item(f.sparkler, 10)))
	require.NoError(t, err)
	id := created.OrderID

	_, err = f.svc.UpdatePaymentStatus(ctx, id, dto.UpdatePaymentStatusRequest{PaymentStatus: model.PaymentPaid}, "owner@suncrackers.com")
	require.Error(t, err)
	assert.Equal(t, "Payment screenshot is required before marking as paid", err.Error())

	_, err = f.svc.AttachScreenshot(ctx, id, "uploads/pay-001.jpg")
	require.NoError(t, err)

	resp, err := f.svc.UpdatePaymentStatus(ctx, id, dto.UpdatePaymentStatusRequest{
		PaymentStatus: model.PaymentPaid,
		AdminNotes:    "UTR 1234",
	}, "owner@suncrackers.com")
	require.NoError(t, err)

	assert.Equal(t, model.PaymentPaid, resp.PaymentStatus)
	assert.Equal(t, model.OrderConfirmed, resp.OrderStatus)
	assert.Equal(t, "UTR 1234", resp.AdminNotes)
	require.NotNil(t, resp.Payment.PaymentDate)
	assert.True(t, orderDay.Equal(*resp.Payment.PaymentDate))
	assert.Equal(t, "owner@suncrackers.com", resp.Payment.AdminReviewedBy)
	require.NotNil(t, resp.InvoiceNumber)
	assert.Equal(t, "INV-201025-001", *resp.InvoiceNumber)

	// moving back and forth keeps the first invoice number and payment date
	_, err = f.svc.UpdatePaymentStatus(ctx, id, dto.UpdatePaymentStatusRequest{PaymentStatus: model.PaymentPending}, "x")
	require.NoError(t, err)
	f.svc.now = fixedClock(orderDay.Add(time.Hour))
	resp, err = f.svc.UpdatePaymentStatus(ctx, id, dto.UpdatePaymentStatusRequest{PaymentStatus: model.PaymentPaid}, "y")
	require.NoError(t, err)
	assert.Equal(t, "INV-201025-001", *resp.InvoiceNumber)
	assert.True(t, orderDay.Equal(*resp.Payment.PaymentDate))
	assert.Equal(t, "UTR 1234", resp.AdminNotes)
}

func TestUpdatePaymentStatus_DoesNotDowngradeShippedOrder(t *testing.T) {
	f := newOrderFixture(orderDay)
	f.orders.put(&model.Order{
		OrderID:       "ORD-201025-009",
		PaymentStatus: model.PaymentPending,
		OrderStatus:   model.OrderShipped,
		Payment:       model.PaymentDetails{PaymentScreenshot: "s.jpg"},
	})

	resp, err := f.svc.UpdatePaymentStatus(context.Background(), "ORD-201025-009",
		dto.UpdatePaymentStatusRequest{PaymentStatus: model.PaymentPaid}, "a")
	require.NoError(t, err)
	assert.Equal(t, model.OrderShipped, resp.OrderStatus)
}

func TestOrderAdminUpdates(t *testing.T) {
	f := newOrderFixture(orderDay)
	ctx := context.Background()
	created, err := f.svc.Create(ctx, f.request(item(f.sparkler, 10)))
	require.NoError(t, err)
	id := created.OrderID

	resp, err := f.svc.UpdateOrderStatus(ctx, id, dto.UpdateOrderStatusRequest{OrderStatus: model.OrderShipped})
	require.NoError(t, err)
	assert.Equal(t, model.OrderShipped, resp.OrderStatus)

	eta := orderDay.AddDate(0, 0, 3)
	resp, err = f.svc.UpdateTracking(ctx, id, dto.TrackingRequest{TrackingNumber: "KPN123", CourierPartner: "KPN", EstimatedDelivery: &eta})
	require.NoError(t, err)
	assert.Equal(t, "KPN123", resp.Tracking.TrackingNumber)

	resp, err = f.svc.UpdateNotes(ctx, id, dto.AdminNotesRequest{AdminNotes: "fragile"})
	require.NoError(t, err)
	assert.Equal(t, "fragile", resp.AdminNotes)

	_, err = f.svc.UpdateOrderStatus(ctx, "ORD-000000-000", dto.UpdateOrderStatusRequest{OrderStatus: model.OrderShipped})
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestCustomerTracking(t *testing.T) {
	f := newOrderFixture(orderDay)
	ctx := context.Background()
	created, err := f.svc.Create(ctx, f.request(item(f.sparkler, 10)))
	require.NoError(t, err)

	got, err := f.svc.Track(ctx, created.OrderID, "09876543210")
	require.NoError(t, err)
	assert.Equal(t, created.OrderID, got.OrderID)

	_, err = f.svc.Track(ctx, created.OrderID, "9876500000")
	assert.NoError(t, err, "delivery contact may track too")

	_, err = f.svc.Track(ctx, created.OrderID, "9000000000")
	assert.True(t, errors.Is(err, ErrNotFound))

	list, err := f.svc.ListByMobile(ctx, "9876543210")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = f.svc.UploadScreenshot(ctx, created.OrderID, "9876543210", "uploads/a.png")
	require.NoError(t, err)
	stored := f.orders.orders[created.OrderID]
	assert.Equal(t, "uploads/a.png", stored.Payment.PaymentScreenshot)
	require.NotNil(t, stored.Payment.ScreenshotUploadedAt)
}

func TestLocations(t *testing.T) {
	assert.Len(t, States(), 36)
	assert.Len(t, Districts("Kerala"), 14)
	assert.Empty(t, Districts("Atlantis"))
	assert.NotNil(t, Districts("Atlantis"))
	assert.True(t, IsDeliveryState("Telangana"))
	assert.False(t, IsDeliveryState("Goa"))
}
