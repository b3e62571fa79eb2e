package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/srikumaragency/b-admin-prod-03/internal/dto"
	"github.com/srikumaragency/b-admin-prod-03/internal/invoice"
	"github.com/srikumaragency/b-admin-prod-03/internal/model"
	"github.com/srikumaragency/b-admin-prod-03/internal/pricing"
	"github.com/srikumaragency/b-admin-prod-03/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderService covers the customer checkout and the admin order desk.
type OrderService interface {
	Create(ctx context.Context, req dto.CreateOrderRequest) (*dto.OrderResponse, error)
	Track(ctx context.Context, orderID, mobile string) (*dto.OrderResponse, error)
	ListByMobile(ctx context.Context, mobile string) ([]dto.OrderResponse, error)
	UploadScreenshot(ctx context.Context, orderID, mobile, ref string) (*dto.OrderResponse, error)

	List(ctx context.Context, filter dto.OrderFilter) (*dto.OrderListResponse, error)
	Get(ctx context.Context, orderID string) (*dto.OrderResponse, error)
	UpdatePaymentStatus(ctx context.Context, orderID string, req dto.UpdatePaymentStatusRequest, reviewer string) (*dto.OrderResponse, error)
	UpdateOrderStatus(ctx context.Context, orderID string, req dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error)
	UpdateTracking(ctx context.Context, orderID string, req dto.TrackingRequest) (*dto.OrderResponse, error)
	UpdateNotes(ctx context.Context, orderID string, req dto.AdminNotesRequest) (*dto.OrderResponse, error)
	AttachScreenshot(ctx context.Context, orderID, ref string) (*dto.OrderResponse, error)
}

type orderService struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	store    StoreService
	now      func() time.Time
}

func NewOrderService(orders repository.OrderRepository, products repository.ProductRepository, store StoreService) OrderService {
	return &orderService{orders: orders, products: products, store: store, now: time.Now}
}

// IST is the business day used for order numbering.
var IST = time.FixedZone("IST", 5*60*60+30*60)

const orderIDAttempts = 5

// ── Identifiers ──────────────────────────────────────────────────────────────

// FormatOrderID builds ORD-DDMMYY-NNN for the seq-th order of day.
func FormatOrderID(day time.Time, seq int) string {
	return fmt.Sprintf("ORD-%s-%03d", day.In(IST).Format("020106"), seq)
}

// InvoiceNumberFor derives the invoice number from the order id. Ids that do
// not follow the ORD- scheme get INV-DDMMYY-<last three characters>.
func InvoiceNumberFor(orderID string, createdAt time.Time) string {
	if strings.HasPrefix(orderID, "ORD-") {
		return "INV-" + strings.TrimPrefix(orderID, "ORD-")
	}
	tail := orderID
	if len(tail) > 3 {
		tail = tail[len(tail)-3:]
	}
	return fmt.Sprintf("INV-%s-%s", createdAt.In(IST).Format("020106"), tail)
}

// NormalizeMobile keeps the last ten digits of a phone number.
func NormalizeMobile(s string) string {
	digits := nonDigits.ReplaceAllString(s, "")
	if len(digits) > 10 {
		digits = digits[len(digits)-10:]
	}
	return digits
}

func startOfDay(t time.Time) time.Time {
	t = t.In(IST)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, IST)
}

// ── Customer surface ─────────────────────────────────────────────────────────

func (s *orderService) Create(ctx context.Context, req dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	addr := req.Customer.Address
	if !IsDeliveryState(addr.State) {
		return nil, newError(ErrInvalid, "We do not deliver to %s yet", addr.State)
	}
	mobile := NormalizeMobile(req.Customer.Mobile)
	if len(mobile) != 10 {
		return nil, newError(ErrInvalid, "Mobile number must have 10 digits")
	}

	settings, err := s.store.Settings(ctx)
	if err != nil {
		return nil, err
	}
	items, summary, err := s.priceItems(ctx, req.Items, settings.Packaging())
	if err != nil {
		return nil, err
	}
	if summary.TotalOfferPrice.LessThan(settings.MinimumOrderValue) {
		return nil, newError(ErrInvalid, "Minimum order value is Rs. %s", settings.MinimumOrderValue.StringFixed(2))
	}

	country := addr.Country
	if country == "" {
		country = "India"
	}
	deliveryMethod := req.DeliveryMethod
	if deliveryMethod == "" {
		deliveryMethod = "transport_office"
	}

	o := &model.Order{
		Customer: invoice.Customer{
			Name:            strings.TrimSpace(req.Customer.Name),
			Mobile:          mobile,
			DeliveryContact: NormalizeMobile(req.Customer.DeliveryContact),
			Address: invoice.Address{
				Street:      addr.Street,
				Landmark:    addr.Landmark,
				NearestTown: addr.NearestTown,
				District:    addr.District,
				State:       addr.State,
				Pincode:     addr.Pincode,
				Country:     country,
			},
		},
		CustomerMobile: mobile,
		CouponCode:     req.Customer.CouponCode,
		DeliveryMethod: deliveryMethod,
		Items:          items,
		Summary:        summary,
		PaymentStatus:  model.PaymentPending,
		OrderStatus:    model.OrderPlaced,
		Payment: model.PaymentDetails{
			UpiID:      settings.UpiID,
			PaidAmount: summary.TotalWithPackaging,
		},
	}
	if err := s.insertWithID(ctx, o); err != nil {
		return nil, err
	}

	log.Info().Str("order_id", o.OrderID).Str("total", summary.TotalWithPackaging.StringFixed(2)).Msg("order placed")
	resp := orderToResponse(o)
	return &resp, nil
}

// insertWithID numbers the order within its IST day. Two concurrent checkouts
// can read the same count; the unique index rejects the loser, which moves on
// to the next number.
func (s *orderService) insertWithID(ctx context.Context, o *model.Order) error {
	now := s.now()
	from := startOfDay(now)
	count, err := s.orders.CountCreatedBetween(ctx, from, from.AddDate(0, 0, 1))
	if err != nil {
		return err
	}
	for attempt := 0; attempt < orderIDAttempts; attempt++ {
		o.OrderID = FormatOrderID(now, int(count)+1+attempt)
		err = s.orders.Create(ctx, o)
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
		log.Warn().Str("order_id", o.OrderID).Msg("order id taken, retrying")
	}
	return fmt.Errorf("order: could not allocate an order id after %d attempts: %w", orderIDAttempts, err)
}

// priceItems snapshots every product and totals the order.
func (s *orderService) priceItems(ctx context.Context, reqItems []dto.OrderItemRequest, packaging pricing.PackagingSettings) ([]model.OrderItem, model.OrderSummary, error) {
	var summary model.OrderSummary
	if len(reqItems) == 0 {
		return nil, summary, newError(ErrInvalid, "Order must contain at least one item")
	}

	ids := make([]uuid.UUID, 0, len(reqItems))
	wanted := make(map[uuid.UUID]int, len(reqItems))
	for _, it := range reqItems {
		id, err := uuid.Parse(it.ProductID)
		if err != nil {
			return nil, summary, newError(ErrInvalid, "invalid product id %q", it.ProductID)
		}
		if it.Quantity < 1 {
			return nil, summary, newError(ErrInvalid, "Quantity must be at least 1")
		}
		if _, seen := wanted[id]; !seen {
			ids = append(ids, id)
		}
		wanted[id] += it.Quantity
	}

	found, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, summary, err
	}
	byID := make(map[uuid.UUID]*model.Product, len(found))
	for i := range found {
		byID[found[i].ID] = &found[i]
	}

	items := make([]model.OrderItem, 0, len(ids))
	for _, id := range ids {
		p, ok := byID[id]
		if !ok || !p.IsActive {
			return nil, summary, newError(ErrInvalid, "Product %s is not available", id)
		}
		qty := wanted[id]
		if p.MaxQuantityPerCustomer != nil && qty > *p.MaxQuantityPerCustomer {
			return nil, summary, newError(ErrInvalid, "Maximum %d per customer for %s", *p.MaxQuantityPerCustomer, p.Name)
		}

		discount := p.DiscountPercentage
		items = append(items, model.OrderItem{
			ProductID: p.ID,
			Snapshot: model.ProductSnapshot{
				ProductCode:             p.ProductCode,
				Name:                    p.Name,
				Description:             p.Description,
				CategoryID:              p.CategoryID,
				SubcategoryID:           p.SubcategoryID,
				BrandName:               p.BrandName,
				BasePrice:               p.BasePrice,
				ProfitMarginPercentage:  p.ProfitMarginPercentage,
				DiscountPercentage:      &discount,
				CalculatedOriginalPrice: p.CalculatedOriginalPrice,
			},
			Quantity:   qty,
			Price:      p.CalculatedOriginalPrice,
			OfferPrice: p.OfferPrice,
		})

		q := decimal.NewFromInt(int64(qty))
		summary.TotalItems += qty
		summary.TotalPrice = summary.TotalPrice.Add(p.CalculatedOriginalPrice.Mul(q))
		summary.TotalOfferPrice = summary.TotalOfferPrice.Add(p.OfferPrice.Mul(q))
		summary.TotalProfit = summary.TotalProfit.Add(p.OfferPrice.Sub(p.BasePrice).Mul(q))
	}

	summary.TotalSavings = summary.TotalPrice.Sub(summary.TotalOfferPrice)
	summary.PackagingPrice = pricing.PackagingCost(summary.TotalOfferPrice, packaging)
	summary.TotalWithPackaging = summary.TotalOfferPrice.Add(summary.PackagingPrice)
	return items, summary, nil
}

func (s *orderService) Track(ctx context.Context, orderID, mobile string) (*dto.OrderResponse, error) {
	o, err := s.customerOrder(ctx, orderID, mobile)
	if err != nil {
		return nil, err
	}
	resp := orderToResponse(o)
	return &resp, nil
}

func (s *orderService) ListByMobile(ctx context.Context, mobile string) ([]dto.OrderResponse, error) {
	mobile = NormalizeMobile(mobile)
	if len(mobile) != 10 {
		return nil, newError(ErrInvalid, "Mobile number must have 10 digits")
	}
	list, err := s.orders.ListByMobile(ctx, mobile)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, len(list))
	for i := range list {
		out[i] = orderToResponse(&list[i])
	}
	return out, nil
}

func (s *orderService) UploadScreenshot(ctx context.Context, orderID, mobile, ref string) (*dto.OrderResponse, error) {
	o, err := s.customerOrder(ctx, orderID, mobile)
	if err != nil {
		return nil, err
	}
	if o.PaymentStatus == model.PaymentPaid {
		return nil, newError(ErrInvalid, "Payment for this order is already confirmed")
	}
	return s.attach(ctx, o, ref)
}

// customerOrder loads an order only if mobile matches it. A mismatch looks
// exactly like a missing order.
func (s *orderService) customerOrder(ctx context.Context, orderID, mobile string) (*model.Order, error) {
	o, err := s.orders.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, notFound(err, "order")
	}
	m := NormalizeMobile(mobile)
	if m == "" || (m != o.CustomerMobile && m != NormalizeMobile(o.Customer.DeliveryContact)) {
		return nil, newError(ErrNotFound, "order not found")
	}
	return o, nil
}

// ── Admin surface ────────────────────────────────────────────────────────────

func (s *orderService) List(ctx context.Context, filter dto.OrderFilter) (*dto.OrderListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	list, total, err := s.orders.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.OrderResponse, len(list))
	for i := range list {
		data[i] = orderToResponse(&list[i])
	}
	return &dto.OrderListResponse{
		Data:       data,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

func (s *orderService) Get(ctx context.Context, orderID string) (*dto.OrderResponse, error) {
	o, err := s.orders.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, notFound(err, "order")
	}
	resp := orderToResponse(o)
	return &resp, nil
}

// UpdatePaymentStatus records the admin's review. Marking an order paid
// needs a screenshot on file; it confirms a freshly placed order and assigns
// the invoice number.
func (s *orderService) UpdatePaymentStatus(ctx context.Context, orderID string, req dto.UpdatePaymentStatusRequest, reviewer string) (*dto.OrderResponse, error) {
	o, err := s.orders.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, notFound(err, "order")
	}
	if req.PaymentStatus == model.PaymentPaid && o.Payment.PaymentScreenshot == "" {
		return nil, newError(ErrInvalid, "Payment screenshot is required before marking as paid")
	}

	now := s.now()
	o.PaymentStatus = req.PaymentStatus
	o.Payment.AdminReviewedAt = &now
	o.Payment.AdminReviewedBy = reviewer
	if req.AdminNotes != "" {
		o.AdminNotes = req.AdminNotes
	}
	if req.PaymentStatus == model.PaymentPaid {
		if o.Payment.PaymentDate == nil {
			o.Payment.PaymentDate = &now
		}
		if o.OrderStatus == model.OrderPlaced {
			o.OrderStatus = model.OrderConfirmed
		}
		assignInvoice(o, reviewer, now)
	}

	if err := s.orders.Update(ctx, o); err != nil {
		return nil, err
	}
	log.Info().Str("order_id", o.OrderID).Str("payment_status", o.PaymentStatus).Str("by", reviewer).Msg("payment status updated")
	resp := orderToResponse(o)
	return &resp, nil
}

func (s *orderService) UpdateOrderStatus(ctx context.Context, orderID string, req dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error) {
	return s.mutate(ctx, orderID, func(o *model.Order) error {
		o.OrderStatus = req.OrderStatus
		return nil
	})
}

func (s *orderService) UpdateTracking(ctx context.Context, orderID string, req dto.TrackingRequest) (*dto.OrderResponse, error) {
	return s.mutate(ctx, orderID, func(o *model.Order) error {
		o.Tracking = model.TrackingInfo{
			EstimatedDelivery: req.EstimatedDelivery,
			TrackingNumber:    req.TrackingNumber,
			CourierPartner:    req.CourierPartner,
		}
		return nil
	})
}

func (s *orderService) UpdateNotes(ctx context.Context, orderID string, req dto.AdminNotesRequest) (*dto.OrderResponse, error) {
	return s.mutate(ctx, orderID, func(o *model.Order) error {
		o.AdminNotes = req.AdminNotes
		return nil
	})
}

func (s *orderService) AttachScreenshot(ctx context.Context, orderID, ref string) (*dto.OrderResponse, error) {
	o, err := s.orders.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, notFound(err, "order")
	}
	return s.attach(ctx, o, ref)
}

func (s *orderService) attach(ctx context.Context, o *model.Order, ref string) (*dto.OrderResponse, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, newError(ErrInvalid, "Payment screenshot reference is required")
	}
	now := s.now()
	o.Payment.PaymentScreenshot = ref
	o.Payment.ScreenshotUploadedAt = &now
	if err := s.orders.Update(ctx, o); err != nil {
		return nil, err
	}
	resp := orderToResponse(o)
	return &resp, nil
}

func (s *orderService) mutate(ctx context.Context, orderID string, fn func(*model.Order) error) (*dto.OrderResponse, error) {
	o, err := s.orders.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, notFound(err, "order")
	}
	if err := fn(o); err != nil {
		return nil, err
	}
	if err := s.orders.Update(ctx, o); err != nil {
		return nil, err
	}
	resp := orderToResponse(o)
	return &resp, nil
}

// assignInvoice sets the invoice number once; later calls keep the first.
func assignInvoice(o *model.Order, by string, at time.Time) bool {
	if o.HasInvoice() {
		return false
	}
	num := InvoiceNumberFor(o.OrderID, o.CreatedAt)
	o.InvoiceNumber = &num
	o.InvoiceGeneratedAt = &at
	o.InvoiceGeneratedBy = by
	return true
}

func orderToResponse(o *model.Order) dto.OrderResponse {
	return dto.OrderResponse{
		OrderID:            o.OrderID,
		Customer:           o.Customer,
		CouponCode:         o.CouponCode,
		DeliveryMethod:     o.DeliveryMethod,
		Items:              o.Items,
		Summary:            o.Summary,
		PaymentStatus:      o.PaymentStatus,
		OrderStatus:        o.OrderStatus,
		Payment:            o.Payment,
		Tracking:           o.Tracking,
		AdminNotes:         o.AdminNotes,
		InvoiceNumber:      o.InvoiceNumber,
		InvoiceGeneratedAt: o.InvoiceGeneratedAt,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}
}
