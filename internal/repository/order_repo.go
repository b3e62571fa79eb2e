package repository

import (
	"context"
	"time"

	"github.com/srikumaragency/b-admin-prod-03/internal/dto"
	"github.com/srikumaragency/b-admin-prod-03/internal/model"

	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(ctx context.Context, o *model.Order) error
	FindByOrderID(ctx context.Context, orderID string) (*model.Order, error)
	ListByMobile(ctx context.Context, mobile string) ([]model.Order, error)
	List(ctx context.Context, filter dto.OrderFilter) ([]model.Order, int64, error)
	// CountCreatedBetween counts orders with from <= created_at < to.
	CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error)
	Update(ctx context.Context, o *model.Order) error

	// PaidWithoutInvoice lists paid orders that have no invoice number yet.
	PaidWithoutInvoice(ctx context.Context) ([]model.Order, error)
	ListInvoiced(ctx context.Context, filter dto.InvoiceFilter) ([]model.Order, int64, error)
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepository(db *gorm.DB) OrderRepository { return &orderRepo{db: db} }

func (r *orderRepo) Create(ctx context.Context, o *model.Order) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *orderRepo) FindByOrderID(ctx context.Context, orderID string) (*model.Order, error) {
	var o model.Order
	if err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) ListByMobile(ctx context.Context, mobile string) ([]model.Order, error) {
	var list []model.Order
	err := r.db.WithContext(ctx).Where("customer_mobile = ?", mobile).Order("created_at DESC").Find(&list).Error
	return list, err
}

var orderSortColumns = map[string]string{
	"createdAt": "created_at",
	"orderId":   "order_id",
	"total":     "(summary->>'totalWithPackaging')::numeric",
}

func (r *orderRepo) List(ctx context.Context, filter dto.OrderFilter) ([]model.Order, int64, error) {
	var list []model.Order
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Order{})
	if filter.PaymentStatus != "" {
		q = q.Where("payment_status = ?", filter.PaymentStatus)
	}
	if filter.OrderStatus != "" {
		q = q.Where("order_status = ?", filter.OrderStatus)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("order_id ILIKE ? OR customer_mobile ILIKE ? OR customer->>'name' ILIKE ?", like, like, like)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	col, ok := orderSortColumns[filter.SortBy]
	if !ok {
		col = "created_at"
	}
	dir := "DESC"
	if filter.SortOrder == "asc" {
		dir = "ASC"
	}
	offset := (filter.Page - 1) * filter.Limit
	err := q.Order(col + " " + dir).Limit(filter.Limit).Offset(offset).Find(&list).Error
	return list, total, err
}

func (r *orderRepo) CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("created_at >= ? AND created_at < ?", from, to).Count(&n).Error
	return n, err
}

func (r *orderRepo) Update(ctx context.Context, o *model.Order) error {
	return r.db.WithContext(ctx).Save(o).Error
}

func (r *orderRepo) PaidWithoutInvoice(ctx context.Context) ([]model.Order, error) {
	var list []model.Order
	err := r.db.WithContext(ctx).
		Where("payment_status = ? AND (invoice_number IS NULL OR invoice_number = '')", model.PaymentPaid).
		Order("created_at ASC").
		Find(&list).Error
	return list, err
}

func (r *orderRepo) ListInvoiced(ctx context.Context, filter dto.InvoiceFilter) ([]model.Order, int64, error) {
	var list []model.Order
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Order{}).Where("invoice_number IS NOT NULL AND invoice_number <> ''")
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("invoice_number ILIKE ? OR order_id ILIKE ? OR customer_mobile ILIKE ? OR customer->>'name' ILIKE ?",
			like, like, like, like)
	}
	if filter.From != nil {
		q = q.Where("invoice_generated_at >= ?", *filter.From)
	}
	if filter.To != nil {
		// inclusive of the whole "to" day
		q = q.Where("invoice_generated_at < ?", filter.To.AddDate(0, 0, 1))
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("invoice_generated_at DESC").Limit(filter.Limit).Offset(offset).Find(&list).Error
	return list, total, err
}
