package service

import (
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/srikumaragency/b-admin-prod-03/internal/dto"
	"github.com/srikumaragency/b-admin-prod-03/internal/invoice"
	"github.com/srikumaragency/b-admin-prod-03/internal/metrics"
	"github.com/srikumaragency/b-admin-prod-03/internal/model"
	"github.com/srikumaragency/b-admin-prod-03/internal/repository"

	"github.com/rs/zerolog/log"
)

type InvoiceService interface {
	// Generate assigns the invoice number of a paid order. Repeating the
	// call returns the existing invoice.
	Generate(ctx context.Context, orderID, by string) (*dto.InvoiceSummaryResponse, error)
	GenerateAll(ctx context.Context, by string) (*dto.BulkInvoiceResponse, error)
	List(ctx context.Context, filter dto.InvoiceFilter) (*dto.InvoiceListResponse, error)

	// Data loads the invoice data of a paid order for an admin.
	Data(ctx context.Context, orderID, by string) (*invoice.Data, error)
	// CustomerData is Data for the customer who placed the order.
	CustomerData(ctx context.Context, orderID, mobile string) (*invoice.Data, error)
	// Render produces a validated PDF, rendering once more if the first
	// document fails validation.
	Render(ctx context.Context, data invoice.Data) ([]byte, error)
	Debug(ctx context.Context, orderID string) (*dto.InvoiceDebugResponse, error)
}

type invoiceService struct {
	orders     repository.OrderRepository
	store      StoreService
	letterhead invoice.Store
	format     invoice.Format
	metrics    *metrics.Registry
	render     func(invoice.Data, invoice.Format) ([]byte, error)
	now        func() time.Time
}

// NewInvoiceService renders with the configured letterhead; contact details
// saved in the store settings replace the configured ones. store may be nil.
func NewInvoiceService(orders repository.OrderRepository, store StoreService, letterhead invoice.Store, format invoice.Format, m *metrics.Registry) InvoiceService {
	return &invoiceService{
		orders:     orders,
		store:      store,
		letterhead: letterhead,
		format:     format,
		metrics:    m,
		render:     invoice.Render,
		now:        time.Now,
	}
}

var errNotPaid = newError(ErrInvalid, "Invoice can only be generated for paid orders")

func (s *invoiceService) Generate(ctx context.Context, orderID, by string) (*dto.InvoiceSummaryResponse, error) {
	o, err := s.orders.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, notFound(err, "order")
	}
	if err := s.ensureInvoice(ctx, o, by); err != nil {
		return nil, err
	}
	resp := invoiceSummary(o)
	return &resp, nil
}

func (s *invoiceService) GenerateAll(ctx context.Context, by string) (*dto.BulkInvoiceResponse, error) {
	pending, err := s.orders.PaidWithoutInvoice(ctx)
	if err != nil {
		return nil, err
	}
	resp := &dto.BulkInvoiceResponse{Results: make([]dto.BulkInvoiceResult, 0, len(pending))}
	for i := range pending {
		o := &pending[i]
		res := dto.BulkInvoiceResult{OrderID: o.OrderID}
		if err := s.ensureInvoice(ctx, o, by); err != nil {
			res.Error = err.Error()
			resp.Failed++
			log.Error().Err(err).Str("order_id", o.OrderID).Msg("bulk invoice generation failed")
		} else {
			res.Success = true
			res.InvoiceNumber = *o.InvoiceNumber
			resp.Succeeded++
		}
		resp.Results = append(resp.Results, res)
		resp.Processed++
	}
	log.Info().Int("processed", resp.Processed).Int("failed", resp.Failed).Msg("bulk invoice generation finished")
	return resp, nil
}

func (s *invoiceService) List(ctx context.Context, filter dto.InvoiceFilter) (*dto.InvoiceListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	list, total, err := s.orders.ListInvoiced(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.InvoiceSummaryResponse, len(list))
	for i := range list {
		data[i] = invoiceSummary(&list[i])
	}
	return &dto.InvoiceListResponse{
		Data:       data,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

func (s *invoiceService) Data(ctx context.Context, orderID, by string) (*invoice.Data, error) {
	o, err := s.orders.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, notFound(err, "order")
	}
	if err := s.ensureInvoice(ctx, o, by); err != nil {
		return nil, err
	}
	data := InvoiceData(o, s.letterheadFor(ctx))
	return &data, nil
}

func (s *invoiceService) CustomerData(ctx context.Context, orderID, mobile string) (*invoice.Data, error) {
	o, err := s.orders.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, notFound(err, "order")
	}
	m := NormalizeMobile(mobile)
	if m == "" || (m != o.CustomerMobile && m != NormalizeMobile(o.Customer.DeliveryContact)) {
		return nil, newError(ErrNotFound, "order not found")
	}
	if err := s.ensureInvoice(ctx, o, "customer"); err != nil {
		return nil, err
	}
	data := InvoiceData(o, s.letterheadFor(ctx))
	return &data, nil
}

func (s *invoiceService) Render(ctx context.Context, data invoice.Data) ([]byte, error) {
	start := time.Now()
	buf, err := s.renderValid(data)
	if errors.Is(err, invoice.ErrRenderFailure) {
		log.Warn().Err(err).Str("invoice", data.InvoiceNumber).Msg("invoice failed validation, rendering again")
		buf, err = s.renderValid(data)
		if err == nil {
			s.metrics.InvoiceRenders.WithLabelValues(metrics.ResultRetried).Inc()
		}
	} else if err == nil {
		s.metrics.InvoiceRenders.WithLabelValues(metrics.ResultOK).Inc()
	}
	if err != nil {
		s.metrics.InvoiceRenders.WithLabelValues(metrics.ResultFailed).Inc()
		log.Error().Err(err).Str("invoice", data.InvoiceNumber).Msg("invoice render failed")
		return nil, err
	}

	s.metrics.InvoiceRenderSec.Observe(time.Since(start).Seconds())
	s.metrics.InvoiceRenderBytes.Observe(float64(len(buf)))
	log.Debug().Str("invoice", data.InvoiceNumber).Int("bytes", len(buf)).Int("items", len(data.Items)).Msg("invoice rendered")
	return buf, nil
}

func (s *invoiceService) renderValid(data invoice.Data) ([]byte, error) {
	buf, err := s.render(data, s.format)
	if err != nil {
		return nil, err
	}
	if err := invoice.Validate(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// Debug renders without serving and reports what came out. Orders without
// an invoice get a placeholder number and nothing is persisted.
func (s *invoiceService) Debug(ctx context.Context, orderID string) (*dto.InvoiceDebugResponse, error) {
	o, err := s.orders.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, notFound(err, "order")
	}
	data := InvoiceData(o, s.letterheadFor(ctx))
	if !o.HasInvoice() {
		data.InvoiceNumber = "INV-" + o.OrderID + "-DEBUG"
	}

	perPage := s.format.ItemsPerPage
	if perPage <= 0 {
		perPage = invoice.DefaultItemsPerPage
	}
	resp := &dto.InvoiceDebugResponse{
		OrderID:       o.OrderID,
		InvoiceNumber: data.InvoiceNumber,
		PaymentStatus: o.PaymentStatus,
		HasInvoice:    o.HasInvoice(),
		ItemCount:     len(data.Items),
		PageCount:     invoice.PageCount(len(data.Items), perPage),
		ItemsPerPage:  perPage,
	}

	start := time.Now()
	buf, err := s.render(data, s.format)
	resp.RenderMillis = time.Since(start).Milliseconds()
	if err != nil {
		resp.Error = err.Error()
		return resp, nil
	}
	resp.ByteSize = len(buf)
	resp.ValidHeader = bytes.HasPrefix(buf, []byte("%PDF"))
	if err := invoice.Validate(buf); err != nil {
		resp.Error = err.Error()
	} else {
		resp.Valid = true
	}
	return resp, nil
}

// letterheadFor overlays the store's saved contact details on the configured
// letterhead. A settings read failure falls back to the configuration.
func (s *invoiceService) letterheadFor(ctx context.Context) invoice.Store {
	if s.store == nil {
		return s.letterhead
	}
	st, err := s.store.Settings(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("store settings unavailable, using configured letterhead")
		return s.letterhead
	}
	return WithStoreContacts(s.letterhead, st)
}

// WithStoreContacts replaces the letterhead email and phone with the
// non-empty contact fields of the store settings.
func WithStoreContacts(l invoice.Store, st *model.StoreSettings) invoice.Store {
	if st == nil {
		return l
	}
	if st.ContactEmail != "" {
		l.Email = st.ContactEmail
	}
	if st.ContactPhone != "" {
		l.WhatsApp = st.ContactPhone
	}
	return l
}

// ensureInvoice assigns and persists the invoice number of a paid order.
func (s *invoiceService) ensureInvoice(ctx context.Context, o *model.Order, by string) error {
	if o.PaymentStatus != model.PaymentPaid {
		return errNotPaid
	}
	if !assignInvoice(o, by, s.now()) {
		return nil
	}
	if err := s.orders.Update(ctx, o); err != nil {
		return err
	}
	s.metrics.InvoicesGenerated.Inc()
	log.Info().Str("order_id", o.OrderID).Str("invoice", *o.InvoiceNumber).Str("by", by).Msg("invoice generated")
	return nil
}

// InvoiceData maps an order onto the invoice engine's input.
func InvoiceData(o *model.Order, letterhead invoice.Store) invoice.Data {
	items := make([]invoice.LineItem, len(o.Items))
	for i, it := range o.Items {
		items[i] = invoice.LineItem{
			ProductCode:        it.Snapshot.ProductCode,
			Name:               it.Snapshot.Name,
			Quantity:           it.Quantity,
			UnitRate:           it.Price,
			DiscountPercentage: it.Snapshot.DiscountPercentage,
		}
	}

	generated := o.CreatedAt
	if o.InvoiceGeneratedAt != nil {
		generated = *o.InvoiceGeneratedAt
	}
	var number string
	if o.InvoiceNumber != nil {
		number = *o.InvoiceNumber
	}
	return invoice.Data{
		InvoiceNumber: number,
		OrderID:       o.OrderID,
		GeneratedAt:   generated,
		PaymentStatus: o.PaymentStatus,
		Customer:      o.Customer,
		Items:         items,
		Summary: &invoice.Summary{
			TotalPrice:         o.Summary.TotalPrice,
			TotalSavings:       o.Summary.TotalSavings,
			TotalOfferPrice:    o.Summary.TotalOfferPrice,
			PackagingPrice:     o.Summary.PackagingPrice,
			TotalWithPackaging: o.Summary.TotalWithPackaging,
		},
		Store: letterhead,
	}
}

func invoiceSummary(o *model.Order) dto.InvoiceSummaryResponse {
	resp := dto.InvoiceSummaryResponse{
		OrderID:      o.OrderID,
		CustomerName: o.Customer.Name,
		Mobile:       o.CustomerMobile,
		Amount:       o.Summary.TotalWithPackaging,
		GeneratedBy:  o.InvoiceGeneratedBy,
	}
	if o.InvoiceNumber != nil {
		resp.InvoiceNumber = *o.InvoiceNumber
	}
	if o.InvoiceGeneratedAt != nil {
		resp.GeneratedAt = *o.InvoiceGeneratedAt
	}
	return resp
}
