package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/srikumaragency/b-admin-prod-03/internal/dto"
	"github.com/srikumaragency/b-admin-prod-03/internal/model"
	"github.com/srikumaragency/b-admin-prod-03/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── In-memory repositories ───────────────────────────────────────────────────

type stubAdminRepo struct {
	admins map[string]*model.Admin
}

var _ repository.AdminRepository = (*stubAdminRepo)(nil)

func newStubAdminRepo(admins ...*model.Admin) *stubAdminRepo {
	r := &stubAdminRepo{admins: map[string]*model.Admin{}}
	for _, a := range admins {
		r.admins[strings.ToLower(a.Email)] = a
	}
	return r
}

func (r *stubAdminRepo) FindByEmail(_ context.Context, email string) (*model.Admin, error) {
	a, ok := r.admins[strings.ToLower(email)]
	if !ok || !a.IsActive {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

func (r *stubAdminRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Admin, error) {
	for _, a := range r.admins {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubAdminRepo) Upsert(_ context.Context, a *model.Admin) error {
	r.admins[strings.ToLower(a.Email)] = a
	return nil
}

type stubCategoryRepo struct {
	cats map[uuid.UUID]*model.Category
	subs map[uuid.UUID]*model.Subcategory
}

var _ repository.CategoryRepository = (*stubCategoryRepo)(nil)

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{cats: map[uuid.UUID]*model.Category{}, subs: map[uuid.UUID]*model.Subcategory{}}
}

// seed adds one category with one subcategory.
func (r *stubCategoryRepo) seed() (catID, subID uuid.UUID) {
	catID, subID = uuid.New(), uuid.New()
	r.cats[catID] = &model.Category{ID: catID, Name: "Sparklers", IsActive: true}
	r.subs[subID] = &model.Subcategory{ID: subID, CategoryID: catID, Name: "Electric", IsActive: true}
	return catID, subID
}

func (r *stubCategoryRepo) Create(_ context.Context, c *model.Category) error {
	for _, existing := range r.cats {
		if existing.Name == c.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	c.ID = uuid.New()
	r.cats[c.ID] = c
	return nil
}

func (r *stubCategoryRepo) List(context.Context) ([]model.Category, error) {
	var out []model.Category
	for _, c := range r.cats {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Category, error) {
	c, ok := r.cats[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubCategoryRepo) Update(_ context.Context, c *model.Category) error {
	r.cats[c.ID] = c
	return nil
}

func (r *stubCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.cats[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.cats, id)
	for sid, s := range r.subs {
		if s.CategoryID == id {
			delete(r.subs, sid)
		}
	}
	return nil
}

func (r *stubCategoryRepo) CreateSubcategory(_ context.Context, s *model.Subcategory) error {
	for _, existing := range r.subs {
		if existing.CategoryID == s.CategoryID && existing.Name == s.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	s.ID = uuid.New()
	r.subs[s.ID] = s
	return nil
}

func (r *stubCategoryRepo) ListSubcategories(_ context.Context, categoryID uuid.UUID) ([]model.Subcategory, error) {
	var out []model.Subcategory
	for _, s := range r.subs {
		if s.CategoryID == categoryID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *stubCategoryRepo) FindSubcategory(_ context.Context, id uuid.UUID) (*model.Subcategory, error) {
	s, ok := r.subs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubCategoryRepo) UpdateSubcategory(_ context.Context, s *model.Subcategory) error {
	r.subs[s.ID] = s
	return nil
}

func (r *stubCategoryRepo) DeleteSubcategory(_ context.Context, id uuid.UUID) error {
	if _, ok := r.subs[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.subs, id)
	return nil
}

type stubProductRepo struct {
	products map[uuid.UUID]*model.Product
}

var _ repository.ProductRepository = (*stubProductRepo)(nil)

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: map[uuid.UUID]*model.Product{}}
}

// add stores a priced product and returns it.
func (r *stubProductRepo) add(code string, base, original, offer string, maxPerCustomer *int) *model.Product {
	p := &model.Product{
		ID:                      uuid.New(),
		ProductCode:             code,
		Name:                    "Product " + code,
		BasePrice:               decimal.RequireFromString(base),
		ProfitMarginPercentage:  decimal.NewFromInt(65),
		DiscountPercentage:      decimal.NewFromInt(81),
		CalculatedOriginalPrice: decimal.RequireFromString(original),
		OfferPrice:              decimal.RequireFromString(offer),
		MaxQuantityPerCustomer:  maxPerCustomer,
		IsActive:                true,
	}
	r.products[p.ID] = p
	return p
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	for _, existing := range r.products {
		if existing.ProductCode == p.ProductCode {
			return gorm.ErrDuplicatedKey
		}
	}
	p.ID = uuid.New()
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubProductRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]model.Product, error) {
	var out []model.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok && !p.IsDeleted {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) FindByCode(_ context.Context, code string) (*model.Product, error) {
	for _, p := range r.products {
		if p.ProductCode == code && !p.IsDeleted && p.IsActive {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductRepo) CodeTaken(_ context.Context, code string, excludeID *uuid.UUID) (bool, error) {
	for _, p := range r.products {
		if p.ProductCode == code && (excludeID == nil || p.ID != *excludeID) {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubProductRepo) List(_ context.Context, filter dto.ProductFilter) ([]model.Product, int64, error) {
	var out []model.Product
	for _, p := range r.products {
		if p.IsDeleted == (filter.Deleted == "true") || filter.Deleted == "all" {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductCode < out[j].ProductCode })
	return out, int64(len(out)), nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *stubProductRepo) SoftDelete(_ context.Context, id uuid.UUID, at time.Time) error {
	p := r.products[id]
	p.IsDeleted, p.IsActive, p.DeletedAt = true, false, &at
	return nil
}

func (r *stubProductRepo) Restore(_ context.Context, id uuid.UUID) error {
	p := r.products[id]
	p.IsDeleted, p.IsActive, p.DeletedAt = false, true, nil
	return nil
}

func (r *stubProductRepo) CountBySubcategory(_ context.Context, id uuid.UUID) (int64, error) {
	var n int64
	for _, p := range r.products {
		if p.SubcategoryID == id && !p.IsDeleted {
			n++
		}
	}
	return n, nil
}

func (r *stubProductRepo) CountByCategory(_ context.Context, id uuid.UUID) (int64, error) {
	var n int64
	for _, p := range r.products {
		if p.CategoryID == id && !p.IsDeleted {
			n++
		}
	}
	return n, nil
}

type stubStoreRepo struct {
	settings *model.StoreSettings
	saves    int
}

var _ repository.StoreRepository = (*stubStoreRepo)(nil)

func (r *stubStoreRepo) Get(context.Context) (*model.StoreSettings, error) {
	if r.settings == nil {
		s := model.DefaultStoreSettings()
		r.settings = &s
	}
	cp := *r.settings
	return &cp, nil
}

func (r *stubStoreRepo) Save(_ context.Context, s *model.StoreSettings) error {
	cp := *s
	r.settings = &cp
	r.saves++
	return nil
}

type stubOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*model.Order
	// taken order ids make Create fail with a duplicate key once each.
	taken   map[string]bool
	updates int
	now     func() time.Time
}

var _ repository.OrderRepository = (*stubOrderRepo)(nil)

func newStubOrderRepo(now func() time.Time) *stubOrderRepo {
	return &stubOrderRepo{orders: map[string]*model.Order{}, taken: map[string]bool{}, now: now}
}

func (r *stubOrderRepo) put(o *model.Order) {
	cp := *o
	r.orders[o.OrderID] = &cp
}

func (r *stubOrderRepo) Create(_ context.Context, o *model.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.orders[o.OrderID]; dup || r.taken[o.OrderID] {
		delete(r.taken, o.OrderID)
		return gorm.ErrDuplicatedKey
	}
	o.ID = uuid.New()
	o.CreatedAt = r.now()
	o.UpdatedAt = o.CreatedAt
	r.put(o)
	return nil
}

func (r *stubOrderRepo) FindByOrderID(_ context.Context, orderID string) (*model.Order, error) {
	o, ok := r.orders[orderID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *stubOrderRepo) ListByMobile(_ context.Context, mobile string) ([]model.Order, error) {
	var out []model.Order
	for _, o := range r.orders {
		if o.CustomerMobile == mobile {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *stubOrderRepo) List(_ context.Context, filter dto.OrderFilter) ([]model.Order, int64, error) {
	var out []model.Order
	for _, o := range r.orders {
		if filter.PaymentStatus == "" || o.PaymentStatus == filter.PaymentStatus {
			out = append(out, *o)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubOrderRepo) CountCreatedBetween(_ context.Context, from, to time.Time) (int64, error) {
	var n int64
	for _, o := range r.orders {
		if !o.CreatedAt.Before(from) && o.CreatedAt.Before(to) {
			n++
		}
	}
	return n, nil
}

func (r *stubOrderRepo) Update(_ context.Context, o *model.Order) error {
	r.updates++
	r.put(o)
	return nil
}

func (r *stubOrderRepo) PaidWithoutInvoice(context.Context) ([]model.Order, error) {
	var out []model.Order
	for _, o := range r.orders {
		if o.PaymentStatus == model.PaymentPaid && !o.HasInvoice() {
			out = append(out, *o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderID < out[j].OrderID })
	return out, nil
}

func (r *stubOrderRepo) ListInvoiced(_ context.Context, _ dto.InvoiceFilter) ([]model.Order, int64, error) {
	var out []model.Order
	for _, o := range r.orders {
		if o.HasInvoice() {
			out = append(out, *o)
		}
	}
	return out, int64(len(out)), nil
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decp(s string) *decimal.Decimal {
	v := dec(s)
	return &v
}

func intp(n int) *int { return &n }

func fixedClock(t time.Time) func() time.Time { return func() time.Time { return t } }
