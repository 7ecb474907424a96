package workflow

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"culinary-be/internal/item"
	"culinary-be/internal/notify"
	"culinary-be/internal/order"
	"culinary-be/internal/stats"
	"culinary-be/internal/supplier"
)

// fakeStore is an in-memory implementation of every store interface.
type fakeStore struct {
	mu sync.Mutex

	items     map[string]*item.Item
	suppliers map[string]*supplier.Supplier
	orders    map[string]*order.Order
	seq       int
	now       time.Time

	calls map[string]int
	fail  map[string]error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		items:     map[string]*item.Item{},
		suppliers: map[string]*supplier.Supplier{},
		orders:    map[string]*order.Order{},
		now:       time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC),
		calls:     map[string]int{},
		fail:      map[string]error{},
	}
}

func (f *fakeStore) stores() Stores {
	return Stores{Items: f, Suppliers: f, Orders: f, Stats: f}
}

func (f *fakeStore) enter(op string) error {
	f.calls[op]++
	return f.fail[op]
}

func (f *fakeStore) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeStore) failWith(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.fail, op)
		return
	}
	f.fail[op] = err
}

func (f *fakeStore) nextID(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s-%04d-0000", prefix, f.seq)
}

func (f *fakeStore) tick() time.Time {
	f.now = f.now.Add(time.Minute)
	return f.now
}

func (f *fakeStore) supplierName(id *string) *string {
	if id == nil {
		return nil
	}
	if s, ok := f.suppliers[*id]; ok {
		name := s.Name
		return &name
	}
	return nil
}

func (f *fakeStore) FetchItems(ctx context.Context) ([]*item.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("FetchItems"); err != nil {
		return nil, err
	}

	out := make([]*item.Item, 0, len(f.items))
	for _, it := range f.items {
		cp := *it
		cp.SupplierName = f.supplierName(it.SupplierID)
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeStore) CreateItem(ctx context.Context, d item.Draft) (*item.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("CreateItem"); err != nil {
		return nil, err
	}

	now := f.tick()
	it := &item.Item{
		ID: f.nextID("item"), Name: d.Name, Category: d.Category, CurrentStock: d.CurrentStock,
		Unit: d.Unit, MinLevel: d.MinLevel, Status: d.Status, LastOrdered: d.LastOrdered,
		SupplierID: d.SupplierID, UnitPrice: d.UnitPrice, CreatedAt: now, UpdatedAt: now,
	}
	f.items[it.ID] = it
	cp := *it
	return &cp, nil
}

func (f *fakeStore) UpdateItem(ctx context.Context, id string, d item.Draft) (*item.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("UpdateItem"); err != nil {
		return nil, err
	}

	it, ok := f.items[id]
	if !ok {
		return nil, item.ErrItemNotFound
	}
	it.Name, it.Category, it.CurrentStock, it.Unit = d.Name, d.Category, d.CurrentStock, d.Unit
	it.MinLevel, it.Status, it.SupplierID, it.UnitPrice = d.MinLevel, d.Status, d.SupplierID, d.UnitPrice
	it.LastOrdered = d.LastOrdered
	it.UpdatedAt = f.tick()
	cp := *it
	return &cp, nil
}

func (f *fakeStore) DeleteItem(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("DeleteItem"); err != nil {
		return err
	}

	if _, ok := f.items[id]; !ok {
		return item.ErrItemNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeStore) FetchSuppliers(ctx context.Context) ([]*supplier.Supplier, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("FetchSuppliers"); err != nil {
		return nil, err
	}

	out := make([]*supplier.Supplier, 0, len(f.suppliers))
	for _, s := range f.suppliers {
		cp := *s
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeStore) GetSupplier(ctx context.Context, id string) (*supplier.Supplier, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("GetSupplier"); err != nil {
		return nil, err
	}

	s, ok := f.suppliers[id]
	if !ok {
		return nil, supplier.ErrSupplierNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeStore) CreateSupplier(ctx context.Context, d supplier.Draft) (*supplier.Supplier, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("CreateSupplier"); err != nil {
		return nil, err
	}

	status := d.Status
	if status == "" {
		status = supplier.StatusActive
	}
	now := f.tick()
	s := &supplier.Supplier{
		ID: f.nextID("sup"), Name: d.Name, Contact: d.Contact, Phone: d.Phone, Email: d.Email,
		Category: d.Category, Status: status, CreatedAt: now, UpdatedAt: now,
	}
	f.suppliers[s.ID] = s
	cp := *s
	return &cp, nil
}

func (f *fakeStore) UpdateSupplier(ctx context.Context, id string, d supplier.Draft, lastOrder *time.Time) (*supplier.Supplier, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("UpdateSupplier"); err != nil {
		return nil, err
	}

	s, ok := f.suppliers[id]
	if !ok {
		return nil, supplier.ErrSupplierNotFound
	}
	s.Name, s.Contact, s.Phone, s.Email, s.Category = d.Name, d.Contact, d.Phone, d.Email, d.Category
	if d.Status != "" {
		s.Status = d.Status
	}
	s.LastOrder = lastOrder
	s.UpdatedAt = f.tick()
	cp := *s
	return &cp, nil
}

func (f *fakeStore) DeleteSupplier(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("DeleteSupplier"); err != nil {
		return err
	}

	if _, ok := f.suppliers[id]; !ok {
		return supplier.ErrSupplierNotFound
	}
	delete(f.suppliers, id)
	return nil
}

func (f *fakeStore) FetchOrders(ctx context.Context) ([]*order.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("FetchOrders"); err != nil {
		return nil, err
	}

	out := make([]*order.Order, 0, len(f.orders))
	for _, o := range f.orders {
		cp := *o
		cp.Items = nil
		cp.SupplierName = f.supplierName(o.SupplierID)
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].OrderDate.After(out[j].OrderDate) })
	return out, nil
}

func (f *fakeStore) GetOrderWithItems(ctx context.Context, id string) (*order.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("GetOrderWithItems"); err != nil {
		return nil, err
	}

	o, ok := f.orders[id]
	if !ok {
		return nil, order.ErrOrderNotFound
	}
	cp := *o
	cp.SupplierName = f.supplierName(o.SupplierID)
	if o.SupplierID != nil {
		if s, ok := f.suppliers[*o.SupplierID]; ok {
			sc := *s
			cp.Supplier = &sc
		}
	}
	cp.Items = make([]order.OrderItem, len(o.Items))
	for i, line := range o.Items {
		line.Item = f.items[line.ItemID]
		cp.Items[i] = line
	}
	return &cp, nil
}

func (f *fakeStore) CreateOrder(ctx context.Context, d order.Draft) (*order.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("CreateOrder"); err != nil {
		return nil, err
	}

	now := f.tick()
	supplierID := d.SupplierID
	total := order.ComputeTotal(d.Lines)
	status := d.Status
	if status == "" {
		status = order.StatusPending
	}
	o := &order.Order{
		ID: f.nextID("ord"), SupplierID: &supplierID, OrderDate: now,
		ExpectedDelivery: d.ExpectedDelivery, Status: status, Total: &total,
		CreatedAt: now, UpdatedAt: now,
	}
	for _, l := range d.Lines {
		o.Items = append(o.Items, order.OrderItem{
			ID: f.nextID("line"), OrderID: o.ID, ItemID: l.ItemID,
			Quantity: l.Quantity, UnitPrice: l.UnitPrice, TotalPrice: l.TotalPrice(), CreatedAt: now,
		})
	}
	f.orders[o.ID] = o
	cp := *o
	return &cp, nil
}

func (f *fakeStore) UpdateOrderStatus(ctx context.Context, id string, status order.Status) (*order.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("UpdateOrderStatus"); err != nil {
		return nil, err
	}

	o, ok := f.orders[id]
	if !ok {
		return nil, order.ErrOrderNotFound
	}
	o.Status = status
	o.UpdatedAt = f.tick()
	cp := *o
	return &cp, nil
}

func (f *fakeStore) DeleteOrder(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("DeleteOrder"); err != nil {
		return err
	}

	if _, ok := f.orders[id]; !ok {
		return order.ErrOrderNotFound
	}
	delete(f.orders, id)
	return nil
}

func (f *fakeStore) FetchStats(ctx context.Context) (stats.Stats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("FetchStats"); err != nil {
		return stats.Stats{}, err
	}

	items := make([]*item.Item, 0, len(f.items))
	for _, it := range f.items {
		items = append(items, it)
	}
	orders := make([]*order.Order, 0, len(f.orders))
	for _, o := range f.orders {
		orders = append(orders, o)
	}
	return stats.Compute(items, orders), nil
}

// seedItem stores an item directly, bypassing the workflow.
func (f *fakeStore) seedItem(it item.Item) *item.Item {
	f.mu.Lock()
	defer f.mu.Unlock()
	if it.ID == "" {
		it.ID = f.nextID("item")
	}
	if it.CreatedAt.IsZero() {
		it.CreatedAt = f.tick()
		it.UpdatedAt = it.CreatedAt
	}
	stored := it
	f.items[it.ID] = &stored
	return &it
}

func (f *fakeStore) seedSupplier(s supplier.Supplier) *supplier.Supplier {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s.ID == "" {
		s.ID = f.nextID("sup")
	}
	if s.Status == "" {
		s.Status = supplier.StatusActive
	}
	stored := s
	f.suppliers[s.ID] = &stored
	return &s
}

func (f *fakeStore) seedOrder(o order.Order) *order.Order {
	f.mu.Lock()
	defer f.mu.Unlock()
	if o.ID == "" {
		o.ID = f.nextID("ord")
	}
	if o.OrderDate.IsZero() {
		o.OrderDate = f.tick()
	}
	stored := o
	f.orders[o.ID] = &stored
	return &o
}

func newTestWorkflow() (*Workflow, *fakeStore, *notify.Recorder) {
	store := newFakeStore()
	rec := notify.NewRecorder(100)
	return New(store.stores(), rec), store, rec
}

func itemNames(items []*item.Item) []string {
	names := make([]string, len(items))
	for i, it := range items {
		names[i] = it.Name
	}
	return names
}
