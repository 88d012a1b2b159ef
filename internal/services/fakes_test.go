package services

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"quincaillerie_backend/internal/models"
	"quincaillerie_backend/internal/repositories"
)

// In-memory stand-ins for the repository layer. The fake repositories ignore
// the executor argument; fakeDatabase only tracks transaction lifecycle so
// tests can assert commit/rollback behavior.

type fakeTx struct {
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Exec(string, ...interface{}) (sql.Result, error) { return nil, nil }
func (t *fakeTx) QueryRow(string, ...interface{}) *sql.Row        { return nil }
func (t *fakeTx) Query(string, ...interface{}) (*sql.Rows, error) { return nil, nil }

func (t *fakeTx) Commit() error { t.committed = true; return nil }

func (t *fakeTx) Rollback() error {
	if !t.committed {
		t.rolledBack = true
	}
	return nil
}

type fakeDatabase struct {
	txs []*fakeTx
}

func (d *fakeDatabase) Exec(string, ...interface{}) (sql.Result, error) { return nil, nil }
func (d *fakeDatabase) QueryRow(string, ...interface{}) *sql.Row        { return nil }
func (d *fakeDatabase) Query(string, ...interface{}) (*sql.Rows, error) { return nil, nil }
func (d *fakeDatabase) Begin() (repositories.Transaction, error) {
	tx := &fakeTx{}
	d.txs = append(d.txs, tx)
	return tx, nil
}

func (d *fakeDatabase) lastTx() *fakeTx {
	if len(d.txs) == 0 {
		return nil
	}
	return d.txs[len(d.txs)-1]
}

// --- fake product repository ---

type fakeProductRepo struct {
	products map[string]*models.Product // keyed by name|storeID
	nextID   int64
	// missOnce makes the next AdjustStock report the product missing even
	// when it exists, simulating a concurrent insert racing the auto-create.
	missOnce bool
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[string]*models.Product{}, nextID: 1}
}

func productKey(name, storeID string) string { return name + "|" + storeID }

func (r *fakeProductRepo) Create(_ repositories.SQLExecutor, p *models.Product) (int64, error) {
	if p.Barcode != nil {
		for _, existing := range r.products {
			if existing.Barcode != nil && *existing.Barcode == *p.Barcode {
				return 0, fmt.Errorf("%w: barcode '%s'", repositories.ErrDuplicateKey, *p.Barcode)
			}
		}
	}
	if _, ok := r.products[productKey(p.Name, p.StoreID)]; ok {
		return 0, fmt.Errorf("%w: product '%s'", repositories.ErrDuplicateKey, p.Name)
	}
	p.ID = r.nextID
	r.nextID++
	clone := *p
	r.products[productKey(p.Name, p.StoreID)] = &clone
	return p.ID, nil
}

func (r *fakeProductRepo) GetByID(id int64) (*models.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			clone := *p
			return &clone, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeProductRepo) GetByNameAndStore(_ repositories.SQLExecutor, name, storeID string) (*models.Product, error) {
	if p, ok := r.products[productKey(name, storeID)]; ok {
		clone := *p
		return &clone, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeProductRepo) GetByStore(storeID string) ([]models.Product, error) {
	out := []models.Product{}
	for _, p := range r.products {
		if p.StoreID == storeID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeProductRepo) GetByCategory(category, storeID string) ([]models.Product, error) {
	out := []models.Product{}
	for _, p := range r.products {
		if p.StoreID == storeID && p.Category == category {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeProductRepo) GetLowStock(storeID string) ([]models.Product, error) {
	out := []models.Product{}
	for _, p := range r.products {
		if p.StoreID == storeID && p.Stock <= p.MinStock {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Stock-out[i].MinStock < out[j].Stock-out[j].MinStock
	})
	return out, nil
}

func (r *fakeProductRepo) FindByBarcode(barcode string) (*models.Product, error) {
	for _, p := range r.products {
		if p.Barcode != nil && *p.Barcode == barcode {
			clone := *p
			return &clone, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeProductRepo) AdjustStock(_ repositories.SQLExecutor, name, storeID string, delta int) (int, bool, error) {
	if r.missOnce {
		r.missOnce = false
		return 0, false, nil
	}
	p, ok := r.products[productKey(name, storeID)]
	if !ok {
		return 0, false, nil
	}
	p.Stock += delta
	if p.Stock < 0 {
		p.Stock = 0
	}
	return p.Stock, true, nil
}

func (r *fakeProductRepo) Update(_ repositories.SQLExecutor, id int64, storeID string, updates models.ProductUpdate) (int64, error) {
	for key, p := range r.products {
		if p.ID != id || p.StoreID != storeID {
			continue
		}
		if updates.Name != nil {
			delete(r.products, key)
			p.Name = *updates.Name
			r.products[productKey(p.Name, p.StoreID)] = p
		}
		if updates.Category != nil {
			p.Category = *updates.Category
		}
		if updates.Barcode != nil {
			p.Barcode = updates.Barcode
		}
		if updates.CostPrice != nil {
			p.CostPrice = *updates.CostPrice
		}
		if updates.SellingPrice != nil {
			p.SellingPrice = *updates.SellingPrice
		}
		if updates.Stock != nil {
			p.Stock = *updates.Stock
		}
		if updates.MinStock != nil {
			p.MinStock = *updates.MinStock
		}
		return 1, nil
	}
	return 0, nil
}

func (r *fakeProductRepo) Delete(_ repositories.SQLExecutor, id int64, storeID string) (int64, error) {
	for key, p := range r.products {
		if p.ID == id && p.StoreID == storeID {
			delete(r.products, key)
			return 1, nil
		}
	}
	return 0, nil
}

// get returns the stored product without copying, for test assertions.
func (r *fakeProductRepo) get(name, storeID string) *models.Product {
	return r.products[productKey(name, storeID)]
}

// --- fake sale repository ---

type fakeSaleRepo struct {
	sales  map[int64]*models.Sale
	nextID int64
}

func newFakeSaleRepo() *fakeSaleRepo {
	return &fakeSaleRepo{sales: map[int64]*models.Sale{}, nextID: 1}
}

func (r *fakeSaleRepo) Create(_ repositories.SQLExecutor, s *models.Sale) (int64, error) {
	s.ID = r.nextID
	r.nextID++
	clone := *s
	r.sales[s.ID] = &clone
	return s.ID, nil
}

// get returns the stored sale without copying, for test assertions.
func (r *fakeSaleRepo) get(id int64) *models.Sale {
	return r.sales[id]
}

func (r *fakeSaleRepo) GetByID(_ repositories.SQLExecutor, id int64) (*models.Sale, error) {
	if s, ok := r.sales[id]; ok {
		clone := *s
		return &clone, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeSaleRepo) List(storeID *string) ([]models.Sale, error) {
	out := []models.Sale{}
	for _, s := range r.sales {
		if storeID == nil || s.StoreID == *storeID {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeSaleRepo) ItemsByDay(date string, storeID *string) ([]models.Sale, error) {
	out := []models.Sale{}
	for _, s := range r.sales {
		if s.Date != date {
			continue
		}
		if storeID == nil || s.StoreID == *storeID {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeSaleRepo) Delete(_ repositories.SQLExecutor, id int64) error {
	if _, ok := r.sales[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.sales, id)
	return nil
}

// --- fake store repository ---

type fakeStoreRepo struct {
	stores map[string]*models.Store
	// inUse marks stores whose deletion should fail with a foreign key
	// violation, as products or sales still reference them.
	inUse map[string]bool
}

func newFakeStoreRepo() *fakeStoreRepo {
	return &fakeStoreRepo{stores: map[string]*models.Store{}, inUse: map[string]bool{}}
}

func (r *fakeStoreRepo) Create(_ repositories.SQLExecutor, s *models.Store) error {
	if _, ok := r.stores[s.ID]; ok {
		return fmt.Errorf("%w: store '%s'", repositories.ErrDuplicateKey, s.ID)
	}
	clone := *s
	r.stores[s.ID] = &clone
	return nil
}

func (r *fakeStoreRepo) GetByID(id string) (*models.Store, error) {
	if s, ok := r.stores[id]; ok {
		clone := *s
		return &clone, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeStoreRepo) GetAll() ([]models.Store, error) {
	out := []models.Store{}
	for _, s := range r.stores {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsMain != out[j].IsMain {
			return out[i].IsMain
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *fakeStoreRepo) Update(_ repositories.SQLExecutor, id string, updates repositories.StoreUpdate) error {
	s, ok := r.stores[id]
	if !ok {
		return repositories.ErrNotFound
	}
	if updates.Name != nil {
		s.Name = *updates.Name
	}
	if updates.Address != nil {
		s.Address = updates.Address
	}
	if updates.Phone != nil {
		s.Phone = updates.Phone
	}
	if updates.IsMain != nil {
		s.IsMain = *updates.IsMain
	}
	return nil
}

func (r *fakeStoreRepo) Delete(_ repositories.SQLExecutor, id string) error {
	if _, ok := r.stores[id]; !ok {
		return repositories.ErrNotFound
	}
	if r.inUse[id] {
		return fmt.Errorf("%w: store '%s'", repositories.ErrForeignKey, id)
	}
	delete(r.stores, id)
	return nil
}

func (r *fakeStoreRepo) CountMain(excludeID string) (int, error) {
	count := 0
	for _, s := range r.stores {
		if s.IsMain && s.ID != excludeID {
			count++
		}
	}
	return count, nil
}

// --- fake category repository ---

type fakeCategoryRepo struct {
	categories map[int64]*models.Category
	nextID     int64
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: map[int64]*models.Category{}, nextID: 1}
}

func (r *fakeCategoryRepo) Create(_ repositories.SQLExecutor, c *models.Category) (int64, error) {
	for _, existing := range r.categories {
		if strings.EqualFold(existing.Name, c.Name) {
			return 0, fmt.Errorf("%w: category '%s'", repositories.ErrDuplicateKey, c.Name)
		}
	}
	c.ID = r.nextID
	r.nextID++
	clone := *c
	r.categories[c.ID] = &clone
	return c.ID, nil
}

func (r *fakeCategoryRepo) GetByID(id int64) (*models.Category, error) {
	if c, ok := r.categories[id]; ok {
		clone := *c
		return &clone, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeCategoryRepo) GetByName(name string) (*models.Category, error) {
	for _, c := range r.categories {
		if strings.EqualFold(c.Name, name) {
			clone := *c
			return &clone, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeCategoryRepo) GetAll() ([]models.Category, error) {
	out := []models.Category{}
	for _, c := range r.categories {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeCategoryRepo) Update(_ repositories.SQLExecutor, c *models.Category) error {
	existing, ok := r.categories[c.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	for _, other := range r.categories {
		if other.ID != c.ID && strings.EqualFold(other.Name, c.Name) {
			return fmt.Errorf("%w: category '%s'", repositories.ErrDuplicateKey, c.Name)
		}
	}
	existing.Name = c.Name
	existing.Description = c.Description
	return nil
}

func (r *fakeCategoryRepo) Delete(_ repositories.SQLExecutor, id int64) error {
	if _, ok := r.categories[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.categories, id)
	return nil
}

// --- fake setting repository ---

type fakeSettingRepo struct {
	settings map[string]*models.Setting
	// failOn makes Upsert fail for one key, simulating a database error
	// partway through a batch.
	failOn string
}

func newFakeSettingRepo() *fakeSettingRepo {
	return &fakeSettingRepo{settings: map[string]*models.Setting{}}
}

func (r *fakeSettingRepo) GetAll() ([]models.Setting, error) {
	out := []models.Setting{}
	for _, s := range r.settings {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (r *fakeSettingRepo) Get(key string) (*models.Setting, error) {
	if s, ok := r.settings[key]; ok {
		clone := *s
		return &clone, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeSettingRepo) Upsert(_ repositories.SQLExecutor, key string, value *string) error {
	if r.failOn != "" && key == r.failOn {
		return fmt.Errorf("%w: upserting setting '%s'", repositories.ErrDatabaseError, key)
	}
	r.settings[key] = &models.Setting{Key: key, Value: value}
	return nil
}

func (r *fakeSettingRepo) Delete(_ repositories.SQLExecutor, key string) error {
	if _, ok := r.settings[key]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.settings, key)
	return nil
}

// --- fake report repository ---

type fakeReportRepo struct {
	comparisons []models.StoreComparison
	stats       *models.SalesStats
	lastLimit   int
}

func (r *fakeReportRepo) DailySummaries(*string) ([]models.DailySalesSummary, error) {
	return []models.DailySalesSummary{}, nil
}

func (r *fakeReportRepo) DailySummariesByRange(string, string, *string) ([]models.DailySalesSummary, error) {
	return []models.DailySalesSummary{}, nil
}

func (r *fakeReportRepo) SalesByCategory(*string) ([]models.CategorySales, error) {
	return []models.CategorySales{}, nil
}

func (r *fakeReportRepo) TopProducts(limit int, _ *string) ([]models.TopProduct, error) {
	r.lastLimit = limit
	return []models.TopProduct{}, nil
}

func (r *fakeReportRepo) Stats(*string) (*models.SalesStats, error) {
	if r.stats != nil {
		return r.stats, nil
	}
	return &models.SalesStats{}, nil
}

func (r *fakeReportRepo) MonthlySales(int, int, *string) ([]models.MonthlySalesPoint, error) {
	return []models.MonthlySalesPoint{}, nil
}

func (r *fakeReportRepo) StoreComparison() ([]models.StoreComparison, error) {
	return r.comparisons, nil
}
