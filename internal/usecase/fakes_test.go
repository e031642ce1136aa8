package usecase

import (
	"context"

	"pricelist-manager/internal/data/entity"
	"pricelist-manager/internal/data/repository"
	"pricelist-manager/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Function-field fakes for the repository interfaces. Unset fields
// return zero values so each test only wires what it exercises.

type fakeUserRepo struct {
	CreateFn                func(ctx context.Context, user *entity.User) error
	FindByIDFn              func(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmailFn           func(ctx context.Context, email string) (*entity.User, error)
	FindByPhoneFn           func(ctx context.Context, phone string) (*entity.User, error)
	FindAllFn               func(ctx context.Context, limit, offset int) ([]*entity.User, error)
	CountAllFn              func(ctx context.Context) (int64, error)
	CountByLevelIDFn        func(ctx context.Context, levelID uuid.UUID) (int64, error)
	UpdateFn                func(ctx context.Context, user *entity.User) error
	UpdatePasswordFn        func(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdateRoleFn            func(ctx context.Context, id uuid.UUID, role entity.UserRole) error
	SyncDiscountByLevelIDFn func(ctx context.Context, levelID uuid.UUID, discount float64) error
	DeleteFn                func(ctx context.Context, id uuid.UUID) error
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	if f.CreateFn != nil {
		return f.CreateFn(ctx, user)
	}
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if f.FindByIDFn != nil {
		return f.FindByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if f.FindByEmailFn != nil {
		return f.FindByEmailFn(ctx, email)
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByPhone(ctx context.Context, phone string) (*entity.User, error) {
	if f.FindByPhoneFn != nil {
		return f.FindByPhoneFn(ctx, phone)
	}
	return nil, nil
}

func (f *fakeUserRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	if f.FindAllFn != nil {
		return f.FindAllFn(ctx, limit, offset)
	}
	return nil, nil
}

func (f *fakeUserRepo) CountAll(ctx context.Context) (int64, error) {
	if f.CountAllFn != nil {
		return f.CountAllFn(ctx)
	}
	return 0, nil
}

func (f *fakeUserRepo) CountByLevelID(ctx context.Context, levelID uuid.UUID) (int64, error) {
	if f.CountByLevelIDFn != nil {
		return f.CountByLevelIDFn(ctx, levelID)
	}
	return 0, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	if f.UpdateFn != nil {
		return f.UpdateFn(ctx, user)
	}
	return nil
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	if f.UpdatePasswordFn != nil {
		return f.UpdatePasswordFn(ctx, id, passwordHash)
	}
	return nil
}

func (f *fakeUserRepo) UpdateRole(ctx context.Context, id uuid.UUID, role entity.UserRole) error {
	if f.UpdateRoleFn != nil {
		return f.UpdateRoleFn(ctx, id, role)
	}
	return nil
}

func (f *fakeUserRepo) SyncDiscountByLevelID(ctx context.Context, levelID uuid.UUID, discount float64) error {
	if f.SyncDiscountByLevelIDFn != nil {
		return f.SyncDiscountByLevelIDFn(ctx, levelID, discount)
	}
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if f.DeleteFn != nil {
		return f.DeleteFn(ctx, id)
	}
	return nil
}

type fakeLevelRepo struct {
	CreateFn     func(ctx context.Context, level *entity.UserLevel) error
	FindByIDFn   func(ctx context.Context, id uuid.UUID) (*entity.UserLevel, error)
	FindByNameFn func(ctx context.Context, name string) (*entity.UserLevel, error)
	FindAllFn    func(ctx context.Context, limit, offset int) ([]*entity.UserLevel, error)
	CountAllFn   func(ctx context.Context) (int64, error)
	UpdateFn     func(ctx context.Context, level *entity.UserLevel) error
	DeleteFn     func(ctx context.Context, id uuid.UUID) error
}

func (f *fakeLevelRepo) Create(ctx context.Context, level *entity.UserLevel) error {
	if f.CreateFn != nil {
		return f.CreateFn(ctx, level)
	}
	return nil
}

func (f *fakeLevelRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.UserLevel, error) {
	if f.FindByIDFn != nil {
		return f.FindByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeLevelRepo) FindByName(ctx context.Context, name string) (*entity.UserLevel, error) {
	if f.FindByNameFn != nil {
		return f.FindByNameFn(ctx, name)
	}
	return nil, nil
}

func (f *fakeLevelRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.UserLevel, error) {
	if f.FindAllFn != nil {
		return f.FindAllFn(ctx, limit, offset)
	}
	return nil, nil
}

func (f *fakeLevelRepo) CountAll(ctx context.Context) (int64, error) {
	if f.CountAllFn != nil {
		return f.CountAllFn(ctx)
	}
	return 0, nil
}

func (f *fakeLevelRepo) Update(ctx context.Context, level *entity.UserLevel) error {
	if f.UpdateFn != nil {
		return f.UpdateFn(ctx, level)
	}
	return nil
}

func (f *fakeLevelRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if f.DeleteFn != nil {
		return f.DeleteFn(ctx, id)
	}
	return nil
}

type fakeCategoryRepo struct {
	CreateFn     func(ctx context.Context, category *entity.Category) error
	FindByIDFn   func(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	FindByNameFn func(ctx context.Context, name string) (*entity.Category, error)
	FindAllFn    func(ctx context.Context, limit, offset int) ([]*entity.Category, error)
	CountAllFn   func(ctx context.Context) (int64, error)
	UpdateFn     func(ctx context.Context, category *entity.Category) error
	DeleteFn     func(ctx context.Context, id uuid.UUID) error
}

func (f *fakeCategoryRepo) Create(ctx context.Context, category *entity.Category) error {
	if f.CreateFn != nil {
		return f.CreateFn(ctx, category)
	}
	return nil
}

func (f *fakeCategoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	if f.FindByIDFn != nil {
		return f.FindByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeCategoryRepo) FindByName(ctx context.Context, name string) (*entity.Category, error) {
	if f.FindByNameFn != nil {
		return f.FindByNameFn(ctx, name)
	}
	return nil, nil
}

func (f *fakeCategoryRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.Category, error) {
	if f.FindAllFn != nil {
		return f.FindAllFn(ctx, limit, offset)
	}
	return nil, nil
}

func (f *fakeCategoryRepo) CountAll(ctx context.Context) (int64, error) {
	if f.CountAllFn != nil {
		return f.CountAllFn(ctx)
	}
	return 0, nil
}

func (f *fakeCategoryRepo) Update(ctx context.Context, category *entity.Category) error {
	if f.UpdateFn != nil {
		return f.UpdateFn(ctx, category)
	}
	return nil
}

func (f *fakeCategoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if f.DeleteFn != nil {
		return f.DeleteFn(ctx, id)
	}
	return nil
}

type fakeProductRepo struct {
	CreateFn              func(ctx context.Context, product *entity.Product) error
	CreateBatchFn         func(ctx context.Context, products []*entity.Product) error
	FindByIDFn            func(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	FindBySerialNumberFn  func(ctx context.Context, serial string) (*entity.Product, error)
	FindSerialNumbersInFn func(ctx context.Context, serials []string) (map[string]bool, error)
	FindAllFn             func(ctx context.Context, filter repository.ProductFilter, limit, offset int) ([]*entity.Product, error)
	CountAllFn            func(ctx context.Context, filter repository.ProductFilter) (int64, error)
	CountByCategoryIDFn   func(ctx context.Context, categoryID uuid.UUID) (int64, error)
	UpdateFn              func(ctx context.Context, product *entity.Product) error
	DeleteFn              func(ctx context.Context, id uuid.UUID) error
}

func (f *fakeProductRepo) Create(ctx context.Context, product *entity.Product) error {
	if f.CreateFn != nil {
		return f.CreateFn(ctx, product)
	}
	return nil
}

func (f *fakeProductRepo) CreateBatch(ctx context.Context, products []*entity.Product) error {
	if f.CreateBatchFn != nil {
		return f.CreateBatchFn(ctx, products)
	}
	return nil
}

func (f *fakeProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	if f.FindByIDFn != nil {
		return f.FindByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeProductRepo) FindBySerialNumber(ctx context.Context, serial string) (*entity.Product, error) {
	if f.FindBySerialNumberFn != nil {
		return f.FindBySerialNumberFn(ctx, serial)
	}
	return nil, nil
}

func (f *fakeProductRepo) FindSerialNumbersIn(ctx context.Context, serials []string) (map[string]bool, error) {
	if f.FindSerialNumbersInFn != nil {
		return f.FindSerialNumbersInFn(ctx, serials)
	}
	return map[string]bool{}, nil
}

func (f *fakeProductRepo) FindAll(ctx context.Context, filter repository.ProductFilter, limit, offset int) ([]*entity.Product, error) {
	if f.FindAllFn != nil {
		return f.FindAllFn(ctx, filter, limit, offset)
	}
	return nil, nil
}

func (f *fakeProductRepo) CountAll(ctx context.Context, filter repository.ProductFilter) (int64, error) {
	if f.CountAllFn != nil {
		return f.CountAllFn(ctx, filter)
	}
	return 0, nil
}

func (f *fakeProductRepo) CountByCategoryID(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	if f.CountByCategoryIDFn != nil {
		return f.CountByCategoryIDFn(ctx, categoryID)
	}
	return 0, nil
}

func (f *fakeProductRepo) Update(ctx context.Context, product *entity.Product) error {
	if f.UpdateFn != nil {
		return f.UpdateFn(ctx, product)
	}
	return nil
}

func (f *fakeProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if f.DeleteFn != nil {
		return f.DeleteFn(ctx, id)
	}
	return nil
}

type fakeImageRepo struct {
	CreateFn            func(ctx context.Context, image *entity.ProductImage) error
	FindByIDFn          func(ctx context.Context, id uuid.UUID) (*entity.ProductImage, error)
	FindByProductIDFn   func(ctx context.Context, productID uuid.UUID) ([]*entity.ProductImage, error)
	ClearPrimaryFn      func(ctx context.Context, productID uuid.UUID) error
	SetPrimaryFn        func(ctx context.Context, id uuid.UUID) error
	DeleteFn            func(ctx context.Context, id uuid.UUID) error
	DeleteByProductIDFn func(ctx context.Context, productID uuid.UUID) error
}

func (f *fakeImageRepo) Create(ctx context.Context, image *entity.ProductImage) error {
	if f.CreateFn != nil {
		return f.CreateFn(ctx, image)
	}
	return nil
}

func (f *fakeImageRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.ProductImage, error) {
	if f.FindByIDFn != nil {
		return f.FindByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeImageRepo) FindByProductID(ctx context.Context, productID uuid.UUID) ([]*entity.ProductImage, error) {
	if f.FindByProductIDFn != nil {
		return f.FindByProductIDFn(ctx, productID)
	}
	return nil, nil
}

func (f *fakeImageRepo) ClearPrimary(ctx context.Context, productID uuid.UUID) error {
	if f.ClearPrimaryFn != nil {
		return f.ClearPrimaryFn(ctx, productID)
	}
	return nil
}

func (f *fakeImageRepo) SetPrimary(ctx context.Context, id uuid.UUID) error {
	if f.SetPrimaryFn != nil {
		return f.SetPrimaryFn(ctx, id)
	}
	return nil
}

func (f *fakeImageRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if f.DeleteFn != nil {
		return f.DeleteFn(ctx, id)
	}
	return nil
}

func (f *fakeImageRepo) DeleteByProductID(ctx context.Context, productID uuid.UUID) error {
	if f.DeleteByProductIDFn != nil {
		return f.DeleteByProductIDFn(ctx, productID)
	}
	return nil
}

type fakeOrderRepo struct {
	CreateWithItemsFn   func(ctx context.Context, order *entity.Order, items []*entity.OrderItem) error
	FindByIDFn          func(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	FindAllFn           func(ctx context.Context, filter repository.OrderFilter, limit, offset int) ([]*entity.Order, error)
	CountAllFn          func(ctx context.Context, filter repository.OrderFilter) (int64, error)
	UpdateStatusFn      func(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error
	DeleteWithRestockFn func(ctx context.Context, id uuid.UUID) error
}

func (f *fakeOrderRepo) CreateWithItems(ctx context.Context, order *entity.Order, items []*entity.OrderItem) error {
	if f.CreateWithItemsFn != nil {
		return f.CreateWithItemsFn(ctx, order, items)
	}
	return nil
}

func (f *fakeOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	if f.FindByIDFn != nil {
		return f.FindByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeOrderRepo) FindAll(ctx context.Context, filter repository.OrderFilter, limit, offset int) ([]*entity.Order, error) {
	if f.FindAllFn != nil {
		return f.FindAllFn(ctx, filter, limit, offset)
	}
	return nil, nil
}

func (f *fakeOrderRepo) CountAll(ctx context.Context, filter repository.OrderFilter) (int64, error) {
	if f.CountAllFn != nil {
		return f.CountAllFn(ctx, filter)
	}
	return 0, nil
}

func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error {
	if f.UpdateStatusFn != nil {
		return f.UpdateStatusFn(ctx, id, status)
	}
	return nil
}

func (f *fakeOrderRepo) DeleteWithRestock(ctx context.Context, id uuid.UUID) error {
	if f.DeleteWithRestockFn != nil {
		return f.DeleteWithRestockFn(ctx, id)
	}
	return nil
}

type fakeOrderItemRepo struct {
	FindByOrderIDFn func(ctx context.Context, orderID uuid.UUID) ([]*entity.OrderItem, error)
}

func (f *fakeOrderItemRepo) FindByOrderID(ctx context.Context, orderID uuid.UUID) ([]*entity.OrderItem, error) {
	if f.FindByOrderIDFn != nil {
		return f.FindByOrderIDFn(ctx, orderID)
	}
	return nil, nil
}

// newTestRepository wires the fakes into a Repository value
func newTestRepository() (*repository.Repository, *fakeUserRepo, *fakeLevelRepo, *fakeCategoryRepo, *fakeProductRepo, *fakeImageRepo, *fakeOrderRepo, *fakeOrderItemRepo) {
	userRepo := &fakeUserRepo{}
	levelRepo := &fakeLevelRepo{}
	categoryRepo := &fakeCategoryRepo{}
	productRepo := &fakeProductRepo{}
	imageRepo := &fakeImageRepo{}
	orderRepo := &fakeOrderRepo{}
	orderItemRepo := &fakeOrderItemRepo{}

	repo := &repository.Repository{
		User:      userRepo,
		UserLevel: levelRepo,
		Category:  categoryRepo,
		Product:   productRepo,
		Image:     imageRepo,
		Order:     orderRepo,
		OrderItem: orderItemRepo,
	}

	return repo, userRepo, levelRepo, categoryRepo, productRepo, imageRepo, orderRepo, orderItemRepo
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func testConfig(uploadDir string) *utils.Config {
	return &utils.Config{
		JWT: utils.JWTConfig{
			Secret:     "test-secret",
			ExpiryDays: 7,
		},
		OTP: utils.OTPConfig{
			ExpiryMinutes: 5,
			Length:        6,
		},
		Upload: utils.UploadConfig{
			Dir:        uploadDir,
			PublicPath: "/uploads",
			MaxSizeMB:  5,
		},
	}
}
