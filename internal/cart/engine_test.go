package cart

import (
	"context"
	"errors"
	"testing"

	"cartscout-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) GetCart(ctx context.Context, ownerKey string) (*models.RemoteCart, error) {
	args := m.Called(ctx, ownerKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RemoteCart), args.Error(1)
}

func (m *MockStore) ReplaceCart(ctx context.Context, ownerKey string, c models.NormalizedCart) error {
	args := m.Called(ctx, ownerKey, c)
	return args.Error(0)
}

type MockInvalidator struct {
	mock.Mock
}

func (m *MockInvalidator) InvalidateCartViews(ctx context.Context, ownerKey string) error {
	args := m.Called(ctx, ownerKey)
	return args.Error(0)
}

func remoteWithProduct(barcode string, quantity int) *models.RemoteCart {
	return &models.RemoteCart{
		SpecificProducts: []models.RemoteProductEntry{productEntry(barcode, quantity)},
	}
}

func TestEngineAddProductWritesReplacementAndInvalidates(t *testing.T) {
	store := new(MockStore)
	caches := new(MockInvalidator)
	engine := NewEngine(store, caches)
	ctx := context.Background()

	store.On("GetCart", ctx, "session:abc").Return(remoteWithProduct("590001", 2), nil)
	expected := models.NormalizedCart{
		ProductItems: []models.ProductItem{
			{ProductID: "590001", Quantity: 2},
			{ProductID: "590002", Quantity: 1},
		},
		CategoryItems: []models.CategoryItem{},
	}
	store.On("ReplaceCart", ctx, "session:abc", expected).Return(nil)
	caches.On("InvalidateCartViews", ctx, "session:abc").Return(nil)

	got, err := engine.AddProduct(ctx, "session:abc", "590002", 1)
	assert.NoError(t, err)
	assert.Equal(t, expected, got)
	store.AssertExpectations(t)
	caches.AssertExpectations(t)
}

func TestEngineAddProductDefaultsQuantityToOne(t *testing.T) {
	store := new(MockStore)
	caches := new(MockInvalidator)
	engine := NewEngine(store, caches)
	ctx := context.Background()

	store.On("GetCart", ctx, "session:abc").Return(&models.RemoteCart{}, nil)
	store.On("ReplaceCart", ctx, "session:abc", mock.MatchedBy(func(c models.NormalizedCart) bool {
		return len(c.ProductItems) == 1 && c.ProductItems[0].Quantity == 1
	})).Return(nil)
	caches.On("InvalidateCartViews", ctx, "session:abc").Return(nil)

	_, err := engine.AddProduct(ctx, "session:abc", "590002", 0)
	assert.NoError(t, err)
	store.AssertExpectations(t)
}

func TestEngineUpdateQuantityBelowOneRemoves(t *testing.T) {
	store := new(MockStore)
	caches := new(MockInvalidator)
	engine := NewEngine(store, caches)
	ctx := context.Background()

	store.On("GetCart", ctx, "user:7").Return(remoteWithProduct("590001", 2), nil)
	store.On("ReplaceCart", ctx, "user:7", models.NormalizedCart{
		ProductItems:  []models.ProductItem{},
		CategoryItems: []models.CategoryItem{},
	}).Return(nil)
	caches.On("InvalidateCartViews", ctx, "user:7").Return(nil)

	got, err := engine.UpdateProductQuantity(ctx, "user:7", "590001", 0)
	assert.NoError(t, err)
	assert.Empty(t, got.ProductItems)
	store.AssertExpectations(t)
}

func TestEngineRemoveItemUnknownTypeRejectedLocally(t *testing.T) {
	store := new(MockStore)
	caches := new(MockInvalidator)
	engine := NewEngine(store, caches)

	_, err := engine.RemoveItem(context.Background(), "user:7", "bundle", "590001")
	assert.Error(t, err)
	store.AssertNotCalled(t, "GetCart", mock.Anything, mock.Anything)
}

func TestEngineReadFailureSurfacesCartUpdateError(t *testing.T) {
	store := new(MockStore)
	caches := new(MockInvalidator)
	engine := NewEngine(store, caches)
	ctx := context.Background()

	store.On("GetCart", ctx, "user:7").Return(nil, errors.New("upstream unreachable"))

	_, err := engine.AddProduct(ctx, "user:7", "590001", 1)
	assert.ErrorIs(t, err, ErrCartUpdate)
	caches.AssertNotCalled(t, "InvalidateCartViews", mock.Anything, mock.Anything)
}

func TestEngineWriteFailureSkipsInvalidation(t *testing.T) {
	store := new(MockStore)
	caches := new(MockInvalidator)
	engine := NewEngine(store, caches)
	ctx := context.Background()

	store.On("GetCart", ctx, "user:7").Return(remoteWithProduct("590001", 2), nil)
	store.On("ReplaceCart", ctx, "user:7", mock.Anything).Return(errors.New("503"))

	_, err := engine.SwitchProduct(ctx, "user:7", "590001", "590002")
	assert.ErrorIs(t, err, ErrCartUpdate)
	caches.AssertNotCalled(t, "InvalidateCartViews", mock.Anything, mock.Anything)
}

func TestEngineInvalidationFailureDoesNotFailMutation(t *testing.T) {
	store := new(MockStore)
	caches := new(MockInvalidator)
	engine := NewEngine(store, caches)
	ctx := context.Background()

	store.On("GetCart", ctx, "user:7").Return(remoteWithProduct("590001", 2), nil)
	store.On("ReplaceCart", ctx, "user:7", mock.Anything).Return(nil)
	caches.On("InvalidateCartViews", ctx, "user:7").Return(errors.New("redis down"))

	_, err := engine.RemoveItem(ctx, "user:7", models.ItemTypeProduct, "590001")
	assert.NoError(t, err)
}

func TestEngineRestoreCanonicalizesSnapshot(t *testing.T) {
	store := new(MockStore)
	caches := new(MockInvalidator)
	engine := NewEngine(store, caches)
	ctx := context.Background()

	snapshot := models.NormalizedCart{
		ProductItems: []models.ProductItem{
			{ProductID: "590001", Quantity: 0},
			{ProductID: "590002", Quantity: 2},
		},
	}

	store.On("GetCart", ctx, "user:7").Return(&models.RemoteCart{}, nil)
	store.On("ReplaceCart", ctx, "user:7", models.NormalizedCart{
		ProductItems:  []models.ProductItem{{ProductID: "590002", Quantity: 2}},
		CategoryItems: []models.CategoryItem{},
	}).Return(nil)
	caches.On("InvalidateCartViews", ctx, "user:7").Return(nil)

	got, err := engine.Restore(ctx, "user:7", snapshot)
	assert.NoError(t, err)
	assert.Len(t, got.ProductItems, 1)
	store.AssertExpectations(t)
}
