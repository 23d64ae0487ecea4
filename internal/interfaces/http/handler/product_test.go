package handler_test

import (
	"net/http"
	"testing"

	"github.com/kapzar/backend/internal/domain/catalog"
	"github.com/kapzar/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProductHandler_List(t *testing.T) {
	env := newTestEnv(t)
	milk := newCatalogProduct(t, "Milk", "milk", "19.99")
	env.products.On("FindAvailable", mock.Anything, catalog.ProductFilter{
		CategorySlug: "dairy",
		Search:       "milk",
	}).Return([]catalog.Product{*milk}, nil)

	w := env.do(t, http.MethodGet, "/api/v1/catalog/products?category=dairy&q=milk", requestOpts{})
	require.Equal(t, http.StatusOK, w.Code)

	var body []struct {
		Name  string `json:"name"`
		Price string `json:"price"`
	}
	decodeData(t, w, &body)
	require.Len(t, body, 1)
	assert.Equal(t, "Milk", body[0].Name)
	assert.Equal(t, "19.99", body[0].Price)
}

func TestProductHandler_Get(t *testing.T) {
	t.Run("invalid id fails binding", func(t *testing.T) {
		env := newTestEnv(t)
		w := env.do(t, http.MethodGet, "/api/v1/catalog/products/not-a-uuid", requestOpts{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing product is 404", func(t *testing.T) {
		env := newTestEnv(t)
		id := uuid.New()
		env.products.On("FindAvailableByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		w := env.do(t, http.MethodGet, "/api/v1/catalog/products/"+id.String(), requestOpts{})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestProductHandler_StaffGate(t *testing.T) {
	createBody := map[string]any{
		"category_id": uuid.New(),
		"name":        "Milk",
		"slug":        "milk",
		"price":       "19.99",
	}

	t.Run("anonymous create is unauthorized", func(t *testing.T) {
		env := newTestEnv(t)
		w := env.do(t, http.MethodPost, "/api/v1/catalog/products", requestOpts{body: createBody})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("non-staff create is forbidden", func(t *testing.T) {
		env := newTestEnv(t)
		w := env.do(t, http.MethodPost, "/api/v1/catalog/products", requestOpts{
			body:   createBody,
			bearer: env.token(t, uuid.New(), "asha", false),
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("staff creates product", func(t *testing.T) {
		env := newTestEnv(t)
		dairy, err := catalog.NewCategory("Dairy", "dairy")
		require.NoError(t, err)
		env.products.On("ExistsBySlug", mock.Anything, "milk").Return(false, nil)
		env.categories.On("FindByID", mock.Anything, dairy.ID).Return(dairy, nil)
		env.products.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)

		w := env.do(t, http.MethodPost, "/api/v1/catalog/products", requestOpts{
			body: map[string]any{
				"category_id": dairy.ID,
				"name":        "Milk",
				"slug":        "milk",
				"price":       "19.99",
			},
			bearer: env.token(t, uuid.New(), "admin", true),
		})
		assert.Equal(t, http.StatusCreated, w.Code)
	})
}

func TestCategoryHandler(t *testing.T) {
	t.Run("lists categories anonymously", func(t *testing.T) {
		env := newTestEnv(t)
		dairy, err := catalog.NewCategory("Dairy", "dairy")
		require.NoError(t, err)
		env.categories.On("FindAll", mock.Anything).Return([]catalog.Category{*dairy}, nil)

		w := env.do(t, http.MethodGet, "/api/v1/catalog/categories", requestOpts{})
		require.Equal(t, http.StatusOK, w.Code)

		var body []struct {
			Name string `json:"name"`
			Slug string `json:"slug"`
		}
		decodeData(t, w, &body)
		require.Len(t, body, 1)
		assert.Equal(t, "dairy", body[0].Slug)
	})

	t.Run("staff deletes category", func(t *testing.T) {
		env := newTestEnv(t)
		id := uuid.New()
		env.categories.On("Delete", mock.Anything, id).Return(nil)

		w := env.do(t, http.MethodDelete, "/api/v1/catalog/categories/"+id.String(), requestOpts{
			bearer: env.token(t, uuid.New(), "admin", true),
		})
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}
