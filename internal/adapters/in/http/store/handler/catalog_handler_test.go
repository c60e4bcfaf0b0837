package storeHandler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	usecase "tienda/internal/application/usecase"
	productdom "tienda/internal/domain/product"
)

func newCatalogHandler(repo *fakeProductRepo) http.Handler {
	return NewCatalogHandler(usecase.NewCatalogUsecase(repo))
}

func TestCatalogHandler_List(t *testing.T) {
	repo := newFakeProductRepo(
		fixtureProduct("p1", "Camiseta", "19.99", 10),
		fixtureProduct("p2", "Taza", "9.50", 3),
	)
	h := newCatalogHandler(repo)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/store/products", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var got []productdom.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
}

func TestCatalogHandler_ListByCategory(t *testing.T) {
	camiseta := fixtureProduct("p1", "Camiseta", "19.99", 10)
	camiseta.Category = "ropa"
	repo := newFakeProductRepo(camiseta, fixtureProduct("p2", "Taza", "9.50", 3))
	h := newCatalogHandler(repo)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/store/products?category=ropa", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var got []productdom.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	require.Equal(t, "p1", got[0].ID)
}

func TestCatalogHandler_ListDegradesToEmptyOnStoreError(t *testing.T) {
	repo := newFakeProductRepo()
	repo.listErr = errStoreDown
	h := newCatalogHandler(repo)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/store/products", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, "[]", rec.Body.String())
}

func TestCatalogHandler_GetByID(t *testing.T) {
	repo := newFakeProductRepo(fixtureProduct("p1", "Camiseta", "19.99", 10))
	h := newCatalogHandler(repo)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/store/products/p1", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var got productdom.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "Camiseta", got.Name)
}

func TestCatalogHandler_GetUnknownIs404(t *testing.T) {
	h := newCatalogHandler(newFakeProductRepo())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/store/products/missing", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCatalogHandler_MethodNotAllowed(t *testing.T) {
	h := newCatalogHandler(newFakeProductRepo())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/store/products", nil))

	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
