package katana

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_CheckExisting(t *testing.T) {
	t.Run("returns skus from data", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/v1/variants", r.URL.Path)
			assert.Equal(t, "TS 01&x", r.URL.Query().Get("sku"))
			assert.Equal(t, "Bearer key-1", r.Header.Get("Authorization"))
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			_, _ = io.WriteString(w, `{"data":[{"id":1,"sku":"TS-S"},{"id":2,"sku":"TS-M"},{"id":3,"sku":""}]}`)
		}))
		defer srv.Close()

		got, err := NewClient(srv.URL, 0).CheckExisting(context.Background(), "TS 01&x", "key-1")
		require.NoError(t, err)
		assert.Len(t, got, 2)
		assert.Contains(t, got, "TS-S")
		assert.Contains(t, got, "TS-M")
	})

	t.Run("empty data", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"data":[]}`)
		}))
		defer srv.Close()

		got, err := NewClient(srv.URL, 0).CheckExisting(context.Background(), "X", "k")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("remote error with message", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"statusCode":401,"message":"Unauthorized"}`)
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL, 0).CheckExisting(context.Background(), "X", "bad")
		var ae *APIError
		require.True(t, errors.As(err, &ae))
		assert.Equal(t, Remote, ae.Kind)
		assert.Equal(t, http.StatusUnauthorized, ae.StatusCode)
		assert.Equal(t, "Unauthorized", ae.Message)
	})

	t.Run("remote error without message uses fallback", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = io.WriteString(w, `oops`)
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL, 0).CheckExisting(context.Background(), "X", "k")
		var ae *APIError
		require.True(t, errors.As(err, &ae))
		assert.Equal(t, Remote, ae.Kind)
		assert.Equal(t, msgUnknownCheck, ae.Message)
	})

	t.Run("2xx with unreadable body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `<html>maintenance</html>`)
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL, 0).CheckExisting(context.Background(), "X", "k")
		var ae *APIError
		require.True(t, errors.As(err, &ae))
		assert.Equal(t, Remote, ae.Kind)
		assert.Zero(t, ae.StatusCode)
		assert.Contains(t, ae.Detail(), "invalid variants response")
		assert.NotContains(t, ae.Error(), "http")
	})

	t.Run("transport error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := srv.URL
		srv.Close()

		_, err := NewClient(url, 0).CheckExisting(context.Background(), "X", "k")
		var ae *APIError
		require.True(t, errors.As(err, &ae))
		assert.Equal(t, Transport, ae.Kind)
		assert.NotNil(t, ae.Err)
		assert.NotEmpty(t, ae.Detail())
	})
}

func TestClient_CreateProduct(t *testing.T) {
	req := &ProductRequest{
		Name:         "Mug",
		UOM:          UOMPieces,
		CategoryName: "Default",
		IsSellable:   true,
		Variants:     []Variant{{SKU: "MUG-1", SalesPrice: 9.99}},
	}

	for _, status := range []int{http.StatusOK, http.StatusCreated} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			var body map[string]any
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/v1/products", r.URL.Path)
				assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
				require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				w.WriteHeader(status)
				_, _ = io.WriteString(w, `{"id":1}`)
			}))
			defer srv.Close()

			err := NewClient(srv.URL+"/", 0).CreateProduct(context.Background(), req, "secret")
			require.NoError(t, err)

			assert.Equal(t, "Mug", body["name"])
			assert.Equal(t, "pcs", body["uom"])
			assert.Equal(t, true, body["is_sellable"])
			assert.Equal(t, false, body["is_producible"])
			assert.NotContains(t, body, "configs")
			variants := body["variants"].([]any)
			require.Len(t, variants, 1)
			v := variants[0].(map[string]any)
			assert.Equal(t, "MUG-1", v["sku"])
			assert.Equal(t, 9.99, v["sales_price"])
			assert.NotContains(t, v, "purchase_price")
		})
	}

	t.Run("remote error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = io.WriteString(w, `{"message":"SKU already taken"}`)
		}))
		defer srv.Close()

		err := NewClient(srv.URL, 0).CreateProduct(context.Background(), req, "secret")
		var ae *APIError
		require.True(t, errors.As(err, &ae))
		assert.Equal(t, Remote, ae.Kind)
		assert.Equal(t, "create", ae.Op)
		assert.Equal(t, http.StatusUnprocessableEntity, ae.StatusCode)
		assert.Equal(t, "SKU already taken", ae.Message)
		assert.Contains(t, ae.Error(), "http 422")
	})
}

func TestNewClient_DefaultBaseURL(t *testing.T) {
	c := NewClient("", 0)
	assert.Equal(t, DefaultBaseURL, c.baseURL)
}
