package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/mkrause/storefront/internal/domain"
	"github.com/mkrause/storefront/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authedRequest(t *testing.T, method, url, token string, body interface{}) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	return req
}

func TestCheckoutFlow(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	itemA := testutil.NewItemBuilder().WithTitle("Widget").WithPrice(1000).Build(t, ts.DB.DB)
	itemB := testutil.NewItemBuilder().WithTitle("Gadget").WithPrice(500).Build(t, ts.DB.DB)

	addToCart := func(t *testing.T, itemID string) {
		t.Helper()
		req := authedRequest(t, http.MethodPost, ts.APIURL("/cart"), token,
			map[string]string{"itemId": itemID})
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	// Same item twice merges into one row with quantity 2.
	addToCart(t, itemA.ID.String())
	addToCart(t, itemA.ID.String())
	addToCart(t, itemB.ID.String())

	t.Run("cart holds two merged rows", func(t *testing.T) {
		req := authedRequest(t, http.MethodGet, ts.APIURL("/cart"), token, nil)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var rows []domain.CartItem
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&rows))
		require.Len(t, rows, 2)
	})

	t.Run("checkout charges the gateway and clears the cart", func(t *testing.T) {
		req := authedRequest(t, http.MethodPost, ts.APIURL("/checkout"), token,
			map[string]string{"token": "tok_visa"})
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var order domain.Order
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&order))
		assert.Equal(t, int64(2500), order.Total)
		assert.Len(t, order.Items, 2)

		require.Len(t, ts.Gateway.Requests, 1)
		assert.Equal(t, int64(2500), ts.Gateway.Requests[0].Amount)
		assert.Equal(t, "USD", ts.Gateway.Requests[0].Currency)

		cartReq := authedRequest(t, http.MethodGet, ts.APIURL("/cart"), token, nil)
		cartResp, err := http.DefaultClient.Do(cartReq)
		require.NoError(t, err)
		defer cartResp.Body.Close()

		var rows []domain.CartItem
		require.NoError(t, json.NewDecoder(cartResp.Body).Decode(&rows))
		assert.Empty(t, rows)
	})

	t.Run("empty cart checkout is a bad request", func(t *testing.T) {
		req := authedRequest(t, http.MethodPost, ts.APIURL("/checkout"), token,
			map[string]string{"token": "tok_visa"})
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("declined charge maps to payment required", func(t *testing.T) {
		addToCart(t, itemB.ID.String())
		ts.Gateway.FailWith = errors.New("card declined")
		defer func() { ts.Gateway.FailWith = nil }()

		req := authedRequest(t, http.MethodPost, ts.APIURL("/checkout"), token,
			map[string]string{"token": "tok_visa"})
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusPaymentRequired, resp.StatusCode)
	})
}

func TestOrderVisibility(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, ownerToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	_, strangerToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	item := testutil.NewItemBuilder().WithPrice(700).Build(t, ts.DB.DB)

	addReq := authedRequest(t, http.MethodPost, ts.APIURL("/cart"), ownerToken,
		map[string]string{"itemId": item.ID.String()})
	addResp, err := http.DefaultClient.Do(addReq)
	require.NoError(t, err)
	addResp.Body.Close()
	require.Equal(t, http.StatusOK, addResp.StatusCode)

	checkoutReq := authedRequest(t, http.MethodPost, ts.APIURL("/checkout"), ownerToken,
		map[string]string{"token": "tok_visa"})
	checkoutResp, err := http.DefaultClient.Do(checkoutReq)
	require.NoError(t, err)
	defer checkoutResp.Body.Close()
	require.Equal(t, http.StatusCreated, checkoutResp.StatusCode)

	var order domain.Order
	require.NoError(t, json.NewDecoder(checkoutResp.Body).Decode(&order))

	t.Run("owner sees the order", func(t *testing.T) {
		req := authedRequest(t, http.MethodGet, ts.APIURL("/orders/"+order.ID.String()), ownerToken, nil)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("stranger is forbidden", func(t *testing.T) {
		req := authedRequest(t, http.MethodGet, ts.APIURL("/orders/"+order.ID.String()), strangerToken, nil)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}
