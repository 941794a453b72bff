package gateway

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SscSPs/property_management_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestInitiateCheckout(t *testing.T) {
	var got checkoutPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, checkoutPath, r.URL.Path)
		assert.Equal(t, "Bearer api-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"checkoutReference":"ws_CO_42","status":"pending"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "api-key", discardLogger())
	res, err := client.InitiateCheckout(context.Background(), services.CheckoutRequest{
		Phone:            "+254712345678",
		Amount:           decimal.NewFromInt(800),
		AccountReference: "t-1:3",
		Description:      "Rent for March",
	})

	require.NoError(t, err)
	assert.Equal(t, "ws_CO_42", res.CheckoutReference)
	assert.Equal(t, "pending", res.Status)
	assert.Equal(t, checkoutPayload{
		Phone:            "+254712345678",
		Amount:           "800.00",
		AccountReference: "t-1:3",
		Description:      "Rent for March",
	}, got)
}

func TestInitiateCheckoutRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"invalid phone"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "api-key", discardLogger())
	_, err := client.InitiateCheckout(context.Background(), services.CheckoutRequest{
		Phone:  "+254700000000",
		Amount: decimal.NewFromInt(100),
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid phone")
}

func TestInitiateCheckoutWithoutReference(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"pending"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "api-key", discardLogger())
	_, err := client.InitiateCheckout(context.Background(), services.CheckoutRequest{Amount: decimal.NewFromInt(1)})
	assert.Error(t, err)
}
