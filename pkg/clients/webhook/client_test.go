package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/procurement/internal/config"
	"github.com/mamadbah2/procurement/internal/domain/models"
)

func TestPostSendsNotification(t *testing.T) {
	var got models.OutboundNotification
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"evt-1"}`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(config.NotifyConfig{WebhookURL: srv.URL, Token: "tok"})
	resp, err := c.Post(context.Background(), models.OutboundNotification{
		Event:      models.EventIndentSubmitted,
		Recipient:  models.RoleHOD,
		ResourceID: "IND001",
		Title:      "Indent submitted",
	})
	require.NoError(t, err)
	assert.Equal(t, "evt-1", resp.ID)
	assert.Equal(t, "Bearer tok", auth)
	assert.Equal(t, models.EventIndentSubmitted, got.Event)
	assert.Equal(t, "IND001", got.ResourceID)
}

func TestPostReportsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"message":"upstream down"}`))
	}))
	t.Cleanup(srv.Close)

	_, err := NewClient(config.NotifyConfig{WebhookURL: srv.URL}).Post(context.Background(), models.OutboundNotification{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream down")
	assert.Contains(t, err.Error(), "502")
}
