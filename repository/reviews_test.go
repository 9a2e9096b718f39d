package repository

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/meinhoongagan/servicehub/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewDetailsProjection(t *testing.T) {
	gdb := setupTestDB(t)
	ctx := context.Background()
	reviews := NewReviewRepository(gdb)

	client := newUser(t, gdb, "client", models.RoleClient)
	provider := newUser(t, gdb, "provider", models.RoleServiceProvider)
	appt := &models.Appointment{ClientID: client.ID, ServiceProviderID: provider.ID, Name: "a", Email: "a@example.com"}
	mustCreate(t, gdb, appt)

	rating := 4.5
	rv := &models.Review{ClientID: client.ID, AppointmentID: appt.ID, ServiceProviderID: provider.ID, Rating: &rating, Review: "great"}
	require.NoError(t, reviews.Create(ctx, rv))
	assert.Equal(t, models.ReviewInactive, rv.Status)

	page, err := reviews.Details(ctx, ReviewFilter{WithClient: true, WithProvider: true}, NewPage(1, 50))
	require.NoError(t, err)
	require.Len(t, page.Data, 1)

	raw, err := json.Marshal(page.Data[0])
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))

	clientBody := body["client"].(map[string]interface{})
	assert.Equal(t, "client", clientBody["name"])
	assert.Equal(t, "client@example.com", clientBody["email"])
	assert.NotContains(t, clientBody, "phone")
	assert.NotContains(t, clientBody, "password")

	providerBody := body["serviceProvider"].(map[string]interface{})
	assert.Equal(t, "0123456789", providerBody["phone"])

	apptBody := body["appointment"].(map[string]interface{})
	assert.Equal(t, float64(appt.ID), apptBody["_id"])
}

func TestReviewDetailsFilters(t *testing.T) {
	gdb := setupTestDB(t)
	ctx := context.Background()
	reviews := NewReviewRepository(gdb)

	client := newUser(t, gdb, "client", models.RoleClient)
	provider := newUser(t, gdb, "provider", models.RoleServiceProvider)

	active := &models.Review{ClientID: client.ID, AppointmentID: 77, ServiceProviderID: provider.ID}
	inactive := &models.Review{ClientID: client.ID, AppointmentID: 78, ServiceProviderID: provider.ID}
	require.NoError(t, reviews.Create(ctx, active))
	require.NoError(t, reviews.Create(ctx, inactive))
	_, err := reviews.SetStatus(ctx, active.ID, models.ReviewActive)
	require.NoError(t, err)

	shown, err := reviews.Details(ctx, ReviewFilter{ServiceProviderID: provider.ID, Status: models.ReviewActive, WithClient: true}, NewPage(1, 50))
	require.NoError(t, err)
	require.Len(t, shown.Data, 1)
	assert.Equal(t, active.ID, shown.Data[0].ID)
	assert.Nil(t, shown.Data[0].Appointment)
	assert.Equal(t, provider.ID, shown.Data[0].ServiceProvider)

	byClient, err := reviews.Details(ctx, ReviewFilter{ClientID: client.ID, WithProvider: true}, NewPage(1, 50))
	require.NoError(t, err)
	assert.Equal(t, int64(2), byClient.TotalItems)
	assert.Equal(t, client.ID, byClient.Data[0].Client)
}
