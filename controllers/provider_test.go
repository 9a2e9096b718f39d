package controllers_test

import (
	"net/http"
	"testing"

	"github.com/meinhoongagan/servicehub/models"
	"github.com/meinhoongagan/servicehub/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedProviders(t *testing.T, env *testEnv) uint {
	t.Helper()
	cat := &models.Category{Name: "Plumbing", Description: "Pipes"}
	env.create(t, cat)

	for _, u := range []models.User{
		{Name: "cheap", City: "Pune", Pricing: "300 per visit", Experience: "2 years", Availability: "Weekdays", CategoryID: &cat.ID},
		{Name: "pricey", City: "Mumbai", Pricing: "1500", Experience: "12", Availability: "Weekends"},
		{Name: "vague", City: "Pune", Pricing: "negotiable", Experience: "lots", Availability: "Weekdays"},
	} {
		u.Role = models.RoleServiceProvider
		u.Email = u.Name + "@example.com"
		env.create(t, &u)
	}
	env.user(t, "client", models.RoleClient, "secret-pass")
	return cat.ID
}

func names(users []models.User) []string {
	out := make([]string, 0, len(users))
	for _, u := range users {
		out = append(out, u.Name)
	}
	return out
}

func TestProviderSearchRoutes(t *testing.T) {
	env := newTestEnv(t)
	catID := seedProviders(t, env)

	tests := []struct {
		path string
		want []string
	}{
		{"/web-api/service-provider/city/Pune", []string{"cheap", "vague"}},
		{"/web-api/service-provider/category/" + utoa(catID), []string{"cheap"}},
		{"/web-api/service-provider/availability/Weekends", []string{"pricey"}},
		{"/web-api/service-provider/pricing?min=100&max=1000", []string{"cheap"}},
		{"/web-api/service-provider/pricing", []string{"cheap", "pricey"}},
		{"/web-api/service-provider/experience/5", []string{"pricey"}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			var users []models.User
			require.Equal(t, http.StatusOK, env.do(t, http.MethodGet, tt.path, nil, "", &users))
			assert.Equal(t, tt.want, names(users))
		})
	}
}

func TestProviderFilterAndInfo(t *testing.T) {
	env := newTestEnv(t)
	seedProviders(t, env)

	var filtered struct {
		Success bool          `json:"success"`
		Data    []models.User `json:"data"`
	}
	require.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/web-api/service-provider/filter?city=Pune&availability=Weekdays&pricing=negotiable", nil, "", &filtered))
	assert.Equal(t, []string{"vague"}, names(filtered.Data))

	var values repository.FilterValues
	require.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/web-api/service-provider/filters", nil, "", &values))
	assert.Equal(t, []string{"Mumbai", "Pune"}, values.Cities)
	assert.Equal(t, []string{"Weekdays", "Weekends"}, values.Availability)

	var info struct {
		Success bool        `json:"success"`
		Data    models.User `json:"data"`
	}
	require.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/web-api/service-provider/getinfo/1", nil, "", &info))
	assert.Equal(t, "cheap", info.Data.Name)

	// User 4 is the client.
	var missing errorBody
	require.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/web-api/service-provider/getinfo/4", nil, "", &missing))
	assert.Equal(t, "Service Provider not found", missing.message())

	var page pageBody
	require.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/web-api/service-provider/show?limit=2", nil, "", &page))
	assert.Equal(t, int64(3), page.TotalItems)
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Data, 2)
}
