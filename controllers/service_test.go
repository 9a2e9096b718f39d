package controllers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/meinhoongagan/servicehub/models"
	"github.com/meinhoongagan/servicehub/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serviceFields(categoryID uint) map[string]string {
	return map[string]string{
		"title":        "Kitchen sink repair",
		"category":     utoa(categoryID),
		"price":        "450",
		"description":  "Fix leaks",
		"duties":       "Replace washers",
		"availability": "Weekends",
	}
}

func TestAddServiceThenGetEditItem(t *testing.T) {
	env := newTestEnv(t)
	admin := env.user(t, "admin", "Admin", "secret-pass")
	cat := &models.Category{Name: "Plumbing", Description: "Pipes and taps"}
	env.create(t, cat)

	var added struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	status := env.doMultipart(t, http.MethodPost, "/api/service/add", serviceFields(cat.ID),
		"images", map[string][]byte{"a.png": pngHeader, "b.png": pngHeader}, env.token(t, admin), &added)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, added.Success)
	require.Len(t, env.images.saved, 2)

	var svc models.Service
	require.NoError(t, env.db.First(&svc).Error)
	assert.ElementsMatch(t, env.images.saved, svc.Images)

	var detail repository.ServiceDetail
	status = env.do(t, http.MethodGet, "/web-api/service/getedititem/"+utoa(svc.ID), nil, "", &detail)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Kitchen sink repair", detail.Title)
	require.NotNil(t, detail.CategoryDetails)
	assert.Equal(t, cat.ID, detail.CategoryDetails.ID)
	assert.Equal(t, "Plumbing", detail.CategoryDetails.Name)
	assert.Equal(t, "Pipes and taps", detail.CategoryDetails.Description)
}

func TestAddServiceRequiresToken(t *testing.T) {
	env := newTestEnv(t)
	status := env.doMultipart(t, http.MethodPost, "/api/service/add", serviceFields(1), "images", nil, "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestAddServiceRejectsNonImages(t *testing.T) {
	env := newTestEnv(t)
	admin := env.user(t, "admin", "Admin", "secret-pass")

	status := env.doMultipart(t, http.MethodPost, "/api/service/add", serviceFields(1),
		"images", map[string][]byte{"notes.png": []byte("plain text, not a picture")}, env.token(t, admin), nil)
	assert.Equal(t, http.StatusRequestEntityTooLarge, status)
	assert.Empty(t, env.images.saved)
}

func TestAddServiceRollsBackImagesWhenStoreFails(t *testing.T) {
	env := newTestEnv(t)
	admin := env.user(t, "admin", "Admin", "secret-pass")
	token := env.token(t, admin)
	require.NoError(t, env.db.Migrator().DropTable(&models.Service{}))

	status := env.doMultipart(t, http.MethodPost, "/api/service/add", serviceFields(1),
		"images", map[string][]byte{"a.png": pngHeader, "b.png": pngHeader}, token, nil)
	assert.Equal(t, http.StatusInternalServerError, status)

	require.Len(t, env.images.saved, 2)
	assert.ElementsMatch(t, env.images.saved, env.images.removed)
}

func TestDeleteServiceMarksImagesForSweep(t *testing.T) {
	env := newTestEnv(t)
	admin := env.user(t, "admin", "Admin", "secret-pass")
	svc := &models.Service{
		Title:  "Painting",
		Images: []string{"/upload/service/images-1.webp", "/upload/service/images-2.webp"},
	}
	env.create(t, svc)
	env.images.failFor["/upload/service/images-2.webp"] = true

	status := env.do(t, http.MethodDelete, "/api/service/delete/"+utoa(svc.ID), nil, env.token(t, admin), nil)
	require.Equal(t, http.StatusOK, status)

	assert.Equal(t, []string{"/upload/service/images-1.webp"}, env.images.removed)

	pending, err := env.h.FileRemovals.Pending(t.Context(), 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "/upload/service/images-2.webp", pending[0].Ref)
	assert.Equal(t, 1, pending[0].Attempts)

	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/api/service/getedititem/"+utoa(svc.ID), nil, "", nil))
}

func TestServiceShowKeepsCategoryArray(t *testing.T) {
	env := newTestEnv(t)
	cat := &models.Category{Name: "Cleaning", Description: "Homes"}
	env.create(t, cat)
	env.create(t, &models.Service{Title: "Deep clean", CategoryID: cat.ID})
	env.create(t, &models.Service{Title: "Orphan", CategoryID: cat.ID + 100})

	var page pageBody
	require.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/web-api/service/show", nil, "", &page))
	require.Len(t, page.Data, 2)

	var first, second repository.ServiceWithCategories
	require.NoError(t, json.Unmarshal(page.Data[0], &first))
	require.NoError(t, json.Unmarshal(page.Data[1], &second))
	require.Len(t, first.CategoryDetails, 1)
	assert.Equal(t, "Cleaning", first.CategoryDetails[0].Name)
	assert.Empty(t, second.CategoryDetails)
	assert.NotNil(t, second.CategoryDetails)
}

func TestServicesByCategory(t *testing.T) {
	env := newTestEnv(t)
	cat := &models.Category{Name: "Cleaning", Description: "Homes"}
	env.create(t, cat)
	env.create(t, &models.Service{Title: "Deep clean", CategoryID: cat.ID})

	var body struct {
		Success  bool                       `json:"success"`
		Services []repository.ServiceDetail `json:"services"`
	}
	require.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/web-api/service/getservicesbycategory/"+utoa(cat.ID), nil, "", &body))
	require.Len(t, body.Services, 1)
	assert.Equal(t, "Deep clean", body.Services[0].Title)

	var bad errorBody
	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodGet, "/web-api/service/getservicesbycategory/abc", nil, "", &bad))
	assert.Equal(t, "Invalid category ID", bad.message())

	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/web-api/service/getservicesbycategory/999", nil, "", nil))
}

func TestUpdateServiceMerges(t *testing.T) {
	env := newTestEnv(t)
	svc := &models.Service{Title: "Old", Images: []string{"/upload/service/x.webp"}}
	env.create(t, svc)

	status := env.do(t, http.MethodPut, "/api/service/update/"+utoa(svc.ID), map[string]interface{}{
		"title":        "New",
		"category":     "3",
		"price":        99.5,
		"description":  "d",
		"duties":       "u",
		"availability": "a",
	}, "", nil)
	require.Equal(t, http.StatusOK, status)

	var stored models.Service
	require.NoError(t, env.db.First(&stored, svc.ID).Error)
	assert.Equal(t, "New", stored.Title)
	assert.Equal(t, uint(3), stored.CategoryID)
	assert.Equal(t, 99.5, stored.Price)
	assert.Equal(t, []string{"/upload/service/x.webp"}, stored.Images)
}

func TestUpdateServiceKeepsOmittedFields(t *testing.T) {
	env := newTestEnv(t)
	svc := &models.Service{
		Title:        "Old",
		CategoryID:   2,
		Price:        50,
		Description:  "desc",
		Duties:       "duties",
		Availability: "weekdays",
	}
	env.create(t, svc)

	status := env.do(t, http.MethodPut, "/api/service/update/"+utoa(svc.ID), map[string]interface{}{
		"title":        "New",
		"category":     "2",
		"description":  "desc",
		"duties":       "duties",
		"availability": "weekdays",
	}, "", nil)
	require.Equal(t, http.StatusOK, status)

	var stored models.Service
	require.NoError(t, env.db.First(&stored, svc.ID).Error)
	assert.Equal(t, "New", stored.Title)
	assert.Equal(t, 50.0, stored.Price)

	status = env.do(t, http.MethodPut, "/api/service/update/"+utoa(svc.ID), map[string]string{"title": "Newer"}, "", nil)
	require.Equal(t, http.StatusOK, status)

	stored = models.Service{}
	require.NoError(t, env.db.First(&stored, svc.ID).Error)
	assert.Equal(t, "Newer", stored.Title)
	assert.Equal(t, uint(2), stored.CategoryID)
	assert.Equal(t, 50.0, stored.Price)
	assert.Equal(t, "desc", stored.Description)
	assert.Equal(t, "duties", stored.Duties)
	assert.Equal(t, "weekdays", stored.Availability)
}

func TestUpdateServiceRejectsNegativePrice(t *testing.T) {
	env := newTestEnv(t)
	svc := &models.Service{Title: "Old", Price: 50}
	env.create(t, svc)

	status := env.do(t, http.MethodPut, "/api/service/update/"+utoa(svc.ID), map[string]interface{}{"price": -1}, "", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	var stored models.Service
	require.NoError(t, env.db.First(&stored, svc.ID).Error)
	assert.Equal(t, 50.0, stored.Price)
}
