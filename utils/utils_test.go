package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/meinhoongagan/servicehub/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexIDAcceptsNumbersAndStrings(t *testing.T) {
	var v struct {
		A FlexID `json:"a"`
		B FlexID `json:"b"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": 12, "b": " 34 "}`), &v))
	assert.Equal(t, uint(12), v.A.Uint())
	assert.Equal(t, uint(34), v.B.Uint())

	assert.Error(t, json.Unmarshal([]byte(`{"a": "x1"}`), &v))
	assert.Error(t, json.Unmarshal([]byte(`{"a": true}`), &v))
}

func TestFlexStringAcceptsNumbers(t *testing.T) {
	var v struct {
		Age FlexString `json:"age"`
		Exp FlexString `json:"exp"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"age": 31, "exp": " 4 years "}`), &v))
	assert.Equal(t, "31", v.Age.String())
	assert.Equal(t, "4 years", v.Exp.String())
}

func TestParseIDKinds(t *testing.T) {
	id, err := ParseID("42")
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)

	_, err = ParseID("abc")
	assert.Equal(t, KindValidation, KindOf(err))
	_, err = ParseID("0")
	assert.Equal(t, KindValidation, KindOf(err))

	_, err = ParseStoreID("abc")
	assert.Equal(t, KindServer, KindOf(err))
}

func TestAppErrorStatus(t *testing.T) {
	tests := []struct {
		err  *AppError
		want int
	}{
		{Validation("x"), http.StatusBadRequest},
		{Auth("x"), http.StatusBadRequest},
		{NotFound("x"), http.StatusNotFound},
		{Conflict("x"), http.StatusConflict},
		{Unauthorized("x"), http.StatusUnauthorized},
		{Forbidden("x"), http.StatusForbidden},
		{Server("x", errors.New("boom")), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.err.Status(), tt.err.Message)
	}

	cause := errors.New("boom")
	assert.ErrorIs(t, Server("x", cause), cause)
	assert.Equal(t, KindServer, KindOf(cause))
}

func TestValidateStructReportsFields(t *testing.T) {
	type req struct {
		Email string  `json:"email" validate:"required,email"`
		Pass  string  `json:"password" validate:"min=8"`
		Fees  float64 `json:"fees" validate:"gte=0"`
	}

	err := ValidateStruct(&req{Email: "nope", Pass: "short", Fees: -1})
	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, KindValidation, appErr.Kind)

	got := map[string]string{}
	for _, f := range appErr.Fields {
		got[f.Field] = f.Msg
	}
	assert.Equal(t, map[string]string{
		"email":    "must be a valid email address",
		"password": "must be at least 8 chars long",
		"fees":     "must be greater than or equal to 0",
	}, got)

	assert.NoError(t, ValidateStruct(&req{Email: "a@example.com", Pass: "long-enough"}))
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)
	assert.True(t, CheckPassword(hash, "correct horse"))
	assert.False(t, CheckPassword(hash, "battery staple"))
}

func TestIssueTokenRoundTrip(t *testing.T) {
	secret := []byte("s3cret")
	user := &models.User{ID: 9, Role: models.RoleServiceProvider}

	signed, issued, err := IssueToken(secret, user, time.Hour)
	require.NoError(t, err)
	assert.NotEmpty(t, issued.JTI)

	token, err := jwt.Parse(signed, func(*jwt.Token) (interface{}, error) { return secret, nil })
	require.NoError(t, err)

	claims, err := ClaimsFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(9), claims.UserID)
	assert.Equal(t, models.RoleServiceProvider, claims.Role)
	assert.Equal(t, issued.JTI, claims.JTI)
	assert.Equal(t, issued.ExpiresAt.Unix(), claims.ExpiresAt.Unix())

	_, _, err = IssueToken(nil, user, time.Hour)
	assert.Error(t, err)
}

func TestExpiredTokenIsRejected(t *testing.T) {
	secret := []byte("s3cret")
	signed, _, err := IssueToken(secret, &models.User{ID: 1}, -time.Minute)
	require.NoError(t, err)

	_, err = jwt.Parse(signed, func(*jwt.Token) (interface{}, error) { return secret, nil })
	assert.Error(t, err)
}

func TestParseAppointmentTime(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)

	tests := []struct {
		date, clock string
		want        time.Time
	}{
		{"2024-05-10", "14:30", time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)},
		{"2024-05-10", "14:30:15", time.Date(2024, 5, 10, 9, 0, 15, 0, time.UTC)},
		{"2024-05-10", "2:30 PM", time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)},
		{"2024-05-10T10:00:00Z", "", time.Date(2024, 5, 10, 10, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := ParseAppointmentTime(tt.date, tt.clock, ist)
		require.NoError(t, err, tt.date+" "+tt.clock)
		assert.True(t, tt.want.Equal(got), "%s %s: got %s", tt.date, tt.clock, got)
	}

	_, err := ParseAppointmentTime("10/05/2024", "14:30", ist)
	assert.Error(t, err)
}

func TestDateKeyAndLocation(t *testing.T) {
	ts := time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-03-01", DateKey(ts, nil))
	assert.Equal(t, "2024-03-02", DateKey(ts, time.FixedZone("IST", 5*3600+1800)))
	assert.Equal(t, time.UTC, LoadLocation(""))
	assert.Equal(t, time.UTC, LoadLocation("Mars/Olympus"))
}
