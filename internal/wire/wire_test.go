package wire

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tour-booking/internal/data/repository"
	"tour-booking/pkg/utils"
)

type apiClient struct {
	t      *testing.T
	server *httptest.Server
}

func newAPI(t *testing.T) *apiClient {
	t.Helper()
	app := Wiring(repository.NewMemoryRepository(zap.NewNop()), nil, zap.NewNop())
	server := httptest.NewServer(app.Router)
	t.Cleanup(server.Close)
	return &apiClient{t: t, server: server}
}

func (c *apiClient) do(method, path, body string) (int, map[string]any) {
	c.t.Helper()
	req, err := http.NewRequest(method, c.server.URL+path, strings.NewReader(body))
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.server.Client().Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	var env map[string]any
	if resp.StatusCode != http.StatusNoContent {
		require.NoError(c.t, json.NewDecoder(resp.Body).Decode(&env))
	}
	return resp.StatusCode, env
}

func dataField(env map[string]any, name string) map[string]any {
	return env["data"].(map[string]any)[name].(map[string]any)
}

func TestAPI_TourLifecycle(t *testing.T) {
	api := newAPI(t)

	code, env := api.do(http.MethodPost, APIPrefix+"/tours",
		`{"description":"Hoi An lantern tour","duration_":1,"price":350000,"policies":"No pets\nBring cash"}`)
	require.Equal(t, http.StatusCreated, code)
	tour := dataField(env, "tour")
	assert.Equal(t, "draft", tour["status"])
	assert.Equal(t, []any{"No pets", "Bring cash"}, tour["policies"])
	id := tour["id"].(string)

	code, env = api.do(http.MethodPatch, APIPrefix+"/tours/"+id, `{"status":"active"}`)
	require.Equal(t, http.StatusOK, code)
	tour = dataField(env, "tour")
	assert.Equal(t, "active", tour["status"])
	assert.Equal(t, float64(350000), tour["price"])

	code, env = api.do(http.MethodGet, APIPrefix+"/tours?status=active", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(1), env["total"])
	assert.Equal(t, float64(1), env["results"])

	code, env = api.do(http.MethodPost, APIPrefix+"/tours", `{"description":"bad","duration_":0,"price":-5}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "fail", env["status"])
	assert.Contains(t, env["errors"], "duration_")
	assert.Contains(t, env["errors"], "price")

	code, _ = api.do(http.MethodDelete, APIPrefix+"/tours/"+id, "")
	assert.Equal(t, http.StatusNoContent, code)

	code, env = api.do(http.MethodGet, APIPrefix+"/tours/"+id, "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Tour not found", env["message"])
}

func TestAPI_ListBeyondLastPage(t *testing.T) {
	api := newAPI(t)

	code, _ := api.do(http.MethodPost, APIPrefix+"/tours", `{"description":"Ha Long cruise","duration_":2,"price":1200000}`)
	require.Equal(t, http.StatusCreated, code)

	for _, resource := range []string{"tours", "guides", "bookings"} {
		t.Run(resource, func(t *testing.T) {
			code, env := api.do(http.MethodGet, APIPrefix+"/"+resource+"?page=9223372036854775807&limit=20", "")
			require.Equal(t, http.StatusOK, code)
			assert.Equal(t, float64(0), env["results"])
			assert.Equal(t, float64(utils.MaxPage), env["page"])
			assert.Empty(t, env["data"].(map[string]any)[resource])
		})
	}
}

func TestAPI_GuideRatingAndStatistics(t *testing.T) {
	api := newAPI(t)

	code, env := api.do(http.MethodPost, APIPrefix+"/guides",
		`{"name":"Nguyen Van A","birtdate":"1990-05-20","phone":"0901234567","experience":{"years":3}}`)
	require.Equal(t, http.StatusCreated, code)
	id := dataField(env, "guide")["id"].(string)

	for _, score := range []int{4, 2} {
		code, env = api.do(http.MethodPost, APIPrefix+"/guides/"+id+"/rating", fmt.Sprintf(`{"score":%d}`, score))
		require.Equal(t, http.StatusOK, code)
	}
	rating := dataField(env, "guide")["rating"].(map[string]any)
	assert.Equal(t, float64(3), rating["average"])
	assert.Equal(t, float64(2), rating["totalReviews"])

	code, env = api.do(http.MethodPost, APIPrefix+"/guides/"+id+"/rating", `{"score":6}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Score must be between 1 and 5", env["message"])

	code, _ = api.do(http.MethodPost, APIPrefix+"/guides",
		`{"name":"Tran Thi B","birtdate":"1992-01-01","phone":"0901234567","experience":{"years":1}}`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = api.do(http.MethodGet, APIPrefix+"/guides/statistics", "")
	require.Equal(t, http.StatusOK, code)
	groups := env["data"].(map[string]any)["groupStats"].([]any)
	require.Len(t, groups, 1)
	assert.Equal(t, "domestic", groups[0].(map[string]any)["_id"])
	assert.Equal(t, float64(3), groups[0].(map[string]any)["averageRating"])
}

func TestAPI_BookingFlow(t *testing.T) {
	api := newAPI(t)

	_, env := api.do(http.MethodPost, APIPrefix+"/tours", `{"description":"Mekong delta","duration_":2,"price":120}`)
	tourID := dataField(env, "tour")["id"].(string)
	_, env = api.do(http.MethodPost, APIPrefix+"/users", `{"name":"Le Van C","email":"c@example.com","password":"secret123"}`)
	userID := dataField(env, "user")["id"].(string)

	code, env := api.do(http.MethodPost, APIPrefix+"/bookings", fmt.Sprintf(
		`{"tourId":%q,"userId":%q,"fullName":"Le Van C","phone":"0912345678","guestSize":3,"bookAt":"2025-07-01","totalPrice":1}`,
		tourID, userID))
	require.Equal(t, http.StatusCreated, code)
	booking := dataField(env, "booking")
	assert.Equal(t, float64(360), booking["totalPrice"])
	assert.Equal(t, "pending", booking["status"])
	bookingID := booking["id"].(string)

	code, env = api.do(http.MethodPatch, APIPrefix+"/bookings/"+bookingID+"/status", `{"status":"cancelled"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "cancelled", dataField(env, "booking")["status"])

	code, _ = api.do(http.MethodPatch, APIPrefix+"/bookings/"+bookingID+"/status", `{"status":"confirmed"}`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = api.do(http.MethodGet, APIPrefix+"/bookings/"+bookingID, "")
	require.Equal(t, http.StatusOK, code)
	detail := dataField(env, "booking")
	assert.Equal(t, "Mekong delta", detail["tour"].(map[string]any)["description"])
}

func TestAPI_UnknownRouteAndHealth(t *testing.T) {
	api := newAPI(t)

	code, env := api.do(http.MethodGet, "/api/v2/nothing", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Can't find /api/v2/nothing on this server!", env["message"])

	resp, err := api.server.Client().Get(api.server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}
