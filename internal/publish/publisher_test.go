package publish

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedCall struct {
	Method string
	Path   string
	Auth   string
	Body   map[string]interface{}
}

type fakeAPI struct {
	mu    sync.Mutex
	calls []recordedCall
	fail  map[string]int
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	call := recordedCall{Method: r.Method, Path: r.URL.Path, Auth: r.Header.Get("Authorization")}
	if raw, _ := io.ReadAll(r.Body); len(raw) > 0 {
		json.Unmarshal(raw, &call.Body)
	}
	f.calls = append(f.calls, call)

	w.Header().Set("Content-Type", "application/json")
	if r.URL.Path == "/api/auth/login" {
		if call.Body["password"] != "admin123" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"Invalid credentials"}`))
			return
		}
		w.Write([]byte(`{"token":"tok-123","admin":{"id":1}}`))
		return
	}
	if status, ok := f.fail[r.Method+" "+r.URL.Path]; ok {
		w.WriteHeader(status)
		w.Write([]byte(`{"error":"Slider not found"}`))
		return
	}
	w.Write([]byte(`{}`))
}

func newTestClient(t *testing.T, api *fakeAPI) *Client {
	t.Helper()

	server := httptest.NewServer(api)
	t.Cleanup(server.Close)

	client := NewClient(server.URL + "/")
	client.SetHTTPClient(server.Client())
	return client
}

func TestClientLoginAndApply(t *testing.T) {
	api := &fakeAPI{}
	client := newTestClient(t, api)
	ctx := context.Background()

	err := client.Login(ctx, "admin@bionutrex.com", "wrong")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Invalid credentials", apiErr.Message)

	require.NoError(t, client.Login(ctx, "admin@bionutrex.com", "admin123"))

	changes := []Change{
		{ID: "tmp", Type: EntitySlider, Action: ActionCreate, Data: map[string]interface{}{"title": "Nuevo"}},
		{ID: "4", Type: EntitySection, Action: ActionUpdate, Data: map[string]interface{}{"title": "Hero"}},
		{ID: "5", Type: EntitySlider, Action: ActionVisibility, Data: map[string]interface{}{"visible": false}},
		{ID: "6", Type: EntityPost, Action: ActionVisibility, Data: map[string]interface{}{"published": "true"}},
		{ID: "7", Type: EntityPost, Action: ActionDelete},
	}
	for _, change := range changes {
		require.NoError(t, client.Apply(ctx, change))
	}

	calls := api.calls[2:]
	require.Len(t, calls, 5)

	assert.Equal(t, "POST", calls[0].Method)
	assert.Equal(t, "/api/sliders", calls[0].Path)
	assert.Equal(t, "Bearer tok-123", calls[0].Auth)

	assert.Equal(t, "PUT", calls[1].Method)
	assert.Equal(t, "/api/home-sections/4", calls[1].Path)

	assert.Equal(t, "/api/sliders/5", calls[2].Path)
	assert.Equal(t, map[string]interface{}{"active": false}, calls[2].Body)

	assert.Equal(t, "/api/blog-posts/6", calls[3].Path)
	assert.Equal(t, map[string]interface{}{"published": true}, calls[3].Body)

	assert.Equal(t, "DELETE", calls[4].Method)
	assert.Equal(t, "/api/blog-posts/7", calls[4].Path)
}

func TestPublishContinuesAfterFailureAndKeepsQueue(t *testing.T) {
	api := &fakeAPI{fail: map[string]int{"PUT /api/sliders/2": http.StatusNotFound}}
	client := newTestClient(t, api)
	client.SetToken("tok")

	q := NewQueue(
		Change{ID: "1", Type: EntitySlider, Action: ActionUpdate, Data: map[string]interface{}{"title": "A"}},
		Change{ID: "2", Type: EntitySlider, Action: ActionUpdate, Data: map[string]interface{}{"title": "B"}},
		Change{ID: "3", Type: EntitySlider, Action: ActionDelete},
	)

	result := NewPublisher(client, nil).Publish(context.Background(), q)

	assert.Equal(t, 2, result.Succeeded)
	assert.Equal(t, 1, result.Failed())
	assert.False(t, result.OK())
	assert.Equal(t, "2", result.Failures[0].Change.ID)
	assert.Len(t, api.calls, 3)
	assert.Equal(t, 3, q.Len())
}

func TestPublishClearsQueueOnSuccess(t *testing.T) {
	api := &fakeAPI{}
	client := newTestClient(t, api)
	client.SetToken("tok")

	q := NewQueue(
		Change{ID: "1", Type: EntitySection, Action: ActionVisibility, Data: map[string]interface{}{"active": true}},
		Change{ID: "9", Type: EntityPost, Action: ActionUpdate, Data: map[string]interface{}{"excerpt": "x"}},
	)

	result := NewPublisher(client, nil).Publish(context.Background(), q)

	assert.True(t, result.OK())
	assert.Equal(t, 2, result.Succeeded)
	assert.Equal(t, 0, q.Len())
}
