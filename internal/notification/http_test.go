package notification

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDispatchPostsWireFormat(t *testing.T) {
	var gotPath string
	var gotBody map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		raw, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(raw, &gotBody); err != nil {
			t.Errorf("unmarshal body: %v", err)
		}
	}))
	defer server.Close()

	dispatcher := NewHTTPDispatcher(server.URL, time.Second)
	payload := Payload{
		Email:   "u1@example.com",
		Name:    "Carlos",
		Service: "Suite",
		Date:    "24/12/2025 10:30",
	}

	if err := dispatcher.DispatchCreated(context.Background(), payload); err != nil {
		t.Fatalf("dispatch created: %v", err)
	}
	assert.Equal(t, "/notify/reserva", gotPath)
	assert.Equal(t, map[string]string{
		"email":    "u1@example.com",
		"nombre":   "Carlos",
		"servicio": "Suite",
		"fecha":    "24/12/2025 10:30",
	}, gotBody)

	if err := dispatcher.DispatchCancelled(context.Background(), payload); err != nil {
		t.Fatalf("dispatch cancelled: %v", err)
	}
	assert.Equal(t, "/notify/cancelacion", gotPath)
}

func TestDispatchRejectedByService(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	dispatcher := NewHTTPDispatcher(server.URL, time.Second)
	err := dispatcher.DispatchCreated(context.Background(), Payload{Email: "u1@example.com"})
	assert.Error(t, err)
}

func TestNoOpDispatcher(t *testing.T) {
	var d NoOpDispatcher
	assert.NoError(t, d.DispatchCreated(context.Background(), Payload{}))
	assert.NoError(t, d.DispatchCancelled(context.Background(), Payload{}))
}
