package services

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func imageReader() *bytes.Reader {
	return bytes.NewReader([]byte("fake-jpeg-bytes"))
}

func TestHTTPPredictor_CanonicalShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "lunch.jpg", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"detected":["pizza"],"nutrition":[{"name":"pizza","calories":285,"protein":12,"carbohydrates":36,"fat":10}]}`))
	}))
	defer srv.Close()

	p := NewHTTPPredictor(srv.URL, 5*time.Second, 0, 0)
	result, err := p.Predict(context.Background(), imageReader(), "lunch.jpg")
	require.NoError(t, err)

	assert.Equal(t, []string{"pizza"}, result.Detected)
	require.Len(t, result.Nutrition, 1)
	assert.Equal(t, 285.0, result.Nutrition[0].Calories)
}

func TestHTTPPredictor_NormalizesFoodItemsShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"food_items":[{"name":"rice","calories":206,"protein":4},{"name":"dal","calories":120,"fat":3}]}`))
	}))
	defer srv.Close()

	p := NewHTTPPredictor(srv.URL, 5*time.Second, 0, 0)
	result, err := p.Predict(context.Background(), imageReader(), "dinner.jpg")
	require.NoError(t, err)

	assert.Equal(t, []string{"rice", "dal"}, result.Detected)
	require.Len(t, result.Nutrition, 2)
	assert.Equal(t, 206.0, result.Nutrition[0].Calories)
	assert.Equal(t, 4.0, result.Nutrition[0].Protein)
	assert.Equal(t, 3.0, result.Nutrition[1].Fat)
}

func TestHTTPPredictor_SurfacesUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model exploded", http.StatusBadGateway)
	}))
	defer srv.Close()

	p := NewHTTPPredictor(srv.URL, 5*time.Second, 0, 0)
	_, err := p.Predict(context.Background(), imageReader(), "lunch.jpg")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPredictionUnavailable)
	assert.Contains(t, err.Error(), "model exploded")
}

func TestHTTPPredictor_NetworkErrorIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	p := NewHTTPPredictor(srv.URL, time.Second, 0, 0)
	_, err := p.Predict(context.Background(), imageReader(), "lunch.jpg")
	assert.ErrorIs(t, err, ErrPredictionUnavailable)
}

func TestHTTPPredictor_TimeoutIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	p := NewHTTPPredictor(srv.URL, 50*time.Millisecond, 0, 0)
	_, err := p.Predict(context.Background(), imageReader(), "lunch.jpg")
	assert.ErrorIs(t, err, ErrPredictionUnavailable)
}

func TestHTTPPredictor_SingleAttemptByDefault(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		http.Error(w, "busy", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	p := NewHTTPPredictor(srv.URL, time.Second, 0, 0)
	_, err := p.Predict(context.Background(), imageReader(), "lunch.jpg")
	require.Error(t, err)
	assert.Equal(t, int32(1), attempts.Load())
}

func TestHTTPPredictor_ConfiguredRetries(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) < 3 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"detected":["pizza"],"nutrition":[]}`))
	}))
	defer srv.Close()

	p := NewHTTPPredictor(srv.URL, time.Second, 2, time.Millisecond)
	result, err := p.Predict(context.Background(), imageReader(), "lunch.jpg")
	require.NoError(t, err)
	assert.Equal(t, []string{"pizza"}, result.Detected)
	assert.Equal(t, int32(3), attempts.Load())
}
