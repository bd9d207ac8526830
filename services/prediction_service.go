package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// ErrPredictionUnavailable wraps any upstream failure of the food
// detection endpoint: network error, timeout or non-2xx status. The
// upstream message rides along for diagnostics.
var ErrPredictionUnavailable = errors.New("prediction service unavailable")

const (
	DefaultPredictTimeout = 30 * time.Second
	predictFormField      = "image"
)

// PredictionResult is the canonical detection payload. The gateway
// normalizes whichever shape the upstream model returns into this one,
// so handlers and clients never see the raw upstream schema.
type PredictionResult struct {
	Detected  []string        `json:"detected"`
	Nutrition []NutritionItem `json:"nutrition"`
}

type Predictor interface {
	Predict(ctx context.Context, image io.Reader, filename string) (*PredictionResult, error)
}

// HTTPPredictor posts the image as multipart form data to an external
// ML endpoint. Retries are an explicit configuration decision: the
// default of zero keeps the single-attempt policy.
type HTTPPredictor struct {
	url        string
	client     *http.Client
	retries    int
	retryDelay time.Duration
}

func NewHTTPPredictor(url string, timeout time.Duration, retries int, retryDelay time.Duration) *HTTPPredictor {
	if timeout <= 0 {
		timeout = DefaultPredictTimeout
	}
	if retries < 0 {
		retries = 0
	}
	return &HTTPPredictor{
		url:        url,
		client:     &http.Client{Timeout: timeout},
		retries:    retries,
		retryDelay: retryDelay,
	}
}

func (p *HTTPPredictor) Predict(ctx context.Context, image io.Reader, filename string) (*PredictionResult, error) {
	data, err := io.ReadAll(image)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= p.retries; attempt++ {
		if attempt > 0 && p.retryDelay > 0 {
			select {
			case <-time.After(p.retryDelay):
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %v", ErrPredictionUnavailable, ctx.Err())
			}
		}

		result, err := p.attempt(ctx, data, filename)
		if err == nil {
			return result, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

func (p *HTTPPredictor) attempt(ctx context.Context, image []byte, filename string) (*PredictionResult, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(predictFormField, filename)
	if err != nil {
		return nil, fmt.Errorf("build multipart body: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return nil, fmt.Errorf("build multipart body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("build multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, body)
	if err != nil {
		return nil, fmt.Errorf("build prediction request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPredictionUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrPredictionUnavailable, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: upstream returned %d: %s", ErrPredictionUnavailable, resp.StatusCode, string(respBody))
	}

	result, err := normalizePrediction(respBody)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPredictionUnavailable, err)
	}
	return result, nil
}

// The model service has shipped two response shapes over time: a flat
// food_items list, and a detected/nutrition pair. Both normalize to
// PredictionResult here so callers never branch on the upstream schema.
type upstreamPrediction struct {
	Detected  []string        `json:"detected"`
	Nutrition []NutritionItem `json:"nutrition"`
	FoodItems []struct {
		Name          string  `json:"name"`
		Calories      float64 `json:"calories"`
		Protein       float64 `json:"protein"`
		Carbohydrates float64 `json:"carbohydrates"`
		Fat           float64 `json:"fat"`
	} `json:"food_items"`
}

func normalizePrediction(raw []byte) (*PredictionResult, error) {
	var up upstreamPrediction
	if err := json.Unmarshal(raw, &up); err != nil {
		return nil, fmt.Errorf("unexpected response payload: %v", err)
	}

	out := &PredictionResult{Detected: []string{}, Nutrition: []NutritionItem{}}
	if len(up.FoodItems) > 0 {
		for _, fi := range up.FoodItems {
			out.Detected = append(out.Detected, fi.Name)
			out.Nutrition = append(out.Nutrition, NutritionItem{
				Name:          fi.Name,
				Calories:      fi.Calories,
				Protein:       fi.Protein,
				Carbohydrates: fi.Carbohydrates,
				Fat:           fi.Fat,
			})
		}
		return out, nil
	}

	if up.Detected != nil {
		out.Detected = up.Detected
	}
	if up.Nutrition != nil {
		out.Nutrition = up.Nutrition
	}
	return out, nil
}
