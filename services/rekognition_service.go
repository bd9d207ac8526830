package services

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

// RekognitionPredictor is the alternate detector backed by AWS
// Rekognition. It yields labels only; nutrition stays empty and the
// client fills items in manually.
type RekognitionPredictor struct {
	client *rekognition.Client
}

func NewRekognitionPredictor(ctx context.Context, region string) (*RekognitionPredictor, error) {
	cfg, err := awscfg.LoadDefaultConfig(ctx, awscfg.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &RekognitionPredictor{client: rekognition.NewFromConfig(cfg)}, nil
}

func (p *RekognitionPredictor) Predict(ctx context.Context, image io.Reader, _ string) (*PredictionResult, error) {
	data, err := io.ReadAll(image)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}

	out, err := p.client.DetectLabels(ctx, &rekognition.DetectLabelsInput{
		Image:         &types.Image{Bytes: data},
		MaxLabels:     aws.Int32(5),
		MinConfidence: aws.Float32(75),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPredictionUnavailable, err)
	}

	result := &PredictionResult{Detected: []string{}, Nutrition: []NutritionItem{}}
	for _, l := range out.Labels {
		if l.Name != nil {
			result.Detected = append(result.Detected, *l.Name)
		}
	}
	return result, nil
}
