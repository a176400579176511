package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
	"github.com/rs/zerolog/log"

	"github.com/nikgav1/calorie-tracking-app/utils"
)

// NutritionEstimate is what photo analysis hands back to the client; the
// fields line up with a food log entry so the client can submit it directly.
type NutritionEstimate struct {
	Name          string  `json:"name"`
	Calories      float64 `json:"ccal"`
	Protein       float64 `json:"protein"`
	Fat           float64 `json:"fat"`
	Carbohydrates float64 `json:"carbohydrates"`
	PhotoKey      string  `json:"photoKey,omitempty"`
}

// VisionService turns a meal photo into a nutrition estimate: Rekognition
// names the food, the Edamam food database supplies per-100g nutrients.
type VisionService struct {
	rek    *rekognition.Client
	upload *utils.S3Uploader

	appID  string
	appKey string
	client *http.Client
}

func NewVisionService(cfg aws.Config, upload *utils.S3Uploader, appID, appKey string) *VisionService {
	return &VisionService{
		rek:    rekognition.NewFromConfig(cfg),
		upload: upload,
		appID:  appID,
		appKey: appKey,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// AnalyzeMealPhoto accepts a base64 data-URI image and returns the estimate.
// The S3 archive copy is best-effort; analysis proceeds without it.
func (v *VisionService) AnalyzeMealPhoto(ctx context.Context, dataURI string) (*NutritionEstimate, error) {
	data, contentType, err := utils.DecodeDataURI(dataURI)
	if err != nil {
		return nil, err
	}

	photoKey, err := v.upload.UploadMealPhoto(ctx, data, contentType)
	if err != nil {
		log.Warn().Err(err).Msg("meal photo archive failed")
		photoKey = ""
	}

	label, err := v.detectFoodLabel(ctx, data)
	if err != nil {
		return nil, err
	}

	est, err := v.lookupNutrition(ctx, label)
	if err != nil {
		return nil, err
	}
	est.PhotoKey = photoKey
	return est, nil
}

func (v *VisionService) detectFoodLabel(ctx context.Context, image []byte) (string, error) {
	out, err := v.rek.DetectLabels(ctx, &rekognition.DetectLabelsInput{
		Image:         &types.Image{Bytes: image},
		MaxLabels:     aws.Int32(5),
		MinConfidence: aws.Float32(75),
	})
	if err != nil {
		return "", fmt.Errorf("detect labels: %w", err)
	}
	for _, l := range out.Labels {
		if l.Name != nil && *l.Name != "" {
			return *l.Name, nil
		}
	}
	return "", errors.New("no food recognized in image")
}

type foodParserResponse struct {
	Hints []struct {
		Food struct {
			Label     string             `json:"label"`
			Nutrients map[string]float64 `json:"nutrients"`
		} `json:"food"`
	} `json:"hints"`
}

// lookupNutrition queries the Edamam food-database parser for the label and
// maps the per-100g nutrient keys onto the estimate.
func (v *VisionService) lookupNutrition(ctx context.Context, label string) (*NutritionEstimate, error) {
	u := fmt.Sprintf(
		"https://api.edamam.com/api/food-database/v2/parser?ingr=%s&app_id=%s&app_key=%s",
		url.QueryEscape(label), v.appID, v.appKey,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create parser request: %w", err)
	}
	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call Edamam parser: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read Edamam parser response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("edamam parser API error %d: %s", resp.StatusCode, string(body))
	}

	var pr foodParserResponse
	if err := json.Unmarshal(body, &pr); err != nil {
		return nil, fmt.Errorf("failed to parse Edamam parser JSON: %w", err)
	}
	if len(pr.Hints) == 0 {
		return nil, fmt.Errorf("no nutrition data for %q", label)
	}

	food := pr.Hints[0].Food
	name := food.Label
	if name == "" {
		name = label
	}
	return &NutritionEstimate{
		Name:          name,
		Calories:      food.Nutrients["ENERC_KCAL"],
		Protein:       food.Nutrients["PROCNT"],
		Fat:           food.Nutrients["FAT"],
		Carbohydrates: food.Nutrients["CHOCDF"],
	}, nil
}
