package request_models

// RecordIntakeRequest references a catalog item (food_id or barcode) or carries ad-hoc macros.
type RecordIntakeRequest struct {
	FoodID   *string      `json:"food_id"`
	Barcode  *string      `json:"barcode"`
	Grams    *float64     `json:"grams"`
	Portions *int         `json:"portions"`
	AdHoc    *AdHocIntake `json:"ad_hoc"`
}

type AdHocIntake struct {
	Name        string  `json:"name"`
	ServingSize string  `json:"serving_size"`
	Calories    float64 `json:"calories"`
	Protein     float64 `json:"protein"`
	Fat         float64 `json:"fat"`
	Carbs       float64 `json:"carbs"`
	// "estimate" for photo analysis results, "manual" otherwise
	Source string `json:"source"`
}
