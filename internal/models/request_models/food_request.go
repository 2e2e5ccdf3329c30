package request_models

type FoodItemRequest struct {
	Name     string  `json:"name" binding:"required"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
	Carbs    float64 `json:"carbs"`
	Type     string  `json:"type"`
	Barcode  string  `json:"barcode"`
	Image    string  `json:"image"`
	Week     *int    `json:"week"`
	Day      *int    `json:"day"`
}
