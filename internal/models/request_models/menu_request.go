package request_models

type AddPackEntryRequest struct {
	FoodID string `json:"food_id" binding:"required"`
}

type SetPackEntryActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}
