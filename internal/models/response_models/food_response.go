package response_models

type FoodItemResponse struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Macros  Macros  `json:"macros"`
	Type    string  `json:"type"`
	Barcode *string `json:"barcode,omitempty"`
	Image   string  `json:"image,omitempty"`
	Week    *int    `json:"week,omitempty"`
	Day     *int    `json:"day,omitempty"`
}

type MenuPackEntryResponse struct {
	ID       string           `json:"id"`
	Ord      int              `json:"ord"`
	IsActive bool             `json:"is_active"`
	Food     FoodItemResponse `json:"food"`
}

type MenuPackResponse struct {
	ID      string                  `json:"id"`
	Week    int                     `json:"week"`
	Day     int                     `json:"day"`
	Name    string                  `json:"name"`
	Entries []MenuPackEntryResponse `json:"entries"`
}

type TodayMenuResponse struct {
	Date  string             `json:"date"`
	Week  int                `json:"week"`
	Day   int                `json:"day"`
	Name  string             `json:"name"`
	Items []FoodItemResponse `json:"items"`
}
