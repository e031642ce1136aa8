package request

type ImageUploadRequest struct {
	Alt       string `json:"alt,omitempty" validate:"omitempty,max=200"`
	IsPrimary bool   `json:"is_primary,omitempty"`
	SortOrder int    `json:"sort_order,omitempty" validate:"gte=0"`
}
