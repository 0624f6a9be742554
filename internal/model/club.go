package model

type Club struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Brand         string `json:"brand"`
	Description   string `json:"description"`
	City          string `json:"city"`
	OwnerUsername string `json:"ownerUsername,omitempty"`
}
