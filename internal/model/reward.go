package model

// RewardCategory groups shop rewards
type RewardCategory string

const (
	RewardPhysical   RewardCategory = "physical"
	RewardDigital    RewardCategory = "digital"
	RewardExperience RewardCategory = "experience"
)

// Reward is an item players can buy with gems
type Reward struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	GemCost     int            `json:"gemCost"`
	Image       string         `json:"image"`
	Stock       int            `json:"stock"`
	MaxStock    int            `json:"maxStock"`
	IsAvailable bool           `json:"isAvailable"`
	Category    RewardCategory `json:"category"`
	Rarity      Rarity         `json:"rarity"`
}

// PurchaseResult is the service's answer to a reward purchase
type PurchaseResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
