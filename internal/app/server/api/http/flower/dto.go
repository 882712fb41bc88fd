package flower

import (
	"cosmicgarden/internal/domain/flower"
)

type plantInput struct {
	Body plantRequest
}

type plantRequest struct {
	Message string `json:"message" doc:"Mood or encouragement message, up to 200 characters" minLength:"1"`
	Author  string `json:"author,omitempty" doc:"Display name, defaults to a localized Anonymous"`
	Lang    string `json:"lang,omitempty" doc:"Language tag for localized copy, e.g. en or zh" example:"en"`
}

type plantOutput struct {
	Body plantResponse
}

type plantResponse struct {
	ID         string  `json:"id"`
	FlowerType string  `json:"flowerType" doc:"Renderable category the species maps to"`
	Species    string  `json:"species" doc:"Species chosen by the classifier"`
	Message    string  `json:"message" doc:"AI caption, or the original message on fallback"`
	Author     string  `json:"author"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	CreatedAt  string  `json:"createdAt"`
}

type listOutput struct {
	Body flower.ListResponse
}

type statsOutput struct {
	Body flower.Stats
}
