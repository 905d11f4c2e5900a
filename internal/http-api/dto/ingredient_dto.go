package dto

import "recipehub/internal/http-api/models"

// IngredientResponse: one catalog ingredient
type IngredientResponse struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

func IngredientFromModel(i models.Ingredient) IngredientResponse {
	return IngredientResponse{ID: i.ID, Name: i.Name, MeasurementUnit: i.MeasurementUnit}
}

// CreateIngredientRequest: admin payload for new reference ingredients
type CreateIngredientRequest struct {
	Name            string `json:"name" binding:"required,max=256"`
	MeasurementUnit string `json:"measurement_unit" binding:"required,max=256"`
}
