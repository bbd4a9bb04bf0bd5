package api

type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

type SuccessResponse struct {
	Success bool `json:"success" example:"true"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
