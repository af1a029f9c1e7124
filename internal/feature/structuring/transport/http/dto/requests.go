// Package dto holds the request bodies of the structuring endpoints.
package dto

// MapConnectionReq is the body of POST /mapConnection.
type MapConnectionReq struct {
	Text string `json:"text"`
}

// CreateNorthStarReq is the body of POST /createNorthStar.
type CreateNorthStarReq struct {
	VisionText  string `json:"visionText"`
	CurrentText string `json:"currentText"`
}

// DesignExperimentReq is the body of POST /designExperiment.
type DesignExperimentReq struct {
	Text       string `json:"text"`
	OwnerEmail string `json:"ownerEmail"`
}
