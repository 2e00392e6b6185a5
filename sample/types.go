package main

import "time"

type ErrorResponse struct {
	Error string `json:"error"`
}

type EnrollRequest struct {
	Username    string `json:"username"`
	Finger      int    `json:"finger"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

type EnrollResponse struct {
	ID string `json:"id"`
}

type VerifyRequest struct {
	ID    string `json:"id"`
	Image string `json:"image"`
}

type VerifyResponse struct {
	Match bool    `json:"is_match"`
	Score float64 `json:"score"`
}

type IdentifyRequest struct {
	Username string `json:"username"`
	Image    string `json:"image"`
}

type IdentifyResponse struct {
	Match  bool    `json:"is_match"`
	ID     string  `json:"id,omitempty"`
	Finger string  `json:"finger,omitempty"`
	Score  float64 `json:"score,omitempty"`
}

type PrintSummary struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Finger    string    `json:"finger"`
	Driver    string    `json:"driver"`
	DeviceID  string    `json:"device_id"`
	CreatedAt time.Time `json:"created_at"`
}

type ExportResponse struct {
	Data string `json:"data"`
}

type ImportRequest struct {
	Data string `json:"data"`
}

type CompareRequest struct {
	ProbeImage     string `json:"probe_image"`
	CandidateImage string `json:"candidate_image"`
}

type CompareResponse struct {
	Score   float64 `json:"score"`
	Match   bool    `json:"is_match"`
	Elapsed string  `json:"elapsed"`
}
