package gateway

import (
	"encoding/json"
)

const (
	//DefaultURL is the public speech gateway
	DefaultURL = "https://gateway.speechlab.sg"
	//DefaultLang is the language sent with each upload
	DefaultLang = "english"
	//DefaultQueue is the routing key of the receiving queue system
	DefaultQueue = "dhl"
)

//Credentials for the gateway login
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

//UploadRequest describes one audio submission
type UploadRequest struct {
	FilePath string
	Lang     string
	Queue    string
}

//JobDescriptor is the gateway's view of a speech job
type JobDescriptor struct {
	Result    json.RawMessage `json:"result"`
	Status    string          `json:"status"`
	Formats   []string        `json:"formats"`
	Sampling  string          `json:"sampling"`
	Lang      string          `json:"lang"`
	Name      string          `json:"name"`
	ID        string          `json:"_id"`
	Queue     string          `json:"queue"`
	CreatedAt string          `json:"createdAt,omitempty"`
}

//StatusCreated is the status of a just submitted job
const StatusCreated = "created"

//StatusDone is the status of a finished job
const StatusDone = "done"

// jobResponse also catches the error body the gateway may send with a 2xx code
type jobResponse struct {
	JobDescriptor
	StatusCode int             `json:"statusCode"`
	Message    json.RawMessage `json:"message"`
}

type loginResponse struct {
	AccessToken string `json:"accessToken"`
}

type resultResponse struct {
	URL string `json:"url"`
}
