package api

// HealthData is the body of the health check response.
type HealthData struct {
	Status string `json:"status" example:"ok"`
}

// HealthResponse wraps HealthData for huma.Register.
type HealthResponse struct {
	Body HealthData
}

// DeviceInfo describes one declared Device for the /api/devices listing.
type DeviceInfo struct {
	Name     string `json:"name" example:"speaker"`
	Bit      uint32 `json:"bit" example:"2"`
	Input    bool   `json:"input"`
	Refcount int    `json:"refcount"`
}

// DevicesData is the body of the device listing response.
type DevicesData struct {
	Devices []DeviceInfo `json:"devices"`
	Global  int          `json:"global_refcount"`
}

// DevicesResponse wraps DevicesData for huma.Register.
type DevicesResponse struct {
	Body DevicesData
}

// StreamDefInfo describes one declared named stream definition.
type StreamDefInfo struct {
	Name      string `json:"name" example:"music"`
	Type      string `json:"type" example:"hw"`
	Direction string `json:"direction,omitempty" example:"out"`
	Instances int    `json:"instances" example:"0"`
	Open      int    `json:"open" example:"1"`
}

// StreamDefsData is the body of the stream definition listing response.
type StreamDefsData struct {
	Streams []StreamDefInfo `json:"streams"`
}

// StreamDefsResponse wraps StreamDefsData for huma.Register.
type StreamDefsResponse struct {
	Body StreamDefsData
}

// OpenBody is the request body for opening a stream.
type OpenBody struct {
	// Name opens a named stream ("global" is always valid). Omit it and
	// set Type/Devices to open an anonymous stream instead.
	Name    string `json:"name,omitempty" example:"music"`
	Type    string `json:"type,omitempty" example:"pcm" doc:"pcm or compress, for anonymous opens"`
	Devices uint32 `json:"devices,omitempty" doc:"initial device-bit mask, for anonymous opens"`
}

// OpenInput wraps OpenBody for huma.Register.
type OpenInput struct {
	Body OpenBody
}

// StreamHandle identifies a server-tracked OpenStream.
type StreamHandle struct {
	ID     string `json:"id" example:"s1"`
	Routes uint32 `json:"routes"`
}

// OpenResponse wraps StreamHandle for huma.Register.
type OpenResponse struct {
	Body StreamHandle
}

// StreamIDInput carries the path parameter identifying an open stream.
type StreamIDInput struct {
	ID string `path:"id" example:"s1"`
}

// RouteBody is the request body for apply_route.
type RouteBody struct {
	Devices uint32 `json:"devices" doc:"full replacement device-bit mask"`
}

// RouteInput wraps RouteBody and the stream path parameter.
type RouteInput struct {
	StreamIDInput
	Body RouteBody
}

// RouteResponse wraps StreamHandle for huma.Register.
type RouteResponse struct {
	Body StreamHandle
}

// VolumeBody is the request body for set_hw_volume.
type VolumeBody struct {
	LeftPercent  int `json:"left_percent" example:"80"`
	RightPercent int `json:"right_percent" example:"80"`
}

// VolumeInput wraps VolumeBody and the stream path parameter.
type VolumeInput struct {
	StreamIDInput
	Body VolumeBody
}

// UseCaseBody is the request body for apply_use_case.
type UseCaseBody struct {
	Usecase string `json:"usecase" example:"HiFi"`
	Case    string `json:"case" example:"Play Music"`
}

// UseCaseInput wraps UseCaseBody and the stream path parameter.
type UseCaseInput struct {
	StreamIDInput
	Body UseCaseBody
}

// EmptyResponse acknowledges a request with no meaningful body.
type EmptyResponse struct {
	Body struct {
		Status string `json:"status" example:"ok"`
	}
}
