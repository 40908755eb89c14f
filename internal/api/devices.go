package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// registerDeviceRoutes registers the device/routing introspection endpoints.
func (s *Server) registerDeviceRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "list-devices",
		Method:      http.MethodGet,
		Path:        "/api/devices",
		Summary:     "List devices",
		Description: "List every declared Device with its current activation refcount, plus the global refcount.",
		Tags:        []string{"devices"},
	}, func(_ context.Context, _ *struct{}) (*DevicesResponse, error) {
		s.mu.Lock()
		statuses := s.engine.Devices()
		global := s.engine.GlobalRefcount()
		s.mu.Unlock()
		devices := make([]DeviceInfo, len(statuses))
		for i, d := range statuses {
			devices[i] = DeviceInfo{Name: d.Name, Bit: d.Bit, Input: d.Input, Refcount: d.Refcount}
		}
		return &DevicesResponse{Body: DevicesData{Devices: devices, Global: global}}, nil
	})
}
