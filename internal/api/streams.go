package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/haldev/audiohal/internal/audiohal"
)

// registerStreamRoutes registers the stream lifecycle and control endpoints.
func (s *Server) registerStreamRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "list-stream-defs",
		Method:      http.MethodGet,
		Path:        "/api/stream-defs",
		Summary:     "List stream definitions",
		Description: "List every declared named stream definition, including the synthetic \"global\" stream.",
		Tags:        []string{"streams"},
	}, func(_ context.Context, _ *struct{}) (*StreamDefsResponse, error) {
		s.mu.Lock()
		statuses := s.engine.NamedStreams()
		s.mu.Unlock()
		defs := make([]StreamDefInfo, len(statuses))
		for i, d := range statuses {
			defs[i] = StreamDefInfo{
				Name: d.Name, Type: d.Type, Direction: d.Direction,
				Instances: d.Instances, Open: d.Open,
			}
		}
		return &StreamDefsResponse{Body: StreamDefsData{Streams: defs}}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "open-stream",
		Method:      http.MethodPost,
		Path:        "/api/streams",
		Summary:     "Open a stream",
		Description: "Opens a named stream (set name), or an anonymous stream (set type and devices).",
		Tags:        []string{"streams"},
		Errors:      []int{400, 404, 409},
	}, func(_ context.Context, input *OpenInput) (*OpenResponse, error) {
		var (
			st  *audiohal.OpenStream
			err error
		)
		s.mu.Lock()
		switch {
		case input.Body.Name != "":
			st, err = s.engine.OpenNamed(input.Body.Name)
		case input.Body.Type != "":
			st, err = s.engine.OpenAnonymous(input.Body.Devices, 0, audiohal.OpenConfig{Format: input.Body.Type})
		default:
			s.mu.Unlock()
			return nil, huma.Error400BadRequest("either name or type must be set")
		}
		s.mu.Unlock()
		if err != nil {
			return nil, errToHuma(err)
		}
		id := s.trackStream(st)
		return &OpenResponse{Body: StreamHandle{ID: id, Routes: st.CurrentRoutes()}}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "route-stream",
		Method:      http.MethodPut,
		Path:        "/api/streams/{id}/route",
		Summary:     "Apply a route",
		Description: "Replaces the stream's device-bit mask, firing enable/disable and on/off paths for the devices that changed state.",
		Tags:        []string{"streams"},
		Errors:      []int{404, 500},
	}, func(_ context.Context, input *RouteInput) (*RouteResponse, error) {
		st, ok := s.lookupStream(input.ID)
		if !ok {
			return nil, huma.Error404NotFound("no open stream with that id")
		}
		s.mu.Lock()
		err := s.engine.ApplyRoute(st, input.Body.Devices)
		s.mu.Unlock()
		resp := &RouteResponse{Body: StreamHandle{ID: input.ID, Routes: st.CurrentRoutes()}}
		if err != nil {
			return resp, errToHuma(err)
		}
		return resp, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "set-stream-volume",
		Method:      http.MethodPut,
		Path:        "/api/streams/{id}/volume",
		Summary:     "Set hardware volume",
		Tags:        []string{"streams"},
		Errors:      []int{400, 404, 500},
	}, func(_ context.Context, input *VolumeInput) (*EmptyResponse, error) {
		st, ok := s.lookupStream(input.ID)
		if !ok {
			return nil, huma.Error404NotFound("no open stream with that id")
		}
		s.mu.Lock()
		err := s.engine.SetHwVolume(st, input.Body.LeftPercent, input.Body.RightPercent)
		s.mu.Unlock()
		if err != nil {
			return nil, errToHuma(err)
		}
		resp := &EmptyResponse{}
		resp.Body.Status = "ok"
		return resp, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "apply-stream-usecase",
		Method:      http.MethodPost,
		Path:        "/api/streams/{id}/usecase",
		Summary:     "Apply a use case",
		Tags:        []string{"streams"},
		Errors:      []int{404, 500},
	}, func(_ context.Context, input *UseCaseInput) (*EmptyResponse, error) {
		st, ok := s.lookupStream(input.ID)
		if !ok {
			return nil, huma.Error404NotFound("no open stream with that id")
		}
		s.mu.Lock()
		err := s.engine.ApplyUseCase(st, input.Body.Usecase, input.Body.Case)
		s.mu.Unlock()
		if err != nil {
			return nil, errToHuma(err)
		}
		resp := &EmptyResponse{}
		resp.Body.Status = "ok"
		return resp, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "release-stream",
		Method:      http.MethodDelete,
		Path:        "/api/streams/{id}",
		Summary:     "Release a stream",
		Tags:        []string{"streams"},
		Errors:      []int{404, 500},
	}, func(_ context.Context, input *StreamIDInput) (*EmptyResponse, error) {
		st, ok := s.lookupStream(input.ID)
		if !ok {
			return nil, huma.Error404NotFound("no open stream with that id")
		}
		s.mu.Lock()
		err := s.engine.ReleaseStream(st)
		s.mu.Unlock()
		s.untrackStream(input.ID)
		resp := &EmptyResponse{}
		resp.Body.Status = "ok"
		if err != nil {
			return resp, errToHuma(err)
		}
		return resp, nil
	})
}
