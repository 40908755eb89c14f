package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestListDevicesReportsRefcounts(t *testing.T) {
	ts := httptest.NewServer(newTestServer(t).mux)
	defer ts.Close()

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/streams", OpenBody{Type: "pcm", Devices: 2})
	defer resp.Body.Close()
	var handle StreamHandle
	if err := json.NewDecoder(resp.Body).Decode(&handle); err != nil {
		t.Fatalf("decode open response: %v", err)
	}

	listResp, err := http.Get(ts.URL + "/api/devices")
	if err != nil {
		t.Fatalf("GET /api/devices: %v", err)
	}
	defer listResp.Body.Close()
	var data DevicesData
	if err := json.NewDecoder(listResp.Body).Decode(&data); err != nil {
		t.Fatalf("decode: %v", err)
	}

	var speaker *DeviceInfo
	for i := range data.Devices {
		if data.Devices[i].Name == "speaker" {
			speaker = &data.Devices[i]
		}
	}
	if speaker == nil {
		t.Fatal("expected \"speaker\" in device listing")
	}
	if speaker.Refcount != 1 {
		t.Errorf("speaker refcount = %d, want 1 after routing one stream to it", speaker.Refcount)
	}
	if data.Global != 1 {
		t.Errorf("global refcount = %d, want 1", data.Global)
	}
}
