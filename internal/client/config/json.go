package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/ecosync/ecosync-cli/internal/flagx"
)

// duration lets JSON specify intervals either as strings like "10s" or as
// integer nanoseconds.
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		d.Duration = parsed
	default:
		return fmt.Errorf("invalid duration: %s", string(data))
	}
	return nil
}

// jsonConfig is a DTO used exclusively for JSON unmarshalling. Values are
// copied into the runtime Config after parsing.
type jsonConfig struct {
	APIBaseURL          string   `json:"api_base_url"`
	RequestTimeout      duration `json:"request_timeout"`
	OnlineCheckInterval duration `json:"online_check_interval"`
	StateDBPath         string   `json:"state_db_path"`
	FrontCameraSource   string   `json:"front_camera_source"`
	RearCameraSource    string   `json:"rear_camera_source"`
}

// parseJson overlays Config with values loaded from a JSON file named by the
// -c/-config flags. When no file is named, nothing is loaded. Only fields
// present in the JSON override the current values. Panics on read or
// unmarshal errors (caller should recover if desired).
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc jsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.OnlineCheckInterval.Duration != 0 {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.StateDBPath != "" {
		cfg.StateDBPath = jc.StateDBPath
	}
	if jc.FrontCameraSource != "" {
		cfg.FrontCameraSource = jc.FrontCameraSource
	}
	if jc.RearCameraSource != "" {
		cfg.RearCameraSource = jc.RearCameraSource
	}
}
