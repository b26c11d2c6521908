package loader

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/specialistvlad/trafficgo/internal/scenario"
)

func decodeJSON(path string, data []byte) (*scenario.Scenario, error) {
	var sc scenario.Scenario
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&sc); err != nil {
		return nil, fmt.Errorf("failed to decode JSON file %s: %w", path, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("failed to decode JSON file %s: unexpected data after the scenario object", path)
	}
	return &sc, nil
}
