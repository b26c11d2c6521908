package loader

import (
	"fmt"

	"github.com/specialistvlad/trafficgo/internal/scenario"
	"gopkg.in/yaml.v3"
)

func decodeYAML(path string, data []byte) (*scenario.Scenario, error) {
	var sc scenario.Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("failed to decode YAML file %s: %w", path, err)
	}
	return &sc, nil
}
