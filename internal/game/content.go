package game

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/laicwew/LexiQuest/internal/models"
)

//go:embed content/modules.yaml
var modulesYAML []byte

//go:embed content/responses.yaml
var responsesYAML []byte

// Built-in module ids. The default module is where a fresh session starts;
// the empty module backs the GENERATED tab before any content is generated.
const (
	DefaultModuleID = "supermarket_v1"
	EmptyModuleID   = "empty_market"
)

// Display tabs. GENERATED shows AI-generated narrative, DUMMY the static
// scene text.
const (
	TabGenerated = "GENERATED"
	TabDummy     = "DUMMY"
)

// DefaultScene is the scene every module opens in.
const DefaultScene = "entrance"

// LoadContent parses the embedded module and response tables. The response
// table is validated up front so action resolution never misses a default.
func LoadContent() (map[string]models.Module, ResponseTable, error) {
	var modules map[string]models.Module
	if err := yaml.Unmarshal(modulesYAML, &modules); err != nil {
		return nil, nil, fmt.Errorf("parse modules: %w", err)
	}
	for _, id := range []string{DefaultModuleID, EmptyModuleID} {
		module, ok := modules[id]
		if !ok {
			return nil, nil, fmt.Errorf("modules: missing built-in module %q", id)
		}
		if _, ok := module.Scenes[DefaultScene]; !ok {
			return nil, nil, fmt.Errorf("module %q: missing scene %q", id, DefaultScene)
		}
	}

	var responses ResponseTable
	if err := yaml.Unmarshal(responsesYAML, &responses); err != nil {
		return nil, nil, fmt.Errorf("parse responses: %w", err)
	}
	if err := responses.Validate(); err != nil {
		return nil, nil, err
	}
	return modules, responses, nil
}
