package ws

import (
	"encoding/json"

	"rate_planner/internal/model"
	"rate_planner/internal/scenario"
)

// Envelope wraps all WebSocket messages with a type discriminator.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Message type constants
const (
	// Client -> Server
	TypeParamsUpdate = "params:update"
	TypeParamsReset  = "params:reset"

	// Server -> Client
	TypeCatalogLoaded    = "catalog:loaded"
	TypeScenarioUpdate   = "scenario:update"
	TypeComparisonUpdate = "comparison:update"
	TypeViabilityUpdate  = "viability:update"
	TypeImpactUpdate     = "impact:update"
	TypeParamsInvalid    = "params:invalid"
)

// Client -> Server messages

// ParamsUpdatePayload carries a complete parameter bundle. Years is
// optional; a zero value keeps the server's current projection horizon.
type ParamsUpdatePayload struct {
	Params model.Params    `json:"params"`
	Years  model.YearRange `json:"years,omitempty"`
}

// Server -> Client messages

// ScenarioEntry names one scenario for the catalog payload.
type ScenarioEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CatalogPayload is sent on connect: the full parameter catalog with ranges
// and defaults, the scenario list, and the active inputs.
type CatalogPayload struct {
	Catalog   map[string]model.ParamInfo `json:"catalog"`
	Scenarios []ScenarioEntry            `json:"scenarios"`
	Params    model.Params               `json:"params"`
	Years     model.YearRange            `json:"years"`
}

// ScenarioUpdatePayload carries one scenario's full yearly trajectory.
type ScenarioUpdatePayload struct {
	Scenario string             `json:"scenario"`
	Records  []model.YearRecord `json:"records"`
}

// ComparisonUpdatePayload carries the derived metrics between two scenarios.
type ComparisonUpdatePayload struct {
	Baseline   string              `json:"baseline"`
	Comparison string              `json:"comparison"`
	Result     scenario.Comparison `json:"result"`
}

// ParamsInvalidPayload reports a rejected parameter bundle.
type ParamsInvalidPayload struct {
	Problems []string `json:"problems"`
}

func NewEnvelope(msgType string, payload any) ([]byte, error) {
	var raw json.RawMessage
	if payload != nil {
		var err error
		raw, err = json.Marshal(payload)
		if err != nil {
			return nil, err
		}
	}
	return json.Marshal(Envelope{Type: msgType, Payload: raw})
}
