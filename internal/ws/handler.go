package ws

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"rate_planner/internal/cache"
	"rate_planner/internal/model"
	"rate_planner/internal/scenario"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler manages WebSocket connections. Every parameter update triggers a
// full recompute of all three scenarios, which is broadcast to all clients.
type Handler struct {
	hub   *Hub
	runs  *cache.Cache
	deflt model.Params

	mu     sync.Mutex
	params model.Params
	years  model.YearRange
}

func NewHandler(hub *Hub, runs *cache.Cache, defaults model.Params, years model.YearRange) *Handler {
	return &Handler{
		hub:    hub,
		runs:   runs,
		deflt:  defaults,
		params: defaults,
		years:  years,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	client := &Client{
		hub:  h.hub,
		conn: conn,
		send: make(chan []byte, 256),
	}

	h.hub.Register(client)
	go client.writePump()

	// Bring the new client up to date: catalog first, then current results.
	h.sendCatalog(client)
	h.sendResults(client)

	h.readPump(client)
}

func (h *Handler) readPump(c *Client) {
	defer func() {
		h.hub.Unregister(c)
		c.conn.Close()
	}()

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			return
		}

		h.handleMessage(c, msg)
	}
}

func (h *Handler) handleMessage(c *Client, msg []byte) {
	var env Envelope
	if err := json.Unmarshal(msg, &env); err != nil {
		log.Printf("Invalid message: %v", err)
		return
	}

	switch env.Type {
	case TypeParamsUpdate:
		var p ParamsUpdatePayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			log.Printf("Invalid params:update payload: %v", err)
			return
		}
		years := p.Years
		if years == (model.YearRange{}) {
			h.mu.Lock()
			years = h.years
			h.mu.Unlock()
		}
		h.applyParams(c, p.Params, years)

	case TypeParamsReset:
		h.mu.Lock()
		years := h.years
		h.mu.Unlock()
		h.applyParams(c, h.deflt, years)

	default:
		log.Printf("Unknown message type: %s", env.Type)
	}
}

// applyParams validates and installs a new bundle. A rejected bundle is
// reported only to the submitting client; the shared state is untouched.
func (h *Handler) applyParams(c *Client, p model.Params, years model.YearRange) {
	msgs, err := h.resultMessages(p, years)
	if err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			h.sendTo(c, TypeParamsInvalid, ParamsInvalidPayload{Problems: verr.Problems})
			return
		}
		h.sendTo(c, TypeParamsInvalid, ParamsInvalidPayload{Problems: []string{err.Error()}})
		return
	}

	h.mu.Lock()
	h.params = p
	h.years = years
	h.mu.Unlock()

	for _, m := range msgs {
		h.hub.Broadcast(m)
	}
}

// resultMessages computes all three scenarios plus the derived metrics and
// returns the encoded broadcast set.
func (h *Handler) resultMessages(p model.Params, years model.YearRange) ([][]byte, error) {
	runs := make(map[model.Scenario][]model.YearRecord, 3)
	var msgs [][]byte

	for _, sc := range model.Scenarios() {
		records, err := h.runs.Run(p, sc, years)
		if err != nil {
			return nil, err
		}
		runs[sc] = records

		msg, err := NewEnvelope(TypeScenarioUpdate, ScenarioUpdatePayload{
			Scenario: string(sc),
			Records:  records,
		})
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, msg)
	}

	window := model.YearRange{Start: p.ExpansionYear, End: years.End}
	if window.Start < years.Start {
		window.Start = years.Start
	}
	cmp, err := scenario.Compare(runs[model.StatusQuo], runs[model.ExpansionWithAnchor], window, p.Households, p.HouseholdKWh)
	if err != nil {
		return nil, err
	}

	cmpMsg, err := NewEnvelope(TypeComparisonUpdate, ComparisonUpdatePayload{
		Baseline:   string(model.StatusQuo),
		Comparison: string(model.ExpansionWithAnchor),
		Result:     cmp,
	})
	if err != nil {
		return nil, err
	}
	msgs = append(msgs, cmpMsg)

	viaMsg, err := NewEnvelope(TypeViabilityUpdate, scenario.AssessViability(p))
	if err != nil {
		return nil, err
	}
	msgs = append(msgs, viaMsg)

	impMsg, err := NewEnvelope(TypeImpactUpdate, scenario.EstimateImpact(p))
	if err != nil {
		return nil, err
	}
	msgs = append(msgs, impMsg)

	return msgs, nil
}

func (h *Handler) sendCatalog(c *Client) {
	h.mu.Lock()
	p, years := h.params, h.years
	h.mu.Unlock()

	entries := make([]ScenarioEntry, 0, 3)
	for _, sc := range model.Scenarios() {
		entries = append(entries, ScenarioEntry{ID: string(sc), Name: model.ScenarioCatalog[sc].Name})
	}

	h.sendTo(c, TypeCatalogLoaded, CatalogPayload{
		Catalog:   model.ParamCatalog,
		Scenarios: entries,
		Params:    p,
		Years:     years,
	})
}

func (h *Handler) sendResults(c *Client) {
	h.mu.Lock()
	p, years := h.params, h.years
	h.mu.Unlock()

	msgs, err := h.resultMessages(p, years)
	if err != nil {
		log.Printf("Error computing results for new client: %v", err)
		return
	}
	for _, m := range msgs {
		c.trySend(m)
	}
}

func (h *Handler) sendTo(c *Client, msgType string, payload any) {
	msg, err := NewEnvelope(msgType, payload)
	if err != nil {
		log.Printf("Error marshaling %s: %v", msgType, err)
		return
	}
	c.trySend(msg)
}
