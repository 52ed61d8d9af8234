// Package adapter maps the external JSON request/response shapes of
// spec.md §6 onto internal/model and internal/ga, performing the fail-fast
// validation of spec.md §7 before any optimization work starts.
package adapter

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/cargoloader/truckpack/internal/ga"
	"github.com/cargoloader/truckpack/internal/model"
)

// Sentinel error kinds from spec.md §7. PlacementInfeasible is
// deliberately absent here: it is not an error, it surfaces only through
// Response.Unplaced.
var (
	ErrInvalidGeometry = errors.New("adapter: invalid geometry")
	ErrInvalidParams   = errors.New("adapter: invalid params")
	ErrDuplicateID     = errors.New("adapter: duplicate box id")
)

const (
	defaultMaxWeight   = 12000.0
	defaultBoxWeight   = 1.0
	defaultBoxPriority = 1
	defaultPopulation  = 40
	defaultGenerations = 40
	defaultMutation    = 0.08
	defaultSeed        = uint32(12345)
)

// TruckRequest is the wire shape of the truck object in spec.md §6.
type TruckRequest struct {
	W         float64  `json:"w"`
	H         float64  `json:"h"`
	D         float64  `json:"d"`
	MaxWeight *float64 `json:"max_weight,omitempty"`
}

// BoxRequest is the wire shape of one box object in spec.md §6. Either ID
// or SKU may be supplied; ID takes precedence when both are present.
type BoxRequest struct {
	ID       string   `json:"id,omitempty"`
	SKU      string   `json:"sku,omitempty"`
	W        float64  `json:"w"`
	H        float64  `json:"h"`
	D        float64  `json:"d"`
	Weight   *float64 `json:"weight,omitempty"`
	Priority *int     `json:"priority,omitempty"`
}

func (b BoxRequest) identifier() string {
	if b.ID != "" {
		return b.ID
	}
	return b.SKU
}

// ParamsRequest is the wire shape of the optional params object in
// spec.md §6; every field defaults when absent.
type ParamsRequest struct {
	Population   *int     `json:"population,omitempty"`
	Generations  *int     `json:"generations,omitempty"`
	MutationRate *float64 `json:"mutation_rate,omitempty"`
	Seed         *uint32  `json:"seed,omitempty"`
}

// Request is the full wire request of spec.md §6.
type Request struct {
	Truck  TruckRequest   `json:"truck"`
	Boxes  []BoxRequest   `json:"boxes"`
	Params *ParamsRequest `json:"params,omitempty"`
}

// Placement is one accepted box in the wire response.
type Placement struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	Z  float64 `json:"z"`
	W  float64 `json:"w"`
	H  float64 `json:"h"`
	D  float64 `json:"d"`
}

// Metrics is the nested metrics submap of spec.md §6: the pybind11
// binding's four metric fields, plus the two effective_* fields below.
type Metrics struct {
	UsedVolume  float64 `json:"used_volume"`
	TotalVolume float64 `json:"total_volume"`
	Utilization float64 `json:"utilization"`
	TotalWeight float64 `json:"total_weight"`

	// EffectivePopulation and EffectiveGenerations report the
	// (population, generations) pair actually used after the
	// instance-size capping table of spec.md §4.F is applied, so a
	// caller can reason about run cost without re-deriving the table.
	EffectivePopulation  int `json:"effective_population"`
	EffectiveGenerations int `json:"effective_generations"`
}

// Response is the full wire response of spec.md §6.
type Response struct {
	Placed   []Placement `json:"placed"`
	Unplaced []string    `json:"unplaced"`
	Metrics  Metrics     `json:"metrics"`
}

// ParseRequest decodes a Request from JSON bytes.
func ParseRequest(data []byte) (Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return Request{}, fmt.Errorf("adapter: decode request: %w", err)
	}
	return req, nil
}

// Optimize validates req, runs the GA, and builds the wire response. The
// returned correlation id is for log threading only; it never appears in
// the response.
func Optimize(req Request, observe ga.Observer) (Response, string, error) {
	correlationID := uuid.New().String()[:8]

	truck, err := buildTruck(req.Truck)
	if err != nil {
		return Response{}, correlationID, err
	}

	boxes, err := buildBoxes(req.Boxes)
	if err != nil {
		return Response{}, correlationID, err
	}

	params, err := buildParams(req.Params)
	if err != nil {
		return Response{}, correlationID, err
	}

	result, effective := ga.OptimizeGA(truck, boxes, params, observe)
	return buildResponse(result, effective), correlationID, nil
}

func buildTruck(t TruckRequest) (model.Truck, error) {
	if t.W <= 0 || t.H <= 0 || t.D <= 0 {
		return model.Truck{}, fmt.Errorf("%w: truck extents must be positive", ErrInvalidGeometry)
	}

	maxWeight := defaultMaxWeight
	if t.MaxWeight != nil {
		maxWeight = *t.MaxWeight
	}
	if maxWeight <= 0 {
		return model.Truck{}, fmt.Errorf("%w: truck max_weight must be positive", ErrInvalidGeometry)
	}

	return model.Truck{W: t.W, H: t.H, D: t.D, MaxWeight: maxWeight}, nil
}

func buildBoxes(reqs []BoxRequest) ([]model.Box, error) {
	boxes := make([]model.Box, 0, len(reqs))
	seen := make(map[string]bool, len(reqs))

	for _, b := range reqs {
		id := b.identifier()
		if id == "" {
			return nil, fmt.Errorf("%w: box missing both id and sku", ErrInvalidGeometry)
		}
		if seen[id] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, id)
		}
		seen[id] = true

		if b.W <= 0 || b.H <= 0 || b.D <= 0 {
			return nil, fmt.Errorf("%w: box %q extents must be positive", ErrInvalidGeometry, id)
		}

		weight := defaultBoxWeight
		if b.Weight != nil {
			weight = *b.Weight
		}
		if weight < 0 {
			return nil, fmt.Errorf("%w: box %q weight must be non-negative", ErrInvalidGeometry, id)
		}

		priority := defaultBoxPriority
		if b.Priority != nil {
			priority = *b.Priority
		}

		boxes = append(boxes, model.Box{ID: id, W: b.W, H: b.H, D: b.D, Weight: weight, Priority: priority})
	}

	return boxes, nil
}

func buildParams(p *ParamsRequest) (ga.Params, error) {
	params := ga.Params{
		Population:   defaultPopulation,
		Generations:  defaultGenerations,
		MutationRate: defaultMutation,
		Seed:         defaultSeed,
	}
	if p == nil {
		return params, nil
	}

	if p.Population != nil {
		params.Population = *p.Population
	}
	if p.Generations != nil {
		params.Generations = *p.Generations
	}
	if p.MutationRate != nil {
		params.MutationRate = *p.MutationRate
	}
	if p.Seed != nil {
		params.Seed = *p.Seed
	}

	if params.Population < 0 || params.Generations < 0 {
		return ga.Params{}, fmt.Errorf("%w: population and generations must be non-negative", ErrInvalidParams)
	}
	if params.MutationRate < 0 || params.MutationRate > 1 {
		return ga.Params{}, fmt.Errorf("%w: mutation_rate must be in [0,1]", ErrInvalidParams)
	}

	return params, nil
}

func buildResponse(result model.Result, effective ga.EffectiveParams) Response {
	placed := make([]Placement, 0, len(result.Placed))
	for _, p := range result.Placed {
		placed = append(placed, Placement{
			ID: p.ID,
			X:  p.AABB.X, Y: p.AABB.Y, Z: p.AABB.Z,
			W: p.AABB.W, H: p.AABB.H, D: p.AABB.D,
		})
	}

	unplaced := result.Unplaced
	if unplaced == nil {
		unplaced = []string{}
	}

	return Response{
		Placed:   placed,
		Unplaced: unplaced,
		Metrics: Metrics{
			UsedVolume:           result.UsedVolume,
			TotalVolume:          result.TotalVolume,
			Utilization:          result.Utilization,
			TotalWeight:          result.TotalWeight,
			EffectivePopulation:  effective.Population,
			EffectiveGenerations: effective.Generations,
		},
	}
}
