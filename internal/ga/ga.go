// Package ga implements the genetic algorithm driver of spec.md §4.F: a
// seeded population of box-permutation chromosomes evolved by tournament
// selection, ordered crossover, and swap mutation, with the constructive
// packer (internal/packer) as the fitness oracle.
package ga

import (
	"sort"

	"github.com/cargoloader/truckpack/internal/model"
	"github.com/cargoloader/truckpack/internal/packer"
	"github.com/cargoloader/truckpack/internal/rng"
)

// Params are the caller-supplied GA knobs from spec.md §6. OptimizeGA
// clamps Population and Generations (see capBudget) before use;
// MutationRate and Seed are used as given.
type Params struct {
	Population   int
	Generations  int
	MutationRate float64
	Seed         uint32
}

// Observer, when non-nil, is invoked once per generation after selection,
// elitism, and offspring generation are finalized for that generation. It
// has no effect on the computed result or on determinism — a pure
// observation point a caller (e.g. a visualization client) can use to
// animate optimization progress without reimplementing the capping table
// below.
type Observer func(generation int, best model.Result)

// individual is one chromosome: a permutation of box indices plus its
// cached fitness.
type individual struct {
	order []int
	score float64
	result model.Result
}

// EffectiveParams reports the population/generation pair actually used
// after the instance-size capping table in spec.md §4.F is applied, so a
// caller can estimate run cost without re-deriving the table.
type EffectiveParams struct {
	Population  int
	Generations int
}

// OptimizeGA runs the GA to completion and returns the best individual's
// Result, plus the capped (population, generations) actually used.
func OptimizeGA(truck model.Truck, boxes []model.Box, params Params, observe Observer) (model.Result, EffectiveParams) {
	if len(boxes) == 0 {
		return model.Result{}, EffectiveParams{}
	}

	population, generations := capBudget(len(boxes), params.Population, params.Generations)
	r := rng.New(params.Seed)

	base := make([]int, len(boxes))
	for i := range base {
		base[i] = i
	}

	makeIndividual := func(shuffle bool) individual {
		order := make([]int, len(base))
		copy(order, base)
		if shuffle {
			r.ShufflePerm(order)
		} else {
			sortHeuristic(order, boxes)
		}
		result := packer.PackByOrder(truck, boxes, order)
		return individual{order: order, score: score(result), result: result}
	}

	pop := make([]individual, 0, population)
	pop = append(pop, makeIndividual(false))
	for len(pop) < population {
		pop = append(pop, makeIndividual(true))
	}

	for gen := 0; gen < generations; gen++ {
		sort.Slice(pop, func(i, j int) bool { return pop[i].score > pop[j].score })

		eliteCount := population / 10
		if eliteCount < 1 {
			eliteCount = 1
		}

		next := make([]individual, 0, population)
		for i := 0; i < eliteCount && i < len(pop); i++ {
			next = append(next, copyIndividual(pop[i]))
		}

		for len(next) < population {
			p1 := tournamentSelect(pop, r)
			p2 := tournamentSelect(pop, r)
			childOrder := orderCrossover(p1.order, p2.order, r)
			mutate(childOrder, params.MutationRate, r)

			result := packer.PackByOrder(truck, boxes, childOrder)
			next = append(next, individual{order: childOrder, score: score(result), result: result})
		}

		pop = next

		if observe != nil {
			best := bestOf(pop)
			snapshot := best.result
			snapshot.Score = best.score
			observe(gen, snapshot)
		}
	}

	sort.Slice(pop, func(i, j int) bool { return pop[i].score > pop[j].score })
	best := pop[0].result
	best.Score = pop[0].score
	return best, EffectiveParams{Population: population, Generations: generations}
}

// capBudget applies the instance-size-dependent budget cap of spec.md
// §4.F: population and generations are clamped down for larger instances
// to keep the GA responsive, then floored to the stated minimums.
func capBudget(n, population, generations int) (int, int) {
	switch {
	case n > 250:
		population = min(population, 10)
		generations = min(generations, 6)
	case n > 150:
		population = min(population, 18)
		generations = min(generations, 12)
	default:
		population = min(population, 30)
		generations = min(generations, 25)
	}
	return max(population, 4), max(generations, 1)
}

// score is the fitness function of spec.md §4.F: utilization weighted
// heavily, with a per-unplaced-box penalty.
func score(r model.Result) float64 {
	return 100*r.Utilization - 0.5*float64(len(r.Unplaced))
}

// sortHeuristic seeds individual 0 with the heuristic order of spec.md
// §4.F: volume descending, ties broken by priority descending.
func sortHeuristic(order []int, boxes []model.Box) {
	sort.SliceStable(order, func(i, j int) bool {
		a, b := boxes[order[i]], boxes[order[j]]
		va, vb := a.Volume(), b.Volume()
		if va != vb {
			return va > vb
		}
		return a.Priority > b.Priority
	})
}

func tournamentSelect(pop []individual, r *rng.MT19937) individual {
	best := pop[r.NextIntn(len(pop))]
	for i := 1; i < 3; i++ {
		cand := pop[r.NextIntn(len(pop))]
		if cand.score > best.score {
			best = cand
		}
	}
	return best
}

// orderCrossover implements the OX crossover of spec.md §4.F: a
// contiguous slice [i,j] is copied verbatim from parent a, and the
// remaining empty positions are filled in parent b's order, skipping genes
// already present, left to right starting at position 0.
func orderCrossover(a, b []int, r *rng.MT19937) []int {
	n := len(a)
	child := make([]int, n)
	for i := range child {
		child[i] = -1
	}

	i := r.NextIntn(n)
	j := r.NextIntn(n)
	if i > j {
		i, j = j, i
	}

	inSegment := make(map[int]bool, j-i+1)
	for k := i; k <= j; k++ {
		child[k] = a[k]
		inSegment[a[k]] = true
	}

	write := 0
	for _, gene := range b {
		if inSegment[gene] {
			continue
		}
		for write < n && child[write] != -1 {
			write++
		}
		if write < n {
			child[write] = gene
		}
	}

	return child
}

// mutate applies the swap mutation of spec.md §4.F with probability
// mutationRate.
func mutate(order []int, mutationRate float64, r *rng.MT19937) {
	if len(order) < 2 {
		return
	}
	if r.NextFloat64In01() > mutationRate {
		return
	}
	a := r.NextIntn(len(order))
	b := r.NextIntn(len(order))
	order[a], order[b] = order[b], order[a]
}

func copyIndividual(ind individual) individual {
	order := make([]int, len(ind.order))
	copy(order, ind.order)
	return individual{order: order, score: ind.score, result: ind.result}
}

func bestOf(pop []individual) individual {
	best := pop[0]
	for _, ind := range pop[1:] {
		if ind.score > best.score {
			best = ind
		}
	}
	return best
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
