// truckpack — headless 3D truck-loading optimizer.
//
// Reads one optimization request as JSON from stdin (or a file given with
// -request), runs the genetic algorithm over the candidate packer, and
// writes the result as JSON to stdout. Optional GA-parameter overrides can
// be supplied via a config file (-config, default ~/.truckpack/config.json).
//
// Build:
//
//	go build -o truckpack ./cmd/truckpack
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/cargoloader/truckpack/internal/adapter"
	"github.com/cargoloader/truckpack/internal/config"
)

func main() {
	requestPath := flag.String("request", "", "path to a JSON request file (default: read stdin)")
	configPath := flag.String("config", config.DefaultConfigPath(), "path to an optional GA-parameter override file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config from %s: %v", *configPath, err)
	}

	data, err := readRequest(*requestPath)
	if err != nil {
		log.Fatalf("reading request: %v", err)
	}

	req, err := adapter.ParseRequest(data)
	if err != nil {
		log.Fatalf("parsing request: %v", err)
	}

	applyConfigDefaults(&req, cfg)

	start := time.Now()
	resp, correlationID, err := adapter.Optimize(req, nil)
	if err != nil {
		log.Fatalf("req_id=%s optimize failed: %v", correlationID, err)
	}
	log.Printf("req_id=%s op=optimize dur=%dms placed=%d unplaced=%d utilization=%.4f",
		correlationID, time.Since(start).Milliseconds(), len(resp.Placed), len(resp.Unplaced), resp.Metrics.Utilization)

	out, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		log.Fatalf("encoding response: %v", err)
	}
	fmt.Println(string(out))
}

func readRequest(path string) ([]byte, error) {
	if path == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// applyConfigDefaults fills in request params from the host config only
// where the caller left them unset, so a per-request params object always
// wins over the host's stored defaults.
func applyConfigDefaults(req *adapter.Request, cfg config.GAConfig) {
	if req.Params == nil {
		req.Params = &adapter.ParamsRequest{}
	}
	if req.Params.Population == nil {
		req.Params.Population = &cfg.Population
	}
	if req.Params.Generations == nil {
		req.Params.Generations = &cfg.Generations
	}
	if req.Params.MutationRate == nil {
		req.Params.MutationRate = &cfg.MutationRate
	}
	if req.Params.Seed == nil {
		req.Params.Seed = &cfg.Seed
	}
}
