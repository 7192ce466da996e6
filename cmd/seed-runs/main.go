// Command seed-runs populates a running server with randomized sample
// traffic for local development: a batch of run submissions on the
// current regatta seed, a handful of signal fires (half of them
// redeemed), a few tide contributions, and a final regatta fetch to
// show the resulting standings.
package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

const (
	defaultNumRuns  = 200
	defaultNumFires = 6
	defaultTimeout  = 10 * time.Second
	runTimeout      = 5 * time.Minute
)

var shipClasses = []string{"sloop", "brigantine", "galleon"}

var aidTypes = []string{"supplies", "intel", "rep"}

var doctrines = []string{"boarding", "broadside", "evasion"}

var crewNames = []string{
	"Mad Morgan", "Calico Jack", "Anne the Red", "Old Salt Pete",
	"Barnacle Bess", "One-Eye Willem", "Stormcrow", "The Navigator",
}

var tideMetrics = []string{"ships_sunk", "waves_cleared", "gold_plundered"}

type client struct {
	base string
	http *http.Client
}

func (c *client) post(ctx context.Context, path string, body, out any) (int, error) {
	buf, err := json.Marshal(body)
	if err != nil {
		return 0, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(buf))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *client) get(ctx context.Context, path string, out any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return 0, err
	}
	return c.do(req, out)
}

func (c *client) do(req *http.Request, out any) (int, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if out != nil && resp.StatusCode == http.StatusOK {
		return resp.StatusCode, json.NewDecoder(resp.Body).Decode(out)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, nil
}

type regattaInfo struct {
	WeekKey string `json:"week_key"`
	Seed    int64  `json:"seed"`
	EndsAt  string `json:"ends_at"`
	TopRuns []struct {
		PlayerName string `json:"player_name"`
		Score      int64  `json:"score"`
		ShipClass  string `json:"ship_class"`
		Waves      int64  `json:"waves"`
	} `json:"top_runs"`
}

func randomRun(rng *rand.Rand, seed int64) map[string]any {
	waves := int64(1 + rng.Intn(30))
	run := map[string]any{
		"seed":            seed,
		"ship_class":      shipClasses[rng.Intn(len(shipClasses))],
		"doctrine_id":     doctrines[rng.Intn(len(doctrines))],
		"score":           int64(rng.Intn(25000)),
		"waves":           waves,
		"victory":         rng.Intn(4) == 0,
		"ships_destroyed": waves * int64(2+rng.Intn(5)),
		"damage_dealt":    int64(rng.Intn(500000)),
		"max_combo":       int64(rng.Intn(40)),
		"time_played":     60 + rng.Float64()*1800,
		"max_heat":        rng.Float64() * 100,
		"player_name":     crewNames[rng.Intn(len(crewNames))],
	}
	// Attach a small ghost tape to roughly a third of the runs.
	if rng.Intn(3) == 0 {
		tape := make([]byte, 64+rng.Intn(256))
		rng.Read(tape)
		run["ghost_tape"] = base64.StdEncoding.EncodeToString(tape)
	}
	return run
}

func main() {
	var (
		baseURL  = flag.String("url", "http://localhost:9080", "Base URL of the service")
		numRuns  = flag.Int("runs", defaultNumRuns, "Number of runs to submit")
		numFires = flag.Int("fires", defaultNumFires, "Number of signal fires to create")
		workers  = flag.Int("workers", runtime.NumCPU(), "Number of concurrent workers")
		timeout  = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		rngSeed  = flag.Int64("seed", time.Now().UnixNano(), "Base RNG seed")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	c := &client{base: *baseURL, http: &http.Client{Timeout: *timeout}}

	// Fetch the regatta first so runs land on the current weekly seed.
	var regatta regattaInfo
	if _, err := c.get(ctx, "/api/regatta", &regatta); err != nil {
		os.Stderr.WriteString("regatta fetch failed (is the server running?): " + err.Error() + "\n")
		os.Exit(1)
	}
	fmt.Printf("seeding regatta %s (seed %d)\n", regatta.WeekKey, regatta.Seed)

	// Submit runs across a worker pool.
	var submitted, failed atomic.Int64
	jobs := make(chan struct{})
	var wg sync.WaitGroup
	for w := 0; w < *workers; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(*rngSeed + int64(id)))
			for range jobs {
				status, err := c.post(ctx, "/api/runs", randomRun(rng, regatta.Seed), nil)
				if err != nil || status != http.StatusOK {
					failed.Add(1)
					continue
				}
				submitted.Add(1)
			}
		}(w)
	}
	for i := 0; i < *numRuns; i++ {
		select {
		case jobs <- struct{}{}:
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			os.Stderr.WriteString("timed out submitting runs\n")
			os.Exit(1)
		}
	}
	close(jobs)
	wg.Wait()
	fmt.Printf("runs: %d submitted, %d failed\n", submitted.Load(), failed.Load())

	// Create signal fires and redeem every other one.
	rng := rand.New(rand.NewSource(*rngSeed))
	var codes []string
	for i := 0; i < *numFires; i++ {
		var out struct {
			Code string `json:"code"`
		}
		body := map[string]any{
			"creator_run": fmt.Sprintf("seed-fire-%d", i),
			"aid_type":    aidTypes[rng.Intn(len(aidTypes))],
			"aid_amount":  1 + rng.Intn(100),
		}
		if status, err := c.post(ctx, "/api/signal-fires", body, &out); err != nil || status != http.StatusOK {
			fmt.Printf("fire create failed (status %d): %v\n", status, err)
			continue
		}
		codes = append(codes, out.Code)
	}
	redeemed := 0
	for i, code := range codes {
		if i%2 != 0 {
			continue
		}
		if status, _ := c.post(ctx, "/api/signal-fires/redeem", map[string]any{"code": code}, nil); status == http.StatusOK {
			redeemed++
		}
	}
	fmt.Printf("fires: %d created, %d redeemed\n", len(codes), redeemed)

	// A few tide contributions.
	for i := 0; i < *workers; i++ {
		_, _ = c.post(ctx, "/api/tide/contribute", map[string]any{
			"metric": tideMetrics[rng.Intn(len(tideMetrics))],
			"value":  rng.Float64() * 100,
		}, nil)
	}

	// Show the resulting standings.
	if _, err := c.get(ctx, "/api/regatta", &regatta); err != nil {
		fmt.Printf("regatta fetch failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("regatta %s standings (ends %s):\n", regatta.WeekKey, regatta.EndsAt)
	for i, e := range regatta.TopRuns {
		fmt.Printf("  %2d. %-16s %-10s wave %-3d %8d\n", i+1, e.PlayerName, e.ShipClass, e.Waves, e.Score)
	}
}
