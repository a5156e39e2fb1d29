package main

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/goccy/go-json"

	"github.com/hackgods/clinic-availability/internal/schedule"
	"github.com/hackgods/clinic-availability/internal/validation"
)

type SimConfig struct {
	APIBaseURL  string
	Duration    time.Duration
	Workers     int
	Date        string
	ReadRatio   float64
	UpdateRatio float64
	BookRatio   float64
}

type OperationMetrics struct {
	Total     int64
	Success   int64
	Rejected  int64
	Error     int64
	Latencies []time.Duration
	mu        sync.Mutex
}

func (om *OperationMetrics) Record(latency time.Duration, success bool, rejected bool) {
	atomic.AddInt64(&om.Total, 1)
	if success {
		atomic.AddInt64(&om.Success, 1)
	} else if rejected {
		atomic.AddInt64(&om.Rejected, 1)
	} else {
		atomic.AddInt64(&om.Error, 1)
	}

	om.mu.Lock()
	om.Latencies = append(om.Latencies, latency)
	om.mu.Unlock()
}

func (om *OperationMetrics) Stats() (avg, min, max, p50, p95 time.Duration) {
	om.mu.Lock()
	defer om.mu.Unlock()

	if len(om.Latencies) == 0 {
		return 0, 0, 0, 0, 0
	}

	latencies := make([]time.Duration, len(om.Latencies))
	copy(latencies, om.Latencies)
	sort.Slice(latencies, func(i, j int) bool {
		return latencies[i] < latencies[j]
	})

	var sum time.Duration
	for _, l := range latencies {
		sum += l
	}

	avg = sum / time.Duration(len(latencies))
	min = latencies[0]
	max = latencies[len(latencies)-1]
	p50 = latencies[percentileIndex(len(latencies), 50)]
	p95 = latencies[percentileIndex(len(latencies), 95)]
	return avg, min, max, p50, p95
}

func percentileIndex(n, p int) int {
	idx := n * p / 100
	if idx >= n {
		idx = n - 1
	}
	return idx
}

type Metrics struct {
	ReadSchedule OperationMetrics
	UpdateSlot   OperationMetrics
	Book         OperationMetrics
}

type Simulator struct {
	config  SimConfig
	roster  schedule.Roster
	client  *http.Client
	metrics Metrics
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("simulator starting")

	cfg := loadConfig()
	if err := validateConfig(cfg); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	log.Printf("config: date=%s duration=%s workers=%d read=%.2f update=%.2f book=%.2f",
		cfg.Date, cfg.Duration, cfg.Workers, cfg.ReadRatio, cfg.UpdateRatio, cfg.BookRatio)

	roster := schedule.DefaultRoster()
	if path := os.Getenv("ROSTER_FILE"); path != "" {
		r, err := schedule.LoadRoster(path)
		if err != nil {
			log.Fatalf("load roster: %v", err)
		}
		roster = r
	}

	sim := &Simulator{
		config: cfg,
		roster: roster,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	sim.Run()
	sim.PrintReport()

	if err := sim.Verify(context.Background()); err != nil {
		log.Fatalf("verification failed: %v", err)
	}
	log.Printf("verified: %s has exactly %d rows", cfg.Date, roster.GridSize())
}

func loadConfig() SimConfig {
	cfg := SimConfig{
		APIBaseURL:  getEnv("SIM_API_BASE_URL", "http://localhost:5000"),
		Duration:    getDuration("SIM_DURATION", 30*time.Second),
		Workers:     getInt("SIM_WORKERS", 10),
		Date:        getEnv("SIM_DATE", freshDate()),
		ReadRatio:   getFloat("SIM_READ_RATIO", 0.6),
		UpdateRatio: getFloat("SIM_UPDATE_RATIO", 0.3),
		BookRatio:   getFloat("SIM_BOOK_RATIO", 0.1),
	}

	// Normalize ratios
	total := cfg.ReadRatio + cfg.UpdateRatio + cfg.BookRatio
	if total > 0 {
		cfg.ReadRatio /= total
		cfg.UpdateRatio /= total
		cfg.BookRatio /= total
	}

	return cfg
}

// freshDate picks a far-future day that is unlikely to be seeded yet, so
// the first wave of reads races on seeding it.
func freshDate() string {
	offset := 365 + rand.Intn(3650)
	return time.Now().AddDate(0, 0, offset).Format(validation.DateLayout)
}

func validateConfig(cfg SimConfig) error {
	if cfg.Workers <= 0 {
		return fmt.Errorf("SIM_WORKERS must be > 0")
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("SIM_DURATION must be > 0")
	}
	if err := validation.Date(cfg.Date); err != nil {
		return fmt.Errorf("SIM_DATE: %w", err)
	}
	return nil
}

func (s *Simulator) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.Duration)
	defer cancel()

	log.Printf("starting simulation for %s with %d workers", s.config.Duration, s.config.Workers)

	var wg sync.WaitGroup
	for i := 0; i < s.config.Workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			s.worker(ctx, workerID)
		}(i)
	}

	wg.Wait()
	log.Println("simulation complete")
}

func (s *Simulator) worker(ctx context.Context, workerID int) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano() + int64(workerID)))

	// Every worker starts with a read so the seed race happens up front.
	s.doReadSchedule(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		default:
			r := rng.Float64()
			switch {
			case r < s.config.ReadRatio:
				s.doReadSchedule(ctx)
			case r < s.config.ReadRatio+s.config.UpdateRatio:
				s.doUpdateSlot(ctx, rng)
			default:
				s.doBook(ctx, rng)
			}
		}
	}
}

func (s *Simulator) pick(rng *rand.Rand) (schedule.Doctor, string) {
	doctors := s.roster.Doctors()
	slots := s.roster.Slots()
	return doctors[rng.Intn(len(doctors))], slots[rng.Intn(len(slots))]
}

func (s *Simulator) send(ctx context.Context, method, path string, payload any) (int, []byte, error) {
	var raw []byte
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, err
		}
		raw = b
	}
	body := bytes.NewReader(raw)

	req, err := http.NewRequestWithContext(ctx, method, s.config.APIBaseURL+path, body)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, buf.Bytes(), nil
}

func (s *Simulator) doReadSchedule(ctx context.Context) {
	start := time.Now()
	status, _, err := s.send(ctx, http.MethodGet, "/api/schedule?date="+s.config.Date, nil)
	latency := time.Since(start)

	s.metrics.ReadSchedule.Record(latency, err == nil && status == http.StatusOK, status == http.StatusServiceUnavailable)
}

func (s *Simulator) doUpdateSlot(ctx context.Context, rng *rand.Rand) {
	doctor, slot := s.pick(rng)
	status := schedule.StatusBooked
	if rng.Intn(2) == 0 {
		status = schedule.StatusAvailable
	}

	start := time.Now()
	code, _, err := s.send(ctx, http.MethodPut, "/api/schedule", schedule.SlotUpdate{
		Name:     doctor.Name,
		Date:     s.config.Date,
		TimeSlot: slot,
		Status:   status,
	})
	latency := time.Since(start)

	s.metrics.UpdateSlot.Record(latency, err == nil && code == http.StatusOK, code == http.StatusNotFound)
}

func (s *Simulator) doBook(ctx context.Context, rng *rand.Rand) {
	doctor, slot := s.pick(rng)

	start := time.Now()
	code, _, err := s.send(ctx, http.MethodPost, "/api/patients", map[string]string{
		"patient_name": gofakeit.Name(),
		"email":        gofakeit.Email(),
		"phone":        gofakeit.Phone(),
		"date":         s.config.Date,
		"time":         slot,
		"doctor":       doctor.Name,
		"specialist":   doctor.Specialty,
	})
	latency := time.Since(start)

	s.metrics.Book.Record(latency, err == nil && code == http.StatusOK, code == http.StatusBadRequest)
}

// Verify re-reads the simulated date and checks that seeding produced one
// row per doctor and slot.
func (s *Simulator) Verify(ctx context.Context) error {
	code, body, err := s.send(ctx, http.MethodGet, "/api/schedule?date="+s.config.Date, nil)
	if err != nil {
		return err
	}
	if code != http.StatusOK {
		return fmt.Errorf("GET /api/schedule returned %d", code)
	}

	var views []schedule.DoctorSchedule
	if err := json.Unmarshal(body, &views); err != nil {
		return fmt.Errorf("decode schedule: %w", err)
	}

	doctors := s.roster.Doctors()
	if len(views) != len(doctors) {
		return fmt.Errorf("expected %d doctors, got %d", len(doctors), len(views))
	}
	for _, v := range views {
		if len(v.Slots) != len(s.roster.Slots()) {
			return fmt.Errorf("%s: expected %d slots, got %d", v.Name, len(s.roster.Slots()), len(v.Slots))
		}
	}
	return nil
}

func (s *Simulator) PrintReport() {
	fmt.Println("\n" + strings.Repeat("=", 80))
	fmt.Println("SIMULATION REPORT")
	fmt.Println(strings.Repeat("=", 80))
	fmt.Printf("Date: %s\n", s.config.Date)
	fmt.Printf("Duration: %s\n", s.config.Duration)
	fmt.Printf("Workers: %d\n", s.config.Workers)
	fmt.Println()

	printOperationReport("Read schedule", &s.metrics.ReadSchedule)
	printOperationReport("Update slot", &s.metrics.UpdateSlot)
	printOperationReport("Book", &s.metrics.Book)
}

func printOperationReport(name string, om *OperationMetrics) {
	total := atomic.LoadInt64(&om.Total)
	if total == 0 {
		return
	}

	success := atomic.LoadInt64(&om.Success)
	rejected := atomic.LoadInt64(&om.Rejected)
	failed := atomic.LoadInt64(&om.Error)

	avg, min, max, p50, p95 := om.Stats()

	fmt.Printf("%s:\n", name)
	fmt.Printf("  Total: %d\n", total)
	fmt.Printf("  Success: %d (%.1f%%)\n", success, float64(success)/float64(total)*100)
	if rejected > 0 {
		fmt.Printf("  Rejected: %d (%.1f%%)\n", rejected, float64(rejected)/float64(total)*100)
	}
	if failed > 0 {
		fmt.Printf("  Errors: %d (%.1f%%)\n", failed, float64(failed)/float64(total)*100)
	}
	fmt.Printf("  Latency: avg=%s min=%s max=%s p50=%s p95=%s\n",
		avg.Round(time.Millisecond), min.Round(time.Millisecond), max.Round(time.Millisecond),
		p50.Round(time.Millisecond), p95.Round(time.Millisecond))
	fmt.Println()
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}
