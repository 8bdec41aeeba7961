package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"livelocal/pkg/config"
)

// devflow walks one booking through its whole lifecycle against a locally running API
// (APP_ENV != prod, so X-User-ID is accepted in place of a Supabase token).
func main() {
	var (
		baseURL = flag.String("base-url", "", "API base url (defaults to http://localhost<HTTP_ADDR>)")
		cancel  = flag.Bool("cancel", false, "cancel the confirmed booking instead of completing it")
	)
	flag.Parse()

	cfg := config.Load()
	if *baseURL == "" {
		*baseURL = defaultBaseURL(cfg.HTTPAddr)
	}
	c := client{base: strings.TrimRight(*baseURL, "/"), http: &http.Client{Timeout: 10 * time.Second}}

	venueUser := uuid.NewString()
	musicianUser := uuid.NewString()

	c.must(venueUser, http.MethodPut, "/v1/me/venue", map[string]any{"name": "The Blue Door", "city": "Austin", "capacity": 120}, nil)
	c.must(musicianUser, http.MethodPut, "/v1/me/musician", map[string]any{"stageName": "Night Owls", "genres": []string{"jazz"}, "hourlyRate": "150.00"}, nil)

	var ev struct {
		ID string `json:"id"`
	}
	c.must(venueUser, http.MethodPost, "/v1/events", map[string]any{
		"title":    "Friday Jazz Night",
		"startsAt": time.Now().Add(14 * 24 * time.Hour).UTC().Format(time.RFC3339),
		"budget":   "600",
	}, &ev)

	var view struct {
		Booking struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"booking"`
	}
	c.must(musicianUser, http.MethodPost, "/v1/events/"+ev.ID+"/applications", map[string]any{
		"pitch":        "Four-piece jazz band, two sets.",
		"proposedRate": "500.00",
	}, &view)
	bookingID := view.Booking.ID
	fmt.Printf("booking %s status=%s\n", bookingID, view.Booking.Status)

	last := step{venueUser, map[string]any{"action": "complete"}}
	if *cancel {
		last = step{venueUser, map[string]any{"action": "cancel", "reason": "weather"}}
	}
	steps := []step{
		{venueUser, map[string]any{"action": "select"}},
		{musicianUser, map[string]any{"action": "confirm"}},
		last,
	}
	for _, s := range steps {
		c.must(s.user, http.MethodPost, "/v1/bookings/"+bookingID+"/transitions", s.body, &view)
		fmt.Printf("  %-8v -> %s\n", s.body["action"], view.Booking.Status)
	}

	var activity struct {
		Items []struct {
			Timestamp time.Time `json:"timestamp"`
			Action    string    `json:"action"`
			Actor     string    `json:"actor"`
			Details   string    `json:"details"`
		} `json:"items"`
	}
	c.must(venueUser, http.MethodGet, "/v1/bookings/"+bookingID+"/activity", nil, &activity)

	fmt.Printf("\nActivity (newest first):\n")
	for _, a := range activity.Items {
		fmt.Printf("  %s  %-24s %-10s %s\n", a.Timestamp.Format(time.RFC3339), a.Action, a.Actor, a.Details)
	}
	fmt.Printf("\nvenue_user=%s musician_user=%s event_id=%s\n", venueUser, musicianUser, ev.ID)
}

type step struct {
	user string
	body map[string]any
}

type client struct {
	base string
	http *http.Client
}

func (c client) must(userID, method, path string, body any, out any) {
	var rdr io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rdr = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, c.base+path, rdr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "new request: %v\n", err)
		os.Exit(1)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", userID)

	resp, err := c.http.Do(req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %s: %v\n", method, path, err)
		fmt.Fprintf(os.Stderr, "tip: is the API running, and is HTTP_ADDR set correctly? base_url=%s\n", c.base)
		os.Exit(1)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		fmt.Fprintf(os.Stderr, "%s %s status=%d body=%s\n", method, path, resp.StatusCode, string(b))
		os.Exit(1)
	}
	if out != nil {
		if err := json.Unmarshal(b, out); err != nil {
			fmt.Fprintf(os.Stderr, "decode %s: %v\n", path, err)
			os.Exit(1)
		}
	}
}

func defaultBaseURL(httpAddr string) string {
	// httpAddr is typically ":8080" or "0.0.0.0:8080".
	addr := strings.TrimSpace(httpAddr)
	switch {
	case addr == "":
		return "http://localhost:8080"
	case strings.HasPrefix(addr, ":"):
		return "http://localhost" + addr
	case strings.HasPrefix(addr, "0.0.0.0:"):
		return "http://localhost" + strings.TrimPrefix(addr, "0.0.0.0")
	default:
		return "http://" + addr
	}
}
