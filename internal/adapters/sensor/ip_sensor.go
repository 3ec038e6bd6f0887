package sensor

import (
	"attractions-walker/internal/domain"
	"attractions-walker/internal/platform/obs"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"
)

type ipAPIResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// IPSensor approximates the caller's position from its IP address using an
// ip-api.com compatible endpoint (GET {BaseURL}/json/{ip}).
type IPSensor struct {
	session *http.Client
	baseURL string
	ip      string
}

// NewIPSensor builds a sensor for a single caller address.
// An empty baseURL yields a sensor that always reports unavailable.
func NewIPSensor(session *http.Client, baseURL, remoteAddr string) *IPSensor {
	if session == nil {
		session = &http.Client{Timeout: 5 * time.Second}
	}

	ip := remoteAddr
	if host, _, err := net.SplitHostPort(remoteAddr); err == nil {
		ip = host
	}

	return &IPSensor{
		session: session,
		baseURL: strings.TrimRight(baseURL, "/"),
		ip:      ip,
	}
}

func (s *IPSensor) Locate(ctx context.Context) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "sensor.IPLocate")(&err)

	if s.baseURL == "" {
		return domain.Coordinates{}, domain.ErrSensorUnavailable
	}

	parsed := net.ParseIP(s.ip)
	if parsed == nil || parsed.IsLoopback() || parsed.IsPrivate() {
		return domain.Coordinates{}, fmt.Errorf("ip sensor: %w: no public address for %q", domain.ErrSensorUnavailable, s.ip)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/json/"+parsed.String(), nil)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("ip sensor: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.session.Do(req)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("ip sensor: %w: %w", domain.ErrSensorFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Coordinates{}, fmt.Errorf("ip sensor: %w: unexpected status %d", domain.ErrSensorFailed, resp.StatusCode)
	}

	var decoded ipAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinates{}, fmt.Errorf("ip sensor: %w: decode: %w", domain.ErrSensorFailed, err)
	}

	if decoded.Status != "success" {
		return domain.Coordinates{}, fmt.Errorf("ip sensor: %w: %s", domain.ErrSensorFailed, decoded.Message)
	}

	c := domain.Coordinates{Lat: decoded.Lat, Lng: decoded.Lon}
	if !c.Valid() {
		return domain.Coordinates{}, fmt.Errorf("ip sensor: %w: coordinates out of range", domain.ErrSensorFailed)
	}

	return c, nil
}
