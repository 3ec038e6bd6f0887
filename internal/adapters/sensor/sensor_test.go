package sensor

import (
	"attractions-walker/internal/domain"
	"attractions-walker/internal/ports"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientSensor(t *testing.T) {
	bath := domain.Coordinates{Lat: 51.38, Lng: -2.36}

	tests := []struct {
		name    string
		sensor  ClientSensor
		want    domain.Coordinates
		wantErr error
	}{
		{name: "coordinates", sensor: ClientSensor{Coordinates: &bath}, want: bath},
		{name: "denied", sensor: ClientSensor{Failure: "denied"}, wantErr: domain.ErrSensorDenied},
		{name: "error", sensor: ClientSensor{Failure: "ERROR"}, wantErr: domain.ErrSensorFailed},
		{name: "unavailable", sensor: ClientSensor{Failure: "unavailable"}, wantErr: domain.ErrSensorUnavailable},
		{name: "nothing reported", sensor: ClientSensor{}, wantErr: domain.ErrSensorUnavailable},
		{name: "out of range", sensor: ClientSensor{Coordinates: &domain.Coordinates{Lat: 123}}, wantErr: domain.ErrSensorFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.sensor.Locate(context.Background())
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("coords = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestClientSensorReported(t *testing.T) {
	bath := domain.Coordinates{Lat: 51.38, Lng: -2.36}

	if (ClientSensor{}).Reported() || (ClientSensor{Failure: "  "}).Reported() {
		t.Fatal("empty client report counted as reported")
	}
	if !(ClientSensor{Coordinates: &bath}).Reported() || !(ClientSensor{Failure: "unavailable"}).Reported() {
		t.Fatal("client report not recognized")
	}
}

func TestIPSensor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/json/8.8.8.8":
			fmt.Fprint(w, `{"status":"success","lat":37.4,"lon":-122.1}`)
		default:
			fmt.Fprint(w, `{"status":"fail","message":"reserved range"}`)
		}
	}))
	defer srv.Close()

	ctx := context.Background()

	got, err := NewIPSensor(srv.Client(), srv.URL, "8.8.8.8:53211").Locate(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != (domain.Coordinates{Lat: 37.4, Lng: -122.1}) {
		t.Fatalf("coords = %+v", got)
	}

	if _, err := NewIPSensor(srv.Client(), srv.URL, "1.1.1.1").Locate(ctx); !errors.Is(err, domain.ErrSensorFailed) {
		t.Fatalf("err = %v, want ErrSensorFailed", err)
	}

	if _, err := NewIPSensor(srv.Client(), srv.URL, "127.0.0.1:80").Locate(ctx); !errors.Is(err, domain.ErrSensorUnavailable) {
		t.Fatalf("loopback err = %v, want ErrSensorUnavailable", err)
	}

	if _, err := NewIPSensor(nil, "", "8.8.8.8").Locate(ctx); !errors.Is(err, domain.ErrSensorUnavailable) {
		t.Fatalf("unconfigured err = %v, want ErrSensorUnavailable", err)
	}
}

func TestChain(t *testing.T) {
	bath := domain.Coordinates{Lat: 51.38, Lng: -2.36}
	ctx := context.Background()

	got, err := Chain{ClientSensor{}, ClientSensor{Coordinates: &bath}}.Locate(ctx)
	if err != nil || got != bath {
		t.Fatalf("got %+v, %v; want %+v", got, err, bath)
	}

	_, err = Chain{ClientSensor{Failure: "denied"}, ClientSensor{Coordinates: &bath}}.Locate(ctx)
	if !errors.Is(err, domain.ErrSensorDenied) {
		t.Fatalf("err = %v, want ErrSensorDenied", err)
	}

	_, err = Chain(nil).Locate(ctx)
	if !errors.Is(err, domain.ErrSensorUnavailable) {
		t.Fatalf("empty chain err = %v, want ErrSensorUnavailable", err)
	}
}

var _ ports.LocationSensor = Chain{}
