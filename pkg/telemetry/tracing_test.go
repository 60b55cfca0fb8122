package telemetry

import (
	"testing"

	"go.opentelemetry.io/otel/attribute"
)

func TestConfig_Normalized(t *testing.T) {
	got := Config{SampleRatio: 3}.normalized()
	if got.Endpoint != "localhost:4318" || got.ServiceName != "foodorder-kiosk" || got.SampleRatio != 1 {
		t.Fatalf("unexpected defaults: %+v", got)
	}
	if got := (Config{SampleRatio: -1}).normalized().SampleRatio; got != 0 {
		t.Fatalf("negative ratio must clamp to 0, got %v", got)
	}
}

func TestResourceAttributes_Profile(t *testing.T) {
	attrs := resourceAttributes(Config{ServiceName: "svc", Profile: "kiosk-3"})
	found := false
	for _, a := range attrs {
		if a.Key == attribute.Key("foodorder.profile") && a.Value.AsString() == "kiosk-3" {
			found = true
		}
	}
	if !found {
		t.Fatalf("profile attribute missing: %v", attrs)
	}
	if n := len(resourceAttributes(Config{ServiceName: "svc"})); n != 2 {
		t.Fatalf("no profile -> 2 attributes, got %d", n)
	}
}
