package config

import (
	"reflect"
	"testing"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"渋谷店,shibuya", []string{"渋谷店", "shibuya"}},
		{" a , b ", []string{"a", "b"}},
		{"a,,b,", []string{"a", "b"}},
		{"", nil},
	}
	for _, tt := range tests {
		if got := SplitList(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitList(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	LoadConfig()

	if AppConfig.AppPort != "8080" {
		t.Errorf("AppPort = %q", AppConfig.AppPort)
	}
	if AppConfig.StoreBackend != "memory" {
		t.Errorf("StoreBackend = %q", AppConfig.StoreBackend)
	}
	if AppConfig.BrandMarker != "HALLEL" {
		t.Errorf("BrandMarker = %q", AppConfig.BrandMarker)
	}
	if AppConfig.MinConfidence != 0.7 {
		t.Errorf("MinConfidence = %v", AppConfig.MinConfidence)
	}
	if AppConfig.DefaultAcceptLocation || AppConfig.AllowOvernight {
		t.Error("permissive policy knobs must default off")
	}
}
