package config

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestDefaultsDecode(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg, err := decode(v)
	if err != nil {
		t.Fatalf("decode defaults failed: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Fatalf("unexpected port: %s", cfg.Server.Port)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Fatalf("unexpected driver: %s", cfg.Database.Driver)
	}
	if cfg.Order.TaxRate != 0.15 || cfg.Order.FreeShippingThreshold != 100 {
		t.Fatalf("unexpected order defaults: %+v", cfg.Order)
	}
	if cfg.Queue.Queues["critical"] != 5 {
		t.Fatalf("unexpected queue weights: %+v", cfg.Queue.Queues)
	}
}

func TestEnvOverridesDefault(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("ORDER_SHIPPING_FEE", "4.5")

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg, err := decode(v)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Fatalf("env override not applied: %s", cfg.Server.Port)
	}
	if cfg.Order.ShippingFee != 4.5 {
		t.Fatalf("env override not applied: %v", cfg.Order.ShippingFee)
	}
}
