package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Store struct {
		Name        string `koanf:"name"`
		Description string `koanf:"description"`
		Logo        string `koanf:"logo"`
	} `koanf:"store"`

	WooCommerce struct {
		BaseURL        string `koanf:"base_url"`
		ConsumerKey    string `koanf:"consumer_key"`
		ConsumerSecret string `koanf:"consumer_secret"`
		Version        string `koanf:"version"`
	} `koanf:"woocommerce"`

	Payment PaymentConfig `koanf:"payment"`

	Shipping ShippingConfig `koanf:"shipping"`

	Features struct {
		EnableReviews  bool `koanf:"enable_reviews"`
		EnableWishlist bool `koanf:"enable_wishlist"`
		EnableSearch   bool `koanf:"enable_search"`
	} `koanf:"features"`

	HTTP struct {
		Addr         string        `koanf:"addr"`
		ReadTimeout  time.Duration `koanf:"read_timeout"`
		WriteTimeout time.Duration `koanf:"write_timeout"`
		IdleTimeout  time.Duration `koanf:"idle_timeout"`
	} `koanf:"http"`

	Storage struct {
		Driver         string `koanf:"driver"` // sqlite | redis | mongo
		SQLitePath     string `koanf:"sqlite_path"`
		MigrationsPath string `koanf:"migrations_path"`
		RedisAddr      string `koanf:"redis_addr"`
		RedisPassword  string `koanf:"redis_password"`
		MongoURI       string `koanf:"mongo_uri"`
		MongoDB        string `koanf:"mongo_db"`
	} `koanf:"storage"`
}

// PaymentConfig selects the currency and which manual payment methods
// checkout will accept.
type PaymentConfig struct {
	Currency             string `koanf:"currency"`
	CurrencySymbol       string `koanf:"currency_symbol"`
	EnableCashOnDelivery bool   `koanf:"enable_cash_on_delivery"`
	EnableBankTransfer   bool   `koanf:"enable_bank_transfer"`
}

// ShippingConfig is the static shipping policy. It is read at startup
// and never mutated.
type ShippingConfig struct {
	EnableFreeShipping    bool    `koanf:"enable_free_shipping"`
	FreeShippingThreshold float64 `koanf:"free_shipping_threshold"`
	DefaultShippingCost   float64 `koanf:"default_shipping_cost"`
	EnableLocalPickup     bool    `koanf:"enable_local_pickup"`
}

// Load reads config/store.yaml and overlays environment variables
// (prefix WOOCART_, nested keys with __), e.g. WOOCART_STORAGE__DRIVER.
func Load(path string) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return Config{}, fmt.Errorf("load %s: %w", path, err)
	}

	if err := k.Load(env.Provider("WOOCART_", ".", func(s string) string {
		s = strings.TrimPrefix(s, "WOOCART_")
		s = strings.ReplaceAll(s, "__", ".")
		return strings.ToLower(s)
	}), nil); err != nil {
		return Config{}, fmt.Errorf("env overlay: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.WooCommerce.BaseURL == "" {
		return fmt.Errorf("woocommerce.base_url required")
	}
	if c.WooCommerce.ConsumerKey == "" || c.WooCommerce.ConsumerSecret == "" {
		return fmt.Errorf("woocommerce consumer key/secret required")
	}
	if c.HTTP.Addr == "" {
		return fmt.Errorf("http.addr required")
	}
	switch c.Storage.Driver {
	case "sqlite", "redis", "mongo":
	default:
		return fmt.Errorf("storage.driver must be sqlite, redis or mongo")
	}
	return nil
}
