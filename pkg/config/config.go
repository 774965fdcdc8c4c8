package config

import (
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	Port             string `envconfig:"PORT" default:"3000"`
	AWSRegion        string `envconfig:"AWS_REGION" default:"sa-east-1"`
	DynamoDBEndpoint string `envconfig:"DYNAMODB_ENDPOINT" default:""` // DynamoDB Local
	LogLevel         string `envconfig:"LOG_LEVEL" default:"info"`

	ProductTableName string `envconfig:"PRODUCT_TABLE_NAME" default:"products"`
	OptionTableName  string `envconfig:"OPTION_TABLE_NAME" default:"options"`
	OfferTableName   string `envconfig:"OFFER_TABLE_NAME" default:"offers"`
	CouponTableName  string `envconfig:"COUPON_TABLE_NAME" default:"coupons"`
	OrderTableName   string `envconfig:"ORDER_TABLE_NAME" default:"orders"`

	KafkaBrokers       string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	OrderTopic         string `envconfig:"ORDER_TOPIC" default:"order-events"`
	CatalogTopic       string `envconfig:"CATALOG_TOPIC" default:"catalog-events"`
	CatalogConsumerGID string `envconfig:"CATALOG_CONSUMER_GROUP" default:"storefront-catalog"`

	// memory | redis
	StoreBackend  string        `envconfig:"STORE_BACKEND" default:"redis"`
	RedisAddr     string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int           `envconfig:"REDIS_DB" default:"0"`
	DurableTTL    time.Duration `envconfig:"DURABLE_TTL" default:"720h"`
	SessionTTL    time.Duration `envconfig:"SESSION_TTL" default:"12h"`

	ServiceFee  string `envconfig:"SERVICE_FEE" default:"1.00"`
	DeliveryFee string `envconfig:"DELIVERY_FEE" default:"0.00"`
	TimeZone    string `envconfig:"SHOP_TIMEZONE" default:"America/Sao_Paulo"`

	CouponLookupTimeout    time.Duration `envconfig:"COUPON_LOOKUP_TIMEOUT" default:"5s"`
	CheckoutTimeout        time.Duration `envconfig:"CHECKOUT_TIMEOUT" default:"10s"`
	CatalogRefreshInterval time.Duration `envconfig:"CATALOG_REFRESH_INTERVAL" default:"5m"`

	StaticDir      string   `envconfig:"STATIC_DIR" default:"./public"`
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"*"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if _, _, err := cfg.Fees(); err != nil {
		return nil, err
	}
	if _, err := cfg.Location(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Fees parses the fixed service and delivery fees.
func (c *Config) Fees() (service, delivery decimal.Decimal, err error) {
	service, err = decimal.NewFromString(c.ServiceFee)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("invalid SERVICE_FEE %q: %w", c.ServiceFee, err)
	}
	delivery, err = decimal.NewFromString(c.DeliveryFee)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("invalid DELIVERY_FEE %q: %w", c.DeliveryFee, err)
	}
	if service.IsNegative() || delivery.IsNegative() {
		return decimal.Zero, decimal.Zero, fmt.Errorf("fees must not be negative")
	}
	return service, delivery, nil
}

func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid SHOP_TIMEZONE %q: %w", c.TimeZone, err)
	}
	return loc, nil
}
