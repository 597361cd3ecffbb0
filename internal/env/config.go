package env

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds everything the planner reads from the environment.
type Config struct {
	Port string

	OpenAIAPIKey      string
	OpenAIBaseURL     string
	OpenAIModel       string
	OpenAITemperature float64
	OpenAIMaxTokens   int

	WeatherAPIKey  string
	WeatherBaseURL string
	WeatherUnits   string
	WeatherLang    string

	GeocoderBaseURL   string
	GeocoderUserAgent string

	// ParallelLookups runs weather, geocoding and plan generation in a
	// single pipeline stage instead of one after another.
	ParallelLookups bool

	PageBucket    string
	PageObjectKey string

	KafkaBroker  string
	KafkaTopic   string
	KafkaGroupID string
}

func defaults(v *viper.Viper) {
	v.SetDefault("PORT", "5000")
	v.SetDefault("OPENAI_BASE_URL", "https://api.openai.com/v1")
	v.SetDefault("OPENAI_MODEL", "gpt-3.5-turbo")
	v.SetDefault("WEATHER_BASE_URL", "http://api.openweathermap.org/data/2.5/forecast")
	v.SetDefault("WEATHER_UNITS", "metric")
	v.SetDefault("WEATHER_LANG", "en")
	v.SetDefault("GEOCODER_BASE_URL", "https://nominatim.openstreetmap.org")
	v.SetDefault("GEOCODER_USER_AGENT", "travel_planner")
	v.SetDefault("PARALLEL_LOOKUPS", false)
	v.SetDefault("PAGE_OBJECT_KEY", "index.html")
	v.SetDefault("KAFKA_GROUP_ID", "plan-watchers")
}

// Load reads the configuration from the environment. Call LoadEnv first if
// a .env file should be honoured.
func Load() Config {
	v := viper.New()
	v.AutomaticEnv()
	defaults(v)

	cfg := Config{
		Port:              v.GetString("PORT"),
		OpenAIAPIKey:      v.GetString("OPENAI_API_KEY"),
		OpenAIBaseURL:     v.GetString("OPENAI_BASE_URL"),
		OpenAIModel:       v.GetString("OPENAI_MODEL"),
		OpenAITemperature: v.GetFloat64("OPENAI_TEMPERATURE"),
		OpenAIMaxTokens:   v.GetInt("OPENAI_MAX_TOKENS"),
		WeatherAPIKey:     v.GetString("WEATHER_API_KEY"),
		WeatherBaseURL:    v.GetString("WEATHER_BASE_URL"),
		WeatherUnits:      v.GetString("WEATHER_UNITS"),
		WeatherLang:       v.GetString("WEATHER_LANG"),
		GeocoderBaseURL:   v.GetString("GEOCODER_BASE_URL"),
		GeocoderUserAgent: v.GetString("GEOCODER_USER_AGENT"),
		ParallelLookups:   v.GetBool("PARALLEL_LOOKUPS"),
		PageBucket:        v.GetString("PAGE_BUCKET"),
		PageObjectKey:     v.GetString("PAGE_OBJECT_KEY"),
		KafkaBroker:       v.GetString("KAFKA_BROKER"),
		KafkaTopic:        v.GetString("KAFKA_TOPIC"),
		KafkaGroupID:      v.GetString("KAFKA_GROUP_ID"),
	}
	return cfg
}

// WarnMissingKeys logs absent provider keys. They are not fatal: the
// providers reject the calls themselves.
func (c Config) WarnMissingKeys() {
	for key, val := range map[string]string{
		"OPENAI_API_KEY":  c.OpenAIAPIKey,
		"WEATHER_API_KEY": c.WeatherAPIKey,
	} {
		if val == "" {
			log.Printf("Environment variable %s not set, provider calls will be rejected", key)
		}
	}
}

// EventsEnabled reports whether plan events should be published.
func (c Config) EventsEnabled() bool {
	return c.KafkaBroker != "" && c.KafkaTopic != ""
}
