package moysklad

// Config holds configuration for the MoySklad JSON API client.
type Config struct {
	// BaseURL is the API root every collection path is resolved against.
	BaseURL string `mapstructure:"base_url" default:"https://api.moysklad.ru/api/remap/1.2/"`
	// Token is the bearer token used for authentication.
	Token string `mapstructure:"token" default:""`
	// PageLimit is the page size requested on the first page of every collection.
	PageLimit int `mapstructure:"page_limit" default:"1000"`
	// TimeoutSeconds bounds a single page request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// CounterpartyTag filters the counterparties that carry loyalty cards.
	CounterpartyTag string `mapstructure:"counterparty_tag" default:"клиент"`
}
