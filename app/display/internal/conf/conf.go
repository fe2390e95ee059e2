package conf

type Bootstrap struct {
	Server *Server
	Radar  *Radar
}

type Server struct {
	Http *HTTP
}

type HTTP struct {
	Addr    string
	Timeout string
}

type Radar struct {
	Llm         *LLM         `json:"llm"`
	Sources     *Sources     `json:"sources"`
	Cache       *Cache       `json:"cache"`
	Log         *Log         `json:"log"`
	Concurrency *Concurrency `json:"concurrency"`
}

type LLM struct {
	BaseUrl         string  `json:"base_url"`
	ApiKey          string  `json:"api_key"`
	Model           string  `json:"model"`
	Temperature     *float32 `json:"temperature"`
	MaxOutputTokens int32    `json:"max_output_tokens"`
	Timeout         int32    `json:"timeout"`
}

type Sources struct {
	Forums              []string `json:"forums"`
	Syndication         []string `json:"syndication"`
	LaunchFeeds         []string `json:"launch_feeds"`
	ForumBaseUrl        string   `json:"forum_base_url"`
	ForumTimeRange      string   `json:"forum_time_range"`
	ForumLimit          int32    `json:"forum_limit"`
	FeedLimit           int32    `json:"feed_limit"`
	LaunchLimit         int32    `json:"launch_limit"`
	PacingMillis        *int32   `json:"pacing_millis"`
	Timeout             int32    `json:"timeout"`
	EnrichShortSnippets bool     `json:"enrich_short_snippets"`
}

type Cache struct {
	Path          string `json:"path"`
	ValidityHours int32  `json:"validity_hours"`
}

type Log struct {
	Level string `json:"level"`
	File  string `json:"file"`
}

type Concurrency struct {
	Qps int32 `json:"qps"`
	Rpm int32 `json:"rpm"`
}
