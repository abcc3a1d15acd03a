package store

// Retrieval strategies a QueryPlan may select.
const (
	StrategyStructured = "structured"
	StrategySemantic   = "semantic"
	StrategyHybrid     = "hybrid"
)

// Query types describing the shape of a structured retrieval.
const (
	QueryCount       = "count"
	QueryAggregate   = "aggregate"
	QueryGroupBy     = "group_by"
	QueryTimeSeries  = "time_series"
	QueryList        = "list"
	QueryCrossEntity = "cross_entity"
)

// QueryPlan describes how a retrieval intent should be executed.
// Produced fresh per command; never cached.
type QueryPlan struct {
	Strategy       string                 `json:"strategy"`
	QueryType      string                 `json:"queryType"`
	Entities       []string               `json:"entities"`
	NeedsEmbedding bool                   `json:"needsEmbedding"`
	Aggregation    string                 `json:"aggregation,omitempty"`
	GroupBy        string                 `json:"groupBy,omitempty"`
	SelectFields   []string               `json:"selectFields,omitempty"`
	Filters        map[string]interface{} `json:"filters,omitempty"`
	TimeGrouping   string                 `json:"timeGrouping,omitempty"`
	Description    string                 `json:"description,omitempty"`
	Confidence     float64                `json:"confidence"`
}

// ActionResult is the outcome of a retrieval or a domain mutation.
type ActionResult struct {
	Success      bool
	Data         interface{}
	Count        int64
	IsCount      bool
	IsAggregate  bool
	IsTimeSeries bool
	IsGrouped    bool
	Summary      string
	Error        string
}

// SimilarityResult is one ranked hit from the similarity search engine.
type SimilarityResult struct {
	EntityID   string
	EntityType string
	Excerpt    string
	Metadata   map[string]interface{}
	Score      float64
}

// StoredVector is a candidate row fetched for in-process ranking.
type StoredVector struct {
	EntityID   string
	EntityType string
	Excerpt    string
	Metadata   map[string]interface{}
	Vector     []float32
}

// Visualization is one presentation shape derived from an ActionResult.
type Visualization struct {
	Type   string                 `json:"type"`
	Title  string                 `json:"title,omitempty"`
	Data   interface{}            `json:"data,omitempty"`
	Config map[string]interface{} `json:"config,omitempty"`
}

// Visualization type tags.
const (
	VizTable = "table"
	VizChart = "chart"
	VizCard  = "card"
	VizRaw   = "raw"
)

// Suggestion is one proposed follow-up action.
type Suggestion struct {
	Text      string `json:"text"`
	Intent    string `json:"intent"`
	Relevance int    `json:"relevance"`
}
