package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
	// PublicFilePermissions is the permission for exported artifacts (rw-r--r--)
	PublicFilePermissions = 0o644
)

// Inference endpoints
const (
	// DefaultInferenceBaseURL is the hosted generation endpoint; the model ID is appended.
	DefaultInferenceBaseURL = "https://router.huggingface.co/models"
	// DefaultHubURL is the model metadata search endpoint.
	DefaultHubURL = "https://huggingface.co/api/models"
	// DefaultSearchEndpoint is the DuckDuckGo HTML results page.
	DefaultSearchEndpoint = "https://html.duckduckgo.com/html/"
)

// Timeout and retry constants
const (
	// DefaultAPITimeoutSeconds is the per-request HTTP timeout.
	DefaultAPITimeoutSeconds = 60
	// DefaultMaxRetries is the attempt budget of the inference client.
	DefaultMaxRetries = 3
	// DefaultColdStartWait applies when a 503 carries no X-Wait-For-Model hint.
	DefaultColdStartWait = 10 * time.Second
	// TimeoutRetryDelay is the fixed pause before retrying a timed out request.
	TimeoutRetryDelay = 2 * time.Second
	// HubRequestTimeout bounds model metadata lookups.
	HubRequestTimeout = 30 * time.Second
	// DefaultSearchTimeout bounds a single web search round trip.
	DefaultSearchTimeout = 15 * time.Second
	// DefaultCacheTTL is how long hub search results are reused.
	DefaultCacheTTL = time.Hour
)

// Limit constants
const (
	// DefaultSearchResults is the number of web results folded into a prompt.
	DefaultSearchResults = 5
	// HubSearchLimit is the page size requested from the model hub.
	HubSearchLimit = 50
	// DefaultMaxFileBytes caps a single attached file.
	DefaultMaxFileBytes = 20 << 20
	// DefaultMaxCacheEntries is the maximum number of cache entries
	DefaultMaxCacheEntries = 100
	// DefaultHistoryLimit is the default number of history records to display
	DefaultHistoryLimit = 20
)

// Default generation parameters used when a caller sets only some of them.
const (
	DefaultMaxNewTokens = 250
	DefaultTemperature  = 0.7
	DefaultTopP         = 0.95
)

// DefaultModel is used when settings carry no default model.
const DefaultModel = "meta-llama/Llama-3.1-8B-Instruct"

// Time formats
const (
	// HistoryTimestampFormat is the ISO-8601 layout stored in history entries.
	HistoryTimestampFormat = "2006-01-02T15:04:05.000000"
	// HistoryIDFormat prefixes history entry identifiers.
	HistoryIDFormat = "20060102150405"
	// ExportFileTimeFormat is used in default export file names.
	ExportFileTimeFormat = "20060102_150405"
)

// PopularModels are suggested text-generation models.
var PopularModels = []string{
	"meta-llama/Llama-3.1-8B-Instruct",
	"mistralai/Mistral-7B-Instruct-v0.2",
	"google/gemma-7b-it",
	"Qwen/Qwen2.5-7B-Instruct",
	"microsoft/Phi-3-mini-4k-instruct",
	"meta-llama/Llama-3-8B-Instruct",
	"mistralai/Mixtral-8x7B-Instruct-v0.1",
	"google/gemma-2b-it",
	"NousResearch/Nous-Hermes-2-Mixtral-8x7B-DPO",
	"HuggingFaceH4/zephyr-7b-beta",
}

// MultimodalModels accept an image alongside the prompt.
var MultimodalModels = []string{
	"llava-hf/llava-1.5-7b-hf",
	"microsoft/kosmos-2-patch14-224",
	"Salesforce/blip-image-captioning-base",
}

// VisionModels are image classification backbones.
var VisionModels = []string{
	"google/vit-base-patch16-224",
	"microsoft/swin-base-patch4-window7-224",
}
