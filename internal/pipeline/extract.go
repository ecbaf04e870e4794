package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/vendor-scout/internal/config"
	"github.com/sells-group/vendor-scout/internal/fetcher"
	"github.com/sells-group/vendor-scout/internal/model"
	"github.com/sells-group/vendor-scout/internal/resilience"
	"github.com/sells-group/vendor-scout/internal/vendor"
	"github.com/sells-group/vendor-scout/pkg/anthropic"
)

// extractionSystemPrompt fixes the vendor schema the model must emit. Kept
// static so prompt caching applies across every page in a batch.
const extractionSystemPrompt = `You are a specialized data extraction assistant for farmers markets. Your job is to extract vendor/participant information from farmers market website content.

Given website content, identify and extract information about individual vendors, farmers, producers, or participants. For each vendor, extract:

1. Name (business/farm name)
2. Business type (farm, bakery, artisan, etc.)
3. Products (what they sell/produce)
4. Description (brief description of their business)
5. Contact info (phone, email, website if mentioned)
6. Location (if mentioned)

Return the results as a JSON array of vendor objects. Each vendor object should have these fields:
- "name": string (required)
- "business_type": string or null
- "products": array of strings or null
- "description": string or null
- "contact_info": object with phone/email/website fields or null
- "location": string or null
- "confidence": number between 0-1 indicating your confidence in the extraction

Only include entries that you're reasonably confident are actual vendors/businesses, not general market information. Ignore market organizers, staff, event listings, and generic references to "local farms". If no clear vendor information is found, return an empty array.

Example output:
[
  {
    "name": "Smith Family Farm",
    "business_type": "farm",
    "products": ["organic vegetables", "seasonal fruits"],
    "description": "Third generation family farm specializing in organic produce",
    "contact_info": {"phone": "555-1234", "email": "smith@farm.com"},
    "location": "Camden County",
    "confidence": 0.9
  }
]`

const userMessageTemplate = `Market: %s
Website: %s

Content to analyze:
%s

Please extract vendor/participant information from this farmers market website content.`

// Extractor runs the LLM extraction phase over candidate pages.
type Extractor struct {
	ai      anthropic.Client
	fetcher *fetcher.Client
	cfg     config.ExtractConfig
	limiter *rate.Limiter
	retry   resilience.RetryConfig
}

// NewExtractor builds an Extractor. The call-delay limiter spaces Anthropic
// requests; transient API failures are retried with backoff on top of that.
func NewExtractor(ai anthropic.Client, f *fetcher.Client, cfg config.ExtractConfig) *Extractor {
	delay := time.Duration(cfg.CallDelayMS) * time.Millisecond
	if delay <= 0 {
		delay = time.Nanosecond
	}

	retry := resilience.DefaultRetryConfig()
	if cfg.MaxRetries > 0 {
		retry.MaxAttempts = cfg.MaxRetries
	}
	retry.OnRetry = resilience.RetryLogger("anthropic", "extract vendors")

	return &Extractor{
		ai:      ai,
		fetcher: f,
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Every(delay), 1),
		retry:   retry,
	}
}

// ExtractPage fetches one candidate page and extracts vendors from it.
// Failures never propagate: they come back as a failure-flagged result so a
// bad page costs exactly one entry in the output.
func (e *Extractor) ExtractPage(ctx context.Context, marketName, pageURL string) model.ExtractionResult {
	start := time.Now()
	result := model.ExtractionResult{
		MarketName: marketName,
		PageURL:    pageURL,
	}

	page, err := e.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		result.ErrorMessage = err.Error()
		result.ProcessingTime = time.Since(start).Seconds()
		return result
	}

	content := truncateContent(page.Text, e.cfg.MaxContentChars)
	if content == "" {
		result.ErrorMessage = "page has no extractable text"
		result.ProcessingTime = time.Since(start).Seconds()
		return result
	}

	if err := e.limiter.Wait(ctx); err != nil {
		result.ErrorMessage = err.Error()
		result.ProcessingTime = time.Since(start).Seconds()
		return result
	}

	req := anthropic.MessageRequest{
		Model:       e.cfg.Model,
		MaxTokens:   int64(e.cfg.MaxTokens),
		Temperature: &e.cfg.Temperature,
		System: []anthropic.SystemBlock{{
			Text:         extractionSystemPrompt,
			CacheControl: &anthropic.CacheControl{TTL: "5m"},
		}},
		Messages: []anthropic.Message{{
			Role:    "user",
			Content: fmt.Sprintf(userMessageTemplate, marketName, pageURL, content),
		}},
	}

	resp, err := resilience.DoVal(ctx, e.retry, func(ctx context.Context) (*anthropic.MessageResponse, error) {
		return e.ai.CreateMessage(ctx, req)
	})
	if err != nil {
		zap.L().Warn("extract: model call failed",
			zap.String("market", marketName),
			zap.String("url", pageURL),
			zap.Error(err),
		)
		result.ErrorMessage = err.Error()
		result.ProcessingTime = time.Since(start).Seconds()
		return result
	}

	resp.Usage.LogCost(e.cfg.Model, "extract")

	result.Vendors = vendor.ParseVendors(resp.Text(), pageURL)
	result.ExtractionSuccess = true
	result.ProcessingTime = time.Since(start).Seconds()

	zap.L().Info("extract: page processed",
		zap.String("market", marketName),
		zap.String("url", pageURL),
		zap.Int("vendors", len(result.Vendors)),
		zap.Float64("seconds", result.ProcessingTime),
	)
	return result
}

// truncateContent caps page text for the API call, marking the cut so the
// model knows the content continues.
func truncateContent(text string, maxChars int) string {
	if maxChars <= 0 || len(text) <= maxChars {
		return text
	}
	return text[:maxChars] + "..."
}
