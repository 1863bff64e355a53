package duckduckgo

import (
	"net/http"
	"strings"
)

// BlockType describes the kind of block detected.
type BlockType string

const (
	BlockNone      BlockType = ""
	BlockRateLimit BlockType = "rate_limit"
	BlockAnomaly   BlockType = "anomaly"
	BlockCaptcha   BlockType = "captcha"
)

// DetectBlock checks a response for the endpoint's anti-automation pages.
func DetectBlock(resp *http.Response, body []byte) (bool, BlockType) {
	if resp == nil {
		return false, BlockNone
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return true, BlockRateLimit
	}

	lower := strings.ToLower(string(body))

	// The "unusual traffic" interstitial ships an anomaly form.
	if strings.Contains(lower, "anomaly-modal") ||
		strings.Contains(lower, "anomaly.js") ||
		strings.Contains(lower, "unusual traffic") {
		return true, BlockAnomaly
	}

	if strings.Contains(lower, "captcha") {
		return true, BlockCaptcha
	}

	return false, BlockNone
}
