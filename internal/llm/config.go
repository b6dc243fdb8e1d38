package llm

// ModelTier is the capability level requested for a generation.
type ModelTier string

const (
	// TierLite covers simple extraction and classification.
	TierLite ModelTier = "lite"
	// TierStandard covers structured output such as resume parsing.
	TierStandard ModelTier = "standard"
	// TierAdvanced covers long-form writing such as cover letters.
	TierAdvanced ModelTier = "advanced"
)

// Config maps tiers to provider model names.
type Config struct {
	Models map[ModelTier]string
}

// DefaultConfig returns the default Gemini tier mapping.
func DefaultConfig() *Config {
	return &Config{
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
	}
}

// Model returns the model name for a tier, falling back down the tier
// ladder when the exact tier is not configured.
func (c *Config) Model(tier ModelTier) string {
	if m, ok := c.Models[tier]; ok {
		return m
	}
	if m, ok := c.Models[TierStandard]; ok {
		return m
	}
	return c.Models[TierLite]
}
