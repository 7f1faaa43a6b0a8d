package llmprovider

import (
	"fmt"
	"regexp"

	lru "github.com/hashicorp/golang-lru/v2"
)

// ModelCapability maps a model-name pattern to whether the model accepts an
// extended reasoning (thinking) budget.
type ModelCapability struct {
	Pattern           string
	ExtendedReasoning bool
}

// DefaultModelCapabilities is used when no table is configured.
var DefaultModelCapabilities = []ModelCapability{
	{Pattern: `gemini-2\.5`, ExtendedReasoning: true},
	{Pattern: `gemini-3`, ExtendedReasoning: true},
}

const capabilityCacheSize = 256

type capabilityRule struct {
	re                *regexp.Regexp
	extendedReasoning bool
}

// CapabilityTable answers capability questions about model identifiers.
// The first matching rule wins; models matching no rule have no extended
// reasoning. Safe for concurrent use.
type CapabilityTable struct {
	rules []capabilityRule
	cache *lru.Cache[string, bool]
}

// NewCapabilityTable compiles caps. An empty caps uses DefaultModelCapabilities.
func NewCapabilityTable(caps []ModelCapability) (*CapabilityTable, error) {
	if len(caps) == 0 {
		caps = DefaultModelCapabilities
	}

	rules := make([]capabilityRule, 0, len(caps))
	for _, c := range caps {
		re, err := regexp.Compile(c.Pattern)
		if err != nil {
			return nil, fmt.Errorf("model capability pattern %q: %w", c.Pattern, err)
		}
		rules = append(rules, capabilityRule{re: re, extendedReasoning: c.ExtendedReasoning})
	}

	cache, err := lru.New[string, bool](capabilityCacheSize)
	if err != nil {
		return nil, err
	}
	return &CapabilityTable{rules: rules, cache: cache}, nil
}

// SupportsExtendedReasoning reports whether model accepts a thinking budget.
func (t *CapabilityTable) SupportsExtendedReasoning(model string) bool {
	if t == nil {
		return false
	}
	if v, ok := t.cache.Get(model); ok {
		return v
	}

	supported := false
	for _, r := range t.rules {
		if r.re.MatchString(model) {
			supported = r.extendedReasoning
			break
		}
	}
	t.cache.Add(model, supported)
	return supported
}
