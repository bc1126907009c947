package security

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

type ruleKind int

const (
	ruleExact ruleKind = iota
	ruleSuffix
	rulePattern
	ruleLocalhost
	ruleSubstring
)

type originRule struct {
	kind    ruleKind
	value   string
	pattern *regexp.Regexp
}

// OriginPolicy : упорядоченный список правил проверки заголовка Origin.
// Пустой список разрешает любой источник.
type OriginPolicy struct {
	allowAll bool
	rules    []originRule
}

// NewOriginPolicy : запись со схемой ("https://app.example.com") сравнивается точно,
// запись без схемы ("example.com", ".example.com") разрешает этот хост и его поддомены.
func NewOriginPolicy(allowed []string) *OriginPolicy {
	policy := &OriginPolicy{allowAll: len(allowed) == 0}

	for _, entry := range allowed {
		entry = strings.ToLower(strings.TrimRight(strings.TrimSpace(entry), "/"))
		if entry == "" {
			continue
		}
		if strings.Contains(entry, "://") {
			policy.rules = append(policy.rules, originRule{kind: ruleExact, value: entry})
			continue
		}
		policy.rules = append(policy.rules, originRule{kind: ruleSuffix, value: strings.TrimPrefix(entry, ".")})
	}

	return policy
}

// WithUploadRules : копия политики, дополнительно разрешающая localhost/127.0.0.1,
// хосты по регулярным выражениям и любой хост, содержащий brand
func (p *OriginPolicy) WithUploadRules(patterns []string, brand string) (*OriginPolicy, error) {
	extended := &OriginPolicy{
		allowAll: p.allowAll,
		rules:    append([]originRule(nil), p.rules...),
	}

	extended.rules = append(extended.rules, originRule{kind: ruleLocalhost})

	for _, raw := range patterns {
		compiled, err := regexp.Compile(raw)
		if err != nil {
			return nil, fmt.Errorf("некорректный шаблон источника %q: %w", raw, err)
		}
		extended.rules = append(extended.rules, originRule{kind: rulePattern, pattern: compiled})
	}

	if brand = strings.ToLower(strings.TrimSpace(brand)); brand != "" {
		extended.rules = append(extended.rules, originRule{kind: ruleSubstring, value: brand})
	}

	return extended, nil
}

// Allowed : при настроенном списке отсутствующий Origin запрещён
func (p *OriginPolicy) Allowed(origin string) bool {
	if p.allowAll {
		return true
	}

	origin = strings.ToLower(strings.TrimSpace(origin))
	if origin == "" {
		return false
	}

	host := originHost(origin)
	for _, rule := range p.rules {
		if rule.matches(origin, host) {
			return true
		}
	}
	return false
}

func (r originRule) matches(origin, host string) bool {
	switch r.kind {
	case ruleExact:
		return origin == r.value
	case ruleSuffix:
		return host == r.value || strings.HasSuffix(host, "."+r.value)
	case rulePattern:
		return r.pattern.MatchString(origin)
	case ruleLocalhost:
		return host == "localhost" || host == "127.0.0.1"
	case ruleSubstring:
		return strings.Contains(host, r.value)
	}
	return false
}

func originHost(origin string) string {
	parsed, err := url.Parse(origin)
	if err != nil || parsed.Host == "" {
		return ""
	}
	return parsed.Hostname()
}
