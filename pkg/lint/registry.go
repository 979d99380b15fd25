package lint

import (
	"sort"
	"sync"
)

// registry stores all description rules for process-wide access.
var registry = &ruleRegistry{
	rules: make(map[string]Rule),
}

type ruleRegistry struct {
	mu    sync.RWMutex
	rules map[string]Rule
}

// Register adds a rule to the registry. Rules call this from init();
// registering a name twice replaces the earlier entry.
func Register(rule Rule) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.rules[rule.Name] = rule
}

// GetRuleByName returns a rule by its registered name.
func GetRuleByName(name string) (Rule, bool) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	rule, ok := registry.rules[name]
	return rule, ok
}

// AllRules returns all registered rules, sorted by name.
func AllRules() []Rule {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	rules := make([]Rule, 0, len(registry.rules))
	for _, rule := range registry.rules {
		rules = append(rules, rule)
	}
	sort.Slice(rules, func(i, j int) bool {
		return rules[i].Name < rules[j].Name
	})
	return rules
}

// RuleNames returns the names of all registered rules, sorted.
func RuleNames() []string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	names := make([]string, 0, len(registry.rules))
	for name := range registry.rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CountRules returns the number of registered rules.
func CountRules() int {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	return len(registry.rules)
}

// Clear removes all rules from the registry. Used for testing.
func Clear() {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.rules = make(map[string]Rule)
}
