// Package permissions loads the route policy embedded at build time. Each
// rule names a chi route pattern and either the staff roles allowed on it or
// that guests may call it without a token.
package permissions

import (
	_ "embed"
	"encoding/json"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var policyFile []byte

type Rule struct {
	Method string   `json:"method"`
	Path   string   `json:"path"`
	Roles  []string `json:"roles,omitempty"`
	Guest  bool     `json:"guest,omitempty"`
}

// Allows reports whether role may call the route. A staff rule without
// roles admits any authenticated staff member.
func (r Rule) Allows(role string) bool {
	if r.Guest || len(r.Roles) == 0 {
		return true
	}

	return slices.Contains(r.Roles, role)
}

type PermissionData struct {
	// Open disables role checks entirely. Tokens are still verified.
	Open   bool   `json:"open"`
	Routes []Rule `json:"routes"`

	index map[string]Rule
}

func routeKey(method, path string) string {
	return strings.ToUpper(method) + " " + path
}

// Parse decodes a policy document and indexes it by method and pattern.
// Later duplicates override earlier ones.
func Parse(raw []byte) (*PermissionData, error) {
	var policy PermissionData
	if err := json.Unmarshal(raw, &policy); err != nil {
		return nil, err
	}

	policy.index = make(map[string]Rule, len(policy.Routes))
	for _, rule := range policy.Routes {
		policy.index[routeKey(rule.Method, rule.Path)] = rule
	}

	return &policy, nil
}

// Rule returns the rule for a route pattern. Unlisted routes get a zero
// Rule, which requires a token but no particular role.
func (p *PermissionData) Rule(method, path string) Rule {
	return p.index[routeKey(method, path)]
}

func (p *PermissionData) Guest(method, path string) bool {
	return p.Rule(method, path).Guest
}

func Get() *PermissionData {
	policy, err := Parse(policyFile)
	if err != nil {
		log.Err(err).Msg("Failed to decode embedded permissions")

		return nil
	}

	log.Info().Int("routes", len(policy.Routes)).Msg("Loaded embedded route permissions")

	return policy
}
