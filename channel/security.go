package channel

import (
	"github.com/goliatone/go-whatsapp-kapso/core"
	"github.com/goliatone/go-whatsapp-kapso/normalize"
)

const (
	DMPolicyPath  = "channels.whatsappKapso.dmPolicy"
	AllowFromPath = "channels.whatsappKapso."
	ApproveHint   = "openclaw pairing approve whatsapp-kapso <PHONE>"
)

type DMPolicyInfo struct {
	Policy        core.DMPolicy `json:"policy"`
	AllowFrom     []string      `json:"allowFrom"`
	PolicyPath    string        `json:"policyPath"`
	AllowFromPath string        `json:"allowFromPath"`
	ApproveHint   string        `json:"approveHint"`
}

// ResolveDMPolicy reports the direct-message policy for account. An unset
// policy is open.
func (*Plugin) ResolveDMPolicy(account core.Account) DMPolicyInfo {
	policy := account.DMPolicy
	if policy == "" {
		policy = account.Config.DMPolicy
	}
	if policy == "" {
		policy = core.DMPolicyOpen
	}
	return DMPolicyInfo{
		Policy:        policy,
		AllowFrom:     append([]string{}, account.Config.AllowFrom...),
		PolicyPath:    DMPolicyPath,
		AllowFromPath: AllowFromPath,
		ApproveHint:   ApproveHint,
	}
}

func (*Plugin) NormalizeDMEntry(raw string) string {
	return normalize.StripPrefix(raw)
}

// CollectWarnings has nothing to report for this channel.
func (*Plugin) CollectWarnings(core.Account) []string {
	return []string{}
}
