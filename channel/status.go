package channel

import (
	"time"

	"github.com/goliatone/go-whatsapp-kapso/core"
)

type RuntimeStatus struct {
	AccountID   string     `json:"accountId"`
	Running     bool       `json:"running"`
	LastStartAt *time.Time `json:"lastStartAt"`
	LastStopAt  *time.Time `json:"lastStopAt"`
	LastError   *string    `json:"lastError"`
}

type AccountSnapshot struct {
	AccountID  string  `json:"accountId"`
	Name       string  `json:"name,omitempty"`
	Enabled    bool    `json:"enabled"`
	Configured bool    `json:"configured"`
	Running    bool    `json:"running"`
	LastError  *string `json:"lastError"`
}

type ChannelSummary struct {
	Configured bool    `json:"configured"`
	Running    bool    `json:"running"`
	LastError  *string `json:"lastError"`
}

type StatusIssue struct {
	AccountID string `json:"accountId"`
	Message   string `json:"message"`
}

func (*Plugin) DefaultRuntime() RuntimeStatus {
	return RuntimeStatus{AccountID: core.DefaultAccountID, Running: true}
}

// BuildAccountSnapshot reports account state; runtime may be nil.
func (*Plugin) BuildAccountSnapshot(account core.Account, runtime *RuntimeStatus) AccountSnapshot {
	snapshot := AccountSnapshot{
		AccountID:  account.AccountID,
		Name:       account.Name,
		Enabled:    account.Enabled,
		Configured: account.Configured(),
		Running:    true,
	}
	if runtime != nil {
		snapshot.LastError = runtime.LastError
	}
	return snapshot
}

func (*Plugin) BuildChannelSummary(snapshot AccountSnapshot) ChannelSummary {
	return ChannelSummary{
		Configured: snapshot.Configured,
		Running:    true,
		LastError:  snapshot.LastError,
	}
}

func (*Plugin) CollectStatusIssues([]AccountSnapshot) []StatusIssue {
	return []StatusIssue{}
}
