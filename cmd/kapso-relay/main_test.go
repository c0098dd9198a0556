package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kapso.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func runCommand(t *testing.T, args ...string) (*bytes.Buffer, error) {
	t.Helper()
	out := &bytes.Buffer{}
	root := newRootCommand()
	root.SetOut(out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(append(args, "--log-level", "ERROR"))
	return out, root.Execute()
}

func TestNormalizeCommand_PrintsResolvedTargets(t *testing.T) {
	t.Setenv("REMOTE_CODE_URL", "")
	t.Setenv("OPENCLAW_WEBHOOK_SECRET", "")
	out, err := runCommand(t, "normalize", "--config", filepath.Join(t.TempDir(), "missing.yaml"), "whatsapp:+44 20 7946 0958", "abc")
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}

	var targets []struct {
		Raw   string `json:"raw"`
		E164  string `json:"e164"`
		Valid bool   `json:"valid"`
	}
	if err := json.Unmarshal(out.Bytes(), &targets); err != nil {
		t.Fatalf("decode output %q: %v", out.String(), err)
	}
	if len(targets) != 2 {
		t.Fatalf("expected 2 targets, got %d", len(targets))
	}
	if !targets[0].Valid || targets[0].E164 != "+442079460958" {
		t.Fatalf("unexpected first target %+v", targets[0])
	}
	if targets[1].Valid {
		t.Fatalf("expected second target invalid, got %+v", targets[1])
	}
}

func TestStatusCommand_ReportsEnvOverrides(t *testing.T) {
	t.Setenv("REMOTE_CODE_URL", "https://relay.example.com")
	t.Setenv("OPENCLAW_WEBHOOK_SECRET", "env-secret")
	path := writeConfig(t, `
channels:
  whatsappKapso:
    name: support
    dmPolicy: allowlist
    allowFrom: ["whatsapp:+14155551234", " "]
`)
	out, err := runCommand(t, "status", "--config", path)
	if err != nil {
		t.Fatalf("status: %v", err)
	}

	var report statusReport
	if err := json.Unmarshal(out.Bytes(), &report); err != nil {
		t.Fatalf("decode output %q: %v", out.String(), err)
	}
	if report.Channel != "whatsapp-kapso" || !report.Account.Configured || report.Account.Name != "support" {
		t.Fatalf("unexpected report %+v", report)
	}
	if report.DMPolicy.Policy != "allowlist" {
		t.Fatalf("expected allowlist policy, got %+v", report.DMPolicy)
	}
	if len(report.AllowFrom) != 1 || report.AllowFrom[0] != "+14155551234" {
		t.Fatalf("unexpected allow from %v", report.AllowFrom)
	}
}

func TestSendCommand_FailsWithoutRelayURL(t *testing.T) {
	t.Setenv("REMOTE_CODE_URL", "")
	t.Setenv("OPENCLAW_WEBHOOK_SECRET", "")
	out, err := runCommand(t, "send", "--config", filepath.Join(t.TempDir(), "missing.yaml"), "--to", "+14155551234", "--text", "hi")
	if err == nil {
		t.Fatalf("expected send failure")
	}
	var result struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(out.Bytes(), &result); err != nil {
		t.Fatalf("decode output %q: %v", out.String(), err)
	}
	if result.Success || result.Error != "Remote-code URL not configured" {
		t.Fatalf("unexpected result %+v", result)
	}
}
