package cli

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	expect "github.com/google/goexpect"
	"golang.org/x/crypto/ssh"

	"github.com/nanoncore/nano-telemetry/vendors/common"
)

// DefaultPromptPattern matches common CLI prompts like "hostname#" or "hostname>"
var DefaultPromptPattern = regexp.MustCompile(`(?m)[\w\-\[\]()]+[#>]\s*$`)

// VendorPrompts contains vendor-specific prompt patterns
var VendorPrompts = map[string]*regexp.Regexp{
	"huawei":  regexp.MustCompile(`(?m)(<[\w\-.]+>|\[[\w\-~.]+\])\s*$`),
	"juniper": regexp.MustCompile(`(?m)[\w\-.]+@[\w\-.]+[>#%]\s*$`),
}

// PagerDisableCommands contains commands to disable paging per vendor
var PagerDisableCommands = map[string]string{
	"huawei":  "screen-length 0 temporary",
	"juniper": "set cli screen-length 0",
}

// minFramedLines is the smallest shell capture that can hold output:
// anything shorter is just the command echo and the prompt
const minFramedLines = 3

// ExpectSession wraps google/goexpect for an interactive CLI shell
type ExpectSession struct {
	expecter *expect.GExpect
	promptRE *regexp.Regexp
	timeout  time.Duration
	vendor   string
}

// ExpectSessionConfig holds configuration for creating an expect session
type ExpectSessionConfig struct {
	SSHClient    *ssh.Client
	Vendor       string
	Timeout      time.Duration
	CustomPrompt *regexp.Regexp
	DisablePager bool
}

// NewExpectSession opens a shell on the SSH client and waits for the first prompt
func NewExpectSession(cfg ExpectSessionConfig) (*ExpectSession, error) {
	if cfg.SSHClient == nil {
		return nil, fmt.Errorf("SSH client is required")
	}

	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	promptRE := cfg.CustomPrompt
	if promptRE == nil {
		promptRE = promptFor(cfg.Vendor)
	}

	exp, _, err := expect.SpawnSSH(cfg.SSHClient, cfg.Timeout,
		expect.Verbose(false),
		expect.CheckDuration(200*time.Millisecond),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to spawn SSH expect session: %w", err)
	}

	session := &ExpectSession{
		expecter: exp,
		promptRE: promptRE,
		timeout:  cfg.Timeout,
		vendor:   strings.ToLower(cfg.Vendor),
	}

	// Wait for initial prompt, discarding the login banner
	if _, _, err := exp.Expect(promptRE, cfg.Timeout); err != nil {
		exp.Close()
		return nil, fmt.Errorf("failed to detect initial prompt: %w", err)
	}

	// Non-fatal: long outputs are still read, just with pager prompts in them
	if cfg.DisablePager {
		_ = session.disablePager()
	}

	return session, nil
}

func promptFor(vendor string) *regexp.Regexp {
	if re, ok := VendorPrompts[strings.ToLower(vendor)]; ok {
		return re
	}
	return DefaultPromptPattern
}

func (s *ExpectSession) disablePager() error {
	cmd := PagerDisableCommands[s.vendor]
	if cmd == "" {
		cmd = "terminal length 0"
	}

	_, err := s.Execute(cmd, s.timeout)
	return err
}

// Execute sends a command and waits up to timeout for the prompt to return.
// A zero timeout uses the session default.
func (s *ExpectSession) Execute(command string, timeout time.Duration) (string, error) {
	if s.expecter == nil {
		return "", fmt.Errorf("expect session not initialized")
	}
	if timeout <= 0 {
		timeout = s.timeout
	}

	if err := s.expecter.Send(command + "\n"); err != nil {
		return "", fmt.Errorf("failed to send command: %w", err)
	}

	output, _, err := s.expecter.Expect(s.promptRE, timeout)
	if err != nil {
		return "", fmt.Errorf("timeout waiting for prompt after command %q: %w", command, err)
	}

	return frameOutput(output, command, s.promptRE), nil
}

// frameOutput drops the command echo, the trailing prompt, Junos
// "{master:0}" banners and blank lines from a shell capture.
func frameOutput(output, command string, promptRE *regexp.Regexp) string {
	lines := strings.Split(common.Sanitize(output), "\n")
	if len(lines) < minFramedLines {
		return ""
	}

	if strings.Contains(lines[0], command) {
		lines = lines[1:]
	}
	for len(lines) > 0 {
		last := strings.TrimSpace(lines[len(lines)-1])
		if last != "" && !promptRE.MatchString(last) {
			break
		}
		lines = lines[:len(lines)-1]
	}

	var cleaned []string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "{master") {
			continue
		}
		cleaned = append(cleaned, strings.TrimRight(line, " \t"))
	}

	return strings.Join(cleaned, "\n")
}

// Close closes the expect session
func (s *ExpectSession) Close() error {
	if s.expecter != nil {
		return s.expecter.Close()
	}
	return nil
}

// SetTimeout updates the default command timeout
func (s *ExpectSession) SetTimeout(timeout time.Duration) {
	s.timeout = timeout
}
