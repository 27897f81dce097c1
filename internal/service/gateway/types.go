package gateway

import "context"

// Client is the outbound message gateway contract. The wire protocol
// behind it is a black box: transport failures surface as errors, provider
// rejections come back as a result with Success=false and an error code.
type Client interface {
	Send(ctx context.Context, to, body string) (SendResult, error)
}

// SendResult is the gateway's answer to a single send.
type SendResult struct {
	Success      bool
	ProviderSID  string
	ErrorCode    string
	ErrorMessage string
}

// PermanentFailureCodes is the set of gateway error codes that signal a
// permanently undeliverable number or a carrier-side opt-out. Provider
// error taxonomies evolve, so the set is configuration, not a compiled-in
// constant; these are the defaults.
func PermanentFailureCodes(configured []string) map[string]struct{} {
	codes := configured
	if len(codes) == 0 {
		codes = []string{"21610", "21211", "21408"}
	}
	set := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		set[code] = struct{}{}
	}
	return set
}
