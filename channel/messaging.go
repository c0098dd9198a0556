package channel

import "github.com/goliatone/go-whatsapp-kapso/normalize"

const TargetHint = "<phone number>"

func (*Plugin) NormalizeTarget(raw string) (string, bool) {
	return normalize.MessagingTarget(raw)
}

func (*Plugin) LooksLikeTargetID(raw string) bool {
	return normalize.LooksLikeTargetID(raw)
}

func (*Plugin) TargetHint() string {
	return TargetHint
}
