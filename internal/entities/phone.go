package entities

import (
	"strings"
	"time"
)

// PhoneSuffix is the chat-identifier suffix the gateway uses for personal
// chats. All stored and looked-up phones carry it exactly once.
const PhoneSuffix = "@lid"

// NormalizePhone strips any session decoration after the first underscore
// and appends the canonical suffix if missing. Idempotent.
func NormalizePhone(phone string) string {
	phone = strings.SplitN(phone, "_", 2)[0]
	if !strings.HasSuffix(phone, PhoneSuffix) {
		phone += PhoneSuffix
	}
	return phone
}

// SessionKey scopes a conversation to a sender and a calendar day.
func SessionKey(phone string, day time.Time) string {
	return phone + "_" + day.Format("2006-01-02")
}
