package logger

// RedactPhone masks a phone number for safe logging.
// "+5511988887777" → "+5511****7777"
// Numbers too short to mask meaningfully are fully masked.
func RedactPhone(phone string) string {
	if len(phone) < 9 {
		return "****"
	}
	return phone[:5] + "****" + phone[len(phone)-4:]
}
