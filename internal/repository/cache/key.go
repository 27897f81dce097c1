package cache

import "fmt"

// SuppressionKey builds the redis key for a suppressed phone number. The
// phone must already be normalized.
func SuppressionKey(phone string) string {
	return fmt.Sprintf("outreach:suppressed:%s", phone)
}
