package database

// ConversationId derives the canonical conversation identifier for a pair
// of users. The smaller id sorts first, so both participants derive the
// same identifier no matter who initiates.
func ConversationId(userA, userB string) string {
	if userB < userA {
		userA, userB = userB, userA
	}

	return userA + "-" + userB
}
