package constant

const (
	// ChatGreeting seeds every fresh or cleared conversation.
	ChatGreeting = `Log interaction details here (e.g., "Met Dr. Smith, discussed Product X efficacy, positive sentiment, shared brochure") or ask for help.`

	// LocalSessionPrefix marks session ids generated client-side before the
	// assistant has confirmed one.
	LocalSessionPrefix = "local_session_"

	// InteractionLoggedEvent is published after a successful submission.
	InteractionLoggedEvent = "INTERACTION_LOGGED"
)
