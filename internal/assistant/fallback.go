package assistant

// fallbackReplies are the last-resort clarification phrasings. The
// fallback path must always produce non-empty content.
var fallbackReplies = []string{
	"I'm not sure I understood that. Could you rephrase your question?",
	"I don't have a good answer for that yet. Could you give me a bit more detail?",
	"Sorry, that one is outside what I've learned so far. Try asking another way?",
	"I couldn't match that to anything I know. What exactly would you like to find out?",
	"Apologies, I'm still learning about that topic. Could you ask in different words?",
}

func (r *Responder) fallback() ResolvedResponse {
	return ResolvedResponse{
		Content:    fallbackReplies[r.pick(len(fallbackReplies))],
		Confidence: fallbackConfidence,
		Source:     SourceFallback,
	}
}
