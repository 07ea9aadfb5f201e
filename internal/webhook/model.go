package webhook

import "github.com/kingmrb/post-call-webhook/internal/transcript"

// PostCallPayload is the voice platform's call-completion event. The nesting
// under "data" matches what ElevenLabs posts.
type PostCallPayload struct {
	Data struct {
		ConversationID string            `json:"conversation_id"`
		Status         string            `json:"status"`
		Transcript     []transcript.Turn `json:"transcript"`
		Analysis       struct {
			TranscriptSummary string `json:"transcript_summary"`
		} `json:"analysis"`
	} `json:"data"`
}

// LiveCartPayload is the mid-call running cart pushed by the ordering agent's
// tool call.
type LiveCartPayload struct {
	CallID string `json:"call_id"`
	Items  []struct {
		Name     string `json:"name"`
		Quantity int    `json:"quantity"`
	} `json:"items"`
}
