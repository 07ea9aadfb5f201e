package transcript

// Turn is one utterance in a call transcript. Message may be empty; webhook
// payloads routinely omit it for tool-call turns.
type Turn struct {
	Role    string `json:"role"`
	Message string `json:"message"`
}

const (
	RoleAgent = "agent"
	RoleUser  = "user"
)

// Candidate is one parsed order line before pricing: a canonical menu name
// plus whatever quantity, spice level and notes the utterance carried.
type Candidate struct {
	Name       string
	Quantity   int
	SpiceLevel string
	Notes      string
}

// Contact is the customer identity recovered from a transcript. Fields that
// could not be resolved hold "N/A".
type Contact struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Unresolved is the sentinel for contact fields we could not extract.
const Unresolved = "N/A"
