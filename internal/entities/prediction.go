package entities

// FallbackReply is sent when the predictor answered but none of the known
// text fields carried content.
const FallbackReply = "Pesan telah diteruskan."

// replyKeys is the priority order for extracting reply text from a
// prediction response.
var replyKeys = []string{"text", "answer", "output_text"}

// PredictionResponse is the predictor's decoded JSON body. The service only
// ever reads a single text field out of it.
type PredictionResponse map[string]interface{}

// ReplyText returns the first non-empty known text field, falling back to
// FallbackReply.
func (p PredictionResponse) ReplyText() string {
	for _, key := range replyKeys {
		if v, ok := p[key].(string); ok && v != "" {
			return v
		}
	}
	return FallbackReply
}
