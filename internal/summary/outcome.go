package summary

// Kind classifies a summarization result.
type Kind string

const (
	KindOK            Kind = "ok"
	KindNoText        Kind = "no_text"
	KindNoAPIKey      Kind = "no_api_key"
	KindNoChoices     Kind = "no_choices"
	KindRequestFailed Kind = "request_failed"
)

// Placeholder texts recorded in place of a summary.
const (
	PlaceholderNoText        = "Nepodařilo se získat text pro sumarizaci."
	PlaceholderNoAPIKey      = "OpenAI API klíč není nastaven. Prosím, zadejte jej pomocí parametru --APIKEY."
	PlaceholderNoChoices     = "Nepodařilo se získat shrnutí z API."
	PlaceholderRequestFailed = "Došlo k chybě při komunikaci s API."
)

// Outcome is the tagged result of a summarization attempt.
type Outcome struct {
	Kind Kind
	// Text is the summary for KindOK and the placeholder otherwise.
	Text string
	// Detail carries diagnostic context such as the raw response or error text.
	Detail string
}

// OK reports whether the outcome holds a real summary.
func (o Outcome) OK() bool {
	return o.Kind == KindOK
}

func placeholder(kind Kind) Outcome {
	var text string
	switch kind {
	case KindNoText:
		text = PlaceholderNoText
	case KindNoAPIKey:
		text = PlaceholderNoAPIKey
	case KindNoChoices:
		text = PlaceholderNoChoices
	default:
		kind = KindRequestFailed
		text = PlaceholderRequestFailed
	}
	return Outcome{Kind: kind, Text: text}
}
