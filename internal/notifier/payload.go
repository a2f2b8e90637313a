package notifier

// MessageCard is the legacy Office 365 connector card format accepted by
// Microsoft Teams incoming webhooks.
type MessageCard struct {
	Type       string               `json:"@type"`
	Context    string               `json:"@context"`
	Summary    string               `json:"summary"`
	ThemeColor string               `json:"themeColor,omitempty"`
	Title      string               `json:"title,omitempty"`
	Sections   []MessageCardSection `json:"sections,omitempty"`
}

// MessageCardSection is one section of a MessageCard.
type MessageCardSection struct {
	ActivityTitle    string            `json:"activityTitle,omitempty"`
	ActivitySubtitle string            `json:"activitySubtitle,omitempty"`
	Facts            []MessageCardFact `json:"facts,omitempty"`
	Text             string            `json:"text,omitempty"`
}

// MessageCardFact is a name/value pair rendered as a fact row.
type MessageCardFact struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}
