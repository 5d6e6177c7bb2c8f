package model

// SocialLinks are optional links shown in the footer
type SocialLinks struct {
	Website   string `json:"website,omitempty" yaml:"website,omitempty"`
	Twitter   string `json:"twitter,omitempty" yaml:"twitter,omitempty"`
	Instagram string `json:"instagram,omitempty" yaml:"instagram,omitempty"`
}

// ClientConfig is the theming and copy configuration of one client
type ClientConfig struct {
	ID                string      `json:"id" yaml:"id"`
	Name              string      `json:"name" yaml:"name"`
	Logo              string      `json:"logo" yaml:"logo"`
	PrimaryColor      string      `json:"primaryColor" yaml:"primaryColor"`
	SecondaryColor    string      `json:"secondaryColor" yaml:"secondaryColor"`
	AccentColor       string      `json:"accentColor" yaml:"accentColor"`
	BackgroundColor   string      `json:"backgroundColor" yaml:"backgroundColor"`
	TextColor         string      `json:"textColor" yaml:"textColor"`
	FontFamily        string      `json:"fontFamily" yaml:"fontFamily"`
	CalendarTitle     string      `json:"calendarTitle" yaml:"calendarTitle"`
	WelcomeMessage    string      `json:"welcomeMessage" yaml:"welcomeMessage"`
	CompletionMessage string      `json:"completionMessage" yaml:"completionMessage"`
	SocialLinks       SocialLinks `json:"socialLinks" yaml:"socialLinks"`
	CustomCSS         string      `json:"customCSS,omitempty" yaml:"customCSS,omitempty"`
}

// DefaultClientConfig is used until the service provides an override
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		ID:                "default",
		Name:              "Advent Calendar",
		Logo:              "/logo.png",
		PrimaryColor:      "#3b82f6",
		SecondaryColor:    "#10b981",
		AccentColor:       "#f59e0b",
		BackgroundColor:   "#f3f4f6",
		TextColor:         "#1f2937",
		FontFamily:        "Inter, system-ui, sans-serif",
		CalendarTitle:     "Advent Adventure 2025",
		WelcomeMessage:    "Unwrap a new challenge every day, collect shiny gems and trade them for awesome prizes ... Can you make it into the Top25?!",
		CompletionMessage: "Congratulations! You've completed your advent calendar journey!",
		SocialLinks: SocialLinks{
			Website:   "https://example.com",
			Twitter:   "https://twitter.com/example",
			Instagram: "https://instagram.com/example",
		},
	}
}

// MergeClientConfig overlays every non-empty field of override onto base
func MergeClientConfig(base, override ClientConfig) ClientConfig {
	out := base
	pick := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	pick(&out.ID, override.ID)
	pick(&out.Name, override.Name)
	pick(&out.Logo, override.Logo)
	pick(&out.PrimaryColor, override.PrimaryColor)
	pick(&out.SecondaryColor, override.SecondaryColor)
	pick(&out.AccentColor, override.AccentColor)
	pick(&out.BackgroundColor, override.BackgroundColor)
	pick(&out.TextColor, override.TextColor)
	pick(&out.FontFamily, override.FontFamily)
	pick(&out.CalendarTitle, override.CalendarTitle)
	pick(&out.WelcomeMessage, override.WelcomeMessage)
	pick(&out.CompletionMessage, override.CompletionMessage)
	pick(&out.SocialLinks.Website, override.SocialLinks.Website)
	pick(&out.SocialLinks.Twitter, override.SocialLinks.Twitter)
	pick(&out.SocialLinks.Instagram, override.SocialLinks.Instagram)
	pick(&out.CustomCSS, override.CustomCSS)
	return out
}
