package source

// DefaultSources returns the bundled source reference table used when no
// sources directory is configured. Reliability values are static trust
// priors for display, not inputs to normalization.
func DefaultSources() []*NewsSource {
	return []*NewsSource{
		{
			ID:          "pib",
			Name:        "Press Information Bureau",
			URL:         "https://pib.gov.in/RssMain.aspx?ModId=6&Lang=1&Regid=3",
			Reliability: 90,
			Type:        TrustClassNews,
			Settings:    Settings{Enabled: true, Timeout: 30},
		},
		{
			ID:          "ani",
			Name:        "ANI News",
			URL:         "https://aninews.in/feed/",
			Reliability: 80,
			Type:        TrustClassNews,
			Settings:    Settings{Enabled: true, Timeout: 30},
		},
		{
			ID:          "pti",
			Name:        "Press Trust of India",
			URL:         "http://www.ptinews.com/rss/rss.aspx?id=1",
			Reliability: 85,
			Type:        TrustClassNews,
			Settings:    Settings{Enabled: true, Timeout: 30},
		},
		{
			ID:          "hindu",
			Name:        "The Hindu",
			URL:         "https://www.thehindu.com/news/feeder/default.rss",
			Reliability: 85,
			Type:        TrustClassNews,
			Settings:    Settings{Enabled: true, Timeout: 30},
		},
		{
			ID:          "ie",
			Name:        "Indian Express",
			URL:         "https://indianexpress.com/feed/",
			Reliability: 82,
			Type:        TrustClassNews,
			Settings:    Settings{Enabled: true, Timeout: 30},
		},
		{
			ID:          "altnews",
			Name:        "AltNews",
			URL:         "https://www.altnews.in/feed/",
			Reliability: 92,
			Type:        TrustClassFactCheck,
			Settings:    Settings{Enabled: true, Timeout: 30},
		},
		{
			ID:          "boomlive",
			Name:        "BOOM Live",
			URL:         "https://www.boomlive.in/rss-feed",
			Reliability: 90,
			Type:        TrustClassFactCheck,
			Settings:    Settings{Enabled: true, Timeout: 30},
		},
		{
			ID:          "factly",
			Name:        "Factly",
			URL:         "https://factly.in/feed/",
			Reliability: 88,
			Type:        TrustClassFactCheck,
			Settings:    Settings{Enabled: true, Timeout: 30},
		},
		{
			ID:          "vishvasnews",
			Name:        "Vishvas News",
			URL:         "https://www.vishvasnews.com/feed/",
			Reliability: 86,
			Type:        TrustClassFactCheck,
			Settings:    Settings{Enabled: true, Timeout: 30},
		},
		{
			ID:          "twitter",
			Name:        "Twitter/X",
			URL:         "https://twitter.com/",
			Reliability: 60,
			Type:        TrustClassSocial,
			Settings:    Settings{Enabled: false, Timeout: 30},
		},
		{
			ID:          "youtube",
			Name:        "YouTube",
			URL:         "https://www.youtube.com/",
			Reliability: 65,
			Type:        TrustClassSocial,
			Settings:    Settings{Enabled: false, Timeout: 30},
		},
		{
			ID:          "whatsapp",
			Name:        "WhatsApp",
			URL:         "https://www.whatsapp.com/",
			Reliability: 40,
			Type:        TrustClassSocial,
			Settings:    Settings{Enabled: false, Timeout: 30},
		},
	}
}
