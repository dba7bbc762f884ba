package domain

// SeedWisdom is one entry of the default wisdom-source catalog.
type SeedWisdom struct {
	Name        string
	Description string
	Tag         string
}

// SeedChallenge is one entry of the default challenge catalog.
type SeedChallenge struct {
	Name        string
	Description string
}

// DefaultWisdomSources is inserted once for users with an empty wisdom
// library. All entries start active.
var DefaultWisdomSources = []SeedWisdom{
	{Name: "Stoic Philosophy", Description: "Dichotomy of Control and what you can influence", Tag: "Philosophy"},
	{Name: "Marcus Aurelius - Meditations", Description: "Roman emperor and Stoic philosopher", Tag: "Philosophy"},
	{Name: "Epictetus", Description: "Stoic philosophy", Tag: "Philosophy"},
	{Name: "Atomic Habits - James Clear", Description: "Systems and habit formation", Tag: "Self-Help"},
	{Name: "The 5 Second Rule", Description: "Transform your Life, Work, and Confidence with Everyday Courage", Tag: "Self-Help"},
	{Name: "The Charisma Myth", Description: "Charisma as a learnable skill", Tag: "Self-Help"},
	{Name: "Think Like a Monk - Jay Shetty", Description: "Mindfulness and purpose", Tag: "Spirituality"},
	{Name: "Eckhart Tolle", Description: "Present moment awareness and consciousness", Tag: "Spirituality"},
	{Name: "Dopamine Nation", Description: "Finding Balance in the Age of Indulgence", Tag: "Psychology"},
	{Name: "Chatter", Description: "The Voice in Our Head, Why It Matters, and How to Harness It", Tag: "Psychology"},
	{Name: "The Happiness Trap", Description: "Acceptance and Commitment Therapy", Tag: "Psychology"},
	{Name: "Simon Sinek", Description: "Concept of \"Why\" and finding purpose", Tag: "Leadership"},
	{Name: "Eric Thomas", Description: "Motivational speaking and overcoming adversity", Tag: "Motivation"},
	{Name: "David Goggins", Description: "Mental toughness and embracing discomfort", Tag: "Mindset"},
	{Name: "Kobe Bryant - Mamba Mentality", Description: "Relentless preparation and focus", Tag: "Mindset"},
	{Name: "Don't Believe Everything You Think", Description: "Cognitive awareness and mental clarity", Tag: "Mindfulness"},
	{Name: "How to Talk to Anyone", Description: "92 Little Tricks for Big Success in Relationships", Tag: "Communication"},
}

// DefaultChallenges is inserted once for users with no challenges.
// All entries start active.
var DefaultChallenges = []SeedChallenge{
	{Name: "Control", Description: "Stop trying to control the uncontrollable"},
	{Name: "Patience", Description: "Remain calm when dealing with everyday frustration"},
	{Name: "Focus", Description: "Protect deep-work time from distraction"},
	{Name: "Consistency", Description: "Show up daily even when motivation is low"},
	{Name: "Presence", Description: "Be fully present with family in the evening"},
}
