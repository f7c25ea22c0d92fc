package model

// Bot strategy constants
const (
	BotStrategyRandom = "random"
	BotStrategyHunt   = "hunt"
)

// DefaultBotStrategy is used when no strategy is requested
const DefaultBotStrategy = BotStrategyHunt

// BotStrategyDisplayName returns a human-readable label for a strategy
func BotStrategyDisplayName(strategy string) string {
	switch strategy {
	case BotStrategyRandom:
		return "Random"
	case BotStrategyHunt:
		return "Hunt/Target"
	default:
		return strategy
	}
}

// ValidBotStrategies returns all valid bot strategy names
func ValidBotStrategies() []string {
	return []string{BotStrategyRandom, BotStrategyHunt}
}
