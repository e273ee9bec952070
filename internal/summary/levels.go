package summary

import "newsagent/internal/profile"

// expand word-count bounds per reading level.
var expandBounds = map[string][2]int{
	profile.LevelBasic:  {130, 200},
	profile.LevelNormal: {110, 150},
	profile.LevelHigh:   {180, 260},
}

func boundsFor(level string) (int, int) {
	b, ok := expandBounds[level]
	if !ok {
		b = expandBounds[profile.LevelNormal]
	}
	return b[0], b[1]
}

// LevelPreview returns the onboarding example text for a reading level.
func LevelPreview(level string) string {
	switch level {
	case profile.LevelBasic:
		return "Basic — short sentences, everyday words.\n" +
			"Example: Prices went up slowly last month. This can change what people buy and what companies charge."
	case profile.LevelHigh:
		return "High — denser detail and terms.\n" +
			"Example: Core inflation plateaued, implying policy rates may stay restrictive; watch pass-through into FMCG input costs."
	default:
		return "Normal — balanced tone.\n" +
			"Example: Inflation held steady, which can influence interest rates and household spending in the near term."
	}
}

// levelRider appends level-specific style instructions to a system prompt.
func levelRider(level string) string {
	switch level {
	case profile.LevelBasic:
		return " Keep language simple and define terms briefly."
	case profile.LevelHigh:
		return " Add context, frameworks, and regulatory/market nuance where relevant."
	default:
		return ""
	}
}
